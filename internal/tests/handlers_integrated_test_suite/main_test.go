package handlers_integrated_test_suite

import (
	"fmt"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	if os.Getenv("DATABASE_URL") == "" {
		fmt.Println("DATABASE_URL not set, skipping integrated handler tests")
		os.Exit(0)
	}
	if err := setupTestRepos("secret"); err != nil {
		fmt.Println("integrated setup failed:", err)
		os.Exit(1)
	}
	code := m.Run()
	teardown()
	os.Exit(code)
}
