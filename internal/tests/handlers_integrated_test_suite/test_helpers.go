package handlers_integrated_test_suite

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/pantry-tracker/internal/auth"
	"github.com/rogerio-castellano/pantry-tracker/internal/db"
	handler "github.com/rogerio-castellano/pantry-tracker/internal/http/handlers"
	"github.com/rogerio-castellano/pantry-tracker/internal/http/router"
	"github.com/rogerio-castellano/pantry-tracker/internal/inventory"
	"github.com/rogerio-castellano/pantry-tracker/internal/models"
	"github.com/rogerio-castellano/pantry-tracker/internal/redissvc"
	"github.com/rogerio-castellano/pantry-tracker/internal/repo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	token     string
	database  *sql.DB
	rdb       *redis.Client
	feed      inventory.Feed
	itemRepo  *repo.PostgresItemRepository
	userRepo  *repo.PostgresUserRepository
	itemStore *inventory.Store
	tokens    *auth.Tokens
)

// setupTestRepos wires the API to Postgres, and to Redis when REDIS_ADDR is set.
func setupTestRepos(password string) error {
	var err error
	database, err = db.Connect(os.Getenv("DATABASE_URL"))
	if err != nil {
		return err
	}
	if err := db.Migrate(database, zap.NewNop()); err != nil {
		return err
	}

	feed = inventory.NewLocalFeed()
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: addr})
		rf := redissvc.NewFeed(rdb, "pantry:test:"+uuid.NewString(), zap.NewNop())
		if err := rf.Ping(context.Background()); err != nil {
			return err
		}
		feed = rf
	}

	itemRepo = repo.NewPostgresItemRepository(database)
	itemStore = inventory.NewStore(itemRepo, feed, zap.NewNop())
	handler.SetStore(itemStore)

	userRepo = repo.NewPostgresUserRepository(database)
	handler.SetUserRepo(userRepo)

	tokens = auth.NewTokens("integration-secret", 15*time.Minute)
	handler.SetTokens(tokens)

	if err := createAdminIfNotExists(password); err != nil {
		return err
	}
	if err := clearAllItems(); err != nil {
		return err
	}

	token, err = generateToken(newRouter(), "admin", password)
	return err
}

func teardown() {
	_ = clearAllItems()
	_ = clearAllUsersExceptAdmin()
	if rdb != nil {
		_ = rdb.Close()
	}
	_ = database.Close()
}

func newRouter() http.Handler {
	return router.NewRouter(router.Dependencies{Tokens: tokens})
}

func createAdminIfNotExists(password string) error {
	_, err := userRepo.GetByUsername(context.Background(), "admin")
	if err == nil {
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	_, err = userRepo.CreateUser(context.Background(), models.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         "admin",
	})
	return err
}

func clearAllItems() error {
	if _, err := database.Exec(`TRUNCATE items`); err != nil {
		return err
	}
	_, err := itemStore.Refresh(context.Background())
	return err
}

func clearAllUsersExceptAdmin() error {
	_, err := database.Exec(`DELETE FROM users WHERE username <> 'admin'`)
	return err
}

func generateToken(r http.Handler, username, password string) (string, error) {
	body, _ := json.Marshal(handler.UserLogin{Username: username, Password: password})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func doJSON(r http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func listItems(r http.Handler) []handler.ItemResponse {
	w := doJSON(r, http.MethodGet, "/items", nil)
	var resp handler.ItemsSearchResult
	_ = json.NewDecoder(w.Body).Decode(&resp)
	return resp.Data
}
