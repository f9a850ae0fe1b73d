package inventory

import (
	"testing"
	"time"

	"github.com/rogerio-castellano/pantry-tracker/internal/models"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestSummarize(t *testing.T) {
	now := time.Date(2026, 10, 15, 18, 30, 0, 0, time.UTC)
	snap := models.Snapshot{
		{Name: "Rice", Quantity: 3},
		{Name: "Milk", Quantity: 1, ExpiryDate: day(2026, 10, 14)},
		{Name: "Yogurt", Quantity: 4, ExpiryDate: day(2026, 10, 15)},
		{Name: "Cheese", Quantity: 2, ExpiryDate: day(2026, 10, 18)},
		{Name: "Jam", Quantity: 1, ExpiryDate: day(2027, 1, 1)},
	}

	got := Summarize(snap, now, 72*time.Hour)
	assert.Equal(t, Summary{TotalItems: 5, TotalUnits: 11, ExpiringSoon: 2, Expired: 1}, got)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil, time.Now(), 72*time.Hour))
}
