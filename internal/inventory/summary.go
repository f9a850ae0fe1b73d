package inventory

import (
	"time"

	"github.com/rogerio-castellano/pantry-tracker/internal/models"
)

// Summary is the dashboard view of a snapshot.
type Summary struct {
	TotalItems   int `json:"total_items"`
	TotalUnits   int `json:"total_units"`
	ExpiringSoon int `json:"expiring_soon"`
	Expired      int `json:"expired"`
}

// Summarize counts items by expiry relative to now. Expiry dates are whole
// days: an item expiring today is expiring soon, not expired.
func Summarize(snap models.Snapshot, now time.Time, within time.Duration) Summary {
	today := startOfDay(now)
	horizon := startOfDay(now.Add(within))

	var s Summary
	for _, it := range snap {
		s.TotalItems++
		s.TotalUnits += it.Quantity
		if it.ExpiryDate == nil {
			continue
		}
		day := startOfDay(*it.ExpiryDate)
		switch {
		case day.Before(today):
			s.Expired++
		case !day.After(horizon):
			s.ExpiringSoon++
		}
	}
	return s
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
