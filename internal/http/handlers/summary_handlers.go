package handlers

import (
	"net/http"
	"time"

	"github.com/rogerio-castellano/pantry-tracker/internal/inventory"
)

// GetSummaryHandler godoc
// @Summary Dashboard counters for the pantry
// @Tags items
// @Produce json
// @Security BearerAuth
// @Success 200 {object} inventory.Summary
// @Failure 503 {string} string "Store unavailable"
// @Router /items/summary [get]
func GetSummaryHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := currentSnapshot(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond(w, http.StatusOK, inventory.Summarize(snap, time.Now(), expiringWithin))
}
