package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rogerio-castellano/pantry-tracker/internal/inventory"
	"github.com/rogerio-castellano/pantry-tracker/internal/models"
	"go.uber.org/zap"
)

// readJSON tries to read the body of a request and converts it into JSON
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576 // one megabyte
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

func respond(w http.ResponseWriter, status int, data any) {
	if err := writeJSON(w, status, data); err != nil {
		logger.Warn("failed to write JSON response", zap.Error(err))
	}
}

// writeStoreError maps inventory errors to status codes.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, inventory.ErrItemNotFound):
		http.Error(w, "item not found", http.StatusNotFound)
	case errors.Is(err, inventory.ErrEmptyName), errors.Is(err, inventory.ErrInvalidQuantity):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, inventory.ErrStoreUnavailable):
		http.Error(w, "inventory store unavailable", http.StatusServiceUnavailable)
	default:
		logger.Error("unexpected inventory error", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// currentSnapshot is the latest snapshot this process saw, loading one if
// none was seen yet.
func currentSnapshot(ctx context.Context) (models.Snapshot, error) {
	if snap := store.Latest(); snap != nil {
		return snap, nil
	}
	return store.Refresh(ctx)
}
