package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/pantry-tracker/internal/inventory"
)

// GetItemsHandler godoc
// @Summary List visible items
// @Description Items of the latest snapshot whose name contains q (any case), optionally bounded by quantity
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param q query string false "Name search"
// @Param minQty query int false "Minimum quantity"
// @Param maxQty query int false "Maximum quantity"
// @Success 200 {object} ItemsSearchResult
// @Failure 400 {string} string "Invalid filter"
// @Failure 503 {string} string "Store unavailable"
// @Router /items [get]
func GetItemsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := inventory.Filter{Query: q.Get("q")}

	var err error
	if filter.MinQty, err = optionalInt(q.Get("minQty")); err != nil {
		http.Error(w, "invalid minQty", http.StatusBadRequest)
		return
	}
	if filter.MaxQty, err = optionalInt(q.Get("maxQty")); err != nil {
		http.Error(w, "invalid maxQty", http.StatusBadRequest)
		return
	}

	snap, err := currentSnapshot(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}

	visible := filter.Apply(snap)
	respond(w, http.StatusOK, ItemsSearchResult{
		Data: toItemResponses(visible),
		Meta: Meta{TotalCount: len(visible)},
	})
}

func optionalInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// CreateItemHandler godoc
// @Summary Add an item
// @Description Accepted once the store took the write; the item shows up in the next snapshot
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item body ItemRequest true "Item to add"
// @Success 202 {object} ItemCreatedResult
// @Failure 400 {array} ValidationError
// @Failure 503 {string} string "Store unavailable"
// @Router /items [post]
func CreateItemHandler(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors, expiry := validateItem(req)
	if len(validationErrors) > 0 {
		respond(w, http.StatusBadRequest, validationErrors)
		return
	}

	id, err := store.Add(r.Context(), inventory.NewItem{
		Name:       req.Name,
		Quantity:   req.Quantity,
		ExpiryDate: expiry,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond(w, http.StatusAccepted, ItemCreatedResult{ID: id})
}

// DeleteItemHandler godoc
// @Summary Delete an item
// @Tags items
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 204 "Deleted, or already gone"
// @Failure 503 {string} string "Store unavailable"
// @Router /items/{id} [delete]
func DeleteItemHandler(w http.ResponseWriter, r *http.Request) {
	if err := store.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// IncrementItemHandler godoc
// @Summary Increase an item's quantity by one
// @Tags items
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 202 "Accepted"
// @Failure 404 {string} string "Not found"
// @Failure 503 {string} string "Store unavailable"
// @Router /items/{id}/increment [post]
func IncrementItemHandler(w http.ResponseWriter, r *http.Request) {
	adjust(w, r, 1)
}

// DecrementItemHandler godoc
// @Summary Decrease an item's quantity by one, never below one
// @Tags items
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 202 "Accepted"
// @Failure 404 {string} string "Not found"
// @Failure 503 {string} string "Store unavailable"
// @Router /items/{id}/decrement [post]
func DecrementItemHandler(w http.ResponseWriter, r *http.Request) {
	adjust(w, r, -1)
}

// AdjustItemHandler godoc
// @Summary Change an item's quantity by delta
// @Description Negative results are floored at one
// @Tags items
// @Accept json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param adjustment body QuantityAdjustmentRequest true "Quantity delta"
// @Success 202 "Accepted"
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Not found"
// @Failure 503 {string} string "Store unavailable"
// @Router /items/{id}/adjust [post]
func AdjustItemHandler(w http.ResponseWriter, r *http.Request) {
	var req QuantityAdjustmentRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	adjust(w, r, req.Delta)
}

func adjust(w http.ResponseWriter, r *http.Request, delta int) {
	if err := store.SetQuantity(r.Context(), chi.URLParam(r, "id"), delta); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
