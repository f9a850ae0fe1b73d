package handlers

import (
	"strings"
	"time"

	"github.com/rogerio-castellano/pantry-tracker/internal/models"
)

type ValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// validateItem checks an item request and returns its parsed expiry date.
func validateItem(p ItemRequest) ([]ValidationError, *time.Time) {
	errs := []ValidationError{}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ValidationError{Field: "Name", Description: "Name is required"})
	}
	if p.Quantity < 0 {
		errs = append(errs, ValidationError{Field: "Quantity", Description: "Quantity cannot be negative"})
	}

	var expiry *time.Time
	if s := strings.TrimSpace(p.ExpiryDate); s != "" {
		d, err := time.Parse(models.DateLayout, s)
		if err != nil {
			errs = append(errs, ValidationError{Field: "ExpiryDate", Description: "Expiry date must be YYYY-MM-DD"})
		} else {
			expiry = &d
		}
	}
	return errs, expiry
}
