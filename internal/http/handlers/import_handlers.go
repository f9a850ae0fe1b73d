package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rogerio-castellano/pantry-tracker/internal/inventory"
	"github.com/rogerio-castellano/pantry-tracker/internal/models"
)

type csvRow struct {
	Line     int
	Name     string
	Quantity string
	Expiry   string
}

func parseCSV(file io.Reader) ([]csvRow, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := index["name"]; !ok {
		return nil, fmt.Errorf("CSV header must contain a name column")
	}

	field := func(record []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []csvRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %v", err)
		}
		line, _ := reader.FieldPos(0)

		rows = append(rows, csvRow{
			Line:     line,
			Name:     field(record, "name"),
			Quantity: field(record, "quantity"),
			Expiry:   field(record, "expiry_date"),
		})
	}
	return rows, nil
}

func rowToItem(r csvRow) (inventory.NewItem, error) {
	item := inventory.NewItem{Name: r.Name}
	if item.Name == "" {
		return item, fmt.Errorf("missing name")
	}
	if r.Quantity != "" {
		q, err := strconv.Atoi(r.Quantity)
		if err != nil || q < 1 {
			return item, fmt.Errorf("invalid quantity %q", r.Quantity)
		}
		item.Quantity = q
	}
	if r.Expiry != "" {
		d, err := time.Parse(models.DateLayout, r.Expiry)
		if err != nil {
			return item, fmt.Errorf("invalid expiry_date %q", r.Expiry)
		}
		item.ExpiryDate = &d
	}
	return item, nil
}

// ImportItemsHandler godoc
// @Summary Import items via CSV
// @Description Columns: name, quantity (optional, default 1), expiry_date (optional, YYYY-MM-DD). Invalid rows are reported and skipped.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} ImportItemsResult
// @Failure 400 {string} string "Invalid file"
// @Router /items/import [post]
// @Security BearerAuth
func ImportItemsHandler(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	records, err := parseCSV(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	imported := 0
	errorsList := []ValidationError{}

	for _, rec := range records {
		item, err := rowToItem(rec)
		if err != nil {
			errorsList = append(errorsList, ValidationError{Field: "row", Description: fmt.Sprintf("row %d: %v", rec.Line, err)})
			continue
		}

		if _, err := store.Add(r.Context(), item); err != nil {
			errorsList = append(errorsList, ValidationError{Field: "row", Description: fmt.Sprintf("row %d: %v", rec.Line, err)})
			continue
		}
		imported++
	}

	respond(w, http.StatusOK, ImportItemsResult{
		ImportedItemsCount: imported,
		Errors:             errorsList,
	})
}
