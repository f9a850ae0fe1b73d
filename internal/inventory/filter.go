package inventory

import (
	"strings"

	"github.com/rogerio-castellano/pantry-tracker/internal/models"
)

// Filter narrows a snapshot to what the user is looking at.
type Filter struct {
	Query  string
	MinQty *int
	MaxQty *int
}

func matchesFilter(it models.Item, f Filter) bool {
	if f.Query != "" && !strings.Contains(strings.ToLower(it.Name), strings.ToLower(f.Query)) {
		return false
	}
	if f.MinQty != nil && it.Quantity < *f.MinQty {
		return false
	}
	if f.MaxQty != nil && it.Quantity > *f.MaxQty {
		return false
	}
	return true
}

// Apply returns the matching items in snapshot order. The snapshot is not
// modified and the result shares no memory with it.
func (f Filter) Apply(snap models.Snapshot) []models.Item {
	visible := []models.Item{}
	for _, it := range snap.Clone() {
		if matchesFilter(it, f) {
			visible = append(visible, it)
		}
	}
	return visible
}

// VisibleItems keeps the items whose name contains query, ignoring case.
func VisibleItems(snap models.Snapshot, query string) []models.Item {
	return Filter{Query: query}.Apply(snap)
}
