package models

import "time"

// DateLayout is the wire format of an item's expiry date.
const DateLayout = "2006-01-02"

// Item is one perishable entry of the household inventory.
type Item struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Quantity   int        `json:"quantity"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Snapshot is the whole collection as last delivered by the store, in store order.
type Snapshot []Item

// Clone returns a copy that shares no backing array or expiry pointers with s.
func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return nil
	}
	out := make(Snapshot, len(s))
	for i, it := range s {
		if it.ExpiryDate != nil {
			d := *it.ExpiryDate
			it.ExpiryDate = &d
		}
		out[i] = it
	}
	return out
}

// Find returns the item with the given id.
func (s Snapshot) Find(id string) (Item, bool) {
	for _, it := range s {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}
