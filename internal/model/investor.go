// Package model defines the records served by the investment-promotion
// office API. The client holds only transient copies; the server owns
// every entity.
package model

// StatusFilter selects which lifecycle slice of a collection to view.
type StatusFilter string

const (
	// FilterActive shows records whose archived flag is clear.
	FilterActive StatusFilter = "active"
	// FilterArchived shows soft-deleted records.
	FilterArchived StatusFilter = "archived"
)

// Valid reports whether the filter is one of the known values.
func (f StatusFilter) Valid() bool {
	return f == FilterActive || f == FilterArchived
}

// Investor is a registered investor account.
type Investor struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Company    string `json:"company,omitempty"`
	Investment Text   `json:"investment,omitempty"`
	Archived   Flag   `json:"archived,omitempty"`
}
