package model

import "time"

// Incentive is a standalone incentive program investors can apply for.
type Incentive struct {
	ID             int        `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Type           string     `json:"type,omitempty"`
	MaxAmount      Text       `json:"max_amount,omitempty"`
	DurationMonths int        `json:"duration_months,omitempty"`
	Conditions     string     `json:"conditions,omitempty"`
	Active         Flag       `json:"active,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}
