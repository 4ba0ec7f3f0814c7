package model

// Project is an investment project belonging to an investor.
type Project struct {
	ID               int    `json:"id"`
	InvestorID       int    `json:"investor_id"`
	Name             string `json:"name"`
	Sector           string `json:"sector,omitempty"`
	InvestmentAmount Text   `json:"investment_amount,omitempty"`
	Location         string `json:"location,omitempty"`
	Description      string `json:"description,omitempty"`
	Status           string `json:"status,omitempty"`
	Archived         Flag   `json:"archived,omitempty"`
}
