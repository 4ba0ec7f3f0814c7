package model

import "strconv"

// StatusCount is one bar of the application-status breakdown.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Summary is the aggregate object served by /reports/summary for the
// dashboard. Time-series fields are optional; the dashboard substitutes
// a fixed placeholder when they are absent.
type Summary struct {
	TotalInvestors       int     `json:"total_investors"`
	TotalProjects        int     `json:"total_projects"`
	TotalIncentives      int     `json:"total_incentives"`
	TotalApplications    int     `json:"total_applications"`
	PendingApplications  int     `json:"pending_applications"`
	ApprovedApplications int     `json:"approved_applications"`
	RejectedApplications int     `json:"rejected_applications"`
	TotalAllocatedAmount float64 `json:"total_allocated_amount"`

	InvestorsOverTime []InvestorsPoint `json:"investors_over_time,omitempty"`
	AllocatedOverTime []AllocatedPoint `json:"allocated_over_time,omitempty"`
	ApplicationStatus []StatusCount    `json:"applications_status,omitempty"`
}

// InvestorsPoint is one month of the investors-over-time series.
type InvestorsPoint struct {
	Month     string `json:"month"`
	Investors int    `json:"investors"`
}

// AllocatedPoint is one month of the allocated-amount series.
type AllocatedPoint struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

func itoa(n int) string {
	if n == 0 {
		return "-"
	}
	return strconv.Itoa(n)
}
