// Package dashboard loads and shapes the aggregate summary for the
// overview screen: fixed counters plus three time series.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/TerminusTerminal/invest-desk/internal/api"
	"github.com/TerminusTerminal/invest-desk/internal/model"
)

// View is the dashboard's display data. Placeholder reports whether the
// series are illustrative stand-ins rather than server data; consumers
// must not treat placeholder series as real.
type View struct {
	Summary           model.Summary
	InvestorsOverTime []model.InvestorsPoint
	AllocatedOverTime []model.AllocatedPoint
	StatusBreakdown   []model.StatusCount
	Placeholder       bool
}

// Module fetches and derives the dashboard view.
type Module struct {
	client api.Requester
	logger *slog.Logger
}

// New creates a dashboard module over the given API client.
func New(client api.Requester) *Module {
	return &Module{
		client: client,
		logger: slog.Default().With("component", "dashboard"),
	}
}

// Load fetches the summary object and derives the chart series. When
// the server omits the time-series fields a fixed illustrative series
// is substituted and flagged as such.
func (m *Module) Load(ctx context.Context) (View, error) {
	var summary model.Summary
	if err := m.client.Get(ctx, "/reports/summary", nil, &summary); err != nil {
		m.logger.Error("failed to fetch summary", "error", err)
		return View{}, fmt.Errorf("failed to fetch summary: %w", err)
	}

	return Derive(summary), nil
}

// Derive builds the view from a summary object.
func Derive(summary model.Summary) View {
	view := View{
		Summary:           summary,
		InvestorsOverTime: summary.InvestorsOverTime,
		AllocatedOverTime: summary.AllocatedOverTime,
		StatusBreakdown:   summary.ApplicationStatus,
	}

	if len(view.StatusBreakdown) == 0 {
		view.StatusBreakdown = []model.StatusCount{
			{Status: "Pending", Count: summary.PendingApplications},
			{Status: "Approved", Count: summary.ApprovedApplications},
			{Status: "Rejected", Count: summary.RejectedApplications},
		}
	}

	if len(view.InvestorsOverTime) == 0 {
		view.Placeholder = true
		view.InvestorsOverTime = placeholderInvestors()
	}
	if len(view.AllocatedOverTime) == 0 {
		view.Placeholder = true
		view.AllocatedOverTime = placeholderAllocated()
	}

	return view
}

// Fixed illustrative series shown when the server sends none.
func placeholderInvestors() []model.InvestorsPoint {
	return []model.InvestorsPoint{
		{Month: "Jan", Investors: 10},
		{Month: "Feb", Investors: 15},
		{Month: "Mar", Investors: 20},
	}
}

func placeholderAllocated() []model.AllocatedPoint {
	return []model.AllocatedPoint{
		{Month: "Jan", Amount: 10000},
		{Month: "Feb", Amount: 25000},
		{Month: "Mar", Amount: 40000},
	}
}
