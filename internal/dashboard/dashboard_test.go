package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TerminusTerminal/invest-desk/internal/api"
	"github.com/TerminusTerminal/invest-desk/internal/model"
)

func TestDerive_ServerSeries(t *testing.T) {
	summary := model.Summary{
		TotalInvestors:      12,
		PendingApplications: 4,
		InvestorsOverTime:   []model.InvestorsPoint{{Month: "Jun", Investors: 12}},
		AllocatedOverTime:   []model.AllocatedPoint{{Month: "Jun", Amount: 99000}},
		ApplicationStatus:   []model.StatusCount{{Status: "Pending", Count: 4}},
	}

	view := Derive(summary)
	assert.False(t, view.Placeholder)
	assert.Equal(t, summary.InvestorsOverTime, view.InvestorsOverTime)
	assert.Equal(t, summary.AllocatedOverTime, view.AllocatedOverTime)
	assert.Equal(t, summary.ApplicationStatus, view.StatusBreakdown)
}

func TestDerive_PlaceholderFallback(t *testing.T) {
	summary := model.Summary{
		PendingApplications:  4,
		ApprovedApplications: 9,
		RejectedApplications: 1,
	}

	view := Derive(summary)

	// Missing series fall back to the fixed illustrative data and are
	// flagged so they cannot be mistaken for real numbers.
	assert.True(t, view.Placeholder)
	require.Len(t, view.InvestorsOverTime, 3)
	assert.Equal(t, "Jan", view.InvestorsOverTime[0].Month)
	require.Len(t, view.AllocatedOverTime, 3)

	// The status breakdown is derived from real counters, not invented.
	require.Len(t, view.StatusBreakdown, 3)
	assert.Equal(t, model.StatusCount{Status: "Approved", Count: 9}, view.StatusBreakdown[1])
}

func TestModule_Load(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/reports/summary", r.URL.Path)
		_, _ = w.Write([]byte(`{"total_investors":7,"total_projects":3,"total_allocated_amount":125000.5}`))
	}))
	defer srv.Close()

	client, err := api.New(api.Config{BaseURL: srv.URL}, api.StaticToken("tok"))
	require.NoError(t, err)

	view, err := New(client).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, view.Summary.TotalInvestors)
	assert.InDelta(t, 125000.5, view.Summary.TotalAllocatedAmount, 0.001)
	assert.True(t, view.Placeholder)
}

func TestModule_LoadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := api.New(api.Config{BaseURL: srv.URL}, api.StaticToken("tok"))
	require.NoError(t, err)

	_, err = New(client).Load(context.Background())
	assert.Error(t, err)
}
