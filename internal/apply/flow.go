// Package apply implements the cross-resource form that joins an
// investor, a project, and an incentive into a new funding application.
package apply

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/TerminusTerminal/invest-desk/internal/api"
	"github.com/TerminusTerminal/invest-desk/internal/common"
	"github.com/TerminusTerminal/invest-desk/internal/model"
)

// State is the flow's lifecycle position.
type State int

const (
	// StateLoading means the reference collections are still loading.
	StateLoading State = iota
	// StateReady means the form is enabled.
	StateReady
	// StateSubmitted means the confirmation screen is showing.
	StateSubmitted
)

// Form holds the application fields under entry.
type Form struct {
	InvestorID      int     `json:"investor_id"`
	ProjectID       int     `json:"project_id"`
	IncentiveID     int     `json:"incentive_id"`
	RequestedAmount float64 `json:"requested_amount"`
}

// Flow drives the new-application screen: three reference collections
// loaded in parallel gate the form; one POST submits it.
type Flow struct {
	client api.Requester
	logger *slog.Logger

	Investors  []model.Investor
	Projects   []model.Project
	Incentives []model.Incentive

	Form  Form
	State State
}

// New creates a flow over the given API client.
func New(client api.Requester) *Flow {
	return &Flow{
		client: client,
		logger: slog.Default().With("component", "apply"),
	}
}

// LoadRefs fetches the three reference collections concurrently. The
// form is enabled only when all three loads succeed.
func (f *Flow) LoadRefs(ctx context.Context) error {
	f.State = StateLoading

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := api.GetList[model.Investor](ctx, f.client, "/investors", nil)
		if err != nil {
			return fmt.Errorf("failed to load investors: %w", err)
		}
		f.Investors = items
		return nil
	})
	g.Go(func() error {
		items, err := api.GetList[model.Project](ctx, f.client, "/projects", nil)
		if err != nil {
			return fmt.Errorf("failed to load projects: %w", err)
		}
		f.Projects = items
		return nil
	})
	g.Go(func() error {
		items, err := api.GetList[model.Incentive](ctx, f.client, "/incentives", nil)
		if err != nil {
			return fmt.Errorf("failed to load incentives: %w", err)
		}
		f.Incentives = items
		return nil
	})

	if err := g.Wait(); err != nil {
		f.logger.Error("failed to load application references", "error", err)
		return err
	}

	f.State = StateReady
	return nil
}

// Validate checks the form preconditions: one selection of each
// reference and a positive requested amount.
func (f *Flow) Validate() error {
	if f.Form.InvestorID == 0 || f.Form.ProjectID == 0 || f.Form.IncentiveID == 0 {
		return common.NewUserError("Investor, Project, and Incentive are required", common.ErrValidation)
	}
	if f.Form.RequestedAmount <= 0 {
		return common.NewUserError("Requested amount must be positive", common.ErrValidation)
	}
	return nil
}

// Submit posts the application. On success the flow moves to the
// confirmation state; the new application starts out pending on the
// server. On failure the form is preserved for retry.
func (f *Flow) Submit(ctx context.Context) error {
	if f.State != StateReady {
		return fmt.Errorf("form is not ready")
	}
	if err := f.Validate(); err != nil {
		return err
	}

	if err := f.client.Post(ctx, "/applications", f.Form, nil); err != nil {
		return fmt.Errorf("failed to submit application: %w", err)
	}

	f.State = StateSubmitted
	return nil
}

// Reset clears the form in place so another application can be
// submitted without leaving the screen. References stay loaded.
func (f *Flow) Reset() {
	f.Form = Form{}
	f.State = StateReady
}
