package resource

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/TerminusTerminal/invest-desk/internal/api"
	"github.com/TerminusTerminal/invest-desk/internal/common"
	"github.com/TerminusTerminal/invest-desk/internal/model"
)

// decisionRequest is the payload for the decide endpoint. The remark
// text is fixed per action; the client never edits status directly.
type decisionRequest struct {
	Action  model.DecisionAction `json:"action"`
	Remarks string               `json:"remarks"`
}

// Applications manages the funding-application collection view.
// Applications are created through the apply flow, not a form here;
// this module covers listing, decisions, and the archive lifecycle.
type Applications struct {
	collection[model.Application]
	client api.Requester
	logger *slog.Logger

	Filter model.StatusFilter
}

// NewApplications creates an application module over the given API client.
func NewApplications(client api.Requester) *Applications {
	return &Applications{
		client: client,
		logger: slog.Default().With("component", "applications"),
		Filter: model.FilterActive,
	}
}

// Load fetches a fresh snapshot, applying the archived filter client-side.
func (s *Applications) Load(ctx context.Context) LoadResult[model.Application] {
	seq := s.NextSeq()

	items, err := api.GetList[model.Application](ctx, s.client, "/applications", nil)
	if err != nil {
		s.logger.Error("failed to fetch applications", "error", err)
		return LoadResult[model.Application]{Seq: seq, Err: err}
	}

	wantArchived := s.Filter == model.FilterArchived
	visible := make([]model.Application, 0, len(items))
	for _, app := range items {
		if app.Archived.Bool() == wantArchived {
			visible = append(visible, app)
		}
	}

	return LoadResult[model.Application]{Seq: seq, Items: visible}
}

// Reload performs a load and applies it synchronously.
func (s *Applications) Reload(ctx context.Context) error {
	res := s.Load(ctx)
	s.Apply(res)
	return res.Err
}

// Decide posts an approve or reject decision with its fixed remark.
// The transition is one-way: if the application is present in the
// snapshot and no longer pending, the call is blocked client-side and
// no network request is made. The server remains the authority for
// records not in the snapshot.
func (s *Applications) Decide(ctx context.Context, id int, action model.DecisionAction) error {
	if action != model.DecisionApprove && action != model.DecisionReject {
		return fmt.Errorf("unknown decision action %q", action)
	}

	for _, app := range s.Items() {
		if app.ID == id && !app.Pending() {
			return common.NewUserError(
				fmt.Sprintf("application %d is already %s", id, app.Status),
				common.ErrValidation)
		}
	}

	body := decisionRequest{Action: action, Remarks: action.Remark()}
	if err := s.client.Post(ctx, fmt.Sprintf("/applications/%d/decide", id), body, nil); err != nil {
		return fmt.Errorf("failed to record decision for application %d: %w", id, err)
	}
	return nil
}

// Archive soft-deletes an application.
func (s *Applications) Archive(ctx context.Context, id int) error {
	if err := s.client.Post(ctx, fmt.Sprintf("/applications/%d/archive", id), nil, nil); err != nil {
		return fmt.Errorf("failed to archive application %d: %w", id, err)
	}
	return nil
}

// Restore clears an application's archived flag.
func (s *Applications) Restore(ctx context.Context, id int) error {
	if err := s.client.Post(ctx, fmt.Sprintf("/applications/%d/restore", id), nil, nil); err != nil {
		return fmt.Errorf("failed to restore application %d: %w", id, err)
	}
	return nil
}
