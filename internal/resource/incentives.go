package resource

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/TerminusTerminal/invest-desk/internal/api"
	"github.com/TerminusTerminal/invest-desk/internal/common"
	"github.com/TerminusTerminal/invest-desk/internal/export"
	"github.com/TerminusTerminal/invest-desk/internal/model"
)

// IncentiveSort is the set of sortable incentive fields.
type IncentiveSort string

const (
	// IncentiveSortTitle sorts by incentive title.
	IncentiveSortTitle IncentiveSort = "title"
	// IncentiveSortType sorts by incentive type.
	IncentiveSortType IncentiveSort = "type"
)

// IncentiveForm holds the editable incentive fields.
type IncentiveForm struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Type           string `json:"type"`
	MaxAmount      string `json:"max_amount"`
	Conditions     string `json:"conditions"`
	DurationMonths int    `json:"duration_months"`
	Active         bool   `json:"active"`
}

// IncentiveCSVHeader is the fixed header row for incentive exports.
var IncentiveCSVHeader = []string{"ID", "Title", "Type", "Max Amount", "Duration (Months)", "Active"}

// Incentives manages the incentive collection view. Incentives have no
// archive lifecycle; removal is a hard delete.
type Incentives struct {
	collection[model.Incentive]
	client api.Requester
	logger *slog.Logger

	Form      IncentiveForm
	Search    string
	SortField IncentiveSort
	EditingID int
}

// NewIncentives creates an incentive module over the given API client.
func NewIncentives(client api.Requester) *Incentives {
	return &Incentives{
		client:    client,
		logger:    slog.Default().With("component", "incentives"),
		SortField: IncentiveSortTitle,
		Form:      IncentiveForm{Type: "general", Active: true},
	}
}

// Load fetches a fresh snapshot of the collection.
func (s *Incentives) Load(ctx context.Context) LoadResult[model.Incentive] {
	seq := s.NextSeq()

	items, err := api.GetList[model.Incentive](ctx, s.client, "/incentives", nil)
	if err != nil {
		s.logger.Error("failed to fetch incentives", "error", err)
		return LoadResult[model.Incentive]{Seq: seq, Err: err}
	}

	return LoadResult[model.Incentive]{Seq: seq, Items: items}
}

// Reload performs a load and applies it synchronously.
func (s *Incentives) Reload(ctx context.Context) error {
	res := s.Load(ctx)
	s.Apply(res)
	return res.Err
}

// Validate checks the required-field precondition for Save.
func (s *Incentives) Validate() error {
	if strings.TrimSpace(s.Form.Title) == "" {
		return common.NewUserError("Title is required", common.ErrValidation)
	}
	return nil
}

// Save creates or updates an incentive from the form.
func (s *Incentives) Save(ctx context.Context) error {
	if err := s.Validate(); err != nil {
		return err
	}

	var err error
	if s.EditingID != 0 {
		err = s.client.Put(ctx, fmt.Sprintf("/incentives/%d", s.EditingID), s.Form, nil)
	} else {
		err = s.client.Post(ctx, "/incentives", s.Form, nil)
	}
	if err != nil {
		return fmt.Errorf("failed to save incentive: %w", err)
	}

	s.ResetForm()
	return nil
}

// Edit copies an incentive's editable fields into the form.
func (s *Incentives) Edit(inc model.Incentive) {
	s.EditingID = inc.ID
	s.Form = IncentiveForm{
		Title:          inc.Title,
		Description:    inc.Description,
		Type:           inc.Type,
		MaxAmount:      inc.MaxAmount.String(),
		DurationMonths: inc.DurationMonths,
		Conditions:     inc.Conditions,
		Active:         inc.Active.Bool(),
	}
}

// ResetForm clears the form back to its defaults.
func (s *Incentives) ResetForm() {
	s.Form = IncentiveForm{Type: "general", Active: true}
	s.EditingID = 0
}

// Delete permanently removes an incentive. Callers confirm with the
// user before invoking.
func (s *Incentives) Delete(ctx context.Context, id int) error {
	if err := s.client.Delete(ctx, fmt.Sprintf("/incentives/%d", id)); err != nil {
		return fmt.Errorf("failed to delete incentive %d: %w", id, err)
	}
	return nil
}

// Filtered returns the snapshot narrowed by the search text and ordered
// by the active sort field.
func (s *Incentives) Filtered() []model.Incentive {
	out := make([]model.Incentive, 0, len(s.Items()))
	for _, inc := range s.Items() {
		if matchesSearch(s.Search, inc.Title, inc.Type) {
			out = append(out, inc)
		}
	}

	sortByKey(out, func(inc model.Incentive) string {
		if s.SortField == IncentiveSortType {
			return inc.Type
		}
		return inc.Title
	})

	return out
}

// ExportRows serializes the filtered, sorted view for CSV export.
func (s *Incentives) ExportRows() [][]string {
	visible := s.Filtered()
	rows := make([][]string, 0, len(visible))
	for _, inc := range visible {
		rows = append(rows, []string{
			strconv.Itoa(inc.ID),
			inc.Title,
			inc.Type,
			inc.MaxAmount.String(),
			strconv.Itoa(inc.DurationMonths),
			strconv.FormatBool(inc.Active.Bool()),
		})
	}
	return rows
}

// Export writes the filtered view to incentives.csv in the given directory.
func (s *Incentives) Export(dir string) (string, error) {
	path := exportPath(dir, "incentives.csv")
	if err := export.WriteFile(path, IncentiveCSVHeader, s.ExportRows()); err != nil {
		return "", err
	}
	return path, nil
}
