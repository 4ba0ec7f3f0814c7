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

// InvestorSort is the set of sortable investor fields.
type InvestorSort string

const (
	// InvestorSortName sorts by investor name.
	InvestorSortName InvestorSort = "name"
	// InvestorSortCompany sorts by company name.
	InvestorSortCompany InvestorSort = "company"
)

// InvestorForm holds the editable investor fields.
type InvestorForm struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Company    string `json:"company"`
	Investment string `json:"investment"`
}

// InvestorCSVHeader is the fixed header row for investor exports.
var InvestorCSVHeader = []string{"ID", "Name", "Email", "Phone", "Company", "Investment"}

// Investors manages the investor collection view. The archived filter
// is applied client-side at load time; the endpoint serves both slices.
type Investors struct {
	collection[model.Investor]
	client api.Requester
	logger *slog.Logger

	Form      InvestorForm
	Search    string
	SortField InvestorSort
	Filter    model.StatusFilter
	EditingID int
}

// NewInvestors creates an investor module over the given API client.
func NewInvestors(client api.Requester) *Investors {
	return &Investors{
		client:    client,
		logger:    slog.Default().With("component", "investors"),
		SortField: InvestorSortName,
		Filter:    model.FilterActive,
	}
}

// Load fetches a fresh snapshot of the collection. Failures are logged
// and returned inside the result; applying a failed result empties the
// snapshot.
func (s *Investors) Load(ctx context.Context) LoadResult[model.Investor] {
	seq := s.NextSeq()

	items, err := api.GetList[model.Investor](ctx, s.client, "/investors", nil)
	if err != nil {
		s.logger.Error("failed to fetch investors", "error", err)
		return LoadResult[model.Investor]{Seq: seq, Err: err}
	}

	wantArchived := s.Filter == model.FilterArchived
	visible := make([]model.Investor, 0, len(items))
	for _, inv := range items {
		if inv.Archived.Bool() == wantArchived {
			visible = append(visible, inv)
		}
	}

	return LoadResult[model.Investor]{Seq: seq, Items: visible}
}

// Reload performs a load and applies it synchronously.
func (s *Investors) Reload(ctx context.Context) error {
	res := s.Load(ctx)
	s.Apply(res)
	return res.Err
}

// Validate checks the required-field precondition for Save.
func (s *Investors) Validate() error {
	if strings.TrimSpace(s.Form.Name) == "" || strings.TrimSpace(s.Form.Email) == "" {
		return common.NewUserError("Name and Email are required", common.ErrValidation)
	}
	return nil
}

// Save creates or updates an investor from the form. On validation
// failure no network call is made. On success the form is cleared and
// the caller re-fetches the snapshot; on failure the form is preserved
// so the user can retry.
func (s *Investors) Save(ctx context.Context) error {
	if err := s.Validate(); err != nil {
		return err
	}

	var err error
	if s.EditingID != 0 {
		err = s.client.Put(ctx, fmt.Sprintf("/investors/%d", s.EditingID), s.Form, nil)
	} else {
		err = s.client.Post(ctx, "/investors", s.Form, nil)
	}
	if err != nil {
		return fmt.Errorf("failed to save investor: %w", err)
	}

	s.ResetForm()
	return nil
}

// Edit copies an investor's editable fields into the form.
func (s *Investors) Edit(inv model.Investor) {
	s.EditingID = inv.ID
	s.Form = InvestorForm{
		Name:       inv.Name,
		Email:      inv.Email,
		Phone:      inv.Phone,
		Company:    inv.Company,
		Investment: inv.Investment.String(),
	}
}

// ResetForm clears the form and leaves create mode active.
func (s *Investors) ResetForm() {
	s.Form = InvestorForm{}
	s.EditingID = 0
}

// Archive soft-deletes an investor. Callers confirm with the user
// before invoking; the snapshot is re-fetched afterwards.
func (s *Investors) Archive(ctx context.Context, id int) error {
	if err := s.client.Post(ctx, fmt.Sprintf("/investors/%d/archive", id), nil, nil); err != nil {
		return fmt.Errorf("failed to archive investor %d: %w", id, err)
	}
	return nil
}

// Restore clears an investor's archived flag.
func (s *Investors) Restore(ctx context.Context, id int) error {
	if err := s.client.Post(ctx, fmt.Sprintf("/investors/%d/restore", id), nil, nil); err != nil {
		return fmt.Errorf("failed to restore investor %d: %w", id, err)
	}
	return nil
}

// Filtered returns the snapshot narrowed by the search text and ordered
// by the active sort field.
func (s *Investors) Filtered() []model.Investor {
	out := make([]model.Investor, 0, len(s.Items()))
	for _, inv := range s.Items() {
		if matchesSearch(s.Search, inv.Name, inv.Company) {
			out = append(out, inv)
		}
	}

	sortByKey(out, func(inv model.Investor) string {
		if s.SortField == InvestorSortCompany {
			return inv.Company
		}
		return inv.Name
	})

	return out
}

// ExportRows serializes the filtered, sorted view for CSV export.
func (s *Investors) ExportRows() [][]string {
	visible := s.Filtered()
	rows := make([][]string, 0, len(visible))
	for _, inv := range visible {
		rows = append(rows, []string{
			strconv.Itoa(inv.ID),
			inv.Name,
			inv.Email,
			inv.Phone,
			inv.Company,
			inv.Investment.String(),
		})
	}
	return rows
}

// Export writes the filtered view to investors.csv in the given directory.
func (s *Investors) Export(dir string) (string, error) {
	path := exportPath(dir, "investors.csv")
	if err := export.WriteFile(path, InvestorCSVHeader, s.ExportRows()); err != nil {
		return "", err
	}
	return path, nil
}
