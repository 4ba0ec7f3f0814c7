package resource

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/TerminusTerminal/invest-desk/internal/api"
	"github.com/TerminusTerminal/invest-desk/internal/common"
	"github.com/TerminusTerminal/invest-desk/internal/export"
	"github.com/TerminusTerminal/invest-desk/internal/model"
)

// ProjectSort is the set of sortable project fields.
type ProjectSort string

const (
	// ProjectSortName sorts by project name.
	ProjectSortName ProjectSort = "name"
	// ProjectSortSector sorts by sector.
	ProjectSortSector ProjectSort = "sector"
)

// ProjectForm holds the editable project fields.
type ProjectForm struct {
	Name             string `json:"name"`
	Sector           string `json:"sector"`
	InvestmentAmount string `json:"investment_amount"`
	Location         string `json:"location"`
	Description      string `json:"description"`
	Status           string `json:"status"`
	InvestorID       int    `json:"investor_id"`
}

// ProjectCSVHeader is the fixed header row for project exports.
var ProjectCSVHeader = []string{"ID", "Investor", "Name", "Sector", "Investment Amount", "Location", "Description", "Status"}

// Projects manages the project collection view. Unlike investors, the
// archived filter is a server-side query parameter here.
type Projects struct {
	collection[model.Project]
	client api.Requester
	logger *slog.Logger

	// InvestorRefs resolves investor_id to a display name in tables
	// and exports. Loaded separately from the investors endpoint.
	InvestorRefs []model.Investor

	Form      ProjectForm
	Search    string
	SortField ProjectSort
	Filter    model.StatusFilter
	EditingID int
}

// NewProjects creates a project module over the given API client.
func NewProjects(client api.Requester) *Projects {
	return &Projects{
		client:    client,
		logger:    slog.Default().With("component", "projects"),
		SortField: ProjectSortName,
		Filter:    model.FilterActive,
	}
}

// Load fetches a fresh snapshot filtered by the archived query parameter.
func (s *Projects) Load(ctx context.Context) LoadResult[model.Project] {
	seq := s.NextSeq()

	query := url.Values{"archived": {strconv.FormatBool(s.Filter == model.FilterArchived)}}
	items, err := api.GetList[model.Project](ctx, s.client, "/projects", query)
	if err != nil {
		s.logger.Error("failed to fetch projects", "error", err)
		return LoadResult[model.Project]{Seq: seq, Err: err}
	}

	return LoadResult[model.Project]{Seq: seq, Items: items}
}

// Reload performs a load and applies it synchronously.
func (s *Projects) Reload(ctx context.Context) error {
	res := s.Load(ctx)
	s.Apply(res)
	return res.Err
}

// LoadInvestorRefs refreshes the investor reference list used for
// display-name resolution. A failure leaves the previous refs in place;
// tables fall back to raw ids.
func (s *Projects) LoadInvestorRefs(ctx context.Context) error {
	refs, err := api.GetList[model.Investor](ctx, s.client, "/investors", nil)
	if err != nil {
		s.logger.Error("failed to fetch investor references", "error", err)
		return err
	}
	s.InvestorRefs = refs
	return nil
}

// InvestorName resolves an investor id against the loaded references.
func (s *Projects) InvestorName(id int) string {
	for _, inv := range s.InvestorRefs {
		if inv.ID == id {
			return inv.Name
		}
	}
	return ""
}

// Validate checks the required-field precondition for Save.
func (s *Projects) Validate() error {
	if s.Form.InvestorID == 0 || strings.TrimSpace(s.Form.Name) == "" {
		return common.NewUserError("Investor and Project Name are required", common.ErrValidation)
	}
	return nil
}

// Save creates or updates a project from the form.
func (s *Projects) Save(ctx context.Context) error {
	if err := s.Validate(); err != nil {
		return err
	}

	var err error
	if s.EditingID != 0 {
		err = s.client.Put(ctx, fmt.Sprintf("/projects/%d", s.EditingID), s.Form, nil)
	} else {
		err = s.client.Post(ctx, "/projects", s.Form, nil)
	}
	if err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}

	s.ResetForm()
	return nil
}

// Edit copies a project's editable fields into the form.
func (s *Projects) Edit(prj model.Project) {
	s.EditingID = prj.ID
	s.Form = ProjectForm{
		InvestorID:       prj.InvestorID,
		Name:             prj.Name,
		Sector:           prj.Sector,
		InvestmentAmount: prj.InvestmentAmount.String(),
		Location:         prj.Location,
		Description:      prj.Description,
		Status:           prj.Status,
	}
}

// ResetForm clears the form and leaves create mode active.
func (s *Projects) ResetForm() {
	s.Form = ProjectForm{}
	s.EditingID = 0
}

// Archive soft-deletes a project.
func (s *Projects) Archive(ctx context.Context, id int) error {
	if err := s.client.Post(ctx, fmt.Sprintf("/projects/%d/archive", id), nil, nil); err != nil {
		return fmt.Errorf("failed to archive project %d: %w", id, err)
	}
	return nil
}

// Restore clears a project's archived flag.
func (s *Projects) Restore(ctx context.Context, id int) error {
	if err := s.client.Post(ctx, fmt.Sprintf("/projects/%d/restore", id), nil, nil); err != nil {
		return fmt.Errorf("failed to restore project %d: %w", id, err)
	}
	return nil
}

// Filtered returns the snapshot narrowed by the search text and ordered
// by the active sort field.
func (s *Projects) Filtered() []model.Project {
	out := make([]model.Project, 0, len(s.Items()))
	for _, prj := range s.Items() {
		if matchesSearch(s.Search, prj.Name, prj.Location) {
			out = append(out, prj)
		}
	}

	sortByKey(out, func(prj model.Project) string {
		if s.SortField == ProjectSortSector {
			return prj.Sector
		}
		return prj.Name
	})

	return out
}

// ExportRows serializes the filtered, sorted view for CSV export,
// resolving investor names from the loaded references.
func (s *Projects) ExportRows() [][]string {
	visible := s.Filtered()
	rows := make([][]string, 0, len(visible))
	for _, prj := range visible {
		rows = append(rows, []string{
			strconv.Itoa(prj.ID),
			s.InvestorName(prj.InvestorID),
			prj.Name,
			prj.Sector,
			prj.InvestmentAmount.String(),
			prj.Location,
			prj.Description,
			prj.Status,
		})
	}
	return rows
}

// Export writes the filtered view to projects.csv in the given directory.
func (s *Projects) Export(dir string) (string, error) {
	path := exportPath(dir, "projects.csv")
	if err := export.WriteFile(path, ProjectCSVHeader, s.ExportRows()); err != nil {
		return "", err
	}
	return path, nil
}
