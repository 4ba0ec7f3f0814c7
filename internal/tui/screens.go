package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/TerminusTerminal/invest-desk/internal/apply"
	"github.com/TerminusTerminal/invest-desk/internal/model"
	"github.com/TerminusTerminal/invest-desk/internal/resource"
)

func keyMatches(msg tea.KeyMsg, b key.Binding) bool {
	return key.Matches(msg, b)
}

func (m Model) handleInvestorsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keymap
	rows := m.investors.Filtered()

	switch {
	case keyMatches(msg, k.Search):
		m.startSearch()
		return m, nil

	case keyMatches(msg, k.ToggleFilter):
		m.investors.Filter = toggleFilter(m.investors.Filter)
		m.cursor = 0
		return m, m.loadInvestors()

	case keyMatches(msg, k.ToggleSort):
		if m.investors.SortField == resource.InvestorSortName {
			m.investors.SortField = resource.InvestorSortCompany
		} else {
			m.investors.SortField = resource.InvestorSortName
		}
		return m, nil

	case keyMatches(msg, k.New):
		m.investors.ResetForm()
		m.openInvestorForm()
		return m, nil

	case keyMatches(msg, k.Edit), keyMatches(msg, k.Select):
		if inv, ok := pick(rows, m.cursor); ok {
			m.investors.Edit(inv)
			m.openInvestorForm()
		}
		return m, nil

	case keyMatches(msg, k.Archive):
		if inv, ok := pick(rows, m.cursor); ok {
			id := inv.ID
			m.ask(fmt.Sprintf("Archive investor %q?", inv.Name),
				mutate(ScreenInvestors, func(ctx context.Context) error { return m.investors.Archive(ctx, id) }))
		}
		return m, nil

	case keyMatches(msg, k.Restore):
		if inv, ok := pick(rows, m.cursor); ok {
			id := inv.ID
			m.ask(fmt.Sprintf("Restore investor %q?", inv.Name),
				mutate(ScreenInvestors, func(ctx context.Context) error { return m.investors.Restore(ctx, id) }))
		}
		return m, nil

	case keyMatches(msg, k.Export):
		return m, exportCSV(m.investors.Export, m.cfg.ExportDir)
	}

	return m, nil
}

func (m Model) handleProjectsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keymap
	rows := m.projects.Filtered()

	switch {
	case keyMatches(msg, k.Search):
		m.startSearch()
		return m, nil

	case keyMatches(msg, k.ToggleFilter):
		m.projects.Filter = toggleFilter(m.projects.Filter)
		m.cursor = 0
		return m, m.loadProjects()

	case keyMatches(msg, k.ToggleSort):
		if m.projects.SortField == resource.ProjectSortName {
			m.projects.SortField = resource.ProjectSortSector
		} else {
			m.projects.SortField = resource.ProjectSortName
		}
		return m, nil

	case keyMatches(msg, k.New):
		m.projects.ResetForm()
		m.openProjectForm()
		return m, nil

	case keyMatches(msg, k.Edit), keyMatches(msg, k.Select):
		if prj, ok := pick(rows, m.cursor); ok {
			m.projects.Edit(prj)
			m.openProjectForm()
		}
		return m, nil

	case keyMatches(msg, k.Archive):
		if prj, ok := pick(rows, m.cursor); ok {
			id := prj.ID
			m.ask(fmt.Sprintf("Archive project %q?", prj.Name),
				mutate(ScreenProjects, func(ctx context.Context) error { return m.projects.Archive(ctx, id) }))
		}
		return m, nil

	case keyMatches(msg, k.Restore):
		if prj, ok := pick(rows, m.cursor); ok {
			id := prj.ID
			m.ask(fmt.Sprintf("Restore project %q?", prj.Name),
				mutate(ScreenProjects, func(ctx context.Context) error { return m.projects.Restore(ctx, id) }))
		}
		return m, nil

	case keyMatches(msg, k.Export):
		return m, exportCSV(m.projects.Export, m.cfg.ExportDir)
	}

	return m, nil
}

func (m Model) handleIncentivesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keymap
	rows := m.incentives.Filtered()

	switch {
	case keyMatches(msg, k.Search):
		m.startSearch()
		return m, nil

	case keyMatches(msg, k.ToggleSort):
		if m.incentives.SortField == resource.IncentiveSortTitle {
			m.incentives.SortField = resource.IncentiveSortType
		} else {
			m.incentives.SortField = resource.IncentiveSortTitle
		}
		return m, nil

	case keyMatches(msg, k.New):
		m.incentives.ResetForm()
		m.openIncentiveForm()
		return m, nil

	case keyMatches(msg, k.Edit), keyMatches(msg, k.Select):
		if inc, ok := pick(rows, m.cursor); ok {
			m.incentives.Edit(inc)
			m.openIncentiveForm()
		}
		return m, nil

	case keyMatches(msg, k.Delete):
		if inc, ok := pick(rows, m.cursor); ok {
			id := inc.ID
			m.ask(fmt.Sprintf("Permanently delete incentive %q?", inc.Title),
				mutate(ScreenIncentives, func(ctx context.Context) error { return m.incentives.Delete(ctx, id) }))
		}
		return m, nil

	case keyMatches(msg, k.Export):
		return m, exportCSV(m.incentives.Export, m.cfg.ExportDir)
	}

	return m, nil
}

func (m Model) handleApplicationsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keymap
	rows := m.applications.Items()

	switch {
	case keyMatches(msg, k.ToggleFilter):
		m.applications.Filter = toggleFilter(m.applications.Filter)
		m.cursor = 0
		return m, m.loadApplications()

	case keyMatches(msg, k.Approve):
		if app, ok := pick(rows, m.cursor); ok {
			id := app.ID
			m.ask(fmt.Sprintf("Approve application #%d?", id),
				mutate(ScreenApplications, func(ctx context.Context) error {
					return m.applications.Decide(ctx, id, model.DecisionApprove)
				}))
		}
		return m, nil

	case keyMatches(msg, k.Reject):
		if app, ok := pick(rows, m.cursor); ok {
			id := app.ID
			m.ask(fmt.Sprintf("Reject application #%d?", id),
				mutate(ScreenApplications, func(ctx context.Context) error {
					return m.applications.Decide(ctx, id, model.DecisionReject)
				}))
		}
		return m, nil

	case keyMatches(msg, k.Archive):
		if app, ok := pick(rows, m.cursor); ok {
			id := app.ID
			m.ask(fmt.Sprintf("Archive application #%d?", id),
				mutate(ScreenApplications, func(ctx context.Context) error { return m.applications.Archive(ctx, id) }))
		}
		return m, nil

	case keyMatches(msg, k.Restore):
		if app, ok := pick(rows, m.cursor); ok {
			id := app.ID
			m.ask(fmt.Sprintf("Restore application #%d?", id),
				mutate(ScreenApplications, func(ctx context.Context) error { return m.applications.Restore(ctx, id) }))
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleReportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keymap

	switch {
	case keyMatches(msg, k.Search):
		m.startSearch()
		return m, nil

	case keyMatches(msg, k.Select):
		if card, ok := pick(m.rep.Visible(), m.cursor); ok {
			return m, m.summarize(card.Key)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleApplyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.flow.State {
	case apply.StateSubmitted:
		switch msg.String() {
		case "n":
			m.flow.Reset()
			m.openApplyForm()
			return m, nil
		case "esc":
			m.screen = ScreenApplications
			m.cursor = 0
			return m, m.loadApplications()
		}
	case apply.StateLoading:
		if msg.String() == "esc" {
			m.screen = ScreenApplications
			return m, nil
		}
	case apply.StateReady:
		switch msg.String() {
		case "n", "enter":
			m.openApplyForm()
			return m, nil
		case "esc":
			m.screen = ScreenApplications
			m.cursor = 0
			return m, m.loadApplications()
		}
	}
	return m, nil
}

// Form builders. Each commit parses the field values into the module's
// form struct and runs the save; module validation happens there.

func (m *Model) openLoginForm() {
	m.mode = modeForm
	m.form = newForm("Sign In",
		func(values []string) tea.Cmd {
			return m.login(values[0], values[1])
		},
		newField("Email", "", false),
		newField("Password", "", true),
	)
}

func (m *Model) openInvestorForm() {
	m.mode = modeForm
	title := "New Investor"
	if m.investors.EditingID != 0 {
		title = "Edit Investor"
	}
	f := m.investors.Form
	m.form = newForm(title,
		func(values []string) tea.Cmd {
			m.investors.Form = resource.InvestorForm{
				Name:       values[0],
				Email:      values[1],
				Phone:      values[2],
				Company:    values[3],
				Investment: values[4],
			}
			return mutate(ScreenInvestors, m.investors.Save)
		},
		newField("Name", f.Name, false),
		newField("Email", f.Email, false),
		newField("Phone", f.Phone, false),
		newField("Company", f.Company, false),
		newField("Investment", f.Investment, false),
	)
}

func (m *Model) openProjectForm() {
	m.mode = modeForm
	title := "New Project"
	if m.projects.EditingID != 0 {
		title = "Edit Project"
	}
	f := m.projects.Form
	investorID := ""
	if f.InvestorID != 0 {
		investorID = strconv.Itoa(f.InvestorID)
	}
	m.form = newForm(title,
		func(values []string) tea.Cmd {
			m.projects.Form = resource.ProjectForm{
				InvestorID:       atoiField(values[0]),
				Name:             values[1],
				Sector:           values[2],
				InvestmentAmount: values[3],
				Location:         values[4],
				Description:      values[5],
				Status:           values[6],
			}
			return mutate(ScreenProjects, m.projects.Save)
		},
		newField("Investor ID", investorID, false),
		newField("Name", f.Name, false),
		newField("Sector", f.Sector, false),
		newField("Investment Amount", f.InvestmentAmount, false),
		newField("Location", f.Location, false),
		newField("Description", f.Description, false),
		newField("Status", f.Status, false),
	)
}

func (m *Model) openIncentiveForm() {
	m.mode = modeForm
	title := "New Incentive"
	if m.incentives.EditingID != 0 {
		title = "Edit Incentive"
	}
	f := m.incentives.Form
	duration := ""
	if f.DurationMonths != 0 {
		duration = strconv.Itoa(f.DurationMonths)
	}
	m.form = newForm(title,
		func(values []string) tea.Cmd {
			m.incentives.Form = resource.IncentiveForm{
				Title:          values[0],
				Description:    values[1],
				Type:           values[2],
				MaxAmount:      values[3],
				Conditions:     values[4],
				DurationMonths: atoiField(values[5]),
				Active:         values[6] != "no" && values[6] != "false",
			}
			return mutate(ScreenIncentives, m.incentives.Save)
		},
		newField("Title", f.Title, false),
		newField("Description", f.Description, false),
		newField("Type", f.Type, false),
		newField("Max Amount", f.MaxAmount, false),
		newField("Conditions", f.Conditions, false),
		newField("Duration (months)", duration, false),
		newField("Active (yes/no)", activeText(f.Active), false),
	)
}

func (m *Model) openApplyForm() {
	m.mode = modeForm
	m.form = newForm("New Application",
		func(values []string) tea.Cmd {
			m.flow.Form = apply.Form{
				InvestorID:      atoiField(values[0]),
				ProjectID:       atoiField(values[1]),
				IncentiveID:     atoiField(values[2]),
				RequestedAmount: atofField(values[3]),
			}
			return m.submitApplication()
		},
		newField("Investor ID", "", false),
		newField("Project ID", "", false),
		newField("Incentive ID", "", false),
		newField("Requested Amount", "", false),
	)
}

func toggleFilter(f model.StatusFilter) model.StatusFilter {
	if f == model.FilterActive {
		return model.FilterArchived
	}
	return model.FilterActive
}

func activeText(active bool) string {
	if active {
		return "yes"
	}
	return "no"
}

func pick[T any](items []T, i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(items) {
		return zero, false
	}
	return items[i], true
}
