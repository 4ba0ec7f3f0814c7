package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TerminusTerminal/invest-desk/internal/api"
)

// Commands run module operations off the event loop and deliver the
// outcome back as a message. Snapshot loads are sequence-keyed; the
// Update loop applies them through the module so stale results from
// superseded loads are discarded.

func (m Model) loadInvestors() tea.Cmd {
	return func() tea.Msg {
		return investorsLoadedMsg{res: m.investors.Load(context.Background())}
	}
}

func (m Model) loadProjects() tea.Cmd {
	return func() tea.Msg {
		return projectsLoadedMsg{res: m.projects.Load(context.Background())}
	}
}

func (m Model) loadIncentives() tea.Cmd {
	return func() tea.Msg {
		return incentivesLoadedMsg{res: m.incentives.Load(context.Background())}
	}
}

func (m Model) loadApplications() tea.Cmd {
	return func() tea.Msg {
		return applicationsLoadedMsg{res: m.applications.Load(context.Background())}
	}
}

func (m Model) loadProjectRefs() tea.Cmd {
	return func() tea.Msg {
		if err := m.projects.LoadInvestorRefs(context.Background()); err != nil {
			return errorMsg{err: err}
		}
		return nil
	}
}

func (m Model) loadDashboard() tea.Cmd {
	return func() tea.Msg {
		view, err := m.dash.Load(context.Background())
		return dashboardLoadedMsg{view: view, err: err}
	}
}

func (m Model) loadReport() tea.Cmd {
	return func() tea.Msg {
		return reportLoadedMsg{err: m.rep.Load(context.Background())}
	}
}

func (m Model) loadRefs() tea.Cmd {
	return func() tea.Msg {
		return refsLoadedMsg{err: m.flow.LoadRefs(context.Background())}
	}
}

// mutate runs a mutation and reports back with the screen whose
// snapshot must be re-fetched on success.
func mutate(screen Screen, op func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{screen: screen, err: op(context.Background())}
	}
}

func (m Model) submitApplication() tea.Cmd {
	return func() tea.Msg {
		return submittedMsg{err: m.flow.Submit(context.Background())}
	}
}

func (m Model) summarize(key string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.rep.Summarize(context.Background(), key)
		return summaryReadyMsg{key: key, err: err}
	}
}

func (m Model) login(email, password string) tea.Cmd {
	client := m.cfg.Client
	return func() tea.Msg {
		sess, err := api.Login(context.Background(), client, email, password)
		return loginDoneMsg{sess: sess, err: err}
	}
}

func exportCSV(run func(string) (string, error), dir string) tea.Cmd {
	return func() tea.Msg {
		path, err := run(dir)
		return exportDoneMsg{path: path, err: err}
	}
}
