package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/TerminusTerminal/invest-desk/internal/apply"
	"github.com/TerminusTerminal/invest-desk/internal/common"
	"github.com/TerminusTerminal/invest-desk/internal/dashboard"
	"github.com/TerminusTerminal/invest-desk/internal/report"
	"github.com/TerminusTerminal/invest-desk/internal/resource"
	"github.com/TerminusTerminal/invest-desk/internal/session"
)

// Screen identifies the active screen.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenInvestors
	ScreenProjects
	ScreenIncentives
	ScreenApplications
	ScreenDashboard
	ScreenReport
	ScreenApply
	ScreenHelp
)

// tabOrder is the Tab-key cycle through the main screens.
var tabOrder = []Screen{
	ScreenInvestors,
	ScreenProjects,
	ScreenIncentives,
	ScreenApplications,
	ScreenDashboard,
	ScreenReport,
}

// Mode is the interaction mode layered over the active screen.
type Mode int

const (
	modeList Mode = iota
	modeForm
	modeSearch
	modeConfirm
)

type confirmState struct {
	cmd    tea.Cmd
	prompt string
}

// Model holds the browser state. Resource modules own the snapshots;
// the model owns navigation, forms, and message routing.
type Model struct {
	cfg    Config
	keymap KeyMap

	investors    *resource.Investors
	projects     *resource.Projects
	incentives   *resource.Incentives
	applications *resource.Applications
	dash         *dashboard.Module
	rep          *report.Module
	flow         *apply.Flow

	dashView dashboard.View

	form    *form
	search  textinput.Model
	confirm confirmState

	status     string
	lastError  error
	screen     Screen
	prevScreen Screen
	mode       Mode
	cursor     int
	width      int
	height     int
	quitting   bool
}

// newModel creates a model with the given configuration.
func newModel(cfg Config) Model {
	search := textinput.New()
	search.CharLimit = 128

	screen := ScreenLogin
	if cfg.Session != nil && cfg.Session.Active() {
		screen = ScreenInvestors
	}

	return Model{
		cfg:          cfg,
		keymap:       DefaultKeyMap(),
		investors:    resource.NewInvestors(cfg.Client),
		projects:     resource.NewProjects(cfg.Client),
		incentives:   resource.NewIncentives(cfg.Client),
		applications: resource.NewApplications(cfg.Client),
		dash:         dashboard.New(cfg.Client),
		rep:          report.New(cfg.Client, cfg.Summarizer),
		flow:         apply.New(cfg.Client),
		search:       search,
		screen:       screen,
		width:        cfg.Width,
		height:       cfg.Height,
	}
}

// Init starts on the investors screen when a session exists, otherwise
// on the login form.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen}

	if m.cfg.Session.Active() {
		cmds = append(cmds, m.loadInvestors())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case investorsLoadedMsg:
		m.investors.Apply(msg.res)
		return m.afterLoad(msg.res.Err), nil

	case projectsLoadedMsg:
		m.projects.Apply(msg.res)
		return m.afterLoad(msg.res.Err), nil

	case incentivesLoadedMsg:
		m.incentives.Apply(msg.res)
		return m.afterLoad(msg.res.Err), nil

	case applicationsLoadedMsg:
		m.applications.Apply(msg.res)
		return m.afterLoad(msg.res.Err), nil

	case dashboardLoadedMsg:
		if msg.err != nil {
			return m.afterLoad(msg.err), nil
		}
		m.dashView = msg.view
		return m, nil

	case reportLoadedMsg:
		m.cursor = 0
		return m.afterLoad(msg.err), nil

	case refsLoadedMsg:
		if msg.err != nil {
			return m.fail(msg.err), nil
		}
		m.openApplyForm()
		return m, nil

	case mutationDoneMsg:
		if msg.err != nil {
			return m.fail(msg.err), nil
		}
		m.mode = modeList
		m.form = nil
		m.status = "Saved."
		return m, m.reloadCmd(msg.screen)

	case submittedMsg:
		if msg.err != nil {
			return m.fail(msg.err), nil
		}
		m.mode = modeList
		m.form = nil
		m.status = "Application submitted."
		return m, nil

	case summaryReadyMsg:
		if msg.err != nil {
			return m.fail(msg.err), nil
		}
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			return m.fail(msg.err), nil
		}
		m.status = "Exported to " + msg.path
		return m, nil

	case loginDoneMsg:
		return m.handleLogin(msg)

	case errorMsg:
		return m.fail(msg.err), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// afterLoad records a load failure and redirects expired sessions to
// the login screen. The snapshot itself was already reset by Apply.
func (m Model) afterLoad(err error) Model {
	if err == nil {
		m.lastError = nil
		m.clampCursor()
		return m
	}
	return m.fail(err)
}

func (m Model) fail(err error) Model {
	m.lastError = err
	if common.IsAuthFailure(err) {
		return m.toLogin()
	}
	return m
}

func (m Model) toLogin() Model {
	*m.cfg.Session = session.Session{}
	if m.cfg.Store != nil {
		_ = m.cfg.Store.Clear()
	}
	m.screen = ScreenLogin
	m.mode = modeForm
	m.openLoginForm()
	m.status = "Session expired. Please sign in again."
	return m
}

func (m Model) handleLogin(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.lastError = msg.err
		return m, nil
	}

	*m.cfg.Session = msg.sess
	if m.cfg.Store != nil {
		if err := m.cfg.Store.Save(msg.sess); err != nil {
			m.lastError = err
		}
	}

	m.lastError = nil
	m.status = "Welcome, " + msg.sess.UserName
	m.screen = ScreenInvestors
	m.mode = modeList
	m.form = nil
	return m, m.loadInvestors()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.mode {
	case modeForm:
		return m.handleFormKey(msg)
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeConfirm:
		return m.handleConfirmKey(msg)
	}

	return m.handleListKey(msg)
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" && m.screen != ScreenLogin {
		m.mode = modeList
		m.form = nil
		m.resetActiveForm()
		return m, nil
	}
	if m.form == nil {
		return m, nil
	}
	return m, m.form.update(msg)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.mode = modeList
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applySearch()
	m.cursor = 0
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeList
	cmd := m.confirm.cmd
	m.confirm = confirmState{}
	if s := msg.String(); s == "y" || s == "Y" || s == "enter" {
		return m, cmd
	}
	m.status = "Cancelled."
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keymap

	switch {
	case keyMatches(msg, k.Quit):
		m.quitting = true
		return m, tea.Quit

	case keyMatches(msg, k.Help):
		if m.screen == ScreenHelp {
			m.screen = m.prevScreen
		} else {
			m.prevScreen = m.screen
			m.screen = ScreenHelp
		}
		return m, nil

	case keyMatches(msg, k.NextTab):
		return m.switchTab(1)

	case keyMatches(msg, k.PrevTab):
		return m.switchTab(-1)

	case keyMatches(msg, k.Dashboard):
		m.screen = ScreenDashboard
		return m, m.loadDashboard()

	case keyMatches(msg, k.Report):
		m.screen = ScreenReport
		m.cursor = 0
		return m, m.loadReport()

	case keyMatches(msg, k.Apply):
		m.screen = ScreenApply
		m.mode = modeList
		m.flow.Reset()
		m.flow.State = apply.StateLoading
		return m, m.loadRefs()

	case keyMatches(msg, k.Refresh):
		return m, m.reloadCmd(m.screen)

	case keyMatches(msg, k.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case keyMatches(msg, k.Down):
		m.cursor++
		m.clampCursor()
		return m, nil
	}

	return m.handleScreenKey(msg)
}

// handleScreenKey handles keys whose meaning depends on the screen.
func (m Model) handleScreenKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case ScreenInvestors:
		return m.handleInvestorsKey(msg)
	case ScreenProjects:
		return m.handleProjectsKey(msg)
	case ScreenIncentives:
		return m.handleIncentivesKey(msg)
	case ScreenApplications:
		return m.handleApplicationsKey(msg)
	case ScreenReport:
		return m.handleReportKey(msg)
	case ScreenApply:
		return m.handleApplyKey(msg)
	}
	return m, nil
}

func (m Model) switchTab(dir int) (tea.Model, tea.Cmd) {
	idx := 0
	for i, s := range tabOrder {
		if s == m.screen {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(tabOrder)) % len(tabOrder)
	m.screen = tabOrder[idx]
	m.cursor = 0
	m.syncSearch()
	return m, m.reloadCmd(m.screen)
}

// reloadCmd returns the snapshot re-fetch command for a screen.
func (m Model) reloadCmd(screen Screen) tea.Cmd {
	switch screen {
	case ScreenInvestors:
		return m.loadInvestors()
	case ScreenProjects:
		return tea.Batch(m.loadProjects(), m.loadProjectRefs())
	case ScreenIncentives:
		return m.loadIncentives()
	case ScreenApplications:
		return m.loadApplications()
	case ScreenDashboard:
		return m.loadDashboard()
	case ScreenReport:
		return m.loadReport()
	}
	return nil
}

// applySearch copies the search box into the active module's filter.
func (m *Model) applySearch() {
	text := m.search.Value()
	switch m.screen {
	case ScreenInvestors:
		m.investors.Search = text
	case ScreenProjects:
		m.projects.Search = text
	case ScreenIncentives:
		m.incentives.Search = text
	case ScreenReport:
		m.rep.Filter = text
	}
}

// syncSearch restores the search box from the module owning the screen.
func (m *Model) syncSearch() {
	switch m.screen {
	case ScreenInvestors:
		m.search.SetValue(m.investors.Search)
	case ScreenProjects:
		m.search.SetValue(m.projects.Search)
	case ScreenIncentives:
		m.search.SetValue(m.incentives.Search)
	case ScreenReport:
		m.search.SetValue(m.rep.Filter)
	default:
		m.search.SetValue("")
	}
}

func (m *Model) resetActiveForm() {
	switch m.screen {
	case ScreenInvestors:
		m.investors.ResetForm()
	case ScreenProjects:
		m.projects.ResetForm()
	case ScreenIncentives:
		m.incentives.ResetForm()
	case ScreenApply:
		m.flow.Reset()
	}
}

// rowCount is the number of selectable rows on the active screen.
func (m Model) rowCount() int {
	switch m.screen {
	case ScreenInvestors:
		return len(m.investors.Filtered())
	case ScreenProjects:
		return len(m.projects.Filtered())
	case ScreenIncentives:
		return len(m.incentives.Filtered())
	case ScreenApplications:
		return len(m.applications.Items())
	case ScreenReport:
		return len(m.rep.Visible())
	}
	return 0
}

func (m *Model) clampCursor() {
	if n := m.rowCount(); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) ask(prompt string, cmd tea.Cmd) {
	m.mode = modeConfirm
	m.confirm = confirmState{prompt: prompt, cmd: cmd}
}

func (m *Model) startSearch() {
	m.mode = modeSearch
	m.syncSearch()
	m.search.Focus()
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case ScreenLogin:
		return m.renderLogin()
	case ScreenInvestors, ScreenProjects, ScreenIncentives, ScreenApplications:
		return m.renderListScreen()
	case ScreenDashboard:
		return m.renderDashboard()
	case ScreenReport:
		return m.renderReport()
	case ScreenApply:
		return m.renderApply()
	case ScreenHelp:
		return m.renderHelp()
	}
	return ""
}
