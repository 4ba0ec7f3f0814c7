package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/TerminusTerminal/invest-desk/internal/apply"
	"github.com/TerminusTerminal/invest-desk/internal/cli"
	"github.com/TerminusTerminal/invest-desk/internal/model"
)

var (
	tabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(cli.SubtleColor)

	activeTabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(cli.PrimaryColor).
			Underline(true)

	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(cli.PrimaryColor)

	headerRowStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(cli.SubtleColor)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(cli.SubtleColor).
			MarginTop(1)
)

var tabTitles = map[Screen]string{
	ScreenInvestors:    "Investors",
	ScreenProjects:     "Projects",
	ScreenIncentives:   "Incentives",
	ScreenApplications: "Applications",
	ScreenDashboard:    "Dashboard",
	ScreenReport:       "Report",
}

func (m Model) renderTabs() string {
	parts := make([]string, 0, len(tabOrder))
	for _, s := range tabOrder {
		style := tabStyle
		if s == m.screen {
			style = activeTabStyle
		}
		parts = append(parts, style.Render(tabTitles[s]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderStatusBar() string {
	if m.lastError != nil {
		return statusBarStyle.Render(cli.FormatError(m.lastError.Error()))
	}
	if m.status != "" {
		return statusBarStyle.Render(m.status)
	}
	return statusBarStyle.Render("? help · Tab sections · q quit")
}

func (m Model) renderLogin() string {
	if m.form == nil {
		// Startup with a stored session skips the form entirely.
		return cli.FormatTitle("Investment Promotion Office")
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.renderForm(),
		m.renderStatusBar(),
	)
	return cli.RenderBox("Investment Promotion Office", body)
}

func (m Model) renderForm() string {
	if m.form == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(cli.TitleStyle.Render(m.form.title))
	b.WriteString("\n")
	for i, f := range m.form.fields {
		marker := "  "
		if i == m.form.focus {
			marker = cli.AccentStyle.Render("> ")
		}
		fmt.Fprintf(&b, "%s%-20s %s\n", marker, f.label+":", f.input.View())
	}
	b.WriteString(cli.SubtleStyle.Render("\nEnter next/submit · Esc cancel"))
	return b.String()
}

func (m Model) renderListScreen() string {
	var body string
	switch m.screen {
	case ScreenInvestors:
		body = m.renderInvestorTable()
	case ScreenProjects:
		body = m.renderProjectTable()
	case ScreenIncentives:
		body = m.renderIncentiveTable()
	case ScreenApplications:
		body = m.renderApplicationTable()
	}

	sections := []string{m.renderTabs(), ""}

	if m.mode == modeSearch {
		sections = append(sections, "Search: "+m.search.View())
	} else if m.search.Value() != "" {
		sections = append(sections, cli.SubtleStyle.Render("Search: "+m.search.Value()))
	}

	if m.mode == modeForm && m.form != nil {
		sections = append(sections, m.renderForm())
	} else {
		sections = append(sections, body)
	}

	if m.mode == modeConfirm {
		sections = append(sections, cli.WarningStyle.Render(m.confirm.prompt+" (y/N)"))
	}

	sections = append(sections, m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTable renders a fixed-layout table with the cursor row
// highlighted. Rows come pre-filtered and pre-sorted from the module.
func (m Model) renderTable(header string, rows []string) string {
	var b strings.Builder
	b.WriteString(headerRowStyle.Render(header))
	b.WriteString("\n")

	if len(rows) == 0 {
		b.WriteString(cli.SubtleStyle.Render("  (no records)"))
		return b.String()
	}

	for i, row := range rows {
		if i == m.cursor {
			b.WriteString(selectedRowStyle.Render(row))
		} else {
			b.WriteString(row)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderInvestorTable() string {
	rows := make([]string, 0, len(m.investors.Filtered()))
	for _, inv := range m.investors.Filtered() {
		rows = append(rows, fmt.Sprintf(" %4d  %-24s  %-28s  %-20s %12s",
			inv.ID, clip(inv.Name, 24), clip(inv.Email, 28), clip(inv.Company, 20), inv.Investment.String()))
	}
	header := fmt.Sprintf(" %4s  %-24s  %-28s  %-20s %12s", "ID", "Name", "Email", "Company", "Investment")
	return m.renderTable(header, rows) + m.renderFilterLine(m.investors.Filter)
}

func (m Model) renderProjectTable() string {
	rows := make([]string, 0, len(m.projects.Filtered()))
	for _, prj := range m.projects.Filtered() {
		rows = append(rows, fmt.Sprintf(" %4d  %-24s  %-20s  %-16s  %-14s %12s",
			prj.ID, clip(prj.Name, 24), clip(m.projects.InvestorName(prj.InvestorID), 20),
			clip(prj.Sector, 16), clip(prj.Location, 14), prj.InvestmentAmount.String()))
	}
	header := fmt.Sprintf(" %4s  %-24s  %-20s  %-16s  %-14s %12s",
		"ID", "Name", "Investor", "Sector", "Location", "Amount")
	return m.renderTable(header, rows) + m.renderFilterLine(m.projects.Filter)
}

func (m Model) renderIncentiveTable() string {
	rows := make([]string, 0, len(m.incentives.Filtered()))
	for _, inc := range m.incentives.Filtered() {
		active := "yes"
		if !inc.Active.Bool() {
			active = "no"
		}
		rows = append(rows, fmt.Sprintf(" %4d  %-28s  %-14s %12s  %8d  %-6s",
			inc.ID, clip(inc.Title, 28), clip(inc.Type, 14), inc.MaxAmount.String(), inc.DurationMonths, active))
	}
	header := fmt.Sprintf(" %4s  %-28s  %-14s %12s  %8s  %-6s",
		"ID", "Title", "Type", "Max Amount", "Months", "Active")
	return m.renderTable(header, rows)
}

func (m Model) renderApplicationTable() string {
	rows := make([]string, 0, len(m.applications.Items()))
	for _, app := range m.applications.Items() {
		rows = append(rows, fmt.Sprintf(" %4d  %-22s  %-22s  %-20s %12.0f  %s",
			app.ID, clip(app.InvestorName(), 22), clip(app.ProjectName(), 22),
			clip(app.IncentiveTitle(), 20), app.RequestedAmount, statusBadge(app.Status)))
	}
	header := fmt.Sprintf(" %4s  %-22s  %-22s  %-20s %12s  %s",
		"ID", "Investor", "Project", "Incentive", "Requested", "Status")
	return m.renderTable(header, rows) + m.renderFilterLine(m.applications.Filter)
}

func (m Model) renderFilterLine(filter model.StatusFilter) string {
	if filter == model.FilterArchived {
		return "\n" + cli.WarningStyle.Render("Showing archived records (f to switch)")
	}
	return ""
}

func statusBadge(status model.ApplicationStatus) string {
	switch status {
	case model.StatusApproved:
		return cli.SuccessStyle.Render("approved")
	case model.StatusRejected:
		return cli.ErrorStyle.Render("rejected")
	default:
		return cli.AccentStyle.Render("pending")
	}
}

func (m Model) renderDashboard() string {
	s := m.dashView.Summary
	counters := lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("Investors      %s", cli.AccentStyle.Render(fmt.Sprintf("%d", s.TotalInvestors))),
		fmt.Sprintf("Projects       %s", cli.AccentStyle.Render(fmt.Sprintf("%d", s.TotalProjects))),
		fmt.Sprintf("Incentives     %s", cli.AccentStyle.Render(fmt.Sprintf("%d", s.TotalIncentives))),
		fmt.Sprintf("Applications   %s", cli.AccentStyle.Render(fmt.Sprintf("%d", s.TotalApplications))),
		fmt.Sprintf("Allocated      %s", cli.AccentStyle.Render(fmt.Sprintf("%.0f", s.TotalAllocatedAmount))),
	)

	var series strings.Builder
	series.WriteString(headerRowStyle.Render("Investors over time"))
	series.WriteString("\n")
	for _, p := range m.dashView.InvestorsOverTime {
		fmt.Fprintf(&series, "  %-10s %s\n", p.Month, bar(p.Investors))
	}
	series.WriteString(headerRowStyle.Render("Allocated over time"))
	series.WriteString("\n")
	for _, p := range m.dashView.AllocatedOverTime {
		fmt.Fprintf(&series, "  %-10s %.0f\n", p.Month, p.Amount)
	}
	series.WriteString(headerRowStyle.Render("Status breakdown"))
	series.WriteString("\n")
	for _, sc := range m.dashView.StatusBreakdown {
		fmt.Fprintf(&series, "  %-10s %s\n", sc.Status, bar(sc.Count))
	}
	if m.dashView.Placeholder {
		series.WriteString(cli.SubtleStyle.Render("Series data is illustrative; the backend sent none."))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabs(),
		"",
		cli.RenderBox(cli.ChartIcon+" Overview", counters),
		series.String(),
		m.renderStatusBar(),
	)
	return body
}

func bar(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 40 {
		n = 40
	}
	return cli.InfoStyle.Render(strings.Repeat("█", n)) + fmt.Sprintf(" %d", n)
}

func (m Model) renderReport() string {
	cards := m.rep.Visible()

	var b strings.Builder
	for i, card := range cards {
		marker := "  "
		if i == m.cursor {
			marker = cli.AccentStyle.Render("> ")
		}
		state := m.rep.State(card.Key)
		b.WriteString(marker + headerRowStyle.Render(card.Title()) + "  " + card.Value.Text() + "\n")
		switch {
		case state.Busy:
			b.WriteString(cli.SubtleStyle.Render("    summarizing...") + "\n")
		case state.Err != nil:
			b.WriteString("    " + cli.FormatError(state.Err.Error()) + "\n")
		case state.Summary != "":
			b.WriteString(cli.InfoStyle.Render("    "+state.Summary) + "\n")
		}
	}
	if len(cards) == 0 {
		b.WriteString(cli.SubtleStyle.Render("  (no report data)"))
	}

	sections := []string{m.renderTabs(), ""}
	if m.mode == modeSearch {
		sections = append(sections, "Filter: "+m.search.View())
	} else if m.rep.Filter != "" {
		sections = append(sections, cli.SubtleStyle.Render("Filter: "+m.rep.Filter))
	}
	sections = append(sections,
		b.String(),
		cli.SubtleStyle.Render("Enter summarize · / filter · Ctrl+R refresh"),
		m.renderStatusBar(),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderApply() string {
	var body string
	switch m.flow.State {
	case apply.StateLoading:
		body = cli.SubtleStyle.Render("Loading investors, projects, and incentives...")
	case apply.StateSubmitted:
		body = lipgloss.JoinVertical(lipgloss.Left,
			cli.FormatSuccess("Application submitted."),
			cli.SubtleStyle.Render("n new application · Esc back to applications"),
		)
	default:
		if m.mode == modeForm && m.form != nil {
			body = lipgloss.JoinVertical(lipgloss.Left,
				m.renderForm(),
				cli.SubtleStyle.Render(fmt.Sprintf("%d investors · %d projects · %d incentives loaded",
					len(m.flow.Investors), len(m.flow.Projects), len(m.flow.Incentives))),
			)
		} else {
			body = cli.SubtleStyle.Render("n start a new application · Esc back")
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		cli.FormatTitle("New Application"),
		"",
		body,
		m.renderStatusBar(),
	)
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(cli.FormatTitle("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, group := range m.keymap.FullHelp() {
		for _, binding := range group {
			fmt.Fprintf(&b, "  %-14s %s\n", binding.Help().Key, binding.Help().Desc)
		}
		b.WriteString("\n")
	}
	b.WriteString(cli.SubtleStyle.Render("? to close"))
	return b.String()
}

// clip shortens s to at most n runes, ending with an ellipsis when
// something was cut.
func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 1 {
		return string(runes[:n])
	}
	return string(runes[:n-1]) + "…"
}
