// View rendering for the drift dashboard.
package dashboard

import (
	"fmt"
	"strings"

	"driftwatch/cmd/driftwatch/ui"
	"driftwatch/internal/drift"
	"driftwatch/internal/session"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.reportErr != nil {
		return m.renderRetryScreen()
	}
	if m.loadingReport && m.report == nil {
		return m.renderLoadingScreen()
	}
	if m.report == nil {
		return m.renderLoadingScreen()
	}
	if m.showHelp {
		return m.renderHelp()
	}

	sections := []string{
		m.renderHeader(),
		m.renderMetricCards(),
		m.renderTrend(),
		m.renderBreakdown(),
		m.renderAnalysisPanel(),
		m.renderComparisonPanel(),
		m.renderChatPanel(),
		m.renderFooter(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderLoadingScreen() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.styles.Header.Render(" DriftWatch "),
		"\n",
		m.spinner.View(),
		m.styles.Muted.Render("Loading drift report..."),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// renderRetryScreen is shown when the report itself cannot be loaded.
// Nothing else on the dashboard is meaningful without it.
func (m Model) renderRetryScreen() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.styles.Header.Render(" DriftWatch "),
		"\n",
		m.styles.Error.Render("Could not load the drift report."),
		m.styles.Muted.Render(m.reportErr.Error()),
		"\n",
		m.styles.Body.Render("Press r to retry, q to quit."),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderHelp() string {
	rows := [][2]string{
		{"tab / shift+tab", "switch category"},
		{"ctrl+a or /analyze", "run AI analysis"},
		{"ctrl+p / ctrl+n", "move comparison month"},
		{"ctrl+b or /compare [month]", "compare against previous month"},
		{"alt+1..3", "send a suggested follow-up"},
		{"enter", "send chat message or /command"},
		{"pgup / pgdn", "scroll transcript"},
		{"ctrl+r or /reset", "clear analysis, comparison, and chat"},
		{"/tab <1|2|3>", "switch category by number"},
		{"ctrl+c or /quit", "quit"},
	}
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Keys") + "\n\n")
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("  %s  %s\n",
			m.styles.Bold.Width(28).Render(r[0]),
			m.styles.Muted.Render(r[1])))
	}
	sb.WriteString("\n" + m.styles.Muted.Render("/help to close"))
	return m.styles.Content.Render(sb.String())
}

func (m Model) renderHeader() string {
	title := m.styles.Header.Render(" DriftWatch ")
	subtitle := m.styles.Subtitle.Render("recurring cost drift")

	var status string
	if m.anythingInFlight() {
		status = lipgloss.JoinHorizontal(lipgloss.Center, m.spinner.View(), " ", m.styles.Muted.Render("working..."))
	} else {
		status = m.styles.Down.Render("Ready")
	}

	line := lipgloss.JoinHorizontal(lipgloss.Center, title, " ", subtitle, "  ", status)
	return lipgloss.JoinVertical(lipgloss.Left, line, m.styles.RenderDivider(m.width))
}

func (m Model) renderMetricCards() string {
	r := m.report

	monthly := m.renderMetricCard("Monthly drift", drift.FormatSignedUSD(r.TotalMonthlyDrift), r.TotalMonthlyDrift)
	annual := m.renderMetricCard("Annualized", drift.FormatSignedUSD(r.AnnualizedDrift), r.AnnualizedDrift)

	worst := m.worstCategory()
	var worstCard string
	if worst != nil {
		worstCard = m.renderMetricCard(
			"Largest driver: "+worst.Category.Label(),
			drift.FormatSignedUSD(worst.TotalDrift)+"  "+drift.FormatPct(worst.DriftPct),
			worst.TotalDrift,
		)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, monthly, " ", annual, " ", worstCard)
}

func (m Model) renderMetricCard(label, value string, direction float64) string {
	valStyle := m.styles.MetricValue
	if direction > 0 {
		valStyle = m.styles.Up.Bold(true)
	} else if direction < 0 {
		valStyle = m.styles.Down.Bold(true)
	}
	inner := lipgloss.JoinVertical(
		lipgloss.Left,
		m.styles.MetricLabel.Render(label),
		valStyle.Render(value),
	)
	return m.styles.Card.Render(inner)
}

func (m *Model) worstCategory() *drift.Category {
	var worst *drift.Category
	for i := range m.report.Categories {
		c := &m.report.Categories[i]
		if worst == nil || c.TotalDrift > worst.TotalDrift {
			worst = c
		}
	}
	return worst
}

func (m Model) renderTrend() string {
	trends := m.report.MonthlyTrends
	if len(trends) == 0 {
		return ""
	}

	totals := make([]float64, len(trends))
	lo, hi := trends[0].Total(), trends[0].Total()
	for i, p := range trends {
		totals[i] = p.Total()
		if totals[i] < lo {
			lo = totals[i]
		}
		if totals[i] > hi {
			hi = totals[i]
		}
	}

	cursor := m.selectedMonth()
	label := m.styles.MetricLabel.Render("Total spend ")
	spark := lipgloss.NewStyle().Foreground(ui.CategoryColor(string(m.activeCategory))).Render(ui.Sparkline(totals))
	months := m.styles.Muted.Render(fmt.Sprintf(" %s .. %s", trends[0].Month, trends[len(trends)-1].Month))
	scale := m.styles.Muted.Render(fmt.Sprintf(" (%s to %s)", drift.FormatCompactUSD(lo), drift.FormatCompactUSD(hi)))
	sel := m.styles.Bold.Render("  month: " + cursor)

	return lipgloss.JoinHorizontal(lipgloss.Center, label, spark, months, scale, sel)
}

func (m Model) renderBreakdown() string {
	var tabs []string
	for _, c := range drift.Categories() {
		style := m.styles.TabInactive
		if c == m.activeCategory {
			style = m.styles.TabActive
		}
		tabs = append(tabs, style.Render(c.Label()))
	}
	tabLine := lipgloss.JoinHorizontal(lipgloss.Center, tabs...)

	cat, ok := m.report.CategoryByID(m.activeCategory)
	if !ok {
		return lipgloss.JoinVertical(lipgloss.Left, tabLine,
			m.styles.Muted.Render("No data for this category."))
	}

	table := ui.NewSimpleTable("", []string{"Item", "Before", "After", "Drift", "Drift %"})
	for _, it := range cat.Items {
		tone := ui.ToneNeutral
		switch drift.ItemSeverity(it) {
		case drift.SeverityHigh:
			tone = ui.ToneSevere
		case drift.SeverityElevated:
			tone = ui.ToneElevated
		}
		if it.Drift < 0 {
			tone = ui.ToneDown
		}
		table.AddTonedRow(tone,
			it.Item,
			drift.FormatUSD(it.AvgBefore),
			drift.FormatUSD(it.AvgAfter),
			drift.FormatSignedUSD(it.Drift),
			drift.FormatPct(it.DriftPct),
		)
	}

	totalLine := m.styles.Muted.Render(fmt.Sprintf("Category drift: %s (%s)",
		drift.FormatSignedUSD(cat.TotalDrift), drift.FormatPct(cat.DriftPct)))

	return lipgloss.JoinVertical(lipgloss.Left, tabLine, table.View(m.styles), totalLine)
}

func (m Model) renderAnalysisPanel() string {
	title := m.styles.Title.Render("AI Analysis")

	var body string
	switch m.analysis.State() {
	case session.AnalysisIdle:
		body = m.styles.Muted.Render("Press ctrl+a to ask the AI analyst about this report.")
	case session.AnalysisRequesting:
		body = lipgloss.JoinHorizontal(lipgloss.Center, m.spinner.View(), " ",
			m.styles.Muted.Render("Analyzing cost drift..."))
	case session.AnalysisFailed:
		body = m.styles.Error.Render(m.analysis.Summary())
	case session.AnalysisReady:
		body = m.styles.Body.Render(m.analysis.Summary())
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, body)
}

func (m Model) renderComparisonPanel() string {
	title := m.styles.Title.Render("Month Comparison")

	var body string
	switch m.comparison.State() {
	case session.ComparisonIdle:
		body = m.styles.Muted.Render("ctrl+p/ctrl+n to pick a month, ctrl+b to compare.")
	case session.ComparisonRequesting:
		body = lipgloss.JoinHorizontal(lipgloss.Center, m.spinner.View(), " ",
			m.styles.Muted.Render("Comparing "+m.comparison.Month()+" against the prior month..."))
	case session.ComparisonFailed:
		if m.comparison.Err() == session.ErrNoPriorMonth {
			body = m.styles.Warning.Render(session.NotEnoughPriorDataNotice)
		} else {
			body = m.styles.Error.Render("Comparison failed. Press ctrl+b to retry.")
		}
	case session.ComparisonReady:
		body = m.safeRenderMarkdown(m.comparison.Insight())
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, body)
}

func (m Model) renderChatPanel() string {
	title := m.styles.Title.Render("Chat")

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.Theme.Accent).
		Padding(0, 1)

	parts := []string{title, m.viewport.View()}
	if sugg := m.renderSuggestions(); sugg != "" {
		parts = append(parts, sugg)
	}
	parts = append(parts, inputStyle.Render(m.textinput.View()))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderSuggestions() string {
	suggestions := m.conversation.Suggestions()
	if len(suggestions) == 0 {
		return ""
	}
	var parts []string
	for i, s := range suggestions {
		parts = append(parts, m.styles.Badge.Render(fmt.Sprintf("alt+%d", i+1))+" "+m.styles.Info.Render(s))
	}
	return "  " + strings.Join(parts, "   ")
}

// renderTranscript renders the conversation for the chat viewport.
func (m Model) renderTranscript() string {
	turns := m.conversation.Turns()
	if len(turns) == 0 {
		return m.styles.Muted.Render("Run an analysis or ask a question to start the conversation.")
	}

	var sb strings.Builder
	for _, turn := range turns {
		switch turn.Role {
		case session.RoleUser:
			userStyle := m.styles.Bold.
				Foreground(m.styles.Theme.Primary).
				MarginTop(1)
			sb.WriteString(userStyle.Render("You") + "\n")
			sb.WriteString(m.styles.UserInput.Render(turn.Content))
			sb.WriteString("\n")

		default:
			assistantStyle := m.styles.Bold.
				Foreground(m.styles.Theme.Accent).
				MarginTop(1)
			sb.WriteString(assistantStyle.Render("DriftWatch") + "\n")
			sb.WriteString(m.styles.AgentResponse.Render(m.safeRenderMarkdown(turn.Content)))
			sb.WriteString("\n")
		}
	}
	if m.conversation.InFlight() {
		sb.WriteString(m.spinner.View() + m.styles.Muted.Render(" thinking..."))
	}
	return sb.String()
}

// safeRenderMarkdown renders markdown with panic recovery.
func (m Model) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	if m.renderer != nil && content != "" {
		rendered, err := m.renderer.Render(content)
		if err == nil {
			return rendered
		}
	}
	return content
}

func (m Model) renderFooter() string {
	hotkeys := "tab: category | ctrl+a: analyze | ctrl+b: compare | ctrl+r: reset | /help"
	line := m.styles.Footer.Render(hotkeys)
	if m.statusLine != "" {
		line = lipgloss.JoinVertical(lipgloss.Left,
			m.styles.Warning.Render(m.statusLine), line)
	}
	return line
}
