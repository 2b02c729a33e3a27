// Slash command handling for the dashboard input line.
package dashboard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleCommand(input string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return m, nil
	}
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "/analyze":
		return m.startAnalysis()

	case "/compare":
		if len(args) > 0 {
			if !m.selectMonthByName(args[0]) {
				m.statusLine = fmt.Sprintf("No month %q in the report.", args[0])
				return m, nil
			}
		}
		return m.startComparison()

	case "/tab":
		if len(args) == 0 {
			m.statusLine = "Usage: /tab <1|2|3|people|ai|saas>"
			return m, nil
		}
		cat, err := categoryByArg(args[0])
		if err != nil {
			m.statusLine = err.Error()
			return m, nil
		}
		m.activeCategory = m.clampCategory(cat)
		return m, nil

	case "/reset":
		return m.resetAll()

	case "/help":
		m.showHelp = !m.showHelp
		return m, nil

	case "/quit", "/exit":
		return m, tea.Quit
	}

	m.statusLine = fmt.Sprintf("Unknown command %s. Try /help.", cmd)
	return m, nil
}

// selectMonthByName moves the comparison cursor to the named month.
func (m *Model) selectMonthByName(month string) bool {
	if m.report == nil {
		return false
	}
	idx := m.report.TrendIndex(month)
	if idx < 0 {
		return false
	}
	m.monthIdx = idx
	m.comparison.SelectMonth(month)
	return true
}
