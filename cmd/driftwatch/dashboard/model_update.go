package dashboard

import (
	"errors"
	"fmt"
	"strings"

	"driftwatch/internal/drift"
	"driftwatch/internal/session"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Update is the main message loop.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rebuildRenderer()
		chatHeight := m.height / 3
		if chatHeight < 6 {
			chatHeight = 6
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, chatHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = chatHeight
		}
		m.textinput.Width = msg.Width - 8
		m.refreshTranscript()
		return m, nil

	case spinner.TickMsg:
		if m.anythingInFlight() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case reportMsg:
		m.report = msg.report
		m.reportErr = nil
		m.loadingReport = false
		m.activeCategory = m.clampCategory(m.activeCategory)
		if len(m.report.MonthlyTrends) > 0 {
			m.monthIdx = len(m.report.MonthlyTrends) - 1
			m.comparison.SelectMonth(m.report.MonthlyTrends[m.monthIdx].Month)
		}
		return m, nil

	case reportErrMsg:
		m.reportErr = msg.err
		m.loadingReport = false
		return m, nil

	case analysisMsg:
		seed, ok := m.analysis.Complete(msg.gen, msg.narrative)
		if !ok {
			m.logger.Debug("dropped stale analysis response", zap.Uint64("gen", msg.gen))
			return m, nil
		}
		if m.conversation.Seed(seed.Narrative) {
			m.persistedTurns = m.conversation.Len()
		}
		m.historySessionID = ""
		m.refreshTranscript()
		return m, tea.Batch(m.spinner.Tick, m.saveAnalysisCmd(m.analysis.Narrative(), m.analysis.Summary()))

	case analysisErrMsg:
		m.analysis.Fail(msg.gen, msg.err)
		return m, nil

	case compareMsg:
		m.comparison.Complete(msg.gen, msg.insight)
		return m, nil

	case compareErrMsg:
		m.comparison.Fail(msg.gen, msg.err)
		return m, nil

	case chatMsg:
		if m.conversation.Resolve(msg.gen, msg.reply) {
			m.refreshTranscript()
			return m, m.persistNewTurns()
		}
		m.logger.Debug("dropped stale chat response", zap.Uint64("gen", msg.gen))
		return m, nil

	case chatErrMsg:
		if m.conversation.Fail(msg.gen) {
			m.refreshTranscript()
			return m, m.persistNewTurns()
		}
		return m, nil

	case historySavedMsg:
		m.historySessionID = msg.id
		m.persistedTurns = 1
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Fatal report failure: only retry and quit work until a report loads.
	if m.reportErr != nil {
		switch msg.String() {
		case "r":
			m.reportErr = nil
			m.loadingReport = true
			return m, tea.Batch(m.spinner.Tick, m.fetchReportCmd())
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	m.statusLine = ""

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.activeCategory = nextCategory(m.activeCategory, 1)
		return m, nil

	case "shift+tab":
		m.activeCategory = nextCategory(m.activeCategory, -1)
		return m, nil

	case "ctrl+a":
		return m.startAnalysis()

	case "ctrl+p":
		return m.moveMonth(-1), nil

	case "ctrl+n":
		return m.moveMonth(1), nil

	case "ctrl+b":
		return m.startComparison()

	case "ctrl+r":
		return m.resetAll()

	case "pgup":
		m.viewport.HalfViewUp()
		return m, nil

	case "pgdown":
		m.viewport.HalfViewDown()
		return m, nil

	case "alt+1", "alt+2", "alt+3":
		idx := int(msg.String()[4] - '1')
		suggestions := m.conversation.Suggestions()
		if idx >= 0 && idx < len(suggestions) {
			return m.sendChat(suggestions[idx])
		}
		return m, nil

	case "enter":
		input := m.textinput.Value()
		m.textinput.Reset()
		if strings.HasPrefix(strings.TrimSpace(input), "/") {
			return m.handleCommand(strings.TrimSpace(input))
		}
		return m.sendChat(input)
	}

	var cmd tea.Cmd
	m.textinput, cmd = m.textinput.Update(msg)
	return m, cmd
}

// startAnalysis begins an analyze request. A chat request in flight blocks
// it, since the completed analysis would be unable to reseed the
// transcript.
func (m Model) startAnalysis() (tea.Model, tea.Cmd) {
	if m.analysis.InFlight() {
		m.statusLine = "Analysis already running."
		return m, nil
	}
	if m.conversation.InFlight() {
		m.statusLine = "Wait for the current chat reply before re-analyzing."
		return m, nil
	}
	gen := m.analysis.Begin()
	return m, tea.Batch(m.spinner.Tick, m.analyzeCmd(gen))
}

func (m Model) startComparison() (tea.Model, tea.Cmd) {
	if m.report == nil {
		return m, nil
	}
	if m.comparison.InFlight() {
		m.statusLine = "Comparison already running."
		return m, nil
	}
	prompt, gen, err := m.comparison.Begin(m.report.MonthlyTrends)
	if err != nil {
		if errors.Is(err, session.ErrNoPriorMonth) {
			return m, nil // panel shows the notice from comparison state
		}
		m.statusLine = err.Error()
		return m, nil
	}
	return m, tea.Batch(m.spinner.Tick, m.compareCmd(gen, prompt))
}

func (m Model) sendChat(text string) (tea.Model, tea.Cmd) {
	if m.analysis.InFlight() {
		m.statusLine = "Analysis in progress; the transcript is about to be replaced."
		return m, nil
	}
	gen, message, history, err := m.conversation.Send(text)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrEmptyMessage):
			// Ignore blank sends silently.
		case errors.Is(err, session.ErrBusy):
			m.statusLine = "Still waiting on the previous reply."
		default:
			m.statusLine = err.Error()
		}
		return m, nil
	}
	m.refreshTranscript()
	return m, tea.Batch(m.spinner.Tick, m.chatCmd(gen, message, history))
}

// resetAll orphans in-flight work and clears every session back to idle.
// The loaded report is untouched; only retry on the fatal failure screen
// refetches it.
func (m Model) resetAll() (tea.Model, tea.Cmd) {
	m.analysis.Reset()
	m.conversation.Clear()
	m.comparison.SelectMonth("")
	if month := m.selectedMonth(); month != "" {
		m.comparison.SelectMonth(month)
	}
	m.historySessionID = ""
	m.persistedTurns = 0
	m.refreshTranscript()
	return m, nil
}

// moveMonth shifts the comparison cursor and clears any previous result.
func (m Model) moveMonth(delta int) Model {
	if m.report == nil || len(m.report.MonthlyTrends) == 0 {
		return m
	}
	idx := m.monthIdx + delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(m.report.MonthlyTrends) {
		idx = len(m.report.MonthlyTrends) - 1
	}
	if idx != m.monthIdx {
		m.monthIdx = idx
		m.comparison.SelectMonth(m.report.MonthlyTrends[idx].Month)
	}
	return m
}

// persistNewTurns writes transcript turns the history store hasn't seen.
func (m *Model) persistNewTurns() tea.Cmd {
	if m.history == nil || m.historySessionID == "" {
		return nil
	}
	from := m.persistedTurns
	m.persistedTurns = m.conversation.Len()
	return m.saveTurnsCmd(m.historySessionID, from)
}

func (m Model) anythingInFlight() bool {
	return m.loadingReport || m.analysis.InFlight() ||
		m.comparison.InFlight() || m.conversation.InFlight()
}

func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

// clampCategory falls back to the report's first category when the
// requested one is absent from the payload.
func (m Model) clampCategory(cat drift.CategoryID) drift.CategoryID {
	if m.report == nil {
		return cat
	}
	if _, ok := m.report.CategoryByID(cat); ok {
		return cat
	}
	if len(m.report.Categories) > 0 {
		return m.report.Categories[0].Category
	}
	return cat
}

func nextCategory(cur drift.CategoryID, delta int) drift.CategoryID {
	cats := drift.Categories()
	for i, c := range cats {
		if c == cur {
			idx := (i + delta + len(cats)) % len(cats)
			return cats[idx]
		}
	}
	return cats[0]
}

// categoryHotkeys maps /tab arguments to categories.
func categoryByArg(arg string) (drift.CategoryID, error) {
	switch strings.ToLower(arg) {
	case "1", "people":
		return drift.CategoryPeople, nil
	case "2", "ai", "ai_llm", "llm":
		return drift.CategoryAILLM, nil
	case "3", "saas", "saas_cloud", "cloud":
		return drift.CategorySaaSCloud, nil
	}
	return "", fmt.Errorf("unknown category %q", arg)
}
