// Package dashboard provides the interactive TUI for the driftwatch
// client. The dashboard is split across multiple files:
//   - model.go: Types, NewModel, Init (this file)
//   - model_update.go: Update loop and key handling
//   - view.go: Rendering functions
//   - process.go: Backend request commands
//   - commands.go: /command handling
package dashboard

import (
	"driftwatch/cmd/driftwatch/ui"
	"driftwatch/internal/api"
	"driftwatch/internal/config"
	"driftwatch/internal/drift"
	"driftwatch/internal/session"
	"driftwatch/internal/store"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"
)

// Panel identifies which lower panel has focus for scrolling.
type Panel int

const (
	PanelChat Panel = iota
	PanelAnalysis
)

// Messages for tea updates. Every message produced by an asynchronous
// request carries the generation token handed out when the request
// started; stale tokens are dropped by the session state machines.
type (
	reportMsg    struct{ report *drift.Report }
	reportErrMsg struct{ err error }

	analysisMsg struct {
		gen       uint64
		narrative string
	}
	analysisErrMsg struct {
		gen uint64
		err error
	}

	compareMsg struct {
		gen     uint64
		insight string
	}
	compareErrMsg struct {
		gen uint64
		err error
	}

	chatMsg struct {
		gen   uint64
		reply string
	}
	chatErrMsg struct {
		gen uint64
		err error
	}

	historySavedMsg struct{ id string }
)

// Model is the main model for the drift dashboard.
type Model struct {
	// UI components
	textinput textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	styles    ui.Styles
	renderer  *glamour.TermRenderer

	// Backend
	client  *api.Client
	cfg     config.Config
	logger  *zap.Logger
	history *store.HistoryStore // nil when history is unavailable

	// Report state
	report        *drift.Report
	reportErr     error
	loadingReport bool

	// View state
	activeCategory drift.CategoryID
	monthIdx       int
	showHelp       bool
	statusLine     string

	// Sessions
	analysis     session.Analysis
	comparison   session.Comparison
	conversation session.Conversation

	// History persistence
	historySessionID string
	persistedTurns   int

	width  int
	height int
	ready  bool
}

// NewModel builds the dashboard model. The history store may be nil.
func NewModel(client *api.Client, cfg config.Config, logger *zap.Logger, history *store.HistoryStore) Model {
	styles := ui.NewStyles(ui.ThemeByName(cfg.Theme))

	ti := textinput.New()
	ti.Placeholder = "Ask about the drift report..."
	ti.CharLimit = 500
	ti.PromptStyle = styles.Prompt
	ti.TextStyle = styles.UserInput
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	if logger == nil {
		logger = zap.NewNop()
	}

	return Model{
		textinput:      ti,
		spinner:        sp,
		styles:         styles,
		client:         client,
		cfg:            cfg,
		logger:         logger,
		history:        history,
		activeCategory: drift.Categories()[0],
		loadingReport:  true,
	}
}

// Init kicks off the initial report fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.fetchReportCmd(),
	)
}

// rebuildRenderer sizes the markdown renderer to the current width.
// Glamour construction can fail on exotic terminals; a nil renderer just
// means narratives render as plain text.
func (m *Model) rebuildRenderer() {
	width := m.width - 6
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		m.logger.Warn("markdown renderer unavailable", zap.Error(err))
		m.renderer = nil
		return
	}
	m.renderer = r
}

// selectedMonth returns the month the comparison cursor is on, defaulting
// to the latest month in the report.
func (m Model) selectedMonth() string {
	if m.report == nil || len(m.report.MonthlyTrends) == 0 {
		return ""
	}
	idx := m.monthIdx
	if idx < 0 || idx >= len(m.report.MonthlyTrends) {
		idx = len(m.report.MonthlyTrends) - 1
	}
	return m.report.MonthlyTrends[idx].Month
}
