// Command driftwatch is the terminal client for the DriftWatch cost
// dashboard. Run without arguments it opens the interactive TUI; the
// report and sessions subcommands offer one-shot, scriptable output.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"driftwatch/cmd/driftwatch/dashboard"
	"driftwatch/internal/api"
	"driftwatch/internal/config"
	"driftwatch/internal/drift"
	"driftwatch/internal/logging"
	"driftwatch/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const version = "0.3.0"

var (
	flagAPIURL string
	flagDebug  bool
)

// rootCmd launches the interactive dashboard.
var rootCmd = &cobra.Command{
	Use:   "driftwatch",
	Short: "Recurring cost drift dashboard",
	Long: `driftwatch shows where recurring company spend is drifting:
people costs, AI/LLM usage, and SaaS/cloud subscriptions. It talks to a
DriftWatch backend for report data, AI narrative analysis, and grounded
chat about the numbers.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Fetch the drift report and print it once",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd.Context())
	},
}

var sessionsCmd = &cobra.Command{
	Use:   "sessions [id]",
	Short: "List saved analysis sessions, or print one session's transcript",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return runSessionTranscript(args[0])
		}
		return runSessions()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the client version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("driftwatch " + version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "DriftWatch backend URL (default from config or DRIFTWATCH_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig merges the saved config with command-line overrides.
func loadConfig() config.Config {
	cfg := config.Load()
	if flagAPIURL != "" {
		cfg.APIURL = flagAPIURL
	}
	if flagDebug {
		cfg.DebugMode = true
	}
	return cfg
}

func runDashboard() error {
	cfg := loadConfig()

	dir, err := config.Dir()
	if err != nil {
		dir = ""
	}
	logger, err := logging.New(logging.Options{Dir: dir, Debug: cfg.DebugMode})
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	client := api.New(cfg.APIURL,
		api.WithTimeout(cfg.RequestTimeout()),
		api.WithLogger(logger),
	)

	// History is best-effort: a broken database only disables it.
	var history *store.HistoryStore
	if path, err := cfg.HistoryPath(); err == nil {
		if h, err := store.Open(path); err == nil {
			history = h
			defer h.Close()
		} else {
			logger.Warn("session history unavailable", zap.Error(err))
		}
	}

	m := dashboard.NewModel(client, cfg, logger, history)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}

// runReport prints a plain-text rendition of the drift report, suitable
// for scripts and quick checks without the TUI.
func runReport(ctx context.Context) error {
	cfg := loadConfig()
	client := api.New(cfg.APIURL, api.WithTimeout(cfg.RequestTimeout()))

	report, err := client.FetchReport(ctx)
	if err != nil {
		return fmt.Errorf("fetch report: %w", err)
	}

	fmt.Printf("Total monthly drift: %s\n", drift.FormatSignedUSD(report.TotalMonthlyDrift))
	fmt.Printf("Annualized:          %s\n\n", drift.FormatSignedUSD(report.AnnualizedDrift))

	for _, id := range drift.Categories() {
		cat, ok := report.CategoryByID(id)
		if !ok {
			continue
		}
		fmt.Printf("%s  %s (%s)\n", id.Label(), drift.FormatSignedUSD(cat.TotalDrift), drift.FormatPct(cat.DriftPct))
		for _, it := range cat.Items {
			fmt.Printf("  %-28s %12s -> %12s  %10s  %8s\n",
				it.Item,
				drift.FormatUSD(it.AvgBefore),
				drift.FormatUSD(it.AvgAfter),
				drift.FormatSignedUSD(it.Drift),
				drift.FormatPct(it.DriftPct))
		}
		fmt.Println()
	}

	if len(report.MonthlyTrends) > 0 {
		fmt.Println("Monthly totals:")
		for _, p := range report.MonthlyTrends {
			fmt.Printf("  %s  %s\n", p.Month, drift.FormatUSD(p.Total()))
		}
	}
	return nil
}

func runSessions() error {
	cfg := loadConfig()
	path, err := cfg.HistoryPath()
	if err != nil {
		return fmt.Errorf("resolve history path: %w", err)
	}

	h, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer h.Close()

	sessions, err := h.ListSessions(20)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Println("No saved analysis sessions yet.")
		return nil
	}

	for _, s := range sessions {
		fmt.Printf("%s  %s  monthly %s  annualized %s\n",
			s.CreatedAt.Format("2006-01-02 15:04"),
			s.ID[:8],
			drift.FormatSignedUSD(s.TotalMonthlyDrift),
			drift.FormatSignedUSD(s.AnnualizedDrift))
		if s.Summary != "" {
			fmt.Printf("    %s\n", s.Summary)
		}
	}
	return nil
}

// runSessionTranscript prints one saved session's chat turns. The id may
// be the 8-character prefix the listing shows.
func runSessionTranscript(idArg string) error {
	cfg := loadConfig()
	path, err := cfg.HistoryPath()
	if err != nil {
		return fmt.Errorf("resolve history path: %w", err)
	}

	h, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer h.Close()

	sessions, err := h.ListSessions(200)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	id, err := resolveSessionID(sessions, idArg)
	if err != nil {
		return err
	}

	turns, err := h.SessionTurns(id)
	if err != nil {
		return fmt.Errorf("load transcript: %w", err)
	}
	if len(turns) == 0 {
		fmt.Println("Session has no recorded turns.")
		return nil
	}

	for _, turn := range turns {
		fmt.Printf("[%s]\n%s\n\n", turn.Role, turn.Content)
	}
	return nil
}

// resolveSessionID matches an id argument against saved sessions, by full
// id or unique prefix.
func resolveSessionID(sessions []store.AnalysisRecord, idArg string) (string, error) {
	var matches []string
	for _, s := range sessions {
		if s.ID == idArg {
			return s.ID, nil
		}
		if strings.HasPrefix(s.ID, idArg) {
			matches = append(matches, s.ID)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("no session matches %q", idArg)
	}
	return "", fmt.Errorf("%q matches %d sessions, use more characters", idArg, len(matches))
}
