// Backend request commands. Each command captures its generation token in
// a closure; the resulting message presents that token back so stale
// responses can be dropped after a reset or rerun.
package dashboard

import (
	"context"

	"driftwatch/internal/api"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func (m Model) fetchReportCmd() tea.Cmd {
	client, timeout, logger := m.client, m.cfg.RequestTimeout(), m.logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		report, err := client.FetchReport(ctx)
		if err != nil {
			logger.Error("report fetch failed", zap.Error(err))
			return reportErrMsg{err: err}
		}
		return reportMsg{report: report}
	}
}

func (m Model) analyzeCmd(gen uint64) tea.Cmd {
	client, timeout, logger := m.client, m.cfg.RequestTimeout(), m.logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		narrative, err := client.Analyze(ctx)
		if err != nil {
			logger.Error("analysis request failed", zap.Error(err))
			return analysisErrMsg{gen: gen, err: err}
		}
		return analysisMsg{gen: gen, narrative: narrative}
	}
}

// compareCmd sends the comparison prompt through the chat endpoint with no
// history; the comparison is a one-shot question, not part of the
// conversation transcript.
func (m Model) compareCmd(gen uint64, prompt string) tea.Cmd {
	client, timeout, logger := m.client, m.cfg.RequestTimeout(), m.logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		insight, err := client.Chat(ctx, prompt, nil)
		if err != nil {
			logger.Error("comparison request failed", zap.Error(err))
			return compareErrMsg{gen: gen, err: err}
		}
		return compareMsg{gen: gen, insight: insight}
	}
}

func (m Model) chatCmd(gen uint64, message string, history []api.ChatTurn) tea.Cmd {
	client, timeout, logger := m.client, m.cfg.RequestTimeout(), m.logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		reply, err := client.Chat(ctx, message, history)
		if err != nil {
			logger.Error("chat request failed", zap.Error(err))
			return chatErrMsg{gen: gen, err: err}
		}
		return chatMsg{gen: gen, reply: reply}
	}
}

// saveAnalysisCmd persists a completed analysis. Failures are logged and
// swallowed; history is best-effort and never blocks the dashboard.
func (m Model) saveAnalysisCmd(narrative, summary string) tea.Cmd {
	history, logger, report := m.history, m.logger, m.report
	return func() tea.Msg {
		if history == nil || report == nil {
			return nil
		}
		id, err := history.SaveAnalysis(report.TotalMonthlyDrift, report.AnnualizedDrift, narrative, summary)
		if err != nil {
			logger.Warn("could not persist analysis", zap.Error(err))
			return nil
		}
		if err := history.AppendTurn(id, 0, "assistant", narrative); err != nil {
			logger.Warn("could not persist seed turn", zap.Error(err))
		}
		return historySavedMsg{id: id}
	}
}

// saveTurnsCmd persists transcript turns past the already-persisted mark.
func (m Model) saveTurnsCmd(sessionID string, from int) tea.Cmd {
	history, logger := m.history, m.logger
	turns := m.conversation.Turns()
	return func() tea.Msg {
		if history == nil || sessionID == "" {
			return nil
		}
		for i := from; i < len(turns); i++ {
			if err := history.AppendTurn(sessionID, i, string(turns[i].Role), turns[i].Content); err != nil {
				logger.Warn("could not persist chat turn", zap.Error(err), zap.Int("seq", i))
				return nil
			}
		}
		return nil
	}
}
