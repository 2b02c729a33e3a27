package dashboard

import (
	"strings"
	"testing"

	"driftwatch/internal/drift"

	tea "github.com/charmbracelet/bubbletea"
)

func TestViewShowsMetricCards(t *testing.T) {
	m := loadedModel()
	view := m.View()

	if !strings.Contains(view, "Monthly drift") {
		t.Error("view missing monthly drift card")
	}
	if !strings.Contains(view, "Annualized") {
		t.Error("view missing annualized card")
	}
	if !strings.Contains(view, "+$19,700") {
		t.Errorf("view missing formatted monthly drift:\n%s", view)
	}
}

func TestViewShowsCategoryTabsAndBreakdown(t *testing.T) {
	m := loadedModel()
	view := m.View()

	for _, c := range drift.Categories() {
		if !strings.Contains(view, c.Label()) {
			t.Errorf("view missing tab %q", c.Label())
		}
	}
	if !strings.Contains(view, "Contractors") {
		t.Error("view missing breakdown row for active category")
	}
	if !strings.Contains(view, "+26.7%") {
		t.Error("view missing item drift percentage")
	}
}

func TestViewTrendShowsCompactScale(t *testing.T) {
	m := loadedModel()
	view := m.View()

	// Monthly totals run 166,500 (2025-01) to 186,200 (2025-03).
	if !strings.Contains(view, "$167k") || !strings.Contains(view, "$186k") {
		t.Errorf("trend line missing compact scale:\n%s", view)
	}
}

func TestViewSwitchingCategoryChangesBreakdown(t *testing.T) {
	m := loadedModel()

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = newModel.(Model)
	view := m.View()

	if strings.Contains(view, "Contractors") {
		t.Error("people items still shown on the AI / LLM tab")
	}
}

func TestViewLoadingScreen(t *testing.T) {
	m := newTestModel()
	view := m.View()

	if !strings.Contains(view, "Loading drift report") {
		t.Errorf("loading screen missing:\n%s", view)
	}
}

func TestViewHelpToggle(t *testing.T) {
	m := loadedModel()

	newModel, _ := m.handleCommand("/help")
	m = newModel.(Model)
	view := m.View()

	if !strings.Contains(view, "switch category") {
		t.Errorf("help screen missing key listing:\n%s", view)
	}

	newModel, _ = m.handleCommand("/help")
	m = newModel.(Model)
	if strings.Contains(m.View(), "/help to close") {
		t.Error("help screen did not close")
	}
}

func TestSafeRenderMarkdownNilRenderer(t *testing.T) {
	m := loadedModel()
	m.renderer = nil

	if got := m.safeRenderMarkdown("**bold**"); got != "**bold**" {
		t.Errorf("nil renderer should pass content through, got %q", got)
	}
}

func TestRenderTranscriptEmpty(t *testing.T) {
	m := loadedModel()
	if got := m.renderTranscript(); !strings.Contains(got, "Run an analysis") {
		t.Errorf("empty transcript placeholder missing: %q", got)
	}
}

func TestRenderSuggestionsHiddenWhileEmptyOrBusy(t *testing.T) {
	m := loadedModel()
	if m.renderSuggestions() != "" {
		t.Error("suggestions shown with empty transcript")
	}

	newModel, _ := m.sendChat("a question")
	m = newModel.(Model)
	if m.renderSuggestions() != "" {
		t.Error("suggestions shown while a reply is outstanding")
	}
}
