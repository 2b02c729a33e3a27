package session

import (
	"errors"
	"testing"
)

func TestAnalysisLifecycle(t *testing.T) {
	var a Analysis
	if a.State() != AnalysisIdle {
		t.Fatalf("initial state = %v, want idle", a.State())
	}

	gen := a.Begin()
	if a.State() != AnalysisRequesting {
		t.Fatalf("state after Begin = %v, want requesting", a.State())
	}

	narrative := "# Analysis\nContractor spend jumped.\nAI usage doubled.\n# Recommendations\n- trim seats"
	seed, ok := a.Complete(gen, narrative)
	if !ok {
		t.Fatal("Complete with fresh token rejected")
	}
	if seed.Narrative != narrative {
		t.Errorf("seed carries %q, want the full narrative", seed.Narrative)
	}
	if a.State() != AnalysisReady {
		t.Errorf("state = %v, want ready", a.State())
	}
	if a.Narrative() != narrative {
		t.Errorf("narrative not stored")
	}
	if want := "Contractor spend jumped. AI usage doubled."; a.Summary() != want {
		t.Errorf("summary = %q, want %q", a.Summary(), want)
	}
}

func TestAnalysisStaleResponseDropped(t *testing.T) {
	var a Analysis
	oldGen := a.Begin()
	newGen := a.Begin() // user re-triggered while first request in flight

	if _, ok := a.Complete(oldGen, "stale narrative"); ok {
		t.Fatal("stale Complete must be dropped")
	}
	if a.State() != AnalysisRequesting {
		t.Fatalf("state = %v, want still requesting", a.State())
	}

	if _, ok := a.Complete(newGen, "fresh narrative"); !ok {
		t.Fatal("fresh Complete rejected")
	}
	if a.Narrative() != "fresh narrative" {
		t.Errorf("narrative = %q, want the fresh one", a.Narrative())
	}
}

func TestAnalysisRerunReplacesPriorResult(t *testing.T) {
	var a Analysis
	gen := a.Begin()
	a.Complete(gen, "first narrative that is long enough to summarize.")

	gen2 := a.Begin()
	if a.Narrative() != "" || a.Summary() != "" {
		t.Error("Begin must clear the prior result, not append to it")
	}
	a.Complete(gen2, "second narrative that is long enough to summarize.")
	if a.Narrative() != "second narrative that is long enough to summarize." {
		t.Errorf("narrative = %q", a.Narrative())
	}
}

func TestAnalysisFail(t *testing.T) {
	var a Analysis
	gen := a.Begin()

	if !a.Fail(gen, errors.New("dial tcp: refused")) {
		t.Fatal("Fail with fresh token rejected")
	}
	if a.State() != AnalysisFailed {
		t.Errorf("state = %v, want failed", a.State())
	}
	if a.Summary() != UnreachableAISummary {
		t.Errorf("summary = %q, want the generic unreachable-AI message", a.Summary())
	}
	if a.Err() == nil {
		t.Error("error not recorded")
	}
}

func TestAnalysisReset(t *testing.T) {
	var a Analysis
	gen := a.Begin()
	a.Complete(gen, "some narrative long enough for the extractor to pick up.")

	a.Reset()
	if a.State() != AnalysisIdle || a.Narrative() != "" || a.Summary() != "" {
		t.Error("Reset must return to a clean idle state")
	}
}

func TestAnalysisResetOrphansInFlight(t *testing.T) {
	var a Analysis
	gen := a.Begin()
	a.Reset()

	if _, ok := a.Complete(gen, "late response"); ok {
		t.Fatal("a response arriving after Reset must be dropped")
	}
	if a.State() != AnalysisIdle {
		t.Errorf("state = %v, want idle", a.State())
	}
}
