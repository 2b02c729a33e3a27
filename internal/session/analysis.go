// Package session holds the state machines behind the dashboard's AI
// features: the one-shot analysis, the month-over-month comparison, and
// the free-form conversation. Sessions are pure state. They never perform
// I/O; the caller runs the network request and feeds the outcome back with
// the generation token it was handed, which is how a stale response is
// kept from overwriting newer state.
package session

import (
	"driftwatch/internal/summary"
)

// AnalysisState is the lifecycle of one "Analyze" invocation.
type AnalysisState int

const (
	AnalysisIdle AnalysisState = iota
	AnalysisRequesting
	AnalysisReady
	AnalysisFailed
)

// UnreachableAISummary is shown in the summary slot when the analysis
// request fails.
const UnreachableAISummary = "Unable to reach the AI analyst right now. Try again in a moment."

// Seed is the cross-session event emitted when an analysis completes: the
// conversation transcript is to be replaced with this narrative as its
// single opening assistant turn. Passing it explicitly keeps the
// conversation's state owned by the conversation.
type Seed struct {
	Narrative string
}

// Analysis owns one analyze request's narrative, derived summary, and
// error state.
type Analysis struct {
	state     AnalysisState
	gen       uint64
	narrative string
	summary   string
	err       error
}

// Begin starts (or restarts) an analysis and returns the generation token
// the eventual Complete or Fail call must present. Restarting from Ready
// or Failed replaces the previous result.
func (a *Analysis) Begin() uint64 {
	a.gen++
	a.state = AnalysisRequesting
	a.narrative = ""
	a.summary = ""
	a.err = nil
	return a.gen
}

// Complete stores the narrative and its extracted summary, and returns the
// seed event for the conversation transcript. A stale token is dropped and
// reported via ok=false.
func (a *Analysis) Complete(gen uint64, narrative string) (seed Seed, ok bool) {
	if gen != a.gen || a.state != AnalysisRequesting {
		return Seed{}, false
	}
	a.state = AnalysisReady
	a.narrative = narrative
	a.summary = summary.Extract(narrative)
	a.err = nil
	return Seed{Narrative: narrative}, true
}

// Fail records the failure. The generic unreachable-AI message lands in
// the summary slot; there is no automatic retry.
func (a *Analysis) Fail(gen uint64, err error) bool {
	if gen != a.gen || a.state != AnalysisRequesting {
		return false
	}
	a.state = AnalysisFailed
	a.summary = UnreachableAISummary
	a.err = err
	return true
}

// Reset clears narrative and summary back to idle. The caller is expected
// to clear the conversation transcript alongside (see Conversation.Clear);
// the report itself is untouched.
func (a *Analysis) Reset() {
	a.gen++ // orphan any in-flight response
	a.state = AnalysisIdle
	a.narrative = ""
	a.summary = ""
	a.err = nil
}

func (a *Analysis) State() AnalysisState { return a.state }
func (a *Analysis) Narrative() string    { return a.narrative }
func (a *Analysis) Summary() string      { return a.summary }
func (a *Analysis) Err() error           { return a.err }

// InFlight reports whether a request is outstanding.
func (a *Analysis) InFlight() bool { return a.state == AnalysisRequesting }
