package session

import (
	"fmt"
	"strings"

	"driftwatch/internal/drift"
)

// ComparisonState is the lifecycle of one month-over-month comparison.
type ComparisonState int

const (
	ComparisonIdle ComparisonState = iota
	ComparisonRequesting
	ComparisonReady
	ComparisonFailed
)

// NotEnoughPriorDataNotice is rendered when the selected month has no
// predecessor to compare against. No network call is made in that case.
const NotEnoughPriorDataNotice = "Not enough prior data to compare this month."

// Comparison owns the month-over-month insight for one selected month.
type Comparison struct {
	state   ComparisonState
	gen     uint64
	month   string
	insight string
	err     error
}

// SelectMonth records the user's month choice and clears any prior result.
func (c *Comparison) SelectMonth(month string) {
	if month == c.month && c.state == ComparisonIdle {
		return
	}
	c.gen++ // orphan any in-flight response for the old month
	c.month = month
	c.state = ComparisonIdle
	c.insight = ""
	c.err = nil
}

// Begin validates the selection against the trend series and, when a prior
// month exists, returns the prompt to send plus the generation token. The
// first trend point has no predecessor: that case fails locally with
// ErrNoPriorMonth and must not reach the network.
func (c *Comparison) Begin(trends []drift.TrendPoint) (prompt string, gen uint64, err error) {
	idx := -1
	for i, p := range trends {
		if p.Month == c.month {
			idx = i
			break
		}
	}
	if idx < 1 {
		c.state = ComparisonFailed
		c.insight = ""
		c.err = ErrNoPriorMonth
		return "", 0, ErrNoPriorMonth
	}

	c.gen++
	c.state = ComparisonRequesting
	c.insight = ""
	c.err = nil
	return BuildComparePrompt(trends[idx-1], trends[idx]), c.gen, nil
}

// Complete stores the returned insight unless the token is stale.
func (c *Comparison) Complete(gen uint64, insight string) bool {
	if gen != c.gen || c.state != ComparisonRequesting {
		return false
	}
	c.state = ComparisonReady
	c.insight = insight
	c.err = nil
	return true
}

// Fail records the failure unless the token is stale.
func (c *Comparison) Fail(gen uint64, err error) bool {
	if gen != c.gen || c.state != ComparisonRequesting {
		return false
	}
	c.state = ComparisonFailed
	c.err = err
	return true
}

func (c *Comparison) State() ComparisonState { return c.state }
func (c *Comparison) Month() string          { return c.month }
func (c *Comparison) Insight() string        { return c.insight }
func (c *Comparison) Err() error             { return c.err }

// InFlight reports whether a request is outstanding.
func (c *Comparison) InFlight() bool { return c.state == ComparisonRequesting }

// BuildComparePrompt embeds both months' rounded per-category spend plus
// totals and asks the agent for a handful of focused bullets. The
// comparison is stateless: it is sent with empty chat history.
func BuildComparePrompt(prev, cur drift.TrendPoint) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Compare company spend for %s against %s.\n\n", cur.Month, prev.Month)
	writeMonthLine(&sb, prev)
	writeMonthLine(&sb, cur)
	sb.WriteString("\nGive at most 3-4 bullet insights focused on what changed and why it matters. ")
	sb.WriteString("Use concrete dollar amounts and percentages.")
	return sb.String()
}

func writeMonthLine(sb *strings.Builder, p drift.TrendPoint) {
	fmt.Fprintf(sb, "%s: ", p.Month)
	for i, id := range drift.Categories() {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(sb, "%s %s", id.Label(), drift.FormatUSD(p.Value(id)))
	}
	fmt.Fprintf(sb, ", Total %s\n", drift.FormatUSD(p.Total()))
}
