package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RowTone selects how a table row is colored.
type RowTone int

const (
	ToneNeutral RowTone = iota
	ToneElevated
	ToneSevere
	ToneDown
)

// SimpleTable is a simple table component for rendering static data.
// Rows may carry a tone so cost increases stand out from savings.
type SimpleTable struct {
	Title   string
	Headers []string
	Rows    [][]string
	Tones   []RowTone
}

// NewSimpleTable creates a new SimpleTable with the given title and headers.
func NewSimpleTable(title string, headers []string) *SimpleTable {
	return &SimpleTable{
		Title:   title,
		Headers: headers,
		Rows:    make([][]string, 0),
	}
}

// AddRow adds a neutral row to the table.
func (t *SimpleTable) AddRow(row ...string) {
	t.AddTonedRow(ToneNeutral, row...)
}

// AddTonedRow adds a row rendered with the given tone.
func (t *SimpleTable) AddTonedRow(tone RowTone, row ...string) {
	t.Rows = append(t.Rows, row)
	t.Tones = append(t.Tones, tone)
}

func (t *SimpleTable) rowStyle(styles Styles, idx int) lipgloss.Style {
	tone := ToneNeutral
	if idx < len(t.Tones) {
		tone = t.Tones[idx]
	}
	switch tone {
	case ToneSevere:
		return styles.Severe.Padding(0, 1)
	case ToneElevated:
		return styles.Elevated.Padding(0, 1)
	case ToneDown:
		return styles.Down.Padding(0, 1)
	}
	return styles.Body.Padding(0, 1)
}

// View renders the table using the provided styles.
func (t *SimpleTable) View(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}

	var sb strings.Builder

	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	// Column widths from headers and cells
	colWidths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(colWidths) {
				if w := lipgloss.Width(cell); w > colWidths[i] {
					colWidths[i] = w
				}
			}
		}
	}
	for i := range colWidths {
		colWidths[i] += 2
	}

	headerStyle := styles.Bold.Padding(0, 1)
	sepStyle := styles.Muted

	for i, h := range t.Headers {
		if i < len(colWidths) {
			sb.WriteString(headerStyle.Width(colWidths[i]).Render(h))
			if i < len(t.Headers)-1 {
				sb.WriteString(sepStyle.Render("|"))
			}
		}
	}
	sb.WriteString("\n")

	totalWidth := 0
	for _, w := range colWidths {
		totalWidth += w
	}
	totalWidth += len(t.Headers) - 1

	sb.WriteString(sepStyle.Render(strings.Repeat("-", totalWidth)) + "\n")

	for idx, row := range t.Rows {
		rowStyle := t.rowStyle(styles, idx)
		for i, cell := range row {
			if i < len(colWidths) {
				sb.WriteString(rowStyle.Width(colWidths[i]).Render(cell))
				if i < len(row)-1 {
					sb.WriteString(sepStyle.Render("|"))
				}
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
