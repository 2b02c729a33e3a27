// Package summary condenses a markdown-ish AI narrative into a short
// human-readable blurb for the dashboard's analysis card.
//
// The extraction is deliberately marker-based string processing, not NLP.
// It is tuned to the narrative layout the backend emits (an "Analysis"
// section followed by recommendation bullets) and must stay byte-compatible
// with the web dashboard's extractor, so resist the urge to improve it.
package summary

import "strings"

const maxSentences = 2

// Extract returns up to two candidate sentences from the narrative, joined
// by a single space. Preference order: prose lines inside the "Analysis"
// section; otherwise any sufficiently long prose line. Returns "" when the
// narrative has nothing usable.
func Extract(narrative string) string {
	var lines []string
	for _, raw := range strings.Split(narrative, "\n") {
		if line := strings.TrimSpace(raw); line != "" {
			lines = append(lines, line)
		}
	}

	var candidates []string
	markerFound := false
	inAnalysis := false

	for _, line := range lines {
		if !inAnalysis {
			if (isHeading(line) || isListLine(line)) && strings.Contains(strings.ToLower(line), "analysis") {
				markerFound = true
				inAnalysis = true
			}
			continue
		}
		if isHeading(line) {
			// Section boundary: the analysis prose is over.
			break
		}
		if isListLine(line) {
			continue
		}
		if s := strings.TrimSpace(stripBold(line)); s != "" {
			candidates = append(candidates, s)
		}
	}

	if !markerFound || len(candidates) == 0 {
		candidates = candidates[:0]
		for _, line := range lines {
			if isHeading(line) || isHorizontalRule(line) {
				continue
			}
			if s := strings.TrimSpace(stripBold(line)); len(s) > 20 {
				candidates = append(candidates, s)
			}
		}
	}

	if len(candidates) > maxSentences {
		candidates = candidates[:maxSentences]
	}
	return strings.Join(candidates, " ")
}

func isHeading(line string) bool {
	return strings.HasPrefix(line, "#")
}

// isListLine matches bullet and numbered list markers. A bare "**bold**"
// line is prose, not a bullet, so "*" only counts when followed by a space.
func isListLine(line string) bool {
	if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") || strings.HasPrefix(line, "•") {
		return true
	}
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c >= '0' && c <= '9' {
			continue
		}
		return i > 0 && (c == '.' || c == ')') && i+1 < len(line) && line[i+1] == ' '
	}
	return false
}

func isHorizontalRule(line string) bool {
	if len(line) < 3 {
		return false
	}
	first := line[0]
	if first != '-' && first != '*' && first != '_' {
		return false
	}
	for i := 1; i < len(line); i++ {
		if line[i] != first {
			return false
		}
	}
	return true
}

func stripBold(line string) string {
	return strings.ReplaceAll(line, "**", "")
}
