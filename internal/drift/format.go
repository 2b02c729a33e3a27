package drift

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatUSD renders a dollar amount the way the dashboard shows it:
// absolute value, rounded to whole dollars, comma-grouped, "$" prefix.
func FormatUSD(n float64) string {
	return "$" + groupThousands(int64(math.Round(math.Abs(n))))
}

// FormatSignedUSD is FormatUSD with a leading "+" for positive amounts.
// Negative amounts carry no sign; the UI colors them instead.
func FormatSignedUSD(n float64) string {
	if n > 0 {
		return "+" + FormatUSD(n)
	}
	return FormatUSD(n)
}

// FormatPct renders a percentage with an explicit sign and one decimal,
// e.g. "+12.3%" or "-4.0%".
func FormatPct(n float64) string {
	sign := ""
	if n >= 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.1f%%", sign, n)
}

// FormatCompactUSD abbreviates to "$42k" above a thousand, for axis labels.
func FormatCompactUSD(n float64) string {
	v := math.Abs(n)
	if v >= 1000 {
		return "$" + strconv.FormatInt(int64(math.Round(v/1000)), 10) + "k"
	}
	return "$" + strconv.FormatInt(int64(math.Round(v)), 10)
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var sb strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		sb.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}
