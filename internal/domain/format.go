package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatSummary renders one output line: "<dateKey>, <timestampMs>, <min>, <max>".
func FormatSummary(s DailySummary) string {
	return fmt.Sprintf("%s, %d, %s, %s",
		s.DateKey, s.CanonicalTimestamp, FormatNumber(s.MinTemperature), FormatNumber(s.MaxTemperature))
}

// FormatReport renders all summaries joined by "\n", without a trailing newline.
func FormatReport(r Report) string {
	lines := make([]string, len(r.Summaries))
	for i, s := range r.Summaries {
		lines[i] = FormatSummary(s)
	}
	return strings.Join(lines, "\n")
}

// FormatNumber renders v as the shortest decimal that round-trips:
// integers print without a decimal point, magnitudes outside [1e-6, 1e21)
// use exponent form ("1e+21", "1.5e-7"), negative zero prints as "0", and
// non-finite values print as NaN, Infinity and -Infinity.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	if abs := math.Abs(v); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	// strconv pads the exponent to two digits ("1e-07").
	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(v, 'e', -1, 64), "e")
	return mantissa + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
}
