package toolbox

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/private-landing/calc/internal/eval"
)

// Statistic kinds accepted by Statistic.
const (
	Mean   = "mean"
	Median = "median"
	Mode   = "mode"
	StdDev = "stddev"
)

// ParseNumbers splits input on whitespace and keeps every field with a
// leading decimal literal.
func ParseNumbers(input string) []float64 {
	var out []float64
	for _, f := range strings.Fields(input) {
		if v, ok := parseFloatPrefix(f); ok {
			out = append(out, v)
		}
	}
	return out
}

// Summary holds every statistic for one data set.
type Summary struct {
	Mean, Median   float64
	Modes          []float64
	Min, Max, Sum  float64
	SampleVariance float64
	SampleStdDev   float64
}

// Summarize computes a Summary. xs must not be empty.
func Summarize(xs []float64) Summary {
	return Summary{
		Mean:           stat.Mean(xs, nil),
		Median:         median(xs),
		Modes:          modes(xs),
		Min:            floats.Min(xs),
		Max:            floats.Max(xs),
		Sum:            floats.Sum(xs),
		SampleVariance: stat.Variance(xs, nil),
		SampleStdDev:   stat.StdDev(xs, nil),
	}
}

func (s Summary) String() string {
	lines := []string{
		"Mean: " + fixed(s.Mean, 4),
		"Median: " + fixed(s.Median, 4),
		"Mode(s): " + joinNumbers(s.Modes),
		"Min: " + fixed(s.Min, 4),
		"Max: " + fixed(s.Max, 4),
		"Sum: " + fixed(s.Sum, 4),
		"Variance (sample): " + fixed(s.SampleVariance, 4),
		"Standard Deviation (sample): " + fixed(s.SampleStdDev, 4),
	}
	return strings.Join(lines, "\n")
}

// AllStatistics reports every statistic for whitespace-separated numbers.
func AllStatistics(input string) Result {
	input = strings.TrimSpace(input)
	if input == "" {
		return shown("Please enter numbers separated by spaces.")
	}
	xs := ParseNumbers(input)
	if len(xs) == 0 {
		return shown("No valid numbers found.")
	}
	text := Summarize(xs).String()
	return recorded(text, "Calculated all statistics for: "+input, text)
}

// Statistic reports a single statistic. The history entry keeps two
// decimals where the display keeps four.
func Statistic(kind, input string) Result {
	input = strings.TrimSpace(input)
	if input == "" {
		return shown("Please enter numbers separated by commas.")
	}
	xs := ParseNumbers(input)
	if len(xs) == 0 {
		return shown("No valid numbers found.")
	}

	var v float64
	switch kind {
	case Mean:
		v = stat.Mean(xs, nil)
	case Median:
		v = median(xs)
	case StdDev:
		v = stat.StdDev(xs, nil)
	case Mode:
		m := joinNumbers(modes(xs))
		return recorded(kind+": "+m, "Calculated "+kind+" for: "+input, m)
	default:
		return shown("Invalid statistic.")
	}
	return recorded(kind+": "+fixed(v, 4), "Calculated "+kind+" for: "+input, fixed(v, 2))
}

// median averages the two middle values of an even-length set.
func median(xs []float64) float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// modes returns every most frequent value, ordered by when each reached the
// winning count.
func modes(xs []float64) []float64 {
	count := make(map[float64]int, len(xs))
	var out []float64
	best := 0
	for _, x := range xs {
		count[x]++
		switch c := count[x]; {
		case c > best:
			best = c
			out = []float64{x}
		case c == best:
			out = append(out, x)
		}
	}
	return out
}

func joinNumbers(xs []float64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = eval.FormatNumber(x)
	}
	return strings.Join(parts, ", ")
}
