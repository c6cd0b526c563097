package plot

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/private-landing/calc/internal/eval"
)

var terminalColors = map[string]asciigraph.AnsiColor{
	FunctionColor:   asciigraph.RoyalBlue,
	PrimaryColor:    asciigraph.Cyan,
	DerivativeColor: asciigraph.DarkOrange,
}

// Render draws f as a line chart width columns wide and height rows tall.
// Series are resampled onto a shared x grid; columns with no sample are
// left blank.
func Render(f *Figure, width, height int) string {
	if width < 2 {
		width = 2
	}
	var (
		data    [][]float64
		colors  []asciigraph.AnsiColor
		legends []string
	)
	xmin, xmax := f.xRange()
	for _, s := range f.Series {
		if len(s.Points) == 0 {
			continue
		}
		data = append(data, resample(s.Points, xmin, xmax, width))
		c, ok := terminalColors[s.Color]
		if !ok {
			c = asciigraph.Default
		}
		colors = append(colors, c)
		legends = append(legends, s.Label)
	}
	if len(data) == 0 {
		return ""
	}

	lo, hi := f.YRange()
	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.LowerBound(lo),
		asciigraph.UpperBound(hi),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
		asciigraph.Caption(fmt.Sprintf("x from %s to %s", eval.FormatNumber(xmin), eval.FormatNumber(xmax))),
	)
}

func (f *Figure) xRange() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range f.Series {
		for _, p := range s.Points {
			lo = math.Min(lo, p.X)
			hi = math.Max(hi, p.X)
		}
	}
	return lo, hi
}

// resample maps points onto n evenly spaced columns between lo and hi,
// keeping the last point that falls in each column. Empty columns are NaN.
func resample(pts []Point, lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	span := hi - lo
	for _, p := range pts {
		i := 0
		if span > 0 {
			i = int(math.Round((p.X - lo) / span * float64(n-1)))
		}
		out[i] = p.Y
	}
	return out
}
