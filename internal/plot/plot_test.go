package plot

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTableSamplesAndRounds(t *testing.T) {
	pts := Table("x^2", Range{Start: 0, End: 1, Step: 0.25})
	want := []Point{{0, 0}, {0.25, 0.06}, {0.5, 0.25}, {0.75, 0.56}, {1, 1}}
	if diff := cmp.Diff(want, pts); diff != "" {
		t.Fatalf("Table mismatch (-want +got):\n%s", diff)
	}
}

func TestTableSkipsInvalidPoints(t *testing.T) {
	pts := Table("1/x", Range{Start: -1, End: 1, Step: 1})
	want := []Point{{-1, -1}, {1, 1}}
	if diff := cmp.Diff(want, pts); diff != "" {
		t.Fatalf("expected the pole at 0 to be skipped (-want +got):\n%s", diff)
	}

	if pts := Table("sqrt(x)", Range{Start: -2, End: -1, Step: 0.5}); len(pts) != 0 {
		t.Fatalf("expected NaN samples to be skipped, got %v", pts)
	}
	if pts := Table("(x", DefaultRange()); pts != nil {
		t.Fatalf("expected nil for unparsable expression, got %v", pts)
	}
	if pts := Table("x", Range{Start: 0, End: 1, Step: 0}); pts != nil {
		t.Fatalf("expected nil for zero step, got %v", pts)
	}
}

func TestDefaultRangeUsesRadians(t *testing.T) {
	pts := Table("sin(x)", DefaultRange())
	if len(pts) != 126 {
		t.Fatalf("expected 126 samples, got %d", len(pts))
	}
	if pts[0].X != -6.28 {
		t.Fatalf("expected first sample at -6.28, got %v", pts[0].X)
	}
	for _, p := range pts {
		if math.Abs(p.Y) > 1 {
			t.Fatalf("sin sample out of range: %+v", p)
		}
	}
}

func TestFunction(t *testing.T) {
	fig, err := Function(" 2×x ", DefaultRange())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fig.Series) != 1 {
		t.Fatalf("expected 1 series, got %d", len(fig.Series))
	}
	s := fig.Series[0]
	if s.Label != "f(x) = 2×x" || s.Color != FunctionColor {
		t.Fatalf("unexpected series %q %q", s.Label, s.Color)
	}
	if fig.Caption() != "Plotted: f(x) = 2×x" {
		t.Fatalf("unexpected caption %q", fig.Caption())
	}

	if _, err := Function("", DefaultRange()); !errors.Is(err, ErrEmptyFunction) {
		t.Fatalf("expected ErrEmptyFunction, got %v", err)
	}
	if _, err := Function("y+", DefaultRange()); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestWithDerivative(t *testing.T) {
	fig, err := WithDerivative("x^2", Range{Start: -1, End: 1, Step: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fig.Derivative != "2 * x" {
		t.Fatalf("expected derivative '2 * x', got %q", fig.Derivative)
	}
	want := []Series{
		{Label: "f(x) = x^2", Color: PrimaryColor, Points: []Point{{-1, 1}, {0, 0}, {1, 1}}},
		{Label: "f'(x) = 2 * x", Color: DerivativeColor, Points: []Point{{-1, -2}, {0, 0}, {1, 2}}},
	}
	if diff := cmp.Diff(want, fig.Series); diff != "" {
		t.Fatalf("series mismatch (-want +got):\n%s", diff)
	}
	if fig.Caption() != "Plotted: f(x) = x^2 and f'(x) = 2 * x" {
		t.Fatalf("unexpected caption %q", fig.Caption())
	}

	_, err = WithDerivative("x!", DefaultRange())
	if err == nil || !strings.HasPrefix(err.Error(), "Invalid expression for derivative: ") {
		t.Fatalf("expected derivative error, got %v", err)
	}
}

func TestYRange(t *testing.T) {
	tests := []struct {
		name   string
		series []Series
		lo, hi float64
	}{
		{"padded", []Series{{Points: []Point{{0, 0}, {1, 10}}}}, -1, 11},
		{"flat", []Series{{Points: []Point{{0, 3}, {1, 3}}}}, 2, 4},
		{"empty", nil, -12, 12},
		{"across series", []Series{{Points: []Point{{0, -5}}}, {Points: []Point{{0, 5}}}}, -6, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := (&Figure{Series: tt.series}).YRange()
			if math.Abs(lo-tt.lo) > 1e-9 || math.Abs(hi-tt.hi) > 1e-9 {
				t.Fatalf("YRange = %v, %v; want %v, %v", lo, hi, tt.lo, tt.hi)
			}
		})
	}
}

func TestCanvasReplacesFigure(t *testing.T) {
	var c Canvas
	if c.Current() != nil {
		t.Fatal("expected empty canvas")
	}
	if err := c.Export(filepath.Join(t.TempDir(), DefaultPNG), ExportOptions{}); !errors.Is(err, ErrNoFigure) {
		t.Fatalf("expected ErrNoFigure, got %v", err)
	}
	if _, err := c.Render(40, 10); !errors.Is(err, ErrNoFigure) {
		t.Fatalf("expected ErrNoFigure, got %v", err)
	}

	first, _ := Function("x", DefaultRange())
	second, _ := Function("x^2", DefaultRange())
	c.Draw(first)
	c.Draw(second)
	if c.Current() != second {
		t.Fatal("expected second figure to replace the first")
	}
	c.Destroy()
	if c.Current() != nil {
		t.Fatal("expected Destroy to clear the canvas")
	}
}

func TestRender(t *testing.T) {
	fig, err := WithDerivative("sin(x)", DefaultRange())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := Render(fig, 60, 12)
	if out == "" {
		t.Fatal("expected chart output")
	}
	for _, want := range []string{"f(x) = sin(x)", "f'(x) = cos(x)", "x from -6.28 to 6.28"} {
		if !strings.Contains(out, want) {
			t.Errorf("chart missing %q", want)
		}
	}

	if out := Render(&Figure{}, 60, 12); out != "" {
		t.Fatalf("expected empty output for a figure without points, got %q", out)
	}
}

func TestExport(t *testing.T) {
	fig, err := Function("x^3", DefaultRange())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var c Canvas
	c.Draw(fig)

	dir := t.TempDir()
	for _, name := range []string{DefaultPNG, DefaultPDF} {
		path := filepath.Join(dir, name)
		if err := c.Export(path, ExportOptions{Width: 4, Height: 3}); err != nil {
			t.Fatalf("Export(%s): %v", name, err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat %s: %v", name, err)
		}
		if info.Size() == 0 {
			t.Fatalf("%s is empty", name)
		}
	}

	if err := c.Export(filepath.Join(dir, "graph.gif"), ExportOptions{}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestParseHexColor(t *testing.T) {
	r, g, b, _ := parseHexColor("#4285F4").RGBA()
	if r>>8 != 0x42 || g>>8 != 0x85 || b>>8 != 0xf4 {
		t.Fatalf("unexpected colour %x %x %x", r>>8, g>>8, b>>8)
	}
}
