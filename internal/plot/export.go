package plot

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strconv"
	"strings"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ExportTitle heads every exported figure.
const ExportTitle = "Advanced Calculator Plot"

// Default export file names.
const (
	DefaultPNG = "graph.png"
	DefaultPDF = "graph.pdf"
)

// ExportOptions sizes an exported figure in inches.
type ExportOptions struct {
	Width, Height float64
}

func (o ExportOptions) size() (vg.Length, vg.Length) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = 8
	}
	if h <= 0 {
		h = 5
	}
	return vg.Length(w) * vg.Inch, vg.Length(h) * vg.Inch
}

// Save writes f to path. The extension selects the format: .png or .pdf.
func Save(f *Figure, path string, opts ExportOptions) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png", ".pdf":
	default:
		return fmt.Errorf("export %s: unsupported format %q", path, ext)
	}

	p, err := build(f)
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	w, h := opts.size()
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}

func build(f *Figure) (*gplot.Plot, error) {
	p := gplot.New()
	p.Title.Text = ExportTitle
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Y.Min, p.Y.Max = f.YRange()
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	for _, s := range f.Series {
		if len(s.Points) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(s.Points))
		for i, pt := range s.Points {
			xys[i].X, xys[i].Y = pt.X, pt.Y
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = parseHexColor(s.Color)
		p.Add(line)
		p.Legend.Add(s.Label, line)
	}
	return p, nil
}

// parseHexColor reads #rrggbb. Anything else is black.
func parseHexColor(s string) color.Color {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.Black
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.Black
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
