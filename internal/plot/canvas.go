package plot

import (
	"errors"
)

var ErrNoFigure = errors.New("No graph to export. Please plot a function first.")

// Canvas holds at most one figure. Drawing replaces the previous one.
type Canvas struct {
	fig *Figure
}

// Draw destroys the current figure and shows f.
func (c *Canvas) Draw(f *Figure) {
	c.Destroy()
	c.fig = f
}

// Destroy discards the current figure.
func (c *Canvas) Destroy() { c.fig = nil }

// Current returns the displayed figure, or nil.
func (c *Canvas) Current() *Figure { return c.fig }

// Render draws the current figure as a terminal chart.
func (c *Canvas) Render(width, height int) (string, error) {
	if c.fig == nil {
		return "", ErrNoFigure
	}
	return Render(c.fig, width, height), nil
}

// Export saves the current figure; the file extension picks PNG or PDF.
func (c *Canvas) Export(path string, opts ExportOptions) error {
	if c.fig == nil {
		return ErrNoFigure
	}
	return Save(c.fig, path, opts)
}
