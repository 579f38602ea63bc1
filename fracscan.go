package tagplot

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// FractionScan is one background-fraction scan curve: performance sampled
// over a grid of fraction values, drawn as a line, with an optional single
// marker highlighting a chosen working point.
type FractionScan struct {
	X, Y  []float64
	Label string

	// Marker draws the curve as standalone points instead of a line.
	Marker bool
}

// NewFractionScan validates and wraps a fraction scan curve.
func NewFractionScan(x, y []float64, label string) (*FractionScan, error) {
	if len(x) == 0 || len(y) == 0 {
		return nil, fmt.Errorf("%w: fraction scan %q", ErrEmptyCurve, label)
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: fraction scan %q x=%d y=%d",
			ErrMismatchedLengths, label, len(x), len(y))
	}
	return &FractionScan{X: x, Y: y, Label: label}, nil
}

func (f *FractionScan) xys() plotter.XYs {
	pts := make(plotter.XYs, len(f.X))
	for i := range f.X {
		pts[i].X = f.X[i]
		pts[i].Y = f.Y[i]
	}
	return pts
}

// AddTo draws the curve onto p using the i-th curve colour and registers
// its legend entry.
func (f *FractionScan) AddTo(p *plot.Plot, i int) error {
	c := CurveColor(i)
	if f.Marker {
		s, err := plotter.NewScatter(f.xys())
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = c
		s.GlyphStyle.Radius = vg.Points(3)
		p.Add(s)
		if f.Label != "" {
			p.Legend.Add(f.Label, s)
		}
		return nil
	}

	l, err := plotter.NewLine(f.xys())
	if err != nil {
		return err
	}
	l.LineStyle.Color = c
	l.LineStyle.Width = vg.Points(1.6)
	p.Add(l)
	if f.Label != "" {
		p.Legend.Add(f.Label, l)
	}
	return nil
}
