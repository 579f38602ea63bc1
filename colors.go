package tagplot

import (
	"image/color"

	"gonum.org/v1/plot/plotutil"
)

// CurveColor returns the colour for the i-th curve on a plot. The first
// four match the per-file colours the plot commands have always used;
// later curves fall back to the plotutil palette.
func CurveColor(i int) color.Color {
	switch i {
	case 0:
		return color.RGBA{A: 255}
	case 1:
		return color.RGBA{G: 255, A: 255}
	case 2:
		return color.RGBA{B: 255, A: 255}
	case 3:
		return color.RGBA{R: 255, B: 127, G: 127, A: 255}
	}
	return plotutil.Color(i - 4)
}
