package tagplot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcEffAndRej(t *testing.T) {
	sig := []float64{0.4, 0.6, 0.8, 1.0}
	bkg := []float64{0.1, 0.3, 0.5, 0.7}

	// Keeping all signal puts the cut at the lowest signal value, 0.4;
	// two of the four background jets sit above it.
	eff, err := CalcEff(sig, bkg, 1.0)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, eff, 1e-12)

	rej, err := CalcRej(sig, bkg, 1.0)
	require.NoError(t, err)
	assert.InDelta(t, 1/eff, rej, 1e-12)
}

func TestCalcRejDiverges(t *testing.T) {
	sig := []float64{2, 3, 4}
	bkg := []float64{-1, -2, -3}

	rej, err := CalcRej(sig, bkg, 0.5)
	require.NoError(t, err)
	assert.True(t, math.IsInf(rej, 1))
}

func TestCalcRejMonotonicInEff(t *testing.T) {
	sig := []float64{0.1, 0.3, 0.5, 0.7, 0.9, 1.1, 1.3, 1.5}
	bkg := []float64{-0.4, -0.1, 0.2, 0.4, 0.6, 0.8, 1.0, 1.2}

	prev := math.Inf(1)
	for _, eff := range SigEffGrid(0.25, 1.0, 4) {
		rej, err := CalcRej(sig, bkg, eff)
		require.NoError(t, err)
		assert.LessOrEqual(t, rej, prev, "eff %v", eff)
		prev = rej
	}
}

func TestEffCutErrors(t *testing.T) {
	_, err := EffCut(nil, 0.5)
	require.ErrorIs(t, err, ErrEmptyCurve)

	_, err = EffCut([]float64{1}, 0)
	require.Error(t, err)

	_, err = EffCut([]float64{1}, 1.5)
	require.Error(t, err)
}

func TestCalcEffEmptyBackground(t *testing.T) {
	_, err := CalcEff([]float64{1, 2}, nil, 0.5)
	require.ErrorIs(t, err, ErrEmptyCurve)
}

func TestSigEffGrid(t *testing.T) {
	grid := SigEffGrid(0.5, 1.0, 6)
	require.Len(t, grid, 6)
	assert.InDelta(t, 0.5, grid[0], 1e-12)
	assert.InDelta(t, 1.0, grid[5], 1e-12)
	assert.InDelta(t, 0.6, grid[1], 1e-12)
}

func TestRejectionCurveFiltersDivergent(t *testing.T) {
	sig := []float64{2, 3, 4, 5}
	bkg := []float64{-1, -2, -3, -4}

	pts, err := RejectionCurve(sig, bkg, SigEffGrid(0.5, 1.0, 5))
	require.NoError(t, err)
	assert.Empty(t, pts)
}

func TestRejectionCurve(t *testing.T) {
	sig := []float64{0.1, 0.3, 0.5, 0.7, 0.9, 1.1, 1.3, 1.5}
	bkg := []float64{-0.4, -0.1, 0.2, 0.4, 0.6, 0.8, 1.0, 1.2}

	pts, err := RejectionCurve(sig, bkg, SigEffGrid(0.5, 1.0, 5))
	require.NoError(t, err)
	require.NotEmpty(t, pts)
	for _, pt := range pts {
		assert.GreaterOrEqual(t, pt.Y, 1.0)
		assert.GreaterOrEqual(t, pt.X, 0.5)
		assert.LessOrEqual(t, pt.X, 1.0)
	}
}
