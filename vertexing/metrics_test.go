package vertexing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexMetricsPerfectMatch(t *testing.T) {
	ref := [][]int{{1, 1, 2, 2, NoIndex}}
	test := [][]int{{1, 1, 2, 2, NoIndex}}

	m, err := VertexMetrics(test, ref)
	require.NoError(t, err)

	assert.Equal(t, []int{2}, m.NMatch)
	assert.Equal(t, []int{2}, m.NRef)
	assert.Equal(t, []int{2}, m.NTest)
	assert.Equal(t, []int{2, 2}, m.TrackOverlap[0])
	assert.Equal(t, []int{2, 2}, m.RefVertexSize[0])
	assert.Equal(t, []int{2, 2}, m.TestVertexSize[0])
}

func TestVertexMetricsGreedyPairing(t *testing.T) {
	// One merged reco vertex over two true ones: the larger overlap is
	// claimed first, the second true vertex stays unmatched.
	ref := [][]int{{0, 0, 0, 1, 1}}
	test := [][]int{{5, 5, 5, 5, 5}}

	m, err := VertexMetrics(test, ref)
	require.NoError(t, err)

	assert.Equal(t, []int{1}, m.NMatch)
	assert.Equal(t, []int{2}, m.NRef)
	assert.Equal(t, []int{1}, m.NTest)
	assert.Equal(t, []int{3}, m.TrackOverlap[0])
	assert.Equal(t, []int{3}, m.RefVertexSize[0])
	assert.Equal(t, []int{5}, m.TestVertexSize[0])
}

func TestVertexMetricsSingleTrackIsNoVertex(t *testing.T) {
	ref := [][]int{{3, NoIndex, NoIndex}}
	test := [][]int{{3, 3, NoIndex}}

	m, err := VertexMetrics(test, ref)
	require.NoError(t, err)

	assert.Equal(t, []int{0}, m.NRef)
	assert.Equal(t, []int{1}, m.NTest)
	assert.Equal(t, []int{0}, m.NMatch)
}

func TestVertexMetricsDisjointVertices(t *testing.T) {
	// Same index values but no shared track slots: no pair is matched.
	ref := [][]int{{1, 1, NoIndex, NoIndex}}
	test := [][]int{{NoIndex, NoIndex, 1, 1}}

	m, err := VertexMetrics(test, ref)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, m.NMatch)
	assert.Equal(t, []int{1}, m.NRef)
	assert.Equal(t, []int{1}, m.NTest)
}

func TestVertexMetricsPadding(t *testing.T) {
	ref := [][]int{
		{1, 1, 2, 2},
		{NoIndex, NoIndex, NoIndex, NoIndex},
	}
	test := [][]int{
		{1, 1, 2, 2},
		{NoIndex, NoIndex, NoIndex, NoIndex},
	}

	m, err := VertexMetrics(test, ref)
	require.NoError(t, err)

	// Rows are rectangular: the empty jet is padded with the NoPair
	// sentinel so consumers can mask with >= 0.
	require.Len(t, m.TrackOverlap[1], 2)
	assert.Equal(t, []int{NoPair, NoPair}, m.TrackOverlap[1])
	assert.Equal(t, []int{NoPair, NoPair}, m.RefVertexSize[1])
	assert.Equal(t, []int{NoPair, NoPair}, m.TestVertexSize[1])
}

func TestVertexMetricsTieBreak(t *testing.T) {
	// Two equal overlaps: the lowest reference vertex pairs first with
	// the lowest test vertex.
	ref := [][]int{{1, 1, 2, 2}}
	test := [][]int{{7, 7, 7, 7}}

	m, err := VertexMetrics(test, ref)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, m.NMatch)
	assert.Equal(t, []int{2}, m.TrackOverlap[0])
	assert.Equal(t, []int{2}, m.RefVertexSize[0])
	assert.Equal(t, []int{4}, m.TestVertexSize[0])
}

func TestVertexMetricsLengthMismatch(t *testing.T) {
	_, err := VertexMetrics([][]int{{1}}, [][]int{{1}, {2}})
	require.ErrorIs(t, err, ErrLengthMismatch)

	_, err = VertexMetrics([][]int{{1, 1}}, [][]int{{1}})
	require.ErrorIs(t, err, ErrLengthMismatch)
}
