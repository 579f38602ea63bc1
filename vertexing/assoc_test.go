package vertexing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testBatch builds three jets over 4 track slots and 2 hadron slots:
// jet 0 a decay chain, jet 1 a single hadron with a lone track, jet 2 two
// unrelated hadrons (a bad jet).
func testBatch() *EventBatch {
	return &EventBatch{
		Jets: JetTable{
			NTracks: []int{4, 2, 2},
			Flavour: []int{5, 5, 4},
			PT:      []float64{50, 80, 30},
		},
		Tracks: TrackTable{
			ParentBarcode: [][]int{
				{10, 10, 20, NoBarcode},
				{10, NoBarcode, NoBarcode, NoBarcode},
				{30, 40, NoBarcode, NoBarcode},
			},
		},
		Hadrons: HadronTable{
			Barcode: [][]int{
				{10, 20},
				{10, NoBarcode},
				{30, 40},
			},
			ParentBarcode: [][]int{
				{NoBarcode, 10},
				{NoBarcode, NoBarcode},
				{NoBarcode, NoBarcode},
			},
			PDGID: [][]int{
				{511, 421},
				{511, -1},
				{421, 421},
			},
			Flavour: [][]int{
				{5, 4},
				{5, -1},
				{4, 4},
			},
		},
	}
}

func TestAssociateTracks(t *testing.T) {
	batch := testBatch()
	rel, err := ResolveHadrons(&batch.Hadrons, quietLogger())
	require.NoError(t, err)
	require.Equal(t, []bool{true, true, false}, rel.GoodJet)

	assoc, err := AssociateTracks(batch, rel, AssocOptions{DropBadJets: true})
	require.NoError(t, err)

	// The bad jet is excluded from all per-jet outputs.
	require.Equal(t, []int{0, 1}, assoc.JetIndex)

	// Jet 0: three tracks match a hadron, inclusive vertex survives.
	assert.Equal(t, []bool{true, true, true, false}, assoc.Inclusive[0])
	assert.Equal(t, 3, assoc.NTracksInclusive[0])

	// Hadron 0 holds two tracks, hadron 1 only one: its exclusive
	// vertex is zeroed.
	assert.Equal(t, []bool{true, true, false, false}, assoc.Exclusive[0][0])
	assert.Equal(t, []bool{false, false, false, false}, assoc.Exclusive[0][1])
	assert.Equal(t, []int{2, 0}, assoc.NTracksExclusive[0])
	assert.Equal(t, 0, assoc.BestHadron[0])
	assert.True(t, assoc.GoodAssociation[0])

	// Jet 1: a single qualifying track is not a vertex.
	assert.Equal(t, []bool{false, false, false, false}, assoc.Inclusive[1])
	assert.Equal(t, 1, assoc.NTracksInclusive[1])
	assert.Equal(t, []int{0, 0}, assoc.NTracksExclusive[1])
	assert.Equal(t, NoIndex, assoc.BestHadron[1])
	assert.False(t, assoc.GoodAssociation[1])

	// The combined mask blanks the dropped jet's tracks.
	assert.Equal(t, []bool{false, false, false, false}, assoc.TrackMask[2])
	assert.Equal(t, []bool{true, true, true, true}, assoc.TrackMask[0])
	assert.Equal(t, []bool{true, true, false, false}, assoc.TrackMask[1])
}

func TestAssociateTracksKeepBadJets(t *testing.T) {
	batch := testBatch()
	rel, err := ResolveHadrons(&batch.Hadrons, quietLogger())
	require.NoError(t, err)

	assoc, err := AssociateTracks(batch, rel, AssocOptions{})
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, assoc.JetIndex)

	// The unrelated jet still associates: each hadron holds one track,
	// so nothing reaches the two-track threshold.
	assert.Equal(t, []int{0, 0}, assoc.NTracksExclusive[2])
	assert.Equal(t, NoIndex, assoc.BestHadron[2])
}

func TestAssociateTracksBestHadron(t *testing.T) {
	// Exclusive counts [0, 3, 1]: the one-track hadron zeroes out, the
	// three-track hadron wins.
	batch := &EventBatch{
		Jets: JetTable{NTracks: []int{4}, Flavour: []int{5}, PT: []float64{60}},
		Tracks: TrackTable{
			ParentBarcode: [][]int{{20, 20, 20, 30}},
		},
		Hadrons: HadronTable{
			Barcode:       [][]int{{10, 20, 30}},
			ParentBarcode: [][]int{{NoBarcode, 10, 10}},
			PDGID:         [][]int{{511, 421, 421}},
			Flavour:       [][]int{{5, 4, 4}},
		},
	}
	rel, err := ResolveHadrons(&batch.Hadrons, quietLogger())
	require.NoError(t, err)

	assoc, err := AssociateTracks(batch, rel, AssocOptions{DropBadJets: true})
	require.NoError(t, err)
	require.Len(t, assoc.BestHadron, 1)
	assert.Equal(t, []int{0, 3, 0}, assoc.NTracksExclusive[0])
	assert.Equal(t, 1, assoc.BestHadron[0])
}

func TestAssociateTracksInvalidShape(t *testing.T) {
	batch := testBatch()
	batch.Jets.NTracks[0] = 9
	rel, err := ResolveHadrons(&batch.Hadrons, quietLogger())
	require.NoError(t, err)

	_, err = AssociateTracks(batch, rel, AssocOptions{})
	require.ErrorIs(t, err, ErrInvalidShape)
}

func TestSelectHadronMostTracks(t *testing.T) {
	batch := testBatch()
	rel, err := ResolveHadrons(&batch.Hadrons, quietLogger())
	require.NoError(t, err)
	assoc, err := AssociateTracks(batch, rel, AssocOptions{DropBadJets: true})
	require.NoError(t, err)

	selected, jets, err := assoc.SelectMostTracks(&batch.Hadrons)
	require.NoError(t, err)

	// Only jet 0 carries a valid association; jets with the sentinel
	// are dropped, not zero-filled.
	require.Equal(t, []int{0}, jets)
	require.Len(t, selected, 1)
	assert.Equal(t, Hadron{Barcode: 10, ParentBarcode: NoBarcode, PDGID: 511, Flavour: 5}, selected[0])
}

func TestSelectHadronMostTracksRowAligned(t *testing.T) {
	batch := testBatch()
	best := []int{1, NoIndex, 0}

	selected, jets, err := SelectHadronMostTracks(&batch.Hadrons, best)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, jets)
	require.Len(t, selected, 2)
	assert.Equal(t, 20, selected[0].Barcode)
	assert.Equal(t, 30, selected[1].Barcode)
}

func TestSelectHadronMostTracksOutOfRange(t *testing.T) {
	batch := testBatch()
	_, _, err := SelectHadronMostTracks(&batch.Hadrons, []int{5})
	require.ErrorIs(t, err, ErrLengthMismatch)
}
