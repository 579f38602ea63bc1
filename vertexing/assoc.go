package vertexing

import "fmt"

// AssocOptions configures AssociateTracks.
type AssocOptions struct {
	// DropBadJets excludes jets with GoodJet == false from all per-jet
	// outputs and masks their tracks out of the matching.
	DropBadJets bool
}

// Association holds per-jet track-to-hadron vertex assignments. When jets
// are dropped, the outer slices cover only the kept jets; JetIndex maps
// each entry back to its input jet row.
type Association struct {
	// JetIndex is the input jet row of each kept entry.
	JetIndex []int

	// Inclusive marks, per kept jet, the track slots assigned to any of
	// the jet's real hadrons. Rows with fewer than two qualifying
	// tracks are all false.
	Inclusive [][]bool

	// Exclusive marks, per kept jet and per hadron slot, the track
	// slots assigned to that specific hadron. Rows with fewer than two
	// qualifying tracks are all false.
	Exclusive [][][]bool

	// BestHadron is, per kept jet, the hadron slot with the most
	// exclusively assigned tracks, or NoIndex when no hadron holds a
	// valid (two-track) exclusive vertex.
	BestHadron []int

	// NTracksInclusive is the number of tracks qualifying for the
	// inclusive vertex, counted before the two-track rule zeroes the
	// assignment.
	NTracksInclusive []int

	// NTracksExclusive is the per-hadron exclusive track count, counted
	// after the two-track rule (so each entry is 0 or >= 2).
	NTracksExclusive [][]int

	// GoodAssociation flags kept jets whose best hadron is valid.
	GoodAssociation []bool

	// TrackMask is the combined validity mask used for matching over
	// all input jets: the slot mask AND'ed with the jet filter.
	TrackMask [][]bool
}

// AssociateTracks assigns tracks to the best-matching truth hadron of each
// jet by parent-barcode membership. Padding tracks and tracks with a
// negative parent barcode never match. rel must come from ResolveHadrons
// over the same batch.
func AssociateTracks(batch *EventBatch, rel *Relations, opts AssocOptions) (*Association, error) {
	if err := batch.validate(); err != nil {
		return nil, err
	}
	nJets := batch.NJets()
	nTracks := batch.Tracks.Width()
	nHadrons := batch.Hadrons.Width()
	if len(rel.GoodJet) != nJets {
		return nil, fmt.Errorf("%w: relations cover %d jets, batch has %d",
			ErrLengthMismatch, len(rel.GoodJet), nJets)
	}

	mask, err := TrackMask(batch.Jets.NTracks, nTracks)
	if err != nil {
		return nil, err
	}
	if opts.DropBadJets {
		for i := range mask {
			if !rel.GoodJet[i] {
				for j := range mask[i] {
					mask[i][j] = false
				}
			}
		}
	}

	assoc := &Association{TrackMask: mask}

	for i := 0; i < nJets; i++ {
		if opts.DropBadJets && !rel.GoodJet[i] {
			continue
		}

		trackParents := batch.Tracks.ParentBarcode[i]
		hadronBarcodes := batch.Hadrons.Barcode[i]

		inclusive := make([]bool, nTracks)
		nInclusive := 0
		for j := 0; j < nTracks; j++ {
			if !mask[i][j] || trackParents[j] < 0 {
				continue
			}
			for k := 0; k < nHadrons; k++ {
				if hadronBarcodes[k] == trackParents[j] {
					inclusive[j] = true
					nInclusive++
					break
				}
			}
		}
		if nInclusive <= 1 {
			inclusive = make([]bool, nTracks)
		}

		exclusive := make([][]bool, nHadrons)
		nExclusive := make([]int, nHadrons)
		for k := 0; k < nHadrons; k++ {
			row := make([]bool, nTracks)
			n := 0
			for j := 0; j < nTracks; j++ {
				if mask[i][j] && trackParents[j] >= 0 && trackParents[j] == hadronBarcodes[k] {
					row[j] = true
					n++
				}
			}
			if n <= 1 {
				row = make([]bool, nTracks)
				n = 0
			}
			exclusive[k] = row
			nExclusive[k] = n
		}

		best := NoIndex
		bestCount := 0
		for k := 0; k < nHadrons; k++ {
			if nExclusive[k] > bestCount {
				best = k
				bestCount = nExclusive[k]
			}
		}

		assoc.JetIndex = append(assoc.JetIndex, i)
		assoc.Inclusive = append(assoc.Inclusive, inclusive)
		assoc.Exclusive = append(assoc.Exclusive, exclusive)
		assoc.BestHadron = append(assoc.BestHadron, best)
		assoc.NTracksInclusive = append(assoc.NTracksInclusive, nInclusive)
		assoc.NTracksExclusive = append(assoc.NTracksExclusive, nExclusive)
		assoc.GoodAssociation = append(assoc.GoodAssociation, best != NoIndex)
	}

	return assoc, nil
}

// SelectMostTracks returns, for every kept jet with a valid best-hadron
// index, the selected truth hadron and the jet row it belongs to.
func (a *Association) SelectMostTracks(h *HadronTable) ([]Hadron, []int, error) {
	best := make([]int, h.NJets())
	for i := range best {
		best[i] = NoIndex
	}
	for n, i := range a.JetIndex {
		if i < 0 || i >= h.NJets() {
			return nil, nil, fmt.Errorf("%w: jet row %d outside %d jets",
				ErrLengthMismatch, i, h.NJets())
		}
		best[i] = a.BestHadron[n]
	}
	return SelectHadronMostTracks(h, best)
}

// SelectHadronMostTracks returns the hadron selected by best[i] for every
// jet with a valid index, along with the jet rows the selections came
// from. Jets with a NoIndex entry are dropped, not zero-filled.
func SelectHadronMostTracks(h *HadronTable, best []int) ([]Hadron, []int, error) {
	if len(best) > h.NJets() {
		return nil, nil, fmt.Errorf("%w: %d best indices for %d jets",
			ErrLengthMismatch, len(best), h.NJets())
	}
	var selected []Hadron
	var jets []int
	for i, b := range best {
		if b == NoIndex {
			continue
		}
		if b < 0 || b >= h.Width() {
			return nil, nil, fmt.Errorf("%w: best index %d out of %d hadron slots",
				ErrLengthMismatch, b, h.Width())
		}
		selected = append(selected, h.At(i, b))
		jets = append(jets, i)
	}
	return selected, jets, nil
}
