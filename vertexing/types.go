package vertexing

import (
	"errors"
	"fmt"
)

// Sentinel values used throughout the padded tables.
const (
	// NoBarcode marks an absent hadron slot or a track with no truth
	// association.
	NoBarcode = -1

	// NoIndex marks a missing slot index (no label hadron, no child
	// hadron, no best association, unassigned vertex index).
	NoIndex = -1
)

var (
	// ErrInvalidShape indicates a declared per-jet track count larger
	// than the fixed slot width.
	ErrInvalidShape = errors.New("vertexing: declared track count exceeds slot width")

	// ErrLengthMismatch indicates aligned per-jet inputs with different
	// jet counts or row widths.
	ErrLengthMismatch = errors.New("vertexing: mismatched table lengths")
)

// JetTable holds per-jet scalar fields. Each slice has one entry per jet.
type JetTable struct {
	// NTracks is the declared number of real tracks per jet. Slots at
	// positions >= NTracks[i] in the track table are padding.
	NTracks []int

	// Flavour is the jet truth flavour label.
	Flavour []int

	// PT is the jet transverse momentum, used as the performance
	// variable by the plotting layer.
	PT []float64
}

// TrackTable holds per-track fields as nJets x width padded rows.
type TrackTable struct {
	// ParentBarcode is the barcode of the truth hadron that produced
	// each track, or NoBarcode for padding and unassociated tracks.
	ParentBarcode [][]int
}

// NJets returns the number of jet rows.
func (t *TrackTable) NJets() int { return len(t.ParentBarcode) }

// Width returns the fixed number of track slots per jet.
func (t *TrackTable) Width() int {
	if len(t.ParentBarcode) == 0 {
		return 0
	}
	return len(t.ParentBarcode[0])
}

// HadronTable holds per-truth-hadron fields as nJets x width padded rows.
// A slot with Barcode == NoBarcode is absent.
type HadronTable struct {
	Barcode       [][]int
	ParentBarcode [][]int
	PDGID         [][]int
	Flavour       [][]int
}

// NJets returns the number of jet rows.
func (h *HadronTable) NJets() int { return len(h.Barcode) }

// Width returns the fixed number of hadron slots per jet.
func (h *HadronTable) Width() int {
	if len(h.Barcode) == 0 {
		return 0
	}
	return len(h.Barcode[0])
}

// Hadron is one truth-hadron slot pulled out of a HadronTable.
type Hadron struct {
	Barcode       int
	ParentBarcode int
	PDGID         int
	Flavour       int
}

// At returns the hadron stored at jet i, slot j.
func (h *HadronTable) At(i, j int) Hadron {
	return Hadron{
		Barcode:       h.Barcode[i][j],
		ParentBarcode: h.ParentBarcode[i][j],
		PDGID:         h.PDGID[i][j],
		Flavour:       h.Flavour[i][j],
	}
}

// EventBatch bundles the three aligned tables loaded for one event batch.
type EventBatch struct {
	Jets    JetTable
	Tracks  TrackTable
	Hadrons HadronTable
}

// NJets returns the number of jets in the batch.
func (b *EventBatch) NJets() int { return len(b.Jets.NTracks) }

func (b *EventBatch) validate() error {
	n := b.NJets()
	if b.Tracks.NJets() != n || b.Hadrons.NJets() != n {
		return fmt.Errorf("%w: jets=%d tracks=%d hadrons=%d",
			ErrLengthMismatch, n, b.Tracks.NJets(), b.Hadrons.NJets())
	}
	return nil
}

func checkRect(rows [][]int, width int) bool {
	for _, row := range rows {
		if len(row) != width {
			return false
		}
	}
	return true
}
