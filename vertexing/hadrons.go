package vertexing

import (
	"fmt"
	"log/slog"
)

// Relations holds the per-jet hadron relationship matrices and jet topology
// classification produced by ResolveHadrons. All matrices are nJets x
// nHadronSlots, aligned with the input table.
type Relations struct {
	// Child marks slots whose parent barcode matches another slot's
	// barcode in the same jet.
	Child [][]bool

	// Parent marks slots whose barcode is referenced as the parent
	// barcode of another slot in the same jet.
	Parent [][]bool

	// RealHadron marks non-padding slots.
	RealHadron [][]bool

	// Family marks real slots that are either a child or a parent.
	Family [][]bool

	// OneHadron flags jets with exactly one real hadron.
	OneHadron []bool

	// GoodJet flags jets with one hadron or a decay chain of size > 1.
	GoodJet []bool

	// Unrelated flags jets with multiple hadrons but no mutual
	// parent/child relation.
	Unrelated []bool

	// Indices holds per jet the label, child and second-child hadron
	// slot indices, NoIndex where missing.
	Indices [][3]int
}

// Index positions within Relations.Indices.
const (
	LabelHadron = iota
	ChildHadron
	Child2Hadron
)

// ResolveHadrons resolves parent/child barcode relationships among the
// truth hadrons of each jet and classifies the jet topology.
//
// The label hadron is slot 0 for single-hadron jets, otherwise the first
// parent slot. The child index is the first child slot. When two or more
// slots are children, the second-child index is taken by scanning the
// candidates in ascending slot order and keeping the last one that differs
// from the child index, so the highest-indexed distinct child wins.
//
// A census of the three topology classes is logged, and a jet population
// not covered by any class is reported as an accounting gap without
// failing: the gap is explained when all hadrons of the uncovered jets
// have PDGID == -1 and Flavour == -1 (jets with no heavy-flavour content
// at all). Pass a nil logger to use slog.Default().
func ResolveHadrons(h *HadronTable, logger *slog.Logger) (*Relations, error) {
	if logger == nil {
		logger = slog.Default()
	}
	nJets := h.NJets()
	width := h.Width()
	for _, tbl := range [][][]int{h.Barcode, h.ParentBarcode, h.PDGID, h.Flavour} {
		if !checkRect(tbl, width) {
			return nil, fmt.Errorf("%w: ragged hadron table", ErrLengthMismatch)
		}
		if len(tbl) != nJets {
			return nil, fmt.Errorf("%w: barcode=%d field=%d",
				ErrLengthMismatch, nJets, len(tbl))
		}
	}

	logger.Debug("resolving truth hadrons", "n_jets", nJets, "max_hadrons", width)

	rel := &Relations{
		Child:      make([][]bool, nJets),
		Parent:     make([][]bool, nJets),
		RealHadron: make([][]bool, nJets),
		Family:     make([][]bool, nJets),
		OneHadron:  make([]bool, nJets),
		GoodJet:    make([]bool, nJets),
		Unrelated:  make([]bool, nJets),
		Indices:    make([][3]int, nJets),
	}

	var nOne, nChain, nUnrelated, nTwoSV, nThreeSV, nFourSV, nGood int

	for i := 0; i < nJets; i++ {
		barcodes := h.Barcode[i]
		parents := h.ParentBarcode[i]

		child := make([]bool, width)
		parent := make([]bool, width)
		isReal := make([]bool, width)
		family := make([]bool, width)
		nReal := 0

		for j := 0; j < width; j++ {
			if barcodes[j] != NoBarcode {
				isReal[j] = true
				nReal++
			}
			if parents[j] != NoBarcode {
				for k := 0; k < width; k++ {
					if k != j && barcodes[k] == parents[j] {
						child[j] = true
						break
					}
				}
			}
			if barcodes[j] != NoBarcode {
				for k := 0; k < width; k++ {
					if k != j && parents[k] == barcodes[j] {
						parent[j] = true
						break
					}
				}
			}
		}

		nFamily := 0
		for j := 0; j < width; j++ {
			family[j] = isReal[j] && (child[j] || parent[j])
			if family[j] {
				nFamily++
			}
		}

		one := nReal == 1
		good := one || nFamily > 1
		unrelated := nReal > 1 && nFamily <= 1

		idx := [3]int{NoIndex, NoIndex, NoIndex}
		if one {
			// The single hadron is always stored at slot 0.
			idx[LabelHadron] = 0
		} else {
			for j := 0; j < width; j++ {
				if parent[j] {
					idx[LabelHadron] = j
					break
				}
			}
			for j := 0; j < width; j++ {
				if child[j] {
					idx[ChildHadron] = j
					break
				}
			}
		}

		nChildren := 0
		for j := 0; j < width; j++ {
			if child[j] {
				nChildren++
			}
		}
		if nChildren >= 2 {
			// Scan ascending and overwrite: the highest-indexed slot
			// that differs from the child index wins.
			for j := 0; j < width; j++ {
				if child[j] && j != idx[ChildHadron] {
					idx[Child2Hadron] = j
				}
			}
		}

		rel.Child[i] = child
		rel.Parent[i] = parent
		rel.RealHadron[i] = isReal
		rel.Family[i] = family
		rel.OneHadron[i] = one
		rel.GoodJet[i] = good
		rel.Unrelated[i] = unrelated
		rel.Indices[i] = idx

		if one {
			nOne++
		}
		if nFamily > 1 {
			nChain++
		}
		if unrelated {
			nUnrelated++
		}
		if nFamily == 2 {
			nTwoSV++
		}
		if nFamily > 2 {
			nThreeSV++
		}
		if nFamily > 3 {
			nFourSV++
		}
		if good {
			nGood++
		}
	}

	logger.Info("truth hadron census",
		"n_jets", nJets,
		"one_hadron", nOne,
		"decay_chain", nChain,
		"unrelated", nUnrelated,
		"two_sv", nTwoSV,
		"three_plus_sv", nThreeSV,
		"four_plus_sv", nFourSV,
		"good_jets", nGood,
	)

	if nOne+nChain+nUnrelated != nJets {
		rel.reportAccountingGap(h, logger)
	}

	return rel, nil
}

// reportAccountingGap inspects jets covered by none of the three topology
// classes. The gap is benign when every hadron slot of those jets carries
// PDGID == -1 and Flavour == -1.
func (rel *Relations) reportAccountingGap(h *HadronTable, logger *slog.Logger) {
	nMissing := 0
	nUnexplained := 0
	for i := range rel.GoodJet {
		if rel.GoodJet[i] || rel.Unrelated[i] {
			continue
		}
		nMissing++
		for j := range h.PDGID[i] {
			if h.PDGID[i][j] != -1 || h.Flavour[i][j] != -1 {
				nUnexplained++
				break
			}
		}
	}
	if nUnexplained == 0 {
		logger.Warn("topology accounting gap explained by non-HF jets",
			"n_jets", nMissing)
		return
	}
	logger.Warn("topology accounting gap not understood",
		"n_jets", nMissing, "n_unexplained", nUnexplained)
}
