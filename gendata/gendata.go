// Package gendata generates deterministic dummy samples for the plot
// commands' demo mode and for tests: tagger discriminant scores with a
// controllable separation, and padded jet/track/hadron batches with
// coherent decay-chain barcodes.
package gendata

import (
	"math/rand"

	"github.com/flavourtag/tagplot/vertexing"
)

// TaggerSample holds per-jet discriminant scores for one tagger, split by
// truth class.
type TaggerSample struct {
	Name    string
	SigDisc []float64
	BkgDisc []float64
}

// TwoTaggers returns scores for a well-separating and a poorly-separating
// tagger over the same n signal and n background jets. The same seed
// always yields the same sample.
func TwoTaggers(n int, seed int64) (good, bad TaggerSample) {
	rng := rand.New(rand.NewSource(seed))
	good = TaggerSample{Name: "MockTaggerA"}
	bad = TaggerSample{Name: "MockTaggerB"}
	for i := 0; i < n; i++ {
		// Shared underlying jet kinematics, tagger-specific smearing.
		sig := rng.NormFloat64()
		bkg := rng.NormFloat64()
		good.SigDisc = append(good.SigDisc, sig+2.0)
		good.BkgDisc = append(good.BkgDisc, bkg-2.0)
		bad.SigDisc = append(bad.SigDisc, sig+0.5)
		bad.BkgDisc = append(bad.BkgDisc, bkg-0.5)
	}
	return good, bad
}

// Batch returns a padded event batch of nJets jets with up to nTracks
// track slots and nHadrons hadron slots per jet. Jets cycle through the
// three topologies (single hadron, decay chain, unrelated hadrons) and
// tracks point back at their hadrons by barcode, so the batch exercises
// the whole vertexing pipeline. The same seed always yields the same
// batch.
func Batch(nJets, nTracks, nHadrons int, seed int64) *vertexing.EventBatch {
	rng := rand.New(rand.NewSource(seed))

	b := &vertexing.EventBatch{
		Jets: vertexing.JetTable{
			NTracks: make([]int, nJets),
			Flavour: make([]int, nJets),
			PT:      make([]float64, nJets),
		},
		Tracks: vertexing.TrackTable{
			ParentBarcode: make([][]int, nJets),
		},
		Hadrons: vertexing.HadronTable{
			Barcode:       make([][]int, nJets),
			ParentBarcode: make([][]int, nJets),
			PDGID:         make([][]int, nJets),
			Flavour:       make([][]int, nJets),
		},
	}

	for i := 0; i < nJets; i++ {
		barcode := padRow(nHadrons)
		parent := padRow(nHadrons)
		pdg := padRow(nHadrons)
		flav := padRow(nHadrons)

		base := 10 * (i + 1)
		switch i % 3 {
		case 0: // single hadron
			barcode[0] = base
			pdg[0] = 511
			flav[0] = 5
		case 1: // decay chain: slot 1 decays from slot 0
			barcode[0] = base
			barcode[1] = base + 1
			parent[1] = base
			pdg[0], pdg[1] = 511, 421
			flav[0], flav[1] = 5, 4
		case 2: // two unrelated hadrons
			barcode[0] = base
			barcode[1] = base + 1
			pdg[0], pdg[1] = 421, 421
			flav[0], flav[1] = 4, 4
		}

		b.Hadrons.Barcode[i] = barcode
		b.Hadrons.ParentBarcode[i] = parent
		b.Hadrons.PDGID[i] = pdg
		b.Hadrons.Flavour[i] = flav

		nReal := 2 + rng.Intn(nTracks-1)
		b.Jets.NTracks[i] = nReal
		b.Jets.Flavour[i] = flav[0]
		b.Jets.PT[i] = 20 + 200*rng.Float64()

		tracks := padRow(nTracks)
		for j := 0; j < nReal; j++ {
			// Most real tracks come from one of the jet's hadrons,
			// the rest stay unassociated.
			if rng.Float64() < 0.8 {
				k := rng.Intn(nHadrons)
				if barcode[k] != vertexing.NoBarcode {
					tracks[j] = barcode[k]
				}
			}
		}
		b.Tracks.ParentBarcode[i] = tracks
	}

	return b
}

func padRow(width int) []int {
	row := make([]int, width)
	for j := range row {
		row[j] = vertexing.NoBarcode
	}
	return row
}
