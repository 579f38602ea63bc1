package vertexing

import (
	"fmt"
	"sort"
)

// Metrics holds the per-jet result of comparing a test (reconstructed)
// index assignment against a reference (truth) one. The per-pair vectors
// are rectangular across jets and padded with NoPair so consumers can mask
// with >= 0.
type Metrics struct {
	// NMatch is the number of matched (reference, test) vertex pairs.
	NMatch []int

	// NRef and NTest are the number of reference and test vertices.
	NRef  []int
	NTest []int

	// TrackOverlap is, per matched pair, the number of shared tracks.
	TrackOverlap [][]int

	// RefVertexSize and TestVertexSize are, per matched pair, the track
	// counts of the two matched vertices.
	RefVertexSize  [][]int
	TestVertexSize [][]int
}

// NoPair pads the per-pair vectors beyond a jet's matched pairs.
const NoPair = -1

// vertex is one reconstructed or true vertex within a jet: the set of
// track slots sharing an index value.
type vertex struct {
	index  int
	tracks []int
}

// buildVertices collects the vertices of one index row: each non-negative
// index value held by at least two tracks, in ascending index order.
func buildVertices(row []int) []vertex {
	byIndex := make(map[int][]int)
	for j, v := range row {
		if v >= 0 {
			byIndex[v] = append(byIndex[v], j)
		}
	}
	indices := make([]int, 0, len(byIndex))
	for v, tracks := range byIndex {
		if len(tracks) >= 2 {
			indices = append(indices, v)
		}
	}
	sort.Ints(indices)
	vertices := make([]vertex, len(indices))
	for n, v := range indices {
		vertices[n] = vertex{index: v, tracks: byIndex[v]}
	}
	return vertices
}

func overlap(a, b vertex) int {
	n := 0
	for _, ta := range a.tracks {
		for _, tb := range b.tracks {
			if ta == tb {
				n++
				break
			}
		}
	}
	return n
}

// VertexMetrics compares two per-jet index assignments and returns match
// counts, vertex sizes and track overlaps per jet. test and ref must hold
// the same jets with the same track width.
//
// Vertices are the non-negative index values held by at least two tracks.
// Matching is greedy one-to-one by descending shared-track count, breaking
// ties towards the lowest reference vertex and then the lowest test
// vertex; pairs sharing no track are never matched.
func VertexMetrics(test, ref [][]int) (*Metrics, error) {
	if len(test) != len(ref) {
		return nil, fmt.Errorf("%w: test=%d ref=%d jets", ErrLengthMismatch, len(test), len(ref))
	}
	nJets := len(test)
	m := &Metrics{
		NMatch:         make([]int, nJets),
		NRef:           make([]int, nJets),
		NTest:          make([]int, nJets),
		TrackOverlap:   make([][]int, nJets),
		RefVertexSize:  make([][]int, nJets),
		TestVertexSize: make([][]int, nJets),
	}

	type pairing struct{ overlap, refSize, testSize int }
	pairs := make([][]pairing, nJets)
	maxPairs := 0

	for i := 0; i < nJets; i++ {
		if len(test[i]) != len(ref[i]) {
			return nil, fmt.Errorf("%w: jet %d test=%d ref=%d tracks",
				ErrLengthMismatch, i, len(test[i]), len(ref[i]))
		}
		refVtx := buildVertices(ref[i])
		testVtx := buildVertices(test[i])
		m.NRef[i] = len(refVtx)
		m.NTest[i] = len(testVtx)

		shared := make([][]int, len(refVtx))
		for r := range refVtx {
			shared[r] = make([]int, len(testVtx))
			for t := range testVtx {
				shared[r][t] = overlap(refVtx[r], testVtx[t])
			}
		}

		refUsed := make([]bool, len(refVtx))
		testUsed := make([]bool, len(testVtx))
		for {
			bestR, bestT, bestN := -1, -1, 0
			for r := range refVtx {
				if refUsed[r] {
					continue
				}
				for t := range testVtx {
					if testUsed[t] {
						continue
					}
					if shared[r][t] > bestN {
						bestR, bestT, bestN = r, t, shared[r][t]
					}
				}
			}
			if bestN == 0 {
				break
			}
			refUsed[bestR] = true
			testUsed[bestT] = true
			pairs[i] = append(pairs[i], pairing{
				overlap:  bestN,
				refSize:  len(refVtx[bestR].tracks),
				testSize: len(testVtx[bestT].tracks),
			})
		}
		m.NMatch[i] = len(pairs[i])
		if len(pairs[i]) > maxPairs {
			maxPairs = len(pairs[i])
		}
	}

	for i := 0; i < nJets; i++ {
		m.TrackOverlap[i] = padPairs(maxPairs)
		m.RefVertexSize[i] = padPairs(maxPairs)
		m.TestVertexSize[i] = padPairs(maxPairs)
		for n, p := range pairs[i] {
			m.TrackOverlap[i][n] = p.overlap
			m.RefVertexSize[i][n] = p.refSize
			m.TestVertexSize[i][n] = p.testSize
		}
	}
	return m, nil
}

func padPairs(width int) []int {
	row := make([]int, width)
	for n := range row {
		row[n] = NoPair
	}
	return row
}
