package vertexing

import "fmt"

// CleanMode selects how CleanIndices treats entries matching the condition.
type CleanMode int

const (
	// CleanRemove resets matching entries to NoIndex.
	CleanRemove CleanMode = iota

	// CleanMerge collapses matching entries onto a single representative
	// index per jet: the lowest non-negative index appearing under the
	// condition in that jet.
	CleanMerge
)

// CleanIndices returns a copy of the per-track vertex index rows with
// entries satisfying cond removed or merged according to mode. indices and
// cond must have identical shape. A jet whose row matches nowhere, or in
// merge mode holds no non-negative matching index, is passed through
// unchanged.
func CleanIndices(indices [][]int, cond [][]bool, mode CleanMode) ([][]int, error) {
	if len(indices) != len(cond) {
		return nil, fmt.Errorf("%w: indices=%d cond=%d", ErrLengthMismatch, len(indices), len(cond))
	}
	out := make([][]int, len(indices))
	for i, row := range indices {
		if len(cond[i]) != len(row) {
			return nil, fmt.Errorf("%w: jet %d indices=%d cond=%d",
				ErrLengthMismatch, i, len(row), len(cond[i]))
		}
		dst := make([]int, len(row))
		copy(dst, row)

		switch mode {
		case CleanRemove:
			for j := range dst {
				if cond[i][j] {
					dst[j] = NoIndex
				}
			}
		case CleanMerge:
			rep := NoIndex
			for j, v := range row {
				if cond[i][j] && v >= 0 && (rep == NoIndex || v < rep) {
					rep = v
				}
			}
			if rep != NoIndex {
				for j := range dst {
					if cond[i][j] {
						dst[j] = rep
					}
				}
			}
		default:
			return nil, fmt.Errorf("vertexing: unknown clean mode %d", mode)
		}
		out[i] = dst
	}
	return out, nil
}
