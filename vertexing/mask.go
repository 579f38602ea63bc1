package vertexing

import "fmt"

// TrackMask builds a validity mask over the fixed track slots of each jet.
// Slot j of jet i is true when j < declared[i]. A declared count larger
// than width is an ErrInvalidShape.
func TrackMask(declared []int, width int) ([][]bool, error) {
	mask := make([][]bool, len(declared))
	for i, n := range declared {
		if n > width {
			return nil, fmt.Errorf("%w: jet %d declares %d tracks, width is %d",
				ErrInvalidShape, i, n, width)
		}
		row := make([]bool, width)
		for j := 0; j < n; j++ {
			row[j] = true
		}
		mask[i] = row
	}
	return mask, nil
}
