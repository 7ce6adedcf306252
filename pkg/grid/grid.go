package grid

// GetGridCoords converts a linear index into (x, y) on a grid that is cols
// cells wide.
func GetGridCoords(index, cols int) (x, y int) {
	return index % cols, index / cols
}

// Rows returns how many rows n cells need at cols per row.
func Rows(n, cols int) int {
	if n <= 0 {
		return 0
	}
	return (n + cols - 1) / cols
}
