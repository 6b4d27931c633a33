package mesh

// InstanceGrid produces cols*rows 3D offsets arranged in a centered XY grid
// with the given spacing, row-major, z = 0. The set is generated once and
// stays constant for a run.
func InstanceGrid(cols, rows int, spacing float32) []float32 {
	out := make([]float32, 0, cols*rows*3)
	ox := -spacing * float32(cols-1) / 2
	oy := -spacing * float32(rows-1) / 2
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out = append(out, ox+spacing*float32(c), oy+spacing*float32(r), 0)
		}
	}
	return out
}
