package decode

// ArgMax picks the highest-scoring class per position from logits shaped
// [contexts][positions][classes]. Ties resolve to the lowest index. Positions
// with no scores get class 0.
func ArgMax(logits [][][]float32) [][]int {
	out := make([][]int, len(logits))
	for i, row := range logits {
		out[i] = make([]int, len(row))
		for j, scores := range row {
			out[i][j] = argmax(scores)
		}
	}
	return out
}

func argmax(values []float32) int {
	if len(values) == 0 {
		return 0
	}
	maxIdx := 0
	maxVal := values[0]
	for i, v := range values[1:] {
		if v > maxVal {
			maxVal = v
			maxIdx = i + 1
		}
	}
	return maxIdx
}
