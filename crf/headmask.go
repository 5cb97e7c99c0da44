package crf

// CompressWithHeadMask moves the values at head positions (mask value 1) of
// each row to the front, filling the rest with pad. Rows keep their length.
func CompressWithHeadMask(headMask, x [][]int, pad int) [][]int {
	out := make([][]int, len(x))
	for i, row := range x {
		compressed := filled(len(row), pad)
		k := 0
		for j := range row {
			if j < len(headMask[i]) && headMask[i][j] == 1 {
				compressed[k] = row[j]
				k++
			}
		}
		out[i] = compressed
	}
	return out
}

// ExpandWithHeadMask reverses CompressWithHeadMask: every position takes the
// value of the most recent head at or before it. Positions before the first
// head get pad.
func ExpandWithHeadMask(headMask, x [][]int, pad int) [][]int {
	out := make([][]int, len(x))
	for i, row := range x {
		expanded := filled(len(row), pad)
		k := -1
		for j := range row {
			if j < len(headMask[i]) && headMask[i][j] == 1 {
				k++
			}
			if k >= 0 && k < len(row) {
				expanded[j] = row[k]
			}
		}
		out[i] = expanded
	}
	return out
}

func filled(n, v int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = v
	}
	return s
}
