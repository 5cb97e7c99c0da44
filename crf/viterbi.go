// Package crf decodes tag sequences from a linear-chain CRF's emission and
// transition scores.
package crf

import (
	"errors"
	"fmt"
	"math"

	"github.com/jamesainslie/go-nereval/tagscheme"
)

// ErrDimensionMismatch indicates score matrices whose label dimensions
// disagree.
var ErrDimensionMismatch = errors.New("crf: dimension mismatch")

// Transitions holds the learned CRF transition scores. Start and End may be
// nil, meaning no start or stop bias.
type Transitions struct {
	// Scores[from][to] is the score of moving from label from to label to.
	Scores [][]float64
	Start  []float64
	End    []float64
}

// NumLabels returns the label dimension of t.
func (t Transitions) NumLabels() int {
	return len(t.Scores)
}

func (t Transitions) validate() error {
	n := len(t.Scores)
	for i, row := range t.Scores {
		if len(row) != n {
			return fmt.Errorf("%w: transition row %d has %d labels, want %d", ErrDimensionMismatch, i, len(row), n)
		}
	}
	if t.Start != nil && len(t.Start) != n {
		return fmt.Errorf("%w: %d start scores, want %d", ErrDimensionMismatch, len(t.Start), n)
	}
	if t.End != nil && len(t.End) != n {
		return fmt.Errorf("%w: %d end scores, want %d", ErrDimensionMismatch, len(t.End), n)
	}
	return nil
}

// Viterbi returns the highest-scoring label sequence for emissions shaped
// [positions][labels].
func Viterbi(emissions [][]float64, trans Transitions) ([]int, error) {
	if err := trans.validate(); err != nil {
		return nil, err
	}
	n := len(emissions)
	if n == 0 {
		return []int{}, nil
	}
	L := trans.NumLabels()
	for i, e := range emissions {
		if len(e) != L {
			return nil, fmt.Errorf("%w: position %d has %d emissions, want %d", ErrDimensionMismatch, i, len(e), L)
		}
	}

	// dp[i][y] = best score of a path ending at i with label y
	dp := make([][]float64, n)
	path := make([][]int, n)
	for i := range dp {
		dp[i] = make([]float64, L)
		path[i] = make([]int, L)
	}

	for y := 0; y < L; y++ {
		dp[0][y] = emissions[0][y]
		if trans.Start != nil {
			dp[0][y] += trans.Start[y]
		}
	}

	for i := 1; i < n; i++ {
		for curr := 0; curr < L; curr++ {
			best := math.Inf(-1)
			bestPrev := 0
			for prev := 0; prev < L; prev++ {
				score := dp[i-1][prev] + trans.Scores[prev][curr]
				if score > best {
					best = score
					bestPrev = prev
				}
			}
			dp[i][curr] = best + emissions[i][curr]
			path[i][curr] = bestPrev
		}
	}

	best := math.Inf(-1)
	bestEnd := 0
	for y := 0; y < L; y++ {
		score := dp[n-1][y]
		if trans.End != nil {
			score += trans.End[y]
		}
		if score > best {
			best = score
			bestEnd = y
		}
	}

	tags := make([]int, n)
	tags[n-1] = bestEnd
	for i := n - 1; i > 0; i-- {
		tags[i-1] = path[i][tags[i]]
	}
	return tags, nil
}

// DecodeBatch runs Viterbi over each sequence's masked prefix and pads the
// result with tagscheme.Ignore up to the sequence's full length. emissions is
// [sequences][positions][labels]; mask is [sequences][positions] with 1 for
// real positions. A nil mask decodes every position.
func DecodeBatch(emissions [][][]float64, mask [][]int, trans Transitions) ([][]int, error) {
	if mask != nil && len(mask) != len(emissions) {
		return nil, fmt.Errorf("%w: %d sequences, %d mask rows", ErrDimensionMismatch, len(emissions), len(mask))
	}

	out := make([][]int, len(emissions))
	for i, seq := range emissions {
		length := len(seq)
		if mask != nil {
			length = maskedLength(mask[i])
			if length > len(seq) {
				return nil, fmt.Errorf("%w: sequence %d mask covers %d positions, have %d",
					ErrDimensionMismatch, i, length, len(seq))
			}
		}

		tags, err := Viterbi(seq[:length], trans)
		if err != nil {
			return nil, fmt.Errorf("sequence %d: %w", i, err)
		}

		row := make([]int, len(seq))
		copy(row, tags)
		for j := length; j < len(row); j++ {
			row[j] = tagscheme.Ignore
		}
		out[i] = row
	}
	return out, nil
}

// maskedLength counts the leading run of set mask positions.
func maskedLength(mask []int) int {
	for i, v := range mask {
		if v == 0 {
			return i
		}
	}
	return len(mask)
}
