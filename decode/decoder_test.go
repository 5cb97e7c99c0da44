package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/go-nereval/tagscheme"
)

const (
	o = 0
	b = 1
	i = 2
	e = 3
	s = 4
	x = tagscheme.Ignore
)

func zeros(n int) []int {
	return make([]int, n)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		scheme tagscheme.Scheme
		tags   []int
		mask   []int
		want   []Span
	}{
		{
			name:   "BO coalesces adjacent B",
			scheme: tagscheme.BO,
			tags:   []int{b, b, o, b},
			want:   []Span{{0, 0, 1, "TAG"}, {0, 3, 3, "TAG"}},
		},
		{
			name:   "BO ignores out-of-range I",
			scheme: tagscheme.BO,
			tags:   []int{b, i, b},
			want:   []Span{{0, 0, 0, "TAG"}, {0, 2, 2, "TAG"}},
		},
		{
			name:   "BIO grows on I",
			scheme: tagscheme.BIO,
			tags:   []int{b, i, i, o},
			want:   []Span{{0, 0, 2, "TAG"}},
		},
		{
			name:   "BIO B always starts fresh",
			scheme: tagscheme.BIO,
			tags:   []int{b, b, i},
			want:   []Span{{0, 0, 0, "TAG"}, {0, 1, 2, "TAG"}},
		},
		{
			name:   "BIO orphan I emits nothing",
			scheme: tagscheme.BIO,
			tags:   []int{o, i, i, b},
			want:   []Span{{0, 3, 3, "TAG"}},
		},
		{
			name:   "BIOE end fixes boundary",
			scheme: tagscheme.BIOE,
			tags:   []int{b, i, e, o},
			want:   []Span{{0, 0, 2, "TAG"}},
		},
		{
			name:   "BIOE missing E keeps last confirmed end",
			scheme: tagscheme.BIOE,
			tags:   []int{b, i, o},
			want:   []Span{{0, 0, 0, "TAG"}},
		},
		{
			name:   "BIOE repeated E keeps extending",
			scheme: tagscheme.BIOE,
			tags:   []int{b, e, e},
			want:   []Span{{0, 0, 2, "TAG"}},
		},
		{
			name:   "BIOES single is isolated",
			scheme: tagscheme.BIOES,
			tags:   []int{s, i, e},
			want:   []Span{{0, 0, 0, "TAG"}},
		},
		{
			name:   "BIOES mixed",
			scheme: tagscheme.BIOES,
			tags:   []int{b, i, i, e, s, o, b},
			want:   []Span{{0, 0, 3, "TAG"}, {0, 4, 4, "TAG"}, {0, 6, 6, "TAG"}},
		},
		{
			name:   "unknown index closes",
			scheme: tagscheme.BIO,
			tags:   []int{b, 7, i},
			want:   []Span{{0, 0, 0, "TAG"}},
		},
		{
			name:   "ignored position breaks span",
			scheme: tagscheme.BIO,
			tags:   []int{b, i, i},
			mask:   []int{0, x, 0},
			want:   []Span{{0, 0, 0, "TAG"}},
		},
		{
			name:   "B under ignore mask is dropped",
			scheme: tagscheme.BIO,
			tags:   []int{x, b, i, o},
			mask:   []int{x, x, 0, 0},
			want:   nil,
		},
		{
			name:   "BO coalescing stops at ignore",
			scheme: tagscheme.BO,
			tags:   []int{b, b, b},
			mask:   []int{0, x, 0},
			want:   []Span{{0, 0, 0, "TAG"}, {0, 2, 2, "TAG"}},
		},
		{
			name:   "trailing open span is kept",
			scheme: tagscheme.BIO,
			tags:   []int{o, b, i},
			want:   []Span{{0, 1, 2, "TAG"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mask := tt.mask
			if mask == nil {
				mask = zeros(len(tt.tags))
			}
			got, err := Decode([][]int{tt.tags}, [][]int{mask}, tt.scheme, nil)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0])
		})
	}
}

func TestDecode_MultipleContexts(t *testing.T) {
	types := []string{"DISEASE", "GENE"}
	typer := TypeFunc(func(c int) string { return types[c] })

	tags := [][]int{
		{b, i, o, o},
		{o, b, i, i},
	}
	mask := [][]int{
		{0, 0, 0, x},
		{x, 0, 0, 0},
	}

	got, err := Decode(tags, mask, tagscheme.BIO, typer)
	require.NoError(t, err)
	assert.Equal(t, [][]Span{
		{{0, 0, 1, "DISEASE"}},
		{{1, 1, 3, "GENE"}},
	}, got)
}

func TestDecode_TypeMismatchCancels(t *testing.T) {
	calls := 0
	typer := TypeFunc(func(int) string {
		calls++
		if calls == 1 {
			return "A"
		}
		return "B"
	})

	got, err := Decode([][]int{{b, i, i}}, [][]int{zeros(3)}, tagscheme.BIO, typer)
	require.NoError(t, err)
	assert.Equal(t, []Span{{0, 0, 0, "A"}}, got[0])

	calls = 0
	got, err = Decode([][]int{{b, b}}, [][]int{zeros(2)}, tagscheme.BO, typer)
	require.NoError(t, err)
	assert.Equal(t, []Span{{0, 0, 0, "A"}, {0, 1, 1, "B"}}, got[0])
}

func TestDecode_IgnoredPositionsNeverBound(t *testing.T) {
	tags := []int{b, i, b, i, e, s, b, i}
	mask := []int{0, x, 0, x, 0, x, x, 0}

	for _, scheme := range []tagscheme.Scheme{tagscheme.BO, tagscheme.BIO, tagscheme.BIOE, tagscheme.BIOES} {
		got, err := Decode([][]int{tags}, [][]int{mask}, scheme, nil)
		require.NoError(t, err)
		for _, sp := range got[0] {
			assert.NotEqual(t, x, mask[sp.Start], "%s: span %v starts on ignored position", scheme, sp)
			assert.NotEqual(t, x, mask[sp.End], "%s: span %v ends on ignored position", scheme, sp)
		}
	}
}

func TestDecode_Deterministic(t *testing.T) {
	tags := [][]int{{b, i, e, o, s, b, i}}
	mask := [][]int{zeros(7)}

	first, err := Decode(tags, mask, tagscheme.BIOES, ConstantType("X"))
	require.NoError(t, err)
	second, err := Decode(tags, mask, tagscheme.BIOES, ConstantType("X"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDecode_ShapeMismatch(t *testing.T) {
	_, err := Decode([][]int{{b}}, [][]int{{0}, {0}}, tagscheme.BIO, nil)
	require.ErrorIs(t, err, ErrShapeMismatch)

	_, err = Decode([][]int{{b, i}}, [][]int{{0}}, tagscheme.BIO, nil)
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestDecode_UnsupportedScheme(t *testing.T) {
	_, err := Decode(nil, nil, tagscheme.Scheme(42), nil)
	require.ErrorIs(t, err, tagscheme.ErrUnsupportedScheme)
}

func TestDecodeRange(t *testing.T) {
	tags := [][]int{{b}, {b, i}, {o, b}}
	mask := [][]int{zeros(1), zeros(2), zeros(2)}

	got, err := DecodeRange(tags, mask, 1, 3, tagscheme.BIO, nil)
	require.NoError(t, err)
	assert.Equal(t, [][]Span{
		{{1, 0, 1, "TAG"}},
		{{2, 1, 1, "TAG"}},
	}, got)

	_, err = DecodeRange(tags, mask, 2, 5, tagscheme.BIO, nil)
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestCount(t *testing.T) {
	assert.Equal(t, 3, Count([][]Span{{{}, {}}, nil, {{}}}))
	assert.Zero(t, Count(nil))
}

func TestSpanString(t *testing.T) {
	sp := Span{Context: 2, Start: 3, End: 5, Type: "GENE"}
	assert.Equal(t, "GENE[2:3:5]", sp.String())
	assert.Equal(t, 3, sp.Len())
}
