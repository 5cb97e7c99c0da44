// Package export projects sub-word predictions back onto the original words
// and writes them as a token/gold/predicted TSV.
package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/cespare/xxhash/v2"

	"github.com/jamesainslie/go-nereval"
	"github.com/jamesainslie/go-nereval/tagscheme"
)

// DefaultPadTag marks a word no context has assigned a prediction to.
const DefaultPadTag = "PAD"

// ErrPredictionCount indicates a prediction row count that differs from the
// number of contexts.
var ErrPredictionCount = errors.New("export: prediction rows do not match contexts")

// Config controls tag rendering.
type Config struct {
	Scheme  tagscheme.Scheme
	NoneTag string
	PadTag  string
}

func (c Config) withDefaults() Config {
	if c.NoneTag == "" {
		c.NoneTag = tagscheme.DefaultNoneTag
	}
	if c.PadTag == "" {
		c.PadTag = DefaultPadTag
	}
	return c
}

// Row is one exported word.
type Row struct {
	Token     string
	Gold      string
	Predicted string
}

// Sentence is the exported rows of one original sentence.
type Sentence []Row

type group struct {
	texts    []string
	sentence Sentence
}

// Project assigns each word of each context's sentence the prediction of
// its first sub-token. Contexts sharing a sentence are merged into one
// output sentence, in order of first appearance; a word keeps the first
// entity assignment it receives.
func Project(contexts nereval.Contexts, predictions [][]int, cfg Config) ([]Sentence, error) {
	if len(predictions) != len(contexts) {
		return nil, fmt.Errorf("%w: %d rows, %d contexts", ErrPredictionCount, len(predictions), len(contexts))
	}
	cfg = cfg.withDefaults()

	var order []*group
	byKey := make(map[uint64][]*group)

	for ci, c := range contexts {
		texts := c.Sentence.Texts()
		key := sentenceKey(texts)

		var g *group
		for _, cand := range byKey[key] {
			if slices.Equal(cand.texts, texts) {
				g = cand
				break
			}
		}
		if g == nil {
			g = &group{texts: texts, sentence: newSentence(c.Sentence, cfg)}
			byKey[key] = append(byKey[key], g)
			order = append(order, g)
		}

		assign(g.sentence, c, predictions[ci], cfg)
	}

	out := make([]Sentence, len(order))
	for i, g := range order {
		out[i] = g.sentence
	}
	return out, nil
}

func newSentence(words nereval.Sentence, cfg Config) Sentence {
	s := make(Sentence, len(words))
	for i, w := range words {
		gold := cfg.NoneTag
		if len(w.Tags) > 0 {
			gold = w.Tags[0]
		}
		s[i] = Row{Token: w.Text, Gold: gold, Predicted: cfg.PadTag}
	}
	return s
}

// assign walks the context's sub-tokens and uses the first sub-token of each
// word, skipping the query segment.
func assign(s Sentence, c nereval.Context, prediction []int, cfg Config) {
	n := min(len(prediction), len(c.SubTokens))
	word := 0
	for j := 0; j < n && word < len(s); j++ {
		tok := c.SubTokens[j]
		if tok.TokenType == 0 || tok.Offset != word {
			continue
		}

		if cur := s[word].Predicted; cur != cfg.PadTag && cur != cfg.NoneTag {
			word++
			continue
		}

		s[word].Predicted = render(cfg.Scheme.Kind(prediction[j]), c.Entity, cfg.NoneTag)
		word++
	}
}

func render(k tagscheme.Kind, entity, noneTag string) string {
	switch k {
	case tagscheme.Begin, tagscheme.Single:
		return "B-" + entity
	case tagscheme.Inside, tagscheme.End:
		return "I-" + entity
	default:
		return noneTag
	}
}

func sentenceKey(texts []string) uint64 {
	h := xxhash.New()
	for i, t := range texts {
		if i > 0 {
			_, _ = h.WriteString(" ")
		}
		_, _ = h.WriteString(t)
	}
	return h.Sum64()
}

// WriteTSV writes one token per line as token, gold and predicted tag
// separated by tabs, with a blank line after each sentence.
func WriteTSV(w io.Writer, sentences []Sentence) error {
	bw := bufio.NewWriter(w)
	for _, s := range sentences {
		for _, r := range s {
			if _, err := fmt.Fprintf(bw, "%s\t%s\t%s\n", r.Token, r.Gold, r.Predicted); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
