// Package bench loads evaluation corpora and compares prediction runs.
package bench

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"

	"github.com/jamesainslie/go-nereval"
	"github.com/jamesainslie/go-nereval/decode"
)

// maxLineSize bounds one JSON-Lines record. Logit rows get large.
const maxLineSize = 64 << 20

// ErrNoPredictions indicates a corpus with no predicted rows and no
// prediction file to take them from.
var ErrNoPredictions = errors.New("bench: no predictions")

// Record is one line of a dataset file: a context, its gold row and
// optionally a predicted row.
type Record struct {
	Entity    string             `json:"entity"`
	Sentence  nereval.Sentence   `json:"sentence"`
	SubTokens []nereval.SubToken `json:"sub_tokens"`
	Gold      []int              `json:"gold"`
	Predicted []int              `json:"predicted,omitempty"`
}

// Prediction is one line of a prediction file. Tags wins over Logits when
// both are present.
type Prediction struct {
	Tags   []int       `json:"tags,omitempty"`
	Logits [][]float32 `json:"logits,omitempty"`
}

// Row returns the tag row, taking the arg-max of logits when no tags are
// given.
func (p Prediction) Row() []int {
	if p.Tags != nil {
		return p.Tags
	}
	if p.Logits == nil {
		return []int{}
	}
	return decode.ArgMax([][][]float32{p.Logits})[0]
}

// Corpus is a loaded dataset.
type Corpus struct {
	Contexts  nereval.Contexts
	Gold      [][]int
	Predicted [][]int
}

// Batch pairs the corpus gold rows with predicted. A nil predicted uses
// the corpus's own predicted rows.
func (c *Corpus) Batch(predicted [][]int) (nereval.Batch, error) {
	if predicted == nil {
		predicted = c.Predicted
	}
	if len(predicted) == 0 {
		return nereval.Batch{}, ErrNoPredictions
	}
	return nereval.Batch{
		Contexts:  c.Contexts,
		Gold:      c.Gold,
		Predicted: predicted,
	}, nil
}

// ReadCorpus decodes JSON-Lines dataset records from r. Predicted rows are
// kept only when every record carries one.
func ReadCorpus(r io.Reader) (*Corpus, error) {
	c := &Corpus{}
	allPredicted := true

	err := eachLine(r, func(n int, line []byte) error {
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		c.Contexts = append(c.Contexts, nereval.Context{
			Index:     len(c.Contexts),
			Entity:    rec.Entity,
			Sentence:  rec.Sentence,
			SubTokens: rec.SubTokens,
		})
		c.Gold = append(c.Gold, rec.Gold)
		if rec.Predicted == nil {
			allPredicted = false
		}
		c.Predicted = append(c.Predicted, rec.Predicted)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !allPredicted {
		c.Predicted = nil
	}
	return c, nil
}

// LoadCorpus reads a JSON-Lines dataset file.
func LoadCorpus(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer func() { _ = f.Close() }()

	c, err := ReadCorpus(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return c, nil
}

// ReadPredictions decodes JSON-Lines prediction records from r, one tag row
// per line.
func ReadPredictions(r io.Reader) ([][]int, error) {
	var rows [][]int
	err := eachLine(r, func(n int, line []byte) error {
		var p Prediction
		if err := json.Unmarshal(line, &p); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		rows = append(rows, p.Row())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// LoadPredictions reads a JSON-Lines prediction file.
func LoadPredictions(path string) ([][]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open predictions: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := ReadPredictions(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return rows, nil
}

// eachLine calls fn for every non-blank line, numbered from 1.
func eachLine(r io.Reader, fn func(n int, line []byte) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	n := 0
	for scanner.Scan() {
		n++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if err := fn(n, line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	return nil
}
