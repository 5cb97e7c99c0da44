package metric

import (
	"fmt"
	"io"
	"text/tabwriter"

	json "github.com/goccy/go-json"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// MicroLabel names the pooled row of a report.
const MicroLabel = "micro"

// Row is one line of a report.
type Row struct {
	Type      string  `json:"type" yaml:"type"`
	TP        int     `json:"tp" yaml:"tp"`
	FP        int     `json:"fp" yaml:"fp"`
	FN        int     `json:"fn" yaml:"fn"`
	Precision float64 `json:"precision" yaml:"precision"`
	Recall    float64 `json:"recall" yaml:"recall"`
	F1        float64 `json:"f1" yaml:"f1"`
}

func newRow(t string, c Counts) Row {
	return Row{
		Type:      t,
		TP:        c.TP,
		FP:        c.FP,
		FN:        c.FN,
		Precision: c.Precision(),
		Recall:    c.Recall(),
		F1:        c.F1(),
	}
}

// Report is a snapshot of a Metric.
type Report struct {
	Types []Row `json:"types" yaml:"types"`
	Micro Row   `json:"micro" yaml:"micro"`
}

// Report snapshots the per-type and pooled scores.
func (m *Metric) Report() Report {
	return Report{
		Types: lo.Map(m.order, func(t string, _ int) Row {
			return newRow(t, *m.counts[t])
		}),
		Micro: newRow(MicroLabel, m.Micro()),
	}
}

// WriteText renders the report as an aligned table.
func (r Report) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tTP\tFP\tFN\tPRECISION\tRECALL\tF1")
	for _, row := range r.Types {
		writeTextRow(tw, row)
	}
	writeTextRow(tw, r.Micro)
	return tw.Flush()
}

func writeTextRow(w io.Writer, row Row) {
	fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%.4f\t%.4f\t%.4f\n",
		row.Type, row.TP, row.FP, row.FN, row.Precision, row.Recall, row.F1)
}

// WriteJSON renders the report as indented JSON.
func (r Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

// WriteYAML renders the report as YAML.
func (r Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}

// Write renders the report in the named format: text, json or yaml.
func (r Report) Write(w io.Writer, format string) error {
	switch format {
	case "", "text":
		return r.WriteText(w)
	case "json":
		return r.WriteJSON(w)
	case "yaml", "yml":
		return r.WriteYAML(w)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}
