package bench

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jamesainslie/go-nereval/metric"
)

const (
	namespace = "nereval"
	subsystem = "eval"
)

// scoreGauges are the per-type gauges exported for one report.
type scoreGauges struct {
	precision *prometheus.GaugeVec
	recall    *prometheus.GaugeVec
	f1        *prometheus.GaugeVec
	tp        *prometheus.GaugeVec
	fp        *prometheus.GaugeVec
	fn        *prometheus.GaugeVec
}

func newScoreGauges(reg prometheus.Registerer) *scoreGauges {
	labels := []string{"run", "type"}
	gauge := func(name, help string) *prometheus.GaugeVec {
		g := prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		}, labels)
		reg.MustRegister(g)
		return g
	}

	return &scoreGauges{
		precision: gauge("precision", "Entity-level precision per entity type"),
		recall:    gauge("recall", "Entity-level recall per entity type"),
		f1:        gauge("f1", "Entity-level F1 per entity type"),
		tp:        gauge("true_positives", "Exactly matched predicted spans"),
		fp:        gauge("false_positives", "Predicted spans with no gold match"),
		fn:        gauge("false_negatives", "Gold spans with no predicted match"),
	}
}

func (g *scoreGauges) set(run string, row metric.Row) {
	g.precision.WithLabelValues(run, row.Type).Set(row.Precision)
	g.recall.WithLabelValues(run, row.Type).Set(row.Recall)
	g.f1.WithLabelValues(run, row.Type).Set(row.F1)
	g.tp.WithLabelValues(run, row.Type).Set(float64(row.TP))
	g.fp.WithLabelValues(run, row.Type).Set(float64(row.FP))
	g.fn.WithLabelValues(run, row.Type).Set(float64(row.FN))
}

// WriteMetricsFile writes the reports as gauges in the Prometheus text
// format, one label set per run and entity type plus a "micro" row. The
// file can be picked up by the node exporter's textfile collector.
func WriteMetricsFile(path string, reports map[string]metric.Report) error {
	reg := prometheus.NewRegistry()
	g := newScoreGauges(reg)

	for run, r := range reports {
		for _, row := range r.Types {
			g.set(run, row)
		}
		g.set(run, r.Micro)
	}

	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("writing metrics file: %w", err)
	}
	return nil
}
