package bench

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/go-nereval/metric"
)

func TestWriteMetricsFile(t *testing.T) {
	report := metric.Report{
		Types: []metric.Row{{Type: "GENE", TP: 3, FP: 1, FN: 0, Precision: 0.75, Recall: 1, F1: 0.857}},
		Micro: metric.Row{Type: metric.MicroLabel, TP: 3, FP: 1, Precision: 0.75, Recall: 1, F1: 0.857},
	}

	path := filepath.Join(t.TempDir(), "nereval.prom")
	require.NoError(t, WriteMetricsFile(path, map[string]metric.Report{"crf": report}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "# TYPE nereval_eval_f1 gauge")
	assert.Contains(t, out, `nereval_eval_precision{run="crf",type="GENE"} 0.75`)
	assert.Contains(t, out, `nereval_eval_true_positives{run="crf",type="micro"} 3`)
	assert.Contains(t, out, `nereval_eval_false_negatives{run="crf",type="GENE"} 0`)
}
