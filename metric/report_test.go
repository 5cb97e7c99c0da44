package metric

import (
	"bytes"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleMetric() *Metric {
	m := New()
	add(m, "DISEASE", Counts{TP: 3, FP: 1})
	add(m, "GENE", Counts{TP: 1, FN: 1})
	return m
}

func TestReport(t *testing.T) {
	r := sampleMetric().Report()

	require.Len(t, r.Types, 2)
	assert.Equal(t, "DISEASE", r.Types[0].Type)
	assert.InDelta(t, 0.75, r.Types[0].Precision, 1e-9)
	assert.Equal(t, "GENE", r.Types[1].Type)
	assert.InDelta(t, 0.5, r.Types[1].Recall, 1e-9)

	assert.Equal(t, MicroLabel, r.Micro.Type)
	assert.Equal(t, 4, r.Micro.TP)
	assert.Equal(t, 1, r.Micro.FP)
	assert.Equal(t, 1, r.Micro.FN)
	assert.InDelta(t, 0.8, r.Micro.F1, 1e-9)
}

func TestReport_WriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleMetric().Report().Write(&buf, "text"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "TYPE"))
	assert.True(t, strings.HasPrefix(lines[1], "DISEASE"))
	assert.True(t, strings.HasPrefix(lines[3], "micro"))
	assert.Contains(t, lines[3], "0.8000")
}

func TestReport_WriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleMetric().Report().Write(&buf, "json"))

	var got Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleMetric().Report(), got)
}

func TestReport_WriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleMetric().Report().Write(&buf, "yaml"))

	var got Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "GENE", got.Types[1].Type)
	assert.Equal(t, 4, got.Micro.TP)
}

func TestReport_UnknownFormat(t *testing.T) {
	err := sampleMetric().Report().Write(&bytes.Buffer{}, "xml")
	assert.Error(t, err)
}
