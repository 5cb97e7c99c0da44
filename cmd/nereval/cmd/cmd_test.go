package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dataset = `{"entity":"GENE","sentence":[{"text":"BRCA1","tags":["B-GENE"]},{"text":"mutations","tags":["O"]}],"sub_tokens":[{"text":"gene","offset":0,"token_type":0},{"text":"BRCA1","offset":0,"token_type":1},{"text":"mutations","offset":1,"token_type":1}],"gold":[-100,1,0],"predicted":[0,1,0]}
{"entity":"DISEASE","sentence":[{"text":"BRCA1","tags":["B-GENE"]},{"text":"mutations","tags":["O"]}],"sub_tokens":[{"text":"disease","offset":0,"token_type":0},{"text":"BRCA1","offset":0,"token_type":1},{"text":"mutations","offset":1,"token_type":1}],"gold":[-100,0,0],"predicted":[0,1,0]}
`

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--log-style", "noop"))
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestEvalCommand(t *testing.T) {
	dir := t.TempDir()
	data := writeTemp(t, dir, "dev.jsonl", dataset)
	prom := filepath.Join(dir, "eval.prom")

	out := execute(t, "eval", "--data", data, "--metrics-file", prom)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "GENE"))
	assert.True(t, strings.HasPrefix(lines[2], "DISEASE"))
	assert.Contains(t, lines[3], "micro")

	_, err := os.Stat(prom)
	require.NoError(t, err)
}

func TestCompareCommand(t *testing.T) {
	dir := t.TempDir()
	data := writeTemp(t, dir, "dev.jsonl", dataset)
	good := writeTemp(t, dir, "good.jsonl", "{\"tags\":[0,1,0]}\n{\"tags\":[0,0,0]}\n")
	bad := writeTemp(t, dir, "bad.jsonl", "{\"tags\":[0,0,0]}\n{\"tags\":[0,1,0]}\n")

	out := execute(t, "compare", "--data", data, "bad="+bad, "good="+good)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "good")
	assert.Contains(t, lines[2], "bad")
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	data := writeTemp(t, dir, "test.jsonl", dataset)
	tsv := filepath.Join(dir, "test.tsv")

	execute(t, "export", "--data", data, "--out", tsv)

	got, err := os.ReadFile(tsv)
	require.NoError(t, err)
	assert.Equal(t, "BRCA1\tB-GENE\tB-GENE\nmutations\tO\tO\n\n", string(got))
}
