package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"spacexdash/adapters/excel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestPrintJSON(t *testing.T) {
	v := map[string]interface{}{
		"label": "You have selected All Sites",
		"pie":   map[string]interface{}{"slices": []map[string]interface{}{{"name": "A", "value": 3}}},
	}

	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, v, ""))
	assert.Equal(t, "You have selected All Sites", gjson.Get(buf.String(), "label").String())

	buf.Reset()
	require.NoError(t, printJSON(&buf, v, "pie.slices.0.value"))
	assert.Equal(t, "3", strings.TrimSpace(buf.String()))

	err := printJSON(&buf, v, "scatter")
	assert.Error(t, err)
}

func TestGenerateAndChartsCommands(t *testing.T) {
	out := filepath.Join(t.TempDir(), "launches.csv")

	gen := newGenerateCmd()
	gen.SetArgs([]string{"--out", out, "--rows", "30", "--seed", "7"})
	var genOut bytes.Buffer
	gen.SetOut(&genOut)
	require.NoError(t, gen.Execute())
	assert.Contains(t, genOut.String(), "Wrote 30 launches")

	records, err := excel.NewFileSource(excel.ExcelConfig{FilePath: out}).Load(t.Context())
	require.NoError(t, err)
	assert.Len(t, records, 30)

	t.Setenv("DATA_SOURCE", "")
	t.Setenv("DATA_FILE", "")
	flags := &globalFlags{source: "file", file: out}

	charts := newChartsCmd(flags)
	charts.SetArgs([]string{"--low=-1", "--high=20000", "--query", "scatter.points.#"})
	var chartsOut bytes.Buffer
	charts.SetOut(&chartsOut)
	require.NoError(t, charts.Execute())
	assert.Equal(t, "30", strings.TrimSpace(chartsOut.String()))
}

func TestGenerateProfile(t *testing.T) {
	dir := t.TempDir()
	profile := filepath.Join(dir, "profile.yaml")
	require.NoError(t, os.WriteFile(profile, []byte(`
rows: 12
seed: 3
sites:
  - name: Starbase
    weight: 1
    success_bias: 0.2
`), 0o644))

	out := filepath.Join(dir, "starbase.xlsx")
	gen := newGenerateCmd()
	gen.SetArgs([]string{"--out", out, "--profile", profile})
	gen.SetOut(&bytes.Buffer{})
	require.NoError(t, gen.Execute())

	records, err := excel.NewFileSource(excel.ExcelConfig{FilePath: out}).Load(t.Context())
	require.NoError(t, err)
	require.Len(t, records, 12)
	for _, r := range records {
		assert.Equal(t, "Starbase", r.LaunchSite)
	}
}
