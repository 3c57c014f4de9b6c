package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"spacexdash/domain/launch"
	"spacexdash/internal/errors"
	"spacexdash/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pandas-style export: unnamed index column, BOM, trailing blank line
const historicalSample = "\ufeff,Flight Number,Launch Site,class,Payload Mass (kg),Booster Version,Booster Version Category\n" +
	"0,1,CCAFS LC-40,0,0.0,F9 v1.0  B0003,v1.0\n" +
	"1,2,CCAFS LC-40,0,0.0,F9 v1.0  B0004,v1.0\n" +
	"2,3,CCAFS LC-40,0,525.0,F9 v1.0  B0005,v1.0\n" +
	"3,4,VAFB SLC-4E,1,500.0,F9 v1.1  B1003,v1.1\n" +
	"4,5,KSC LC-39A,1,2490.0,F9 FT B1031.1,FT\n" +
	"\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileSource_CSV(t *testing.T) {
	path := writeFile(t, "spacex_launch_dash.csv", historicalSample)
	src := NewFileSource(ExcelConfig{FilePath: path})

	records, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 5)

	assert.Equal(t, launch.Record{
		FlightNumber:    3,
		LaunchSite:      "CCAFS LC-40",
		PayloadMassKg:   525,
		Class:           0,
		BoosterVersion:  "F9 v1.0  B0005",
		BoosterCategory: "v1.0",
	}, records[2])
	assert.Equal(t, 1, records[4].Class)
	assert.Equal(t, "file:"+path, src.Name())
}

func TestFileSource_XLSXRoundTrip(t *testing.T) {
	cfg := testkit.DefaultGeneratorConfig()
	cfg.Rows = 30
	want, err := testkit.GenerateRecords(cfg)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "launches.xlsx")
	require.NoError(t, WriteRecords(path, "Launches", want))

	got, err := NewFileSource(ExcelConfig{FilePath: path, Sheet: "Launches"}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = NewFileSource(ExcelConfig{FilePath: path}).Load(context.Background())
	assert.Error(t, err, "default sheet does not exist in this workbook")
}

func TestFileSource_CSVRoundTrip(t *testing.T) {
	want, err := testkit.GenerateRecords(testkit.DefaultGeneratorConfig())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "launches.csv")
	require.NoError(t, WriteRecords(path, "", want))

	got, err := NewFileSource(ExcelConfig{FilePath: path}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileSource_SchemaErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{
			name:    "missing class column",
			content: "Launch Site,Payload Mass (kg),Booster Version\nA,100,F9\n",
			wantMsg: `missing required column "class"`,
		},
		{
			name:    "payload not numeric",
			content: "Launch Site,Payload Mass (kg),class,Booster Version\nA,heavy,1,F9\n",
			wantMsg: "line 2: Payload Mass (kg)",
		},
		{
			name:    "fractional class",
			content: "Launch Site,Payload Mass (kg),class,Booster Version\nA,100,1,F9\nA,100,0.5,F9\n",
			wantMsg: "line 3: class",
		},
		{
			name:    "header only",
			content: "Launch Site,Payload Mass (kg),class,Booster Version\n",
			wantMsg: "header row and at least one data row",
		},
		{
			name:    "empty payload",
			content: "Launch Site,Payload Mass (kg),class,Booster Version\nA,,1,F9\n",
			wantMsg: "empty value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "bad.csv", tt.content)
			_, err := NewFileSource(ExcelConfig{FilePath: path}).Load(context.Background())
			require.Error(t, err)
			assert.Equal(t, errors.CodeSchemaInvalid, errors.GetCode(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestFileSource_HeaderOnlyXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, WriteRecords(path, "", nil))

	_, err := NewFileSource(ExcelConfig{FilePath: path}).Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeSchemaInvalid, errors.GetCode(err))
	assert.Contains(t, err.Error(), "sheet Sheet1")
}

func TestFileSource_MissingFile(t *testing.T) {
	_, err := NewFileSource(ExcelConfig{FilePath: filepath.Join(t.TempDir(), "nope.csv")}).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CSV file not found")
}

func TestWriteRecords_UnsupportedExtension(t *testing.T) {
	err := WriteRecords(filepath.Join(t.TempDir(), "out.json"), "", nil)
	assert.Error(t, err)
}
