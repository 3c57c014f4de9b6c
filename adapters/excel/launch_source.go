package excel

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"spacexdash/domain/launch"
	"spacexdash/internal/errors"
)

// FileSource loads launch records from a CSV or XLSX file
type FileSource struct {
	config ExcelConfig
	reader *DataReader
}

// NewFileSource creates a launch source for the configured file
func NewFileSource(config ExcelConfig) *FileSource {
	return &FileSource{
		config: config,
		reader: NewDataReader(config.FilePath, config.Sheet),
	}
}

// Name describes the source for logs and the health endpoint
func (s *FileSource) Name() string {
	return "file:" + s.config.FilePath
}

// Load reads the file and converts every row into a launch record
func (s *FileSource) Load(ctx context.Context) ([]launch.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := s.reader.ReadData()
	if err != nil {
		return nil, err
	}
	return ToRecords(data)
}

// ToRecords validates the launch columns and parses every row. Row numbers in
// errors count the header as line 1.
func ToRecords(data *ExcelData) ([]launch.Record, error) {
	for _, col := range launch.RequiredColumns {
		if !data.HasColumn(col) {
			return nil, errors.SchemaInvalid("missing required column %q (have %v)", col, data.Headers)
		}
	}

	records := make([]launch.Record, 0, len(data.Rows))
	for i, row := range data.Rows {
		line := i + 2

		payload, err := parseNumber(row[launch.ColumnPayloadMass])
		if err != nil {
			return nil, errors.SchemaInvalid("line %d: %s: %v", line, launch.ColumnPayloadMass, err)
		}
		class, err := parseInteger(row[launch.ColumnClass])
		if err != nil {
			return nil, errors.SchemaInvalid("line %d: %s: %v", line, launch.ColumnClass, err)
		}

		rec := launch.Record{
			LaunchSite:      row[launch.ColumnLaunchSite],
			PayloadMassKg:   payload,
			Class:           class,
			BoosterVersion:  row[launch.ColumnBoosterVersion],
			BoosterCategory: row[launch.ColumnBoosterCategory],
		}
		if raw := row[launch.ColumnFlightNumber]; raw != "" {
			if rec.FlightNumber, err = parseInteger(raw); err != nil {
				return nil, errors.SchemaInvalid("line %d: %s: %v", line, launch.ColumnFlightNumber, err)
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseNumber(raw string) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("empty value")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", raw)
	}
	return v, nil
}

// parseInteger accepts "1" as well as spreadsheet renderings like "1.0"
func parseInteger(raw string) (int, error) {
	v, err := parseNumber(raw)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("%q is not an integer", raw)
	}
	return int(v), nil
}
