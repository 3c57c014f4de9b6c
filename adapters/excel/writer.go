package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"spacexdash/domain/launch"

	"github.com/xuri/excelize/v2"
)

// exportColumns is the column order of the historical dataset
var exportColumns = []string{
	launch.ColumnFlightNumber,
	launch.ColumnLaunchSite,
	launch.ColumnClass,
	launch.ColumnPayloadMass,
	launch.ColumnBoosterVersion,
	launch.ColumnBoosterCategory,
}

func exportRow(r launch.Record) []string {
	return []string{
		strconv.Itoa(r.FlightNumber),
		r.LaunchSite,
		strconv.Itoa(r.Class),
		strconv.FormatFloat(r.PayloadMassKg, 'f', -1, 64),
		r.BoosterVersion,
		r.BoosterCategory,
	}
}

// WriteRecords writes records as CSV or XLSX depending on the extension
func WriteRecords(path, sheet string, records []launch.Record) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return WriteCSV(path, records)
	case ".xlsx":
		return WriteXLSX(path, sheet, records)
	default:
		return fmt.Errorf("unsupported output extension for %s (want .csv or .xlsx)", path)
	}
}

// WriteCSV writes records with a header row
func WriteCSV(path string, records []launch.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(exportColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range records {
		if err := w.Write(exportRow(r)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return f.Close()
}

// WriteXLSX writes records into one sheet, numbers stored as numeric cells
func WriteXLSX(path, sheet string, records []launch.Record) error {
	if sheet == "" {
		sheet = DefaultSheet
	}
	f := excelize.NewFile()
	defer f.Close()

	if sheet != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, sheet); err != nil {
			return fmt.Errorf("failed to name sheet %s: %w", sheet, err)
		}
	}

	for i, h := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header %s: %w", h, err)
		}
	}

	for idx, r := range records {
		rowIdx := idx + 2
		values := []interface{}{r.FlightNumber, r.LaunchSite, r.Class, r.PayloadMassKg, r.BoosterVersion, r.BoosterCategory}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, rowIdx)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write %s: %w", cell, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
