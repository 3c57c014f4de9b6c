package excel

// RawRowData represents a row of raw data as header -> cell text
type RawRowData map[string]string

// ExcelData represents a complete table read from a CSV or XLSX file
type ExcelData struct {
	Headers []string     // Column headers
	Rows    []RawRowData // Data rows
}

// HasColumn reports whether a header is present
func (d *ExcelData) HasColumn(name string) bool {
	for _, h := range d.Headers {
		if h == name {
			return true
		}
	}
	return false
}
