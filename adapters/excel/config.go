package excel

// DefaultSheet is read from XLSX workbooks unless configured otherwise
const DefaultSheet = "Sheet1"

// ExcelConfig holds configuration for the file data source
type ExcelConfig struct {
	FilePath string `json:"file_path" yaml:"file_path"`
	Sheet    string `json:"sheet" yaml:"sheet"`
}

// DefaultExcelConfig returns the historical dataset file name
func DefaultExcelConfig() ExcelConfig {
	return ExcelConfig{
		FilePath: "spacex_launch_dash.csv",
		Sheet:    DefaultSheet,
	}
}
