// Package launch holds the launch table row type and the chart payloads
// derived from it.
package launch

import "fmt"

// AllSites is the selector value that aggregates across every launch site
const AllSites = "All Sites"

// Dataset column headers
const (
	ColumnFlightNumber    = "Flight Number"
	ColumnLaunchSite      = "Launch Site"
	ColumnClass           = "class"
	ColumnPayloadMass     = "Payload Mass (kg)"
	ColumnBoosterVersion  = "Booster Version"
	ColumnBoosterCategory = "Booster Version Category"
)

// RequiredColumns must be present in every dataset
var RequiredColumns = []string{
	ColumnLaunchSite,
	ColumnPayloadMass,
	ColumnClass,
	ColumnBoosterVersion,
}

// Record is one launch row. Class is 1 for a successful landing, 0 otherwise.
type Record struct {
	FlightNumber    int     `json:"flight_number,omitempty"`
	LaunchSite      string  `json:"launch_site"`
	PayloadMassKg   float64 `json:"payload_mass_kg"`
	Class           int     `json:"class"`
	BoosterVersion  string  `json:"booster_version"`
	BoosterCategory string  `json:"booster_category,omitempty"`
}

// Success reports whether the launch outcome flag is set
func (r Record) Success() bool {
	return r.Class == 1
}

// PayloadRange is the payload filter interval. Filtering is strict on both ends.
type PayloadRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Contains reports whether mass lies strictly inside the range
func (p PayloadRange) Contains(mass float64) bool {
	return p.Low < mass && mass < p.High
}

func (p PayloadRange) String() string {
	return fmt.Sprintf("[%g, %g]", p.Low, p.High)
}

// Selection is the user's current dashboard input
type Selection struct {
	Site    string       `json:"site"`
	Payload PayloadRange `json:"payload"`
}

// IsAllSites reports whether the selection aggregates across sites
func (s Selection) IsAllSites() bool {
	return s.Site == AllSites
}

// PieSlice is one category of the pie chart
type PieSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// PieChart is the category -> value breakdown rendered as a pie
type PieChart struct {
	Title     string     `json:"title"`
	NameField string     `json:"name_field"`
	Slices    []PieSlice `json:"slices"`
}

// ScatterPoint is one launch plotted as payload mass vs outcome.
// Group drives the point color (launch site or booster version).
type ScatterPoint struct {
	PayloadMass float64 `json:"payload_mass"`
	Class       int     `json:"class"`
	Group       string  `json:"group"`
}

// ScatterChart is the payload vs outcome point list
type ScatterChart struct {
	Title      string         `json:"title"`
	ColorField string         `json:"color_field"`
	Points     []ScatterPoint `json:"points"`
}

// ChartData is everything the dashboard renders for one selection
type ChartData struct {
	Selection Selection    `json:"selection"`
	Pie       PieChart     `json:"pie"`
	Label     string       `json:"label"`
	Scatter   ScatterChart `json:"scatter"`
}

// Outcome slice names for a single-site pie
const (
	OutcomeSuccess = "Success"
	OutcomeFailure = "Failure"
)
