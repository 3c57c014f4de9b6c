package ports

import (
	"spacexdash/domain/core"
	"spacexdash/domain/launch"
	"spacexdash/internal/aggregate"
)

// DashboardService is everything the HTTP surfaces need. The UI layer
// renders what it returns and never touches the dataset directly.
type DashboardService interface {
	Charts(sel launch.Selection) (launch.ChartData, error)
	Summary(sel launch.Selection) (aggregate.LaunchSummary, error)
	SiteOptions() []aggregate.Option
	RangeControls() aggregate.RangeControls
	ParseSelection(site, low, high string) (launch.Selection, error)
	Health() DatasetHealth
}

// DatasetHealth reports which snapshot is being served
type DatasetHealth struct {
	DatasetID   core.DatasetID `json:"dataset_id"`
	Source      string         `json:"source"`
	Fingerprint string         `json:"fingerprint"`
	Records     int            `json:"records"`
	Sites       int            `json:"sites"`
	Successes   int            `json:"successes"`
	LoadedAt    core.Timestamp `json:"loaded_at"`
}
