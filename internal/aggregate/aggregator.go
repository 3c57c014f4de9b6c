// Package aggregate turns a dashboard selection into chart-ready data.
//
// Everything here is a pure function of the dataset handle and the
// selection: no I/O, no rendering, no shared mutable state.
package aggregate

import (
	"fmt"
	"sort"

	"spacexdash/domain/launch"
	"spacexdash/internal/dataset"
	"spacexdash/internal/errors"
)

// Aggregator computes chart data over one dataset snapshot
type Aggregator struct {
	ds *dataset.Dataset
}

// NewAggregator binds an aggregator to a loaded dataset
func NewAggregator(ds *dataset.Dataset) *Aggregator {
	return &Aggregator{ds: ds}
}

// Dataset returns the bound snapshot
func (a *Aggregator) Dataset() *dataset.Dataset {
	return a.ds
}

// ComputeCharts builds the pie, label and scatter for a selection.
// A site other than launch.AllSites must match a launch site exactly,
// otherwise an UNKNOWN_SITE error is returned.
func (a *Aggregator) ComputeCharts(sel launch.Selection) (launch.ChartData, error) {
	if sel.IsAllSites() {
		return launch.ChartData{
			Selection: sel,
			Pie:       a.allSitesPie(),
			Label:     selectionLabel(sel.Site),
			Scatter: launch.ScatterChart{
				Title:      "Success Counts at All Sites",
				ColorField: launch.ColumnLaunchSite,
				Points:     scatterPoints(a.ds.Records(), sel.Payload, byLaunchSite),
			},
		}, nil
	}

	records, ok := a.ds.SiteRecords(sel.Site)
	if !ok {
		return launch.ChartData{}, errors.UnknownSite(sel.Site)
	}

	success, failure := outcomeCounts(records)
	return launch.ChartData{
		Selection: sel,
		Pie: launch.PieChart{
			Title:     fmt.Sprintf("Success vs Failure Counts for Site %s", sel.Site),
			NameField: "Outcome",
			Slices: []launch.PieSlice{
				{Name: launch.OutcomeSuccess, Value: success},
				{Name: launch.OutcomeFailure, Value: failure},
			},
		},
		Label: selectionLabel(sel.Site),
		Scatter: launch.ScatterChart{
			Title:      fmt.Sprintf("Success Counts at Site %s", sel.Site),
			ColorField: launch.ColumnBoosterVersion,
			Points:     scatterPoints(records, sel.Payload, byBoosterVersion),
		},
	}, nil
}

// allSitesPie sums class per launch site, slices ordered by site name
func (a *Aggregator) allSitesPie() launch.PieChart {
	sites := a.ds.Sites()
	sort.Strings(sites)

	slices := make([]launch.PieSlice, 0, len(sites))
	for _, site := range sites {
		records, _ := a.ds.SiteRecords(site)
		success, _ := outcomeCounts(records)
		slices = append(slices, launch.PieSlice{Name: site, Value: success})
	}

	return launch.PieChart{
		Title:     "Total Successful Launches at Each Site",
		NameField: launch.ColumnLaunchSite,
		Slices:    slices,
	}
}

// outcomeCounts returns the class sum and the remainder of the group
func outcomeCounts(records []launch.Record) (success, failure int) {
	for _, r := range records {
		if r.Success() {
			success++
		}
	}
	return success, len(records) - success
}

type groupFunc func(launch.Record) string

func byLaunchSite(r launch.Record) string     { return r.LaunchSite }
func byBoosterVersion(r launch.Record) string { return r.BoosterVersion }

// scatterPoints keeps records strictly inside the payload range, in input order
func scatterPoints(records []launch.Record, payload launch.PayloadRange, group groupFunc) []launch.ScatterPoint {
	points := make([]launch.ScatterPoint, 0, len(records))
	for _, r := range records {
		if !payload.Contains(r.PayloadMassKg) {
			continue
		}
		points = append(points, launch.ScatterPoint{
			PayloadMass: r.PayloadMassKg,
			Class:       r.Class,
			Group:       group(r),
		})
	}
	return points
}

func selectionLabel(site string) string {
	return fmt.Sprintf("You have selected %s", site)
}
