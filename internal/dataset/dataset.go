// Package dataset provides the read-only launch table handle shared by every
// chart recomputation.
//
// A Dataset is built once from a loaded record slice and never mutated
// afterwards. Accessors hand out copies so callers cannot reach the backing
// arrays, which lets any number of goroutines read it without locking.
package dataset

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"spacexdash/domain/core"
	"spacexdash/domain/launch"
	"spacexdash/internal/errors"
)

// Dataset is an immutable snapshot of the launch table
type Dataset struct {
	id          core.DatasetID
	source      string
	fingerprint core.Hash
	loadedAt    core.Timestamp

	records []launch.Record
	sites   []string         // first-appearance order
	bySite  map[string][]int // site -> record indexes in dataset order

	minPayload float64
	maxPayload float64
	successes  int
}

// New validates records and builds the handle. source is a free-form
// description of where the rows came from ("file:spacex_launch_dash.csv").
// Launch site names are trimmed of surrounding whitespace, so every source
// yields the same site keys.
func New(source string, records []launch.Record) (*Dataset, error) {
	if len(records) == 0 {
		return nil, errors.SchemaInvalid("dataset %s has no launch records", source)
	}

	ds := &Dataset{
		id:         core.NewDatasetID(),
		source:     source,
		loadedAt:   core.Now(),
		records:    slices.Clone(records),
		bySite:     make(map[string][]int),
		minPayload: math.Inf(1),
		maxPayload: math.Inf(-1),
	}

	var fp strings.Builder
	for i := range ds.records {
		ds.records[i].LaunchSite = strings.TrimSpace(ds.records[i].LaunchSite)
		r := ds.records[i]
		if r.LaunchSite == "" {
			return nil, errors.SchemaInvalid("record %d: empty %s", i+1, launch.ColumnLaunchSite)
		}
		if r.Class != 0 && r.Class != 1 {
			return nil, errors.SchemaInvalid("record %d: %s must be 0 or 1, got %d", i+1, launch.ColumnClass, r.Class)
		}
		if math.IsNaN(r.PayloadMassKg) || math.IsInf(r.PayloadMassKg, 0) {
			return nil, errors.SchemaInvalid("record %d: %s is not a finite number", i+1, launch.ColumnPayloadMass)
		}

		if _, seen := ds.bySite[r.LaunchSite]; !seen {
			ds.sites = append(ds.sites, r.LaunchSite)
		}
		ds.bySite[r.LaunchSite] = append(ds.bySite[r.LaunchSite], i)

		ds.minPayload = math.Min(ds.minPayload, r.PayloadMassKg)
		ds.maxPayload = math.Max(ds.maxPayload, r.PayloadMassKg)
		ds.successes += r.Class

		fp.WriteString(r.LaunchSite)
		fp.WriteByte('|')
		fp.WriteString(strconv.FormatFloat(r.PayloadMassKg, 'g', -1, 64))
		fp.WriteByte('|')
		fp.WriteString(strconv.Itoa(r.Class))
		fp.WriteByte('|')
		fp.WriteString(r.BoosterVersion)
		fp.WriteByte('\n')
	}
	ds.fingerprint = core.NewHash([]byte(fp.String()))

	return ds, nil
}

// ID returns the snapshot identifier assigned at construction
func (d *Dataset) ID() core.DatasetID { return d.id }

// Source describes where the records were loaded from
func (d *Dataset) Source() string { return d.source }

// Fingerprint is a content hash over the chart-relevant columns
func (d *Dataset) Fingerprint() core.Hash { return d.fingerprint }

// LoadedAt is the construction time
func (d *Dataset) LoadedAt() core.Timestamp { return d.loadedAt }

// Len returns the number of records
func (d *Dataset) Len() int { return len(d.records) }

// TotalSuccesses sums class over every record
func (d *Dataset) TotalSuccesses() int { return d.successes }

// Records returns a copy of all records in dataset order
func (d *Dataset) Records() []launch.Record {
	return slices.Clone(d.records)
}

// Sites returns the distinct launch sites in first-appearance order
func (d *Dataset) Sites() []string {
	return slices.Clone(d.sites)
}

// SiteRecords returns a copy of the records for one site in dataset order
func (d *Dataset) SiteRecords(site string) ([]launch.Record, bool) {
	idx, ok := d.bySite[site]
	if !ok {
		return nil, false
	}
	out := make([]launch.Record, len(idx))
	for i, j := range idx {
		out[i] = d.records[j]
	}
	return out, true
}

// PayloadBounds returns the smallest and largest payload mass
func (d *Dataset) PayloadBounds() (min, max float64) {
	return d.minPayload, d.maxPayload
}
