package app

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"spacexdash/domain/launch"
	"spacexdash/internal"
	"spacexdash/internal/aggregate"
	"spacexdash/internal/errors"
	"spacexdash/ports"
)

// DashboardService implements ports.DashboardService over one dataset snapshot
type DashboardService struct {
	aggregator *aggregate.Aggregator
	controls   aggregate.RangeControls
	logger     *internal.Logger
}

// NewDashboardService binds the service to an aggregator. initial is the
// payload range shown before the user moves the slider.
func NewDashboardService(aggregator *aggregate.Aggregator, initial launch.PayloadRange) *DashboardService {
	return &DashboardService{
		aggregator: aggregator,
		controls:   aggregator.RangeControls(initial),
		logger:     internal.DefaultLogger.With("Dashboard"),
	}
}

var _ ports.DashboardService = (*DashboardService)(nil)

// Charts recomputes the pie, label and scatter for a selection
func (s *DashboardService) Charts(sel launch.Selection) (launch.ChartData, error) {
	charts, err := s.aggregator.ComputeCharts(sel)
	if err != nil {
		s.logFailure("charts", sel, err)
		return launch.ChartData{}, err
	}
	s.logger.Debug("charts for site=%q payload=%s: %d slices, %d points",
		sel.Site, sel.Payload, len(charts.Pie.Slices), len(charts.Scatter.Points))
	return charts, nil
}

// Summary computes the statistics table for a selection
func (s *DashboardService) Summary(sel launch.Selection) (aggregate.LaunchSummary, error) {
	summary, err := s.aggregator.Summarize(sel)
	if err != nil {
		s.logFailure("summary", sel, err)
	}
	return summary, err
}

// logFailure keeps user-typed unknown sites out of the warning log
func (s *DashboardService) logFailure(op string, sel launch.Selection, err error) {
	if errors.Is(err, errors.CodeUnknownSite) {
		s.logger.Debug("%s for site=%q payload=%s: %v", op, sel.Site, sel.Payload, err)
		return
	}
	s.logger.Warn("%s for site=%q payload=%s: %v", op, sel.Site, sel.Payload, err)
}

// SiteOptions lists the dropdown entries
func (s *DashboardService) SiteOptions() []aggregate.Option {
	return s.aggregator.SiteOptions()
}

// RangeControls describes the payload slider
func (s *DashboardService) RangeControls() aggregate.RangeControls {
	return s.controls
}

// ParseSelection turns raw query values into a Selection. An empty site means
// all sites; an empty bound falls back to the slider's initial value.
func (s *DashboardService) ParseSelection(site, low, high string) (launch.Selection, error) {
	sel := launch.Selection{
		Site:    strings.TrimSpace(site),
		Payload: s.controls.Value,
	}
	if sel.Site == "" {
		sel.Site = launch.AllSites
	}

	var err error
	if low != "" {
		if sel.Payload.Low, err = parseBound("low", low); err != nil {
			return launch.Selection{}, err
		}
	}
	if high != "" {
		if sel.Payload.High, err = parseBound("high", high); err != nil {
			return launch.Selection{}, err
		}
	}
	if sel.Payload.Low > sel.Payload.High {
		return launch.Selection{}, errors.InvalidInput(fmt.Sprintf("payload low %g exceeds high %g", sel.Payload.Low, sel.Payload.High))
	}
	return sel, nil
}

func parseBound(name, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) {
		return 0, errors.InvalidInput(fmt.Sprintf("payload %s %q is not a number", name, raw))
	}
	return v, nil
}

// Health reports the snapshot being served
func (s *DashboardService) Health() ports.DatasetHealth {
	ds := s.aggregator.Dataset()
	return ports.DatasetHealth{
		DatasetID:   ds.ID(),
		Source:      ds.Source(),
		Fingerprint: ds.Fingerprint().Short(),
		Records:     ds.Len(),
		Sites:       len(ds.Sites()),
		Successes:   ds.TotalSuccesses(),
		LoadedAt:    ds.LoadedAt(),
	}
}
