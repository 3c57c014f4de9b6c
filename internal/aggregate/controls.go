package aggregate

import (
	"fmt"
	"math"

	"spacexdash/domain/launch"

	"github.com/dustin/go-humanize"
)

// sliderPadding widens the range slider past the observed payload extremes
const sliderPadding = 50

// sliderSteps is the number of slider increments across the observed payload span
const sliderSteps = 50

// Option is one entry of the site dropdown
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SiteOptions lists "All Sites" followed by every site in first-appearance order
func (a *Aggregator) SiteOptions() []Option {
	sites := a.ds.Sites()
	options := make([]Option, 0, len(sites)+1)
	options = append(options, Option{Label: launch.AllSites, Value: launch.AllSites})
	for _, site := range sites {
		options = append(options, Option{Label: fmt.Sprintf("launch site %s", site), Value: site})
	}
	return options
}

// Mark is a labelled tick on the payload slider
type Mark struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// RangeControls describes the payload slider widget
type RangeControls struct {
	Min   float64             `json:"min"`
	Max   float64             `json:"max"`
	Step  float64             `json:"step"`
	Value launch.PayloadRange `json:"value"`
	Marks []Mark              `json:"marks"`
}

// RangeControls derives the slider bounds from the dataset. The initial value
// is initial clamped into the slider range.
func (a *Aggregator) RangeControls(initial launch.PayloadRange) RangeControls {
	lo, hi := a.ds.PayloadBounds()

	step := (hi - lo) / sliderSteps
	if step <= 0 {
		step = 1
	}

	rc := RangeControls{
		Min:  lo - sliderPadding,
		Max:  hi + sliderPadding,
		Step: step,
	}
	rc.Value = clampRange(initial, rc.Min, rc.Max)
	rc.Marks = sliderMarks(rc.Min, rc.Max)
	return rc
}

func clampRange(r launch.PayloadRange, min, max float64) launch.PayloadRange {
	out := launch.PayloadRange{
		Low:  math.Max(r.Low, min),
		High: math.Min(r.High, max),
	}
	if out.Low > out.High {
		return launch.PayloadRange{Low: min, High: max}
	}
	return out
}

// sliderMarks places ticks on round values roughly five per span
func sliderMarks(min, max float64) []Mark {
	interval := niceInterval((max - min) / 5)
	var marks []Mark
	for v := math.Ceil(min/interval) * interval; v <= max; v += interval {
		marks = append(marks, Mark{Value: v, Label: humanize.Comma(int64(v)) + " kg"})
	}
	return marks
}

// niceInterval rounds raw up to 1, 2 or 5 times a power of ten
func niceInterval(raw float64) float64 {
	if raw <= 0 {
		return 1
	}
	exp := math.Pow(10, math.Floor(math.Log10(raw)))
	switch frac := raw / exp; {
	case frac <= 1:
		return exp
	case frac <= 2:
		return 2 * exp
	case frac <= 5:
		return 5 * exp
	default:
		return 10 * exp
	}
}
