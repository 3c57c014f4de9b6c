package aggregate

import (
	"testing"

	"spacexdash/domain/launch"

	"github.com/stretchr/testify/assert"
)

func TestSiteOptions(t *testing.T) {
	agg := NewAggregator(twoSiteDataset(t))

	assert.Equal(t, []Option{
		{Label: "All Sites", Value: "All Sites"},
		{Label: "launch site B", Value: "B"},
		{Label: "launch site A", Value: "A"},
	}, agg.SiteOptions())
}

func TestRangeControls(t *testing.T) {
	agg := NewAggregator(twoSiteDataset(t))

	rc := agg.RangeControls(launch.PayloadRange{Low: 500, High: 5000})

	assert.Equal(t, 450.0, rc.Min)
	assert.Equal(t, 9050.0, rc.Max)
	assert.InDelta(t, 170.0, rc.Step, 1e-9)
	assert.Equal(t, launch.PayloadRange{Low: 500, High: 5000}, rc.Value)

	assert.NotEmpty(t, rc.Marks)
	assert.Equal(t, Mark{Value: 2000, Label: "2,000 kg"}, rc.Marks[0])
	for _, m := range rc.Marks {
		assert.GreaterOrEqual(t, m.Value, rc.Min)
		assert.LessOrEqual(t, m.Value, rc.Max)
	}
}

func TestRangeControlsClampsInitialValue(t *testing.T) {
	agg := NewAggregator(twoSiteDataset(t))

	rc := agg.RangeControls(launch.PayloadRange{Low: 0, High: 20000})
	assert.Equal(t, launch.PayloadRange{Low: 450, High: 9050}, rc.Value)

	rc = agg.RangeControls(launch.PayloadRange{Low: 10000, High: 20000})
	assert.Equal(t, launch.PayloadRange{Low: 450, High: 9050}, rc.Value)
}

func TestNiceInterval(t *testing.T) {
	assert.Equal(t, 1.0, niceInterval(0))
	assert.Equal(t, 1000.0, niceInterval(1000))
	assert.Equal(t, 2000.0, niceInterval(1720))
	assert.Equal(t, 5.0, niceInterval(3))
	assert.Equal(t, 100.0, niceInterval(60))
}
