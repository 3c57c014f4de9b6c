package dataset

import (
	"math"
	"testing"

	"spacexdash/domain/launch"
	"spacexdash/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []launch.Record {
	return []launch.Record{
		{FlightNumber: 1, LaunchSite: "CCAFS LC-40", PayloadMassKg: 0, Class: 0, BoosterVersion: "F9 v1.0  B0003"},
		{FlightNumber: 2, LaunchSite: "CCAFS LC-40", PayloadMassKg: 525, Class: 0, BoosterVersion: "F9 v1.0  B0004"},
		{FlightNumber: 3, LaunchSite: "VAFB SLC-4E", PayloadMassKg: 500, Class: 0, BoosterVersion: "F9 v1.1  B1003"},
		{FlightNumber: 4, LaunchSite: "KSC LC-39A", PayloadMassKg: 2490, Class: 1, BoosterVersion: "F9 FT B1031.1"},
		{FlightNumber: 5, LaunchSite: "CCAFS LC-40", PayloadMassKg: 3600, Class: 1, BoosterVersion: "F9 FT B1021.1"},
	}
}

func TestNewIndexesSites(t *testing.T) {
	ds, err := New("test", sampleRecords())
	require.NoError(t, err)

	assert.Equal(t, 5, ds.Len())
	assert.Equal(t, 2, ds.TotalSuccesses())
	assert.Equal(t, []string{"CCAFS LC-40", "VAFB SLC-4E", "KSC LC-39A"}, ds.Sites())
	_, ok := ds.SiteRecords("ksc lc-39a")
	assert.False(t, ok, "site lookup is case sensitive")
	assert.False(t, ds.ID().String() == "")
	assert.Equal(t, "test", ds.Source())

	min, max := ds.PayloadBounds()
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 3600.0, max)

	recs, ok := ds.SiteRecords("CCAFS LC-40")
	require.True(t, ok)
	require.Len(t, recs, 3)
	assert.Equal(t, []int{1, 2, 5}, []int{recs[0].FlightNumber, recs[1].FlightNumber, recs[2].FlightNumber})

	_, ok = ds.SiteRecords("Boca Chica")
	assert.False(t, ok)
}

func TestAccessorsReturnCopies(t *testing.T) {
	input := sampleRecords()
	ds, err := New("test", input)
	require.NoError(t, err)

	input[0].LaunchSite = "mutated"
	recs := ds.Records()
	recs[1].Class = 1
	sites := ds.Sites()
	sites[0] = "mutated"
	siteRecs, _ := ds.SiteRecords("VAFB SLC-4E")
	siteRecs[0].PayloadMassKg = -1

	assert.Equal(t, "CCAFS LC-40", ds.Records()[0].LaunchSite)
	assert.Equal(t, 0, ds.Records()[1].Class)
	assert.Equal(t, "CCAFS LC-40", ds.Sites()[0])
	again, _ := ds.SiteRecords("VAFB SLC-4E")
	assert.Equal(t, 500.0, again[0].PayloadMassKg)
	assert.Equal(t, 2, ds.TotalSuccesses())
}

func TestFingerprintIsContentBased(t *testing.T) {
	a, err := New("a", sampleRecords())
	require.NoError(t, err)
	b, err := New("b", sampleRecords())
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.ID(), b.ID())

	changed := sampleRecords()
	changed[4].Class = 0
	c, err := New("c", changed)
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestNewRejectsMalformedRecords(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]launch.Record) []launch.Record
	}{
		{"empty", func([]launch.Record) []launch.Record { return nil }},
		{"blank site", func(r []launch.Record) []launch.Record { r[2].LaunchSite = " "; return r }},
		{"class out of range", func(r []launch.Record) []launch.Record { r[0].Class = 2; return r }},
		{"negative class", func(r []launch.Record) []launch.Record { r[0].Class = -1; return r }},
		{"NaN payload", func(r []launch.Record) []launch.Record { r[1].PayloadMassKg = math.NaN(); return r }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("bad", tt.mutate(sampleRecords()))
			require.Error(t, err)
			assert.Equal(t, errors.CodeSchemaInvalid, errors.GetCode(err))
		})
	}
}

func TestNewTrimsLaunchSites(t *testing.T) {
	records := sampleRecords()
	records[0].LaunchSite = "CCAFS LC-40 "
	records[2].LaunchSite = "\tVAFB SLC-4E"

	ds, err := New("padded", records)
	require.NoError(t, err)

	assert.Equal(t, []string{"CCAFS LC-40", "VAFB SLC-4E", "KSC LC-39A"}, ds.Sites())
	recs, ok := ds.SiteRecords("CCAFS LC-40")
	require.True(t, ok)
	assert.Len(t, recs, 3)
	assert.Equal(t, "CCAFS LC-40", recs[0].LaunchSite)
	assert.Equal(t, "CCAFS LC-40 ", records[0].LaunchSite, "input slice is left untouched")
}
