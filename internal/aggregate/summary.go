package aggregate

import (
	"math"
	"sort"

	"spacexdash/domain/launch"
	"spacexdash/internal/errors"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// intervalLevel is the coverage of the per-site success rate interval
const intervalLevel = 0.95

// PayloadStats summarizes payload mass over the selection's scatter population
type PayloadStats struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`
	// Skewness is the adjusted Fisher-Pearson coefficient, 0 below three points
	Skewness float64 `json:"skewness"`
	// Outliers counts payloads outside 1.5 IQR of the quartiles
	Outliers int `json:"outliers"`
}

// SiteRate is the landing success rate of one site over all of its launches.
// Lower and Upper bound a Jeffreys interval.
type SiteRate struct {
	Site      string  `json:"site"`
	Launches  int     `json:"launches"`
	Successes int     `json:"successes"`
	Failures  int     `json:"failures"`
	Rate      float64 `json:"rate"`
	Lower     float64 `json:"lower"`
	Upper     float64 `json:"upper"`
}

// LaunchSummary backs the statistics table under the charts
type LaunchSummary struct {
	Selection launch.Selection `json:"selection"`
	Payload   PayloadStats     `json:"payload"`
	Sites     []SiteRate       `json:"sites"`
}

// Summarize computes payload statistics for the points the scatter chart
// would show, and success rates for the selected site or all sites.
func (a *Aggregator) Summarize(sel launch.Selection) (LaunchSummary, error) {
	var sites []string
	var population []launch.Record

	if sel.IsAllSites() {
		sites = a.ds.Sites()
		sort.Strings(sites)
		population = a.ds.Records()
	} else {
		records, ok := a.ds.SiteRecords(sel.Site)
		if !ok {
			return LaunchSummary{}, errors.UnknownSite(sel.Site)
		}
		sites = []string{sel.Site}
		population = records
	}

	masses := make([]float64, 0, len(population))
	for _, r := range population {
		if sel.Payload.Contains(r.PayloadMassKg) {
			masses = append(masses, r.PayloadMassKg)
		}
	}

	payload, err := payloadStats(masses)
	if err != nil {
		return LaunchSummary{}, errors.Wrap(err, "payload statistics")
	}

	rates := make([]SiteRate, 0, len(sites))
	for _, site := range sites {
		records, _ := a.ds.SiteRecords(site)
		success, failure := outcomeCounts(records)
		rates = append(rates, siteRate(site, success, failure))
	}

	return LaunchSummary{Selection: sel, Payload: payload, Sites: rates}, nil
}

func payloadStats(data []float64) (PayloadStats, error) {
	if len(data) == 0 {
		return PayloadStats{}, nil
	}

	ps := PayloadStats{Count: len(data)}
	var err error

	if ps.Min, err = stats.Min(data); err != nil {
		return ps, err
	}
	if ps.Max, err = stats.Max(data); err != nil {
		return ps, err
	}
	if ps.Mean, err = stats.Mean(data); err != nil {
		return ps, err
	}
	if ps.Median, err = stats.Median(data); err != nil {
		return ps, err
	}
	if ps.StdDev, err = stats.StandardDeviation(data); err != nil {
		return ps, err
	}
	if ps.Q25, err = stats.PercentileNearestRank(data, 25); err != nil {
		return ps, err
	}
	if ps.Q75, err = stats.PercentileNearestRank(data, 75); err != nil {
		return ps, err
	}

	ps.Skewness = skewness(data, ps.Mean, ps.StdDev)
	ps.Outliers = countOutliers(data, ps.Q25, ps.Q75)
	return ps, nil
}

func skewness(data []float64, mean, stdDev float64) float64 {
	n := float64(len(data))
	if n < 3 || stdDev == 0 {
		return 0
	}

	sum := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sum += d * d * d
	}
	return sum / n * math.Sqrt(n*(n-1)) / (n - 2)
}

func countOutliers(data []float64, q25, q75 float64) int {
	fence := 1.5 * (q75 - q25)
	count := 0
	for _, x := range data {
		if x < q25-fence || x > q75+fence {
			count++
		}
	}
	return count
}

// siteRate uses the Jeffreys prior Beta(1/2, 1/2); the bound is pinned to
// 0 or 1 when there are no successes or no failures.
func siteRate(site string, success, failure int) SiteRate {
	n := success + failure
	sr := SiteRate{Site: site, Launches: n, Successes: success, Failures: failure}
	if n == 0 {
		return sr
	}
	sr.Rate = float64(success) / float64(n)

	posterior := distuv.Beta{Alpha: float64(success) + 0.5, Beta: float64(failure) + 0.5}
	tail := (1 - intervalLevel) / 2

	sr.Lower = 0
	if success > 0 {
		sr.Lower = posterior.Quantile(tail)
	}
	sr.Upper = 1
	if failure > 0 {
		sr.Upper = posterior.Quantile(1 - tail)
	}
	return sr
}
