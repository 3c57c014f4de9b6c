package testkit

import (
	"fmt"
	"math"
	"math/rand"

	"spacexdash/domain/launch"
)

// SiteProfile weights how often a site launches and how reliable it is
type SiteProfile struct {
	Name   string  `json:"name" yaml:"name"`
	Weight float64 `json:"weight" yaml:"weight"`
	// SuccessBias is added to the booster category's base success probability
	SuccessBias float64 `json:"success_bias" yaml:"success_bias"`
}

// boosterCategory is one Falcon 9 generation
type boosterCategory struct {
	name        string
	prefix      string
	serialStart int
	maxPayload  float64
	baseSuccess float64
}

// Generations in flight order; each takes an equal share of the manifest
var boosterCategories = []boosterCategory{
	{name: "v1.0", prefix: "F9 v1.0  B", serialStart: 3, maxPayload: 700, baseSuccess: 0.0},
	{name: "v1.1", prefix: "F9 v1.1  B", serialStart: 1003, maxPayload: 4600, baseSuccess: 0.1},
	{name: "FT", prefix: "F9 FT B", serialStart: 1019, maxPayload: 9600, baseSuccess: 0.65},
	{name: "B4", prefix: "F9 B4 B", serialStart: 1039, maxPayload: 9600, baseSuccess: 0.6},
	{name: "B5", prefix: "F9 B5 B", serialStart: 1046, maxPayload: 15600, baseSuccess: 0.9},
}

// GeneratorConfig configures the synthetic launch manifest
type GeneratorConfig struct {
	Rows  int           `json:"rows" yaml:"rows"`
	Seed  int64         `json:"seed" yaml:"seed"`
	Sites []SiteProfile `json:"sites" yaml:"sites"`
}

// DefaultGeneratorConfig mirrors the four pads in the historical dataset
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Rows: 56,
		Seed: 42,
		Sites: []SiteProfile{
			{Name: "CCAFS LC-40", Weight: 0.46, SuccessBias: -0.05},
			{Name: "VAFB SLC-4E", Weight: 0.18, SuccessBias: 0.0},
			{Name: "KSC LC-39A", Weight: 0.23, SuccessBias: 0.1},
			{Name: "CCAFS SLC-40", Weight: 0.13, SuccessBias: 0.05},
		},
	}
}

// GenerateRecords produces a deterministic launch manifest for cfg.Seed
func GenerateRecords(cfg GeneratorConfig) ([]launch.Record, error) {
	if cfg.Rows <= 0 {
		return nil, fmt.Errorf("rows must be > 0, got %d", cfg.Rows)
	}
	if len(cfg.Sites) == 0 {
		return nil, fmt.Errorf("at least one site profile is required")
	}
	totalWeight := 0.0
	for _, s := range cfg.Sites {
		if s.Weight < 0 {
			return nil, fmt.Errorf("site %s has negative weight", s.Name)
		}
		totalWeight += s.Weight
	}
	if totalWeight == 0 {
		return nil, fmt.Errorf("site weights sum to zero")
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	serials := make([]int, len(boosterCategories))
	for i, c := range boosterCategories {
		serials[i] = c.serialStart
	}

	records := make([]launch.Record, 0, cfg.Rows)
	for i := 0; i < cfg.Rows; i++ {
		catIdx := i * len(boosterCategories) / cfg.Rows
		cat := boosterCategories[catIdx]
		site := pickSite(rng, cfg.Sites, totalWeight)

		// booster reuse: later generations fly the same core again
		serial := serials[catIdx]
		booster := fmt.Sprintf("%s%04d", cat.prefix, serial)
		if catIdx >= 2 {
			booster = fmt.Sprintf("%s%04d.%d", cat.prefix, serial, 1+rng.Intn(3))
		}
		serials[catIdx]++

		payload := math.Round(rng.Float64() * cat.maxPayload)
		pSuccess := clamp01(cat.baseSuccess + site.SuccessBias)
		class := 0
		if rng.Float64() < pSuccess {
			class = 1
		}

		records = append(records, launch.Record{
			FlightNumber:    i + 1,
			LaunchSite:      site.Name,
			PayloadMassKg:   payload,
			Class:           class,
			BoosterVersion:  booster,
			BoosterCategory: cat.name,
		})
	}
	return records, nil
}

func pickSite(rng *rand.Rand, sites []SiteProfile, total float64) SiteProfile {
	r := rng.Float64() * total
	for _, s := range sites {
		if r < s.Weight {
			return s
		}
		r -= s.Weight
	}
	return sites[len(sites)-1]
}

func clamp01(p float64) float64 {
	return math.Max(0, math.Min(1, p))
}
