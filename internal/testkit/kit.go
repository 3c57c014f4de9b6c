package testkit

import (
	"context"
	"fmt"
	"log"

	"spacexdash/domain/launch"
)

// SyntheticSource serves a generated manifest when no dataset is configured
type SyntheticSource struct {
	config GeneratorConfig
}

// NewSyntheticSource creates a launch source backed by the generator
func NewSyntheticSource(config GeneratorConfig) *SyntheticSource {
	return &SyntheticSource{config: config}
}

// Name describes the source for logs and the health endpoint
func (s *SyntheticSource) Name() string {
	return fmt.Sprintf("synthetic:seed=%d,rows=%d", s.config.Seed, s.config.Rows)
}

// Load generates the records
func (s *SyntheticSource) Load(ctx context.Context) ([]launch.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records, err := GenerateRecords(s.config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate synthetic launches: %w", err)
	}
	log.Printf("[TestKit] Generated %d synthetic launches (seed %d)", len(records), s.config.Seed)
	return records, nil
}
