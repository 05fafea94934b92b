// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/coalseam/pkg/types"
)

// ExportEntry is one assessment in an export file.
type ExportEntry struct {
	ID             string               `json:"key" yaml:"key"`
	Location       string               `json:"location" yaml:"location"`
	Timestamp      time.Time            `json:"timestamp" yaml:"timestamp"`
	TotalResources float64              `json:"total_resources" yaml:"total_resources"`
	LayersCount    int                  `json:"layers_count" yaml:"layers_count"`
	OverallScore   float64              `json:"overall_score" yaml:"overall_score"`
	Grade          types.PollutionGrade `json:"pollution_grade" yaml:"pollution_grade"`
}

// ExportYAML writes matching history to history/export.yaml and returns its path.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) (string, error) {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, "export.yaml")
	data, err := yaml.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes matching history to history/export.json and returns its path.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) (string, error) {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, "export.json")
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return path, os.WriteFile(path, data, 0o644)
}

func (s *Store) exportEntries(ctx context.Context, opts QueryOptions) ([]ExportEntry, error) {
	resources, err := s.Resources(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	pollution, err := s.Pollution(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	byID := make(map[string]types.PollutionRecord, len(pollution))
	for _, p := range pollution {
		byID[p.ID] = p
	}

	entries := make([]ExportEntry, len(resources))
	for i, r := range resources {
		p := byID[r.ID]
		entries[i] = ExportEntry{
			ID:             r.ID,
			Location:       r.Location,
			Timestamp:      r.Timestamp,
			TotalResources: r.TotalResources,
			LayersCount:    r.LayersCount,
			OverallScore:   p.OverallScore,
			Grade:          p.Grade,
		}
	}
	return entries, nil
}
