// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs a full borehole assessment: seam detection,
// pollution scoring, resource estimation, plan optimization and the
// resource trend forecast.
//
// The pipeline holds no mutable state between calls. Appending the
// returned report to a location's history is the caller's job.
package pipeline

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/coalseam/internal/forecast"
	"github.com/pdiddy/coalseam/internal/pollution"
	"github.com/pdiddy/coalseam/internal/resource"
	"github.com/pdiddy/coalseam/internal/seam"
	"github.com/pdiddy/coalseam/pkg/types"
)

// Request carries the per-call inputs beyond the dataset.
type Request struct {
	Location string
	Notes    string

	// Area is the seam footprint in square meters. Zero uses the configured default.
	Area float64

	// History is the location's prior resource series. Records for other
	// locations are ignored.
	History []types.HistoryRecord
}

// Pipeline wires the assessment stages together.
type Pipeline struct {
	cfg      types.PipelineConfig
	detector *seam.Detector
	scorer   *pollution.Scorer
	log      logrus.FieldLogger

	now   func() time.Time
	newID func() string
}

// New creates a Pipeline. A nil logger uses the logrus standard logger.
func New(cfg types.PipelineConfig, log logrus.FieldLogger) *Pipeline {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Pipeline{
		cfg:      cfg,
		detector: seam.NewDetector(cfg.Detection),
		scorer:   pollution.NewScorer(cfg.Pollution, log),
		log:      log,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// Detect runs seam detection only.
func (p *Pipeline) Detect(ds *types.Dataset) types.DetectionResult {
	return p.detector.Detect(ds)
}

// Pollution runs detection and pollution scoring.
func (p *Pipeline) Pollution(ds *types.Dataset) pollution.Outcome {
	return p.scorer.Assess(ds, p.detector.Classify(ds))
}

// Resources runs detection, resource estimation and plan optimization.
func (p *Pipeline) Resources(ds *types.Dataset, area float64) (types.ResourceSummary, types.MiningPlan, error) {
	summary, err := resource.Compute(ds, p.detector.Detect(ds), p.area(area))
	if err != nil {
		return types.ResourceSummary{}, types.MiningPlan{}, fmt.Errorf("computing resources: %w", err)
	}
	return summary, resource.OptimizePlan(summary.Layers, p.cfg.Resource.ExtractionRate), nil
}

func (p *Pipeline) area(area float64) float64 {
	if area == 0 {
		return p.cfg.Resource.AreaSquareMeters
	}
	return area
}

// Assess runs every stage over ds. Pollution scoring never fails; a
// degraded pollution result is carried in the report. Input errors from
// resource estimation are returned.
func (p *Pipeline) Assess(ds *types.Dataset, req Request) (*types.AssessmentReport, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, fmt.Errorf("assessing %s: dataset has no samples", req.Location)
	}

	det := p.detector.Detect(ds)

	var (
		wg          sync.WaitGroup
		outcome     pollution.Outcome
		summary     types.ResourceSummary
		resourceErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		outcome = p.scorer.Assess(ds, det.Mask)
	}()
	go func() {
		defer wg.Done()
		summary, resourceErr = resource.Compute(ds, det, p.area(req.Area))
	}()
	wg.Wait()

	if resourceErr != nil {
		return nil, fmt.Errorf("computing resources for %s: %w", ds.Source, resourceErr)
	}

	report := &types.AssessmentReport{
		ID:        p.newID(),
		Location:  req.Location,
		Notes:     req.Notes,
		Source:    ds.Source,
		Timestamp: p.now().UTC(),
		Detection: det,
		Pollution: outcome.Assessment,
		Resources: summary,
		Plan:      resource.OptimizePlan(summary.Layers, p.cfg.Resource.ExtractionRate),
	}

	series := locationSeries(req.History, req.Location)
	series = append(series, report.HistoryRecord())
	report.Trend = forecast.Trend(series)

	p.log.WithFields(logrus.Fields{
		"location":        report.Location,
		"source":          report.Source,
		"layers":          len(summary.Layers),
		"total_resources": summary.TotalResources,
		"pollution_grade": outcome.Assessment.Grade,
		"degraded":        outcome.Degraded(),
	}).Info("assessment complete")

	return report, nil
}

func locationSeries(history []types.HistoryRecord, location string) []types.HistoryRecord {
	var out []types.HistoryRecord
	for _, r := range history {
		if r.Location == location {
			out = append(out, r)
		}
	}
	return out
}
