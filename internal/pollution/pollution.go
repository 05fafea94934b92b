// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pollution scores coal-seam pollution over fixed-width depth
// segments and aggregates the segments into an overall 0-100 score, a
// grade, impact statements and a diffusion risk estimate.
//
// Scoring is fail-soft: when the input cannot be scored the Scorer returns
// a neutral assessment tagged with the reason instead of an error.
package pollution

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/coalseam/pkg/types"
)

// Outcome is either a full assessment or a degraded neutral one. Reason is
// empty for a full assessment.
type Outcome struct {
	Assessment types.PollutionAssessment
	Reason     string
}

// Degraded reports whether scoring failed and the neutral result was used.
func (o Outcome) Degraded() bool {
	return o.Reason != ""
}

// Scorer computes pollution assessments.
type Scorer struct {
	cfg types.PollutionConfig
	log logrus.FieldLogger
}

// NewScorer creates a Scorer. A nil logger uses the logrus standard logger.
func NewScorer(cfg types.PollutionConfig, log logrus.FieldLogger) *Scorer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Scorer{cfg: cfg, log: log}
}

// Assess scores ds using the coal mask from seam detection. It never
// fails: scoring errors, including panics, yield a degraded Outcome.
func (s *Scorer) Assess(ds *types.Dataset, mask types.CoalMask) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = s.degrade(ds, fmt.Sprintf("internal error: %v", r))
		}
	}()

	a, err := s.assess(ds, mask)
	if err != nil {
		return s.degrade(ds, err.Error())
	}

	s.log.WithFields(logrus.Fields{
		"source":   ds.Source,
		"segments": len(a.Segments),
		"score":    a.OverallScore,
		"grade":    a.Grade,
	}).Debug("pollution assessed")
	return Outcome{Assessment: a}
}

func (s *Scorer) assess(ds *types.Dataset, mask types.CoalMask) (types.PollutionAssessment, error) {
	if err := s.validate(ds, mask); err != nil {
		return types.PollutionAssessment{}, err
	}

	segments := s.segments(ds, mask)
	min, max := ds.DepthRange()
	score := s.overallScore(segments, min, max)
	grade, desc := s.grade(score)

	return types.PollutionAssessment{
		Segments:         segments,
		OverallScore:     score,
		Grade:            grade,
		GradeDescription: desc,
		Impacts:          analyzeImpacts(segments, score),
		DiffusionRisk:    s.diffusionRisk(ds, segments),
	}, nil
}

// validate rejects inputs the segment arithmetic cannot handle.
func (s *Scorer) validate(ds *types.Dataset, mask types.CoalMask) error {
	if ds == nil || len(ds.Samples) == 0 {
		return errors.New("dataset has no samples")
	}
	if len(mask) != len(ds.Samples) {
		return fmt.Errorf("coal mask has %d entries for %d samples", len(mask), len(ds.Samples))
	}
	if !(s.cfg.SegmentSize > 0) {
		return fmt.Errorf("segment size must be positive, got %v", s.cfg.SegmentSize)
	}
	if s.cfg.Weights.Normalizer == 0 {
		return errors.New("potential normalizer is zero")
	}
	for _, smp := range ds.Samples {
		for _, v := range []float64{smp.Depth, smp.DeepResistivity, smp.ShallowResistivity, smp.SonicInterval, smp.NaturalGamma, smp.Density} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("non-finite reading at depth %v", smp.Depth)
			}
		}
	}
	min, max := ds.DepthRange()
	if n := windowCount(min, max, s.cfg.SegmentSize); n > maxWindows {
		return fmt.Errorf("segment size %v splits depths %v to %v into more than %d windows", s.cfg.SegmentSize, min, max, maxWindows)
	}
	return nil
}

// degrade builds the neutral assessment returned when scoring fails.
func (s *Scorer) degrade(ds *types.Dataset, reason string) Outcome {
	source := ""
	if ds != nil {
		source = ds.Source
	}
	s.log.WithFields(logrus.Fields{
		"source": source,
		"reason": reason,
	}).Warn("pollution assessment degraded")

	return Outcome{
		Assessment: types.PollutionAssessment{
			Segments:         []types.PollutionSegment{},
			OverallScore:     0,
			Grade:            types.GradeUnknown,
			GradeDescription: "an error occurred during assessment",
			Impacts:          emptyImpacts(),
			DiffusionRisk:    neutralDiffusion("assessment failed"),
			DegradedReason:   reason,
		},
		Reason: reason,
	}
}
