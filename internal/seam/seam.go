// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package seam classifies log samples as coal and groups contiguous coal
// samples into depth layers.
package seam

import (
	"fmt"

	"github.com/pdiddy/coalseam/pkg/types"
)

// bound is one inclusive threshold a coal sample must satisfy.
type bound struct {
	name     string
	value    func(types.LogSample) float64
	min, max float64
}

func (b bound) holds(s types.LogSample) bool {
	v := b.value(s)
	return v >= b.min && v <= b.max
}

// Detector applies fixed physical thresholds to classify coal samples.
type Detector struct {
	bounds       []bound
	gapTolerance float64
}

// NewDetector creates a Detector from the given thresholds. A non-positive
// gap tolerance falls back to 1.0.
func NewDetector(cfg types.DetectionConfig) *Detector {
	gap := cfg.GapTolerance
	if gap <= 0 {
		gap = 1.0
	}
	return &Detector{
		bounds: []bound{
			{"resistivity", types.LogSample.DualLateralResistivity, cfg.ResistivityMin, cfg.ResistivityMax},
			{"sonic_interval", func(s types.LogSample) float64 { return s.SonicInterval }, cfg.SonicMin, cfg.SonicMax},
			{"natural_gamma", func(s types.LogSample) float64 { return s.NaturalGamma }, cfg.GammaMin, cfg.GammaMax},
			{"density", func(s types.LogSample) float64 { return s.Density }, cfg.DensityMin, cfg.DensityMax},
		},
		gapTolerance: gap,
	}
}

// IsCoal reports whether s satisfies every threshold.
func (d *Detector) IsCoal(s types.LogSample) bool {
	for _, b := range d.bounds {
		if !b.holds(s) {
			return false
		}
	}
	return true
}

// FailedBounds returns the names of the thresholds s does not satisfy.
func (d *Detector) FailedBounds(s types.LogSample) []string {
	var failed []string
	for _, b := range d.bounds {
		if !b.holds(s) {
			failed = append(failed, b.name)
		}
	}
	return failed
}

// Classify returns the coal mask for ds.
func (d *Detector) Classify(ds *types.Dataset) types.CoalMask {
	mask := make(types.CoalMask, len(ds.Samples))
	for i, s := range ds.Samples {
		mask[i] = d.IsCoal(s)
	}
	return mask
}

// Detect classifies ds and groups its coal samples into layers. A dataset
// without coal yields an empty layer list.
func (d *Detector) Detect(ds *types.Dataset) types.DetectionResult {
	mask := d.Classify(ds)
	layers := group(ds.Samples, mask, d.gapTolerance)
	min, max := ds.DepthRange()

	total := 0.0
	for _, l := range layers {
		total += l.Thickness
	}

	return types.DetectionResult{
		Mask:           mask,
		Layers:         layers,
		TotalThickness: total,
		MinDepth:       min,
		MaxDepth:       max,
		CoalSamples:    mask.Count(),
		TotalSamples:   len(ds.Samples),
	}
}

// grouping accumulates layers during a single pass over coal samples.
type grouping struct {
	open    bool
	current types.DepthRange
	done    []types.DepthRange
}

func (g *grouping) add(depth, gap float64) {
	switch {
	case !g.open:
		g.open = true
		g.current = types.DepthRange{Start: depth, End: depth}
	case depth-g.current.End > gap:
		g.close()
		g.open = true
		g.current = types.DepthRange{Start: depth, End: depth}
	default:
		g.current.End = depth
	}
}

func (g *grouping) close() {
	if !g.open {
		return
	}
	g.current.Thickness = g.current.End - g.current.Start
	g.done = append(g.done, g.current)
	g.open = false
}

// GroupLayers folds the coal samples, in depth order, into contiguous
// layers. A new layer starts when the gap to the previous coal sample
// exceeds gap; a gap equal to it keeps the layer open.
func GroupLayers(samples []types.LogSample, mask types.CoalMask, gap float64) ([]types.DepthRange, error) {
	if len(mask) != len(samples) {
		return nil, fmt.Errorf("coal mask has %d entries for %d samples", len(mask), len(samples))
	}

	return group(samples, mask, gap), nil
}

// group folds samples into layers. mask must be aligned with samples.
func group(samples []types.LogSample, mask types.CoalMask, gap float64) []types.DepthRange {
	var g grouping
	for i, s := range samples {
		if mask[i] {
			g.add(s.Depth, gap)
		}
	}
	g.close()
	return g.done
}
