// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resource estimates in-place coal resources per detected layer,
// grades layer quality and mining difficulty, and builds a priority-ordered
// extraction plan.
package resource

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/pdiddy/coalseam/pkg/types"
)

// ErrInvalidArea is returned when the seam footprint is not a positive number.
var ErrInvalidArea = errors.New("area must be a positive number of square meters")

// ErrInvalidExtractionRate is returned when the base extraction rate is not
// in (0, 1].
var ErrInvalidExtractionRate = errors.New("extraction rate must be in (0, 1]")

// ParseArea parses a footprint area given as text.
func ParseArea(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidArea, s)
	}
	if err := validateArea(v); err != nil {
		return 0, err
	}
	return v, nil
}

func validateArea(area float64) error {
	if !(area > 0) || math.IsInf(area, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidArea, area)
	}
	return nil
}

// ValidateConfig checks the default area and base extraction rate.
func ValidateConfig(cfg types.ResourceConfig) error {
	if err := validateArea(cfg.AreaSquareMeters); err != nil {
		return err
	}
	if r := cfg.ExtractionRate; !(r > 0 && r <= 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidExtractionRate, r)
	}
	return nil
}

// Compute estimates resources for the layers of det over a footprint of
// area square meters. Layers are numbered in depth order starting at 1.
// A detection without coal yields zero totals and no layers.
func Compute(ds *types.Dataset, det types.DetectionResult, area float64) (types.ResourceSummary, error) {
	if err := validateArea(area); err != nil {
		return types.ResourceSummary{}, err
	}
	if len(det.Mask) != ds.Len() {
		return types.ResourceSummary{}, fmt.Errorf("coal mask has %d entries for %d samples", len(det.Mask), ds.Len())
	}

	summary := types.ResourceSummary{
		AreaSquareMeters: area,
		Layers:           []types.SeamLayer{},
	}

	var coalDensity []float64
	for i, smp := range ds.Samples {
		if det.Mask[i] {
			coalDensity = append(coalDensity, smp.Density)
		}
	}
	if len(coalDensity) == 0 {
		return summary, nil
	}

	for i, r := range det.Layers {
		layer := buildLayer(ds, r, area)
		layer.Number = i + 1
		summary.Layers = append(summary.Layers, layer)
		summary.TotalVolume += layer.Volume
	}
	summary.TotalResources = summary.TotalVolume * stat.Mean(coalDensity, nil) * 1000
	return summary, nil
}

// buildLayer derives the resource attributes of one layer from every
// sample whose depth falls inside it, coal or not.
func buildLayer(ds *types.Dataset, r types.DepthRange, area float64) types.SeamLayer {
	var density, gamma []float64
	for _, smp := range ds.Samples {
		if smp.Depth >= r.Start && smp.Depth <= r.End {
			density = append(density, smp.Density)
			gamma = append(gamma, smp.NaturalGamma)
		}
	}

	meanDensity := stat.Mean(density, nil)
	volume := r.Thickness * area
	return types.SeamLayer{
		DepthRange: r,
		Volume:     volume,
		Density:    meanDensity,
		MassTons:   volume * meanDensity * 1000,
		Quality:    assessQuality(meanDensity, stat.Mean(gamma, nil)),
		Difficulty: assessDifficulty(r),
	}
}
