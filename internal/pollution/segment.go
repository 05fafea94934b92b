// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pollution

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pdiddy/coalseam/pkg/types"
)

// window collects the readings of the samples inside one depth segment.
type window struct {
	start, end float64

	density, gamma, resistivity, sonic []float64
	rockDensity, rockResistivity       []float64
	ph                                 []float64
	coal                               int
}

func (w *window) add(smp types.LogSample, isCoal bool) {
	res := smp.DualLateralResistivity()
	w.density = append(w.density, smp.Density)
	w.gamma = append(w.gamma, smp.NaturalGamma)
	w.resistivity = append(w.resistivity, res)
	w.sonic = append(w.sonic, smp.SonicInterval)
	if smp.PH != nil {
		w.ph = append(w.ph, *smp.PH)
	}
	if isCoal {
		w.coal++
		return
	}
	w.rockDensity = append(w.rockDensity, smp.Density)
	w.rockResistivity = append(w.rockResistivity, res)
}

func (w *window) size() int {
	return len(w.density)
}

// maxWindows bounds how many windows a dataset may span.
const maxWindows = 100_000

// windowCount returns how many SegmentSize-wide windows cover [min, max].
func windowCount(min, max, size float64) float64 {
	return math.Max(1, math.Ceil((max-min)/size))
}

// windows partitions [min, max] into SegmentSize-wide windows and returns
// the non-empty ones in depth order. Each window is half-open except the
// last, which also holds samples at max.
func (s *Scorer) windows(ds *types.Dataset, mask types.CoalMask) []*window {
	min, max := ds.DepthRange()
	size := s.cfg.SegmentSize
	last := lastWindow(min, max, size)

	byIndex := make(map[int]*window)
	var keys []int
	for i, smp := range ds.Samples {
		k := windowIndex(smp.Depth, min, size, last)
		w, ok := byIndex[k]
		if !ok {
			start := min + float64(k)*size
			w = &window{start: start, end: math.Min(start+size, max)}
			byIndex[k] = w
			keys = append(keys, k)
		}
		w.add(smp, mask[i])
	}
	sort.Ints(keys)

	out := make([]*window, len(keys))
	for i, k := range keys {
		out[i] = byIndex[k]
	}
	return out
}

// lastWindow returns the index of the window that reaches max.
func lastWindow(min, max, size float64) int {
	n := int(windowCount(min, max, size)) - 1
	for n > 0 && min+float64(n)*size >= max {
		n--
	}
	for min+float64(n)*size+size < max {
		n++
	}
	return n
}

// windowIndex returns the window holding depth, correcting for rounding at
// window boundaries.
func windowIndex(depth, lo, size float64, last int) int {
	k := int(math.Floor((depth - lo) / size))
	k = max(0, min(k, last))
	switch {
	case k > 0 && depth < lo+float64(k)*size:
		k--
	case k < last && depth >= lo+float64(k+1)*size:
		k++
	}
	return k
}

// segments scores every non-empty window.
func (s *Scorer) segments(ds *types.Dataset, mask types.CoalMask) []types.PollutionSegment {
	min, max := ds.DepthRange()

	segments := []types.PollutionSegment{}
	for _, w := range s.windows(ds, mask) {
		if w.size() == 0 {
			continue
		}
		segments = append(segments, s.scoreWindow(w, min, max, ds.HasPH))
	}
	return segments
}

func (s *Scorer) scoreWindow(w *window, min, max float64, hasPH bool) types.PollutionSegment {
	seg := types.PollutionSegment{
		Start:          w.start,
		End:            w.end,
		CoalPercentage: float64(w.coal) / float64(w.size()),
		Pollutants:     []types.Pollutant{},
		SegmentSize:    s.cfg.SegmentSize,
	}
	if w.coal == 0 {
		return seg
	}

	params := types.PhysicalParams{
		Density:     stat.Mean(w.density, nil),
		Gamma:       stat.Mean(w.gamma, nil),
		Resistivity: stat.Mean(w.resistivity, nil),
	}
	seg.PhysicalParams = params

	potential := s.potential(params, stat.Mean(w.sonic, nil))
	barrier := s.barrier(w)
	depth := s.depthFactor(w.start, min, max)

	level := seg.CoalPercentage * potential * depth / math.Max(s.cfg.BarrierFloor, barrier) * 10
	seg.PollutionLevel = clamp(level, 0, 10)

	var ph *float64
	if hasPH && len(w.ph) > 0 {
		m := stat.Mean(w.ph, nil)
		ph = &m
	}
	seg.Pollutants = inferPollutants(params, ph)
	return seg
}

// potential is the weighted composite of the density, gamma, resistivity
// and porosity sub-factors, normalized to roughly [0,1].
func (s *Scorer) potential(p types.PhysicalParams, sonic float64) float64 {
	c := s.cfg
	densityF := c.DensityCeiling - math.Min(c.DensityCeiling, p.Density)
	gammaF := p.Gamma / c.GammaScale
	resistivityF := c.ResistivityReference / math.Max(c.ResistivityFloor, p.Resistivity)
	porosityF := math.Min(c.PorosityCap, sonic/c.SonicScale)

	w := c.Weights
	return (densityF*w.Density + gammaF*w.Gamma + resistivityF*w.Resistivity + porosityF*w.Porosity) / w.Normalizer
}

// barrier rates how well the surrounding rock in the window contains
// pollution. Denser, more resistive rock scores higher.
func (s *Scorer) barrier(w *window) float64 {
	if len(w.rockDensity) == 0 {
		return s.cfg.BarrierDefault
	}
	density := stat.Mean(w.rockDensity, nil)
	resistivity := stat.Mean(w.rockResistivity, nil)
	return math.Min(1.0, (density/s.cfg.BarrierDensityScale)*(resistivity/s.cfg.BarrierResistivityScale))
}

// depthFactor is 1.0 at the shallowest depth and 1-DepthDiscount at the deepest.
func (s *Scorer) depthFactor(start, min, max float64) float64 {
	if max <= min {
		return 1.0
	}
	return 1.0 - (start-min)/(max-min)*s.cfg.DepthDiscount
}

// overallScore weights each segment level by depth, decaying from 1.0 at
// the top toward 1-AggregationDecay at the bottom, and scales to 0-100.
func (s *Scorer) overallScore(segments []types.PollutionSegment, min, max float64) float64 {
	if len(segments) == 0 {
		return 0
	}
	span := math.Max(1, max-min)
	weighted := 0.0
	for _, seg := range segments {
		weight := 1 - s.cfg.AggregationDecay*(seg.Start-min)/span
		weighted += seg.PollutionLevel * weight
	}
	return clamp(weighted/(10*float64(len(segments)))*100, 0, 100)
}

// inferPollutants derives pollutant signals from segment means. ph is nil
// when the dataset carries no pH readings for the segment.
func inferPollutants(p types.PhysicalParams, ph *float64) []types.Pollutant {
	pollutants := []types.Pollutant{}
	if p.Gamma > 60 {
		pollutants = append(pollutants, types.Pollutant{
			Name:  types.PollutantHeavyMetal,
			Level: math.Min(10, p.Gamma/10),
		})
	}
	if p.Density < 1.3 {
		pollutants = append(pollutants, types.Pollutant{
			Name:  types.PollutantOrganic,
			Level: math.Min(10, (1.4-p.Density)*20),
		})
	}
	switch {
	case ph != nil && *ph < 5.5:
		pollutants = append(pollutants, types.Pollutant{
			Name:  types.PollutantAcidic,
			Level: math.Min(10, (6-*ph)*5),
		})
	case p.Resistivity < 50 && p.Gamma > 40:
		pollutants = append(pollutants, types.Pollutant{
			Name:  types.PollutantAcidic,
			Level: 5.0,
		})
	}
	return pollutants
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
