// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pollution

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/pdiddy/coalseam/pkg/types"
)

var riskBands = []struct {
	below float64
	level types.RiskLevel
}{
	{2, types.RiskLevel{Level: "low", Description: "low diffusion risk, pollutants expected to stay close to the seam"}},
	{4, types.RiskLevel{Level: "medium-low", Description: "some diffusion possible but slow and limited in range"}},
	{6, types.RiskLevel{Level: "medium", Description: "gradual diffusion, surrounding area may be affected within years"}},
	{8, types.RiskLevel{Level: "medium-high", Description: "fast diffusion, protective measures needed to prevent wide contamination"}},
}

var highRisk = types.RiskLevel{
	Level:       "high",
	Description: "high diffusion risk, wide area may be affected quickly, urgent action required",
}

// diffusionRisk estimates spread from the mean seam fraction over segments
// and the dataset-wide mean density and dual-lateral resistivity.
func (s *Scorer) diffusionRisk(ds *types.Dataset, segments []types.PollutionSegment) types.DiffusionRisk {
	if len(segments) == 0 {
		return neutralDiffusion("no data to analyze")
	}

	coal := make([]float64, len(segments))
	for i, seg := range segments {
		coal[i] = seg.CoalPercentage
	}
	density := make([]float64, len(ds.Samples))
	resistivity := make([]float64, len(ds.Samples))
	for i, smp := range ds.Samples {
		density[i] = smp.Density
		resistivity[i] = smp.DualLateralResistivity()
	}

	c := stat.Mean(coal, nil)
	h := math.Min(10, c*10*(100/math.Max(10, stat.Mean(resistivity, nil))))
	v := math.Min(10, c*10*(2.0-math.Min(2.0, stat.Mean(density, nil))))
	if math.IsNaN(h) || math.IsNaN(v) {
		return neutralDiffusion("diffusion analysis failed")
	}

	hSpeed := math.Max(0.1, h*0.2)
	vSpeed := math.Max(0.05, v*0.1)
	return types.DiffusionRisk{
		HorizontalRisk:     h,
		VerticalRisk:       v,
		HorizontalSpeed:    hSpeed,
		VerticalSpeed:      vSpeed,
		HorizontalRange20y: hSpeed * 20,
		VerticalRange20y:   vSpeed * 20,
		RiskLevel:          riskLevel(h, v),
	}
}

func riskLevel(h, v float64) types.RiskLevel {
	avg := (h + v) / 2
	for _, b := range riskBands {
		if avg < b.below {
			return b.level
		}
	}
	return highRisk
}

// neutralDiffusion is the fixed result used when risk cannot be estimated.
func neutralDiffusion(desc string) types.DiffusionRisk {
	return types.DiffusionRisk{
		HorizontalSpeed:    0.1,
		VerticalSpeed:      0.05,
		HorizontalRange20y: 2.0,
		VerticalRange20y:   1.0,
		RiskLevel:          types.RiskLevel{Level: "unknown", Description: desc},
	}
}
