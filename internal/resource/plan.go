// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resource

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/pdiddy/coalseam/pkg/types"
)

// method is one row of the mining method decision table.
type method struct {
	name    types.MiningMethod
	details string
	factor  float64
	applies func(depth, thickness float64) bool
}

// methods is evaluated in order; the first row that applies wins. The last
// row always applies.
var methods = []method{
	{
		name:    types.MethodSurface,
		details: "suited to shallow, thick seams; low cost and high recovery",
		factor:  1.2,
		applies: func(d, t float64) bool { return d < 50 && t > 2 },
	},
	{
		name:    types.MethodLongwall,
		details: "suited to medium depth and moderate thickness; high output and good safety",
		factor:  1.1,
		applies: func(d, t float64) bool { return d >= 50 && d < 300 && t >= 1.5 && t <= 8 },
	},
	{
		name:    types.MethodSlicing,
		details: "suited to medium-deep, thick seams; mined in slices for safety",
		factor:  1.0,
		applies: func(d, t float64) bool { return d >= 100 && d < 600 && t > 6 },
	},
	{
		name:    types.MethodNarrowPillar,
		details: "suited to thin seams; improves recovery at higher cost",
		factor:  0.9,
		applies: func(_, t float64) bool { return t < 1.5 },
	},
	{
		name:    types.MethodHydraulic,
		details: "suited to deep seams; high-pressure water cutting, safe but costly",
		factor:  0.8,
		applies: func(d, _ float64) bool { return d >= 600 },
	},
	{
		name:    types.MethodRoomAndPillar,
		details: "general-purpose method with good adaptability but lower recovery",
		factor:  0.85,
		applies: func(float64, float64) bool { return true },
	},
}

// selectMethod picks the mining method for a layer from its start depth
// and thickness.
func selectMethod(r types.DepthRange) method {
	for _, m := range methods {
		if m.applies(r.Start, r.Thickness) {
			return m
		}
	}
	return methods[len(methods)-1]
}

// recoveryRate is capped at 0.95. Harder layers lose up to 30% of the
// method-adjusted rate.
func recoveryRate(extractionRate float64, m method, difficulty float64) float64 {
	return math.Min(0.95, extractionRate*m.factor*math.Max(0.7, 1-difficulty*0.03))
}

// OptimizePlan orders layers by extraction priority and recommends a
// method and expected recovery for each. Ties keep depth order. An empty
// layer set yields an empty plan.
func OptimizePlan(layers []types.SeamLayer, extractionRate float64) types.MiningPlan {
	plan := types.MiningPlan{
		ExtractionRate: extractionRate,
		Entries:        []types.PlanEntry{},
	}
	if len(layers) == 0 {
		return plan
	}

	ordered := make([]types.SeamLayer, len(layers))
	copy(ordered, layers)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Start < ordered[j].Start })

	masses := make([]float64, len(ordered))
	for i, l := range ordered {
		masses[i] = l.MassTons
	}
	maxMass := floats.Max(masses)

	for _, l := range ordered {
		m := selectMethod(l.DepthRange)
		rate := recoveryRate(extractionRate, m, l.Difficulty.Score)
		plan.Entries = append(plan.Entries, types.PlanEntry{
			Layer:                l.Number,
			DepthRange:           fmt.Sprintf("%.1fm - %.1fm", l.Start, l.End),
			QualityScore:         l.Quality.Score,
			DifficultyScore:      l.Difficulty.Score,
			ResourceKtons:        l.MassTons / 1000,
			PriorityScore:        priority(l, maxMass),
			RecommendedMethod:    m.name,
			MethodDetails:        m.details,
			ExpectedRecoveryRate: rate,
			ExpectedOutputTons:   l.MassTons * rate,
		})
	}

	sort.SliceStable(plan.Entries, func(i, j int) bool {
		return plan.Entries[i].PriorityScore > plan.Entries[j].PriorityScore
	})
	for i := range plan.Entries {
		plan.Entries[i].Order = i + 1
	}
	return plan
}

func priority(l types.SeamLayer, maxMass float64) float64 {
	share := 0.0
	if maxMass > 0 {
		share = l.MassTons / maxMass * 100
	}
	return 0.5*l.Quality.Score + 0.3*(100-l.Difficulty.Score*10) + 0.2*share
}
