// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resource

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/coalseam/internal/seam"
	"github.com/pdiddy/coalseam/pkg/types"
)

func sample(depth, density, gamma float64) types.LogSample {
	return types.LogSample{
		Depth:              depth,
		DeepResistivity:    100,
		ShallowResistivity: 100,
		SonicInterval:      400,
		NaturalGamma:       gamma,
		Density:            density,
	}
}

func detect(ds *types.Dataset) types.DetectionResult {
	return seam.NewDetector(types.DefaultDetectionConfig()).Detect(ds)
}

func uniformColumn(n int, density float64) *types.Dataset {
	ds := &types.Dataset{Source: "uniform.csv"}
	for i := 0; i < n; i++ {
		ds.Samples = append(ds.Samples, sample(100+float64(i), density, 50))
	}
	return ds
}

func TestComputeUniformSeam(t *testing.T) {
	ds := uniformColumn(20, 1.2)
	summary, err := Compute(ds, detect(ds), 10000)
	require.NoError(t, err)

	require.Len(t, summary.Layers, 1)
	l := summary.Layers[0]
	assert.Equal(t, 1, l.Number)
	assert.Equal(t, 100.0, l.Start)
	assert.Equal(t, 119.0, l.End)
	assert.Equal(t, 19.0, l.Thickness)
	assert.InDelta(t, 19*10000*1.2*1000, l.MassTons, 1e-3)
	assert.InDelta(t, 19*10000.0, summary.TotalVolume, 1e-9)
	assert.InDelta(t, 19*10000*1.2*1000, summary.TotalResources, 1e-3)

	// density score (1.8-1.2)/0.7*100, gamma score (80-50)/60*100
	assert.InDelta(t, 0.6*600/7+0.4*50, l.Quality.Score, 1e-9)
	assert.Equal(t, types.QualityGood, l.Quality.Grade)

	assert.InDelta(t, 1.095, l.Difficulty.DepthFactor, 1e-9)
	assert.Equal(t, 6.0, l.Difficulty.ThicknessFactor)
	assert.Equal(t, types.DifficultyEasy, l.Difficulty.Grade)
}

func TestComputeScalesWithArea(t *testing.T) {
	ds := uniformColumn(12, 1.5)
	det := detect(ds)

	small, err := Compute(ds, det, 5000)
	require.NoError(t, err)
	large, err := Compute(ds, det, 10000)
	require.NoError(t, err)

	require.NotZero(t, small.TotalResources)
	assert.InDelta(t, 2*small.TotalResources, large.TotalResources, 1e-6)
	assert.InDelta(t, 2*small.Layers[0].MassTons, large.Layers[0].MassTons, 1e-6)
}

func TestComputeNoCoal(t *testing.T) {
	ds := &types.Dataset{Samples: []types.LogSample{
		sample(10, 2.6, 50),
		sample(11, 2.6, 50),
	}}
	summary, err := Compute(ds, detect(ds), 10000)
	require.NoError(t, err)

	assert.Zero(t, summary.TotalResources)
	assert.Zero(t, summary.TotalVolume)
	assert.Empty(t, summary.Layers)
	assert.NotNil(t, summary.Layers)
	assert.Empty(t, OptimizePlan(summary.Layers, 0.85).Entries)
}

func TestComputeLayerUsesAllSamplesInRange(t *testing.T) {
	ds := &types.Dataset{Samples: []types.LogSample{
		sample(100, 1.2, 50),
		sample(100.5, 2.5, 50),
		sample(101, 1.2, 50),
	}}
	det := detect(ds)
	require.Equal(t, types.CoalMask{true, false, true}, det.Mask)

	summary, err := Compute(ds, det, 10000)
	require.NoError(t, err)
	require.Len(t, summary.Layers, 1)

	assert.InDelta(t, (1.2+2.5+1.2)/3, summary.Layers[0].Density, 1e-9)
	assert.InDelta(t, 1*10000*1.2*1000, summary.TotalResources, 1e-6, "totals use the coal-only mean density")
}

func TestComputeInvalidArea(t *testing.T) {
	ds := uniformColumn(5, 1.2)
	det := detect(ds)
	for _, area := range []float64{0, -10, math.NaN(), math.Inf(1)} {
		_, err := Compute(ds, det, area)
		assert.ErrorIs(t, err, ErrInvalidArea, "area %v", area)
	}
}

func TestComputeMaskMismatch(t *testing.T) {
	ds := uniformColumn(5, 1.2)
	det := detect(ds)
	det.Mask = det.Mask[:2]
	_, err := Compute(ds, det, 100)
	assert.Error(t, err)
}

func TestParseArea(t *testing.T) {
	v, err := ParseArea(" 2500 ")
	require.NoError(t, err)
	assert.Equal(t, 2500.0, v)

	for _, in := range []string{"", "abc", "0", "-5", "NaN"} {
		_, err := ParseArea(in)
		assert.ErrorIs(t, err, ErrInvalidArea, "input %q", in)
	}
}

func TestQualityGrades(t *testing.T) {
	tests := []struct {
		density, gamma float64
		want           types.QualityGrade
	}{
		{1.1, 20, types.QualitySpecial},
		{1.3, 30, types.QualityPremium},
		{1.3, 50, types.QualityGood},
		{1.4, 50, types.QualityMedium},
		{1.5, 50, types.QualityMedium},
		{1.8, 80, types.QualityLow},
		{2.5, 120, types.QualityLow},
	}
	for _, tt := range tests {
		q := assessQuality(tt.density, tt.gamma)
		assert.Equal(t, tt.want, q.Grade, "density %v gamma %v (score %v)", tt.density, tt.gamma, q.Score)
		assert.GreaterOrEqual(t, q.Score, 0.0)
		assert.LessOrEqual(t, q.Score, 100.0)
	}
}

func TestThicknessFactor(t *testing.T) {
	tests := []struct {
		thickness, want float64
	}{
		{0, 8}, {0.99, 8}, {1, 5}, {1.99, 5}, {2, 2}, {4.9, 2}, {5, 4}, {7.9, 4}, {8, 6}, {30, 6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, thicknessFactor(tt.thickness), "thickness %v", tt.thickness)
	}
}

func TestDifficultyGrades(t *testing.T) {
	tests := []struct {
		r    types.DepthRange
		want types.DifficultyGrade
	}{
		{types.DepthRange{Start: 100, End: 103, Thickness: 3}, types.DifficultyEasy},
		{types.DepthRange{Start: 400, End: 403, Thickness: 3}, types.DifficultyModerate},
		{types.DepthRange{Start: 500, End: 500.5, Thickness: 0.5}, types.DifficultyHard},
		{types.DepthRange{Start: 700, End: 703, Thickness: 3}, types.DifficultyHard},
		{types.DepthRange{Start: 800, End: 801, Thickness: 1}, types.DifficultyExtreme},
		{types.DepthRange{Start: 1200, End: 1210, Thickness: 10}, types.DifficultyExtreme},
	}
	for _, tt := range tests {
		d := assessDifficulty(tt.r)
		assert.Equal(t, tt.want, d.Grade, "range %+v (score %v)", tt.r, d.Score)
	}
}

func TestSelectMethod(t *testing.T) {
	tests := []struct {
		depth, thickness float64
		want             types.MiningMethod
	}{
		{10, 3, types.MethodSurface},
		{10, 2, types.MethodRoomAndPillar},
		{10, 1, types.MethodNarrowPillar},
		{50, 1.5, types.MethodLongwall},
		{299, 8, types.MethodLongwall},
		{150, 10, types.MethodSlicing},
		{300, 1, types.MethodNarrowPillar},
		{700, 3, types.MethodHydraulic},
		{700, 1, types.MethodNarrowPillar},
		{400, 3, types.MethodRoomAndPillar},
	}
	for _, tt := range tests {
		got := selectMethod(types.DepthRange{Start: tt.depth, Thickness: tt.thickness})
		assert.Equal(t, tt.want, got.name, "depth %v thickness %v", tt.depth, tt.thickness)
		assert.NotEmpty(t, got.details)
	}
}

func TestRecoveryRate(t *testing.T) {
	surface := selectMethod(types.DepthRange{Start: 10, Thickness: 3})
	assert.Equal(t, 0.95, recoveryRate(0.85, surface, 0), "capped")

	hydraulic := selectMethod(types.DepthRange{Start: 700, Thickness: 3})
	assert.InDelta(t, 0.85*0.8*0.7, recoveryRate(0.85, hydraulic, 10), 1e-9)
	assert.InDelta(t, 0.85*0.8*0.7, recoveryRate(0.85, hydraulic, 20), 1e-9, "difficulty penalty floors at 0.7")
}

func layer(number int, start, quality, difficulty, mass float64) types.SeamLayer {
	return types.SeamLayer{
		Number:     number,
		DepthRange: types.DepthRange{Start: start, End: start + 3, Thickness: 3},
		MassTons:   mass,
		Quality:    types.Quality{Score: quality},
		Difficulty: types.MiningDifficulty{Score: difficulty},
	}
}

func TestOptimizePlanOrdersByPriority(t *testing.T) {
	layers := []types.SeamLayer{
		layer(1, 100, 40, 2, 1e6),
		layer(2, 200, 90, 2, 2e6),
		layer(3, 300, 60, 8, 2e6),
	}
	plan := OptimizePlan(layers, 0.85)
	require.Len(t, plan.Entries, 3)

	assert.Equal(t, []int{2, 3, 1}, []int{plan.Entries[0].Layer, plan.Entries[1].Layer, plan.Entries[2].Layer})
	for i, e := range plan.Entries {
		assert.Equal(t, i+1, e.Order)
		if i > 0 {
			assert.GreaterOrEqual(t, plan.Entries[i-1].PriorityScore, e.PriorityScore)
		}
	}

	top := plan.Entries[0]
	assert.InDelta(t, 0.5*90+0.3*80+0.2*100, top.PriorityScore, 1e-9)
	assert.Equal(t, "200.0m - 203.0m", top.DepthRange)
	assert.InDelta(t, 2000, top.ResourceKtons, 1e-9)
	assert.InDelta(t, 2e6*top.ExpectedRecoveryRate, top.ExpectedOutputTons, 1e-6)
	assert.InDelta(t, 0.85, plan.ExtractionRate, 1e-12)
}

func TestOptimizePlanStableTies(t *testing.T) {
	layers := []types.SeamLayer{
		layer(1, 100, 70, 3, 1e6),
		layer(2, 150, 70, 3, 1e6),
		layer(3, 200, 70, 3, 1e6),
	}
	plan := OptimizePlan(layers, 0.85)
	require.Len(t, plan.Entries, 3)
	for i, e := range plan.Entries {
		assert.Equal(t, i+1, e.Layer)
	}
}

func TestOptimizePlanDoesNotReorderInput(t *testing.T) {
	layers := []types.SeamLayer{
		layer(2, 200, 90, 2, 1e6),
		layer(1, 100, 40, 2, 1e6),
	}
	OptimizePlan(layers, 0.85)
	assert.Equal(t, 2, layers[0].Number)
}

func TestOptimizePlanZeroMass(t *testing.T) {
	plan := OptimizePlan([]types.SeamLayer{layer(1, 100, 50, 5, 0)}, 0.85)
	require.Len(t, plan.Entries, 1)
	assert.InDelta(t, 0.5*50+0.3*50, plan.Entries[0].PriorityScore, 1e-9)
	assert.Zero(t, plan.ExpectedOutputTons())
}

func TestValidateConfig(t *testing.T) {
	def := types.DefaultPipelineConfig().Resource
	require.NoError(t, ValidateConfig(def))

	full := def
	full.ExtractionRate = 1
	assert.NoError(t, ValidateConfig(full))

	for _, rate := range []float64{0, -0.5, 1.2, math.NaN(), math.Inf(1)} {
		cfg := def
		cfg.ExtractionRate = rate
		assert.ErrorIs(t, ValidateConfig(cfg), ErrInvalidExtractionRate, "rate %v", rate)
	}

	cfg := def
	cfg.AreaSquareMeters = -1
	assert.ErrorIs(t, ValidateConfig(cfg), ErrInvalidArea)
}
