// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pollution

import (
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/coalseam/pkg/types"
)

func coal(depth float64) types.LogSample {
	return types.LogSample{
		Depth:              depth,
		DeepResistivity:    100,
		ShallowResistivity: 100,
		SonicInterval:      400,
		NaturalGamma:       50,
		Density:            1.4,
	}
}

func rock(depth float64) types.LogSample {
	return types.LogSample{
		Depth:              depth,
		DeepResistivity:    20,
		ShallowResistivity: 20,
		SonicInterval:      250,
		NaturalGamma:       95,
		Density:            2.5,
	}
}

// column builds a dataset from from..to at unit spacing. isCoal picks the
// sample kind by depth.
func column(from, to float64, isCoal func(float64) bool) (*types.Dataset, types.CoalMask) {
	ds := &types.Dataset{Source: "test.csv"}
	var mask types.CoalMask
	for d := from; d <= to; d++ {
		if isCoal(d) {
			ds.Samples = append(ds.Samples, coal(d))
			mask = append(mask, true)
		} else {
			ds.Samples = append(ds.Samples, rock(d))
			mask = append(mask, false)
		}
	}
	return ds, mask
}

func quietScorer(cfg types.PollutionConfig) *Scorer {
	log, _ := test.NewNullLogger()
	return NewScorer(cfg, log)
}

func TestAssessNoCoal(t *testing.T) {
	ds, mask := column(100, 119, func(float64) bool { return false })
	out := quietScorer(types.DefaultPollutionConfig()).Assess(ds, mask)

	require.False(t, out.Degraded())
	a := out.Assessment
	require.Len(t, a.Segments, 2)
	for _, seg := range a.Segments {
		assert.Zero(t, seg.CoalPercentage)
		assert.Zero(t, seg.PollutionLevel)
		assert.Empty(t, seg.Pollutants)
	}
	assert.Zero(t, a.OverallScore)
	assert.Equal(t, types.GradeSlight, a.Grade)
	assert.Zero(t, a.Impacts.Count())
	assert.Equal(t, "low", a.DiffusionRisk.RiskLevel.Level)
	assert.InDelta(t, 0.1, a.DiffusionRisk.HorizontalSpeed, 1e-9)
	assert.InDelta(t, 0.05, a.DiffusionRisk.VerticalSpeed, 1e-9)
}

func TestAssessAllCoal(t *testing.T) {
	ds, mask := column(100, 119, func(float64) bool { return true })
	out := quietScorer(types.DefaultPollutionConfig()).Assess(ds, mask)

	require.False(t, out.Degraded())
	a := out.Assessment
	require.Len(t, a.Segments, 2)

	assert.Equal(t, 100.0, a.Segments[0].Start)
	assert.Equal(t, 110.0, a.Segments[0].End)
	assert.Equal(t, 110.0, a.Segments[1].Start)
	assert.Equal(t, 119.0, a.Segments[1].End, "final window is shortened to the max depth")

	for _, seg := range a.Segments {
		assert.Equal(t, 1.0, seg.CoalPercentage)
		assert.Equal(t, 10.0, seg.PollutionLevel, "level is capped at 10")
		assert.Empty(t, seg.Pollutants)
		assert.InDelta(t, 1.4, seg.PhysicalParams.Density, 1e-9)
		assert.InDelta(t, 100, seg.PhysicalParams.Resistivity, 1e-9)
	}

	// (10*1 + 10*(1-0.3*10/19)) / 20 * 100
	assert.InDelta(t, 92.105, a.OverallScore, 1e-3)
	assert.Equal(t, types.GradeCritical, a.Grade)

	assert.Len(t, a.Impacts.Soil, 3)
	assert.Len(t, a.Impacts.Ecological, 3)
	assert.Len(t, a.Impacts.Water, 3)
	assert.Len(t, a.Impacts.Health, 2)

	d := a.DiffusionRisk
	assert.InDelta(t, 10, d.HorizontalRisk, 1e-9)
	assert.InDelta(t, 6, d.VerticalRisk, 1e-9)
	assert.InDelta(t, 2.0, d.HorizontalSpeed, 1e-9)
	assert.InDelta(t, 0.6, d.VerticalSpeed, 1e-9)
	assert.InDelta(t, 40, d.HorizontalRange20y, 1e-9)
	assert.InDelta(t, 12, d.VerticalRange20y, 1e-9)
	assert.Equal(t, "high", d.RiskLevel.Level)
}

func TestAssessBounds(t *testing.T) {
	patterns := map[string]func(float64) bool{
		"alternating": func(d float64) bool { return int(d)%2 == 0 },
		"shallow":     func(d float64) bool { return d < 115 },
		"deep":        func(d float64) bool { return d > 140 },
		"sparse":      func(d float64) bool { return int(d)%7 == 0 },
	}
	for name, isCoal := range patterns {
		t.Run(name, func(t *testing.T) {
			ds, mask := column(100, 150, isCoal)
			out := quietScorer(types.DefaultPollutionConfig()).Assess(ds, mask)
			require.False(t, out.Degraded())

			for _, seg := range out.Assessment.Segments {
				assert.GreaterOrEqual(t, seg.PollutionLevel, 0.0)
				assert.LessOrEqual(t, seg.PollutionLevel, 10.0)
				if seg.CoalPercentage == 0 {
					assert.Zero(t, seg.PollutionLevel)
				}
			}
			assert.GreaterOrEqual(t, out.Assessment.OverallScore, 0.0)
			assert.LessOrEqual(t, out.Assessment.OverallScore, 100.0)
		})
	}
}

func TestSegmentWindows(t *testing.T) {
	s := quietScorer(types.DefaultPollutionConfig())

	tests := []struct {
		name   string
		depths []float64
		want   [][2]float64
	}{
		{"single sample", []float64{50}, [][2]float64{{50, 50}}},
		{"short final window", []float64{100, 105, 112, 125}, [][2]float64{{100, 110}, {110, 120}, {120, 125}}},
		{"empty windows skipped", []float64{100, 101, 135}, [][2]float64{{100, 110}, {130, 135}}},
		{"exact multiple", []float64{0, 10, 20}, [][2]float64{{0, 10}, {10, 20}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := &types.Dataset{}
			mask := make(types.CoalMask, len(tt.depths))
			for _, d := range tt.depths {
				ds.Samples = append(ds.Samples, coal(d))
			}
			segs := s.segments(ds, mask)
			require.Len(t, segs, len(tt.want))
			for i, w := range tt.want {
				assert.Equal(t, w[0], segs[i].Start)
				assert.Equal(t, w[1], segs[i].End)
			}
		})
	}
}

func TestSegmentWindowsSentinelDepth(t *testing.T) {
	ds := &types.Dataset{Samples: []types.LogSample{coal(-9999), coal(500), coal(505), rock(512)}}
	mask := types.CoalMask{true, true, true, false}

	segs := quietScorer(types.DefaultPollutionConfig()).segments(ds, mask)
	require.Len(t, segs, 4)
	for i, want := range []struct{ start, end, coal float64 }{
		{-9999, -9989, 1},
		{491, 501, 1},
		{501, 511, 1},
		{511, 512, 0},
	} {
		assert.Equal(t, want.start, segs[i].Start)
		assert.Equal(t, want.end, segs[i].End)
		assert.Equal(t, want.coal, segs[i].CoalPercentage)
	}
}

func TestWindowIndex(t *testing.T) {
	last := lastWindow(0, 20, 10)
	assert.Equal(t, 1, last)
	assert.Equal(t, 0, windowIndex(0, 0, 10, last))
	assert.Equal(t, 0, windowIndex(9.999, 0, 10, last))
	assert.Equal(t, 1, windowIndex(10, 0, 10, last))
	assert.Equal(t, 1, windowIndex(20, 0, 10, last))

	assert.Equal(t, 0, lastWindow(5, 5, 10))
	assert.Equal(t, 2, lastWindow(100, 125, 10))
}

func TestSegmentCountsMaxDepthSample(t *testing.T) {
	ds := &types.Dataset{Samples: []types.LogSample{coal(0), rock(10), coal(20)}}
	mask := types.CoalMask{true, false, true}

	segs := quietScorer(types.DefaultPollutionConfig()).segments(ds, mask)
	require.Len(t, segs, 2)
	assert.Equal(t, 1.0, segs[0].CoalPercentage)
	assert.Equal(t, 0.5, segs[1].CoalPercentage)
}

func TestBarrierDampensLevel(t *testing.T) {
	s := quietScorer(types.DefaultPollutionConfig())

	open := &window{}
	open.add(coal(0), true)
	assert.Equal(t, 0.5, s.barrier(open))

	sealed := &window{}
	sealed.add(coal(0), true)
	tight := rock(1)
	tight.Density = 3.0
	tight.DeepResistivity, tight.ShallowResistivity = 1000, 1000
	sealed.add(tight, false)
	assert.Equal(t, 1.0, s.barrier(sealed))
}

func TestInferPollutants(t *testing.T) {
	ph := func(v float64) *float64 { return &v }

	tests := []struct {
		name   string
		params types.PhysicalParams
		ph     *float64
		want   []types.Pollutant
	}{
		{"clean", types.PhysicalParams{Density: 1.4, Gamma: 50, Resistivity: 100}, nil, []types.Pollutant{}},
		{"heavy metal", types.PhysicalParams{Density: 1.4, Gamma: 70, Resistivity: 100}, nil,
			[]types.Pollutant{{Name: types.PollutantHeavyMetal, Level: 7}}},
		{"heavy metal capped", types.PhysicalParams{Density: 1.4, Gamma: 150, Resistivity: 100}, nil,
			[]types.Pollutant{{Name: types.PollutantHeavyMetal, Level: 10}}},
		{"acid from pH", types.PhysicalParams{Density: 1.4, Gamma: 50, Resistivity: 100}, ph(5),
			[]types.Pollutant{{Name: types.PollutantAcidic, Level: 5}}},
		{"strong acid from pH capped", types.PhysicalParams{Density: 1.4, Gamma: 50, Resistivity: 100}, ph(3),
			[]types.Pollutant{{Name: types.PollutantAcidic, Level: 10}}},
		{"acid fallback", types.PhysicalParams{Density: 1.4, Gamma: 45, Resistivity: 40}, nil,
			[]types.Pollutant{{Name: types.PollutantAcidic, Level: 5}}},
		{"neutral pH uses fallback", types.PhysicalParams{Density: 1.4, Gamma: 45, Resistivity: 40}, ph(7),
			[]types.Pollutant{{Name: types.PollutantAcidic, Level: 5}}},
		{"neutral pH without fallback", types.PhysicalParams{Density: 1.4, Gamma: 30, Resistivity: 40}, ph(7), []types.Pollutant{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inferPollutants(tt.params, tt.ph))
		})
	}
}

func TestInferOrganic(t *testing.T) {
	got := inferPollutants(types.PhysicalParams{Density: 1.2, Gamma: 50, Resistivity: 100}, nil)
	require.Len(t, got, 1)
	assert.Equal(t, types.PollutantOrganic, got[0].Name)
	assert.InDelta(t, 4.0, got[0].Level, 1e-9)
}

func TestAssessUsesPH(t *testing.T) {
	ds, mask := column(0, 9, func(float64) bool { return true })
	acid := 4.0
	for i := range ds.Samples {
		ds.Samples[i].PH = &acid
	}
	ds.HasPH = true

	out := quietScorer(types.DefaultPollutionConfig()).Assess(ds, mask)
	require.False(t, out.Degraded())
	require.Len(t, out.Assessment.Segments, 1)
	assert.Equal(t, []types.Pollutant{{Name: types.PollutantAcidic, Level: 10}}, out.Assessment.Segments[0].Pollutants)
	assert.NotEmpty(t, out.Assessment.Impacts.Soil)
}

func TestGrade(t *testing.T) {
	s := quietScorer(types.DefaultPollutionConfig())
	tests := []struct {
		score float64
		want  types.PollutionGrade
	}{
		{0, types.GradeSlight},
		{14.99, types.GradeSlight},
		{15, types.GradeLight},
		{34.9, types.GradeLight},
		{35, types.GradeModerate},
		{55, types.GradeSevere},
		{74.9, types.GradeSevere},
		{75, types.GradeCritical},
		{100, types.GradeCritical},
	}
	for _, tt := range tests {
		got, desc := s.grade(tt.score)
		assert.Equal(t, tt.want, got, "score %v", tt.score)
		assert.NotEmpty(t, desc)
	}
}

func TestAnalyzeImpacts(t *testing.T) {
	im := analyzeImpacts(nil, 45)
	assert.Len(t, im.Soil, 2)
	assert.Len(t, im.Ecological, 1)
	assert.Empty(t, im.Water)
	assert.Empty(t, im.Health)

	assert.Zero(t, analyzeImpacts(nil, 20).Count(), "thresholds are strict")

	segs := []types.PollutionSegment{
		{Pollutants: []types.Pollutant{{Name: types.PollutantHeavyMetal, Level: 4}}},
		{Pollutants: []types.Pollutant{{Name: types.PollutantHeavyMetal, Level: 6}, {Name: types.PollutantOrganic, Level: 5}}},
	}
	im = analyzeImpacts(segs, 0)
	assert.Len(t, im.Health, 1, "heavy metal peak above 5")
	assert.Len(t, im.Ecological, 1)
	assert.Empty(t, im.Water, "organic at exactly 5 adds nothing")
}

func TestRiskLevel(t *testing.T) {
	tests := []struct {
		h, v float64
		want string
	}{
		{0, 0, "low"},
		{1, 2.9, "low"},
		{2, 2, "medium-low"},
		{5, 3, "medium-low"},
		{4, 4, "medium"},
		{6, 7, "medium-high"},
		{8, 8, "high"},
		{10, 10, "high"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, riskLevel(tt.h, tt.v).Level, "h=%v v=%v", tt.h, tt.v)
	}
}

func TestAssessDegrades(t *testing.T) {
	valid, mask := column(0, 9, func(float64) bool { return true })
	nan, nanMask := column(0, 9, func(float64) bool { return true })
	nan.Samples[3].Density = math.NaN()

	badCfg := types.DefaultPollutionConfig()
	badCfg.SegmentSize = 0
	tinyCfg := types.DefaultPollutionConfig()
	tinyCfg.SegmentSize = 1e-9

	tests := []struct {
		name string
		cfg  types.PollutionConfig
		ds   *types.Dataset
		mask types.CoalMask
	}{
		{"nil dataset", types.DefaultPollutionConfig(), nil, nil},
		{"empty dataset", types.DefaultPollutionConfig(), &types.Dataset{}, nil},
		{"mask mismatch", types.DefaultPollutionConfig(), valid, mask[:5]},
		{"non-finite reading", types.DefaultPollutionConfig(), nan, nanMask},
		{"zero segment size", badCfg, valid, mask},
		{"too many windows", tinyCfg, valid, mask},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := quietScorer(tt.cfg).Assess(tt.ds, tt.mask)
			require.True(t, out.Degraded())

			a := out.Assessment
			assert.Equal(t, out.Reason, a.DegradedReason)
			assert.Empty(t, a.Segments)
			assert.NotNil(t, a.Segments)
			assert.Zero(t, a.OverallScore)
			assert.Equal(t, types.GradeUnknown, a.Grade)
			assert.Zero(t, a.Impacts.Count())
			assert.Equal(t, "unknown", a.DiffusionRisk.RiskLevel.Level)
			assert.Equal(t, 2.0, a.DiffusionRisk.HorizontalRange20y)
			assert.Equal(t, 1.0, a.DiffusionRisk.VerticalRange20y)
		})
	}
}

func TestAssessDegradeIsLogged(t *testing.T) {
	log, hook := test.NewNullLogger()
	s := NewScorer(types.DefaultPollutionConfig(), log)

	out := s.Assess(&types.Dataset{Source: "empty.csv"}, nil)
	require.True(t, out.Degraded())

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "empty.csv", entry.Data["source"])
}
