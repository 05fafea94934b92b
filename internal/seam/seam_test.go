// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package seam

import (
	"testing"

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

func TestIsCoalBoundaries(t *testing.T) {
	d := NewDetector(types.DefaultDetectionConfig())

	tests := []struct {
		name   string
		mutate func(*types.LogSample)
		want   bool
	}{
		{"typical coal", func(*types.LogSample) {}, true},
		{"resistivity at lower bound", func(s *types.LogSample) { s.DeepResistivity, s.ShallowResistivity = 50, 50 }, true},
		{"resistivity at upper bound", func(s *types.LogSample) { s.DeepResistivity, s.ShallowResistivity = 2000, 2000 }, true},
		{"resistivity below", func(s *types.LogSample) { s.DeepResistivity, s.ShallowResistivity = 49, 49 }, false},
		{"sonic at 300", func(s *types.LogSample) { s.SonicInterval = 300 }, true},
		{"sonic at 600", func(s *types.LogSample) { s.SonicInterval = 600 }, true},
		{"sonic above", func(s *types.LogSample) { s.SonicInterval = 600.1 }, false},
		{"gamma at 20", func(s *types.LogSample) { s.NaturalGamma = 20 }, true},
		{"gamma at 80", func(s *types.LogSample) { s.NaturalGamma = 80 }, true},
		{"gamma below", func(s *types.LogSample) { s.NaturalGamma = 19.9 }, false},
		{"density at 1.0", func(s *types.LogSample) { s.Density = 1.0 }, true},
		{"density at 1.8", func(s *types.LogSample) { s.Density = 1.8 }, true},
		{"density above", func(s *types.LogSample) { s.Density = 1.81 }, false},
		{"composite resistivity inside while deep is outside", func(s *types.LogSample) {
			s.DeepResistivity, s.ShallowResistivity = 2100, 1500 // 0.7*2100 + 0.3*1500 = 1920
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := coal(10)
			tt.mutate(&s)
			assert.Equal(t, tt.want, d.IsCoal(s))
		})
	}
}

func TestFailedBounds(t *testing.T) {
	d := NewDetector(types.DefaultDetectionConfig())
	assert.Empty(t, d.FailedBounds(coal(1)))
	assert.Equal(t,
		[]string{"resistivity", "sonic_interval", "natural_gamma", "density"},
		d.FailedBounds(rock(1)))
}

func TestGroupLayers(t *testing.T) {
	tests := []struct {
		name    string
		samples []types.LogSample
		want    []types.DepthRange
	}{
		{
			name:    "no coal",
			samples: []types.LogSample{rock(1), rock(2)},
			want:    nil,
		},
		{
			name:    "single contiguous run",
			samples: []types.LogSample{rock(0), coal(1), coal(1.5), coal(2), coal(3), rock(4)},
			want:    []types.DepthRange{{Start: 1, End: 3, Thickness: 2}},
		},
		{
			name:    "gap of exactly 1.0 keeps the layer",
			samples: []types.LogSample{coal(10), coal(11), coal(12)},
			want:    []types.DepthRange{{Start: 10, End: 12, Thickness: 2}},
		},
		{
			name:    "gap above 1.0 splits",
			samples: []types.LogSample{coal(10), coal(11), coal(12.5), coal(13)},
			want: []types.DepthRange{
				{Start: 10, End: 11, Thickness: 1},
				{Start: 12.5, End: 13, Thickness: 0.5},
			},
		},
		{
			name:    "single trailing sample closes its own layer",
			samples: []types.LogSample{coal(1), coal(2), rock(3), rock(4), coal(5)},
			want: []types.DepthRange{
				{Start: 1, End: 2, Thickness: 1},
				{Start: 5, End: 5, Thickness: 0},
			},
		},
	}

	d := NewDetector(types.DefaultDetectionConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := &types.Dataset{Samples: tt.samples}
			got, err := GroupLayers(ds.Samples, d.Classify(ds), 1.0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGroupLayersMaskMismatch(t *testing.T) {
	_, err := GroupLayers([]types.LogSample{coal(1)}, types.CoalMask{true, false}, 1.0)
	require.Error(t, err)
}

func TestDetect(t *testing.T) {
	ds := &types.Dataset{Samples: []types.LogSample{
		rock(99), coal(100), coal(100.5), coal(101), rock(102), coal(105), coal(106),
	}}

	res := NewDetector(types.DefaultDetectionConfig()).Detect(ds)

	require.Len(t, res.Layers, 2)
	assert.Equal(t, types.CoalMask{false, true, true, true, false, true, true}, res.Mask)
	assert.Equal(t, 5, res.CoalSamples)
	assert.Equal(t, 7, res.TotalSamples)
	assert.InDelta(t, 2.0, res.TotalThickness, 1e-9)
	assert.Equal(t, 99.0, res.MinDepth)
	assert.Equal(t, 106.0, res.MaxDepth)
}

func TestDetectMatchesGroupLayers(t *testing.T) {
	ds := &types.Dataset{Samples: []types.LogSample{
		coal(10), coal(11), rock(11.5), coal(12), coal(14), rock(15), coal(15.5),
	}}
	d := NewDetector(types.DefaultDetectionConfig())

	want, err := GroupLayers(ds.Samples, d.Classify(ds), 1.0)
	require.NoError(t, err)
	assert.Equal(t, want, d.Detect(ds).Layers)
	assert.Len(t, want, 3)
}

func TestDetectNoCoal(t *testing.T) {
	ds := &types.Dataset{Samples: []types.LogSample{rock(1), rock(2)}}
	res := NewDetector(types.DefaultDetectionConfig()).Detect(ds)
	assert.Empty(t, res.Layers)
	assert.Zero(t, res.TotalThickness)
	assert.Zero(t, res.CoalSamples)
}

func TestDetectorCustomGap(t *testing.T) {
	cfg := types.DefaultDetectionConfig()
	cfg.GapTolerance = 3
	ds := &types.Dataset{Samples: []types.LogSample{coal(1), coal(3.5), coal(7)}}
	res := NewDetector(cfg).Detect(ds)
	require.Len(t, res.Layers, 2)
	assert.Equal(t, 3.5, res.Layers[0].End)
}
