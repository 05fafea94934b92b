// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the value types shared by the assessment stages.
package types

// LogSample is one depth-indexed borehole log reading.
type LogSample struct {
	// Depth is the measured depth. Samples in a Dataset are non-decreasing by depth.
	Depth float64 `json:"depth" yaml:"depth"`

	// DeepResistivity is the deep lateral resistivity reading.
	DeepResistivity float64 `json:"deep_lateral_resistivity" yaml:"deep_lateral_resistivity"`

	// ShallowResistivity is the shallow lateral resistivity reading.
	ShallowResistivity float64 `json:"shallow_lateral_resistivity" yaml:"shallow_lateral_resistivity"`

	// SonicInterval is the acoustic travel-time reading, a porosity indicator.
	SonicInterval float64 `json:"sonic_interval" yaml:"sonic_interval"`

	// NaturalGamma is the natural radioactivity reading, a lithology indicator.
	NaturalGamma float64 `json:"natural_gamma" yaml:"natural_gamma"`

	// Density is the bulk density reading.
	Density float64 `json:"density" yaml:"density"`

	// PH is the optional pH reading. Nil when the dataset carries no pH column
	// or the cell was empty.
	PH *float64 `json:"ph,omitempty" yaml:"ph,omitempty"`
}

// DualLateralResistivity returns the composite resistivity 0.7·deep + 0.3·shallow.
func (s LogSample) DualLateralResistivity() float64 {
	return 0.7*s.DeepResistivity + 0.3*s.ShallowResistivity
}

// Dataset is an ordered sequence of LogSamples for one borehole.
type Dataset struct {
	// Source names where the samples were read from (file path or label).
	Source string `json:"source" yaml:"source"`

	// Samples are ordered by depth.
	Samples []LogSample `json:"samples" yaml:"samples"`

	// HasPH reports whether the source carried the optional pH column.
	HasPH bool `json:"has_ph" yaml:"has_ph"`
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return len(d.Samples)
}

// DepthRange returns the minimum and maximum depth. Both are zero for an
// empty dataset.
func (d *Dataset) DepthRange() (min, max float64) {
	if len(d.Samples) == 0 {
		return 0, 0
	}
	min, max = d.Samples[0].Depth, d.Samples[0].Depth
	for _, s := range d.Samples[1:] {
		if s.Depth < min {
			min = s.Depth
		}
		if s.Depth > max {
			max = s.Depth
		}
	}
	return min, max
}

// CoalMask is aligned 1:1 with a Dataset's samples; true marks a coal sample.
type CoalMask []bool

// Count returns the number of coal samples.
func (m CoalMask) Count() int {
	n := 0
	for _, c := range m {
		if c {
			n++
		}
	}
	return n
}
