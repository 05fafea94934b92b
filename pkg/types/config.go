// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DetectionConfig holds the coal classification thresholds. Bounds are inclusive.
type DetectionConfig struct {
	ResistivityMin float64 `json:"resistivity_min" yaml:"resistivity_min" mapstructure:"resistivity_min"`
	ResistivityMax float64 `json:"resistivity_max" yaml:"resistivity_max" mapstructure:"resistivity_max"`
	SonicMin       float64 `json:"sonic_min" yaml:"sonic_min" mapstructure:"sonic_min"`
	SonicMax       float64 `json:"sonic_max" yaml:"sonic_max" mapstructure:"sonic_max"`
	GammaMin       float64 `json:"gamma_min" yaml:"gamma_min" mapstructure:"gamma_min"`
	GammaMax       float64 `json:"gamma_max" yaml:"gamma_max" mapstructure:"gamma_max"`
	DensityMin     float64 `json:"density_min" yaml:"density_min" mapstructure:"density_min"`
	DensityMax     float64 `json:"density_max" yaml:"density_max" mapstructure:"density_max"`

	// GapTolerance is the largest depth gap between coal samples that still
	// belongs to the same layer (default 1.0).
	GapTolerance float64 `json:"gap_tolerance" yaml:"gap_tolerance" mapstructure:"gap_tolerance"`
}

// PotentialWeights weights the four pollution-potential sub-factors. The
// weighted sum is divided by Normalizer to land roughly in [0,1].
type PotentialWeights struct {
	Density     float64 `json:"density" yaml:"density" mapstructure:"density"`
	Gamma       float64 `json:"gamma" yaml:"gamma" mapstructure:"gamma"`
	Resistivity float64 `json:"resistivity" yaml:"resistivity" mapstructure:"resistivity"`
	Porosity    float64 `json:"porosity" yaml:"porosity" mapstructure:"porosity"`
	Normalizer  float64 `json:"normalizer" yaml:"normalizer" mapstructure:"normalizer"`
}

// GradeThresholds are the overall-score lower bounds of each pollution grade
// above "slight".
type GradeThresholds struct {
	Light    float64 `json:"light" yaml:"light" mapstructure:"light"`
	Moderate float64 `json:"moderate" yaml:"moderate" mapstructure:"moderate"`
	Severe   float64 `json:"severe" yaml:"severe" mapstructure:"severe"`
	Critical float64 `json:"critical" yaml:"critical" mapstructure:"critical"`
}

// PollutionConfig holds the pollution scorer's tuning constants.
type PollutionConfig struct {
	// SegmentSize is the depth window width (default 10).
	SegmentSize float64 `json:"segment_size" yaml:"segment_size" mapstructure:"segment_size"`

	Weights PotentialWeights `json:"weights" yaml:"weights" mapstructure:"weights"`

	// DensityCeiling bounds the density factor: (ceiling - min(ceiling, density)).
	DensityCeiling float64 `json:"density_ceiling" yaml:"density_ceiling" mapstructure:"density_ceiling"`
	// GammaScale divides mean gamma in the gamma factor.
	GammaScale float64 `json:"gamma_scale" yaml:"gamma_scale" mapstructure:"gamma_scale"`
	// ResistivityReference and ResistivityFloor shape ref/max(floor, resistivity).
	ResistivityReference float64 `json:"resistivity_reference" yaml:"resistivity_reference" mapstructure:"resistivity_reference"`
	ResistivityFloor     float64 `json:"resistivity_floor" yaml:"resistivity_floor" mapstructure:"resistivity_floor"`
	// SonicScale and PorosityCap shape min(cap, sonic/scale).
	SonicScale  float64 `json:"sonic_scale" yaml:"sonic_scale" mapstructure:"sonic_scale"`
	PorosityCap float64 `json:"porosity_cap" yaml:"porosity_cap" mapstructure:"porosity_cap"`

	// Barrier factor: min(1, (density/BarrierDensityScale)·(resistivity/BarrierResistivityScale)).
	BarrierDensityScale     float64 `json:"barrier_density_scale" yaml:"barrier_density_scale" mapstructure:"barrier_density_scale"`
	BarrierResistivityScale float64 `json:"barrier_resistivity_scale" yaml:"barrier_resistivity_scale" mapstructure:"barrier_resistivity_scale"`
	// BarrierDefault applies when a segment has no non-coal samples.
	BarrierDefault float64 `json:"barrier_default" yaml:"barrier_default" mapstructure:"barrier_default"`
	// BarrierFloor keeps the divisor away from zero.
	BarrierFloor float64 `json:"barrier_floor" yaml:"barrier_floor" mapstructure:"barrier_floor"`

	// DepthDiscount is how much the deepest segment is discounted (1.0 → 1-DepthDiscount).
	DepthDiscount float64 `json:"depth_discount" yaml:"depth_discount" mapstructure:"depth_discount"`
	// AggregationDecay is how much the deepest segment's weight drops in the overall score.
	AggregationDecay float64 `json:"aggregation_decay" yaml:"aggregation_decay" mapstructure:"aggregation_decay"`

	Grades GradeThresholds `json:"grades" yaml:"grades" mapstructure:"grades"`
}

// ResourceConfig holds defaults for the resource and mining optimizer.
type ResourceConfig struct {
	// AreaSquareMeters is the default seam footprint (default 10000).
	AreaSquareMeters float64 `json:"area_square_meters" yaml:"area_square_meters" mapstructure:"area_square_meters"`

	// ExtractionRate is the base recovery rate for plans (default 0.85).
	ExtractionRate float64 `json:"extraction_rate" yaml:"extraction_rate" mapstructure:"extraction_rate"`
}

// HistoryConfig holds settings for the assessment history store.
type HistoryConfig struct {
	// DataDir is the base directory for history (contains history/coalseam.db).
	DataDir string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
}

// BatchConfig holds settings for multi-dataset assessment.
type BatchConfig struct {
	// Workers bounds how many datasets are assessed concurrently (default 4).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Detection DetectionConfig `json:"detection" yaml:"detection" mapstructure:"detection"`
	Pollution PollutionConfig `json:"pollution" yaml:"pollution" mapstructure:"pollution"`
	Resource  ResourceConfig  `json:"resource" yaml:"resource" mapstructure:"resource"`
	History   HistoryConfig   `json:"history" yaml:"history" mapstructure:"history"`
	Batch     BatchConfig     `json:"batch" yaml:"batch" mapstructure:"batch"`
	LogLevel  string          `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
}

// DefaultDetectionConfig returns the fixed physical coal thresholds.
func DefaultDetectionConfig() DetectionConfig {
	return DetectionConfig{
		ResistivityMin: 50,
		ResistivityMax: 2000,
		SonicMin:       300,
		SonicMax:       600,
		GammaMin:       20,
		GammaMax:       80,
		DensityMin:     1.0,
		DensityMax:     1.8,
		GapTolerance:   1.0,
	}
}

// DefaultPollutionConfig returns the standard pollution scoring constants.
func DefaultPollutionConfig() PollutionConfig {
	return PollutionConfig{
		SegmentSize: 10,
		Weights: PotentialWeights{
			Density:     2.0,
			Gamma:       3.0,
			Resistivity: 2.5,
			Porosity:    1.5,
			Normalizer:  9.0,
		},
		DensityCeiling:          2.0,
		GammaScale:              40,
		ResistivityReference:    100,
		ResistivityFloor:        10,
		SonicScale:              200,
		PorosityCap:             1.5,
		BarrierDensityScale:     3.0,
		BarrierResistivityScale: 500,
		BarrierDefault:          0.5,
		BarrierFloor:            0.1,
		DepthDiscount:           0.5,
		AggregationDecay:        0.3,
		Grades: GradeThresholds{
			Light:    15,
			Moderate: 35,
			Severe:   55,
			Critical: 75,
		},
	}
}

// DefaultPipelineConfig returns the configuration used when no config file
// overrides a value.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Detection: DefaultDetectionConfig(),
		Pollution: DefaultPollutionConfig(),
		Resource: ResourceConfig{
			AreaSquareMeters: 10000,
			ExtractionRate:   0.85,
		},
		History:  HistoryConfig{DataDir: "data"},
		Batch:    BatchConfig{Workers: 4},
		LogLevel: "info",
	}
}
