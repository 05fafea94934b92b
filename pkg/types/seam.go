// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DepthRange is a contiguous coal-bearing interval produced by seam grouping.
type DepthRange struct {
	Start     float64 `json:"start_depth" yaml:"start_depth"`
	End       float64 `json:"end_depth" yaml:"end_depth"`
	Thickness float64 `json:"thickness" yaml:"thickness"`
}

// DetectionResult is the output of the seam detector.
type DetectionResult struct {
	// Mask marks coal samples; it is aligned with the input dataset.
	Mask CoalMask `json:"-" yaml:"-"`

	// Layers are the grouped coal intervals in depth order.
	Layers []DepthRange `json:"coal_layers" yaml:"coal_layers"`

	TotalThickness float64 `json:"total_thickness" yaml:"total_thickness"`
	MinDepth       float64 `json:"min_depth" yaml:"min_depth"`
	MaxDepth       float64 `json:"max_depth" yaml:"max_depth"`
	CoalSamples    int     `json:"coal_samples" yaml:"coal_samples"`
	TotalSamples   int     `json:"total_samples" yaml:"total_samples"`
}

// QualityGrade labels a coal quality score.
type QualityGrade string

const (
	QualitySpecial QualityGrade = "special"
	QualityPremium QualityGrade = "premium"
	QualityGood    QualityGrade = "good"
	QualityMedium  QualityGrade = "medium"
	QualityLow     QualityGrade = "low"
)

// Quality is the density/gamma based quality assessment of a layer.
type Quality struct {
	Score   float64      `json:"score" yaml:"score"`
	Grade   QualityGrade `json:"grade" yaml:"grade"`
	Density float64      `json:"density" yaml:"density"`
	Gamma   float64      `json:"gamma" yaml:"gamma"`
}

// DifficultyGrade labels a mining difficulty score.
type DifficultyGrade string

const (
	DifficultyEasy     DifficultyGrade = "easy"
	DifficultyModerate DifficultyGrade = "moderate"
	DifficultyHard     DifficultyGrade = "hard"
	DifficultyExtreme  DifficultyGrade = "extreme"
)

// MiningDifficulty is the depth/thickness based extraction difficulty of a layer.
type MiningDifficulty struct {
	Score           float64         `json:"score" yaml:"score"`
	Grade           DifficultyGrade `json:"grade" yaml:"grade"`
	DepthFactor     float64         `json:"depth_factor" yaml:"depth_factor"`
	ThicknessFactor float64         `json:"thickness_factor" yaml:"thickness_factor"`
}

// SeamLayer is a detected layer enriched with resource attributes. It is
// built once by the resource stage and not modified afterwards.
type SeamLayer struct {
	// Number is the 1-based position of the layer in detection (depth) order.
	Number int `json:"layer_number" yaml:"layer_number"`

	DepthRange `yaml:",inline"`

	Volume     float64          `json:"volume" yaml:"volume"`
	Density    float64          `json:"density" yaml:"density"`
	MassTons   float64          `json:"mass_tons" yaml:"mass_tons"`
	Quality    Quality          `json:"quality" yaml:"quality"`
	Difficulty MiningDifficulty `json:"mining_difficulty" yaml:"mining_difficulty"`
}
