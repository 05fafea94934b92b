// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ResourceSummary is the volumetric resource estimate for a dataset.
type ResourceSummary struct {
	// TotalResources is the in-place coal mass in tons.
	TotalResources   float64     `json:"total_resources" yaml:"total_resources"`
	TotalVolume      float64     `json:"total_volume" yaml:"total_volume"`
	AreaSquareMeters float64     `json:"area_square_meters" yaml:"area_square_meters"`
	Layers           []SeamLayer `json:"layers" yaml:"layers"`
}

// MiningMethod names a recommended extraction method.
type MiningMethod string

const (
	MethodSurface       MiningMethod = "surface mining"
	MethodLongwall      MiningMethod = "longwall mining"
	MethodSlicing       MiningMethod = "slicing mining"
	MethodNarrowPillar  MiningMethod = "narrow-pillar mining"
	MethodHydraulic     MiningMethod = "hydraulic mining"
	MethodRoomAndPillar MiningMethod = "room-and-pillar mining"
)

// PlanEntry is one layer's position in the extraction sequence.
type PlanEntry struct {
	Order             int          `json:"order" yaml:"order"`
	Layer             int          `json:"layer" yaml:"layer"`
	DepthRange        string       `json:"depth_range" yaml:"depth_range"`
	QualityScore      float64      `json:"quality_score" yaml:"quality_score"`
	DifficultyScore   float64      `json:"difficulty_score" yaml:"difficulty_score"`
	ResourceKtons     float64      `json:"resource_ktons" yaml:"resource_ktons"`
	PriorityScore     float64      `json:"priority_score" yaml:"priority_score"`
	RecommendedMethod MiningMethod `json:"recommended_method" yaml:"recommended_method"`
	MethodDetails     string       `json:"method_details" yaml:"method_details"`

	// ExpectedRecoveryRate is a fraction in [0, 0.95].
	ExpectedRecoveryRate float64 `json:"expected_recovery_rate" yaml:"expected_recovery_rate"`
	ExpectedOutputTons   float64 `json:"expected_output_tons" yaml:"expected_output_tons"`
}

// MiningPlan is the priority-ordered extraction plan.
type MiningPlan struct {
	ExtractionRate float64     `json:"extraction_rate" yaml:"extraction_rate"`
	Entries        []PlanEntry `json:"mining_plan" yaml:"mining_plan"`
}

// ExpectedOutputTons sums the expected output of every entry.
func (p MiningPlan) ExpectedOutputTons() float64 {
	total := 0.0
	for _, e := range p.Entries {
		total += e.ExpectedOutputTons
	}
	return total
}
