// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PollutantKind names a pollutant inferred from segment physical parameters.
type PollutantKind string

const (
	PollutantHeavyMetal PollutantKind = "heavy metal"
	PollutantOrganic    PollutantKind = "organic pollutant"
	PollutantAcidic     PollutantKind = "acidic substance"
)

// Pollutant is an inferred pollutant with a 0-10 level.
type Pollutant struct {
	Name  PollutantKind `json:"name" yaml:"name"`
	Level float64       `json:"level" yaml:"level"`
}

// PhysicalParams holds the segment means used for scoring. All fields are
// zero for segments without coal.
type PhysicalParams struct {
	Density     float64 `json:"density" yaml:"density"`
	Gamma       float64 `json:"gamma" yaml:"gamma"`
	Resistivity float64 `json:"resistivity" yaml:"resistivity"`
}

// PollutionSegment is one fixed-width depth window of a pollution assessment.
type PollutionSegment struct {
	Start          float64        `json:"start_depth" yaml:"start_depth"`
	End            float64        `json:"end_depth" yaml:"end_depth"`
	CoalPercentage float64        `json:"coal_percentage" yaml:"coal_percentage"`
	PollutionLevel float64        `json:"pollution_level" yaml:"pollution_level"`
	Pollutants     []Pollutant    `json:"pollutants" yaml:"pollutants"`
	SegmentSize    float64        `json:"segment_size" yaml:"segment_size"`
	PhysicalParams PhysicalParams `json:"physical_params" yaml:"physical_params"`
}

// PollutionGrade classifies an overall pollution score.
type PollutionGrade string

const (
	GradeSlight   PollutionGrade = "slight"
	GradeLight    PollutionGrade = "light"
	GradeModerate PollutionGrade = "moderate"
	GradeSevere   PollutionGrade = "severe"
	GradeCritical PollutionGrade = "critical"
	GradeUnknown  PollutionGrade = "unknown"
)

// Impacts groups impact statements by the affected domain.
type Impacts struct {
	Ecological []string `json:"ecological" yaml:"ecological"`
	Water      []string `json:"water" yaml:"water"`
	Soil       []string `json:"soil" yaml:"soil"`
	Health     []string `json:"health" yaml:"health"`
}

// Count returns the total number of impact statements.
func (i Impacts) Count() int {
	return len(i.Ecological) + len(i.Water) + len(i.Soil) + len(i.Health)
}

// RiskLevel is a bucketed diffusion risk with its description.
type RiskLevel struct {
	Level       string `json:"level" yaml:"level"`
	Description string `json:"description" yaml:"description"`
}

// DiffusionRisk estimates how far pollutants spread from the seams.
// Speeds are in depth units per year; ranges cover 20 years.
type DiffusionRisk struct {
	HorizontalRisk     float64   `json:"horizontal_risk" yaml:"horizontal_risk"`
	VerticalRisk       float64   `json:"vertical_risk" yaml:"vertical_risk"`
	HorizontalSpeed    float64   `json:"est_horizontal_speed" yaml:"est_horizontal_speed"`
	VerticalSpeed      float64   `json:"est_vertical_speed" yaml:"est_vertical_speed"`
	HorizontalRange20y float64   `json:"horizontal_range_20y" yaml:"horizontal_range_20y"`
	VerticalRange20y   float64   `json:"vertical_range_20y" yaml:"vertical_range_20y"`
	RiskLevel          RiskLevel `json:"risk_level" yaml:"risk_level"`
}

// PollutionAssessment is the aggregate result of the pollution scorer.
type PollutionAssessment struct {
	Segments         []PollutionSegment `json:"segments" yaml:"segments"`
	OverallScore     float64            `json:"overall_score" yaml:"overall_score"`
	Grade            PollutionGrade     `json:"pollution_grade" yaml:"pollution_grade"`
	GradeDescription string             `json:"grade_description" yaml:"grade_description"`
	Impacts          Impacts            `json:"impacts" yaml:"impacts"`
	DiffusionRisk    DiffusionRisk      `json:"diffusion_risk" yaml:"diffusion_risk"`

	// DegradedReason is set when scoring failed and the neutral result was returned.
	DegradedReason string `json:"degraded_reason,omitempty" yaml:"degraded_reason,omitempty"`
}
