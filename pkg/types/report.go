// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// AssessmentReport is the full output of one pipeline run. It is plain
// nested data suitable for JSON or YAML encoding.
type AssessmentReport struct {
	ID        string    `json:"id" yaml:"id"`
	Location  string    `json:"location" yaml:"location"`
	Notes     string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	Source    string    `json:"filename" yaml:"filename"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	Detection DetectionResult     `json:"detection" yaml:"detection"`
	Pollution PollutionAssessment `json:"pollution" yaml:"pollution"`
	Resources ResourceSummary     `json:"resources" yaml:"resources"`
	Plan      MiningPlan          `json:"plan" yaml:"plan"`

	// Trend is nil when fewer than two history points exist for the location.
	Trend *TrendForecast `json:"trend_data,omitempty" yaml:"trend_data,omitempty"`
}

// HistoryRecord returns the time-series entry the caller appends for this report.
func (r *AssessmentReport) HistoryRecord() HistoryRecord {
	return HistoryRecord{
		ID:             r.ID,
		Location:       r.Location,
		Timestamp:      r.Timestamp,
		TotalResources: r.Resources.TotalResources,
		LayersCount:    len(r.Resources.Layers),
	}
}

// PollutionRecord returns the pollution history entry for this report.
func (r *AssessmentReport) PollutionRecord() PollutionRecord {
	return PollutionRecord{
		ID:           r.ID,
		Location:     r.Location,
		Timestamp:    r.Timestamp,
		OverallScore: r.Pollution.OverallScore,
		Grade:        r.Pollution.Grade,
	}
}
