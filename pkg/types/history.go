// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HistoryRecord is one resource assessment in a location's time series.
type HistoryRecord struct {
	ID             string    `json:"key" yaml:"key"`
	Location       string    `json:"location" yaml:"location"`
	Timestamp      time.Time `json:"timestamp" yaml:"timestamp"`
	TotalResources float64   `json:"total_resources" yaml:"total_resources"`
	LayersCount    int       `json:"layers_count" yaml:"layers_count"`
}

// PollutionRecord is one pollution assessment in a location's history.
type PollutionRecord struct {
	ID           string         `json:"key" yaml:"key"`
	Location     string         `json:"location" yaml:"location"`
	Timestamp    time.Time      `json:"timestamp" yaml:"timestamp"`
	OverallScore float64        `json:"overall_score" yaml:"overall_score"`
	Grade        PollutionGrade `json:"pollution_grade" yaml:"pollution_grade"`
}

// TrendForecast is a linear trend fitted to a location's resource history.
// It is a trend line, not a probabilistic estimate.
type TrendForecast struct {
	Slope     float64 `json:"model_slope" yaml:"model_slope"`
	Intercept float64 `json:"model_intercept" yaml:"model_intercept"`

	// PredictionDays are offsets in days from the earliest record.
	PredictionDays  []int     `json:"prediction_days" yaml:"prediction_days"`
	PredictedValues []float64 `json:"predicted_values" yaml:"predicted_values"`

	// DepletionDate is nil unless the trend is declining.
	DepletionDate *time.Time `json:"depletion_date,omitempty" yaml:"depletion_date,omitempty"`

	Points int `json:"points" yaml:"points"`
}

// Declining reports whether resources trend downward.
func (f TrendForecast) Declining() bool {
	return f.Slope < 0
}
