// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package forecast fits a linear trend to a location's resource history
// and extrapolates it.
package forecast

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/pdiddy/coalseam/pkg/types"
)

const (
	// Horizon is the projection window in days from the earliest record.
	Horizon = 180
	// Step is the spacing of projected points in days.
	Step = 30

	day = 24 * time.Hour
)

// LatestDepletion is the furthest depletion date reported. Later dates
// cannot be encoded as RFC 3339 timestamps.
var LatestDepletion = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

// Trend fits total resources against elapsed days since the earliest
// record by ordinary least squares. It returns nil when fewer than two
// records are available. Records need not be sorted.
func Trend(records []types.HistoryRecord) *types.TrendForecast {
	if len(records) < 2 {
		return nil
	}

	sorted := make([]types.HistoryRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	origin := sorted[0].Timestamp
	xs := make([]float64, len(sorted))
	ys := make([]float64, len(sorted))
	for i, r := range sorted {
		xs[i] = r.Timestamp.Sub(origin).Hours() / 24
		ys[i] = r.TotalResources
	}

	intercept, slope := fit(xs, ys)

	f := &types.TrendForecast{
		Slope:     slope,
		Intercept: intercept,
		Points:    len(sorted),
	}
	for d := 0; d < Horizon; d += Step {
		f.PredictionDays = append(f.PredictionDays, d)
		f.PredictedValues = append(f.PredictedValues, intercept+slope*float64(d))
	}

	if slope < 0 {
		last := sorted[len(sorted)-1]
		depletion := addDays(last.Timestamp, -last.TotalResources/slope)
		f.DepletionDate = &depletion
	}
	return f
}

// addDays advances t by a possibly fractional number of days. Whole days go
// through the calendar so spans beyond the range of time.Duration stay
// correct. Results are capped at LatestDepletion.
func addDays(t time.Time, days float64) time.Time {
	if days <= 0 {
		return t
	}
	limit := float64(LatestDepletion.Unix()-t.Unix()) / 86400
	if days >= limit {
		return LatestDepletion.In(t.Location())
	}
	whole, frac := math.Modf(days)
	return t.AddDate(0, 0, int(whole)).Add(time.Duration(frac * float64(day)))
}

// fit returns the least-squares line. When every record shares one
// timestamp the line is flat through the mean.
func fit(xs, ys []float64) (intercept, slope float64) {
	if stat.Variance(xs, nil) == 0 {
		return stat.Mean(ys, nil), 0
	}
	intercept, slope = stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(slope) {
		return stat.Mean(ys, nil), 0
	}
	return intercept, slope
}
