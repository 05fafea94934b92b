// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/coalseam/internal/forecast"
	"github.com/pdiddy/coalseam/internal/history"
	"github.com/pdiddy/coalseam/pkg/types"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Project a location's resource trend from its history",
	Long: `Forecast fits a straight line to the recorded total resources of one
location and extrapolates it over 180 days. It needs at least two records.
The projection is a trend line, not a probabilistic estimate.`,
	RunE: runForecast,
}

func runForecast(cmd *cobra.Command, args []string) error {
	location, _ := cmd.Flags().GetString("location")
	if location == "" {
		return fmt.Errorf("--location is required")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Resources(context.Background(), history.QueryOptions{Location: location})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	trend := forecast.Trend(records)
	if trend == nil {
		fmt.Fprintf(w, "%s has %d record(s); at least 2 are needed for a forecast.\n", location, len(records))
		return nil
	}

	format, _ := cmd.Flags().GetString("format")
	if done, err := encode(w, format, trend); done || err != nil {
		return err
	}
	printTrend(w, trend)
	return nil
}

func printTrend(w io.Writer, f *types.TrendForecast) {
	fmt.Fprintf(w, "trend over %d records: %+.1f t/day (intercept %.0f t)\n", f.Points, f.Slope, f.Intercept)
	for i, d := range f.PredictionDays {
		fmt.Fprintf(w, "  day %3d: %.0f t\n", d, f.PredictedValues[i])
	}
	if f.DepletionDate != nil {
		fmt.Fprintf(w, "projected depletion: %s\n", f.DepletionDate.Format("2006-01-02"))
	} else {
		fmt.Fprintln(w, "resources stable or growing; no depletion projected")
	}
}

func init() {
	forecastCmd.Flags().String("location", "", "location key to forecast")
	addFormatFlag(forecastCmd)
	rootCmd.AddCommand(forecastCmd)
}
