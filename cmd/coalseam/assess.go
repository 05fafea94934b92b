// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/coalseam/internal/history"
	"github.com/pdiddy/coalseam/internal/pipeline"
	"github.com/pdiddy/coalseam/pkg/types"
)

var assessCmd = &cobra.Command{
	Use:   "assess <file>",
	Short: "Run the full assessment and record it in the history",
	Long: `Assess runs seam detection, pollution scoring, resource estimation and
plan optimization over one borehole log. The result is appended to the
location's history, and once the location has two or more records the
report includes a linear resource trend.`,
	Args: cobra.ExactArgs(1),
	RunE: runAssess,
}

func runAssess(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	area, err := areaFlag(cmd)
	if err != nil {
		return err
	}
	location, _ := cmd.Flags().GetString("location")
	notes, _ := cmd.Flags().GetString("notes")
	noSave, _ := cmd.Flags().GetBool("no-save")

	p, cfg, err := newPipeline()
	if err != nil {
		return err
	}
	ds, err := loadDataset(args[0])
	if err != nil {
		return err
	}

	store, err := history.Open(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	prior, err := store.Resources(ctx, history.QueryOptions{Location: location})
	if err != nil {
		return err
	}

	report, err := p.Assess(ds, pipeline.Request{
		Location: location,
		Notes:    notes,
		Area:     area,
		History:  prior,
	})
	if err != nil {
		return err
	}

	if !noSave {
		if err := store.Append(ctx, report); err != nil {
			return fmt.Errorf("saving report: %w", err)
		}
	}

	format, _ := cmd.Flags().GetString("format")
	w := cmd.OutOrStdout()
	if done, err := encode(w, format, report); done || err != nil {
		return err
	}
	printReport(w, report)
	if !noSave {
		fmt.Fprintf(w, "\nsaved as %s\n", report.ID)
	}
	return nil
}

func printReport(w io.Writer, r *types.AssessmentReport) {
	fmt.Fprintf(w, "%s at %s (%s)\n\n", r.Source, r.Location, r.Timestamp.Format("2006-01-02 15:04:05"))
	printLayers(w, r.Detection.Layers)
	fmt.Fprintln(w)
	printPollution(w, r.Pollution)
	fmt.Fprintln(w)
	printResources(w, r.Resources)
	printPlan(w, r.Plan)
	if r.Trend != nil {
		fmt.Fprintln(w)
		printTrend(w, r.Trend)
	}
}

func init() {
	assessCmd.Flags().String("location", "unknown", "location key for the history series")
	assessCmd.Flags().String("notes", "", "free-form notes stored with the report")
	assessCmd.Flags().String("area", "", "seam footprint in square meters (default from config)")
	assessCmd.Flags().Bool("no-save", false, "do not record the report in the history")
	addFormatFlag(assessCmd)
	rootCmd.AddCommand(assessCmd)
}
