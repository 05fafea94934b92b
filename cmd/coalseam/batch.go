// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/coalseam/internal/history"
	"github.com/pdiddy/coalseam/internal/pipeline"
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>...",
	Short: "Assess many borehole logs concurrently",
	Long: `Batch runs the full assessment over every file with a bounded number of
workers. Each file is recorded under its own location (the file name without
extension) unless --location is given. A file that fails does not stop the
others; failures are listed at the end.

Reports are appended to the history in argument order after all files
finish, so trends within one batch only see records from earlier runs.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	area, err := areaFlag(cmd)
	if err != nil {
		return err
	}
	location, _ := cmd.Flags().GetString("location")
	noSave, _ := cmd.Flags().GetBool("no-save")

	cfg, err := pipelineConfig()
	if err != nil {
		return err
	}
	if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
		cfg.Batch.Workers = workers
	}
	p := pipeline.New(cfg, log)

	store, err := history.Open(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	jobs := make([]pipeline.Job, len(args))
	for i, path := range args {
		loc := location
		if loc == "" {
			loc = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		prior, err := store.Resources(ctx, history.QueryOptions{Location: loc})
		if err != nil {
			return err
		}
		jobs[i] = pipeline.Job{
			Path:    path,
			Request: pipeline.Request{Location: loc, Area: area, History: prior},
		}
	}

	w := cmd.OutOrStdout()
	results := p.Batch(ctx, jobs, cachedLoad())

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(w, "failed  %s: %v\n", r.Job.Path, r.Err)
			continue
		}
		if !noSave {
			if err := store.Append(ctx, r.Report); err != nil {
				failed++
				fmt.Fprintf(w, "failed  %s: saving report: %v\n", r.Job.Path, err)
				continue
			}
		}
		fmt.Fprintf(w, "done    %s [%s] %d layers, %.0f t, pollution %.1f (%s)\n",
			r.Job.Path, r.Report.Location, len(r.Report.Resources.Layers),
			r.Report.Resources.TotalResources, r.Report.Pollution.OverallScore, r.Report.Pollution.Grade)
	}

	fmt.Fprintf(w, "\nassessed: %d, failed: %d\n", len(results)-failed, failed)
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed", failed)
	}
	return nil
}

func init() {
	batchCmd.Flags().String("location", "", "location key for every file (default: file name)")
	batchCmd.Flags().String("area", "", "seam footprint in square meters (default from config)")
	batchCmd.Flags().Int("workers", 0, "concurrent assessments (default from config)")
	batchCmd.Flags().Bool("no-save", false, "do not record reports in the history")
	rootCmd.AddCommand(batchCmd)
}
