// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/coalseam/internal/history"
	"github.com/pdiddy/coalseam/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded assessments (list, show, export, delete)",
	Long: `History manages the local SQLite record of assessments. Every assess or
batch run appends one resource and one pollution entry per location.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List history records",
	Long: `List shows the resource and pollution series of one location with
--location, or the most recent record of every location otherwise.`,
	RunE: runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	opts, err := historyOptsFromFlags(cmd)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	w := cmd.OutOrStdout()

	if opts.Location == "" {
		latest, err := store.Latest(ctx)
		if err != nil {
			return err
		}
		if done, err := encode(w, format, latest); done || err != nil {
			return err
		}
		printHistory(w, latest)
		return nil
	}

	resources, err := store.Resources(ctx, opts)
	if err != nil {
		return err
	}
	pollution, err := store.Pollution(ctx, opts)
	if err != nil {
		return err
	}

	out := struct {
		Resources []types.HistoryRecord   `json:"resource_history" yaml:"resource_history"`
		Pollution []types.PollutionRecord `json:"pollution_history" yaml:"pollution_history"`
	}{resources, pollution}
	if done, err := encode(w, format, out); done || err != nil {
		return err
	}
	printHistory(w, resources)
	if len(pollution) > 0 {
		fmt.Fprintln(w)
		for _, p := range pollution {
			fmt.Fprintf(w, "%-36s  %s  pollution %.1f (%s)\n",
				p.ID, p.Timestamp.Format("2006-01-02 15:04:05"), p.OverallScore, p.Grade)
		}
	}
	return nil
}

func printHistory(w io.Writer, records []types.HistoryRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No history records.")
		return
	}
	fmt.Fprintf(w, "%-36s  %-16s  %-19s  %16s  %s\n", "Key", "Location", "Timestamp", "Resources (t)", "Layers")
	fmt.Fprintln(w, strings.Repeat("-", 104))
	for _, r := range records {
		fmt.Fprintf(w, "%-36s  %-16s  %-19s  %16.0f  %d\n",
			r.ID, r.Location, r.Timestamp.Format("2006-01-02 15:04:05"), r.TotalResources, r.LayersCount)
	}
}

// --- show subcommand ---

var historyShowCmd = &cobra.Command{
	Use:   "show <key>",
	Short: "Show the full report of a history record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		report, err := store.Report(context.Background(), args[0])
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		w := cmd.OutOrStdout()
		if done, err := encode(w, format, report); done || err != nil {
			return err
		}
		printReport(w, report)
		return nil
	},
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export history to YAML or JSON",
	Long: `Export writes the history (or the subset matching the filter flags) to
history/export.yaml or export.json under the data directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		opts, err := historyOptsFromFlags(cmd)
		if err != nil {
			return err
		}

		var path string
		switch format, _ := cmd.Flags().GetString("format"); format {
		case "yaml", "":
			path, err = store.ExportYAML(context.Background(), opts)
		case "json":
			path, err = store.ExportJSON(context.Background(), opts)
		default:
			return fmt.Errorf("unsupported format %q: use yaml or json", format)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
		return nil
	},
}

// --- delete subcommand ---

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete a history record and its report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Delete(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	},
}

// --- shared helpers ---

func openStore() (*history.Store, error) {
	cfg, err := pipelineConfig()
	if err != nil {
		return nil, err
	}
	return history.Open(cfg.History)
}

func historyOptsFromFlags(cmd *cobra.Command) (history.QueryOptions, error) {
	var opts history.QueryOptions
	opts.Location, _ = cmd.Flags().GetString("location")
	opts.MaxResults, _ = cmd.Flags().GetInt("limit")

	for _, f := range []struct {
		name string
		dst  *time.Time
	}{
		{"since", &opts.Since},
		{"until", &opts.Until},
	} {
		v, _ := cmd.Flags().GetString(f.name)
		if v == "" {
			continue
		}
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return opts, fmt.Errorf("invalid --%s %q: use YYYY-MM-DD", f.name, v)
		}
		if f.name == "until" {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		*f.dst = t
	}
	return opts, nil
}

func addHistoryFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("location", "", "filter by location")
	cmd.Flags().String("since", "", "records on or after this date (YYYY-MM-DD)")
	cmd.Flags().String("until", "", "records on or before this date (YYYY-MM-DD)")
	cmd.Flags().Int("limit", 0, "keep only the most recent records (0 = all)")
}

func init() {
	addHistoryFilterFlags(historyListCmd)
	addFormatFlag(historyListCmd)

	addFormatFlag(historyShowCmd)

	addHistoryFilterFlags(historyExportCmd)
	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyDeleteCmd)

	rootCmd.AddCommand(historyCmd)
}
