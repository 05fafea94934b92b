// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/coalseam/internal/resource"
	"github.com/pdiddy/coalseam/pkg/types"
)

var resourcesCmd = &cobra.Command{
	Use:   "resources <file>",
	Short: "Estimate coal resources and an extraction plan",
	Long: `Resources computes volume and tonnage for every detected layer over the
given footprint, grades quality and mining difficulty, and orders the layers
into an extraction plan with a recommended method and expected recovery.`,
	Args: cobra.ExactArgs(1),
	RunE: runResources,
}

// areaFlag returns the --area value, or zero when unset so the configured
// default applies.
func areaFlag(cmd *cobra.Command) (float64, error) {
	raw, _ := cmd.Flags().GetString("area")
	if raw == "" {
		return 0, nil
	}
	return resource.ParseArea(raw)
}

func runResources(cmd *cobra.Command, args []string) error {
	area, err := areaFlag(cmd)
	if err != nil {
		return err
	}
	p, _, err := newPipeline()
	if err != nil {
		return err
	}
	ds, err := loadDataset(args[0])
	if err != nil {
		return err
	}

	summary, plan, err := p.Resources(ds, area)
	if err != nil {
		return err
	}

	out := struct {
		Resources types.ResourceSummary `json:"resources" yaml:"resources"`
		Plan      types.MiningPlan      `json:"plan" yaml:"plan"`
	}{summary, plan}

	format, _ := cmd.Flags().GetString("format")
	w := cmd.OutOrStdout()
	if done, err := encode(w, format, out); done || err != nil {
		return err
	}
	printResources(w, summary)
	printPlan(w, plan)
	return nil
}

func printResources(w io.Writer, s types.ResourceSummary) {
	fmt.Fprintf(w, "total resources: %.0f t over %.0f m² (volume %.0f m³)\n",
		s.TotalResources, s.AreaSquareMeters, s.TotalVolume)
	if len(s.Layers) == 0 {
		fmt.Fprintln(w, "No coal layers detected.")
		return
	}

	fmt.Fprintf(w, "\n%-5s  %-17s  %8s  %12s  %-16s  %-18s\n",
		"Layer", "Depth", "Density", "Mass (t)", "Quality", "Difficulty")
	for _, l := range s.Layers {
		fmt.Fprintf(w, "%-5d  %7.1f - %7.1f  %8.3f  %12.0f  %-16s  %-18s\n",
			l.Number, l.Start, l.End, l.Density, l.MassTons,
			fmt.Sprintf("%.1f %s", l.Quality.Score, l.Quality.Grade),
			fmt.Sprintf("%.2f %s", l.Difficulty.Score, l.Difficulty.Grade))
	}
}

func printPlan(w io.Writer, p types.MiningPlan) {
	if len(p.Entries) == 0 {
		return
	}
	fmt.Fprintf(w, "\nextraction plan (base rate %.0f%%):\n", p.ExtractionRate*100)
	for _, e := range p.Entries {
		fmt.Fprintf(w, "%d. layer %d (%s) priority %.1f: %s, recovery %.1f%%, output %.0f t\n",
			e.Order, e.Layer, e.DepthRange, e.PriorityScore, e.RecommendedMethod,
			e.ExpectedRecoveryRate*100, e.ExpectedOutputTons)
		fmt.Fprintf(w, "   %s\n", e.MethodDetails)
	}
	fmt.Fprintf(w, "expected output: %.0f t\n", p.ExpectedOutputTons())
}

func init() {
	resourcesCmd.Flags().String("area", "", "seam footprint in square meters (default from config)")
	addFormatFlag(resourcesCmd)
	rootCmd.AddCommand(resourcesCmd)
}
