// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/coalseam/pkg/types"
)

var pollutionCmd = &cobra.Command{
	Use:   "pollution <file>",
	Short: "Score coal seam pollution over depth segments",
	Long: `Pollution splits the depth column into fixed-width segments, scores each
from 0 to 10, aggregates an overall 0-100 score and grade, and lists the
expected impacts and diffusion risk. When the log cannot be scored the
result is graded "unknown" and the reason is shown.`,
	Args: cobra.ExactArgs(1),
	RunE: runPollution,
}

func runPollution(cmd *cobra.Command, args []string) error {
	p, _, err := newPipeline()
	if err != nil {
		return err
	}
	ds, err := loadDataset(args[0])
	if err != nil {
		return err
	}

	a := p.Pollution(ds).Assessment

	format, _ := cmd.Flags().GetString("format")
	w := cmd.OutOrStdout()
	if done, err := encode(w, format, a); done || err != nil {
		return err
	}
	printPollution(w, a)
	return nil
}

func printPollution(w io.Writer, a types.PollutionAssessment) {
	fmt.Fprintf(w, "overall score: %.1f (%s)\n%s\n", a.OverallScore, a.Grade, a.GradeDescription)
	if a.DegradedReason != "" {
		fmt.Fprintf(w, "degraded: %s\n", a.DegradedReason)
	}

	if len(a.Segments) > 0 {
		fmt.Fprintf(w, "\n%-17s  %6s  %6s  %s\n", "Segment", "Coal%", "Level", "Pollutants")
		for _, s := range a.Segments {
			var names []string
			for _, p := range s.Pollutants {
				names = append(names, fmt.Sprintf("%s %.1f", p.Name, p.Level))
			}
			fmt.Fprintf(w, "%7.1f - %7.1f  %6.1f  %6.2f  %s\n",
				s.Start, s.End, s.CoalPercentage*100, s.PollutionLevel, strings.Join(names, ", "))
		}
	}

	if a.Impacts.Count() > 0 {
		fmt.Fprintln(w, "\nimpacts:")
	}
	for _, group := range []struct {
		name  string
		items []string
	}{
		{"ecological", a.Impacts.Ecological},
		{"water", a.Impacts.Water},
		{"soil", a.Impacts.Soil},
		{"health", a.Impacts.Health},
	} {
		for _, item := range group.items {
			fmt.Fprintf(w, "  [%s] %s\n", group.name, item)
		}
	}

	d := a.DiffusionRisk
	fmt.Fprintf(w, "\ndiffusion risk: %s (%s)\n", d.RiskLevel.Level, d.RiskLevel.Description)
	fmt.Fprintf(w, "  horizontal %.2f, %.2f/yr, %.1f in 20y\n", d.HorizontalRisk, d.HorizontalSpeed, d.HorizontalRange20y)
	fmt.Fprintf(w, "  vertical   %.2f, %.2f/yr, %.1f in 20y\n", d.VerticalRisk, d.VerticalSpeed, d.VerticalRange20y)
}

func init() {
	addFormatFlag(pollutionCmd)
	rootCmd.AddCommand(pollutionCmd)
}
