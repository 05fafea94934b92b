// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var detectCmd = &cobra.Command{
	Use:   "detect <file>",
	Short: "Detect coal seams in a borehole log",
	Long: `Detect classifies every sample against the coal thresholds (dual-lateral
resistivity, sonic interval, natural gamma, density) and groups the coal
samples into contiguous layers.`,
	Args: cobra.ExactArgs(1),
	RunE: runDetect,
}

func runDetect(cmd *cobra.Command, args []string) error {
	p, _, err := newPipeline()
	if err != nil {
		return err
	}
	ds, err := loadDataset(args[0])
	if err != nil {
		return err
	}

	det := p.Detect(ds)

	format, _ := cmd.Flags().GetString("format")
	w := cmd.OutOrStdout()
	if done, err := encode(w, format, det); done || err != nil {
		return err
	}

	fmt.Fprintf(w, "%s: %d of %d samples are coal, depth %.2f-%.2f\n",
		ds.Source, det.CoalSamples, det.TotalSamples, det.MinDepth, det.MaxDepth)
	printLayers(w, det.Layers)
	fmt.Fprintf(w, "\ntotal thickness: %.2f\n", det.TotalThickness)
	return nil
}

func init() {
	addFormatFlag(detectCmd)
	rootCmd.AddCommand(detectCmd)
}
