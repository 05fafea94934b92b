// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/coalseam/internal/dataset"
	"github.com/pdiddy/coalseam/internal/pipeline"
	"github.com/pdiddy/coalseam/pkg/types"
)

// encode writes v as JSON or YAML. It reports false for the text format
// so the caller can print its own table.
func encode(w io.Writer, format string, v any) (bool, error) {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return true, enc.Encode(v)
	case "text", "":
		return false, nil
	default:
		return false, fmt.Errorf("unsupported format %q: use text, json or yaml", format)
	}
}

func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "o", "text", "output format: text, json or yaml")
}

// newPipeline builds a pipeline from the effective config.
func newPipeline() (*pipeline.Pipeline, types.PipelineConfig, error) {
	cfg, err := pipelineConfig()
	if err != nil {
		return nil, cfg, err
	}
	return pipeline.New(cfg, log), cfg, nil
}

// loadDataset reads path and logs its size.
func loadDataset(path string) (*types.Dataset, error) {
	return readDataset(path, dataset.Load)
}

// cachedLoad returns a load function that parses each unchanged file once
// for the lifetime of one batch run, so a path listed twice is read once.
func cachedLoad() pipeline.LoadFunc {
	loader := dataset.NewLoader(10 * time.Minute)
	return func(path string) (*types.Dataset, error) {
		return readDataset(path, loader.Load)
	}
}

func readDataset(path string, load pipeline.LoadFunc) (*types.Dataset, error) {
	ds, err := load(path)
	if err != nil {
		return nil, err
	}
	min, max := ds.DepthRange()
	log.WithField("path", path).WithField("samples", ds.Len()).
		WithField("depth_min", min).WithField("depth_max", max).
		Debug("dataset loaded")
	return ds, nil
}

func printLayers(w io.Writer, layers []types.DepthRange) {
	if len(layers) == 0 {
		fmt.Fprintln(w, "No coal layers detected.")
		return
	}
	fmt.Fprintf(w, "%-5s  %10s  %10s  %10s\n", "Layer", "Start", "End", "Thickness")
	for i, l := range layers {
		fmt.Fprintf(w, "%-5d  %10.2f  %10.2f  %10.2f\n", i+1, l.Start, l.End, l.Thickness)
	}
}
