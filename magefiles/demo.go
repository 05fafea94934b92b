//go:build mage

package main

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const samplePath = "data/samples/borehole.csv"

// Sample writes a synthetic borehole log with two coal seams to data/samples/.
func Sample() error {
	mg.Deps(Init)

	f, err := os.Create(samplePath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", samplePath, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"depth", "deep_lateral_resistivity", "shallow_lateral_resistivity",
		"sonic_interval", "natural_gamma", "density"}); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(1))
	jitter := func(v, spread float64) string {
		return strconv.FormatFloat(v+(rng.Float64()-0.5)*spread, 'f', 2, 64)
	}
	for depth := 80.0; depth <= 220; depth += 0.5 {
		coal := (depth >= 110 && depth < 116) || (depth >= 170 && depth < 178.5)
		row := []string{strconv.FormatFloat(depth, 'f', 1, 64)}
		if coal {
			row = append(row, jitter(400, 100), jitter(350, 80), jitter(420, 60), jitter(45, 20), jitter(1.35, 0.2))
		} else {
			row = append(row, jitter(30, 20), jitter(25, 15), jitter(240, 40), jitter(95, 20), jitter(2.45, 0.2))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing %s: %w", samplePath, err)
	}
	fmt.Printf("Wrote %s\n", samplePath)
	return nil
}

// Demo builds the CLI and assesses the synthetic sample.
func Demo() error {
	mg.Deps(Build, Sample)
	return sh.RunV(filepath.Join(binDir, binName), "assess", samplePath, "--location", "demo")
}
