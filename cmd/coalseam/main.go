// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the coalseam CLI.
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/coalseam/internal/resource"
	"github.com/pdiddy/coalseam/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var log = logrus.New()

// rootCmd is the base command for the coalseam CLI.
var rootCmd = &cobra.Command{
	Use:   "coalseam",
	Short: "Coal seam assessment from borehole geophysical logs",
	Long: `coalseam reads borehole log measurements (depth, dual-lateral resistivity,
sonic interval, natural gamma, density) from CSV or XLSX files and derives an
engineering assessment of the coal seams they cross.

Each stage is a subcommand: detect finds the seams, pollution scores them,
resources estimates tonnage and an extraction plan, and assess runs everything
and records the result in the local history used by forecast.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return configureLogging(cmd)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./coalseam.yaml or ~/.config/coalseam/coalseam.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

// initConfig loads the built-in defaults, then merges the config file and
// COALSEAM_* environment variables over them.
func initConfig() {
	defaults, err := yaml.Marshal(types.DefaultPipelineConfig())
	if err != nil {
		fmt.Fprintln(os.Stderr, "encoding default config:", err)
		os.Exit(1)
	}
	viper.SetConfigType("yaml")
	if err := viper.ReadConfig(bytes.NewReader(defaults)); err != nil {
		fmt.Fprintln(os.Stderr, "loading default config:", err)
		os.Exit(1)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("coalseam")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "coalseam"))
		}
	}

	viper.SetEnvPrefix("COALSEAM")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.MergeInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintln(os.Stderr, "reading config file:", err)
		os.Exit(1)
	}
}

// pipelineConfig returns the effective configuration.
func pipelineConfig() (types.PipelineConfig, error) {
	cfg := types.DefaultPipelineConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	if err := resource.ValidateConfig(cfg.Resource); err != nil {
		return cfg, fmt.Errorf("resource config: %w", err)
	}
	return cfg, nil
}

func configureLogging(cmd *cobra.Command) error {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		log.SetLevel(logrus.DebugLevel)
		return nil
	}

	level, err := logrus.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	log.SetLevel(level)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
