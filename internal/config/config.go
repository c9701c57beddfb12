// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"runtime"

	"github.com/iwvelando/sum-match/internal/solver"
	"github.com/iwvelando/sum-match/pkg/constants"
	"github.com/iwvelando/sum-match/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for sum-match.
type Configuration struct {
	Input   InputConfig   `yaml:"input,omitempty"`
	Search  SearchConfig  `yaml:"search"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
}

// InputConfig points at the data file holding the ordered value list.
type InputConfig struct {
	File string `yaml:"file,omitempty"`
}

// SearchConfig holds the search parameters.
type SearchConfig struct {
	Target           float64 `yaml:"target"`
	Tolerance        float64 `yaml:"tolerance,omitempty"`
	Mode             string  `yaml:"mode,omitempty"`      // first, all
	Algorithm        string  `yaml:"algorithm,omitempty"` // auto, bit-enum, meet-middle, dp, branch-bound
	Workers          int     `yaml:"workers,omitempty"`
	AllowEmptySubset bool    `yaml:"allowEmptySubset,omitempty"`
	MaxTableCells    int64   `yaml:"maxTableCells,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
	File   string `yaml:"file,omitempty"`   // optional export path; stdout when empty
}

// LoadConfiguration takes a file path as input and loads the
// YAML-formatted configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ValidateConfiguration performs configuration validation and returns
// warnings for suspicious but workable settings.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	warnings = append(warnings, validation.SearchWarnings(conf.Search.Target, conf.Search.Tolerance)...)

	if conf.Search.Workers > runtime.NumCPU() {
		warnings = append(warnings, fmt.Sprintf(
			"workers (%d) exceeds available CPU cores (%d)", conf.Search.Workers, runtime.NumCPU()))
	}
	if conf.Search.Tolerance < 0 {
		warnings = append(warnings, "tolerance is negative and will be rejected by the solver")
	}
	return warnings
}

// SolverOptions translates the configuration into solver options.
func (conf *Configuration) SolverOptions() (solver.Options, error) {
	mode, err := solver.ParseMode(conf.Search.Mode)
	if err != nil {
		return solver.Options{}, err
	}
	algorithm, err := solver.ParseAlgorithm(conf.Search.Algorithm)
	if err != nil {
		return solver.Options{}, err
	}
	opts := solver.Options{
		Mode:             mode,
		Algorithm:        algorithm,
		Workers:          conf.Search.Workers,
		AllowEmptySubset: conf.Search.AllowEmptySubset,
		MaxTableCells:    conf.Search.MaxTableCells,
	}
	return opts, nil
}

// OutputFormat resolves the effective output format with a CLI override
// taking precedence.
func (conf *Configuration) OutputFormat(override string) string {
	format := conf.Output.Format
	if override != "" {
		format = override
	}
	if format == "" {
		format = constants.OutputFormatPretty
	}
	return format
}
