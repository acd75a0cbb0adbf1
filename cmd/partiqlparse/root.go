package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Global flags available to all subcommands.
var (
	configFile             string
	verboseFlag            bool
	aggregateFunctionsFlag []string
)

// NewRootCmd creates the root command for the partiqlparse CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "partiqlparse",
		Short: "partiqlparse parses PartiQL expression text into an AST",
		Long: `partiqlparse is a command-line front end for the partiql module:
it reads PartiQL expression text and reports either a parsed AST summary
or a structured parse error.`,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (default: search for .partiqlparse.yaml)")
	cmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "enable development-mode logging")
	cmd.PersistentFlags().StringSliceVar(&aggregateFunctionsFlag, "aggregate-functions", nil, "override the recognized aggregate function names")

	cmd.AddCommand(NewParseCmd())
	return cmd
}

// loadEffectiveConfig merges .partiqlparse.yaml with flag overrides. A
// missing config file falls back to the zero Config rather than failing,
// since a config file is optional.
func loadEffectiveConfig() (*Config, error) {
	cfg := &Config{}
	if configFile != "" {
		loaded, err := LoadConfigFile(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else if dir, err := os.Getwd(); err == nil {
		loaded, err := LoadConfig(dir)
		switch {
		case err == nil:
			cfg = loaded
		case errors.Is(err, ErrConfigNotFound):
			// no config file present, defaults apply
		default:
			return nil, err
		}
	}

	if verboseFlag {
		cfg.Verbose = true
	}
	if len(aggregateFunctionsFlag) > 0 {
		cfg.AggregateFunctions = aggregateFunctionsFlag
	}
	return cfg, nil
}

// newLogger builds the structured logger for one CLI invocation: verbose
// mode gets human-readable development logging, everything else gets
// production JSON logging.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
