package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/partiql-lang/partiql-go"
	perrors "github.com/partiql-lang/partiql-go/errors"
)

// NewParseCmd creates the parse subcommand.
func NewParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <expression>",
		Short: "Parse a PartiQL expression and print its AST",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadEffectiveConfig()
	if err != nil {
		return oops.Code("CONFIG_INVALID").With("operation", "load config").Wrap(err)
	}

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return oops.Code("LOGGER_INIT_FAILED").With("operation", "build logger").Wrap(err)
	}
	defer logger.Sync() //nolint:errcheck

	text := args[0]
	start := time.Now()
	expr, err := partiql.ParseExpression(text, partiql.Options{AggregateFunctions: cfg.AggregateFunctions})
	elapsed := time.Since(start)
	if err != nil {
		var perr *perrors.Error
		if errors.As(err, &perr) {
			logger.Error("parse failed",
				zap.String("code", string(perr.Code)),
				zap.String("message", perr.Message),
				zap.Duration("elapsed", elapsed))
			return oops.Code(string(perr.Code)).With("properties", perr.Properties).Wrap(perr)
		}
		logger.Error("parse failed", zap.Error(err), zap.Duration("elapsed", elapsed))
		return oops.Code("PARSE_FAILED").With("operation", "parse expression").Wrap(err)
	}

	logger.Info("parsed",
		zap.String("expression", text),
		zap.Duration("elapsed", elapsed))
	cmd.Println(fmt.Sprintf("%#v", expr))
	return nil
}
