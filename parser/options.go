package parser

import "errors"

// ErrNoSexpSerializer is returned by the partiql facade's ToSexp when no
// parse_to_sexp collaborator was configured. AST-to-sexp rendering is an
// external collaborator this module never implements (spec §6); this error
// keeps that boundary honest instead of silently returning an empty string.
var ErrNoSexpSerializer = errors.New("partiql: no parse_to_sexp serializer configured")

// Options configures a Parser. The aggregate function set is injected
// rather than hard-coded (spec §6, §9), so a host application can extend
// PartiQL's aggregate surface without forking this package. The
// reserved-word and type-arity tables are fixed package tables and cannot be
// replaced through Options.
type Options struct {
	AggregateFunctions map[string]bool
}

// Option mutates an Options value being built up by New.
type Option func(*Options)

// DefaultAggregateFunctions is STANDARD_AGGREGATE_FUNCTIONS from spec §4.5.
func DefaultAggregateFunctions() map[string]bool {
	return map[string]bool{
		"count": true,
		"sum":   true,
		"min":   true,
		"max":   true,
		"avg":   true,
	}
}

func defaultOptions() Options {
	return Options{AggregateFunctions: DefaultAggregateFunctions()}
}

// WithAggregateFunctions replaces the default aggregate-function set.
func WithAggregateFunctions(names []string) Option {
	return func(o *Options) {
		set := make(map[string]bool, len(names))
		for _, n := range names {
			set[n] = true
		}
		o.AggregateFunctions = set
	}
}

func (o Options) isAggregateFunction(name string) bool {
	return o.AggregateFunctions[name]
}
