// Package partiql is the public entry point of this module: parse PartiQL
// expression text into the AST defined by the ast package.
//
// Design:
//   - A hand-rolled, single-pass lexer with O(1) length-bucketed keyword
//     recognition (package lexer)
//   - A Pratt (top-down operator precedence) expression parser over an
//     arena-backed internal parse tree (package parser, package
//     internal/parsetree)
//   - A single lowering pass from parse tree to a closed, tagged AST
//     (package ast)
//   - Injectable aggregate-function set so a host application can extend
//     the builtin surface without forking this module
//
// Usage:
//
//	expr, err := partiql.ParseExpression("SELECT v.name FROM data AS v WHERE v.age > 21", partiql.Options{})
//	expr, err := partiql.ParseExpression(text, partiql.Options{AggregateFunctions: []string{"count", "stddev"}})
package partiql

import (
	"github.com/partiql-lang/partiql-go/ast"
	perrors "github.com/partiql-lang/partiql-go/errors"
	"github.com/partiql-lang/partiql-go/parser"
)

// Re-export the types callers need so they only ever import this package.
type (
	ExprNode  = ast.ExprNode
	Select    = ast.Select
	DataType  = ast.DataType
	Error     = perrors.Error
	ErrorCode = perrors.ErrorCode
)

// Options configures ParseExpression and the optional AST-to-sexp
// collaborator. It is a plain struct rather than the functional-options
// pattern parser.Option uses internally, since ParseToSexp is config data,
// not a parser behavior to compose.
type Options struct {
	// AggregateFunctions overrides the default aggregate-function set
	// (COUNT, SUM, MIN, MAX, AVG) recognized during parsing. A nil or
	// empty slice keeps the default set.
	AggregateFunctions []string

	// ParseToSexp, if set, lets ToSexp render an AST back to PartiQL's
	// s-expression notation. Rendering an AST to sexp text is an external
	// collaborator (spec §6) this module does not implement; ToSexp
	// returns parser.ErrNoSexpSerializer when this is nil.
	ParseToSexp func(ast.ExprNode) (string, error)
}

func (o Options) parserOptions() []parser.Option {
	if len(o.AggregateFunctions) == 0 {
		return nil
	}
	return []parser.Option{parser.WithAggregateFunctions(o.AggregateFunctions)}
}

// ParseExpression parses a single PartiQL expression from text (spec §6:
// parse_expression(text) -> AST). Lexical and syntactic failures are
// returned as *Error; callers that need to branch on failure kind should
// type-assert the error to *Error and switch on its Code.
func ParseExpression(text string, opts Options) (ExprNode, error) {
	return parser.ParseExpression(text, opts.parserOptions()...)
}

// ToSexp renders expr through opts.ParseToSexp. It returns
// parser.ErrNoSexpSerializer when no serializer was configured, keeping the
// sexp-rendering boundary (spec §6) explicit instead of silently succeeding
// with an empty result.
func ToSexp(expr ExprNode, opts Options) (string, error) {
	if opts.ParseToSexp == nil {
		return "", parser.ErrNoSexpSerializer
	}
	return opts.ParseToSexp(expr)
}

// DefaultAggregateFunctions is the out-of-the-box aggregate-function set.
func DefaultAggregateFunctions() map[string]bool {
	return parser.DefaultAggregateFunctions()
}
