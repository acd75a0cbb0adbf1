// Package perrors implements the structured error surface shared by the
// lexer and parser: a closed ErrorCode enum, a free-form message, and a
// property bag carrying at least the offending source position plus
// code-specific properties (spec §3.4, §7). There is no exception
// hierarchy: every failure is one concrete *Error value.
package perrors

import (
	"fmt"

	"github.com/partiql-lang/partiql-go/pos"
)

// ErrorCode is PartiQL's closed taxonomy of lexical and parse failures, plus
// the downstream semantic codes the evaluator/analyzer contract reserves
// (spec §7; those are never raised by this module, only named here for
// interface completeness).
type ErrorCode string

const (
	// Lexical.
	LexInvalidChar       ErrorCode = "LEX_INVALID_CHAR"
	LexInvalidLiteral    ErrorCode = "LEX_INVALID_LITERAL"
	LexUnterminatedString ErrorCode = "LEX_UNTERMINATED_STRING"
	LexInvalidTimestamp  ErrorCode = "LEX_INVALID_TIMESTAMP"

	// Parse structural.
	ParseExpectedTokenType   ErrorCode = "PARSE_EXPECTED_TOKEN_TYPE"
	ParseExpected2TokenTypes ErrorCode = "PARSE_EXPECTED_2_TOKEN_TYPES"
	ParseExpectedExpression  ErrorCode = "PARSE_EXPECTED_EXPRESSION"
	ParseExpectedKeyword     ErrorCode = "PARSE_EXPECTED_KEYWORD"
	ParseUnexpectedToken     ErrorCode = "PARSE_UNEXPECTED_TOKEN"
	ParseUnexpectedTerm      ErrorCode = "PARSE_UNEXPECTED_TERM"
	ParseUnknownOperator     ErrorCode = "PARSE_UNKNOWN_OPERATOR"
	ParseMalformedParseTree  ErrorCode = "PARSE_MALFORMED_PARSE_TREE"

	// Parse semantic.
	ParseExpectedIdentForAlias                  ErrorCode = "PARSE_EXPECTED_IDENT_FOR_ALIAS"
	ParseExpectedIdentForAt                     ErrorCode = "PARSE_EXPECTED_IDENT_FOR_AT"
	ParseExpectedIdentForGroupName               ErrorCode = "PARSE_EXPECTED_IDENT_FOR_GROUP_NAME"
	ParseEmptySelect                             ErrorCode = "PARSE_EMPTY_SELECT"
	ParseSelectMissingFrom                       ErrorCode = "PARSE_SELECT_MISSING_FROM"
	ParseAsteriskIsNotAloneInSelectList          ErrorCode = "PARSE_ASTERISK_IS_NOT_ALONE_IN_SELECT_LIST"
	ParseInvalidPathComponent                    ErrorCode = "PARSE_INVALID_PATH_COMPONENT"
	ParseInvalidContextForWildcardInSelectList   ErrorCode = "PARSE_INVALID_CONTEXT_FOR_WILDCARD_IN_SELECT_LIST"
	ParseCannotMixSqbAndWildcardInSelectList     ErrorCode = "PARSE_CANNOT_MIX_SQB_AND_WILDCARD_IN_SELECT_LIST"
	ParseUnsupportedLiteralsGroupBy              ErrorCode = "PARSE_UNSUPPORTED_LITERALS_GROUPBY"
	ParseNonUnaryAgregateFunctionCall            ErrorCode = "PARSE_NON_UNARY_AGREGATE_FUNCTION_CALL"
	ParseUnsupportedCallWithStar                 ErrorCode = "PARSE_UNSUPPORTED_CALL_WITH_STAR"
	ParseCastArity                               ErrorCode = "PARSE_CAST_ARITY"
	ParseInvalidTypeParam                        ErrorCode = "PARSE_INVALID_TYPE_PARAM"
	ParseExpectedTypeName                        ErrorCode = "PARSE_EXPECTED_TYPE_NAME"
	ParseMissingIdentAfterAt                     ErrorCode = "PARSE_MISSING_IDENT_AFTER_AT"
	ParseExpectedLeftParen                       ErrorCode = "PARSE_EXPECTED_LEFT_PAREN"
	ParseExpectedRightParen                      ErrorCode = "PARSE_EXPECTED_RIGHT_PAREN"
	ParseExpectedArgumentDelimiter                ErrorCode = "PARSE_EXPECTED_ARGUMENT_DELIMITER"
	ParseExpectedWhenClause                      ErrorCode = "PARSE_EXPECTED_WHEN_CLAUSE"
	ParseExpectedDatePart                        ErrorCode = "PARSE_EXPECTED_DATE_PART"

	// Semantic (reported by downstream collaborators; reserved here only).
	SemanticHavingUsedWithoutGroupBy ErrorCode = "SEMANTIC_HAVING_USED_WITHOUT_GROUP_BY"
	EvaluatorBindingDoesNotExist     ErrorCode = "EVALUATOR_BINDING_DOES_NOT_EXIST"
)

// Well-known property bag keys (spec §3.4, §7).
const (
	PropLineNumber        = "LINE_NUMBER"
	PropColumnNumber      = "COLUMN_NUMBER"
	PropExpectedTokenType = "EXPECTED_TOKEN_TYPE"
	PropTokenType         = "TOKEN_TYPE"
	PropCastTo            = "CAST_TO"
	PropExpectedArityMin  = "EXPECTED_ARITY_MIN"
	PropExpectedArityMax  = "EXPECTED_ARITY_MAX"
	PropBindingName       = "BINDING_NAME"
	PropKeyword           = "KEYWORD"
	PropTokenText         = "TOKEN_TEXT"
)

// Error is the single concrete error type this module ever returns: a code,
// a human-readable message, and a property bag. There is no subclassing;
// callers branch on Code, not on Go type.
type Error struct {
	Code       ErrorCode
	Message    string
	Properties map[string]any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (line %v, column %v)", e.Code, e.Message,
		e.Properties[PropLineNumber], e.Properties[PropColumnNumber])
}

// New builds an Error at position p, seeding the property bag with the
// mandatory LINE_NUMBER/COLUMN_NUMBER entries, plus any extra key/value
// pairs passed as alternating string/any arguments.
func New(code ErrorCode, p pos.Position, message string, extra ...any) *Error {
	props := map[string]any{
		PropLineNumber:   p.Line,
		PropColumnNumber: p.Column,
	}
	for i := 0; i+1 < len(extra); i += 2 {
		key, ok := extra[i].(string)
		if !ok {
			continue
		}
		props[key] = extra[i+1]
	}
	return &Error{Code: code, Message: message, Properties: props}
}
