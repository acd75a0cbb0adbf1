// Package value implements the Value Builder: it converts lexer literal
// lexemes into opaque values of PartiQL's document data model (integers,
// decimals, strings, booleans, null, timestamps, symbols) and supplies the
// singleton TRUE, NULL, and MISSING values the parser attaches to literal
// AST nodes.
//
// The type is deliberately opaque to the parser: callers of this package
// (the evaluator, the static type checker) are the ones expected to
// interpret a Value's Kind and unwrap its payload; the parser constructs and
// threads Values through, and inspects them only to check that a type
// parameter is an unsigned integer.
package value

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the closed tag set for the document data model's scalar types.
type Kind uint8

const (
	KindNull Kind = iota
	KindMissing
	KindBoolean
	KindInteger
	KindDecimal
	KindString
	KindSymbol
	KindTimestamp
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "NULL"
	case KindMissing:
		return "MISSING"
	case KindBoolean:
		return "BOOLEAN"
	case KindInteger:
		return "INTEGER"
	case KindDecimal:
		return "DECIMAL"
	case KindString:
		return "STRING"
	case KindSymbol:
		return "SYMBOL"
	case KindTimestamp:
		return "TIMESTAMP"
	default:
		return "UNKNOWN"
	}
}

// Value is an opaque, immutable scalar from the PartiQL document data model.
// The zero Value is not valid; use the constructors or the Null/Missing/True
// singletons below.
type Value struct {
	kind    Kind
	boolean bool
	integer int64
	decimal decimal.Decimal
	text    string // backing text for STRING and SYMBOL
	ts      time.Time
	tsText  string // original timestamp lexeme, preserved for round-tripping
}

// Kind reports the value's data-model tag.
func (v Value) Kind() Kind { return v.kind }

// Singletons shared across every parse; safe for concurrent use since Value
// is an immutable value type.
var (
	Null    = Value{kind: KindNull}
	Missing = Value{kind: KindMissing}
	True    = Value{kind: KindBoolean, boolean: true}
	False   = Value{kind: KindBoolean, boolean: false}
)

// NewBoolean returns True or False.
func NewBoolean(b bool) Value {
	if b {
		return True
	}
	return False
}

// NewIntegerFromLexeme parses a lexer integer lexeme (decimal digits only,
// optionally preceded by a sign already stripped by the caller) into an
// integer Value.
func NewIntegerFromLexeme(lexeme string) (Value, error) {
	n, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return Value{}, fmt.Errorf("invalid integer literal %q: %w", lexeme, err)
	}
	return Value{kind: KindInteger, integer: n}, nil
}

// NewDecimalFromLexeme parses a lexer decimal lexeme (digits, optional
// fractional part, optional exponent) into an exact-precision decimal Value.
func NewDecimalFromLexeme(lexeme string) (Value, error) {
	d, err := decimal.NewFromString(lexeme)
	if err != nil {
		return Value{}, fmt.Errorf("invalid decimal literal %q: %w", lexeme, err)
	}
	return Value{kind: KindDecimal, decimal: d}, nil
}

// NewString builds a STRING value from an already-unescaped Go string.
func NewString(s string) Value {
	return Value{kind: KindString, text: s}
}

// NewSymbol builds a SYMBOL value. The parser uses it for the TRIM
// specification and EXTRACT date-part keywords (e.g. leading, year) that it
// carries as literal call arguments.
func NewSymbol(s string) Value {
	return Value{kind: KindSymbol, text: s}
}

// NewTimestampFromLexeme parses a backtick-delimited timestamp lexeme body
// (ISO-8601, PartiQL's surface syntax for `` `...` `` timestamps) into a
// timestamp Value. The original lexeme text is preserved alongside the
// parsed time.Time so formatting can round-trip precision the time package
// would otherwise normalize away (e.g. `2001T`, a year-only timestamp).
func NewTimestampFromLexeme(lexeme string) (Value, error) {
	t, err := parseTimestampLexeme(lexeme)
	if err != nil {
		return Value{}, err
	}
	return Value{kind: KindTimestamp, ts: t, tsText: lexeme}, nil
}

// parseTimestampLexeme accepts the PartiQL/Ion timestamp grammar's common
// forms: year-only (`2001T`), date (`2001-01-01`), and full datetime with an
// optional fractional second and offset.
func parseTimestampLexeme(lexeme string) (time.Time, error) {
	body := strings.TrimSuffix(lexeme, "T")
	layouts := []string{
		"2006",
		"2006-01",
		"2006-01-02",
		"2006-01-02T15:04Z07:00",
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02T15:04:05.999999999Z07:00",
		time.RFC3339Nano,
		time.RFC3339,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, body); err == nil {
			return t, nil
		}
		if t, err := time.Parse(layout, lexeme); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp literal %q", lexeme)
}

// Boolean returns the bool payload; only meaningful when Kind() == KindBoolean.
func (v Value) Boolean() bool { return v.boolean }

// Integer returns the int64 payload; only meaningful when Kind() == KindInteger.
func (v Value) Integer() int64 { return v.integer }

// Decimal returns the decimal payload; only meaningful when Kind() == KindDecimal.
func (v Value) Decimal() decimal.Decimal { return v.decimal }

// Text returns the string payload for STRING/SYMBOL values.
func (v Value) Text() string { return v.text }

// Timestamp returns the parsed time payload; only meaningful when Kind() == KindTimestamp.
func (v Value) Timestamp() time.Time { return v.ts }

// TimestampText returns the original source lexeme for a timestamp value.
func (v Value) TimestampText() string { return v.tsText }

// IsUnsignedIntegerLexeme reports whether lexeme is composed entirely of
// decimal digits, i.e. it is a valid CAST/DataType type-parameter literal
// (PartiQL type arguments like `VARCHAR(10)` must be unsigned integers).
func IsUnsignedIntegerLexeme(lexeme string) bool {
	if lexeme == "" {
		return false
	}
	for i := 0; i < len(lexeme); i++ {
		if lexeme[i] < '0' || lexeme[i] > '9' {
			return false
		}
	}
	return true
}

// IsUnsignedInteger reports whether v is an INTEGER value that is >= 0. This
// is the Value-model predicate the external evaluator/analyzer contract
// requires (spec §6).
func IsUnsignedInteger(v Value) bool {
	return v.kind == KindInteger && v.integer >= 0
}

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindMissing:
		return "MISSING"
	case KindBoolean:
		if v.boolean {
			return "TRUE"
		}
		return "FALSE"
	case KindInteger:
		return strconv.FormatInt(v.integer, 10)
	case KindDecimal:
		return v.decimal.String()
	case KindString:
		return v.text
	case KindSymbol:
		return v.text
	case KindTimestamp:
		return v.tsText
	default:
		return "<invalid value>"
	}
}
