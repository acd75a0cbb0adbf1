package ast

import "github.com/partiql-lang/partiql-go/value"

// ExprNode is the sum type for every PartiQL expression node. Each concrete
// type implements it with a no-op marker method; consumers exhaustively
// type-switch rather than walking an inheritance chain (spec §9).
type ExprNode interface {
	exprNode()
}

// CaseSensitivity distinguishes quoted (case-sensitive) from unquoted
// (case-insensitive) identifier references.
type CaseSensitivity uint8

const (
	Insensitive CaseSensitivity = iota
	Sensitive
)

// ScopeQualifier distinguishes an ordinary variable lookup from one bound by
// the `@ident` lexical-scope-qualifier prefix.
type ScopeQualifier uint8

const (
	Unqualified ScopeQualifier = iota
	Lexical
)

// SetQuantifier is ALL or DISTINCT, used both on Select and on CallAgg.
type SetQuantifier uint8

const (
	All SetQuantifier = iota
	Distinct
)

// Literal wraps an opaque Value Builder literal, including NULL (carried as
// value.Null). MISSING is the one literal with its own node type,
// LiteralMissing.
type Literal struct {
	Value value.Value
	Metas Metas
}

func (*Literal) exprNode() {}

// LiteralMissing is the MISSING literal. Kept distinct from Literal so a
// MISSING token never needs a non-meaningful Value payload.
type LiteralMissing struct {
	Metas Metas
}

func (*LiteralMissing) exprNode() {}

// VariableReference is a bare identifier reference, not part of a longer
// path.
type VariableReference struct {
	Name            string
	CaseSensitivity CaseSensitivity
	ScopeQualifier  ScopeQualifier
	Metas           Metas
}

func (*VariableReference) exprNode() {}

// ListExprNode is an ordered `[ ... ]` list literal.
type ListExprNode struct {
	Items []ExprNode
	Metas Metas
}

func (*ListExprNode) exprNode() {}

// Bag is an unordered `<< ... >>` bag literal.
type Bag struct {
	Items []ExprNode
	Metas Metas
}

func (*Bag) exprNode() {}

// StructField is one `key : value` member of a Struct literal.
type StructField struct {
	Key   ExprNode
	Value ExprNode
}

// Struct is a `{ key: value, ... }` struct literal.
type Struct struct {
	Fields []StructField
	Metas  Metas
}

func (*Struct) exprNode() {}

// NAryOp is the closed set of n-ary expression operators.
type NAryOp string

const (
	OpNot     NAryOp = "NOT"
	OpAnd     NAryOp = "AND"
	OpOr      NAryOp = "OR"
	OpEq      NAryOp = "EQ"
	OpNe      NAryOp = "NE"
	OpLt      NAryOp = "LT"
	OpLte     NAryOp = "LTE"
	OpGt      NAryOp = "GT"
	OpGte     NAryOp = "GTE"
	OpPlus    NAryOp = "PLUS"
	OpMinus   NAryOp = "MINUS"
	OpStar    NAryOp = "STAR" // multiplication
	OpDiv     NAryOp = "DIV"
	OpMod     NAryOp = "MOD"
	OpConcat  NAryOp = "CONCAT"
	OpLike    NAryOp = "LIKE"
	OpIn      NAryOp = "IN"
	OpBetween NAryOp = "BETWEEN"
	OpCall    NAryOp = "CALL"
)

// NAry is the general n-ary expression node: unary NOT and unary +/-,
// binary arithmetic/comparison/logical operators, ternary LIKE/BETWEEN, and
// variable-arity function calls (CALL).
type NAry struct {
	Op    NAryOp
	Args  []ExprNode
	Metas Metas
}

func (*NAry) exprNode() {}

// TypedOp distinguishes the two operators that take a DataType as their
// right operand instead of an expression.
type TypedOp string

const (
	OpCast TypedOp = "CAST"
	OpIs   TypedOp = "IS"
)

// Typed is CAST(value AS type) or value IS type.
type Typed struct {
	Op       TypedOp
	Value    ExprNode
	DataType *DataType
	Metas    Metas
}

func (*Typed) exprNode() {}

// PathComponent is the sum type for one step of a Path.
type PathComponent interface {
	pathComponent()
}

// PathComponentExpr is a `.name` or `[expr]` step.
type PathComponentExpr struct {
	Expr            ExprNode
	CaseSensitivity CaseSensitivity
}

func (PathComponentExpr) pathComponent() {}

// PathComponentWildcard is a `[*]` step.
type PathComponentWildcard struct{}

func (PathComponentWildcard) pathComponent() {}

// PathComponentUnpivot is a `.* ` step.
type PathComponentUnpivot struct{}

func (PathComponentUnpivot) pathComponent() {}

// Path is a rooted navigation expression with at least one component (spec
// §3.3 invariant: a bare variable reference is never represented as a Path).
type Path struct {
	Root       ExprNode
	Components []PathComponent
	Metas      Metas
}

func (*Path) exprNode() {}

// CaseWhen is one WHEN branch, shared by SimpleCase and SearchedCase.
type CaseWhen struct {
	Cond   ExprNode
	Result ExprNode
}

// SimpleCase is `CASE value WHEN cond THEN result ... [ELSE else] END`.
type SimpleCase struct {
	Value       ExprNode
	WhenBranches []CaseWhen
	Else        ExprNode
	Metas       Metas
}

func (*SimpleCase) exprNode() {}

// SearchedCase is `CASE WHEN cond THEN result ... [ELSE else] END`.
type SearchedCase struct {
	WhenBranches []CaseWhen
	Else         ExprNode
	Metas        Metas
}

func (*SearchedCase) exprNode() {}

// CallAgg is an aggregate function invocation. It always has exactly one
// argument (spec §3.3 invariant); a wildcard argument (COUNT(*)) is
// represented by setting Wildcard and leaving Arg nil.
type CallAgg struct {
	FuncRef       string
	SetQuantifier SetQuantifier
	Arg           ExprNode
	Wildcard      bool
	Metas         Metas
}

func (*CallAgg) exprNode() {}

// Select is itself an ExprNode: PartiQL allows a SELECT to appear anywhere
// an expression can (subqueries, scalar subqueries, FROM-clause sources).
func (*Select) exprNode() {}
