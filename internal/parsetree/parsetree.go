// Package parsetree is the Parser's internal intermediate representation
// (spec §3.2): a generic, loosely-typed tree the Pratt parser builds first,
// which a single lowering pass (see parser/lowering.go) then converts into
// the typed, exported ast package. Nothing in this package is part of the
// public contract; its only consumer is the parser package.
package parsetree

import (
	"github.com/partiql-lang/partiql-go/ast"
	"github.com/partiql-lang/partiql-go/lexer"
)

// ParseType tags what grammar production a Node came from. It is
// deliberately coarser than the AST's own type system: several ParseTypes
// lower to the same ast.ExprNode shape (e.g. every comparison operator is
// one NAry ParseType, distinguished by Op).
type ParseType string

const (
	TypeLiteral       ParseType = "LITERAL"
	TypeNull          ParseType = "NULL"
	TypeMissing       ParseType = "MISSING"
	TypeIdent         ParseType = "IDENT"
	TypeLexicalIdent  ParseType = "LEXICAL_IDENT" // @ident
	TypePath          ParseType = "PATH"
	TypeList          ParseType = "LIST"
	TypeBag           ParseType = "BAG"
	TypeStruct        ParseType = "STRUCT"
	TypeNAry          ParseType = "NARY"
	TypeNegatedNAry   ParseType = "NEGATED_NARY" // wraps a positive NAry with legacy_logical_not
	TypeTypedCast     ParseType = "TYPED_CAST"
	TypeTypedIs       ParseType = "TYPED_IS"
	TypeSimpleCase    ParseType = "SIMPLE_CASE"
	TypeSearchedCase  ParseType = "SEARCHED_CASE"
	TypeCall          ParseType = "CALL"
	TypeCallAgg       ParseType = "CALL_AGG"
	TypeCallAggStar   ParseType = "CALL_AGG_WILDCARD"
	TypeTypeName      ParseType = "TYPE_NAME"
	TypeSelect        ParseType = "SELECT"
	TypeSelectListStar       ParseType = "SELECT_LIST_STAR"
	TypeSelectListProjectAll ParseType = "SELECT_LIST_PROJECT_ALL"
	TypeSelectListItem       ParseType = "SELECT_LIST_ITEM"
	TypeSelectValue          ParseType = "SELECT_VALUE"
	TypeSelectPivot          ParseType = "SELECT_PIVOT"
	TypeFromExpr      ParseType = "FROM_EXPR"
	TypeFromUnpivot   ParseType = "FROM_UNPIVOT"
	TypeFromJoin      ParseType = "FROM_JOIN"
	TypeGroupBy       ParseType = "GROUP_BY"
	TypeGroupByItem   ParseType = "GROUP_BY_ITEM"

	TypePathComponentExpr     ParseType = "PATH_COMPONENT_EXPR"
	TypePathComponentWildcard ParseType = "PATH_COMPONENT_WILDCARD"
	TypePathComponentUnpivot  ParseType = "PATH_COMPONENT_UNPIVOT"

	TypeStructField ParseType = "STRUCT_FIELD"
)

// Node is one generic parse-tree node: a tag, the surface token it anchors
// to (for source location and, for leaves, payload), an ordered list of
// children, an optional free-form Op discriminator, and an optional
// alias carried by constructs that bind one (AS/AT/GROUP AS).
//
// There is deliberately no "remaining tokens" field here: the parser drives
// itself from a mutable cursor over an immutable token slice rather than
// threading a tail through every returned node (spec §9 design note — the
// tail-carrying ParseNode from the original design is replaced by the
// cursor approach, which is simpler in a language without cheap list
// tails).
type Node struct {
	Type     ParseType
	Anchor   lexer.Token
	Children []*Node
	Op       string
	Alias    string
	Alias2   string
	Flag     bool

	// DataType carries a fully-built ast.DataType for TypeTypeName nodes.
	// Type expressions have no further lowering to do — their shape at parse
	// time already matches their AST shape — so the parser builds the
	// ast.DataType directly here instead of round-tripping through a
	// type-specific parse-tree encoding.
	DataType *ast.DataType
}

// New builds a leaf or branch Node anchored at tok.
func New(typ ParseType, tok lexer.Token, children ...*Node) *Node {
	return &Node{Type: typ, Anchor: tok, Children: children}
}
