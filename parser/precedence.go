package parser

import "github.com/partiql-lang/partiql-go/lexer"

// Precedence levels, lowest to highest, per spec §4.2. Path suffix binding
// (level 11) is not modeled here: it is applied eagerly right after every
// primary/unary term is parsed (see parsePathSuffixes in path.go), which has
// the same effect as giving it the tightest binding power without needing a
// dedicated entry in the infix dispatch table.
const (
	precLowest = iota
	precOr
	precAnd
	precNot // NOT's prefix operand binds here: above AND/OR, below comparison
	precComparison // =, <>, !=, is, is_not
	precRelational // <, <=, >, >=
	precInLikeBetween
	precConcat
	precAdd
	precMul
	precUnary
)

// infixPrec reports the left-binding precedence of tok when it appears in
// infix position, and whether tok is an infix operator at all.
func infixPrec(tok lexer.Token) (int, bool) {
	switch tok.Type {
	case lexer.KEYWORD:
		switch tok.Text {
		case "or":
			return precOr, true
		case "and":
			return precAnd, true
		case "is", "is_not":
			return precComparison, true
		case "in", "not_in", "like", "not_like", "between", "not_between":
			return precInLikeBetween, true
		}
	case lexer.OPERATOR:
		switch tok.Text {
		case "=", "<>", "!=":
			return precComparison, true
		case "<", "<=", ">", ">=":
			return precRelational, true
		case "||":
			return precConcat, true
		case "+", "-":
			return precAdd, true
		case "/", "%":
			return precMul, true
		}
	case lexer.STAR:
		return precMul, true
	}
	return precLowest, false
}

// naryOpText returns the Op text that parseInfix stores on a binary NAry
// parse-tree node for an infix operator token: "*" for STAR, the token's own
// text otherwise. lowering.go maps that text to an ast.NAryOp through
// naryOpByText.
func naryOpText(tok lexer.Token) string {
	if tok.Type == lexer.STAR {
		return "*"
	}
	return tok.Text
}
