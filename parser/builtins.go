package parser

import (
	perrors "github.com/partiql-lang/partiql-go/errors"
	"github.com/partiql-lang/partiql-go/internal/parsetree"
	"github.com/partiql-lang/partiql-go/lexer"
)

// parseSubstring normalizes both SUBSTRING surface forms — SQL-92's
// `SUBSTRING(str FROM start [FOR len])` and the comma form
// `SUBSTRING(str, start [, len])` — into one TypeCall("substring") shape
// with 2 or 3 children, per spec §4.5.
func (p *Parser) parseSubstring(tok lexer.Token) (*parsetree.Node, error) {
	if _, err := p.eat(lexer.LEFT_PAREN); err != nil {
		return nil, err
	}
	str, err := p.parseExpr(precLowest)
	if err != nil {
		return nil, err
	}
	children := []*parsetree.Node{str}

	var start *parsetree.Node
	if _, ok := p.tryEatKeyword("from"); ok {
		start, err = p.parseExpr(precLowest)
	} else if _, ok := p.tryEat(lexer.COMMA); ok {
		start, err = p.parseExpr(precLowest)
	} else {
		return nil, errAt(perrors.ParseExpectedKeyword, p.currentPos(),
			"expected FROM or ',' in SUBSTRING", perrors.PropKeyword, "from")
	}
	if err != nil {
		return nil, err
	}
	children = append(children, start)

	if _, ok := p.tryEat(lexer.FOR); ok {
		length, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		children = append(children, length)
	} else if _, ok := p.tryEat(lexer.COMMA); ok {
		length, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		children = append(children, length)
	}

	if _, err := p.eat(lexer.RIGHT_PAREN); err != nil {
		return nil, err
	}
	n := p.newNode(parsetree.TypeCall, tok, children...)
	n.Op = "substring"
	return n, nil
}

// parseTrim normalizes `TRIM([[spec] [chars] FROM] src)` into a
// TypeCall("trim") node. Children are emitted in canonical
// spec/chars/src order; a node that the surface form omitted is simply
// absent. lowering.go lowers the children in order as plain call arguments;
// which optional parts were given shows only in the argument count and in
// whether the first argument is a TRIM_SPECIFICATION symbol.
func (p *Parser) parseTrim(tok lexer.Token) (*parsetree.Node, error) {
	if _, err := p.eat(lexer.LEFT_PAREN); err != nil {
		return nil, err
	}
	var children []*parsetree.Node

	var specNode *parsetree.Node
	if specTok, ok := p.tryEat(lexer.TRIM_SPECIFICATION); ok {
		specNode = p.newNode(parsetree.TypeLiteral, specTok)
	}

	if specNode != nil {
		children = append(children, specNode)
		if _, ok := p.tryEatKeyword("from"); ok {
			src, err := p.parseExpr(precLowest)
			if err != nil {
				return nil, err
			}
			children = append(children, src)
		} else {
			chars, err := p.parseExpr(precLowest)
			if err != nil {
				return nil, err
			}
			if _, err := p.eatKeyword("from"); err != nil {
				return nil, err
			}
			src, err := p.parseExpr(precLowest)
			if err != nil {
				return nil, err
			}
			children = append(children, chars, src)
		}
	} else {
		first, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		if _, ok := p.tryEatKeyword("from"); ok {
			src, err := p.parseExpr(precLowest)
			if err != nil {
				return nil, err
			}
			children = append(children, first, src)
		} else {
			children = append(children, first)
		}
	}

	if _, err := p.eat(lexer.RIGHT_PAREN); err != nil {
		return nil, err
	}
	n := p.newNode(parsetree.TypeCall, tok, children...)
	n.Op = "trim"
	return n, nil
}

// parseExtract parses `EXTRACT(date_part FROM timestamp)`, requiring a
// dedicated DATE_PART token (spec §4.5); anything else is
// PARSE_EXPECTED_DATE_PART.
func (p *Parser) parseExtract(tok lexer.Token) (*parsetree.Node, error) {
	if _, err := p.eat(lexer.LEFT_PAREN); err != nil {
		return nil, err
	}
	datePartTok, ok := p.tryEat(lexer.DATE_PART)
	if !ok {
		return nil, errAt(perrors.ParseExpectedDatePart, p.currentPos(), "expected a date part keyword")
	}
	if _, err := p.eatKeyword("from"); err != nil {
		return nil, err
	}
	ts, err := p.parseExpr(precLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(lexer.RIGHT_PAREN); err != nil {
		return nil, err
	}
	datePartNode := p.newNode(parsetree.TypeLiteral, datePartTok)
	n := p.newNode(parsetree.TypeCall, tok, datePartNode, ts)
	n.Op = "extract"
	return n, nil
}
