package parser

import (
	perrors "github.com/partiql-lang/partiql-go/errors"
	"github.com/partiql-lang/partiql-go/internal/parsetree"
	"github.com/partiql-lang/partiql-go/lexer"
)

func (p *Parser) newNode(typ parsetree.ParseType, tok lexer.Token, children ...*parsetree.Node) *parsetree.Node {
	return p.arena.node(typ, tok, children...)
}

// parseExpr is the Pratt loop: parse a unary term, then repeatedly consume
// infix operators whose precedence exceeds minPrec, binding the right-hand
// side at that operator's own precedence (left-associative; spec §4.2).
func (p *Parser) parseExpr(minPrec int) (*parsetree.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek()
		if !ok {
			break
		}
		prec, isInfix := infixPrec(tok)
		if !isInfix || prec <= minPrec {
			break
		}
		p.advance()
		left, err = p.parseInfix(left, tok, prec)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

// negatedForm reports whether text is a folded negative compound keyword,
// and the positive keyword it wraps.
func negatedForm(text string) (positive string, negated bool) {
	switch text {
	case "is_not":
		return "is", true
	case "not_like":
		return "like", true
	case "not_in":
		return "in", true
	case "not_between":
		return "between", true
	}
	return text, false
}

func (p *Parser) parseInfix(left *parsetree.Node, opTok lexer.Token, prec int) (*parsetree.Node, error) {
	positiveOp, negated := negatedForm(opTok.Text)

	var result *parsetree.Node
	var err error
	switch {
	case opTok.Type == lexer.KEYWORD && positiveOp == "is":
		result, err = p.parseIsRHS(left, opTok)
	case opTok.Type == lexer.KEYWORD && positiveOp == "between":
		result, err = p.parseBetweenRHS(left, opTok, prec)
	case opTok.Type == lexer.KEYWORD && positiveOp == "like":
		result, err = p.parseLikeRHS(left, opTok, prec)
	case opTok.Type == lexer.KEYWORD && positiveOp == "in":
		result, err = p.parseInRHS(left, opTok, prec)
	default:
		rhs, rerr := p.parseExpr(prec)
		if rerr != nil {
			return nil, rerr
		}
		n := p.newNode(parsetree.TypeNAry, opTok, left, rhs)
		n.Op = naryOpText(opTok)
		result, err = n, nil
	}
	if err != nil {
		return nil, err
	}
	if negated {
		wrapped := p.newNode(parsetree.TypeNegatedNAry, opTok, result)
		return wrapped, nil
	}
	return result, nil
}

func (p *Parser) parseIsRHS(left *parsetree.Node, opTok lexer.Token) (*parsetree.Node, error) {
	dt, err := p.parseDataType()
	if err != nil {
		return nil, err
	}
	n := p.newNode(parsetree.TypeTypedIs, opTok, left)
	n.DataType = dt
	return n, nil
}

func (p *Parser) parseBetweenRHS(left *parsetree.Node, opTok lexer.Token, prec int) (*parsetree.Node, error) {
	lower, err := p.parseExpr(prec)
	if err != nil {
		return nil, err
	}
	if _, err := p.eatKeyword("and"); err != nil {
		return nil, err
	}
	upper, err := p.parseExpr(prec)
	if err != nil {
		return nil, err
	}
	n := p.newNode(parsetree.TypeNAry, opTok, left, lower, upper)
	n.Op = "between"
	return n, nil
}

func (p *Parser) parseLikeRHS(left *parsetree.Node, opTok lexer.Token, prec int) (*parsetree.Node, error) {
	pattern, err := p.parseExpr(prec)
	if err != nil {
		return nil, err
	}
	children := []*parsetree.Node{left, pattern}
	if _, ok := p.tryEatKeyword("escape"); ok {
		escape, err := p.parseExpr(prec)
		if err != nil {
			return nil, err
		}
		children = append(children, escape)
	}
	n := p.newNode(parsetree.TypeNAry, opTok, children...)
	n.Op = "like"
	return n, nil
}

func (p *Parser) selectOrValuesNext() bool {
	tok, ok := p.peekAt(1)
	return ok && tok.Type == lexer.KEYWORD && (tok.Text == "select" || tok.Text == "values")
}

func (p *Parser) parseInRHS(left *parsetree.Node, opTok lexer.Token, prec int) (*parsetree.Node, error) {
	var rhs *parsetree.Node
	if p.is(lexer.LEFT_PAREN) && !p.selectOrValuesNext() {
		lp, _ := p.eat(lexer.LEFT_PAREN)
		var items []*parsetree.Node
		if !p.is(lexer.RIGHT_PAREN) {
			for {
				item, err := p.parseExpr(precLowest)
				if err != nil {
					return nil, err
				}
				items = append(items, item)
				if _, ok := p.tryEat(lexer.COMMA); ok {
					continue
				}
				break
			}
		}
		if _, err := p.eat(lexer.RIGHT_PAREN); err != nil {
			return nil, err
		}
		rhs = p.newNode(parsetree.TypeList, lp, items...)
	} else {
		r, err := p.parseExpr(prec)
		if err != nil {
			return nil, err
		}
		rhs = r
	}
	n := p.newNode(parsetree.TypeNAry, opTok, left, rhs)
	n.Op = "in"
	return n, nil
}

// parseUnary handles the prefix operators NOT, unary +/-, and the @ident
// lexical-scope qualifier, then falls through to a primary term with its
// greedily-consumed path suffixes.
func (p *Parser) parseUnary() (*parsetree.Node, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, errAt(perrors.ParseExpectedExpression, p.currentPos(), "expected an expression, found end of input")
	}
	if tok.Type == lexer.KEYWORD && tok.Text == "not" {
		p.advance()
		operand, err := p.parseExpr(precNot)
		if err != nil {
			return nil, err
		}
		n := p.newNode(parsetree.TypeNAry, tok, operand)
		n.Op = "not"
		return n, nil
	}
	if tok.Type == lexer.OPERATOR && (tok.Text == "+" || tok.Text == "-") {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		n := p.newNode(parsetree.TypeNAry, tok, operand)
		n.Op = tok.Text
		return n, nil
	}
	if tok.Type == lexer.OPERATOR && tok.Text == "@" {
		p.advance()
		identTok, ok := p.tryEat(lexer.IDENTIFIER)
		if !ok {
			if qi, ok2 := p.tryEat(lexer.QUOTED_IDENTIFIER); ok2 {
				identTok = qi
			} else {
				return nil, errAt(perrors.ParseMissingIdentAfterAt, p.currentPos(),
					"expected an identifier after @")
			}
		}
		n := p.newNode(parsetree.TypeLexicalIdent, identTok)
		return p.parsePathSuffixes(n)
	}
	term, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parsePathSuffixes(term)
}

var typeKeywordPrimaries = map[string]func(*Parser, lexer.Token) (*parsetree.Node, error){
	"case":      (*Parser).parseCaseExpr,
	"cast":      (*Parser).parseCastExpr,
	"select":    (*Parser).parseSelectExpr,
	"pivot":     (*Parser).parseSelectExpr,
	"values":    (*Parser).parseValues,
	"substring": (*Parser).parseSubstring,
	"trim":      (*Parser).parseTrim,
	"extract":   (*Parser).parseExtract,
}

// parsePrimary parses one term per spec §4.3, without consuming any
// trailing path suffix (that happens in parsePathSuffixes, uniformly for
// every caller).
func (p *Parser) parsePrimary() (*parsetree.Node, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, errAt(perrors.ParseExpectedExpression, p.currentPos(), "expected an expression, found end of input")
	}
	switch tok.Type {
	case lexer.LITERAL:
		p.advance()
		return p.newNode(parsetree.TypeLiteral, tok), nil
	case lexer.NULL:
		p.advance()
		return p.newNode(parsetree.TypeNull, tok), nil
	case lexer.MISSING:
		p.advance()
		return p.newNode(parsetree.TypeMissing, tok), nil
	case lexer.IDENTIFIER:
		p.advance()
		if p.is(lexer.LEFT_PAREN) {
			return p.parseFuncCall(tok)
		}
		n := p.newNode(parsetree.TypeIdent, tok)
		return n, nil
	case lexer.QUOTED_IDENTIFIER:
		p.advance()
		n := p.newNode(parsetree.TypeIdent, tok)
		n.Flag = true // case-sensitive
		return n, nil
	case lexer.LEFT_PAREN:
		return p.parseParenGroup()
	case lexer.LEFT_BRACKET:
		return p.parseBracketedList(lexer.LEFT_BRACKET, lexer.RIGHT_BRACKET, parsetree.TypeList)
	case lexer.LEFT_DOUBLE_ANGLE_BRACKET:
		return p.parseBracketedList(lexer.LEFT_DOUBLE_ANGLE_BRACKET, lexer.RIGHT_DOUBLE_ANGLE_BRACKET, parsetree.TypeBag)
	case lexer.LEFT_CURLY:
		return p.parseStructLiteral()
	case lexer.KEYWORD:
		if tok.Text == "true" {
			p.advance()
			return p.newNode(parsetree.TypeLiteral, tok), nil
		}
		if tok.Text == "false" {
			p.advance()
			return p.newNode(parsetree.TypeLiteral, tok), nil
		}
		if fn, ok := typeKeywordPrimaries[tok.Text]; ok {
			p.advance()
			return fn(p, tok)
		}
		if next, ok := p.peekAt(1); ok && next.Type == lexer.LEFT_PAREN {
			p.advance()
			return p.parseFuncCall(tok)
		}
		return nil, errAtToken(perrors.ParseUnexpectedTerm, tok, "unexpected keyword in expression position")
	default:
		return nil, errAtToken(perrors.ParseUnexpectedTerm, tok, "unexpected token in expression position")
	}
}

// parseParenGroup parses `( expr, expr, ... )`: one element is a grouping
// (returns that element directly, no LIST wrapper), more than one is a LIST
// (table-value-constructor-ish tuple), spec §4.3.
func (p *Parser) parseParenGroup() (*parsetree.Node, error) {
	lp, _ := p.eat(lexer.LEFT_PAREN)
	var items []*parsetree.Node
	for {
		item, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if _, ok := p.tryEat(lexer.COMMA); ok {
			continue
		}
		break
	}
	if _, err := p.eat(lexer.RIGHT_PAREN); err != nil {
		return nil, err
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return p.newNode(parsetree.TypeList, lp, items...), nil
}

func (p *Parser) parseBracketedList(open, close lexer.TokenType, typ parsetree.ParseType) (*parsetree.Node, error) {
	openTok, _ := p.eat(open)
	var items []*parsetree.Node
	if !p.is(close) {
		for {
			item, err := p.parseExpr(precLowest)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
			if _, ok := p.tryEat(lexer.COMMA); ok {
				continue
			}
			break
		}
	}
	if _, err := p.eat(close); err != nil {
		return nil, err
	}
	return p.newNode(typ, openTok, items...), nil
}

// parseStructLiteral parses `{ key: value, ... }`. Each field becomes one
// TypeStructField child holding the key node and the value node.
func (p *Parser) parseStructLiteral() (*parsetree.Node, error) {
	openTok, _ := p.eat(lexer.LEFT_CURLY)
	var fields []*parsetree.Node
	if !p.is(lexer.RIGHT_CURLY) {
		for {
			key, err := p.parseExpr(precLowest)
			if err != nil {
				return nil, err
			}
			if _, err := p.eat(lexer.COLON); err != nil {
				return nil, err
			}
			val, err := p.parseExpr(precLowest)
			if err != nil {
				return nil, err
			}
			fields = append(fields, p.newNode(parsetree.TypeStructField, openTok, key, val))
			if _, ok := p.tryEat(lexer.COMMA); ok {
				continue
			}
			break
		}
	}
	if _, err := p.eat(lexer.RIGHT_CURLY); err != nil {
		return nil, err
	}
	return p.newNode(parsetree.TypeStruct, openTok, fields...), nil
}

func (p *Parser) parseCaseExpr(tok lexer.Token) (*parsetree.Node, error) {
	if p.isKeyword("when") {
		return p.parseSearchedCase(tok)
	}
	value, err := p.parseExpr(precLowest)
	if err != nil {
		return nil, err
	}
	return p.parseSimpleCaseRest(tok, value)
}

func (p *Parser) parseWhenThen() (cond, result *parsetree.Node, err error) {
	if _, err = p.eatKeyword("when"); err != nil {
		return nil, nil, err
	}
	cond, err = p.parseExpr(precLowest)
	if err != nil {
		return nil, nil, err
	}
	if _, err = p.eatKeyword("then"); err != nil {
		return nil, nil, err
	}
	result, err = p.parseExpr(precLowest)
	if err != nil {
		return nil, nil, err
	}
	return cond, result, nil
}

func (p *Parser) parseSimpleCaseRest(tok lexer.Token, value *parsetree.Node) (*parsetree.Node, error) {
	children := []*parsetree.Node{value}
	for {
		cond, result, err := p.parseWhenThen()
		if err != nil {
			return nil, err
		}
		children = append(children, cond, result)
		if !p.isKeyword("when") {
			break
		}
	}
	if _, ok := p.tryEatKeyword("else"); ok {
		elseExpr, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		children = append(children, elseExpr)
	}
	if _, err := p.eatKeyword("end"); err != nil {
		return nil, err
	}
	n := p.newNode(parsetree.TypeSimpleCase, tok, children...)
	return n, nil
}

func (p *Parser) parseSearchedCase(tok lexer.Token) (*parsetree.Node, error) {
	var children []*parsetree.Node
	for {
		cond, result, err := p.parseWhenThen()
		if err != nil {
			return nil, err
		}
		children = append(children, cond, result)
		if !p.isKeyword("when") {
			break
		}
	}
	if _, ok := p.tryEatKeyword("else"); ok {
		elseExpr, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		children = append(children, elseExpr)
	}
	if _, err := p.eatKeyword("end"); err != nil {
		return nil, err
	}
	return p.newNode(parsetree.TypeSearchedCase, tok, children...), nil
}

func (p *Parser) parseCastExpr(tok lexer.Token) (*parsetree.Node, error) {
	if _, err := p.eat(lexer.LEFT_PAREN); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr(precLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.eatKeyword("as"); err != nil {
		return nil, err
	}
	dt, err := p.parseDataType()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(lexer.RIGHT_PAREN); err != nil {
		return nil, err
	}
	n := p.newNode(parsetree.TypeTypedCast, tok, expr)
	n.DataType = dt
	return n, nil
}

// parseFuncCall parses `name ( args )` for an identifier or function-name
// keyword already consumed as nameTok, branching into an aggregate call
// (spec §4.5) when nameTok's text is in the injected aggregate-function set.
func (p *Parser) parseFuncCall(nameTok lexer.Token) (*parsetree.Node, error) {
	if _, err := p.eat(lexer.LEFT_PAREN); err != nil {
		return nil, err
	}
	name := nameTok.Text

	if p.opts.isAggregateFunction(name) {
		quantifier := "all"
		if _, ok := p.tryEatKeyword("distinct"); ok {
			quantifier = "distinct"
		} else if _, ok := p.tryEatKeyword("all"); ok {
			quantifier = "all"
		}
		if _, ok := p.tryEat(lexer.STAR); ok {
			if name != "count" {
				return nil, errAt(perrors.ParseUnsupportedCallWithStar, nameTok.Position,
					"only count(*) may take a wildcard argument")
			}
			if _, err := p.eat(lexer.RIGHT_PAREN); err != nil {
				return nil, err
			}
			n := p.newNode(parsetree.TypeCallAggStar, nameTok)
			n.Op = quantifier
			return n, nil
		}
		arg, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		if p.is(lexer.COMMA) {
			return nil, errAt(perrors.ParseNonUnaryAgregateFunctionCall, p.currentPos(),
				"aggregate function calls take exactly one argument")
		}
		if _, err := p.eat(lexer.RIGHT_PAREN); err != nil {
			return nil, err
		}
		n := p.newNode(parsetree.TypeCallAgg, nameTok, arg)
		n.Op = quantifier
		return n, nil
	}

	if _, ok := p.tryEat(lexer.STAR); ok {
		return nil, errAt(perrors.ParseUnsupportedCallWithStar, nameTok.Position,
			"only count(*) may take a wildcard argument")
	}
	var args []*parsetree.Node
	if !p.is(lexer.RIGHT_PAREN) {
		for {
			arg, err := p.parseExpr(precLowest)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if _, ok := p.tryEat(lexer.COMMA); ok {
				continue
			}
			break
		}
	}
	if _, err := p.eat(lexer.RIGHT_PAREN); err != nil {
		return nil, err
	}
	n := p.newNode(parsetree.TypeCall, nameTok, args...)
	n.Op = name
	return n, nil
}

func (p *Parser) parseValues(tok lexer.Token) (*parsetree.Node, error) {
	var tuples []*parsetree.Node
	for {
		tuple, err := p.parseBracketedList(lexer.LEFT_PAREN, lexer.RIGHT_PAREN, parsetree.TypeList)
		if err != nil {
			return nil, err
		}
		tuples = append(tuples, tuple)
		if _, ok := p.tryEat(lexer.COMMA); ok {
			continue
		}
		break
	}
	return p.newNode(parsetree.TypeBag, tok, tuples...), nil
}
