package parser

import (
	perrors "github.com/partiql-lang/partiql-go/errors"
	"github.com/partiql-lang/partiql-go/internal/parsetree"
	"github.com/partiql-lang/partiql-go/lexer"
)

// parseSelectExpr parses a full SFW (SELECT-FROM-WHERE) expression, spec
// §4.4. keywordTok is the already-consumed SELECT or PIVOT keyword token;
// SELECT's list/value forms and PIVOT's single `value AT key` form share
// everything downstream of the projection clause.
func (p *Parser) parseSelectExpr(keywordTok lexer.Token) (*parsetree.Node, error) {
	projection, err := p.parseProjection(keywordTok)
	if err != nil {
		return nil, err
	}

	if _, ok := p.tryEatKeyword("from"); !ok {
		return nil, errAt(perrors.ParseSelectMissingFrom, p.currentPos(), "SELECT requires a FROM clause")
	}
	from, err := p.parseFromList()
	if err != nil {
		return nil, err
	}

	var where, having, limit *parsetree.Node
	var groupBy *parsetree.Node

	if _, ok := p.tryEatKeyword("where"); ok {
		where, err = p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
	}
	if _, ok := p.tryEatKeyword("group"); ok {
		groupBy, err = p.parseGroupBy()
		if err != nil {
			return nil, err
		}
	}
	if _, ok := p.tryEatKeyword("having"); ok {
		having, err = p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
	}
	if _, ok := p.tryEatKeyword("limit"); ok {
		limit, err = p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
	}

	children := []*parsetree.Node{projection, from}
	slots := []*parsetree.Node{where, groupBy, having, limit}
	for _, s := range slots {
		children = append(children, s) // nil placeholders preserve slot position
	}
	return p.newNode(parsetree.TypeSelect, keywordTok, children...), nil
}

// parseProjection parses the clause between SELECT/PIVOT and FROM: the
// `[DISTINCT|ALL]` quantifier, `VALUE expr`, `expr AT key` (PIVOT), or the
// comma-separated select list, applying the inspect_path_expression
// wildcard-placement rule (spec §4.4) to every list item along the way.
func (p *Parser) parseProjection(keywordTok lexer.Token) (*parsetree.Node, error) {
	if keywordTok.HasKeywordText("pivot") {
		value, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.eatKeyword("at"); err != nil {
			return nil, err
		}
		key, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		return p.newNode(parsetree.TypeSelectPivot, keywordTok, value, key), nil
	}

	quantifierTok := keywordTok
	if tok, ok := p.tryEatKeyword("distinct"); ok {
		quantifierTok = tok
	} else if tok, ok := p.tryEatKeyword("all"); ok {
		quantifierTok = tok
	}

	if _, ok := p.tryEatKeyword("value"); ok {
		value, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		n := p.newNode(parsetree.TypeSelectValue, quantifierTok, value)
		n.Op = quantifierTok.Text
		return n, nil
	}

	if starTok, ok := p.tryEat(lexer.STAR); ok {
		if p.is(lexer.COMMA) {
			return nil, errAt(perrors.ParseAsteriskIsNotAloneInSelectList, p.currentPos(),
				"'*' must be the only item in a select list")
		}
		n := p.newNode(parsetree.TypeSelectListStar, starTok)
		n.Op = quantifierTok.Text
		return n, nil
	}

	if p.isKeyword("from") || p.atEnd() {
		return nil, errAt(perrors.ParseEmptySelect, p.currentPos(), "select list must not be empty")
	}

	var items []*parsetree.Node
	for {
		item, err := p.parseSelectListItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if _, ok := p.tryEat(lexer.COMMA); ok {
			continue
		}
		break
	}
	n := p.newNode(parsetree.TypeSelectListItem, quantifierTok, items...)
	n.Op = quantifierTok.Text
	return n, nil
}

// parseSelectListItem parses one `expr [AS alias]` select-list item, or a
// `expr.*` "project all" form, rejecting wildcards anywhere else inside the
// expression (spec §4.4's inspect_path_expression rule).
func (p *Parser) parseSelectListItem() (*parsetree.Node, error) {
	expr, err := p.parseExpr(precLowest)
	if err != nil {
		return nil, err
	}
	if err := inspectPathExpression(expr); err != nil {
		return nil, err
	}
	if isTrailingDotStar(expr) {
		return p.newNode(parsetree.TypeSelectListProjectAll, expr.Anchor, stripTrailingUnpivotComponent(expr, p)), nil
	}

	var alias string
	if _, ok := p.tryEatKeyword("as"); ok {
		aliasTok, err := p.eat(lexer.IDENTIFIER)
		if err != nil {
			return nil, errAt(perrors.ParseExpectedIdentForAlias, p.currentPos(), "expected an identifier after AS")
		}
		alias = aliasTok.Text
	}
	n := p.newNode(parsetree.TypeSelectListItem, expr.Anchor, expr)
	n.Alias = alias
	return n, nil
}

// isTrailingDotStar reports whether expr is a Path whose final component is
// the `.*` unpivot-wildcard component (the only place a wildcard may
// legally appear in a select-list item, and only at the very end).
func isTrailingDotStar(expr *parsetree.Node) bool {
	if expr.Type != parsetree.TypePath || len(expr.Children) < 2 {
		return false
	}
	last := expr.Children[len(expr.Children)-1]
	return last.Type == parsetree.TypePathComponentUnpivot
}

// stripTrailingUnpivotComponent returns expr's path prefix with its trailing
// `.*` unpivot component removed, collapsing to the bare root node when no
// components remain (spec §4.4's inspect_path_expression rewrite).
func stripTrailingUnpivotComponent(expr *parsetree.Node, p *Parser) *parsetree.Node {
	root := expr.Children[0]
	comps := expr.Children[1 : len(expr.Children)-1]
	if len(comps) == 0 {
		return root
	}
	return p.newNode(parsetree.TypePath, expr.Anchor, append([]*parsetree.Node{root}, comps...)...)
}

// inspectPathExpression walks expr rejecting a `[*]` path component in any
// position and a `.*` component anywhere but the final position, and rejects
// mixing a `[expr]` component with a trailing `.*` (spec §4.4): both are
// rejected with dedicated error codes rather than folded into a generic parse
// error.
func inspectPathExpression(expr *parsetree.Node) error {
	if expr.Type != parsetree.TypePath {
		return nil
	}
	root, comps := expr.Children[0], expr.Children[1:]
	_ = root
	sawBracketExpr := false
	for i, c := range comps {
		isLast := i == len(comps)-1
		switch c.Type {
		case parsetree.TypePathComponentWildcard:
			return errAt(perrors.ParseInvalidContextForWildcardInSelectList, c.Anchor.Position,
				"a '[*]' path component may not appear in a select-list expression")
		case parsetree.TypePathComponentUnpivot:
			if !isLast {
				return errAt(perrors.ParseInvalidContextForWildcardInSelectList, c.Anchor.Position,
					"a wildcard path component may only appear at the end of a select-list expression")
			}
			if sawBracketExpr {
				return errAt(perrors.ParseCannotMixSqbAndWildcardInSelectList, c.Anchor.Position,
					"cannot mix '[expr]' path components with a trailing wildcard")
			}
		case parsetree.TypePathComponentExpr:
			if c.Anchor.Type == lexer.LEFT_BRACKET {
				sawBracketExpr = true
			}
		}
	}
	return nil
}

// parseFromList parses the comma/JOIN-separated FROM clause, left-folding
// every source into one TypeFromJoin chain so lowering.go only has to
// handle pairwise joins: a bare comma is an implicit inner join (its
// condition becomes literal TRUE with an is_implicit_join meta in
// lowering.go), per spec §4.4 and the CROSS JOIN design decision in
// DESIGN.md.
func (p *Parser) parseFromList() (*parsetree.Node, error) {
	left, err := p.parseFromSource()
	if err != nil {
		return nil, err
	}
	for {
		if commaTok, ok := p.tryEat(lexer.COMMA); ok {
			right, err := p.parseFromSource()
			if err != nil {
				return nil, err
			}
			n := p.newNode(parsetree.TypeFromJoin, commaTok, left, right, nil)
			n.Op = "inner"
			n.Flag = true // implicit join (comma form)
			left = n
			continue
		}
		if joinTok, op, ok := p.peekJoinKeyword(); ok {
			p.advance()
			p.tryEatKeyword("join")
			right, err := p.parseFromSource()
			if err != nil {
				return nil, err
			}
			var cond *parsetree.Node
			if _, ok := p.tryEatKeyword("on"); ok {
				cond, err = p.parseExpr(precLowest)
				if err != nil {
					return nil, err
				}
			}
			n := p.newNode(parsetree.TypeFromJoin, joinTok, left, right, cond)
			n.Op = op
			left = n
			continue
		}
		break
	}
	return left, nil
}

// peekJoinKeyword reports whether the current token begins a JOIN clause,
// and which join operator it spells (the lexer has already folded compound
// forms like LEFT OUTER JOIN into single tokens, spec §4.1).
func (p *Parser) peekJoinKeyword() (lexer.Token, string, bool) {
	tok, ok := p.peek()
	if !ok || tok.Type != lexer.KEYWORD {
		return lexer.Token{}, "", false
	}
	switch tok.Text {
	case "join", "inner_join", "inner":
		return tok, "inner", true
	case "left_join", "left":
		return tok, "left", true
	case "right_join", "right":
		return tok, "right", true
	case "outer_join", "full", "outer":
		return tok, "outer", true
	case "cross_join":
		return tok, "cross", true
	}
	return lexer.Token{}, "", false
}

// parseFromSource parses one FROM item: `expr [AS alias] [AT alias]`, or
// `UNPIVOT expr [AS alias] [AT alias]`.
func (p *Parser) parseFromSource() (*parsetree.Node, error) {
	if unpivotTok, ok := p.tryEatKeyword("unpivot"); ok {
		expr, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		asAlias, atAlias, err := p.parseAsAtAliases()
		if err != nil {
			return nil, err
		}
		n := p.newNode(parsetree.TypeFromUnpivot, unpivotTok, expr)
		n.Alias, n.Alias2 = asAlias, atAlias
		return n, nil
	}
	expr, err := p.parseExpr(precLowest)
	if err != nil {
		return nil, err
	}
	asAlias, atAlias, err := p.parseAsAtAliases()
	if err != nil {
		return nil, err
	}
	n := p.newNode(parsetree.TypeFromExpr, expr.Anchor, expr)
	n.Alias, n.Alias2 = asAlias, atAlias
	return n, nil
}

func (p *Parser) parseAsAtAliases() (asAlias, atAlias string, err error) {
	if _, ok := p.tryEatKeyword("as"); ok {
		tok, e := p.eat(lexer.IDENTIFIER)
		if e != nil {
			return "", "", errAt(perrors.ParseExpectedIdentForAlias, p.currentPos(), "expected an identifier after AS")
		}
		asAlias = tok.Text
	} else if tok, ok := p.tryEat(lexer.IDENTIFIER); ok {
		asAlias = tok.Text
	}
	if _, ok := p.tryEatKeyword("at"); ok {
		tok, e := p.eat(lexer.IDENTIFIER)
		if e != nil {
			return "", "", errAt(perrors.ParseExpectedIdentForAt, p.currentPos(), "expected an identifier after AT")
		}
		atAlias = tok.Text
	}
	return asAlias, atAlias, nil
}

// parseGroupBy parses `[PARTIAL] BY key [AS alias], ... [GROUP AS name]`
// (the GROUP keyword itself was already consumed by the caller). A literal
// key expression is rejected: PartiQL requires an expression that names a
// binding, not a constant (spec's PARSE_UNSUPPORTED_LITERALS_GROUPBY).
func (p *Parser) parseGroupBy() (*parsetree.Node, error) {
	strategy := "full"
	if tok, ok := p.tryEatKeyword("partial"); ok {
		strategy = tok.Text
	}
	if _, err := p.eatKeyword("by"); err != nil {
		return nil, err
	}
	var items []*parsetree.Node
	for {
		keyTok, _ := p.peek()
		key, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		if key.Type == parsetree.TypeLiteral {
			return nil, errAt(perrors.ParseUnsupportedLiteralsGroupBy, keyTok.Position,
				"GROUP BY does not support literal keys")
		}
		var alias string
		if _, ok := p.tryEatKeyword("as"); ok {
			aliasTok, e := p.eat(lexer.IDENTIFIER)
			if e != nil {
				return nil, errAt(perrors.ParseExpectedIdentForAlias, p.currentPos(), "expected an identifier after AS")
			}
			alias = aliasTok.Text
		}
		item := p.newNode(parsetree.TypeGroupByItem, keyTok, key)
		item.Alias = alias
		items = append(items, item)
		if _, ok := p.tryEat(lexer.COMMA); ok {
			continue
		}
		break
	}
	n := p.newNode(parsetree.TypeGroupBy, items[0].Anchor, items...)
	n.Op = strategy
	if _, ok := p.tryEatKeyword("group"); ok {
		if _, err := p.eatKeyword("as"); err != nil {
			return nil, err
		}
		nameTok, err := p.eat(lexer.IDENTIFIER)
		if err != nil {
			return nil, errAt(perrors.ParseExpectedIdentForGroupName, p.currentPos(), "expected an identifier after GROUP AS")
		}
		n.Alias = nameTok.Text
	}
	return n, nil
}
