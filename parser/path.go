package parser

import (
	perrors "github.com/partiql-lang/partiql-go/errors"
	"github.com/partiql-lang/partiql-go/internal/parsetree"
	"github.com/partiql-lang/partiql-go/lexer"
)

// parsePathSuffixes greedily consumes `.name`, `.*`, `[expr]`, and `[*]`
// suffixes after root, per spec §4.3's path-suffix grammar (precedence
// level 11, the tightest-binding construct in the language). A root with no
// suffix at all is returned unchanged — a bare variable reference is not a
// Path (spec §3.3 invariant).
func (p *Parser) parsePathSuffixes(root *parsetree.Node) (*parsetree.Node, error) {
	var components []*parsetree.Node
	for {
		if dotTok, ok := p.tryEat(lexer.DOT); ok {
			comp, err := p.parseDotSuffix(dotTok)
			if err != nil {
				return nil, err
			}
			components = append(components, comp)
			continue
		}
		if p.is(lexer.LEFT_BRACKET) {
			comp, err := p.parseBracketSuffix()
			if err != nil {
				return nil, err
			}
			components = append(components, comp)
			continue
		}
		break
	}
	if len(components) == 0 {
		return root, nil
	}
	pathNode := p.newNode(parsetree.TypePath, root.Anchor, append([]*parsetree.Node{root}, components...)...)
	return pathNode, nil
}

func (p *Parser) parseDotSuffix(dotTok lexer.Token) (*parsetree.Node, error) {
	if starTok, ok := p.tryEat(lexer.STAR); ok {
		return p.newNode(parsetree.TypePathComponentUnpivot, starTok), nil
	}
	nameTok, ok := p.tryEat(lexer.IDENTIFIER)
	caseSensitive := false
	if !ok {
		if qi, ok2 := p.tryEat(lexer.QUOTED_IDENTIFIER); ok2 {
			nameTok = qi
			caseSensitive = true
		} else if kw, ok3 := p.peek(); ok3 && kw.Type == lexer.KEYWORD {
			// A keyword may appear as a field name after '.' (unreserved in
			// this position); fold it back to an ordinary identifier.
			p.advance()
			nameTok = kw
		} else {
			return nil, errAt(perrors.ParseExpectedTokenType, p.currentPos(),
				"expected a field name after '.'", perrors.PropExpectedTokenType, lexer.IDENTIFIER.String())
		}
	}
	identNode := p.newNode(parsetree.TypeIdent, nameTok)
	identNode.Flag = caseSensitive
	return p.newNode(parsetree.TypePathComponentExpr, dotTok, identNode), nil
}

func (p *Parser) parseBracketSuffix() (*parsetree.Node, error) {
	openTok, _ := p.eat(lexer.LEFT_BRACKET)
	if starTok, ok := p.tryEat(lexer.STAR); ok {
		if _, err := p.eat(lexer.RIGHT_BRACKET); err != nil {
			return nil, err
		}
		return p.newNode(parsetree.TypePathComponentWildcard, starTok), nil
	}
	expr, err := p.parseExpr(precLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(lexer.RIGHT_BRACKET); err != nil {
		return nil, err
	}
	return p.newNode(parsetree.TypePathComponentExpr, openTok, expr), nil
}
