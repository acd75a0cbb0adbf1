// Package parser implements PartiQL's Pratt top-down operator-precedence
// parser: it turns a lexer.Token sequence into an internal parsetree.Node
// tree (component 4), then lowers that tree into the public ast package
// (component 5). Parsing is a pure function of the input text; a *Parser
// holds no state beyond the current parse and is not meant to be reused
// across calls.
package parser

import (
	perrors "github.com/partiql-lang/partiql-go/errors"
	"github.com/partiql-lang/partiql-go/ast"
	"github.com/partiql-lang/partiql-go/internal/parsetree"
	"github.com/partiql-lang/partiql-go/lexer"
	"github.com/partiql-lang/partiql-go/pos"
)

// Parser drives a cursor over an immutable token slice. There is no
// "remaining tokens" tail threaded through returned nodes (spec §9 design
// note): every parse method advances p.i directly and returns just the node
// it built, which is simpler than cheap-list-tail tricks in a language
// without them.
type Parser struct {
	toks   []lexer.Token
	i      int
	opts   Options
	arena  *arena
	endPos pos.Position
}

// New tokenizes src and returns a Parser positioned at its first token.
// Lexical errors surface immediately, since a Parser over unlexable input
// is useless.
func New(src string, opts ...Option) (*Parser, error) {
	toks, err := lexer.Lex(src)
	if err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Parser{
		toks:   toks,
		opts:   o,
		arena:  newArena(),
		endPos: pos.NewTracker(src).Position(len(src)),
	}, nil
}

// ParseExpression is the Parser API's sole entry point (spec §6):
// parse_expression(text) -> AST. Any trailing tokens beyond one complete
// expression — other than a single terminating ';' followed by nothing —
// produce PARSE_UNEXPECTED_TOKEN.
func ParseExpression(text string, opts ...Option) (ast.ExprNode, error) {
	p, err := New(text, opts...)
	if err != nil {
		return nil, err
	}
	tree, err := p.parseTopLevel()
	if err != nil {
		return nil, err
	}
	return lower(tree, p.opts)
}

func (p *Parser) parseTopLevel() (*parsetree.Node, error) {
	if p.atEnd() {
		return nil, errAt(perrors.ParseExpectedExpression, p.currentPos(), "expected an expression, found end of input")
	}
	node, err := p.parseExpr(precLowest)
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok && tok.Type == lexer.SEMICOLON {
		p.advance()
	}
	if !p.atEnd() {
		tok, _ := p.peek()
		return nil, errAtToken(perrors.ParseUnexpectedToken, tok,
			"unexpected trailing token after a complete expression")
	}
	return node, nil
}

func (p *Parser) atEnd() bool { return p.i >= len(p.toks) }

func (p *Parser) peek() (lexer.Token, bool) {
	if p.atEnd() {
		return lexer.Token{}, false
	}
	return p.toks[p.i], true
}

func (p *Parser) peekAt(offset int) (lexer.Token, bool) {
	j := p.i + offset
	if j < 0 || j >= len(p.toks) {
		return lexer.Token{}, false
	}
	return p.toks[j], true
}

func (p *Parser) advance() lexer.Token {
	tok := p.toks[p.i]
	p.i++
	return tok
}

// currentPos is the best available source position for an error raised
// right now: the current token's position, or the end-of-input position
// once the token stream is exhausted.
func (p *Parser) currentPos() pos.Position {
	if tok, ok := p.peek(); ok {
		return tok.Position
	}
	return p.endPos
}

func (p *Parser) is(tt lexer.TokenType) bool {
	tok, ok := p.peek()
	return ok && tok.Type == tt
}

func (p *Parser) isKeyword(text string) bool {
	tok, ok := p.peek()
	return ok && tok.HasKeywordText(text)
}

func (p *Parser) tryEat(tt lexer.TokenType) (lexer.Token, bool) {
	if p.is(tt) {
		return p.advance(), true
	}
	return lexer.Token{}, false
}

func (p *Parser) tryEatKeyword(text string) (lexer.Token, bool) {
	if p.isKeyword(text) {
		return p.advance(), true
	}
	return lexer.Token{}, false
}

func (p *Parser) eat(tt lexer.TokenType) (lexer.Token, error) {
	if tok, ok := p.tryEat(tt); ok {
		return tok, nil
	}
	return lexer.Token{}, p.expectedTokenTypeErr(tt)
}

func (p *Parser) eatKeyword(text string) (lexer.Token, error) {
	if tok, ok := p.tryEatKeyword(text); ok {
		return tok, nil
	}
	return lexer.Token{}, errAt(perrors.ParseExpectedKeyword, p.currentPos(),
		"expected keyword "+text, perrors.PropKeyword, text)
}

func (p *Parser) expectedTokenTypeErr(tt lexer.TokenType) *perrors.Error {
	found := "end of input"
	pp := p.endPos
	if tok, ok := p.peek(); ok {
		found = tok.Type.String()
		pp = tok.Position
	}
	return errAt(perrors.ParseExpectedTokenType, pp,
		"expected "+tt.String()+", found "+found,
		perrors.PropExpectedTokenType, tt.String())
}
