package lexer

import (
	"strings"

	perrors "github.com/partiql-lang/partiql-go/errors"
	"github.com/partiql-lang/partiql-go/pos"
	"github.com/partiql-lang/partiql-go/value"
)

// Lex tokenizes src into a flat, ordered Token slice. It runs a single-pass
// raw scan (rawLex) and then a second pass (foldKeywords) that merges
// adjacent keyword tokens into the compound forms the grammar treats as one
// lexical unit (IS NOT, NOT BETWEEN, LEFT OUTER JOIN, DOUBLE PRECISION, ...).
func Lex(src string) ([]Token, error) {
	raw, err := rawLex(src)
	if err != nil {
		return nil, err
	}
	return foldKeywords(raw), nil
}

type scanner struct {
	src     string
	i       int
	tracker *pos.Tracker
}

func rawLex(src string) ([]Token, error) {
	s := &scanner{src: src, tracker: pos.NewTracker(src)}
	var tokens []Token
	for {
		s.skipTrivia()
		if s.i >= len(s.src) {
			return tokens, nil
		}
		start := s.i
		c := s.src[s.i]
		var (
			tok Token
			err error
		)
		switch {
		case isIdentStart(c):
			tok = s.lexIdent(start)
		case c == '"':
			tok, err = s.lexQuotedIdentifier(start)
		case c == '\'':
			tok, err = s.lexString(start)
		case c == '`':
			tok, err = s.lexBacktickTimestamp(start)
		case isDigit(c) || (c == '.' && s.i+1 < len(s.src) && isDigit(s.src[s.i+1])):
			tok, err = s.lexNumber(start)
		default:
			tok, err = s.lexPunct(start)
		}
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
}

// skipTrivia advances past whitespace, `--` line comments, and `/* */` block
// comments, none of which produce tokens.
func (s *scanner) skipTrivia() {
	for s.i < len(s.src) {
		c := s.src[s.i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			s.i++
		case c == '-' && s.i+1 < len(s.src) && s.src[s.i+1] == '-':
			s.i += 2
			for s.i < len(s.src) && s.src[s.i] != '\n' {
				s.i++
			}
		case c == '/' && s.i+1 < len(s.src) && s.src[s.i+1] == '*':
			s.i += 2
			for s.i+1 < len(s.src) && !(s.src[s.i] == '*' && s.src[s.i+1] == '/') {
				s.i++
			}
			if s.i+1 < len(s.src) {
				s.i += 2
			} else {
				s.i = len(s.src)
			}
		default:
			return
		}
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (s *scanner) lexIdent(start int) Token {
	s.i++
	for s.i < len(s.src) && isIdentCont(s.src[s.i]) {
		s.i++
	}
	raw := s.src[start:s.i]
	lower := strings.ToLower(raw)
	p := s.tracker.Position(start)
	if typ, ok := lookupKeyword(lower); ok {
		return Token{Type: typ, Text: lower, Position: p}
	}
	return Token{Type: IDENTIFIER, Text: lower, Position: p}
}

// lexQuotedIdentifier scans a double-quoted identifier, where `""` is the
// escape for a literal `"` inside the name. Quoted identifiers preserve case
// exactly (spec §3.1).
func (s *scanner) lexQuotedIdentifier(start int) (Token, error) {
	p := s.tracker.Position(start)
	s.i++ // opening quote
	var b strings.Builder
	for {
		if s.i >= len(s.src) {
			return Token{}, perrors.New(perrors.LexUnterminatedString, p,
				"unterminated quoted identifier")
		}
		c := s.src[s.i]
		if c == '"' {
			if s.i+1 < len(s.src) && s.src[s.i+1] == '"' {
				b.WriteByte('"')
				s.i += 2
				continue
			}
			s.i++
			break
		}
		b.WriteByte(c)
		s.i++
	}
	return Token{Type: QUOTED_IDENTIFIER, Text: b.String(), Position: p}, nil
}

// lexString scans a single-quoted string literal, where `''` is the escape
// for a literal `'` inside the string.
func (s *scanner) lexString(start int) (Token, error) {
	p := s.tracker.Position(start)
	s.i++ // opening quote
	var b strings.Builder
	for {
		if s.i >= len(s.src) {
			return Token{}, perrors.New(perrors.LexUnterminatedString, p,
				"unterminated string literal")
		}
		c := s.src[s.i]
		if c == '\'' {
			if s.i+1 < len(s.src) && s.src[s.i+1] == '\'' {
				b.WriteByte('\'')
				s.i += 2
				continue
			}
			s.i++
			break
		}
		b.WriteByte(c)
		s.i++
	}
	text := b.String()
	return Token{Type: LITERAL, Value: value.NewString(text), Text: text, Position: p}, nil
}

// lexBacktickTimestamp scans a backtick-delimited timestamp literal, PartiQL's
// surface syntax for an Ion-style timestamp value (spec §3.1, §4.1).
func (s *scanner) lexBacktickTimestamp(start int) (Token, error) {
	p := s.tracker.Position(start)
	s.i++ // opening backtick
	bodyStart := s.i
	for s.i < len(s.src) && s.src[s.i] != '`' {
		s.i++
	}
	if s.i >= len(s.src) {
		return Token{}, perrors.New(perrors.LexUnterminatedString, p,
			"unterminated timestamp literal")
	}
	body := s.src[bodyStart:s.i]
	s.i++ // closing backtick
	v, err := value.NewTimestampFromLexeme(body)
	if err != nil {
		return Token{}, perrors.New(perrors.LexInvalidTimestamp, p,
			"invalid timestamp literal: "+err.Error(), perrors.PropTokenText, body)
	}
	return Token{Type: LITERAL, Value: v, Text: body, Position: p}, nil
}

// lexNumber scans an integer or decimal literal with an optional fractional
// part and an optional exponent (spec §3.1, §4.1).
func (s *scanner) lexNumber(start int) (Token, error) {
	p := s.tracker.Position(start)
	isDecimal := false
	for s.i < len(s.src) && isDigit(s.src[s.i]) {
		s.i++
	}
	if s.i < len(s.src) && s.src[s.i] == '.' && s.i+1 < len(s.src) && isDigit(s.src[s.i+1]) {
		isDecimal = true
		s.i++
		for s.i < len(s.src) && isDigit(s.src[s.i]) {
			s.i++
		}
	} else if s.i < len(s.src) && s.src[s.i] == '.' && (s.i+1 >= len(s.src) || !isIdentStart(s.src[s.i+1])) {
		isDecimal = true
		s.i++
	}
	if s.i < len(s.src) && (s.src[s.i] == 'e' || s.src[s.i] == 'E') {
		save := s.i
		j := s.i + 1
		if j < len(s.src) && (s.src[j] == '+' || s.src[j] == '-') {
			j++
		}
		if j < len(s.src) && isDigit(s.src[j]) {
			isDecimal = true
			s.i = j
			for s.i < len(s.src) && isDigit(s.src[s.i]) {
				s.i++
			}
		} else {
			s.i = save
		}
	}
	lexeme := s.src[start:s.i]
	if isDecimal {
		v, err := value.NewDecimalFromLexeme(lexeme)
		if err != nil {
			return Token{}, perrors.New(perrors.LexInvalidLiteral, p,
				"invalid decimal literal: "+err.Error(), perrors.PropTokenText, lexeme)
		}
		return Token{Type: LITERAL, Value: v, Text: lexeme, Position: p}, nil
	}
	v, err := value.NewIntegerFromLexeme(lexeme)
	if err != nil {
		return Token{}, perrors.New(perrors.LexInvalidLiteral, p,
			"invalid integer literal: "+err.Error(), perrors.PropTokenText, lexeme)
	}
	return Token{Type: LITERAL, Value: v, Text: lexeme, Position: p}, nil
}

// twoCharOps must be checked longest-match-first; order matters only in that
// every entry here is exactly two bytes.
var twoCharOps = []string{"<<", ">>", "<>", "!=", "<=", ">=", "||"}

func (s *scanner) lexPunct(start int) (Token, error) {
	p := s.tracker.Position(start)
	rest := s.src[start:]
	for _, op := range twoCharOps {
		if strings.HasPrefix(rest, op) {
			s.i += 2
			switch op {
			case "<<":
				return Token{Type: LEFT_DOUBLE_ANGLE_BRACKET, Text: op, Position: p}, nil
			case ">>":
				return Token{Type: RIGHT_DOUBLE_ANGLE_BRACKET, Text: op, Position: p}, nil
			default:
				return Token{Type: OPERATOR, Text: op, Position: p}, nil
			}
		}
	}
	c := s.src[start]
	s.i++
	switch c {
	case '(':
		return Token{Type: LEFT_PAREN, Text: "(", Position: p}, nil
	case ')':
		return Token{Type: RIGHT_PAREN, Text: ")", Position: p}, nil
	case '[':
		return Token{Type: LEFT_BRACKET, Text: "[", Position: p}, nil
	case ']':
		return Token{Type: RIGHT_BRACKET, Text: "]", Position: p}, nil
	case '{':
		return Token{Type: LEFT_CURLY, Text: "{", Position: p}, nil
	case '}':
		return Token{Type: RIGHT_CURLY, Text: "}", Position: p}, nil
	case ',':
		return Token{Type: COMMA, Text: ",", Position: p}, nil
	case ':':
		return Token{Type: COLON, Text: ":", Position: p}, nil
	case '.':
		return Token{Type: DOT, Text: ".", Position: p}, nil
	case '*':
		return Token{Type: STAR, Text: "*", Position: p}, nil
	case ';':
		return Token{Type: SEMICOLON, Text: ";", Position: p}, nil
	case '+', '-', '/', '%', '=', '<', '>', '@':
		return Token{Type: OPERATOR, Text: string(c), Position: p}, nil
	default:
		return Token{}, perrors.New(perrors.LexInvalidChar, p,
			"unexpected character "+strconvQuoteByte(c))
	}
}

func strconvQuoteByte(c byte) string {
	return "'" + string(c) + "'"
}

// joinFold describes one LEFT/RIGHT/FULL OUTER JOIN style fold: keyword,
// optional middle word, "join", canonical compound text.
type joinFold struct {
	lead     string
	optional string
	result   string
}

var joinFolds = []joinFold{
	{lead: "left", optional: "outer", result: "left_join"},
	{lead: "right", optional: "outer", result: "right_join"},
	{lead: "full", optional: "outer", result: "outer_join"},
	{lead: "inner", optional: "", result: "inner_join"},
	{lead: "cross", optional: "", result: "cross_join"},
}

// foldKeywords merges adjacent KEYWORD tokens into the compound keyword
// forms the grammar treats as a single lexical unit (spec §4.1): IS NOT, NOT
// BETWEEN, NOT LIKE, NOT IN, the JOIN family, and DOUBLE PRECISION. Folding
// runs after raw tokenization so the scanner itself never needs lookahead
// across whitespace/comments.
func foldKeywords(in []Token) []Token {
	out := make([]Token, 0, len(in))
	for i := 0; i < len(in); {
		t := in[i]
		if t.Type != KEYWORD {
			out = append(out, t)
			i++
			continue
		}
		if merged, n, ok := tryFoldAt(in, i); ok {
			out = append(out, merged)
			i += n
			continue
		}
		out = append(out, t)
		i++
	}
	return out
}

func tryFoldAt(in []Token, i int) (Token, int, bool) {
	t := in[i]
	switch t.Text {
	case "is":
		if _, ok := peekKeyword(in, i+1, "not"); ok {
			return foldedToken(t, "is_not"), 2, true
		}
	case "not":
		for _, w := range []string{"between", "like", "in"} {
			if _, ok := peekKeyword(in, i+1, w); ok {
				return foldedToken(t, "not_"+w), 2, true
			}
		}
	case "double":
		if _, ok := peekKeyword(in, i+1, "precision"); ok {
			return foldedToken(t, "double_precision"), 2, true
		}
	default:
		for _, jf := range joinFolds {
			if t.Text != jf.lead {
				continue
			}
			j := i + 1
			if jf.optional != "" {
				if _, ok := peekKeyword(in, j, jf.optional); ok {
					j++
				}
			}
			if _, ok := peekKeyword(in, j, "join"); ok {
				return foldedToken(t, jf.result), j + 1 - i, true
			}
		}
	}
	return Token{}, 0, false
}

func peekKeyword(in []Token, i int, text string) (Token, bool) {
	if i >= len(in) || in[i].Type != KEYWORD || in[i].Text != text {
		return Token{}, false
	}
	return in[i], true
}

func foldedToken(first Token, text string) Token {
	return Token{Type: KEYWORD, Text: text, Position: first.Position}
}
