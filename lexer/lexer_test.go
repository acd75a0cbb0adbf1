package lexer

import "testing"

func mustLex(t *testing.T, src string) []Token {
	t.Helper()
	toks, err := Lex(src)
	if err != nil {
		t.Fatalf("Lex(%q): unexpected error: %v", src, err)
	}
	return toks
}

func TestLexIdentifiersAndKeywords(t *testing.T) {
	toks := mustLex(t, "SELECT a, MyVar FROM t")
	want := []struct {
		typ  TokenType
		text string
	}{
		{KEYWORD, "select"},
		{IDENTIFIER, "a"},
		{COMMA, ","},
		{IDENTIFIER, "myvar"},
		{KEYWORD, "from"},
		{IDENTIFIER, "t"},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Type != w.typ || toks[i].Text != w.text {
			t.Errorf("token %d = %v %q, want %v %q", i, toks[i].Type, toks[i].Text, w.typ, w.text)
		}
	}
}

func TestLexQuotedIdentifierPreservesCase(t *testing.T) {
	toks := mustLex(t, `"MyCol"`)
	if len(toks) != 1 || toks[0].Type != QUOTED_IDENTIFIER || toks[0].Text != "MyCol" {
		t.Fatalf("got %+v", toks)
	}
}

func TestLexQuotedIdentifierEscape(t *testing.T) {
	toks := mustLex(t, `"a""b"`)
	if len(toks) != 1 || toks[0].Text != `a"b` {
		t.Fatalf("got %+v", toks)
	}
}

func TestLexStringLiteralEscape(t *testing.T) {
	toks := mustLex(t, `'it''s'`)
	if len(toks) != 1 || toks[0].Type != LITERAL || toks[0].Value.Text() != "it's" {
		t.Fatalf("got %+v", toks)
	}
}

func TestLexUnterminatedStringErrors(t *testing.T) {
	_, err := Lex(`'abc`)
	if err == nil {
		t.Fatalf("expected error for unterminated string")
	}
}

func TestLexIntegerAndDecimalLiterals(t *testing.T) {
	toks := mustLex(t, "1 2.5 3e2 .5")
	if len(toks) != 4 {
		t.Fatalf("got %d tokens: %+v", len(toks), toks)
	}
	if toks[0].Value.Kind().String() != "INTEGER" {
		t.Errorf("token 0 kind = %v", toks[0].Value.Kind())
	}
	for _, i := range []int{1, 2, 3} {
		if toks[i].Value.Kind().String() != "DECIMAL" {
			t.Errorf("token %d kind = %v, want DECIMAL", i, toks[i].Value.Kind())
		}
	}
}

func TestLexBacktickTimestamp(t *testing.T) {
	toks := mustLex(t, "`2001T`")
	if len(toks) != 1 || toks[0].Type != LITERAL || toks[0].Value.Kind().String() != "TIMESTAMP" {
		t.Fatalf("got %+v", toks)
	}
}

func TestLexStructuralPunctuation(t *testing.T) {
	toks := mustLex(t, "<< >> { } [ ] ( ) , : . * ;")
	wantTypes := []TokenType{
		LEFT_DOUBLE_ANGLE_BRACKET, RIGHT_DOUBLE_ANGLE_BRACKET,
		LEFT_CURLY, RIGHT_CURLY, LEFT_BRACKET, RIGHT_BRACKET,
		LEFT_PAREN, RIGHT_PAREN, COMMA, COLON, DOT, STAR, SEMICOLON,
	}
	if len(toks) != len(wantTypes) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(wantTypes), toks)
	}
	for i, want := range wantTypes {
		if toks[i].Type != want {
			t.Errorf("token %d = %v, want %v", i, toks[i].Type, want)
		}
	}
}

func TestLexOperatorsAreGeneric(t *testing.T) {
	toks := mustLex(t, "+ - / % = <> != < <= > >= || @")
	for _, tok := range toks {
		if tok.Type != OPERATOR {
			t.Errorf("token %q has type %v, want OPERATOR", tok.Text, tok.Type)
		}
	}
}

func TestLexSkipsCommentsAndWhitespace(t *testing.T) {
	toks := mustLex(t, "a -- line comment\n/* block */ b")
	if len(toks) != 2 || toks[0].Text != "a" || toks[1].Text != "b" {
		t.Fatalf("got %+v", toks)
	}
}

func TestFoldIsNot(t *testing.T) {
	toks := mustLex(t, "a IS NOT NULL")
	if len(toks) != 3 || toks[1].Text != "is_not" {
		t.Fatalf("got %+v", toks)
	}
}

func TestFoldNotBetweenLikeIn(t *testing.T) {
	cases := map[string]string{
		"a NOT BETWEEN b AND c": "not_between",
		"a NOT LIKE b":          "not_like",
		"a NOT IN b":            "not_in",
	}
	for src, want := range cases {
		toks := mustLex(t, src)
		if toks[1].Text != want {
			t.Errorf("Lex(%q)[1] = %q, want %q", src, toks[1].Text, want)
		}
	}
}

func TestFoldJoinFamily(t *testing.T) {
	cases := map[string]string{
		"a LEFT JOIN b":        "left_join",
		"a LEFT OUTER JOIN b":  "left_join",
		"a RIGHT JOIN b":       "right_join",
		"a FULL OUTER JOIN b":  "outer_join",
		"a INNER JOIN b":       "inner_join",
		"a CROSS JOIN b":       "cross_join",
	}
	for src, want := range cases {
		toks := mustLex(t, src)
		found := false
		for _, tok := range toks {
			if tok.Text == want {
				found = true
			}
		}
		if !found {
			t.Errorf("Lex(%q) did not fold to %q: %+v", src, want, toks)
		}
	}
}

func TestFoldDoublePrecision(t *testing.T) {
	toks := mustLex(t, "CAST(a AS DOUBLE PRECISION)")
	found := false
	for _, tok := range toks {
		if tok.Text == "double_precision" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected double_precision fold, got %+v", toks)
	}
}

func TestReservedWordsNonEmpty(t *testing.T) {
	if len(ReservedWords()) == 0 {
		t.Fatalf("expected a non-empty reserved word set")
	}
	if !isReservedWord("select") {
		t.Fatalf("expected select to be reserved")
	}
}
