package parser

import (
	"testing"

	"github.com/partiql-lang/partiql-go/ast"
	perrors "github.com/partiql-lang/partiql-go/errors"
	"github.com/partiql-lang/partiql-go/value"
)

func mustParse(t *testing.T, text string, opts ...Option) ast.ExprNode {
	t.Helper()
	expr, err := ParseExpression(text, opts...)
	if err != nil {
		t.Fatalf("ParseExpression(%q): unexpected error: %v", text, err)
	}
	return expr
}

func wantParseErr(t *testing.T, text string, code perrors.ErrorCode) {
	t.Helper()
	_, err := ParseExpression(text)
	if err == nil {
		t.Fatalf("ParseExpression(%q): expected error %s, got none", text, code)
	}
	perr, ok := err.(*perrors.Error)
	if !ok {
		t.Fatalf("ParseExpression(%q): error %v is not *perrors.Error", text, err)
	}
	if perr.Code != code {
		t.Fatalf("ParseExpression(%q): got code %s, want %s", text, perr.Code, code)
	}
}

func TestParseLiteralsAndIdentifiers(t *testing.T) {
	lit, ok := mustParse(t, "42").(*ast.Literal)
	if !ok || lit.Value.Kind() != value.KindInteger || lit.Value.Integer() != 42 {
		t.Fatalf("got %#v", lit)
	}

	v, ok := mustParse(t, "a").(*ast.VariableReference)
	if !ok || v.Name != "a" || v.CaseSensitivity != ast.Insensitive {
		t.Fatalf("got %#v", v)
	}

	qv, ok := mustParse(t, `"MyCol"`).(*ast.VariableReference)
	if !ok || qv.Name != "MyCol" || qv.CaseSensitivity != ast.Sensitive {
		t.Fatalf("got %#v", qv)
	}

	if null, ok := mustParse(t, "NULL").(*ast.Literal); !ok || null.Value.Kind() != value.KindNull {
		t.Fatalf("expected NULL to lower to an ast.Literal carrying value.Null, got %#v", null)
	}
	if _, ok := mustParse(t, "MISSING").(*ast.LiteralMissing); !ok {
		t.Fatalf("expected LiteralMissing")
	}
}

func TestParseArithmeticPrecedence(t *testing.T) {
	// 1 + 2 * 3 should parse as 1 + (2 * 3): top node is PLUS.
	n, ok := mustParse(t, "1 + 2 * 3").(*ast.NAry)
	if !ok || n.Op != ast.OpPlus {
		t.Fatalf("got %#v", n)
	}
	rhs, ok := n.Args[1].(*ast.NAry)
	if !ok || rhs.Op != ast.OpStar {
		t.Fatalf("expected multiplication nested under addition, got %#v", n.Args[1])
	}
}

func TestParseAndOrPrecedence(t *testing.T) {
	// a OR b AND c should parse as a OR (b AND c).
	n, ok := mustParse(t, "a OR b AND c").(*ast.NAry)
	if !ok || n.Op != ast.OpOr {
		t.Fatalf("got %#v", n)
	}
	rhs, ok := n.Args[1].(*ast.NAry)
	if !ok || rhs.Op != ast.OpAnd {
		t.Fatalf("expected AND nested under OR, got %#v", n.Args[1])
	}
}

func TestParseNotBindsAboveAnd(t *testing.T) {
	// NOT a AND b should parse as (NOT a) AND b.
	n, ok := mustParse(t, "NOT a AND b").(*ast.NAry)
	if !ok || n.Op != ast.OpAnd {
		t.Fatalf("got %#v", n)
	}
	lhs, ok := n.Args[0].(*ast.NAry)
	if !ok || lhs.Op != ast.OpNot {
		t.Fatalf("expected NOT nested under AND's left operand, got %#v", n.Args[0])
	}
}

func TestParsePathExpression(t *testing.T) {
	p, ok := mustParse(t, "a.b[1].*").(*ast.Path)
	if !ok {
		t.Fatalf("got %#v", p)
	}
	if len(p.Components) != 3 {
		t.Fatalf("got %d components, want 3: %#v", len(p.Components), p.Components)
	}
	if _, ok := p.Components[2].(ast.PathComponentUnpivot); !ok {
		t.Fatalf("last component should be the '.*' unpivot component, got %#v", p.Components[2])
	}
}

func TestParseNegatedForms(t *testing.T) {
	cases := map[string]ast.NAryOp{
		"a NOT LIKE b":          ast.OpLike,
		"a NOT IN (1, 2)":       ast.OpIn,
		"a NOT BETWEEN 1 AND 2": ast.OpBetween,
	}
	for text, wantOp := range cases {
		outer, ok := mustParse(t, text).(*ast.NAry)
		if !ok || outer.Op != ast.OpNot {
			t.Fatalf("%q: got %#v, want outer NOT", text, outer)
		}
		if !outer.Metas.HasLegacyLogicalNot() {
			t.Fatalf("%q: expected legacy_logical_not meta", text)
		}
		inner, ok := outer.Args[0].(*ast.NAry)
		if !ok || inner.Op != wantOp {
			t.Fatalf("%q: got inner %#v, want op %s", text, inner, wantOp)
		}
	}
}

func TestParseIsNot(t *testing.T) {
	outer, ok := mustParse(t, "a IS NOT NULL").(*ast.NAry)
	if !ok || outer.Op != ast.OpNot {
		t.Fatalf("got %#v", outer)
	}
	inner, ok := outer.Args[0].(*ast.Typed)
	if !ok || inner.Op != ast.OpIs {
		t.Fatalf("got inner %#v", inner)
	}
}

func TestParseBetweenAndLikeEscape(t *testing.T) {
	b, ok := mustParse(t, "a BETWEEN 1 AND 10").(*ast.NAry)
	if !ok || b.Op != ast.OpBetween || len(b.Args) != 3 {
		t.Fatalf("got %#v", b)
	}

	l, ok := mustParse(t, "a LIKE '%x' ESCAPE '\\'").(*ast.NAry)
	if !ok || l.Op != ast.OpLike || len(l.Args) != 3 {
		t.Fatalf("got %#v", l)
	}
}

func TestParseInWithListAndSubquery(t *testing.T) {
	listIn, ok := mustParse(t, "a IN (1, 2, 3)").(*ast.NAry)
	if !ok || listIn.Op != ast.OpIn {
		t.Fatalf("got %#v", listIn)
	}
	if _, ok := listIn.Args[1].(*ast.ListExprNode); !ok {
		t.Fatalf("expected a list on the right of IN, got %#v", listIn.Args[1])
	}

	subIn, ok := mustParse(t, "a IN (SELECT b FROM t)").(*ast.NAry)
	if !ok || subIn.Op != ast.OpIn {
		t.Fatalf("got %#v", subIn)
	}
	if _, ok := subIn.Args[1].(*ast.Select); !ok {
		t.Fatalf("expected a Select on the right of IN, got %#v", subIn.Args[1])
	}
}

func TestParseCast(t *testing.T) {
	c, ok := mustParse(t, "CAST(a AS INTEGER)").(*ast.Typed)
	if !ok || c.Op != ast.OpCast || c.DataType.SQLType != ast.TypeInteger {
		t.Fatalf("got %#v", c)
	}
}

func TestParseCastArityError(t *testing.T) {
	wantParseErr(t, "CAST(a AS DECIMAL(1,2,3))", perrors.ParseCastArity)
}

func TestParseCaseExpressions(t *testing.T) {
	simple, ok := mustParse(t, "CASE a WHEN 1 THEN 'x' ELSE 'y' END").(*ast.SimpleCase)
	if !ok || len(simple.WhenBranches) != 1 || simple.Else == nil {
		t.Fatalf("got %#v", simple)
	}

	searched, ok := mustParse(t, "CASE WHEN a > 1 THEN 'x' END").(*ast.SearchedCase)
	if !ok || len(searched.WhenBranches) != 1 || searched.Else != nil {
		t.Fatalf("got %#v", searched)
	}
}

func TestParseFunctionCall(t *testing.T) {
	n, ok := mustParse(t, "upper(a)").(*ast.NAry)
	if !ok || n.Op != ast.OpCall || len(n.Args) != 2 {
		t.Fatalf("got %#v", n)
	}
	ref, ok := n.Args[0].(*ast.VariableReference)
	if !ok || ref.Name != "upper" {
		t.Fatalf("expected synthetic function-name arg, got %#v", n.Args[0])
	}
}

func TestParseAggregateCall(t *testing.T) {
	c, ok := mustParse(t, "COUNT(DISTINCT a)").(*ast.CallAgg)
	if !ok || c.FuncRef != "count" || c.SetQuantifier != ast.Distinct || c.Wildcard {
		t.Fatalf("got %#v", c)
	}

	star, ok := mustParse(t, "COUNT(*)").(*ast.CallAgg)
	if !ok || !star.Wildcard || star.Arg != nil {
		t.Fatalf("got %#v", star)
	}
}

func TestParseAggregateNonUnaryIsError(t *testing.T) {
	wantParseErr(t, "COUNT(a, b)", perrors.ParseNonUnaryAgregateFunctionCall)
}

func TestParseSubstringTrimExtractNormalizeToCall(t *testing.T) {
	for _, text := range []string{
		"SUBSTRING(a FROM 1 FOR 2)",
		"SUBSTRING(a, 1, 2)",
	} {
		n, ok := mustParse(t, text).(*ast.NAry)
		if !ok || n.Op != ast.OpCall {
			t.Fatalf("%q: got %#v", text, n)
		}
		ref := n.Args[0].(*ast.VariableReference)
		if ref.Name != "substring" || len(n.Args) != 4 {
			t.Fatalf("%q: got %#v", text, n)
		}
	}

	trim, ok := mustParse(t, "TRIM(LEADING 'x' FROM a)").(*ast.NAry)
	if !ok || trim.Op != ast.OpCall || len(trim.Args) != 4 {
		t.Fatalf("got %#v", trim)
	}
	spec, ok := trim.Args[1].(*ast.Literal)
	if !ok || spec.Value.Kind() != value.KindSymbol || spec.Value.Text() != "leading" {
		t.Fatalf("got %#v", trim.Args[1])
	}

	ext, ok := mustParse(t, "EXTRACT(YEAR FROM a)").(*ast.NAry)
	if !ok || ext.Op != ast.OpCall || len(ext.Args) != 3 {
		t.Fatalf("got %#v", ext)
	}
	part, ok := ext.Args[1].(*ast.Literal)
	if !ok || part.Value.Kind() != value.KindSymbol || part.Value.Text() != "year" {
		t.Fatalf("got %#v", ext.Args[1])
	}
}

func TestParseStructAndListLiterals(t *testing.T) {
	s, ok := mustParse(t, "{'a': 1, 'b': 2}").(*ast.Struct)
	if !ok || len(s.Fields) != 2 {
		t.Fatalf("got %#v", s)
	}

	l, ok := mustParse(t, "[1, 2, 3]").(*ast.ListExprNode)
	if !ok || len(l.Items) != 3 {
		t.Fatalf("got %#v", l)
	}

	bag, ok := mustParse(t, "<<1, 2>>").(*ast.Bag)
	if !ok || len(bag.Items) != 2 {
		t.Fatalf("got %#v", bag)
	}
}

func TestParseCustomAggregateFunctions(t *testing.T) {
	n, ok := mustParse(t, "stddev(a)", WithAggregateFunctions([]string{"stddev"})).(*ast.CallAgg)
	if !ok || n.FuncRef != "stddev" {
		t.Fatalf("got %#v", n)
	}
}

func TestParseTrailingTokenIsError(t *testing.T) {
	wantParseErr(t, "a b", perrors.ParseUnexpectedToken)
}

func TestParseTrailingSemicolonIsAccepted(t *testing.T) {
	mustParse(t, "a;")
}

func TestParseEmptyInputIsError(t *testing.T) {
	wantParseErr(t, "", perrors.ParseExpectedExpression)
}
