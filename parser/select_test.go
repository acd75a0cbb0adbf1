package parser

import (
	"testing"

	"github.com/partiql-lang/partiql-go/ast"
	perrors "github.com/partiql-lang/partiql-go/errors"
)

func mustSelect(t *testing.T, text string) *ast.Select {
	t.Helper()
	expr := mustParse(t, text)
	sel, ok := expr.(*ast.Select)
	if !ok {
		t.Fatalf("ParseExpression(%q): got %T, want *ast.Select", text, expr)
	}
	return sel
}

func TestParseSelectStar(t *testing.T) {
	sel := mustSelect(t, "SELECT * FROM t")
	proj, ok := sel.Projection.(ast.SelectProjectionList)
	if !ok || len(proj.Items) != 1 {
		t.Fatalf("got %#v", sel.Projection)
	}
	if _, ok := proj.Items[0].(ast.SelectListItemStar); !ok {
		t.Fatalf("got %#v", proj.Items[0])
	}
	from, ok := sel.From.(*ast.FromSourceExpr)
	if !ok {
		t.Fatalf("got %#v", sel.From)
	}
	if ref, ok := from.Expr.(*ast.VariableReference); !ok || ref.Name != "t" {
		t.Fatalf("got %#v", from.Expr)
	}
}

func TestParseSelectListItemsWithAlias(t *testing.T) {
	sel := mustSelect(t, "SELECT a AS x, b FROM t")
	proj := sel.Projection.(ast.SelectProjectionList)
	if len(proj.Items) != 2 {
		t.Fatalf("got %d items", len(proj.Items))
	}
	item0 := proj.Items[0].(ast.SelectListItemExpr)
	if item0.AsAlias == nil || *item0.AsAlias != "x" {
		t.Fatalf("got %#v", item0)
	}
	item1 := proj.Items[1].(ast.SelectListItemExpr)
	if item1.AsAlias != nil {
		t.Fatalf("got %#v", item1)
	}
}

func TestParseSelectValue(t *testing.T) {
	sel := mustSelect(t, "SELECT VALUE a FROM t")
	proj, ok := sel.Projection.(ast.SelectProjectionValue)
	if !ok {
		t.Fatalf("got %#v", sel.Projection)
	}
	if ref, ok := proj.Expr.(*ast.VariableReference); !ok || ref.Name != "a" {
		t.Fatalf("got %#v", proj.Expr)
	}
}

func TestParsePivot(t *testing.T) {
	sel := mustSelect(t, "PIVOT v AT k FROM t")
	proj, ok := sel.Projection.(ast.SelectProjectionPivot)
	if !ok {
		t.Fatalf("got %#v", sel.Projection)
	}
	if k, ok := proj.Key.(*ast.VariableReference); !ok || k.Name != "k" {
		t.Fatalf("got %#v", proj.Key)
	}
	if v, ok := proj.Value.(*ast.VariableReference); !ok || v.Name != "v" {
		t.Fatalf("got %#v", proj.Value)
	}
}

func TestParseProjectAll(t *testing.T) {
	sel := mustSelect(t, "SELECT foo.* FROM t")
	proj := sel.Projection.(ast.SelectProjectionList)
	item, ok := proj.Items[0].(ast.SelectListItemProjectAll)
	if !ok {
		t.Fatalf("got %#v", proj.Items[0])
	}
	ref, ok := item.Expr.(*ast.VariableReference)
	if !ok || ref.Name != "foo" {
		t.Fatalf("expected bare root 'foo' with the trailing '.*' stripped, got %#v", item.Expr)
	}
}

func TestParseProjectAllStripsOnlyTrailingComponent(t *testing.T) {
	sel := mustSelect(t, "SELECT a.b.* FROM t")
	proj := sel.Projection.(ast.SelectProjectionList)
	item, ok := proj.Items[0].(ast.SelectListItemProjectAll)
	if !ok {
		t.Fatalf("got %#v", proj.Items[0])
	}
	p, ok := item.Expr.(*ast.Path)
	if !ok || len(p.Components) != 1 {
		t.Fatalf("expected Path(a, [.b]) with the trailing '.*' stripped, got %#v", item.Expr)
	}
}

func TestParseEmptySelectListIsError(t *testing.T) {
	wantParseErr(t, "SELECT FROM t", perrors.ParseEmptySelect)
}

func TestParseStarIsNotAloneIsError(t *testing.T) {
	wantParseErr(t, "SELECT *, x FROM t", perrors.ParseAsteriskIsNotAloneInSelectList)
}

func TestParseNonFinalWildcardInPathIsError(t *testing.T) {
	wantParseErr(t, "SELECT foo.*.bar FROM t", perrors.ParseInvalidContextForWildcardInSelectList)
}

func TestParseMixedBracketAndWildcardIsError(t *testing.T) {
	wantParseErr(t, "SELECT foo[1].* FROM t", perrors.ParseCannotMixSqbAndWildcardInSelectList)
}

func TestParseSelectMissingFromIsError(t *testing.T) {
	wantParseErr(t, "SELECT a", perrors.ParseSelectMissingFrom)
}

func TestParseWhereGroupByHavingLimit(t *testing.T) {
	sel := mustSelect(t, "SELECT a FROM t WHERE a > 1 GROUP BY a HAVING a > 2 LIMIT 10")
	if sel.Where == nil {
		t.Fatalf("expected WHERE to be set")
	}
	if sel.GroupBy == nil || len(sel.GroupBy.Items) != 1 {
		t.Fatalf("got %#v", sel.GroupBy)
	}
	if sel.Having == nil {
		t.Fatalf("expected HAVING to be set")
	}
	if sel.Limit == nil {
		t.Fatalf("expected LIMIT to be set")
	}
}

func TestParseHavingWithoutGroupByIsSyntacticallyAccepted(t *testing.T) {
	sel := mustSelect(t, "SELECT a FROM t HAVING a > 1")
	if sel.GroupBy != nil {
		t.Fatalf("expected no GROUP BY, got %#v", sel.GroupBy)
	}
	if sel.Having == nil {
		t.Fatalf("expected HAVING to be set")
	}
}

func TestParseGroupPartialByWithGroupAs(t *testing.T) {
	sel := mustSelect(t, "SELECT a FROM t GROUP PARTIAL BY a AS x GROUP AS g")
	gb := sel.GroupBy
	if gb == nil || gb.Strategy != ast.GroupPartial {
		t.Fatalf("got %#v", gb)
	}
	if gb.Items[0].AsAlias == nil || *gb.Items[0].AsAlias != "x" {
		t.Fatalf("got %#v", gb.Items[0])
	}
	if gb.GroupAsName == nil || *gb.GroupAsName != "g" {
		t.Fatalf("got %#v", gb.GroupAsName)
	}
}

func TestParseGroupByLiteralKeyIsError(t *testing.T) {
	wantParseErr(t, "SELECT a FROM t GROUP BY 1", perrors.ParseUnsupportedLiteralsGroupBy)
}

func TestParseCommaFromIsImplicitInnerJoin(t *testing.T) {
	sel := mustSelect(t, "SELECT a FROM s, t")
	join, ok := sel.From.(*ast.FromSourceJoin)
	if !ok || join.Op != ast.JoinInner {
		t.Fatalf("got %#v", sel.From)
	}
	if !join.Metas.IsImplicitJoin() {
		t.Fatalf("expected is_implicit_join to be set")
	}
	if _, ok := join.Condition.(*ast.Literal); !ok {
		t.Fatalf("expected a literal-true condition, got %#v", join.Condition)
	}
}

func TestParseCrossJoinIsNotImplicit(t *testing.T) {
	sel := mustSelect(t, "SELECT a FROM s CROSS JOIN t")
	join, ok := sel.From.(*ast.FromSourceJoin)
	if !ok || join.Op != ast.JoinInner {
		t.Fatalf("got %#v", sel.From)
	}
	if join.Metas.IsImplicitJoin() {
		t.Fatalf("CROSS JOIN should not be marked is_implicit_join")
	}
}

func TestParseJoinFamilyWithOnCondition(t *testing.T) {
	cases := map[string]ast.JoinOp{
		"SELECT a FROM s LEFT JOIN t ON s.id = t.id":       ast.JoinLeft,
		"SELECT a FROM s LEFT OUTER JOIN t ON s.id = t.id": ast.JoinLeft,
		"SELECT a FROM s RIGHT JOIN t ON s.id = t.id":      ast.JoinRight,
		"SELECT a FROM s FULL OUTER JOIN t ON s.id = t.id": ast.JoinOuter,
		"SELECT a FROM s INNER JOIN t ON s.id = t.id":      ast.JoinInner,
	}
	for text, wantOp := range cases {
		sel := mustSelect(t, text)
		join, ok := sel.From.(*ast.FromSourceJoin)
		if !ok || join.Op != wantOp {
			t.Fatalf("%q: got %#v, want %s", text, sel.From, wantOp)
		}
		if join.Condition == nil {
			t.Fatalf("%q: expected an ON condition", text)
		}
	}
}

func TestParseUnpivot(t *testing.T) {
	sel := mustSelect(t, "SELECT a FROM UNPIVOT t AS k AT v")
	up, ok := sel.From.(*ast.FromSourceUnpivot)
	if !ok {
		t.Fatalf("got %#v", sel.From)
	}
	if up.AsAlias == nil || *up.AsAlias != "k" {
		t.Fatalf("got %#v", up.AsAlias)
	}
	if up.AtAlias == nil || *up.AtAlias != "v" {
		t.Fatalf("got %#v", up.AtAlias)
	}
}

func TestParseFromAliasesWithoutAsKeyword(t *testing.T) {
	sel := mustSelect(t, "SELECT a FROM t x")
	from, ok := sel.From.(*ast.FromSourceExpr)
	if !ok || from.AsAlias == nil || *from.AsAlias != "x" {
		t.Fatalf("got %#v", sel.From)
	}
}

func TestParseSelectAsSubquery(t *testing.T) {
	// A SELECT can itself be a scalar expression (spec §3.3: Select is an
	// ExprNode), exercised here via a parenthesized subquery in a WHERE.
	sel := mustSelect(t, "SELECT a FROM t WHERE a = (SELECT b FROM u)")
	cmp, ok := sel.Where.(*ast.NAry)
	if !ok || cmp.Op != ast.OpEq {
		t.Fatalf("got %#v", sel.Where)
	}
	if _, ok := cmp.Args[1].(*ast.Select); !ok {
		t.Fatalf("expected nested Select, got %#v", cmp.Args[1])
	}
}
