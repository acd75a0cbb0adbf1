package partiql

import (
	"errors"
	"testing"

	"github.com/partiql-lang/partiql-go/ast"
	"github.com/partiql-lang/partiql-go/parser"
)

func TestParseExpressionDefault(t *testing.T) {
	expr, err := ParseExpression("a + 1", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := expr.(*ast.NAry); !ok {
		t.Fatalf("got %T", expr)
	}
}

func TestParseExpressionWithCustomAggregateFunctions(t *testing.T) {
	expr, err := ParseExpression("stddev(a)", Options{AggregateFunctions: []string{"stddev"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	agg, ok := expr.(*ast.CallAgg)
	if !ok || agg.FuncRef != "stddev" {
		t.Fatalf("got %#v", expr)
	}
}

func TestParseExpressionSurfacesStructuredError(t *testing.T) {
	_, err := ParseExpression("SELECT FROM t", Options{})
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if perr.Code != ErrorCode("PARSE_EMPTY_SELECT") {
		t.Fatalf("got code %s", perr.Code)
	}
}

func TestToSexpWithoutSerializerReturnsSentinel(t *testing.T) {
	expr, err := ParseExpression("a", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = ToSexp(expr, Options{})
	if !errors.Is(err, parser.ErrNoSexpSerializer) {
		t.Fatalf("got err %v, want ErrNoSexpSerializer", err)
	}
}

func TestToSexpWithSerializer(t *testing.T) {
	expr, err := ParseExpression("a", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := ToSexp(expr, Options{ParseToSexp: func(ast.ExprNode) (string, error) {
		return "(id a)", nil
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "(id a)" {
		t.Fatalf("got %q", out)
	}
}

func TestDefaultAggregateFunctionsIncludesCount(t *testing.T) {
	if !DefaultAggregateFunctions()["count"] {
		t.Fatalf("expected count in the default aggregate function set")
	}
}
