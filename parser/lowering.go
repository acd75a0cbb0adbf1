package parser

import (
	"github.com/partiql-lang/partiql-go/ast"
	perrors "github.com/partiql-lang/partiql-go/errors"
	"github.com/partiql-lang/partiql-go/internal/parsetree"
	"github.com/partiql-lang/partiql-go/lexer"
	"github.com/partiql-lang/partiql-go/pos"
	"github.com/partiql-lang/partiql-go/value"
)

// naryOpByText maps a parse-tree NAry node's canonical Op text to the
// closed ast.NAryOp tag it lowers to (spec §4.7). Unary +/-, binary
// arithmetic/comparison/logical, and ternary LIKE/BETWEEN all share one
// ast.NAry shape; arity lives in len(Args), not in a separate tag.
var naryOpByText = map[string]ast.NAryOp{
	"not": ast.OpNot, "and": ast.OpAnd, "or": ast.OpOr,
	"=": ast.OpEq, "<>": ast.OpNe, "!=": ast.OpNe,
	"<": ast.OpLt, "<=": ast.OpLte, ">": ast.OpGt, ">=": ast.OpGte,
	"+": ast.OpPlus, "-": ast.OpMinus, "*": ast.OpStar, "/": ast.OpDiv, "%": ast.OpMod,
	"||": ast.OpConcat, "like": ast.OpLike, "in": ast.OpIn, "between": ast.OpBetween,
}

// lower is the single recursive parse-tree-to-AST translation function
// (spec §4.7). It owns every semantic transformation the grammar alone
// cannot express: attaching source locations, splitting the DISTINCT/ALL
// quantifier off a projection, translating negated compound operators into
// an explicit NOT wrapper, and folding comma/JOIN from-items into a single
// left-associative FromSourceJoin chain.
func lower(n *parsetree.Node, opts Options) (ast.ExprNode, error) {
	metas := ast.AtPosition(n.Anchor.Position)

	switch n.Type {
	case parsetree.TypeLiteral:
		return &ast.Literal{Value: literalValue(n.Anchor), Metas: metas}, nil

	case parsetree.TypeNull:
		return &ast.Literal{Value: value.Null, Metas: metas}, nil

	case parsetree.TypeMissing:
		return &ast.LiteralMissing{Metas: metas}, nil

	case parsetree.TypeIdent:
		return &ast.VariableReference{
			Name:            n.Anchor.Text,
			CaseSensitivity: caseSensitivityOf(n.Anchor),
			ScopeQualifier:  ast.Unqualified,
			Metas:           metas,
		}, nil

	case parsetree.TypeLexicalIdent:
		return &ast.VariableReference{
			Name:            n.Anchor.Text,
			CaseSensitivity: caseSensitivityOf(n.Anchor),
			ScopeQualifier:  ast.Lexical,
			Metas:           metas,
		}, nil

	case parsetree.TypePath:
		return lowerPath(n, opts, metas)

	case parsetree.TypeList:
		items, err := lowerExprList(n.Children, opts)
		if err != nil {
			return nil, err
		}
		return &ast.ListExprNode{Items: items, Metas: metas}, nil

	case parsetree.TypeBag:
		items, err := lowerExprList(n.Children, opts)
		if err != nil {
			return nil, err
		}
		return &ast.Bag{Items: items, Metas: metas}, nil

	case parsetree.TypeStruct:
		fields := make([]ast.StructField, 0, len(n.Children))
		for _, f := range n.Children {
			key, err := lower(f.Children[0], opts)
			if err != nil {
				return nil, err
			}
			val, err := lower(f.Children[1], opts)
			if err != nil {
				return nil, err
			}
			fields = append(fields, ast.StructField{Key: key, Value: val})
		}
		return &ast.Struct{Fields: fields, Metas: metas}, nil

	case parsetree.TypeNAry:
		op, ok := naryOpByText[n.Op]
		if !ok {
			return nil, errAt(perrors.ParseUnknownOperator, n.Anchor.Position, "unknown operator "+n.Op)
		}
		args, err := lowerExprList(n.Children, opts)
		if err != nil {
			return nil, err
		}
		return &ast.NAry{Op: op, Args: args, Metas: metas}, nil

	case parsetree.TypeNegatedNAry:
		positive, err := lower(n.Children[0], opts)
		if err != nil {
			return nil, err
		}
		return &ast.NAry{Op: ast.OpNot, Args: []ast.ExprNode{positive}, Metas: metas.WithLegacyLogicalNot()}, nil

	case parsetree.TypeTypedCast:
		val, err := lower(n.Children[0], opts)
		if err != nil {
			return nil, err
		}
		return &ast.Typed{Op: ast.OpCast, Value: val, DataType: n.DataType, Metas: metas}, nil

	case parsetree.TypeTypedIs:
		val, err := lower(n.Children[0], opts)
		if err != nil {
			return nil, err
		}
		return &ast.Typed{Op: ast.OpIs, Value: val, DataType: n.DataType, Metas: metas}, nil

	case parsetree.TypeSimpleCase:
		val, err := lower(n.Children[0], opts)
		if err != nil {
			return nil, err
		}
		branches, elseExpr, err := lowerCaseBranches(n.Children[1:], opts)
		if err != nil {
			return nil, err
		}
		return &ast.SimpleCase{Value: val, WhenBranches: branches, Else: elseExpr, Metas: metas}, nil

	case parsetree.TypeSearchedCase:
		branches, elseExpr, err := lowerCaseBranches(n.Children, opts)
		if err != nil {
			return nil, err
		}
		return &ast.SearchedCase{WhenBranches: branches, Else: elseExpr, Metas: metas}, nil

	case parsetree.TypeCallAgg:
		arg, err := lower(n.Children[0], opts)
		if err != nil {
			return nil, err
		}
		return &ast.CallAgg{
			FuncRef:       n.Anchor.Text,
			SetQuantifier: setQuantifierOf(n.Op),
			Arg:           arg,
			Metas:         metas,
		}, nil

	case parsetree.TypeCallAggStar:
		return &ast.CallAgg{
			FuncRef:       n.Anchor.Text,
			SetQuantifier: setQuantifierOf(n.Op),
			Wildcard:      true,
			Metas:         metas,
		}, nil

	case parsetree.TypeCall:
		args, err := lowerExprList(n.Children, opts)
		if err != nil {
			return nil, err
		}
		funcRef := &ast.VariableReference{Name: n.Op, CaseSensitivity: ast.Insensitive, Metas: metas}
		return &ast.NAry{Op: ast.OpCall, Args: append([]ast.ExprNode{funcRef}, args...), Metas: metas}, nil

	case parsetree.TypeSelect, parsetree.TypeSelectPivot:
		return lowerSelect(n, opts)

	default:
		return nil, errAt(perrors.ParseMalformedParseTree, n.Anchor.Position,
			"lower: unhandled parse-tree node type "+string(n.Type))
	}
}

func literalValue(tok lexer.Token) value.Value {
	switch {
	case tok.Type == lexer.KEYWORD && tok.Text == "true":
		return value.True
	case tok.Type == lexer.KEYWORD && tok.Text == "false":
		return value.False
	case tok.Type == lexer.TRIM_SPECIFICATION || tok.Type == lexer.DATE_PART:
		return value.NewSymbol(tok.Text)
	default:
		return tok.Value
	}
}

func caseSensitivityOf(tok lexer.Token) ast.CaseSensitivity {
	if tok.Type == lexer.QUOTED_IDENTIFIER {
		return ast.Sensitive
	}
	return ast.Insensitive
}

func setQuantifierOf(text string) ast.SetQuantifier {
	if text == "distinct" {
		return ast.Distinct
	}
	return ast.All
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func lowerExprList(nodes []*parsetree.Node, opts Options) ([]ast.ExprNode, error) {
	out := make([]ast.ExprNode, 0, len(nodes))
	for _, c := range nodes {
		e, err := lower(c, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// lowerCaseBranches splits a flat (cond, result, cond, result, ..., [else])
// child list into CaseWhen pairs and an optional trailing else expression.
func lowerCaseBranches(nodes []*parsetree.Node, opts Options) ([]ast.CaseWhen, ast.ExprNode, error) {
	hasElse := len(nodes)%2 == 1
	pairCount := len(nodes)
	if hasElse {
		pairCount--
	}
	branches := make([]ast.CaseWhen, 0, pairCount/2)
	for i := 0; i < pairCount; i += 2 {
		cond, err := lower(nodes[i], opts)
		if err != nil {
			return nil, nil, err
		}
		result, err := lower(nodes[i+1], opts)
		if err != nil {
			return nil, nil, err
		}
		branches = append(branches, ast.CaseWhen{Cond: cond, Result: result})
	}
	var elseExpr ast.ExprNode
	if hasElse {
		var err error
		elseExpr, err = lower(nodes[len(nodes)-1], opts)
		if err != nil {
			return nil, nil, err
		}
	}
	return branches, elseExpr, nil
}

func lowerPath(n *parsetree.Node, opts Options, metas ast.Metas) (ast.ExprNode, error) {
	root, err := lower(n.Children[0], opts)
	if err != nil {
		return nil, err
	}
	components := make([]ast.PathComponent, 0, len(n.Children)-1)
	for _, c := range n.Children[1:] {
		switch c.Type {
		case parsetree.TypePathComponentWildcard:
			components = append(components, ast.PathComponentWildcard{})
		case parsetree.TypePathComponentUnpivot:
			components = append(components, ast.PathComponentUnpivot{})
		case parsetree.TypePathComponentExpr:
			expr, err := lower(c.Children[0], opts)
			if err != nil {
				return nil, err
			}
			components = append(components, ast.PathComponentExpr{
				Expr:            expr,
				CaseSensitivity: caseSensitivityOf(c.Children[0].Anchor),
			})
		default:
			return nil, errAt(perrors.ParseInvalidPathComponent, c.Anchor.Position, "invalid path component")
		}
	}
	return &ast.Path{Root: root, Components: components, Metas: metas}, nil
}

// lowerSelect builds the ast.Select for a TypeSelect or TypeSelectPivot
// parse-tree node. The parser places a PIVOT projection (a TypeSelectPivot
// node with no quantifier) in the projection slot of a TypeSelect node, where
// lowerProjection lowers it like any other projection. A bare TypeSelectPivot
// node passed here directly lowers to a Select carrying only the pivot
// projection.
func lowerSelect(n *parsetree.Node, opts Options) (ast.ExprNode, error) {
	if n.Type == parsetree.TypeSelectPivot {
		val, err := lower(n.Children[0], opts)
		if err != nil {
			return nil, err
		}
		key, err := lower(n.Children[1], opts)
		if err != nil {
			return nil, err
		}
		return &ast.Select{
			SetQuantifier: ast.All,
			Projection:    ast.SelectProjectionPivot{Key: key, Value: val},
			Metas:         ast.AtPosition(n.Anchor.Position),
		}, nil
	}

	if len(n.Children) != 6 {
		return nil, errAt(perrors.ParseMalformedParseTree, n.Anchor.Position, "select node missing clause slots")
	}
	projNode, fromNode, whereNode, groupByNode, havingNode, limitNode :=
		n.Children[0], n.Children[1], n.Children[2], n.Children[3], n.Children[4], n.Children[5]

	projection, quantifier, err := lowerProjection(projNode, opts)
	if err != nil {
		return nil, err
	}
	if fromNode == nil {
		return nil, errAt(perrors.ParseSelectMissingFrom, n.Anchor.Position, "SELECT requires a FROM clause")
	}
	from, err := lowerFromSource(fromNode, opts)
	if err != nil {
		return nil, err
	}

	var where, having, limit ast.ExprNode
	if whereNode != nil {
		if where, err = lower(whereNode, opts); err != nil {
			return nil, err
		}
	}
	if havingNode != nil {
		if having, err = lower(havingNode, opts); err != nil {
			return nil, err
		}
	}
	if limitNode != nil {
		if limit, err = lower(limitNode, opts); err != nil {
			return nil, err
		}
	}
	var groupBy *ast.GroupBy
	if groupByNode != nil {
		if groupBy, err = lowerGroupBy(groupByNode, opts); err != nil {
			return nil, err
		}
	}

	return &ast.Select{
		SetQuantifier: quantifier,
		Projection:    projection,
		From:          from,
		Where:         where,
		GroupBy:       groupBy,
		Having:        having,
		Limit:         limit,
		Metas:         ast.AtPosition(n.Anchor.Position),
	}, nil
}

func lowerProjection(n *parsetree.Node, opts Options) (ast.SelectProjection, ast.SetQuantifier, error) {
	switch n.Type {
	case parsetree.TypeSelectListStar:
		return ast.SelectProjectionList{Items: []ast.SelectListItem{ast.SelectListItemStar{}}}, setQuantifierOf(n.Op), nil

	case parsetree.TypeSelectListItem:
		items := make([]ast.SelectListItem, 0, len(n.Children))
		for _, c := range n.Children {
			item, err := lowerSelectListItem(c, opts)
			if err != nil {
				return nil, ast.All, err
			}
			items = append(items, item)
		}
		return ast.SelectProjectionList{Items: items}, setQuantifierOf(n.Op), nil

	case parsetree.TypeSelectValue:
		val, err := lower(n.Children[0], opts)
		if err != nil {
			return nil, ast.All, err
		}
		return ast.SelectProjectionValue{Expr: val}, setQuantifierOf(n.Op), nil

	case parsetree.TypeSelectPivot:
		val, err := lower(n.Children[0], opts)
		if err != nil {
			return nil, ast.All, err
		}
		key, err := lower(n.Children[1], opts)
		if err != nil {
			return nil, ast.All, err
		}
		return ast.SelectProjectionPivot{Key: key, Value: val}, ast.All, nil

	default:
		return nil, ast.All, errAt(perrors.ParseMalformedParseTree, n.Anchor.Position, "unrecognized projection node")
	}
}

func lowerSelectListItem(n *parsetree.Node, opts Options) (ast.SelectListItem, error) {
	switch n.Type {
	case parsetree.TypeSelectListProjectAll:
		expr, err := lower(n.Children[0], opts)
		if err != nil {
			return nil, err
		}
		return ast.SelectListItemProjectAll{Expr: expr}, nil
	case parsetree.TypeSelectListItem:
		expr, err := lower(n.Children[0], opts)
		if err != nil {
			return nil, err
		}
		return ast.SelectListItemExpr{Expr: expr, AsAlias: strPtr(n.Alias)}, nil
	default:
		return nil, errAt(perrors.ParseMalformedParseTree, n.Anchor.Position, "unrecognized select-list item node")
	}
}

func literalTrue(p pos.Position) ast.ExprNode {
	return &ast.Literal{Value: value.True, Metas: ast.AtPosition(p)}
}

func lowerFromSource(n *parsetree.Node, opts Options) (ast.FromSource, error) {
	switch n.Type {
	case parsetree.TypeFromExpr:
		expr, err := lower(n.Children[0], opts)
		if err != nil {
			return nil, err
		}
		return &ast.FromSourceExpr{Expr: expr, AsAlias: strPtr(n.Alias), AtAlias: strPtr(n.Alias2)}, nil

	case parsetree.TypeFromUnpivot:
		expr, err := lower(n.Children[0], opts)
		if err != nil {
			return nil, err
		}
		return &ast.FromSourceUnpivot{
			Expr: expr, AsAlias: strPtr(n.Alias), AtAlias: strPtr(n.Alias2),
			Metas: ast.AtPosition(n.Anchor.Position),
		}, nil

	case parsetree.TypeFromJoin:
		left, err := lowerFromSource(n.Children[0], opts)
		if err != nil {
			return nil, err
		}
		right, err := lowerFromSource(n.Children[1], opts)
		if err != nil {
			return nil, err
		}
		metas := ast.AtPosition(n.Anchor.Position)

		var op ast.JoinOp
		var cond ast.ExprNode
		switch n.Op {
		case "inner":
			op = ast.JoinInner
		case "left":
			op = ast.JoinLeft
		case "right":
			op = ast.JoinRight
		case "outer":
			op = ast.JoinOuter
		case "cross":
			op = ast.JoinInner
		default:
			return nil, errAt(perrors.ParseMalformedParseTree, n.Anchor.Position, "unknown join operator "+n.Op)
		}

		if n.Flag {
			// Comma-separated from-item: implicit inner join (spec §4.4).
			cond = literalTrue(n.Anchor.Position)
			metas = metas.WithImplicitJoin()
		} else if n.Op == "cross" {
			cond = literalTrue(n.Anchor.Position)
		} else if n.Children[2] != nil {
			cond, err = lower(n.Children[2], opts)
			if err != nil {
				return nil, err
			}
		} else {
			cond = literalTrue(n.Anchor.Position)
		}

		return &ast.FromSourceJoin{Op: op, Left: left, Right: right, Condition: cond, Metas: metas}, nil

	default:
		return nil, errAt(perrors.ParseMalformedParseTree, n.Anchor.Position, "unrecognized from-source node")
	}
}

func lowerGroupBy(n *parsetree.Node, opts Options) (*ast.GroupBy, error) {
	strategy := ast.GroupFull
	if n.Op == "partial" {
		strategy = ast.GroupPartial
	}
	items := make([]ast.GroupByItem, 0, len(n.Children))
	for _, c := range n.Children {
		expr, err := lower(c.Children[0], opts)
		if err != nil {
			return nil, err
		}
		items = append(items, ast.GroupByItem{Expr: expr, AsAlias: strPtr(c.Alias)})
	}
	return &ast.GroupBy{Strategy: strategy, Items: items, GroupAsName: strPtr(n.Alias)}, nil
}
