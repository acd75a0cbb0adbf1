package parser

import (
	"strconv"

	"github.com/partiql-lang/partiql-go/ast"
	perrors "github.com/partiql-lang/partiql-go/errors"
	"github.com/partiql-lang/partiql-go/lexer"
	"github.com/partiql-lang/partiql-go/value"
)

var typeNameByKeyword = map[string]ast.SQLType{
	"char":             ast.TypeChar,
	"character":        ast.TypeChar,
	"varchar":          ast.TypeVarchar,
	"decimal":          ast.TypeDecimal,
	"numeric":          ast.TypeNumeric,
	"integer":          ast.TypeInteger,
	"int":              ast.TypeInteger,
	"smallint":         ast.TypeSmallint,
	"float":            ast.TypeFloat,
	"real":             ast.TypeReal,
	"double_precision": ast.TypeDoublePrecision,
	"timestamp":        ast.TypeTimestamp,
	"boolean":          ast.TypeBoolean,
	"bool":             ast.TypeBoolean,
	"string":           ast.TypeString,
	"symbol":           ast.TypeSymbol,
	"struct":           ast.TypeStruct,
	"bag":              ast.TypeBag,
	"list":             ast.TypeList,
}

// typeArity gives each SQLType's [min, max] parenthesized-argument count
// (spec §4.6: "CHAR accepts 0-1 integer args, DECIMAL 0-2, TIMESTAMP 0-1").
// VARCHAR and NUMERIC take the same ranges as CHAR and DECIMAL, FLOAT takes
// 0-1, and every other type takes no arguments (0-0).
var typeArity = map[ast.SQLType][2]int{
	ast.TypeChar:            {0, 1},
	ast.TypeVarchar:         {0, 1},
	ast.TypeDecimal:         {0, 2},
	ast.TypeNumeric:         {0, 2},
	ast.TypeInteger:         {0, 0},
	ast.TypeSmallint:        {0, 0},
	ast.TypeFloat:           {0, 1},
	ast.TypeReal:            {0, 0},
	ast.TypeDoublePrecision: {0, 0},
	ast.TypeTimestamp:       {0, 1},
	ast.TypeBoolean:         {0, 0},
	ast.TypeString:          {0, 0},
	ast.TypeSymbol:          {0, 0},
	ast.TypeStruct:          {0, 0},
	ast.TypeBag:             {0, 0},
	ast.TypeList:            {0, 0},
	ast.TypeMissing:         {0, 0},
	ast.TypeNull:            {0, 0},
}

// parseDataType parses a type expression: a type-name keyword (or NULL/MISSING,
// which are dedicated token types rather than KEYWORD) with an optional
// parenthesized, comma-separated argument list of unsigned integer literals
// (spec §3.3, §4.6).
func (p *Parser) parseDataType() (*ast.DataType, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, errAt(perrors.ParseExpectedTypeName, p.currentPos(), "expected a type name, found end of input")
	}
	var sqlType ast.SQLType
	switch {
	case tok.Type == lexer.NULL:
		p.advance()
		sqlType = ast.TypeNull
	case tok.Type == lexer.MISSING:
		p.advance()
		sqlType = ast.TypeMissing
	case tok.Type == lexer.KEYWORD:
		st, ok := typeNameByKeyword[tok.Text]
		if !ok {
			return nil, errAtToken(perrors.ParseExpectedTypeName, tok, "expected a type name, found keyword "+tok.Text)
		}
		p.advance()
		sqlType = st
	default:
		return nil, errAtToken(perrors.ParseExpectedTypeName, tok, "expected a type name")
	}

	var args []int64
	if _, ok := p.tryEat(lexer.LEFT_PAREN); ok {
		for {
			argTok, err := p.eat(lexer.LITERAL)
			if err != nil {
				return nil, err
			}
			if argTok.Value.Kind() != value.KindInteger || argTok.Value.Integer() < 0 {
				return nil, errAt(perrors.ParseInvalidTypeParam, argTok.Position,
					"type parameter must be an unsigned integer literal, got "+strconv.FormatInt(argTok.Value.Integer(), 10))
			}
			args = append(args, argTok.Value.Integer())
			if _, ok := p.tryEat(lexer.COMMA); ok {
				continue
			}
			break
		}
		if _, err := p.eat(lexer.RIGHT_PAREN); err != nil {
			return nil, err
		}
	}

	arity := typeArity[sqlType]
	if len(args) < arity[0] || len(args) > arity[1] {
		return nil, errAt(perrors.ParseCastArity, tok.Position,
			"wrong number of type arguments for "+string(sqlType),
			perrors.PropCastTo, string(sqlType),
			perrors.PropExpectedArityMin, arity[0],
			perrors.PropExpectedArityMax, arity[1])
	}

	return &ast.DataType{SQLType: sqlType, ArgList: args, Metas: ast.AtPosition(tok.Position)}, nil
}
