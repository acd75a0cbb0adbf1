package parser

import (
	perrors "github.com/partiql-lang/partiql-go/errors"
	"github.com/partiql-lang/partiql-go/lexer"
	"github.com/partiql-lang/partiql-go/pos"
)

// errAt is the common case: build a *perrors.Error anchored at p with an
// optional trailing set of property key/value pairs.
func errAt(code perrors.ErrorCode, p pos.Position, msg string, extra ...any) *perrors.Error {
	return perrors.New(code, p, msg, extra...)
}

// errAtToken anchors the error at tok's own position, and (for structural
// errors) records what token type and text were actually found.
func errAtToken(code perrors.ErrorCode, tok lexer.Token, msg string, extra ...any) *perrors.Error {
	base := []any{perrors.PropTokenType, tok.Type.String(), perrors.PropTokenText, tok.Text}
	return perrors.New(code, tok.Position, msg, append(base, extra...)...)
}
