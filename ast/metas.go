// Package ast defines the public, immutable PartiQL abstract syntax tree:
// the tagged sum types the parser lowers its internal parse tree into
// (expressions, SFW nodes, path components, from-sources, data types) plus
// the Metas bag every node carries.
package ast

import "github.com/partiql-lang/partiql-go/pos"

// Known meta tags. Metas is an open keyed bag, but these are the tags this
// module ever writes.
const (
	MetaSourceLocation  = "source_location"
	MetaLegacyLogicalNot = "legacy_logical_not"
	MetaIsImplicitJoin  = "is_implicit_join"
)

// Metas is the keyed annotation bag attached to every AST node: at minimum a
// source_location, plus semantic markers like legacy_logical_not and
// is_implicit_join (spec §3.3).
type Metas map[string]any

// AtPosition builds a Metas bag carrying only a source_location, the common
// case for every node lowered directly from a surface token.
func AtPosition(p pos.Position) Metas {
	return Metas{MetaSourceLocation: p}
}

// SourceLocation returns the node's source_location, and whether one is
// present. Synthetic nodes built purely from wrapping (e.g. the NOT wrapper
// around a negated operator) still carry the originating token's location by
// convention, per spec §3.3's invariant.
func (m Metas) SourceLocation() (pos.Position, bool) {
	p, ok := m[MetaSourceLocation].(pos.Position)
	return p, ok
}

// HasLegacyLogicalNot reports whether this node is a NAry(NOT, ...) wrapper
// synthesized from a negated surface operator (IS NOT, NOT LIKE, NOT
// BETWEEN, NOT IN) rather than an explicit NOT written by the user.
func (m Metas) HasLegacyLogicalNot() bool {
	v, _ := m[MetaLegacyLogicalNot].(bool)
	return v
}

// WithLegacyLogicalNot returns a copy of m with legacy_logical_not set.
func (m Metas) WithLegacyLogicalNot() Metas {
	return m.with(MetaLegacyLogicalNot, true)
}

// IsImplicitJoin reports whether this FromSourceJoin arose from a
// comma-separated from-list rather than an explicit JOIN keyword.
func (m Metas) IsImplicitJoin() bool {
	v, _ := m[MetaIsImplicitJoin].(bool)
	return v
}

// WithImplicitJoin returns a copy of m with is_implicit_join set.
func (m Metas) WithImplicitJoin() Metas {
	return m.with(MetaIsImplicitJoin, true)
}

func (m Metas) with(key string, value any) Metas {
	out := make(Metas, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out[key] = value
	return out
}
