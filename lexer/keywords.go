package lexer

// keywords classifies a lowercased identifier lexeme as one of PartiQL's
// reserved words, or reports that it is an ordinary identifier. Lookup is
// bucketed by lexeme length first (mirroring oarkflow/sqlparser's
// keywordsByLen table) so the common case — a short scan over same-length
// candidates — never allocates.
//
// Most reserved words fold to the generic KEYWORD token type with their own
// lowercase spelling as canonical text (spec §3.1/§4.1). A handful of
// structural keywords get their own dedicated TokenType instead, because the
// parser branches on them so often that a dedicated tag reads better than a
// KEYWORD-plus-string-compare at every call site: AS, AT, FOR, NULL,
// MISSING, the TRIM specification words (LEADING/TRAILING/BOTH), and the
// EXTRACT date-part words (YEAR/MONTH/.../TIMEZONE_MINUTE).
type kwEntry struct {
	word string
	typ  TokenType
}

var keywordsByLen [32][]kwEntry

func init() {
	// The bulk of the fold table: spec §4.1's unary keyword list, plus the
	// PartiQL/SQL-92 type-name lexicon from spec §3.3 (CHAR, VARCHAR, ...),
	// all folding to the generic KEYWORD tag.
	plain := []string{
		"true", "false",
		"select", "from", "where", "group", "by", "having", "limit", "order",
		"asc", "desc", "pivot", "unpivot", "values", "on", "cast", "case",
		"when", "then", "else", "end", "and", "or", "not", "in", "is", "like",
		"escape", "between", "distinct", "all", "join", "inner", "left",
		"right", "outer", "full", "cross", "natural", "partial",
		"substring", "trim", "extract", "count", "sum", "min", "max", "avg",
		"value",

		// Data-type lexicon (spec §3.3).
		"char", "character", "varchar", "decimal", "numeric", "integer",
		"int", "smallint", "float", "real", "double", "precision",
		"timestamp", "boolean", "bool", "string", "symbol", "struct", "bag",
		"list", "date", "time",
	}
	for _, w := range plain {
		addKeyword(w, KEYWORD)
	}

	addKeyword("as", AS)
	addKeyword("at", AT)
	addKeyword("for", FOR)
	addKeyword("null", NULL)
	addKeyword("missing", MISSING)

	for _, w := range []string{"leading", "trailing", "both"} {
		addKeyword(w, TRIM_SPECIFICATION)
	}

	for _, w := range []string{
		"year", "month", "day", "hour", "minute", "second",
		"timezone_hour", "timezone_minute",
	} {
		addKeyword(w, DATE_PART)
	}
}

func addKeyword(word string, typ TokenType) {
	l := len(word)
	if l >= len(keywordsByLen) {
		panic("lexer: keyword too long for bucket table: " + word)
	}
	keywordsByLen[l] = append(keywordsByLen[l], kwEntry{word: word, typ: typ})
}

// lookupKeyword returns the TokenType for a lowercase candidate lexeme, and
// whether it matched any reserved word at all. val must already be
// lowercase; the lexer lowercases identifier candidates before calling this.
func lookupKeyword(val string) (TokenType, bool) {
	l := len(val)
	if l == 0 || l >= len(keywordsByLen) {
		return 0, false
	}
	for _, e := range keywordsByLen[l] {
		if e.word == val {
			return e.typ, true
		}
	}
	return 0, false
}

// isReservedWord reports whether word (assumed lowercase) is any reserved
// word recognized by the lexer. Exposed so the parser's reserved-word-set
// contract (spec §6) can be queried without re-deriving the table.
func isReservedWord(word string) bool {
	_, ok := lookupKeyword(word)
	return ok
}

// ReservedWords returns a defensive copy of every reserved word the lexer
// recognizes, sorted is not guaranteed. Part of the external contract (spec
// §6: "Reserved-word set ... are part of the external contract").
func ReservedWords() []string {
	var out []string
	for _, bucket := range keywordsByLen {
		for _, e := range bucket {
			out = append(out, e.word)
		}
	}
	return out
}
