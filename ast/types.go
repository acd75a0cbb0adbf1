package ast

// SQLType is the closed SQL-92/PartiQL type-name lexicon a DataType node may
// name (spec §3.3).
type SQLType string

const (
	TypeChar            SQLType = "CHAR"
	TypeVarchar         SQLType = "VARCHAR"
	TypeDecimal         SQLType = "DECIMAL"
	TypeNumeric         SQLType = "NUMERIC"
	TypeInteger         SQLType = "INTEGER"
	TypeSmallint        SQLType = "SMALLINT"
	TypeFloat           SQLType = "FLOAT"
	TypeReal            SQLType = "REAL"
	TypeDoublePrecision SQLType = "DOUBLE_PRECISION"
	TypeTimestamp       SQLType = "TIMESTAMP"
	TypeBoolean         SQLType = "BOOLEAN"
	TypeString          SQLType = "STRING"
	TypeSymbol          SQLType = "SYMBOL"
	TypeStruct          SQLType = "STRUCT"
	TypeBag             SQLType = "BAG"
	TypeList            SQLType = "LIST"
	TypeMissing         SQLType = "MISSING"
	TypeNull            SQLType = "NULL"
)

// DataType is a type expression: a type name plus an optional parenthesized
// argument list (spec §3.3 invariant: every argument is an unsigned integer
// literal).
type DataType struct {
	SQLType SQLType
	ArgList []int64
	Metas   Metas
}
