package toml

import "time"

// =========================
// AST Definitions
// =========================

type NodeKind string

var nodeKinds = struct {
	RootTable      NodeKind
	Key            NodeKind
	KeyValuePair   NodeKind
	Table          NodeKind
	ArrayTable     NodeKind
	InlineTable    NodeKind
	Array          NodeKind
	String         NodeKind
	Integer        NodeKind
	Float          NodeKind
	Boolean        NodeKind
	OffsetDateTime NodeKind
	LocalDateTime  NodeKind
	LocalDate      NodeKind
	LocalTime      NodeKind
}{
	RootTable:      "root_table",
	Key:            "key",
	KeyValuePair:   "key_value_pair",
	Table:          "table",
	ArrayTable:     "array_table",
	InlineTable:    "inline_table",
	Array:          "array",
	String:         "string",
	Integer:        "integer",
	Float:          "float",
	Boolean:        "boolean",
	OffsetDateTime: "offset_date_time",
	LocalDateTime:  "local_date_time",
	LocalDate:      "local_date",
	LocalTime:      "local_time",
}

// Node is one of the AST node types declared in this file. The set is
// closed: the unexported marker keeps other packages from adding kinds.
type Node interface {
	Kind() NodeKind
	node()
}

// Pos is the source position of the token that opened a node.
type Pos struct {
	Line   int
	Column int
}

// -------- Structure --------

// RootTable holds the document's top-level expressions in order: key/value
// pairs written before the first header, then Table and ArrayTable nodes.
type RootTable struct {
	Elements []Node
}

type Key struct {
	Pos
	Parts []string
}

type KeyValuePair struct {
	Key   *Key
	Value Node
}

type Table struct {
	Key      *Key
	Elements []*KeyValuePair
}

type ArrayTable struct {
	Key      *Key
	Elements []*KeyValuePair
}

type InlineTable struct {
	Elements []*KeyValuePair
}

type Array struct {
	Elements []Node
}

// -------- Scalars --------

type String struct{ Value string }

type Integer struct{ Value int64 }

type Float struct{ Value float64 }

type Boolean struct{ Value bool }

type OffsetDateTime struct{ Value time.Time }

type LocalDateTimeValue struct{ Value LocalDateTime }

type LocalDateValue struct{ Value LocalDate }

type LocalTimeValue struct{ Value LocalTime }

func (*RootTable) Kind() NodeKind          { return nodeKinds.RootTable }
func (*Key) Kind() NodeKind                { return nodeKinds.Key }
func (*KeyValuePair) Kind() NodeKind       { return nodeKinds.KeyValuePair }
func (*Table) Kind() NodeKind              { return nodeKinds.Table }
func (*ArrayTable) Kind() NodeKind         { return nodeKinds.ArrayTable }
func (*InlineTable) Kind() NodeKind        { return nodeKinds.InlineTable }
func (*Array) Kind() NodeKind              { return nodeKinds.Array }
func (*String) Kind() NodeKind             { return nodeKinds.String }
func (*Integer) Kind() NodeKind            { return nodeKinds.Integer }
func (*Float) Kind() NodeKind              { return nodeKinds.Float }
func (*Boolean) Kind() NodeKind            { return nodeKinds.Boolean }
func (*OffsetDateTime) Kind() NodeKind     { return nodeKinds.OffsetDateTime }
func (*LocalDateTimeValue) Kind() NodeKind { return nodeKinds.LocalDateTime }
func (*LocalDateValue) Kind() NodeKind     { return nodeKinds.LocalDate }
func (*LocalTimeValue) Kind() NodeKind     { return nodeKinds.LocalTime }

func (*RootTable) node()          {}
func (*Key) node()                {}
func (*KeyValuePair) node()       {}
func (*Table) node()              {}
func (*ArrayTable) node()         {}
func (*InlineTable) node()        {}
func (*Array) node()              {}
func (*String) node()             {}
func (*Integer) node()            {}
func (*Float) node()              {}
func (*Boolean) node()            {}
func (*OffsetDateTime) node()     {}
func (*LocalDateTimeValue) node() {}
func (*LocalDateValue) node()     {}
func (*LocalTimeValue) node()     {}
