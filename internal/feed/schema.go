package feed

import (
	"errors"

	"team-reconciler/internal/join"
)

// ErrMissingColumn is returned when a configured column is absent from a source.
var ErrMissingColumn = errors.New("column not found")

// ErrUnknownFormat is returned for a source format other than csv or html.
var ErrUnknownFormat = errors.New("unknown source format")

// Format is the encoding of a source document.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatHTML Format = "html"
)

// TableSchema describes how to read one reference table.
type TableSchema struct {
	// NameColumn holds the canonical team name. Empty means the first column.
	NameColumn string
	// Columns restricts the attributes kept; empty keeps every other column.
	Columns []string
	// Comma is the CSV field delimiter; zero means ','.
	Comma rune
	// Selector picks the HTML table; empty means the first <table>.
	Selector string
}

// FixtureSchema describes how to read a fixture feed. Either EventColumn
// or both HomeColumn and AwayColumn must be set.
type FixtureSchema struct {
	// EventColumn holds "<home> v <away>" strings.
	EventColumn string
	// Separators split EventColumn; empty means DefaultSeparators.
	Separators []string
	HomeColumn string
	AwayColumn string
	// CompetitionColumn is optional.
	CompetitionColumn string
	// OddsColumns are parsed as decimal prices keyed by column name.
	OddsColumns []string
	// KeepColumns are copied verbatim into FixtureRecord.Fields.
	KeepColumns []string
	Comma       rune
}

// Table is a parsed reference table.
type Table struct {
	Name string
	// Columns are the attribute columns kept, in source order.
	Columns []string
	Teams   []join.CanonicalTeam
	// Skipped counts rows dropped for a blank team name.
	Skipped int
}
