package feed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"team-reconciler/internal/join"
)

// ErrNoTable is returned when an HTML document has no table matching the selector.
var ErrNoTable = errors.New("no HTML table found")

const byteOrderMark = "\ufeff"

// ReadTable parses a CSV reference table. Headers are trimmed, columns
// that are empty in every row are dropped, rows with a blank team name are
// skipped and counted, and cells become numbers when ParseDecimal accepts
// them. Blank cells are left out of a team's attributes.
func ReadTable(r io.Reader, schema TableSchema) (*Table, error) {
	records, err := readCSV(r, schema.Comma)
	if err != nil {
		return nil, err
	}

	return buildTable(records, schema)
}

// ReadHTMLTable parses a reference table from the first HTML <table>
// matching schema.Selector, with the same semantics as ReadTable. The first
// row with cells is the header.
func ReadHTMLTable(r io.Reader, schema TableSchema) (*Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML: %w", err)
	}

	selector := schema.Selector
	if selector == "" {
		selector = "table"
	}

	table := doc.Find(selector).First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w for selector %q", ErrNoTable, selector)
	}

	var records [][]string

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		// Skip rows that belong to a nested table.
		if row.Closest("table").Get(0) != table.Get(0) {
			return
		}

		var cells []string

		row.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})

		if len(cells) > 0 {
			records = append(records, cells)
		}
	})

	return buildTable(records, schema)
}

func readCSV(r io.Reader, comma rune) ([][]string, error) {
	reader := csv.NewReader(r)
	if comma != 0 {
		reader.Comma = comma
	}

	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], byteOrderMark)
	}

	return records, nil
}

// headers trims header names and makes them unique. Blank headers get a
// positional name; repeats get a ".N" suffix.
func headers(raw []string) []string {
	out := make([]string, len(raw))
	seen := make(map[string]int, len(raw))

	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("column_%d", i+1)
		}

		if n := seen[h]; n > 0 {
			seen[h] = n + 1
			h = fmt.Sprintf("%s.%d", h, n)
		} else {
			seen[h] = 1
		}

		out[i] = h
	}

	return out
}

// columnIndex finds name among headers, ignoring case and surrounding space.
func columnIndex(headers []string, name string) int {
	name = strings.TrimSpace(name)
	for i, h := range headers {
		if strings.EqualFold(h, name) {
			return i
		}
	}

	return -1
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[i])
}

func buildTable(records [][]string, schema TableSchema) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: source has no header row", ErrMissingColumn)
	}

	names := headers(records[0])
	rows := records[1:]

	nameIdx := 0
	if schema.NameColumn != "" {
		nameIdx = columnIndex(names, schema.NameColumn)
		if nameIdx < 0 {
			return nil, fmt.Errorf("%w: name column %q", ErrMissingColumn, schema.NameColumn)
		}
	}

	var attrIdx []int

	if len(schema.Columns) > 0 {
		for _, col := range schema.Columns {
			i := columnIndex(names, col)
			if i < 0 {
				return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
			}

			attrIdx = append(attrIdx, i)
		}
	} else {
		for i := range names {
			if i != nameIdx && !emptyColumn(rows, i) {
				attrIdx = append(attrIdx, i)
			}
		}
	}

	table := &Table{Columns: make([]string, len(attrIdx))}
	for k, i := range attrIdx {
		table.Columns[k] = names[i]
	}

	for _, row := range rows {
		name := cell(row, nameIdx)
		if name == "" {
			table.Skipped++
			continue
		}

		team := join.CanonicalTeam{Name: name, Attributes: make(map[string]join.Value, len(attrIdx))}

		for _, i := range attrIdx {
			if v := cell(row, i); v != "" {
				team.Attributes[names[i]] = ParseValue(v)
			}
		}

		table.Teams = append(table.Teams, team)
	}

	return table, nil
}

// emptyColumn reports whether column i is blank in every row. A table
// without rows has no empty columns.
func emptyColumn(rows [][]string, i int) bool {
	if len(rows) == 0 {
		return false
	}

	for _, row := range rows {
		if cell(row, i) != "" {
			return false
		}
	}

	return true
}
