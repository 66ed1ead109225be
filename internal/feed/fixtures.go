package feed

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"team-reconciler/internal/join"
)

// DefaultSeparators split "<home> v <away>" event strings, tried in order.
var DefaultSeparators = []string{" vs. ", " vs ", " v ", " x ", " - "}

// ParseEvent splits an event string into home and away names. Separators
// are tried in order and matched case-insensitively; the first one that
// leaves two non-blank halves wins. ok is false when no separator applies.
func ParseEvent(event string, separators ...string) (home, away string, ok bool) {
	if len(separators) == 0 {
		separators = DefaultSeparators
	}

	for _, sep := range separators {
		if sep == "" {
			continue
		}

		for i := 0; i+len(sep) <= len(event); i++ {
			if !strings.EqualFold(event[i:i+len(sep)], sep) {
				continue
			}

			home = strings.TrimSpace(event[:i])
			away = strings.TrimSpace(event[i+len(sep):])

			if home != "" && away != "" {
				return home, away, true
			}
		}
	}

	return "", "", false
}

// ReadFixtures parses a CSV fixture feed. Every non-blank row becomes a
// fixture: an event that cannot be split yields empty team names, and the
// raw event is always kept in Fields so the record can still be reported.
func ReadFixtures(r io.Reader, schema FixtureSchema) ([]join.FixtureRecord, error) {
	if schema.EventColumn == "" && (schema.HomeColumn == "" || schema.AwayColumn == "") {
		return nil, errors.New("fixture schema needs an event column or both home and away columns")
	}

	records, err := readCSV(r, schema.Comma)
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, nil
	}

	names := headers(records[0])

	lookup := func(col string) (int, error) {
		if col == "" {
			return -1, nil
		}

		i := columnIndex(names, col)
		if i < 0 {
			return -1, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}

		return i, nil
	}

	var (
		eventIdx, homeIdx, awayIdx, competitionIdx int
		errs                                       []error
	)

	for _, c := range []struct {
		idx *int
		col string
	}{
		{&eventIdx, schema.EventColumn},
		{&homeIdx, schema.HomeColumn},
		{&awayIdx, schema.AwayColumn},
		{&competitionIdx, schema.CompetitionColumn},
	} {
		i, err := lookup(c.col)
		*c.idx = i
		errs = append(errs, err)
	}

	oddsIdx := make([]int, len(schema.OddsColumns))
	for k, col := range schema.OddsColumns {
		oddsIdx[k], err = lookup(col)
		errs = append(errs, err)
	}

	keepIdx := make([]int, len(schema.KeepColumns))
	for k, col := range schema.KeepColumns {
		keepIdx[k], err = lookup(col)
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	var fixtures []join.FixtureRecord

	for _, row := range records[1:] {
		if blankRow(row) {
			continue
		}

		f := join.FixtureRecord{Competition: cell(row, competitionIdx)}

		if eventIdx >= 0 {
			event := cell(row, eventIdx)
			f.Home, f.Away, _ = ParseEvent(event, schema.Separators...)
			f.Fields = map[string]string{names[eventIdx]: event}
		} else {
			f.Home = cell(row, homeIdx)
			f.Away = cell(row, awayIdx)
		}

		for k, i := range oddsIdx {
			price, ok := ParseDecimal(cell(row, i))
			if !ok {
				continue
			}

			if f.Odds == nil {
				f.Odds = make(map[string]float64, len(oddsIdx))
			}

			f.Odds[schema.OddsColumns[k]] = price
		}

		for _, i := range keepIdx {
			if f.Fields == nil {
				f.Fields = make(map[string]string, len(keepIdx))
			}

			f.Fields[names[i]] = cell(row, i)
		}

		fixtures = append(fixtures, f)
	}

	return fixtures, nil
}

func blankRow(row []string) bool {
	for i := range row {
		if cell(row, i) != "" {
			return false
		}
	}

	return true
}
