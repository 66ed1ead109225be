package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"team-reconciler/internal/join"
)

// Write renders a reconciliation report. Attribute columns are sorted,
// home side first, so output is stable across runs.
func Write(w io.Writer, r *join.Report, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, r)
	case FormatYAML:
		return writeYAML(w, r)
	case FormatCSV:
		return writeCSV(w, r)
	case FormatTable, "":
		return writeTable(w, r)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// AttributeColumns returns the union of attribute keys across outcomes,
// home side first, then by name.
func AttributeColumns(outcomes []join.JoinOutcome) []string {
	set := make(map[string]struct{})

	for _, o := range outcomes {
		for k := range o.Attributes {
			set[k] = struct{}{}
		}
	}

	return slices.SortedFunc(maps.Keys(set), func(a, b string) int {
		if ra, rb := sideRank(a), sideRank(b); ra != rb {
			return ra - rb
		}

		return strings.Compare(a, b)
	})
}

func sideRank(key string) int {
	for i, side := range join.Sides {
		if strings.HasPrefix(key, side.String()+".") {
			return i
		}
	}

	return len(join.Sides)
}

// firstMatch returns the first matched lookup of a side, if any.
func firstMatch(so join.SideOutcome) (join.TableLookup, bool) {
	for _, l := range so.Lookups {
		if l.Matched() {
			return l, true
		}
	}

	return join.TableLookup{}, false
}

func orUnmatched(s string) string {
	if s == "" {
		return Unmatched
	}

	return s
}

func matchLabel(so join.SideOutcome) string {
	l, ok := firstMatch(so)
	if !ok {
		return Unmatched
	}

	return fmt.Sprintf("%s (%.1f)", l.Result.Name, l.Result.Score)
}

func attributeCell(o join.JoinOutcome, key string) string {
	v, ok := o.Attributes[key]
	if !ok {
		return Unmatched
	}

	return v.String()
}

func writeTable(w io.Writer, r *join.Report) error {
	attrs := AttributeColumns(r.Outcomes)

	withCompetition := slices.ContainsFunc(r.Outcomes, func(o join.JoinOutcome) bool {
		return o.Fixture.Competition != ""
	})

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := []string{"#", "HOME", "AWAY"}
	if withCompetition {
		header = append(header, "COMPETITION")
	}

	header = append(header, "STATUS", "HOME MATCH", "AWAY MATCH")
	header = append(header, attrs...)
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for i, o := range r.Outcomes {
		row := []string{strconv.Itoa(i + 1), orUnmatched(o.Fixture.Home), orUnmatched(o.Fixture.Away)}
		if withCompetition {
			row = append(row, orUnmatched(o.Fixture.Competition))
		}

		row = append(row, o.Status.String(), matchLabel(o.Home), matchLabel(o.Away))

		for _, key := range attrs {
			row = append(row, attributeCell(o, key))
		}

		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}

	return writeSummary(w, r)
}

func writeSummary(w io.Writer, r *join.Report) error {
	var b strings.Builder

	s := r.Stats
	fmt.Fprintf(&b, "\nFixtures: %d  Matched: %d  Partial: %d  Unmatched: %d\n",
		s.Fixtures, s.FullyMatched, s.PartiallyMatched, s.Unmatched)

	for _, name := range slices.Sorted(maps.Keys(s.Tables)) {
		ts := s.Tables[name]
		fmt.Fprintf(&b, "Table %s: %d/%d matched\n", name, ts.Matched, ts.Lookups)
	}

	if all := r.Diagnostics.All(); len(all) > 0 {
		b.WriteString("\n")

		for _, d := range all {
			fmt.Fprintf(&b, "%s: %s\n", d.Severity, d.String())
		}
	}

	_, err := io.WriteString(w, b.String())

	return err
}

func writeCSV(w io.Writer, r *join.Report) error {
	attrs := AttributeColumns(r.Outcomes)

	cw := csv.NewWriter(w)

	header := []string{"index", "home", "away", "competition", "status", "home_match", "home_score", "away_match", "away_score"}
	if err := cw.Write(append(header, attrs...)); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i, o := range r.Outcomes {
		row := []string{strconv.Itoa(i + 1), o.Fixture.Home, o.Fixture.Away, o.Fixture.Competition, o.Status.String()}
		row = append(row, matchColumns(o.Home)...)
		row = append(row, matchColumns(o.Away)...)

		for _, key := range attrs {
			row = append(row, attributeCell(o, key))
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i+1, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	return nil
}

func matchColumns(so join.SideOutcome) []string {
	l, ok := firstMatch(so)
	if !ok {
		return []string{Unmatched, Unmatched}
	}

	return []string{l.Result.Name, strconv.FormatFloat(l.Result.Score, 'f', 1, 64)}
}
