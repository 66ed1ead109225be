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
	"team-reconciler/internal/match"
)

// WriteTeams renders the canonical team universe.
func WriteTeams(w io.Writer, names []string, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, names)
	case FormatYAML:
		return writeYAML(w, names)
	case FormatCSV:
		rows := make([][]string, 0, len(names)+1)

		rows = append(rows, []string{"team"})
		for _, n := range names {
			rows = append(rows, []string{n})
		}

		return writeCSVRows(w, rows)
	case FormatTable, "":
		for _, n := range names {
			if _, err := fmt.Fprintln(w, n); err != nil {
				return err
			}
		}

		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteOutcome renders one fixture with a row per side and table.
func WriteOutcome(w io.Writer, o join.JoinOutcome, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, o)
	case FormatYAML:
		return writeYAML(w, o)
	case FormatCSV:
		rows := [][]string{{"side", "table", "query", "match", "score", "closest", "attributes"}}

		for _, side := range join.Sides {
			so := o.Side(side)
			for _, l := range so.Lookups {
				rows = append(rows, []string{
					side.String(), l.Table, so.Query, orUnmatched(l.Result.Name),
					strconv.FormatFloat(l.Result.Score, 'f', 1, 64), l.Result.Closest, formatAttributes(l.Attributes),
				})
			}
		}

		return writeCSVRows(w, rows)
	case FormatTable, "":
		return writeOutcomeTable(w, o)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeOutcomeTable(w io.Writer, o join.JoinOutcome) error {
	fmt.Fprintf(w, "%s v %s  [%s]\n\n", orUnmatched(o.Fixture.Home), orUnmatched(o.Fixture.Away), o.Status)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SIDE\tTABLE\tMATCH\tSCORE\tDETAILS")

	for _, side := range join.Sides {
		so := o.Side(side)
		if len(so.Lookups) == 0 {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", side, Unmatched, Unmatched, Unmatched, join.ReasonNoTables)
			continue
		}

		for _, l := range so.Lookups {
			details := formatAttributes(l.Attributes)

			switch {
			case so.Malformed:
				details = join.ReasonMalformed
			case !l.Matched() && l.Result.Closest != "":
				details = "closest: " + l.Result.Closest
			case !l.Matched():
				details = join.ReasonEmptyTable
			}

			fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f\t%s\n", side, l.Table, orUnmatched(l.Result.Name), l.Result.Score, details)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}

	return nil
}

func formatAttributes(attrs map[string]join.Value) string {
	parts := make([]string, 0, len(attrs))
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		parts = append(parts, k+"="+attrs[k].String())
	}

	return strings.Join(parts, " ")
}

// RankedCandidate is one row of a candidate ranking.
type RankedCandidate struct {
	Rank       int     `json:"rank" yaml:"rank"`
	Name       string  `json:"name" yaml:"name"`
	Normalized string  `json:"normalized" yaml:"normalized"`
	Score      float64 `json:"score" yaml:"score"`
	Accepted   bool    `json:"accepted" yaml:"accepted"`
}

// WriteRanking renders candidates ranked against a query, marking those at
// or above threshold as accepted.
func WriteRanking(w io.Writer, ranked match.CandidateList, threshold float64, format Format) error {
	rows := make([]RankedCandidate, len(ranked))
	for i, c := range ranked {
		rows[i] = RankedCandidate{
			Rank:       i + 1,
			Name:       c.Name,
			Normalized: c.Normalized,
			Score:      c.Score,
			Accepted:   c.Score >= threshold,
		}
	}

	switch format {
	case FormatJSON:
		return writeJSON(w, rows)
	case FormatYAML:
		return writeYAML(w, rows)
	case FormatCSV:
		out := [][]string{{"rank", "name", "normalized", "score", "accepted"}}
		for _, r := range rows {
			out = append(out, []string{
				strconv.Itoa(r.Rank), r.Name, r.Normalized,
				strconv.FormatFloat(r.Score, 'f', 1, 64), strconv.FormatBool(r.Accepted),
			})
		}

		return writeCSVRows(w, out)
	case FormatTable, "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "RANK\tNAME\tNORMALIZED\tSCORE\tACCEPTED")

		for _, r := range rows {
			mark := ""
			if r.Accepted {
				mark = "yes"
			}

			fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f\t%s\n", r.Rank, r.Name, r.Normalized, r.Score, mark)
		}

		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeCSVRows(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	return nil
}
