package join

import (
	"fmt"
	"maps"
	"slices"

	"team-reconciler/internal/diagnostic"
	"team-reconciler/internal/match"
)

// Diagnostic codes attached to a Report.
const (
	CodeUnmatchedSide     = "unmatched_side"
	CodeNoTablesForSide   = "no_tables_for_side"
	CodeMalformedName     = "malformed_name"
	CodeAmbiguousMatch    = "ambiguous_match"
	CodeAttributeShadowed = "attribute_shadowed"
)

// Joiner attaches reference statistics to fixtures. Tables are normalized
// once at construction; a Joiner holds no mutable state and is safe for
// concurrent use.
type Joiner struct {
	matcher *match.Matcher
	tables  map[string]*referenceTable
	sides   map[Side][]string
}

type referenceTable struct {
	teams []CanonicalTeam
	set   *match.CandidateSet
}

// NewJoiner validates options against the supplied tables and prepares
// every table for matching. Configuration mistakes are returned as errors.
func NewJoiner(tables map[string][]CanonicalTeam, opts Options) (*Joiner, error) {
	matcher, err := match.NewMatcher(opts.matcherConfig())
	if err != nil {
		return nil, fmt.Errorf("invalid join options: %w", err)
	}

	sides, err := opts.resolveSides(tables)
	if err != nil {
		return nil, fmt.Errorf("invalid join options: %w", err)
	}

	j := &Joiner{
		matcher: matcher,
		tables:  make(map[string]*referenceTable, len(tables)),
		sides:   sides,
	}

	for name, teams := range tables {
		names := make([]string, len(teams))
		for i, t := range teams {
			names[i] = t.Name
		}

		j.tables[name] = &referenceTable{
			teams: slices.Clone(teams),
			set:   matcher.Prepare(names),
		}
	}

	return j, nil
}

// Tables returns the table names consulted for side, in priority order.
func (j *Joiner) Tables(side Side) []string {
	return slices.Clone(j.sides[side])
}

// Join reconciles every fixture. It returns exactly one outcome per fixture,
// in input order.
func (j *Joiner) Join(fixtures []FixtureRecord) []JoinOutcome {
	outcomes := make([]JoinOutcome, len(fixtures))
	for i, f := range fixtures {
		outcomes[i] = j.JoinOne(f)
	}

	return outcomes
}

// JoinOne reconciles a single fixture.
func (j *Joiner) JoinOne(f FixtureRecord) JoinOutcome {
	out := JoinOutcome{
		Fixture:    f.clone(),
		Attributes: make(map[string]Value),
	}

	out.Home = j.lookupSide(SideHome, f.Home, out.Attributes)
	out.Away = j.lookupSide(SideAway, f.Away, out.Attributes)
	out.Status = classify(out.Home, out.Away)

	return out
}

func (j *Joiner) lookupSide(side Side, raw string, attrs map[string]Value) SideOutcome {
	so := SideOutcome{
		Side:      side,
		Query:     raw,
		Malformed: j.matcher.Normalizer().Normalize(raw) == "",
		Lookups:   make([]TableLookup, 0, len(j.sides[side])),
	}

	for _, name := range j.sides[side] {
		table := j.tables[name]
		res := j.matcher.MatchPrepared(raw, table.set)

		lookup := TableLookup{Table: name, Result: res}
		if res.Matched {
			lookup.Attributes = maps.Clone(table.teams[res.Index].Attributes)

			for _, attr := range slices.Sorted(maps.Keys(lookup.Attributes)) {
				key := AttributeKey(side, attr)
				if _, taken := attrs[key]; !taken {
					attrs[key] = lookup.Attributes[attr]
				}
			}
		}

		so.Lookups = append(so.Lookups, lookup)
	}

	return so
}

// classify applies the three-way status rule: matched when both sides have
// tables and every lookup matched, unmatched when nothing matched.
func classify(home, away SideOutcome) Status {
	switch {
	case home.Matched() && away.Matched():
		return StatusMatched
	case home.anyMatched() || away.anyMatched():
		return StatusPartial
	default:
		return StatusUnmatched
	}
}

// Reconcile joins fixtures and summarizes the run with statistics and
// data-quality diagnostics.
func (j *Joiner) Reconcile(fixtures []FixtureRecord) *Report {
	report := &Report{
		Outcomes: j.Join(fixtures),
		Stats:    Stats{Tables: make(map[string]TableStats, len(j.tables))},
	}

	for name := range j.tables {
		report.Stats.Tables[name] = TableStats{}
	}

	for _, side := range Sides {
		if len(j.sides[side]) == 0 {
			report.Diagnostics.AddInfo(CodeNoTablesForSide,
				"no reference table applies to this side; it is reported unmatched for every fixture",
				"", side.String())
		}
	}

	shadowed := make(map[string]struct{})

	for i, out := range report.Outcomes {
		report.Stats.add(out)
		j.diagnose(&report.Diagnostics, i, out, shadowed)
	}

	return report
}

func (j *Joiner) diagnose(diags *diagnostic.Diagnostics, i int, out JoinOutcome, shadowed map[string]struct{}) {
	for _, side := range Sides {
		so := out.Side(side)
		subject := fmt.Sprintf("fixture %d %s %q", i+1, side, so.Query)

		if so.Malformed {
			diags.AddWarning(CodeMalformedName, "team name is empty after normalization", "", subject)
			continue
		}

		owner := make(map[string]string)

		for _, l := range so.Lookups {
			switch {
			case !l.Matched():
				var suggestions []string
				if l.Result.Closest != "" {
					suggestions = append(suggestions, l.Result.Closest)
				}

				diags.AddWarning(CodeUnmatchedSide,
					fmt.Sprintf("no team reached the threshold (best score %.1f)", l.Result.Score),
					l.Table, subject, suggestions...)
			case l.Result.Ambiguous:
				diags.AddInfo(CodeAmbiguousMatch,
					fmt.Sprintf("matched %q with score %.1f but another team scored within the ambiguity gap",
						l.Result.Name, l.Result.Score),
					l.Table, subject)
			}

			for _, attr := range slices.Sorted(maps.Keys(l.Attributes)) {
				first, taken := owner[attr]
				if !taken {
					owner[attr] = l.Table
					continue
				}

				key := side.String() + "|" + first + "|" + l.Table + "|" + attr
				if _, seen := shadowed[key]; seen {
					continue
				}

				shadowed[key] = struct{}{}
				diags.AddInfo(CodeAttributeShadowed,
					fmt.Sprintf("column %q from table %q is shadowed by table %q", attr, l.Table, first),
					l.Table, AttributeKey(side, attr))
			}
		}
	}
}

// Join reconciles fixtures against reference tables in one call. Invalid
// options are returned as errors before any fixture is processed.
func Join(fixtures []FixtureRecord, tables map[string][]CanonicalTeam, opts Options) ([]JoinOutcome, error) {
	j, err := NewJoiner(tables, opts)
	if err != nil {
		return nil, err
	}

	return j.Join(fixtures), nil
}

// Reconcile is Join plus run statistics and diagnostics.
func Reconcile(fixtures []FixtureRecord, tables map[string][]CanonicalTeam, opts Options) (*Report, error) {
	j, err := NewJoiner(tables, opts)
	if err != nil {
		return nil, err
	}

	return j.Reconcile(fixtures), nil
}
