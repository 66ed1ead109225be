package join

import (
	"maps"

	"team-reconciler/internal/match"
)

// CanonicalTeam is one reference row keyed by its canonical team name.
type CanonicalTeam struct {
	// Name is the canonical spelling used as the join key.
	Name string `json:"name" yaml:"name"`
	// Attributes are the row's statistics by column name.
	Attributes map[string]Value `json:"attributes" yaml:"attributes"`
}

// FixtureRecord is one observed or upcoming match to reconcile.
type FixtureRecord struct {
	// Home and Away are the raw, unnormalized team names.
	Home string `json:"home" yaml:"home"`
	Away string `json:"away" yaml:"away"`
	// Competition is the free-text league or cup name.
	Competition string `json:"competition,omitempty" yaml:"competition,omitempty"`
	// Odds are decimal prices by market label (e.g. "1", "X", "2").
	Odds map[string]float64 `json:"odds,omitempty" yaml:"odds,omitempty"`
	// Fields carries any other free-text columns from the feed.
	Fields map[string]string `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Name returns the raw team name for the given side.
func (f FixtureRecord) Name(side Side) string {
	if side == SideAway {
		return f.Away
	}

	return f.Home
}

func (f FixtureRecord) clone() FixtureRecord {
	f.Odds = maps.Clone(f.Odds)
	f.Fields = maps.Clone(f.Fields)

	return f
}

// TableLookup is the result of matching one fixture side against one table.
type TableLookup struct {
	// Table is the reference table name.
	Table string `json:"table" yaml:"table"`
	// Result is the fuzzy-match outcome.
	Result match.MatchResult `json:"result" yaml:"result"`
	// Attributes are copied from the matched team; nil when unmatched.
	Attributes map[string]Value `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Matched reports whether the lookup found a canonical team.
func (l TableLookup) Matched() bool { return l.Result.Matched }

// SideOutcome collects every table lookup for one side of a fixture.
type SideOutcome struct {
	Side Side `json:"side" yaml:"side"`
	// Query is the raw team name.
	Query string `json:"query" yaml:"query"`
	// Malformed is set when the name normalizes to nothing.
	Malformed bool `json:"malformed,omitempty" yaml:"malformed,omitempty"`
	// Lookups holds one entry per table applicable to the side, in table order.
	Lookups []TableLookup `json:"lookups" yaml:"lookups"`
}

// Matched reports whether the side has at least one table and every lookup matched.
func (s SideOutcome) Matched() bool {
	if len(s.Lookups) == 0 {
		return false
	}

	for _, l := range s.Lookups {
		if !l.Matched() {
			return false
		}
	}

	return true
}

// anyMatched reports whether at least one lookup matched.
func (s SideOutcome) anyMatched() bool {
	for _, l := range s.Lookups {
		if l.Matched() {
			return true
		}
	}

	return false
}

// Side returns the outcome for the given side.
func (o JoinOutcome) Side(side Side) SideOutcome {
	if side == SideAway {
		return o.Away
	}

	return o.Home
}

// Reasons for a failed side/table join.
const (
	ReasonNoTables       = "no reference table applies to this side"
	ReasonMalformed      = "team name is empty after normalization"
	ReasonBelowThreshold = "no candidate reached the threshold"
	ReasonEmptyTable     = "reference table has no teams"
)

// UnmatchedJoin names one side/table combination that did not match.
type UnmatchedJoin struct {
	Side Side `json:"side" yaml:"side"`
	// Table is empty when no table applies to the side.
	Table  string `json:"table,omitempty" yaml:"table,omitempty"`
	Reason string `json:"reason" yaml:"reason"`
}

// JoinOutcome is a fixture enriched with reference statistics.
type JoinOutcome struct {
	Fixture FixtureRecord `json:"fixture" yaml:"fixture"`
	Status  Status        `json:"status" yaml:"status"`
	Home    SideOutcome   `json:"home" yaml:"home"`
	Away    SideOutcome   `json:"away" yaml:"away"`
	// Attributes are keyed "<side>.<attribute>", e.g. "home.PIH". When two
	// tables on the same side share a column the first table wins.
	Attributes map[string]Value `json:"attributes" yaml:"attributes"`
}

// Unmatched enumerates every side/table join that failed.
func (o JoinOutcome) Unmatched() []UnmatchedJoin {
	var out []UnmatchedJoin

	for _, side := range Sides {
		so := o.Side(side)
		if len(so.Lookups) == 0 {
			out = append(out, UnmatchedJoin{Side: side, Reason: ReasonNoTables})
			continue
		}

		for _, l := range so.Lookups {
			if l.Matched() {
				continue
			}

			out = append(out, UnmatchedJoin{Side: side, Table: l.Table, Reason: lookupReason(so, l)})
		}
	}

	return out
}

func lookupReason(so SideOutcome, l TableLookup) string {
	switch {
	case so.Malformed:
		return ReasonMalformed
	case l.Result.Closest == "":
		return ReasonEmptyTable
	default:
		return ReasonBelowThreshold
	}
}

// AttributeKey builds the flat, side-qualified attribute key.
func AttributeKey(side Side, attribute string) string {
	return side.String() + "." + attribute
}
