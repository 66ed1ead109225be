package join

import (
	"team-reconciler/internal/diagnostic"
)

// Report is the result of a reconciliation run.
type Report struct {
	// Outcomes holds one entry per input fixture, in input order.
	Outcomes    []JoinOutcome          `json:"outcomes" yaml:"outcomes"`
	Stats       Stats                  `json:"stats" yaml:"stats"`
	Diagnostics diagnostic.Diagnostics `json:"diagnostics" yaml:"diagnostics"`
}

// Stats summarizes a reconciliation run.
type Stats struct {
	Fixtures         int `json:"fixtures" yaml:"fixtures"`
	FullyMatched     int `json:"fully_matched" yaml:"fully_matched"`
	PartiallyMatched int `json:"partially_matched" yaml:"partially_matched"`
	Unmatched        int `json:"unmatched" yaml:"unmatched"`
	// Tables counts lookups and hits per reference table.
	Tables map[string]TableStats `json:"tables" yaml:"tables"`
}

// TableStats counts lookups against one reference table.
type TableStats struct {
	Lookups int `json:"lookups" yaml:"lookups"`
	Matched int `json:"matched" yaml:"matched"`
}

// HitRate returns the fraction of lookups that matched, or 0 without lookups.
func (t TableStats) HitRate() float64 {
	if t.Lookups == 0 {
		return 0
	}

	return float64(t.Matched) / float64(t.Lookups)
}

func (s *Stats) add(out JoinOutcome) {
	s.Fixtures++

	switch out.Status {
	case StatusMatched:
		s.FullyMatched++
	case StatusPartial:
		s.PartiallyMatched++
	default:
		s.Unmatched++
	}

	for _, side := range Sides {
		for _, l := range out.Side(side).Lookups {
			ts := s.Tables[l.Table]
			ts.Lookups++

			if l.Matched() {
				ts.Matched++
			}

			s.Tables[l.Table] = ts
		}
	}
}

// Failed returns the outcomes that are not fully matched, in input order.
func (r *Report) Failed() []JoinOutcome {
	var failed []JoinOutcome

	for _, out := range r.Outcomes {
		if out.Status != StatusMatched {
			failed = append(failed, out)
		}
	}

	return failed
}
