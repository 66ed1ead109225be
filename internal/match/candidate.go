package match

import (
	"sort"
)

// Candidate is one canonical name scored against a query.
type Candidate struct {
	// Name is the canonical spelling as supplied by the caller.
	Name string
	// Normalized is the comparison form of Name.
	Normalized string
	// Index is the position of Name in the candidate input.
	Index int
	// Score is the similarity to the query (0-100).
	Score float64
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by score descending, then by input position so ties are deterministic.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Index < c[j].Index
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n < 0 || n >= len(c) {
		return c
	}

	return c[:n]
}

// Best returns the best candidate, or nil if no candidates.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// IsAmbiguous returns true if the top two candidates are within gap points.
func (c CandidateList) IsAmbiguous(gap float64) bool {
	if len(c) < 2 {
		return false
	}

	return c[0].Score-c[1].Score < gap
}

// AboveThreshold returns candidates scoring at least threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList

	for _, cand := range c {
		if cand.Score >= threshold {
			result = append(result, cand)
		}
	}

	return result
}

// CandidateSet holds canonical names normalized once, for matching many
// queries against the same table.
type CandidateSet struct {
	names      []string
	normalized []string
}

// Len returns the number of candidates in the set.
func (s *CandidateSet) Len() int {
	if s == nil {
		return 0
	}

	return len(s.names)
}

// Names returns the canonical names in input order.
func (s *CandidateSet) Names() []string {
	if s == nil {
		return nil
	}

	return s.names
}

// rank scores every candidate against an already-normalized query.
func (s *CandidateSet) rank(normalizedQuery string) CandidateList {
	candidates := make(CandidateList, 0, s.Len())

	for i := range s.Len() {
		candidates = append(candidates, Candidate{
			Name:       s.names[i],
			Normalized: s.normalized[i],
			Index:      i,
			Score:      Score(normalizedQuery, s.normalized[i]),
		})
	}

	sort.Sort(candidates)

	return candidates
}
