package match

import (
	"errors"
	"fmt"

	"team-reconciler/internal/common"
)

// ErrInvalidThreshold is returned when a threshold lies outside [0, 100].
var ErrInvalidThreshold = errors.New("threshold must be within [0, 100]")

// DefaultAmbiguityGap is the score difference under which two accepted
// candidates are reported as ambiguous.
const DefaultAmbiguityGap = 5.0

// Config holds matcher configuration.
type Config struct {
	// Threshold is the minimum score (0-100) for a match. There is no default:
	// it trades recall for precision and must be chosen by the caller.
	Threshold float64
	// Normalizer canonicalizes queries and candidates. The zero value is strict.
	Normalizer Normalizer
	// AmbiguityGap marks a match as ambiguous when the runner-up is within
	// this many points and also clears the threshold. Zero disables the check.
	AmbiguityGap float64
}

// MatchResult is the outcome of one fuzzy-match attempt.
type MatchResult struct {
	// Query is the raw query string.
	Query string `json:"query" yaml:"query"`
	// Normalized is the comparison form of Query.
	Normalized string `json:"normalized" yaml:"normalized"`
	// Name is the matched canonical name; empty unless Matched.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Index is the position of Name among the candidates, -1 unless Matched.
	Index int `json:"index" yaml:"index"`
	// Score is the best score found, even when below the threshold.
	Score float64 `json:"score" yaml:"score"`
	// Matched is true iff Score >= threshold.
	Matched bool `json:"matched" yaml:"matched"`
	// Closest is the best-scoring candidate regardless of the threshold.
	Closest string `json:"closest,omitempty" yaml:"closest,omitempty"`
	// Ambiguous is set when another accepted candidate scored within the gap.
	Ambiguous bool `json:"ambiguous,omitempty" yaml:"ambiguous,omitempty"`
}

// Matcher scores queries against canonical names. It holds no mutable
// state and is safe for concurrent use.
type Matcher struct {
	config Config
}

// NewMatcher validates the configuration and creates a Matcher.
func NewMatcher(config Config) (*Matcher, error) {
	if !ValidThreshold(config.Threshold) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidThreshold, config.Threshold)
	}

	if config.AmbiguityGap < 0 {
		return nil, fmt.Errorf("ambiguity gap must not be negative: got %v", config.AmbiguityGap)
	}

	return &Matcher{config: config}, nil
}

// ValidThreshold reports whether t lies within [0, 100].
func ValidThreshold(t float64) bool {
	return common.IsInRange(MinScore, t, MaxScore)
}

// Match normalizes the query and candidates with a strict normalizer and
// returns the best match at or above threshold.
func Match(query string, candidates []string, threshold float64) (MatchResult, error) {
	m, err := NewMatcher(Config{Threshold: threshold})
	if err != nil {
		return MatchResult{}, err
	}

	return m.Match(query, candidates), nil
}

// Threshold returns the configured threshold.
func (m *Matcher) Threshold() float64 { return m.config.Threshold }

// Normalizer returns the configured normalizer.
func (m *Matcher) Normalizer() Normalizer { return m.config.Normalizer }

// Prepare normalizes candidates once for repeated matching.
func (m *Matcher) Prepare(candidates []string) *CandidateSet {
	set := &CandidateSet{
		names:      append([]string(nil), candidates...),
		normalized: make([]string, len(candidates)),
	}

	for i, c := range candidates {
		set.normalized[i] = m.config.Normalizer.Normalize(c)
	}

	return set
}

// Match returns the best candidate for query. An empty candidate list or a
// query that normalizes to nothing yields an unmatched result.
func (m *Matcher) Match(query string, candidates []string) MatchResult {
	return m.MatchPrepared(query, m.Prepare(candidates))
}

// MatchPrepared matches query against a prepared candidate set in a single
// pass. Ties are broken in favour of the earliest candidate.
func (m *Matcher) MatchPrepared(query string, set *CandidateSet) MatchResult {
	res := MatchResult{
		Query:      query,
		Normalized: m.config.Normalizer.Normalize(query),
		Index:      -1,
	}

	if res.Normalized == "" || set.Len() == 0 {
		return res
	}

	best, runnerUp := -1, -1
	bestScore, runnerUpScore := MinScore, MinScore

	for i, cand := range set.normalized {
		score := Score(res.Normalized, cand)

		switch {
		case best < 0 || score > bestScore:
			best, runnerUp = i, best
			bestScore, runnerUpScore = score, bestScore
		case runnerUp < 0 || score > runnerUpScore:
			runnerUp, runnerUpScore = i, score
		}
	}

	res.Score = bestScore
	res.Closest = set.names[best]

	if bestScore < m.config.Threshold {
		return res
	}

	res.Matched = true
	res.Name = set.names[best]
	res.Index = best

	if runnerUp >= 0 && m.config.AmbiguityGap > 0 &&
		runnerUpScore >= m.config.Threshold && bestScore-runnerUpScore < m.config.AmbiguityGap {
		res.Ambiguous = true
	}

	return res
}

// Rank returns all candidates sorted by score, best first.
func (m *Matcher) Rank(query string, set *CandidateSet) CandidateList {
	normalized := m.config.Normalizer.Normalize(query)
	if normalized == "" {
		return nil
	}

	return set.rank(normalized)
}
