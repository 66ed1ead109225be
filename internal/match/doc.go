// Package match provides team-name normalization, similarity scoring and
// best-candidate selection for reconciling free-text names with canonical ones.
//
// Key functions:
//   - Normalize / NormalizeLoose: canonicalize names for comparison
//   - Score: symmetric 0-100 similarity of two normalized names
//   - Matcher.Match: best candidate at or above a caller-chosen threshold
//   - Matcher.Rank: all candidates ranked, for inspecting threshold choices
//
// The threshold has no default. Lower values recover more abbreviated or
// misspelled names at the price of false matches between similar clubs
// ("Manchester United" / "Manchester City"); callers must pick one per feed.
package match
