// Package diagnostic provides structured errors, warnings and infos for
// profile validation and reconciliation runs.
//
// Key capabilities:
//   - Unmatched fixture side reports with the closest candidate
//   - Ambiguous match reports
//   - Shadowed attribute notices when two tables share a column
//   - Profile validation errors
package diagnostic
