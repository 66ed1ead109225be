// Package join attaches reference-table statistics to fixtures by fuzzy
// matching each side's team name against the canonical names of every
// table that applies to that side.
//
// Key capabilities:
//   - Join: one JoinOutcome per fixture, never dropping a record
//   - Reconcile: Join plus run statistics and data-quality diagnostics
//   - Side-qualified attributes ("home.PIH", "away.PIA") so sides never collide
//   - Per side/table unmatched markers, enumerated by JoinOutcome.Unmatched
//
// Only configuration mistakes (threshold outside [0, 100], unknown table or
// side) are errors. Unmatched or malformed names are reported in the
// outcomes. The package does not log.
package join
