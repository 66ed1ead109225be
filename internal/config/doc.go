// Package config loads reconciliation profiles from YAML.
//
// A profile names the reference tables (CSV or HTML, local or remote), the
// fixture feed and the matching settings. The match threshold must always be
// given explicitly.
//
// Key functions:
//   - LoadFile / Parse: read a profile and apply defaults
//   - Validate: report configuration mistakes as diagnostics
//   - Profile.JoinOptions / TableSources / FixtureSource: inputs for join and feed
//   - Example / WriteFile: a starter profile
//   - LoadEnv / ApplyEnv: TEAM_RECONCILER_* overrides, optionally from a .env file
package config
