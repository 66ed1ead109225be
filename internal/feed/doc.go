// Package feed loads reference tables and fixture feeds from CSV or HTML
// sources, local or remote.
//
// Key capabilities:
//   - Fetcher: HTTP downloads with retries, rate limiting and a TTL cache keyed by URL
//   - ReadTable / ReadHTMLTable: reference tables as join.CanonicalTeam rows
//   - ReadFixtures / ParseEvent: fixtures from "<home> v <away>" events or home/away columns
//   - ParseDecimal: numbers written with decimal commas or percent signs
//   - Loader: all of the above driven by table and fixture source descriptions
package feed
