// Package report renders reconciliation results for people and for other tools.
//
// Every writer supports the table, json, yaml and csv formats. Unmatched
// values are rendered as "-" in table and csv output.
package report
