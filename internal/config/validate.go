package config

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"team-reconciler/internal/diagnostic"
	"team-reconciler/internal/feed"
	"team-reconciler/internal/join"
	"team-reconciler/internal/match"
)

// OutputFormats lists the accepted values of Profile.Output.
var OutputFormats = []string{"table", "json", "yaml", "csv"}

// LogLevels lists the accepted values of LogConfig.Level.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks a profile for configuration mistakes. Errors make the
// profile unusable; warnings point at likely mistakes.
func Validate(p *Profile) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if p == nil {
		res.AddError("profile_is_nil", "profile is nil", "", "")
		return res
	}

	switch {
	case p.Threshold == nil:
		res.AddError("threshold_missing",
			"threshold is required; it trades match recall for precision and has no default", "", "threshold")
	case !match.ValidThreshold(*p.Threshold):
		res.AddError("threshold_out_of_range",
			fmt.Sprintf("threshold must be within [0, 100], got %v", *p.Threshold), "", "threshold")
	}

	if _, err := match.ParseMode(p.Mode); err != nil {
		res.AddError("unknown_mode", err.Error(), "", "mode")
	}

	if p.AmbiguityGap != nil && *p.AmbiguityGap < 0 {
		res.AddError("invalid_ambiguity_gap", "ambiguity_gap must not be negative", "", "ambiguity_gap")
	}

	if p.Output != "" && !slices.Contains(OutputFormats, strings.ToLower(p.Output)) {
		res.AddError("unknown_output", fmt.Sprintf("unknown output format %q", p.Output), "", "output")
	}

	if p.Log.Level != "" && !slices.Contains(LogLevels, strings.ToLower(p.Log.Level)) {
		res.AddWarning("unknown_log_level", fmt.Sprintf("unknown log level %q, info is used", p.Log.Level), "", "log.level",
			LogLevels...)
	}

	validateFetch(res, &p.Fetch)

	if len(p.Tables) == 0 {
		res.AddWarning("no_tables", "no reference tables are declared; every fixture will be unmatched", "", "tables")
	}

	seen := make(map[string]struct{}, len(p.Tables))

	for i := range p.Tables {
		validateTable(res, &p.Tables[i], i, seen)
	}

	if p.Fixtures != nil {
		validateFixtures(res, p.Fixtures)
	}

	return res
}

func validateFetch(res *diagnostic.Diagnostics, f *FetchConfig) {
	if f.Timeout < 0 {
		res.AddError("invalid_timeout", "fetch.timeout must not be negative", "", "fetch.timeout")
	}

	if f.Retries != nil && *f.Retries < 0 {
		res.AddError("invalid_retries", "fetch.retries must not be negative", "", "fetch.retries")
	}

	if f.RetryBackoff < 0 {
		res.AddError("invalid_retry_backoff", "fetch.retry_backoff must not be negative", "", "fetch.retry_backoff")
	}

	if f.RatePerSecond != nil && *f.RatePerSecond < 0 {
		res.AddError("invalid_rate", "fetch.rate_per_second must not be negative", "", "fetch.rate_per_second")
	}
}

func validateTable(res *diagnostic.Diagnostics, t *TableConfig, i int, seen map[string]struct{}) {
	subject := fmt.Sprintf("tables[%d]", i)

	if t.Name == "" {
		res.AddError("table_name_missing", "table name is required", "", subject)
	} else if _, dup := seen[t.Name]; dup {
		res.AddError("duplicate_table", fmt.Sprintf("duplicate table %q", t.Name), t.Name, subject)
	} else {
		seen[t.Name] = struct{}{}
	}

	if strings.TrimSpace(t.Source) == "" {
		res.AddError("table_source_missing", "table source is required", t.Name, subject+".source")
	}

	if t.Format != "" {
		switch feed.Format(strings.ToLower(t.Format)) {
		case feed.FormatCSV, feed.FormatHTML:
		default:
			res.AddError("unknown_format", fmt.Sprintf("unknown table format %q", t.Format), t.Name, subject+".format",
				string(feed.FormatCSV), string(feed.FormatHTML))
		}
	}

	for _, s := range t.Sides {
		if _, err := join.ParseSide(s); err != nil {
			res.AddError("unknown_side", err.Error(), t.Name, subject+".sides", "home", "away")
		}
	}

	if _, err := parseComma(t.Comma); err != nil {
		res.AddError("invalid_comma", err.Error(), t.Name, subject+".comma")
	}
}

func validateFixtures(res *diagnostic.Diagnostics, f *FixturesConfig) {
	if strings.TrimSpace(f.Source) == "" {
		res.AddError("fixtures_source_missing", "fixtures source is required", "", "fixtures.source")
	}

	if f.EventColumn == "" && (f.HomeColumn == "" || f.AwayColumn == "") {
		res.AddError("fixtures_columns_missing",
			"fixtures need event_column or both home_column and away_column", "", "fixtures")
	}

	if f.EventColumn != "" && (f.HomeColumn != "" || f.AwayColumn != "") {
		res.AddWarning("fixtures_columns_ignored",
			"home_column and away_column are ignored when event_column is set", "", "fixtures")
	}

	for _, sep := range f.Separators {
		if strings.TrimSpace(sep) == "" {
			res.AddError("invalid_separator", "event separators must not be blank", "", "fixtures.separators")
		}
	}

	if _, err := parseComma(f.Comma); err != nil {
		res.AddError("invalid_comma", err.Error(), "", "fixtures.comma")
	}
}

// parseComma accepts "", a single character, or "tab".
func parseComma(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	}

	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character or \"tab\", got %q", s)
	}

	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("invalid delimiter %q", s)
	}

	return r, nil
}
