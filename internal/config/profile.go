package config

import (
	"time"
)

// Profile is a reconciliation run described in YAML.
type Profile struct {
	// Version is the profile schema version.
	Version string `yaml:"version"`
	// Threshold is the minimum match score (0-100). Required: there is no
	// default because it trades recall for precision per feed.
	Threshold *float64 `yaml:"threshold"`
	// Mode is "strict" or "loose" name normalization.
	Mode string `yaml:"mode,omitempty"`
	// NoiseTokens replaces the built-in loose-mode noise list.
	NoiseTokens StringOrArray `yaml:"noise_tokens,omitempty"`
	// ExtraNoiseTokens extends the noise list.
	ExtraNoiseTokens StringOrArray `yaml:"extra_noise_tokens,omitempty"`
	// AmbiguityGap flags matches whose runner-up is within this many points.
	AmbiguityGap *float64 `yaml:"ambiguity_gap,omitempty"`
	// Output is the report format: table, json, yaml or csv.
	Output string `yaml:"output,omitempty"`

	Log      LogConfig       `yaml:"log,omitempty"`
	Fetch    FetchConfig     `yaml:"fetch,omitempty"`
	Tables   []TableConfig   `yaml:"tables"`
	Fixtures *FixturesConfig `yaml:"fixtures,omitempty"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// FetchConfig configures remote downloads. Durations use Go syntax ("30s").
type FetchConfig struct {
	Timeout       time.Duration `yaml:"timeout,omitempty"`
	CacheTTL      time.Duration `yaml:"cache_ttl,omitempty"`
	Retries       *int          `yaml:"retries,omitempty"`
	RetryBackoff  time.Duration `yaml:"retry_backoff,omitempty"`
	RatePerSecond *float64      `yaml:"rate_per_second,omitempty"`
	UserAgent     string        `yaml:"user_agent,omitempty"`
}

// TableConfig declares one reference table.
type TableConfig struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	// Format is csv or html; inferred from the source when empty.
	Format string `yaml:"format,omitempty"`
	// Selector picks the HTML table.
	Selector   string        `yaml:"selector,omitempty"`
	NameColumn string        `yaml:"name_column,omitempty"`
	Columns    StringOrArray `yaml:"columns,omitempty"`
	// Sides lists "home" and/or "away"; empty means both.
	Sides StringOrArray `yaml:"sides,omitempty"`
	// Comma is the CSV delimiter: a single character or "tab".
	Comma string `yaml:"comma,omitempty"`
}

// FixturesConfig declares the fixture feed.
type FixturesConfig struct {
	Source            string        `yaml:"source"`
	EventColumn       string        `yaml:"event_column,omitempty"`
	Separators        []string      `yaml:"separators,omitempty"`
	HomeColumn        string        `yaml:"home_column,omitempty"`
	AwayColumn        string        `yaml:"away_column,omitempty"`
	CompetitionColumn string        `yaml:"competition_column,omitempty"`
	OddsColumns       StringOrArray `yaml:"odds_columns,omitempty"`
	KeepColumns       StringOrArray `yaml:"keep_columns,omitempty"`
	Comma             string        `yaml:"comma,omitempty"`
}

// Table returns the table with the given name, or nil.
func (p *Profile) Table(name string) *TableConfig {
	for i := range p.Tables {
		if p.Tables[i].Name == name {
			return &p.Tables[i]
		}
	}

	return nil
}
