package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"team-reconciler/internal/feed"
	"team-reconciler/internal/match"
)

// Defaults applied to optional profile fields.
const (
	DefaultVersion   = "1"
	DefaultMode      = "loose"
	DefaultOutput    = "table"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// LoadFile loads and parses a YAML profile from the given path.
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Profile and applies defaults.
func Parse(data []byte) (*Profile, error) {
	var p Profile

	err := yaml.Unmarshal(data, &p)
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile YAML: %w", err)
	}

	applyDefaults(&p)

	return &p, nil
}

// applyDefaults fills in default values for optional fields. Threshold is
// deliberately left alone.
func applyDefaults(p *Profile) {
	if p.Version == "" {
		p.Version = DefaultVersion
	}

	if p.Mode == "" {
		p.Mode = DefaultMode
	}

	if p.AmbiguityGap == nil {
		gap := match.DefaultAmbiguityGap
		p.AmbiguityGap = &gap
	}

	if p.Output == "" {
		p.Output = DefaultOutput
	}

	if p.Log.Level == "" {
		p.Log.Level = DefaultLogLevel
	}

	if p.Log.Format == "" {
		p.Log.Format = DefaultLogFormat
	}

	def := feed.DefaultFetcherConfig()

	if p.Fetch.Timeout == 0 {
		p.Fetch.Timeout = def.Timeout
	}

	if p.Fetch.CacheTTL == 0 {
		p.Fetch.CacheTTL = def.CacheTTL
	}

	if p.Fetch.Retries == nil {
		retries := def.Retries
		p.Fetch.Retries = &retries
	}

	if p.Fetch.RetryBackoff == 0 {
		p.Fetch.RetryBackoff = def.RetryBackoff
	}

	if p.Fetch.RatePerSecond == nil {
		rps := def.RatePerSecond
		p.Fetch.RatePerSecond = &rps
	}

	if p.Fetch.UserAgent == "" {
		p.Fetch.UserAgent = def.UserAgent
	}
}

// Marshal serializes a Profile to YAML.
func Marshal(p *Profile) ([]byte, error) {
	return yaml.Marshal(p)
}

// WriteFile writes a Profile to the given path.
func WriteFile(p *Profile, path string) error {
	data, err := Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write profile %s: %w", path, err)
	}

	return nil
}

// Example returns a starter profile with home/away form tables and an
// event-string fixture feed.
func Example() *Profile {
	threshold := 80.0

	p := &Profile{
		Threshold: &threshold,
		Tables: []TableConfig{
			{
				Name:       "home_form",
				Source:     "https://example.com/stats/home.csv",
				NameColumn: "Team",
				Sides:      StringOrArray{"home"},
			},
			{
				Name:       "away_form",
				Source:     "https://example.com/stats/away.csv",
				NameColumn: "Team",
				Sides:      StringOrArray{"away"},
			},
			{
				Name:     "standings",
				Source:   "https://example.com/league/standings.html",
				Format:   string(feed.FormatHTML),
				Selector: "table.standings",
			},
		},
		Fixtures: &FixturesConfig{
			Source:            "https://example.com/fixtures/today.csv",
			EventColumn:       "Event",
			CompetitionColumn: "League",
			OddsColumns:       StringOrArray{"1", "X", "2"},
		},
	}

	applyDefaults(p)

	return p
}
