package config

import (
	"errors"
	"fmt"
	"slices"

	"team-reconciler/internal/feed"
	"team-reconciler/internal/join"
	"team-reconciler/internal/match"
)

// ErrNoFixtures is returned when a run needs fixtures but the profile has none.
var ErrNoFixtures = errors.New("profile declares no fixtures")

// Noise returns the loose-mode noise tokens: NoiseTokens, or the defaults,
// followed by ExtraNoiseTokens.
func (p *Profile) Noise() []string {
	base := []string(p.NoiseTokens)
	if len(base) == 0 {
		base = match.DefaultNoiseTokens
	}

	return append(slices.Clone(base), p.ExtraNoiseTokens...)
}

// JoinOptions builds joiner options. Tables are consulted in declaration
// order; a table without sides applies to both.
func (p *Profile) JoinOptions() (join.Options, error) {
	if p.Threshold == nil {
		return join.Options{}, fmt.Errorf("%w: threshold is required", join.ErrInvalidThreshold)
	}

	mode, err := match.ParseMode(p.Mode)
	if err != nil {
		return join.Options{}, err
	}

	opts := join.Options{
		Threshold: *p.Threshold,
		Mode:      mode,
		Noise:     p.Noise(),
		Sides:     make(map[join.Side][]string, len(join.Sides)),
	}

	if p.AmbiguityGap != nil {
		opts.AmbiguityGap = *p.AmbiguityGap
	}

	for _, side := range join.Sides {
		opts.Sides[side] = []string{}
	}

	for _, t := range p.Tables {
		sides := join.Sides[:]

		if len(t.Sides) > 0 {
			sides = nil

			for _, s := range t.Sides {
				side, err := join.ParseSide(s)
				if err != nil {
					return join.Options{}, fmt.Errorf("table %q: %w", t.Name, err)
				}

				sides = append(sides, side)
			}
		}

		for _, side := range sides {
			opts.Sides[side] = append(opts.Sides[side], t.Name)
		}
	}

	return opts, nil
}

// FetcherConfig converts the fetch section. A negative cache_ttl disables caching.
func (p *Profile) FetcherConfig() feed.FetcherConfig {
	cfg := feed.FetcherConfig{
		Timeout:      p.Fetch.Timeout,
		CacheTTL:     max(p.Fetch.CacheTTL, 0),
		RetryBackoff: p.Fetch.RetryBackoff,
		UserAgent:    p.Fetch.UserAgent,
	}

	if p.Fetch.Retries != nil {
		cfg.Retries = *p.Fetch.Retries
	}

	if p.Fetch.RatePerSecond != nil {
		cfg.RatePerSecond = *p.Fetch.RatePerSecond
	}

	return cfg
}

// TableSources converts the table declarations for feed.Loader.
func (p *Profile) TableSources() ([]feed.TableSource, error) {
	sources := make([]feed.TableSource, 0, len(p.Tables))

	for _, t := range p.Tables {
		comma, err := parseComma(t.Comma)
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", t.Name, err)
		}

		sources = append(sources, feed.TableSource{
			Name:   t.Name,
			Source: t.Source,
			Format: feed.Format(t.Format),
			Schema: feed.TableSchema{
				NameColumn: t.NameColumn,
				Columns:    t.Columns,
				Comma:      comma,
				Selector:   t.Selector,
			},
		})
	}

	return sources, nil
}

// FixtureSource converts the fixtures section for feed.Loader.
func (p *Profile) FixtureSource() (feed.FixtureSource, error) {
	if p.Fixtures == nil {
		return feed.FixtureSource{}, ErrNoFixtures
	}

	f := p.Fixtures

	comma, err := parseComma(f.Comma)
	if err != nil {
		return feed.FixtureSource{}, fmt.Errorf("fixtures: %w", err)
	}

	return feed.FixtureSource{
		Source: f.Source,
		Schema: feed.FixtureSchema{
			EventColumn:       f.EventColumn,
			Separators:        f.Separators,
			HomeColumn:        f.HomeColumn,
			AwayColumn:        f.AwayColumn,
			CompetitionColumn: f.CompetitionColumn,
			OddsColumns:       f.OddsColumns,
			KeepColumns:       f.KeepColumns,
			Comma:             comma,
		},
	}, nil
}
