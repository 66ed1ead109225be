package feed

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"team-reconciler/internal/join"
)

// maxConcurrentFetches bounds parallel table downloads.
const maxConcurrentFetches = 4

// TableSource locates and describes one reference table.
type TableSource struct {
	Name   string
	Source string
	// Format defaults to html for .htm/.html sources and csv otherwise.
	Format Format
	Schema TableSchema
}

// FixtureSource locates and describes the fixture feed.
type FixtureSource struct {
	Source string
	Schema FixtureSchema
}

// Loader fetches and parses tables and fixtures.
type Loader struct {
	fetcher *Fetcher
	logger  *slog.Logger
}

// NewLoader creates a loader on top of fetcher. A nil logger discards output.
func NewLoader(fetcher *Fetcher, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Loader{fetcher: fetcher, logger: logger}
}

// LoadTables fetches every table concurrently. The first failure cancels
// the rest and is returned.
func (l *Loader) LoadTables(ctx context.Context, sources []TableSource) (map[string][]join.CanonicalTeam, error) {
	tables := make([]*Table, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for i, src := range sources {
		g.Go(func() error {
			t, err := l.LoadTable(ctx, src)
			if err != nil {
				return err
			}

			tables[i] = t

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string][]join.CanonicalTeam, len(tables))
	for _, t := range tables {
		out[t.Name] = t.Teams
	}

	return out, nil
}

// LoadTable fetches and parses one table.
func (l *Loader) LoadTable(ctx context.Context, src TableSource) (*Table, error) {
	data, err := l.fetcher.Fetch(ctx, src.Source)
	if err != nil {
		return nil, fmt.Errorf("table %q: %w", src.Name, err)
	}

	var t *Table

	switch format := src.format(); format {
	case FormatCSV:
		t, err = ReadTable(bytes.NewReader(data), src.Schema)
	case FormatHTML:
		t, err = ReadHTMLTable(bytes.NewReader(data), src.Schema)
	default:
		err = fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}

	if err != nil {
		return nil, fmt.Errorf("table %q: %w", src.Name, err)
	}

	t.Name = src.Name

	if t.Skipped > 0 {
		l.logger.Warn("Skipped rows without a team name", "table", src.Name, "rows", t.Skipped)
	}

	l.logger.Info("Loaded reference table", "table", src.Name, "teams", len(t.Teams), "columns", len(t.Columns))

	return t, nil
}

func (s TableSource) format() Format {
	if s.Format != "" {
		return Format(strings.ToLower(string(s.Format)))
	}

	lower := strings.ToLower(s.Source)
	if strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm") {
		return FormatHTML
	}

	return FormatCSV
}

// LoadFixtures fetches and parses the fixture feed.
func (l *Loader) LoadFixtures(ctx context.Context, src FixtureSource) ([]join.FixtureRecord, error) {
	data, err := l.fetcher.Fetch(ctx, src.Source)
	if err != nil {
		return nil, fmt.Errorf("fixtures: %w", err)
	}

	fixtures, err := ReadFixtures(bytes.NewReader(data), src.Schema)
	if err != nil {
		return nil, fmt.Errorf("fixtures: %w", err)
	}

	unsplit := 0

	for _, f := range fixtures {
		if f.Home == "" && f.Away == "" {
			unsplit++
		}
	}

	if unsplit > 0 {
		l.logger.Warn("Fixtures without team names", "rows", unsplit)
	}

	l.logger.Info("Loaded fixtures", "fixtures", len(fixtures))

	return fixtures, nil
}
