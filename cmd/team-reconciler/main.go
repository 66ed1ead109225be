// Package main provides the CLI entrypoint for team-reconciler.
//
// team-reconciler matches free-text team names from fixture feeds against
// canonical names in reference statistics tables and joins the statistics
// onto each fixture:
//   - join: load a profile, fetch every source, reconcile and render (default)
//   - teams: list the canonical team universe of all tables
//   - pair: reconcile a single home/away pair
//   - match: rank one table's teams against a query, to tune the threshold
//   - init: write a starter profile
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"team-reconciler/internal/config"
	"team-reconciler/internal/feed"
	"team-reconciler/internal/join"
	"team-reconciler/internal/logger"
	"team-reconciler/internal/match"
	"team-reconciler/internal/report"
)

const defaultProfile = "team-reconciler.yaml"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "team-reconciler: %v\n", err)
		os.Exit(1)
	}

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes a subcommand and returns the process exit code. Only
// configuration and IO failures return non-zero; unmatched names do not.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := "join"
	if len(args) > 0 && len(args[0]) > 0 && args[0][0] != '-' {
		cmd, args = args[0], args[1:]
	}

	var err error

	switch cmd {
	case "join":
		err = runJoin(ctx, args, stdout, stderr)
	case "teams":
		err = runTeams(ctx, args, stdout, stderr)
	case "pair":
		err = runPair(ctx, args, stdout, stderr)
	case "match":
		err = runMatch(ctx, args, stdout, stderr)
	case "init":
		err = runInit(args, stdout, stderr)
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	default:
		usage(stderr)

		err = fmt.Errorf("unknown command %q", cmd)
	}

	if errors.Is(err, flag.ErrHelp) {
		return 0
	}

	if err != nil {
		fmt.Fprintf(stderr, "team-reconciler: %v\n", err)
		return 1
	}

	return 0
}

func usage(w io.Writer) {
	fmt.Fprint(w, `Usage: team-reconciler [command] [options]

Commands:
  join    reconcile the profile's fixtures against its tables (default)
  teams   list canonical team names across all tables
  pair    reconcile one pair: -home NAME -away NAME
  match   rank a table's teams for a query: -table NAME -query NAME [-top N]
  init    write a starter profile: -o PATH

Settings resolve as flags, then TEAM_RECONCILER_* variables (also read
from ./.env), then the profile.

Run "team-reconciler <command> -h" for command options.
`)
}

// commonFlags are shared by every command that reads a profile.
type commonFlags struct {
	profile   string
	threshold *float64
	mode      string
	output    string
	logLevel  string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.profile, "config", config.ProfilePath(defaultProfile), "Path to the YAML profile (env "+config.EnvProfile+")")
	fs.Func("threshold", "Override the profile's match threshold (0-100)", func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}

		c.threshold = &v

		return nil
	})
	fs.StringVar(&c.mode, "mode", "", "Override name normalization: strict or loose")
	fs.StringVar(&c.output, "output", "", "Output format: table, json, yaml or csv")
	fs.StringVar(&c.logLevel, "log-level", "", "Override the log level: debug, info, warn or error")
}

// session is a loaded, validated profile with its logger and loader.
type session struct {
	profile *config.Profile
	format  report.Format
	logger  *slog.Logger
	loader  *feed.Loader
}

func (c *commonFlags) open(stderr io.Writer) (*session, error) {
	p, err := config.LoadFile(c.profile)
	if err != nil {
		return nil, err
	}

	if err := config.ApplyEnv(p); err != nil {
		return nil, err
	}

	if c.threshold != nil {
		p.Threshold = c.threshold
	}

	if c.mode != "" {
		p.Mode = c.mode
	}

	if c.output != "" {
		p.Output = c.output
	}

	if c.logLevel != "" {
		p.Log.Level = c.logLevel
	}

	log := logger.Init(stderr, p.Log.Level, p.Log.Format)

	diags := config.Validate(p)
	for _, w := range diags.Warnings {
		log.Warn("Profile warning", "code", w.Code, "detail", w.String())
	}

	if err := diags.Error(); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", c.profile, err)
	}

	format, err := report.ParseFormat(p.Output)
	if err != nil {
		return nil, err
	}

	fetcher := feed.NewFetcher(p.FetcherConfig(), log)

	return &session{
		profile: p,
		format:  format,
		logger:  log,
		loader:  feed.NewLoader(fetcher, log),
	}, nil
}

func (s *session) tables(ctx context.Context) (map[string][]join.CanonicalTeam, error) {
	sources, err := s.profile.TableSources()
	if err != nil {
		return nil, err
	}

	return s.loader.LoadTables(ctx, sources)
}

func runJoin(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var flags commonFlags

	fs := flag.NewFlagSet("join", flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags.register(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := flags.open(stderr)
	if err != nil {
		return err
	}

	opts, err := s.profile.JoinOptions()
	if err != nil {
		return err
	}

	fixtureSource, err := s.profile.FixtureSource()
	if err != nil {
		return err
	}

	tables, err := s.tables(ctx)
	if err != nil {
		return err
	}

	fixtures, err := s.loader.LoadFixtures(ctx, fixtureSource)
	if err != nil {
		return err
	}

	rep, err := join.Reconcile(fixtures, tables, opts)
	if err != nil {
		return err
	}

	st := rep.Stats
	s.logger.Info("Reconciled fixtures",
		"fixtures", st.Fixtures, "matched", st.FullyMatched, "partial", st.PartiallyMatched, "unmatched", st.Unmatched)

	return report.Write(stdout, rep, s.format)
}

func runTeams(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var flags commonFlags

	fs := flag.NewFlagSet("teams", flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags.register(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := flags.open(stderr)
	if err != nil {
		return err
	}

	tables, err := s.tables(ctx)
	if err != nil {
		return err
	}

	return report.WriteTeams(stdout, join.Teams(tables), s.format)
}

func runPair(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var (
		flags      commonFlags
		home, away string
	)

	fs := flag.NewFlagSet("pair", flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags.register(fs)
	fs.StringVar(&home, "home", "", "Home team name")
	fs.StringVar(&away, "away", "", "Away team name")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if home == "" && away == "" {
		fs.Usage()
		return errors.New("pair needs -home and/or -away")
	}

	s, err := flags.open(stderr)
	if err != nil {
		return err
	}

	opts, err := s.profile.JoinOptions()
	if err != nil {
		return err
	}

	tables, err := s.tables(ctx)
	if err != nil {
		return err
	}

	outcome, err := join.LookupPair(home, away, tables, opts)
	if err != nil {
		return err
	}

	return report.WriteOutcome(stdout, outcome, s.format)
}

func runMatch(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var (
		flags        commonFlags
		table, query string
		top          int
	)

	fs := flag.NewFlagSet("match", flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags.register(fs)
	fs.StringVar(&table, "table", "", "Reference table to search")
	fs.StringVar(&query, "query", "", "Team name to look up")
	fs.IntVar(&top, "top", 10, "Number of candidates to show (0 for all)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if table == "" || query == "" {
		fs.Usage()
		return errors.New("match needs -table and -query")
	}

	s, err := flags.open(stderr)
	if err != nil {
		return err
	}

	if s.profile.Table(table) == nil {
		return fmt.Errorf("%w %q", join.ErrUnknownTable, table)
	}

	opts, err := s.profile.JoinOptions()
	if err != nil {
		return err
	}

	sources, err := s.profile.TableSources()
	if err != nil {
		return err
	}

	var source feed.TableSource

	for _, ts := range sources {
		if ts.Name == table {
			source = ts
			break
		}
	}

	loaded, err := s.loader.LoadTable(ctx, source)
	if err != nil {
		return err
	}

	m, err := match.NewMatcher(match.Config{
		Threshold:    opts.Threshold,
		Normalizer:   match.NewNormalizer(opts.Mode, opts.Noise...),
		AmbiguityGap: opts.AmbiguityGap,
	})
	if err != nil {
		return err
	}

	names := make([]string, len(loaded.Teams))
	for i, t := range loaded.Teams {
		names[i] = t.Name
	}

	ranked := m.Rank(query, m.Prepare(names))
	if top > 0 {
		ranked = ranked.Top(top)
	}

	return report.WriteRanking(stdout, ranked, m.Threshold(), s.format)
}

func runInit(args []string, stdout, stderr io.Writer) error {
	var (
		path  string
		force bool
	)

	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&path, "o", defaultProfile, "Where to write the profile")
	fs.BoolVar(&force, "force", false, "Overwrite an existing file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists; use -force to overwrite", path)
	}

	if err := config.WriteFile(config.Example(), path); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Wrote %s\n", path)

	return nil
}
