package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"team-reconciler/internal/config"
	"team-reconciler/internal/join"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

// writeProfile lays out two form tables and a fixture feed in a temp dir
// and returns the profile path. threshold is written verbatim; pass ""
// to omit it.
func writeProfile(t *testing.T, threshold, fixtures string) string {
	t.Helper()

	dir := t.TempDir()
	home := writeFile(t, dir, "home.csv", "Team,PIH\nBayern Munich,0.82\nSC Freiburg,0.41\n")
	away := writeFile(t, dir, "away.csv", "Team,PIA\nBayern Munich,0.70\nSC Freiburg,0.35\n")
	feed := writeFile(t, dir, "fixtures.csv", "Event,League\n"+fixtures)

	var b strings.Builder

	if threshold != "" {
		fmt.Fprintf(&b, "threshold: %s\n", threshold)
	}

	fmt.Fprintf(&b, `output: csv
log:
  level: error
tables:
  - name: home_form
    source: %q
    name_column: Team
    sides: home
  - name: away_form
    source: %q
    name_column: Team
    sides: away
fixtures:
  source: %q
  event_column: Event
  competition_column: League
`, home, away, feed)

	return writeFile(t, dir, "profile.yaml", b.String())
}

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)

	return code, stdout.String(), stderr.String()
}

func TestRun_Join(t *testing.T) {
	profile := writeProfile(t, "80", "Bayern v Freiburg,Bundesliga\n")

	code, out, errOut := execute(t, "-config", profile)
	require.Equal(t, 0, code, errOut)

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{"home.PIH", "away.PIA"}, rows[0][9:])
	assert.Equal(t, []string{
		"1", "Bayern", "Freiburg", "Bundesliga", "matched",
		"Bayern Munich", "89.2", "SC Freiburg", "100.0",
		"0.82", "0.35",
	}, rows[1])
}

func TestRun_JoinUnmatchedIsNotAnError(t *testing.T) {
	profile := writeProfile(t, "80", "Chelsea v Arsenal,Premier League\n")

	code, out, errOut := execute(t, "join", "-config", profile, "-output", "json")
	require.Equal(t, 0, code, errOut)

	var rep struct {
		Stats join.Stats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, 1, rep.Stats.Unmatched)
}

func TestRun_FlagOverrides(t *testing.T) {
	profile := writeProfile(t, "80", "Bayern v Freiburg,Bundesliga\n")

	code, out, errOut := execute(t, "join", "-config", profile, "-threshold", "95")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, ",partial,")

	code, out, errOut = execute(t, "join", "-config", profile, "-threshold", "95", "-mode", "strict")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, ",unmatched,")

	code, _, errOut = execute(t, "join", "-config", profile, "-threshold", "150")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "threshold_out_of_range")
}

func TestRun_MissingThreshold(t *testing.T) {
	profile := writeProfile(t, "", "Bayern v Freiburg,Bundesliga\n")

	code, out, errOut := execute(t, "-config", profile)
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "threshold_missing")
}

func TestRun_MissingSource(t *testing.T) {
	profile := writeProfile(t, "80", "Bayern v Freiburg,Bundesliga\n")
	require.NoError(t, os.Remove(filepath.Join(filepath.Dir(profile), "away.csv")))

	code, _, errOut := execute(t, "-config", profile)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "away.csv")
}

func TestRun_Teams(t *testing.T) {
	profile := writeProfile(t, "80", "")

	code, out, errOut := execute(t, "teams", "-config", profile, "-output", "table")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "Bayern Munich\nSC Freiburg\n", out)
}

func TestRun_Pair(t *testing.T) {
	profile := writeProfile(t, "80", "")

	code, out, errOut := execute(t, "pair", "-config", profile, "-home", "Bayern", "-away", "Real Madrid", "-output", "json")
	require.Equal(t, 0, code, errOut)

	var o struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &o))
	assert.Equal(t, "partial", o.Status)

	code, _, _ = execute(t, "pair", "-config", profile)
	assert.Equal(t, 1, code)
}

func TestRun_Match(t *testing.T) {
	profile := writeProfile(t, "80", "")

	code, out, errOut := execute(t, "match", "-config", profile, "-table", "home_form", "-query", "Bayern")
	require.Equal(t, 0, code, errOut)
	assert.True(t, strings.HasPrefix(out, "rank,name,normalized,score,accepted\n1,Bayern Munich,bayern munich,89.2,true\n"), out)

	code, _, errOut = execute(t, "match", "-config", profile, "-table", "standings", "-query", "Bayern")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "standings")
}

func TestRun_Init(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")

	code, out, errOut := execute(t, "init", "-o", path)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, path)

	p, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.True(t, config.Validate(p).IsValid())

	code, _, errOut = execute(t, "init", "-o", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "already exists")

	code, _, _ = execute(t, "init", "-o", path, "-force")
	assert.Equal(t, 0, code)
}

func TestRun_UnknownCommand(t *testing.T) {
	code, _, errOut := execute(t, "frobnicate")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Usage:")
}

func TestRun_Help(t *testing.T) {
	code, out, _ := execute(t, "help")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Commands:")

	code, _, _ = execute(t, "join", "-h")
	assert.Equal(t, 0, code)
}
