package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"team-reconciler/internal/join"
	"team-reconciler/internal/match"
)

func sampleTables() map[string][]join.CanonicalTeam {
	return map[string][]join.CanonicalTeam{
		"home_form": {
			{Name: "Bayern Munich", Attributes: map[string]join.Value{"PIH": join.Number(0.82)}},
			{Name: "SC Freiburg", Attributes: map[string]join.Value{"PIH": join.Number(0.41)}},
		},
		"away_form": {
			{Name: "Bayern Munich", Attributes: map[string]join.Value{"PIA": join.Number(0.7)}},
			{Name: "SC Freiburg", Attributes: map[string]join.Value{"PIA": join.Number(0.35), "Coach": join.Text("Schuster")}},
		},
	}
}

func sampleReport(t *testing.T) *join.Report {
	t.Helper()

	r, err := join.Reconcile([]join.FixtureRecord{
		{Home: "Bayern Munich", Away: "SC Freiburg", Competition: "Bundesliga"},
		{Home: "Bayern Munich", Away: "Real Madrid"},
	}, sampleTables(), join.Options{
		Threshold: 80,
		Sides: map[join.Side][]string{
			join.SideHome: {"home_form"},
			join.SideAway: {"away_form"},
		},
	})
	require.NoError(t, err)

	return r
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatTable, "JSON": FormatJSON, " yaml ": FormatYAML, "csv": FormatCSV} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("xml")
	require.Error(t, err)
}

func TestAttributeColumns(t *testing.T) {
	outcomes := []join.JoinOutcome{
		{Attributes: map[string]join.Value{"away.PIA": join.Number(1), "home.PIH": join.Number(1)}},
		{Attributes: map[string]join.Value{"home.GP": join.Number(1), "away.Coach": join.Text("x")}},
	}

	assert.Equal(t, []string{"home.GP", "home.PIH", "away.Coach", "away.PIA"}, AttributeColumns(outcomes))
}

func TestWrite_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleReport(t), FormatTable))

	lines := strings.Split(buf.String(), "\n")
	assert.Regexp(t, `^#\s+HOME\s+AWAY\s+COMPETITION\s+STATUS\s+HOME MATCH\s+AWAY MATCH\s+home\.PIH\s+away\.Coach\s+away\.PIA`, lines[0])
	assert.Regexp(t, `^1\s+Bayern Munich\s+SC Freiburg\s+Bundesliga\s+matched\s+Bayern Munich \(100\.0\)\s+SC Freiburg \(100\.0\)\s+0\.82\s+Schuster\s+0\.35`, lines[1])
	assert.Regexp(t, `^2\s+Bayern Munich\s+Real Madrid\s+-\s+partial\s+Bayern Munich \(100\.0\)\s+-\s+0\.82\s+-\s+-`, lines[2])

	out := buf.String()
	assert.Contains(t, out, "Fixtures: 2  Matched: 1  Partial: 1  Unmatched: 0")
	assert.Contains(t, out, "Table away_form: 1/2 matched")
	assert.Contains(t, out, "Table home_form: 2/2 matched")
	assert.Contains(t, out, `warning: [away_form] fixture 2 away "Real Madrid": [unmatched_side]`)
	assert.Contains(t, out, "(did you mean Bayern Munich?)")
}

func TestWrite_Deterministic(t *testing.T) {
	for _, format := range Formats {
		var a, b bytes.Buffer

		require.NoError(t, Write(&a, sampleReport(t), format))
		require.NoError(t, Write(&b, sampleReport(t), format))
		assert.Equal(t, a.String(), b.String(), format)
	}
}

func TestWrite_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleReport(t), FormatCSV))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"index", "home", "away", "competition", "status",
		"home_match", "home_score", "away_match", "away_score",
		"home.PIH", "away.Coach", "away.PIA",
	}, rows[0])
	assert.Equal(t, []string{
		"2", "Bayern Munich", "Real Madrid", "", "partial",
		"Bayern Munich", "100.0", "-", "-",
		"0.82", "-", "-",
	}, rows[2])
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleReport(t), FormatJSON))

	var doc struct {
		Outcomes []struct {
			Status     string         `json:"status"`
			Attributes map[string]any `json:"attributes"`
			Away       struct{ Lookups []struct{ Result match.MatchResult } }
		} `json:"outcomes"`
		Stats       join.Stats `json:"stats"`
		Diagnostics struct {
			Warnings []map[string]any `json:"warnings"`
		} `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	require.Len(t, doc.Outcomes, 2)
	assert.Equal(t, "matched", doc.Outcomes[0].Status)
	assert.Equal(t, 0.82, doc.Outcomes[0].Attributes["home.PIH"])
	assert.Equal(t, "Schuster", doc.Outcomes[0].Attributes["away.Coach"])
	assert.Equal(t, "partial", doc.Outcomes[1].Status)
	assert.False(t, doc.Outcomes[1].Away.Lookups[0].Result.Matched)
	assert.Equal(t, "Bayern Munich", doc.Outcomes[1].Away.Lookups[0].Result.Closest)
	assert.Equal(t, 1, doc.Stats.FullyMatched)
	require.Len(t, doc.Diagnostics.Warnings, 1)
	assert.Equal(t, "warning", doc.Diagnostics.Warnings[0]["severity"])
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleReport(t), FormatYAML))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))

	outcomes, ok := doc["outcomes"].([]any)
	require.True(t, ok)
	require.Len(t, outcomes, 2)

	first := outcomes[0].(map[string]any)
	assert.Equal(t, "matched", first["status"])
	assert.Equal(t, 0.82, first["attributes"].(map[string]any)["home.PIH"])
}

func TestWrite_UnknownFormat(t *testing.T) {
	require.Error(t, Write(&bytes.Buffer{}, sampleReport(t), Format("xml")))
}
