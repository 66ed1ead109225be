package diagnostic

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_Collect(t *testing.T) {
	var d Diagnostics

	assert.True(t, d.IsValid())
	require.NoError(t, d.Error())

	d.AddWarning("unmatched_side", "no match for \"Spurs\"", "home_form", "fixture 2 home", "Tottenham")
	d.AddInfo("ambiguous_match", "two close candidates", "overall", "fixture 1 away")
	d.AddError("invalid_threshold", "threshold must be within [0, 100]", "", "threshold")
	d.AddError("unknown_table", "table \"x\" not defined", "x", "sides.home")

	assert.False(t, d.IsValid())
	assert.True(t, d.HasErrors())
	assert.Equal(t, 1, d.Count("unmatched_side"))
	assert.Len(t, d.All(), 4)
	assert.Equal(t, SeverityError, d.All()[0].Severity)

	err := d.Error()
	require.Error(t, err)
	assert.Equal(t,
		"threshold: [invalid_threshold] threshold must be within [0, 100]; [x] sides.home: [unknown_table] table \"x\" not defined",
		err.Error())
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{
		Code:        "unmatched_side",
		Message:     "no candidate above 80",
		Table:       "home_form",
		Subject:     "fixture 3 home",
		Suggestions: []string{"Tottenham Hotspur"},
	}

	assert.Equal(t,
		"[home_form] fixture 3 home: [unmatched_side] no candidate above 80 (did you mean Tottenham Hotspur?)",
		d.String())
	assert.Equal(t, "plain", Diagnostic{Message: "plain"}.String())
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics

	a.AddInfo("x", "one", "", "")
	b.AddWarning("y", "two", "", "")
	b.AddError("z", "three", "", "")
	a.Merge(b)

	assert.Len(t, a.Infos, 1)
	assert.Len(t, a.Warnings, 1)
	assert.Len(t, a.Errors, 1)
}

func TestSeverity_JSON(t *testing.T) {
	data, err := json.Marshal(Diagnostic{Severity: SeverityWarning, Code: "c", Message: "m"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"severity":"warning","code":"c","message":"m"}`, string(data))
	assert.Equal(t, "unknown", Severity(9).String())
}
