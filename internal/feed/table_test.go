package feed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"team-reconciler/internal/join"
)

const homeFormCSV = "\ufeff Team , PIH ,GP,,Coach\n" +
	"Bayern Munich,\"0,82\",17,,Kompany\n" +
	" ,0.5,3,,\n" +
	"SC Freiburg,0.41,,,\n"

func TestReadTable(t *testing.T) {
	table, err := ReadTable(strings.NewReader(homeFormCSV), TableSchema{NameColumn: "team"})
	require.NoError(t, err)

	assert.Equal(t, []string{"PIH", "GP", "Coach"}, table.Columns)
	assert.Equal(t, 1, table.Skipped)
	assert.Equal(t, []join.CanonicalTeam{
		{Name: "Bayern Munich", Attributes: map[string]join.Value{
			"PIH": join.Number(0.82), "GP": join.Number(17), "Coach": join.Text("Kompany"),
		}},
		{Name: "SC Freiburg", Attributes: map[string]join.Value{"PIH": join.Number(0.41)}},
	}, table.Teams)
}

func TestReadTable_Columns(t *testing.T) {
	table, err := ReadTable(strings.NewReader(homeFormCSV), TableSchema{Columns: []string{"pih"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"PIH"}, table.Columns)
	require.Len(t, table.Teams, 2)
	assert.Equal(t, map[string]join.Value{"PIH": join.Number(0.82)}, table.Teams[0].Attributes)
}

func TestReadTable_Semicolon(t *testing.T) {
	table, err := ReadTable(strings.NewReader("Equipa;Avg\nBenfica;1,9\n"), TableSchema{Comma: ';'})
	require.NoError(t, err)

	require.Len(t, table.Teams, 1)
	assert.Equal(t, "Benfica", table.Teams[0].Name)
	assert.Equal(t, join.Number(1.9), table.Teams[0].Attributes["Avg"])
}

func TestReadTable_Errors(t *testing.T) {
	_, err := ReadTable(strings.NewReader(homeFormCSV), TableSchema{NameColumn: "Club"})
	require.ErrorIs(t, err, ErrMissingColumn)

	_, err = ReadTable(strings.NewReader(homeFormCSV), TableSchema{Columns: []string{"PIA"}})
	require.ErrorIs(t, err, ErrMissingColumn)

	_, err = ReadTable(strings.NewReader(""), TableSchema{})
	require.ErrorIs(t, err, ErrMissingColumn)
}

func TestHeaders(t *testing.T) {
	assert.Equal(t, []string{"Team", "column_2", "GP", "GP.1", "GP.2"}, headers([]string{" Team", "", "GP", "GP", "GP "}))
}

const standingsHTML = `<html><body>
<table id="other"><tr><td>ignore</td></tr></table>
<table class="standings">
  <thead><tr><th>Team</th><th>Pts</th><th>Form</th></tr></thead>
  <tbody>
    <tr><td> Arsenal </td><td>74</td><td>WWDWL</td></tr>
    <tr><td>Chelsea</td><td>63</td><td><table><tr><td>nested</td></tr></table></td></tr>
  </tbody>
</table>
</body></html>`

func TestReadHTMLTable(t *testing.T) {
	table, err := ReadHTMLTable(strings.NewReader(standingsHTML), TableSchema{Selector: "table.standings"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Pts", "Form"}, table.Columns)
	require.Len(t, table.Teams, 2)
	assert.Equal(t, join.CanonicalTeam{
		Name:       "Arsenal",
		Attributes: map[string]join.Value{"Pts": join.Number(74), "Form": join.Text("WWDWL")},
	}, table.Teams[0])
	assert.Equal(t, join.Number(63), table.Teams[1].Attributes["Pts"])
}

func TestReadHTMLTable_NoTable(t *testing.T) {
	_, err := ReadHTMLTable(strings.NewReader(standingsHTML), TableSchema{Selector: "table.missing"})
	require.ErrorIs(t, err, ErrNoTable)
}
