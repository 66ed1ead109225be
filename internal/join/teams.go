package join

import (
	"slices"
	"strings"
)

// Teams returns the sorted, de-duplicated canonical names across tables.
// Blank names are skipped.
func Teams(tables map[string][]CanonicalTeam) []string {
	seen := make(map[string]struct{})

	for _, teams := range tables {
		for _, t := range teams {
			name := strings.TrimSpace(t.Name)
			if name == "" {
				continue
			}

			seen[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// LookupPair reconciles a single home/away pair.
func LookupPair(home, away string, tables map[string][]CanonicalTeam, opts Options) (JoinOutcome, error) {
	j, err := NewJoiner(tables, opts)
	if err != nil {
		return JoinOutcome{}, err
	}

	return j.JoinOne(FixtureRecord{Home: home, Away: away}), nil
}
