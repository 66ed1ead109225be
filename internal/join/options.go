package join

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"team-reconciler/internal/common"
	"team-reconciler/internal/match"
)

// Configuration errors. They are returned before any fixture is processed.
var (
	// ErrInvalidThreshold is match.ErrInvalidThreshold, re-exported for callers of this package.
	ErrInvalidThreshold = match.ErrInvalidThreshold
	// ErrUnknownTable is returned when Options.Sides names a table that was not supplied.
	ErrUnknownTable = errors.New("unknown reference table")
	// ErrUnknownSide is returned when a side name is neither home nor away.
	ErrUnknownSide = errors.New("unknown fixture side")
)

// Options configures a join run.
type Options struct {
	// Threshold is the minimum match score (0-100). It has no default.
	Threshold float64
	// Mode selects strict or loose name normalization.
	Mode match.Mode
	// Noise overrides the loose-mode noise tokens; empty means the defaults.
	Noise []string
	// AmbiguityGap flags matches whose runner-up is within this many points.
	AmbiguityGap float64
	// Sides lists the tables consulted per side, in priority order. When nil
	// every table applies to both sides in name order. A side present with an
	// empty list consults no table.
	Sides map[Side][]string
}

// matcherConfig converts options into a matcher configuration.
func (o Options) matcherConfig() match.Config {
	return match.Config{
		Threshold:    o.Threshold,
		Normalizer:   match.NewNormalizer(o.Mode, o.Noise...),
		AmbiguityGap: o.AmbiguityGap,
	}
}

// resolveSides returns the ordered table names per side, validated against tables.
func (o Options) resolveSides(tables map[string][]CanonicalTeam) (map[Side][]string, error) {
	resolved := make(map[Side][]string, len(Sides))

	if o.Sides == nil {
		names := slices.Sorted(maps.Keys(tables))
		for _, side := range Sides {
			resolved[side] = names
		}

		return resolved, nil
	}

	for side, names := range o.Sides {
		if side != SideHome && side != SideAway {
			return nil, fmt.Errorf("%w: %d", ErrUnknownSide, int(side))
		}

		for _, name := range names {
			if _, ok := tables[name]; !ok {
				return nil, fmt.Errorf("%w %q for %s side", ErrUnknownTable, name, side)
			}
		}

		resolved[side] = common.Dedupe(names)
	}

	return resolved, nil
}
