package join

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=Side,Status -linecomment -output=enums_string.go

// Side is one side of a fixture.
type Side int

const (
	SideHome Side = iota // home
	SideAway             // away
)

// Sides lists both fixture sides in output order.
var Sides = [...]Side{SideHome, SideAway}

// ParseSide parses "home" or "away" (case-insensitive).
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "home":
		return SideHome, nil
	case "away":
		return SideAway, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSide, s)
	}
}

// MarshalText encodes the side by name.
func (i Side) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

// Status classifies a fixture after reconciliation.
type Status int

const (
	StatusUnmatched Status = iota // unmatched
	StatusPartial                 // partial
	StatusMatched                 // matched
)

// MarshalText encodes the status by name.
func (i Status) MarshalText() ([]byte, error) { return []byte(i.String()), nil }
