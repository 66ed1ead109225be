package feed

import (
	"strconv"
	"strings"

	"team-reconciler/internal/join"
)

// ParseDecimal parses a spreadsheet-style number: "0,82", "1.234,5",
// "1,234.5", "57%" or " -3 ". A trailing percent sign is dropped, not
// divided out, so "57%" is 57. Anything else (text, NaN, Inf, hex) is
// rejected.
func ParseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))

	if s == "" || !isDecimalText(s) {
		return 0, false
	}

	dot, comma := strings.LastIndexByte(s, '.'), strings.LastIndexByte(s, ',')

	switch {
	case comma >= 0 && dot >= 0 && comma > dot:
		// "1.234,5": dots group thousands.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case comma >= 0 && dot >= 0:
		// "1,234.5": commas group thousands.
		s = strings.ReplaceAll(s, ",", "")
	case comma >= 0:
		s = strings.Replace(s, ",", ".", 1)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}

	return f, true
}

// isDecimalText rejects inputs strconv would accept but a stats sheet never
// means as numbers ("nan", "inf", "0x1p3", "1_000").
func isDecimalText(s string) bool {
	digits := false

	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits = true
		case r == '.' || r == ',':
		case r == 'e' || r == 'E':
			if i == 0 {
				return false
			}
		case r == '+' || r == '-':
		default:
			return false
		}
	}

	return digits
}

// ParseValue converts a raw cell into a number when ParseDecimal accepts it
// and into trimmed text otherwise.
func ParseValue(cell string) join.Value {
	if f, ok := ParseDecimal(cell); ok {
		return join.Number(f)
	}

	return join.Text(strings.TrimSpace(cell))
}
