package join

import (
	"encoding/json"
	"strconv"
)

// Value is a single reference statistic: a number or free text.
// Values are comparable with ==.
type Value struct {
	num    float64
	text   string
	isText bool
}

// Number creates a numeric value.
func Number(f float64) Value { return Value{num: f} }

// Text creates a textual value.
func Text(s string) Value { return Value{text: s, isText: true} }

// IsNumber reports whether the value is numeric.
func (v Value) IsNumber() bool { return !v.isText }

// Float returns the numeric value and whether the value is numeric.
func (v Value) Float() (float64, bool) {
	if v.isText {
		return 0, false
	}

	return v.num, true
}

// String formats numbers in the shortest exact form and returns text as is.
func (v Value) String() string {
	if v.isText {
		return v.text
	}

	return strconv.FormatFloat(v.num, 'f', -1, 64)
}

// MarshalJSON encodes numbers as JSON numbers and text as JSON strings.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.isText {
		return json.Marshal(v.text)
	}

	return json.Marshal(v.num)
}

// MarshalYAML implements yaml.Marshaler.
func (v Value) MarshalYAML() (any, error) {
	if v.isText {
		return v.text, nil
	}

	return v.num, nil
}
