package match

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Mode selects how aggressively team names are canonicalized.
type Mode int

const (
	// ModeStrict trims, case-folds, strips accents and punctuation but
	// keeps every token.
	ModeStrict Mode = iota
	// ModeLoose additionally removes noise tokens such as "FC" or "U21".
	ModeLoose
)

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeStrict:
		return "strict"
	case ModeLoose:
		return "loose"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "strict" or "loose" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return ModeStrict, nil
	case "loose":
		return ModeLoose, nil
	default:
		return ModeStrict, fmt.Errorf("unknown normalization mode %q", s)
	}
}

// DefaultNoiseTokens are stripped in loose mode. Club-form prefixes and
// suffixes, reserve-team numerals and youth markers.
var DefaultNoiseTokens = []string{
	"fc", "cf", "afc", "sc", "ssc", "ac", "as", "cd", "ud", "fk", "nk", "sk", "bk", "rc", "ksk",
	"ii", "iii", "reserves",
	"u17", "u18", "u19", "u20", "u21", "u23",
	"sub 17", "sub 18", "sub 19", "sub 20", "sub 21", "sub 23",
	"sub17", "sub20", "sub21", "sub23",
}

// Normalizer canonicalizes raw team names for comparison.
// The zero value is a strict normalizer.
type Normalizer struct {
	mode  Mode
	noise [][]string
}

// NewNormalizer creates a normalizer. In loose mode an empty noise list
// falls back to DefaultNoiseTokens; noise entries may span several words.
func NewNormalizer(mode Mode, noise ...string) Normalizer {
	n := Normalizer{mode: mode}
	if mode != ModeLoose {
		return n
	}

	if len(noise) == 0 {
		noise = DefaultNoiseTokens
	}

	for _, phrase := range noise {
		tokens := tokenize(phrase)
		if len(tokens) == 0 {
			continue
		}

		n.noise = append(n.noise, tokens)
	}

	// Longer phrases first so "sub 23" wins over a bare "sub" entry.
	slices.SortStableFunc(n.noise, func(a, b []string) int {
		return len(b) - len(a)
	})

	return n
}

// Mode returns the normalizer mode.
func (n Normalizer) Mode() Mode { return n.mode }

// Normalize returns the comparison form of raw. It never fails and is
// idempotent: Normalize(Normalize(x)) == Normalize(x).
func (n Normalizer) Normalize(raw string) string {
	tokens := tokenize(raw)
	if n.mode == ModeLoose && len(n.noise) > 0 {
		tokens = n.stripNoise(tokens)
	}

	return strings.Join(tokens, " ")
}

// Normalize canonicalizes a name in strict mode.
func Normalize(raw string) string {
	return Normalizer{}.Normalize(raw)
}

// NormalizeLoose canonicalizes a name in loose mode with the default noise tokens.
func NormalizeLoose(raw string) string {
	return NewNormalizer(ModeLoose).Normalize(raw)
}

// stripNoise removes noise phrases until none is left. If nothing would
// remain the unstripped tokens are kept, so "AC" stays "ac".
func (n Normalizer) stripNoise(tokens []string) []string {
	current := tokens

	for {
		next := make([]string, 0, len(current))
		changed := false

		for i := 0; i < len(current); {
			if l := n.noiseAt(current, i); l > 0 {
				i += l
				changed = true

				continue
			}

			next = append(next, current[i])
			i++
		}

		if !changed {
			break
		}

		current = next
	}

	if len(current) == 0 {
		return tokens
	}

	return current
}

// noiseAt returns the length of the noise phrase starting at tokens[i], or 0.
func (n Normalizer) noiseAt(tokens []string, i int) int {
	for _, phrase := range n.noise {
		if i+len(phrase) > len(tokens) {
			continue
		}

		if slices.Equal(tokens[i:i+len(phrase)], phrase) {
			return len(phrase)
		}
	}

	return 0
}

// tokenize runs the strict pipeline and splits the result into words.
// The pipeline:
// 1. NFKC compatibility normalization.
// 2. Full Unicode case folding.
// 3. Accent removal ("München" -> "munchen").
// 4. Dots and apostrophes dropped ("F.C." -> "fc"), separators become spaces.
// 5. Whitespace collapsed.
func tokenize(s string) []string {
	if s == "" {
		return nil
	}

	s = norm.NFKC.String(s)
	s = cases.Fold().String(s)
	s = stripMarks(s)

	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		switch {
		case isDropped(r):
			continue
		case isSeparator(r) || unicode.IsSpace(r):
			b.WriteByte(' ')
		case unicode.IsControl(r):
			continue
		default:
			b.WriteRune(r)
		}
	}

	return strings.Fields(b.String())
}

// stripMarks removes combining marks left after canonical decomposition.
func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}

	return out
}

// isDropped reports runes removed without leaving a word break.
func isDropped(r rune) bool {
	return r == '.' || r == '\'' || r == '’' || r == '`'
}

// isSeparator returns true if the rune splits words in a team name.
func isSeparator(r rune) bool {
	switch r {
	case '_', '-', '/', ',', '(', ')', '&', '+', '|':
		return true
	}

	return false
}
