// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SurnameStrategy selects which token of a multi-token name is the surname.
type SurnameStrategy string

const (
	// SurnameFinal uses the last token: "Mary Ann Smith" -> Smith.
	SurnameFinal SurnameStrategy = "final"
	// SurnameSecond uses the second token, matching Spanish naming where the
	// paternal surname follows the given name: "Ana García López" -> García.
	SurnameSecond SurnameStrategy = "second"
)

// ParseSurnameStrategy maps a config value to a strategy. Empty selects SurnameFinal.
func ParseSurnameStrategy(s string) (SurnameStrategy, error) {
	switch SurnameStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", SurnameFinal:
		return SurnameFinal, nil
	case SurnameSecond:
		return SurnameSecond, nil
	default:
		return "", fmt.Errorf("%w: unknown surname strategy %q: use final or second", ErrInvalidInput, s)
	}
}

// Name is a person name split into first and last tokens, in display casing.
type Name struct {
	First string
	Last  string
}

// Key returns a case- and accent-insensitive comparison key.
func (n Name) Key() string {
	return Fold(n.First) + " " + Fold(n.Last)
}

// Normalize splits name on whitespace. The first token is First; Last is
// chosen by strategy. Names with fewer than two tokens return ErrUnsplittable.
func Normalize(name string, strategy SurnameStrategy) (Name, error) {
	tokens := strings.Fields(name)
	if len(tokens) < 2 {
		return Name{}, fmt.Errorf("%w: %q", ErrUnsplittable, name)
	}
	last := tokens[len(tokens)-1]
	if strategy == SurnameSecond {
		last = tokens[1]
	}
	return Name{First: tokens[0], Last: last}, nil
}

// Fold lowercases s and strips diacritics and any character that is not an
// ASCII letter or digit: "José-Luis" -> "joseluis".
func Fold(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}

	var b strings.Builder
	for _, r := range strings.ToLower(stripped) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
