// Package phone normalizes and validates recipient numbers against the
// national format accepted by the upstream gateway: the country prefix
// followed by exactly ten digits.
package phone

import "strings"

const (
	countryPrefix = "90"
	numberLength  = 12
)

// Normalize strips all whitespace from a raw recipient entry. It never
// fails; validity is reported separately by Valid.
func Normalize(raw string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, raw)
}

// Valid reports whether a normalized number matches 90XXXXXXXXXX.
func Valid(n string) bool {
	if len(n) != numberLength {
		return false
	}
	if !strings.HasPrefix(n, countryPrefix) {
		return false
	}
	for _, r := range n[len(countryPrefix):] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
