/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var lower = cases.Lower(language.Und)

// Tag derives the normalized model tag from a model name: words are split on
// case changes, letter/digit boundaries and non-alphanumerics, lowercased and
// joined with underscores ("PetOwner" -> "pet_owner", "HTTPServer" ->
// "http_server", "Dog2" -> "dog_2").
func Tag(name string) string {
	return strings.Join(words(norm.NFC.String(name)), "_")
}

func words(s string) []string {
	var out []string
	var current []rune

	flush := func() {
		if len(current) > 0 {
			out = append(out, lower.String(string(current)))
			current = current[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if len(current) > 0 {
			prev := current[len(current)-1]
			switch {
			case unicode.IsDigit(r) != unicode.IsDigit(prev):
				flush()
			case unicode.IsUpper(r) && unicode.IsLower(prev):
				flush()
			case unicode.IsUpper(r) && unicode.IsUpper(prev) &&
				i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				flush()
			}
		}
		current = append(current, r)
	}
	flush()
	return out
}

// isWordTag reports whether a tag only holds word characters, so it can be
// recognized as the leading "<tag>:" of an encoded key.
func isWordTag(tag string) bool {
	if tag == "" {
		return false
	}
	for _, r := range tag {
		if !IsWordChar(r) {
			return false
		}
	}
	return true
}

// IsWordChar reports whether r is one of [A-Za-z0-9_].
func IsWordChar(r rune) bool {
	return r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
