/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package keycodec

import (
	"strings"

	"github.com/dolsem/dynamodel/errors"
	"github.com/dolsem/dynamodel/registry"
)

var escaper = strings.NewReplacer(`\`, `\\`, `{`, `\{`, `}`, `\}`)

// Escape prefixes every '\', '{' and '}' of s with a backslash.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Unescape reverses Escape. A backslash before any other character is kept.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) && isReserved(s[i+1]) {
			i++
			c = s[i]
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isReserved(c byte) bool {
	return c == '\\' || c == '{' || c == '}'
}

type token struct {
	label string
	raw   string // still escaped
}

// splitTag splits off a leading "<tag>:" made of word characters.
func splitTag(key string) (tag, rest string) {
	for i := 0; i < len(key); i++ {
		c := key[i]
		if c == ':' && i > 0 {
			return key[:i], key[i+1:]
		}
		if c >= 0x80 || !registry.IsWordChar(rune(c)) {
			break
		}
	}
	return "", key
}

// tokenize splits a key body into label{value} tokens.
func tokenize(key, body string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(body) {
		open := strings.IndexAny(body[i:], `{}\`)
		if open < 0 {
			return nil, errors.NewMalformedKeyError(key, "trailing text without value")
		}
		if body[i+open] != '{' {
			return nil, errors.NewMalformedKeyError(key, "unexpected '"+string(body[i+open])+"' in label")
		}
		label := body[i : i+open]
		if label == "" {
			return nil, errors.NewMalformedKeyError(key, "empty label")
		}

		j := i + open + 1
		closed := false
		for ; j < len(body); j++ {
			switch body[j] {
			case '\\':
				j++
			case '{':
				return nil, errors.NewMalformedKeyError(key, "unescaped '{' in value of "+label)
			case '}':
				closed = true
			}
			if closed {
				break
			}
		}
		if !closed {
			return nil, errors.NewMalformedKeyError(key, "unterminated value of "+label)
		}
		tokens = append(tokens, token{label: label, raw: body[i+open+1 : j]})
		i = j + 1
	}
	return tokens, nil
}
