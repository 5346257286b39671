/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dolsem/dynamodel/storagemodels"
)

var (
	andPattern        = regexp.MustCompile(`(?i)\s+AND\s+`)
	beginsWithPattern = regexp.MustCompile(`^(?i:begins_with)\(\s*([#\w:.-]+)\s*,\s*(:\w+)\s*\)$`)
	comparePattern    = regexp.MustCompile(`^([#\w:.-]+)\s*(=|<>|<=|>=|<|>)\s*(:\w+)$`)
)

type condition struct {
	column string
	op     string
	value  any
}

type expression []condition

func parseExpression(expr string, params *storagemodels.QueryParams) (expression, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("mock: empty expression")
	}

	var out expression
	for _, clause := range andPattern.Split(expr, -1) {
		clause = strings.TrimSpace(clause)
		var name, op, placeholder string
		if m := beginsWithPattern.FindStringSubmatch(clause); m != nil {
			name, op, placeholder = m[1], "begins_with", m[2]
		} else if m := comparePattern.FindStringSubmatch(clause); m != nil {
			name, op, placeholder = m[1], m[2], m[3]
		} else {
			return nil, fmt.Errorf("mock: unsupported condition %q", clause)
		}

		if strings.HasPrefix(name, "#") {
			resolved, ok := params.ExpressionAttributeNames[name]
			if !ok {
				return nil, fmt.Errorf("mock: undefined attribute name %s", name)
			}
			name = resolved
		}
		value, ok := params.ExpressionAttributeValues[placeholder]
		if !ok {
			return nil, fmt.Errorf("mock: undefined attribute value %s", placeholder)
		}
		out = append(out, condition{column: name, op: op, value: value})
	}
	return out, nil
}

func (e expression) matches(row storagemodels.Row) bool {
	for _, c := range e {
		v, ok := row[c.column]
		if !ok || !c.holds(v) {
			return false
		}
	}
	return true
}

func (c condition) holds(v any) bool {
	if c.op == "begins_with" {
		s, ok1 := v.(string)
		prefix, ok2 := c.value.(string)
		return ok1 && ok2 && strings.HasPrefix(s, prefix)
	}
	cmp, ok := compare(v, c.value)
	if !ok {
		return c.op == "<>"
	}
	switch c.op {
	case "=":
		return cmp == 0
	case "<>":
		return cmp != 0
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0
	case ">=":
		return cmp >= 0
	}
	return false
}

func compare(a, b any) (int, bool) {
	if sa, ok := a.(string); ok {
		sb, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(sa, sb), true
	}
	fa, ok1 := toFloat(a)
	fb, ok2 := toFloat(b)
	if !ok1 || !ok2 {
		if ba, ok := a.(bool); ok {
			if bb, ok := b.(bool); ok && ba == bb {
				return 0, true
			}
			return 1, ok
		}
		return 0, false
	}
	switch {
	case fa < fb:
		return -1, true
	case fa > fb:
		return 1, true
	}
	return 0, true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
