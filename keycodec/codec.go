/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package keycodec

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/dolsem/dynamodel/errors"
	"github.com/dolsem/dynamodel/registry"
)

// DefaultMaxFanOut bounds the number of keys one Encode call may produce.
const DefaultMaxFanOut = 25

// Codec encodes attribute values into key strings and decodes them back.
// A Codec holds no state besides its limits and is safe for concurrent use.
type Codec struct {
	// MaxFanOut caps the cross product of list-typed key properties.
	// Zero or negative means DefaultMaxFanOut.
	MaxFanOut int
}

// New creates a codec with the given fan-out cap.
func New(maxFanOut int) *Codec {
	return &Codec{MaxFanOut: maxFanOut}
}

func (c *Codec) maxFanOut() int {
	if c == nil || c.MaxFanOut <= 0 {
		return DefaultMaxFanOut
	}
	return c.MaxFanOut
}

// Encode renders the key strings of role for a model. A role the model does
// not use encodes to a single empty string. More than one key is returned only
// when a list-typed property takes part in the role.
func (c *Codec) Encode(model *registry.Model, values map[string]any, role string) ([]string, error) {
	seq, ok := model.KeySequence(role)
	if !ok {
		return []string{""}, nil
	}

	prefix := ""
	if seq.Role().IncludeModelTag {
		prefix = model.Tag() + ":"
	}
	acc := []string{prefix}

	for _, part := range seq.Parts() {
		value, present := indirect(values[part.Property])
		if !present {
			return nil, errors.NewMissingKeyPropertyError(model.Name(), part.Property, values)
		}
		attr, _ := model.Attribute(part.Property)

		candidates := []any{value}
		if attr.IsList() {
			candidates = listValues(value)
			if len(candidates) == 0 {
				return nil, errors.NewMissingKeyPropertyError(model.Name(), part.Property, values)
			}
		}
		if total := len(acc) * len(candidates); total > c.maxFanOut() {
			return nil, errors.NewFanOutLimitError(model.Name()+" "+role+" key", total, c.maxFanOut())
		}

		rendered := make([]string, len(candidates))
		for i, candidate := range candidates {
			candidate, ok := indirect(candidate)
			if !ok {
				return nil, errors.NewMissingKeyPropertyError(model.Name(), part.Property, values)
			}
			s, err := render(attr, candidate)
			if err != nil {
				return nil, fmt.Errorf("encoding %s.%s: %w", model.Name(), part.Property, err)
			}
			rendered[i] = s
		}

		next := make([]string, 0, len(acc)*len(rendered))
		for _, partial := range acc {
			for _, s := range rendered {
				next = append(next, partial+part.Label+"{"+s+"}")
			}
		}
		acc = next
	}
	return acc, nil
}

// Decode parses a key string of role against a known model. A tag prefix, if
// present, must be the model's tag. List-typed properties are not decoded.
func (c *Codec) Decode(key, role string, model *registry.Model) (map[string]any, error) {
	tag, body := splitTag(key)
	if tag != "" && tag != model.Tag() {
		return nil, errors.NewModelTagMismatchError(model.Tag(), tag, key)
	}
	return decodeBody(key, body, role, model)
}

// DecodeTable parses a key string found in a key column of table. The tag
// prefix is required and selects the model.
func (c *Codec) DecodeTable(key, column string, table *registry.Table) (map[string]any, *registry.Model, error) {
	role, ok := table.RoleForColumn(column)
	if !ok {
		return nil, nil, errors.NewMalformedKeyError(key, "column "+column+" is not a key column of "+table.Name())
	}
	tag, body := splitTag(key)
	model, ok := table.ModelByTag(tag)
	if tag == "" || !ok {
		return nil, nil, errors.NewUnknownModelTagError(table.Name(), tag, key)
	}
	values, err := decodeBody(key, body, role.Name, model)
	if err != nil {
		return nil, nil, err
	}
	return values, model, nil
}

func decodeBody(key, body, role string, model *registry.Model) (map[string]any, error) {
	seq, ok := model.KeySequence(role)
	if !ok {
		return nil, errors.NewMalformedKeyError(key, "model "+model.Name()+" has no "+role+" key")
	}
	tokens, err := tokenize(key, body)
	if err != nil {
		return nil, err
	}

	values := make(map[string]any, len(tokens))
	for _, tok := range tokens {
		property := seq.PropertyFor(tok.label)
		attr, known := model.Attribute(property)
		if known && attr.IsList() {
			continue
		}
		raw := Unescape(tok.raw)
		if !known {
			values[property] = raw
			continue
		}
		v, err := parse(attr, raw)
		if err != nil {
			return nil, errors.NewMalformedKeyError(key, fmt.Sprintf("%s: %v", property, err))
		}
		values[property] = v
	}
	return values, nil
}

// render turns one key value into its token text.
func render(attr *registry.Attribute, value any) (string, error) {
	if attr.Encode != nil {
		v, err := attr.Encode(value)
		if err != nil {
			return "", err
		}
		value = v
	}

	switch v := value.(type) {
	case time.Time:
		return strconv.FormatInt(v.UnixMilli(), 10), nil
	case strfmt.DateTime:
		return strconv.FormatInt(time.Time(v).UnixMilli(), 10), nil
	case strfmt.Date:
		return strconv.FormatInt(time.Time(v).UnixMilli(), 10), nil
	case int:
		return strconv.FormatInt(int64(v), 10), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case string:
		return Escape(v), nil
	case fmt.Stringer:
		return Escape(v.String()), nil
	}
	return Escape(fmt.Sprint(value)), nil
}

// parse coerces an unescaped token by the attribute's codec or declared type.
func parse(attr *registry.Attribute, raw string) (any, error) {
	if attr.Decode != nil {
		return attr.Decode(raw)
	}
	switch attr.Type {
	case registry.TypeDate:
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			t, perr := time.Parse(time.RFC3339Nano, raw)
			if perr != nil {
				return nil, fmt.Errorf("invalid date %q", raw)
			}
			return t.UTC(), nil
		}
		return time.UnixMilli(ms).UTC(), nil
	case registry.TypeBoolean:
		return raw != "false", nil
	case registry.TypeNumber:
		return parseNumber(raw)
	}
	return raw, nil
}

func parseNumber(raw string) (any, error) {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n, nil
	}
	if n, err := strconv.ParseUint(raw, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", raw)
	}
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int64(f), nil
	}
	return f, nil
}

// indirect follows pointers down to the value they hold. It reports false for
// nil, including a nil pointer of any type.
func indirect(value any) (any, bool) {
	if value == nil {
		return nil, false
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	return rv.Interface(), true
}

// listValues flattens a list property value into its elements. A non-slice
// value is treated as a one-element list.
func listValues(value any) []any {
	switch v := value.(type) {
	case []any:
		return v
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{value}
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
