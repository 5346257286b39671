/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package translator

import (
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/mitchellh/mapstructure"

	"github.com/dolsem/dynamodel/registry"
)

// Entity is a logical instance of a model: property values plus timestamp
// columns when the table has them.
type Entity struct {
	model    *registry.Model
	values   map[string]any
	unmapped []string
}

// NewEntity creates an entity of model holding a copy of values.
func NewEntity(model *registry.Model, values map[string]any) *Entity {
	e := &Entity{model: model, values: make(map[string]any, len(values))}
	for k, v := range values {
		e.values[k] = v
	}
	return e
}

// Model returns the model the entity belongs to.
func (e *Entity) Model() *registry.Model { return e.model }

// Values returns a copy of the property values.
func (e *Entity) Values() map[string]any {
	out := make(map[string]any, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// Get returns one property value.
func (e *Entity) Get(property string) (any, bool) {
	v, ok := e.values[property]
	return v, ok
}

// Set assigns one property value.
func (e *Entity) Set(property string, value any) {
	e.values[property] = value
}

// Unmapped lists the row columns that matched no attribute of the model and
// were left out of the entity, sorted.
func (e *Entity) Unmapped() []string {
	return append([]string(nil), e.unmapped...)
}

// CreatedAt returns the creation instant when the table records it.
func (e *Entity) CreatedAt() (time.Time, bool) {
	ts, ok := e.model.Table().Timestamps()
	if !ok || ts.CreatedAt == "" {
		return time.Time{}, false
	}
	return AsTime(e.values[ts.CreatedAt])
}

// UpdatedAt returns the last update instant when the table records it.
func (e *Entity) UpdatedAt() (time.Time, bool) {
	ts, ok := e.model.Table().Timestamps()
	if !ok || ts.UpdatedAt == "" {
		return time.Time{}, false
	}
	return AsTime(e.values[ts.UpdatedAt])
}

// As decodes the entity into target, a pointer to a struct whose fields are
// matched by their `dynamodel` tag (or name). Epoch milliseconds and RFC 3339
// strings decode into time.Time and strfmt.DateTime fields.
func (e *Entity) As(target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "dynamodel",
		Result:           target,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			timeHook,
			dateTimeHook,
		),
	})
	if err != nil {
		return fmt.Errorf("binding %s: %w", e.model.Name(), err)
	}
	if err := decoder.Decode(e.values); err != nil {
		return fmt.Errorf("binding %s: %w", e.model.Name(), err)
	}
	return nil
}

// String renders the entity for logs.
func (e *Entity) String() string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	s := e.model.Name() + "{"
	for i, k := range keys {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s:%v", k, e.values[k])
	}
	return s + "}"
}

var (
	timeType     = reflect.TypeOf(time.Time{})
	dateTimeType = reflect.TypeOf(strfmt.DateTime{})
)

func timeHook(from, to reflect.Type, data any) (any, error) {
	if to != timeType || from == timeType {
		return data, nil
	}
	if t, ok := AsTime(data); ok {
		return t, nil
	}
	return data, nil
}

func dateTimeHook(from, to reflect.Type, data any) (any, error) {
	if to != dateTimeType || from == dateTimeType {
		return data, nil
	}
	if t, ok := AsTime(data); ok {
		return strfmt.DateTime(t), nil
	}
	return data, nil
}

// AsTime converts an instant in any accepted form (time.Time, strfmt types,
// epoch milliseconds, RFC 3339 string) to a UTC time.Time.
func AsTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case *time.Time:
		if x != nil {
			return *x, true
		}
	case strfmt.DateTime:
		return time.Time(x), true
	case *strfmt.DateTime:
		if x != nil {
			return time.Time(*x), true
		}
	case strfmt.Date:
		return time.Time(x), true
	case int64:
		return time.UnixMilli(x).UTC(), true
	case int:
		return time.UnixMilli(int64(x)).UTC(), true
	case float64:
		return time.UnixMilli(int64(x)).UTC(), true
	case string:
		if t, err := strfmt.ParseDateTime(x); err == nil {
			return time.Time(t).UTC(), true
		}
	}
	return time.Time{}, false
}

// EpochMillis converts an instant to epoch milliseconds, the stored form.
func EpochMillis(v any) (int64, bool) {
	t, ok := AsTime(v)
	if !ok {
		return 0, false
	}
	return t.UnixMilli(), true
}
