/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package translator

import (
	"sort"

	"github.com/dolsem/dynamodel/errors"
	"github.com/dolsem/dynamodel/keycodec"
	"github.com/dolsem/dynamodel/registry"
	"github.com/dolsem/dynamodel/storagemodels"
)

// Translator converts physical rows to entities and entity values to rows.
// It holds no mutable state and is safe for concurrent use.
type Translator struct {
	codec *keycodec.Codec
}

// New creates a Translator decoding keys with codec (nil means defaults).
func New(codec *keycodec.Codec) *Translator {
	if codec == nil {
		codec = keycodec.New(0)
	}
	return &Translator{codec: codec}
}

// Codec returns the key codec in use.
func (t *Translator) Codec() *keycodec.Codec {
	return t.codec
}

// FromRow rebuilds an entity of a known model. A nil row yields a nil entity.
func (t *Translator) FromRow(row storagemodels.Row, model *registry.Model) (*Entity, error) {
	if row == nil {
		return nil, nil
	}
	return t.build(row, model, nil, "")
}

// FromTableRow rebuilds an entity of whichever model of table owns the row.
// The first marked key column present in the row (in table order) decides.
// A nil row yields a nil entity.
func (t *Translator) FromTableRow(row storagemodels.Row, table *registry.Table) (*Entity, error) {
	if row == nil {
		return nil, nil
	}

	for _, column := range table.MarkedColumns() {
		raw, present := row[column]
		if !present {
			continue
		}
		key, ok := raw.(string)
		if !ok {
			return nil, errors.NewMalformedKeyError("", "column "+column+" does not hold a string")
		}
		values, model, err := t.codec.DecodeTable(key, column, table)
		if err != nil {
			return nil, err
		}
		return t.build(row, model, values, column)
	}
	return nil, errors.NewModelResolutionError(table.Name(), columnsOf(row))
}

// build merges key-derived values (which win) with timestamp and plain
// columns. resolved is the key column already decoded into values.
func (t *Translator) build(row storagemodels.Row, model *registry.Model, values map[string]any, resolved string) (*Entity, error) {
	if values == nil {
		values = make(map[string]any, len(row))
	}
	table := model.Table()
	fromKeys := make(map[string]bool, len(values))
	for p := range values {
		fromKeys[p] = true
	}

	for _, role := range table.KeyRoles() {
		if role.Column == resolved {
			continue
		}
		raw, present := row[role.Column]
		if !present {
			continue
		}
		if _, used := model.KeySequence(role.Name); !used {
			continue
		}
		key, ok := raw.(string)
		if !ok {
			return nil, errors.NewMalformedKeyError("", "column "+role.Column+" does not hold a string")
		}
		if key == "" {
			continue
		}
		decoded, err := t.codec.Decode(key, role.Name, model)
		if err != nil {
			return nil, err
		}
		for p, v := range decoded {
			if !fromKeys[p] {
				values[p] = v
				fromKeys[p] = true
			}
		}
	}

	var unmapped []string
	for _, column := range columnsOf(row) {
		if table.IsKeyColumn(column) {
			if _, used := model.UsesKeyColumn(column); !used {
				unmapped = append(unmapped, column)
			}
			continue
		}
		v := row[column]
		if table.IsTimestampColumn(column) {
			values[column] = v
			continue
		}
		property, ok := model.PropertyName(column)
		if !ok {
			unmapped = append(unmapped, column)
			continue
		}
		if fromKeys[property] {
			continue
		}
		attr, _ := model.Attribute(property)
		values[property] = columnValue(attr, v)
	}

	e := NewEntity(model, values)
	e.unmapped = unmapped
	return e, nil
}

// Project maps property values onto physical columns. Properties without
// attribute metadata are dropped. Dates are stored as epoch milliseconds.
func (t *Translator) Project(model *registry.Model, values map[string]any) storagemodels.Row {
	row := make(storagemodels.Row, len(values))
	for property, v := range values {
		attr, ok := model.Attribute(property)
		if !ok {
			continue
		}
		if attr.Type == registry.TypeDate {
			if ms, ok := EpochMillis(v); ok {
				v = ms
			}
		}
		row[model.ColumnName(property)] = v
	}
	return row
}

// columnValue converts a stored plain column back to the attribute's
// in-memory form.
func columnValue(attr *registry.Attribute, v any) any {
	if attr.Type == registry.TypeDate {
		switch v.(type) {
		case int64, float64, int:
			if t, ok := AsTime(v); ok {
				return t
			}
		}
	}
	return v
}

func columnsOf(row storagemodels.Row) []string {
	cols := make([]string, 0, len(row))
	for c := range row {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}
