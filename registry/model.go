/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import "strings"

// ModelDefinition is the registration input of a model.
type ModelDefinition struct {
	// Name is the stable model name; its Tag is derived from it.
	Name string
	// Table is the name of the table the model is stored in.
	Table string
	// Attributes in declaration order.
	Attributes []Attribute
	// Keys holds one sequence per key role the model uses.
	Keys []KeyDefinition
}

// Model is a registered entity type. It is immutable once the registry is built.
type Model struct {
	name       string
	tag        string
	table      *Table
	attributes []*Attribute
	byName     map[string]*Attribute
	sequences  map[string]*KeySequence
	roles      []string
}

// Name returns the model name.
func (m *Model) Name() string { return m.name }

// Tag returns the normalized model tag.
func (m *Model) Tag() string { return m.tag }

// Table returns the table the model is bound to.
func (m *Model) Table() *Table { return m.table }

// Attributes returns the attributes in declaration order.
func (m *Model) Attributes() []*Attribute {
	return append([]*Attribute(nil), m.attributes...)
}

// Attribute looks up an attribute by property name.
func (m *Model) Attribute(property string) (*Attribute, bool) {
	a, ok := m.byName[property]
	return a, ok
}

// KeySequence returns the layout of a role, or false if the model does not use it.
func (m *Model) KeySequence(role string) (*KeySequence, bool) {
	s, ok := m.sequences[role]
	return s, ok
}

// KeyRoles returns the roles the model uses, in table role order.
func (m *Model) KeyRoles() []string {
	return append([]string(nil), m.roles...)
}

// UsesKeyColumn reports whether column is the column of one of the model's roles.
func (m *Model) UsesKeyColumn(column string) (KeyRole, bool) {
	role, ok := m.table.RoleForColumn(column)
	if !ok {
		return KeyRole{}, false
	}
	if _, used := m.sequences[role.Name]; !used {
		return KeyRole{}, false
	}
	return role, true
}

// ColumnName maps a property to its physical column: shared attributes keep
// the property name, scoped ones are prefixed with the model tag. Properties
// without metadata map to themselves.
func (m *Model) ColumnName(property string) string {
	a, ok := m.byName[property]
	if !ok || a.Shared {
		return property
	}
	return m.tag + ":" + property
}

// PropertyName maps a physical column back to a property name. It reports
// false when the column belongs to no attribute of the model.
func (m *Model) PropertyName(column string) (string, bool) {
	if a, ok := m.byName[column]; ok && a.Shared {
		return column, true
	}
	idx := strings.IndexByte(column, ':')
	if idx < 0 {
		return "", false
	}
	if column[:idx] != m.tag {
		return "", false
	}
	property := column[idx+1:]
	if a, ok := m.byName[property]; ok && !a.Shared {
		return property, true
	}
	return "", false
}
