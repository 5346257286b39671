/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

// Timestamps names the creation and update columns of a table. An empty name
// disables that column.
type Timestamps struct {
	CreatedAt string `yaml:"createdAt"`
	UpdatedAt string `yaml:"updatedAt"`
}

// DefaultTimestamps returns the createdAt/updatedAt pair.
func DefaultTimestamps() *Timestamps {
	return &Timestamps{CreatedAt: "createdAt", UpdatedAt: "updatedAt"}
}

// TableDefinition is the registration input of a table.
type TableDefinition struct {
	// Name is the physical table name.
	Name string
	// KeyRoles defaults to DefaultKeyRoles() when empty.
	KeyRoles []KeyRole
	// Timestamps enables timestamp columns when non-nil.
	Timestamps *Timestamps
}

// Table is a physical store shared by one or more models.
type Table struct {
	name       string
	roles      []KeyRole
	byRole     map[string]KeyRole
	byColumn   map[string]KeyRole
	marked     []string
	timestamps *Timestamps
	models     map[string]*Model
	modelOrder []*Model
}

// Name returns the physical table name.
func (t *Table) Name() string { return t.name }

// KeyRoles returns the key roles in declaration order.
func (t *Table) KeyRoles() []KeyRole {
	return append([]KeyRole(nil), t.roles...)
}

// Role looks up a key role by name.
func (t *Table) Role(name string) (KeyRole, bool) {
	r, ok := t.byRole[name]
	return r, ok
}

// RoleForColumn looks up the key role stored in a physical column.
func (t *Table) RoleForColumn(column string) (KeyRole, bool) {
	r, ok := t.byColumn[column]
	return r, ok
}

// IsKeyColumn reports whether column holds an encoded key.
func (t *Table) IsKeyColumn(column string) bool {
	_, ok := t.byColumn[column]
	return ok
}

// MarkedColumns returns the tag-bearing key columns used to resolve a row's model.
func (t *Table) MarkedColumns() []string {
	return append([]string(nil), t.marked...)
}

// IsMarked reports whether column is a marked key column.
func (t *Table) IsMarked(column string) bool {
	for _, c := range t.marked {
		if c == column {
			return true
		}
	}
	return false
}

// Timestamps returns the timestamp columns, if the table has any.
func (t *Table) Timestamps() (Timestamps, bool) {
	if t.timestamps == nil {
		return Timestamps{}, false
	}
	return *t.timestamps, true
}

// IsTimestampColumn reports whether column is a configured timestamp column.
func (t *Table) IsTimestampColumn(column string) bool {
	if t.timestamps == nil || column == "" {
		return false
	}
	return column == t.timestamps.CreatedAt || column == t.timestamps.UpdatedAt
}

// ModelByTag resolves the model owning a tag.
func (t *Table) ModelByTag(tag string) (*Model, bool) {
	m, ok := t.models[tag]
	return m, ok
}

// Models returns the bound models in registration order.
func (t *Table) Models() []*Model {
	return append([]*Model(nil), t.modelOrder...)
}
