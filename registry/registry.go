/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	stderrors "errors"
	"strings"

	"github.com/dolsem/dynamodel/errors"
)

// Registry is the immutable, process-wide set of tables and models. Build it
// once at startup with a Builder and pass it to the codec, translator and client.
type Registry struct {
	tables     map[string]*Table
	tableOrder []*Table
	models     map[string]*Model
	modelOrder []*Model
}

// Table looks up a table by name.
func (r *Registry) Table(name string) (*Table, bool) {
	t, ok := r.tables[name]
	return t, ok
}

// Model looks up a model by name.
func (r *Registry) Model(name string) (*Model, bool) {
	m, ok := r.models[name]
	return m, ok
}

// Tables returns all tables in registration order.
func (r *Registry) Tables() []*Table {
	return append([]*Table(nil), r.tableOrder...)
}

// Models returns all models in registration order.
func (r *Registry) Models() []*Model {
	return append([]*Model(nil), r.modelOrder...)
}

// Builder collects table and model definitions. It is not safe for concurrent use.
type Builder struct {
	tables []TableDefinition
	models []ModelDefinition
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddTable queues a table definition.
func (b *Builder) AddTable(def TableDefinition) *Builder {
	b.tables = append(b.tables, def)
	return b
}

// AddModel queues a model definition. Its table must be added to the same builder.
func (b *Builder) AddModel(def ModelDefinition) *Builder {
	b.models = append(b.models, def)
	return b
}

// Build verifies every definition and returns the registry. All definition
// problems are reported together.
func (b *Builder) Build() (*Registry, error) {
	reg := &Registry{
		tables: make(map[string]*Table, len(b.tables)),
		models: make(map[string]*Model, len(b.models)),
	}

	var problems []error
	for _, def := range b.tables {
		t, err := buildTable(def)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		if _, exists := reg.tables[t.name]; exists {
			problems = append(problems, errors.NewDefinitionError(t.name, "table already registered"))
			continue
		}
		reg.tables[t.name] = t
		reg.tableOrder = append(reg.tableOrder, t)
	}

	for _, def := range b.models {
		if _, exists := reg.models[def.Name]; exists {
			problems = append(problems, errors.NewDefinitionError(def.Name, "model already registered"))
			continue
		}
		t, ok := reg.tables[def.Table]
		if !ok {
			problems = append(problems, errors.NewDefinitionError(def.Name, "table %q is not registered", def.Table))
			continue
		}
		m, err := buildModel(def, t)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		if other, taken := t.models[m.tag]; taken {
			problems = append(problems, errors.NewDefinitionError(def.Name,
				"tag %q is already used by model %q in table %q", m.tag, other.name, t.name))
			continue
		}
		t.models[m.tag] = m
		t.modelOrder = append(t.modelOrder, m)
		reg.models[m.name] = m
		reg.modelOrder = append(reg.modelOrder, m)
	}

	for _, t := range reg.tableOrder {
		t.marked = markedColumns(t)
	}

	if len(problems) > 0 {
		return nil, stderrors.Join(problems...)
	}
	return reg, nil
}

func buildTable(def TableDefinition) (*Table, error) {
	if def.Name == "" {
		return nil, errors.NewDefinitionError("", "table name is required")
	}
	roles := def.KeyRoles
	if len(roles) == 0 {
		roles = DefaultKeyRoles()
	}

	t := &Table{
		name:     def.Name,
		roles:    append([]KeyRole(nil), roles...),
		byRole:   make(map[string]KeyRole, len(roles)),
		byColumn: make(map[string]KeyRole, len(roles)),
		models:   make(map[string]*Model),
	}
	for _, role := range roles {
		if role.Name == "" || role.Column == "" {
			return nil, errors.NewDefinitionError(def.Name, "key roles need a name and a column")
		}
		if _, dup := t.byRole[role.Name]; dup {
			return nil, errors.NewDefinitionError(def.Name, "key role %q declared twice", role.Name)
		}
		if _, dup := t.byColumn[role.Column]; dup {
			return nil, errors.NewDefinitionError(def.Name, "column %q holds two key roles", role.Column)
		}
		t.byRole[role.Name] = role
		t.byColumn[role.Column] = role
	}

	if def.Timestamps != nil {
		ts := *def.Timestamps
		for _, col := range []string{ts.CreatedAt, ts.UpdatedAt} {
			if _, clash := t.byColumn[col]; clash {
				return nil, errors.NewDefinitionError(def.Name, "timestamp column %q is a key column", col)
			}
		}
		if ts.CreatedAt != "" && ts.CreatedAt == ts.UpdatedAt {
			return nil, errors.NewDefinitionError(def.Name, "timestamp columns must differ")
		}
		t.timestamps = &ts
	}
	return t, nil
}

func buildModel(def ModelDefinition, t *Table) (*Model, error) {
	if def.Name == "" {
		return nil, errors.NewDefinitionError("", "model name is required")
	}
	m := &Model{
		name:      def.Name,
		tag:       Tag(def.Name),
		table:     t,
		byName:    make(map[string]*Attribute, len(def.Attributes)),
		sequences: make(map[string]*KeySequence, len(def.Keys)),
	}
	if !isWordTag(m.tag) {
		return nil, errors.NewDefinitionError(def.Name, "model tag %q must only contain word characters", m.tag)
	}

	for i := range def.Attributes {
		a := def.Attributes[i]
		a.roles = nil
		if a.Name == "" {
			return nil, errors.NewDefinitionError(def.Name, "attribute #%d has no name", i)
		}
		if _, dup := m.byName[a.Name]; dup {
			return nil, errors.NewDefinitionError(def.Name, "attribute %q declared twice", a.Name)
		}
		if a.Type != TypeList && len(a.Elements) > 0 {
			return nil, errors.NewDefinitionError(def.Name, "%s declares element types but is not a list", a.Name)
		}
		m.attributes = append(m.attributes, &a)
		m.byName[a.Name] = &a
	}

	for _, key := range def.Keys {
		role, ok := t.byRole[key.Role]
		if !ok {
			return nil, errors.NewDefinitionError(def.Name, "table %q has no key role %q", t.name, key.Role)
		}
		if _, dup := m.sequences[key.Role]; dup {
			return nil, errors.NewDefinitionError(def.Name, "key role %q declared twice", key.Role)
		}
		if len(key.Parts) == 0 {
			return nil, errors.NewDefinitionError(def.Name, "key role %q has no parts", key.Role)
		}

		seq := &KeySequence{role: role, labels: make(map[string]string, len(key.Parts))}
		for _, part := range key.Parts {
			a, ok := m.byName[part.Property]
			if !ok {
				return nil, errors.NewDefinitionError(def.Name,
					"property '%s' must be registered as an attribute first", part.Property)
			}
			if part.Label == "" {
				part.Label = part.Property
			}
			if strings.ContainsAny(part.Label, `{}\:`) {
				return nil, errors.NewDefinitionError(def.Name, "key label %q contains a reserved character", part.Label)
			}
			if _, dup := seq.labels[part.Label]; dup {
				return nil, errors.NewDefinitionError(def.Name, "key label %q used twice in role %q", part.Label, key.Role)
			}
			if a.IsList() && !a.isStringListKeyShape() {
				return nil, errors.NewDefinitionError(def.Name,
					"%s must be defined as 'list: [string]' to be used as a key attribute", a.Name)
			}
			seq.labels[part.Label] = part.Property
			seq.parts = append(seq.parts, part)
			a.roles = append(a.roles, key.Role)
		}
		m.sequences[key.Role] = seq
	}

	for _, role := range t.roles {
		if _, used := m.sequences[role.Name]; used {
			m.roles = append(m.roles, role.Name)
		}
	}
	if len(m.roles) == 0 {
		return nil, errors.NewDefinitionError(def.Name, "model uses no key role of table %q", t.name)
	}
	return m, nil
}

func markedColumns(t *Table) []string {
	var marked []string
	for _, role := range t.roles {
		if !role.IncludeModelTag {
			continue
		}
		for _, m := range t.modelOrder {
			if _, used := m.sequences[role.Name]; used {
				marked = append(marked, role.Column)
				break
			}
		}
	}
	return marked
}
