/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package schema

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/dolsem/dynamodel/errors"
	"github.com/dolsem/dynamodel/registry"
)

// File is the document form of a schema file.
type File struct {
	Tables []TableDoc `yaml:"tables"`
	Models []ModelDoc `yaml:"models"`
}

// TableDoc declares a table.
type TableDoc struct {
	Name       string        `yaml:"name"`
	Keys       []KeyRoleDoc  `yaml:"keys"`
	Timestamps TimestampsDoc `yaml:"timestamps"`
}

// KeyRoleDoc declares a key role of a table. Tagged defaults to true.
type KeyRoleDoc struct {
	Role   string `yaml:"role"`
	Column string `yaml:"column"`
	Tagged *bool  `yaml:"tagged"`
}

// TimestampsDoc accepts either a boolean (true enables createdAt/updatedAt)
// or a mapping naming the two columns.
type TimestampsDoc struct {
	columns *registry.Timestamps
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *TimestampsDoc) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var enabled bool
		if err := node.Decode(&enabled); err != nil {
			return fmt.Errorf("line %d: timestamps must be a boolean or a mapping", node.Line)
		}
		if enabled {
			t.columns = registry.DefaultTimestamps()
		}
		return nil
	case yaml.MappingNode:
		var columns registry.Timestamps
		if err := node.Decode(&columns); err != nil {
			return err
		}
		t.columns = &columns
		return nil
	}
	return fmt.Errorf("line %d: timestamps must be a boolean or a mapping", node.Line)
}

// ModelDoc declares a model. Keys maps a role name to its key parts.
type ModelDoc struct {
	Name       string               `yaml:"name"`
	Table      string               `yaml:"table"`
	Attributes []AttributeDoc       `yaml:"attributes"`
	Keys       map[string][]PartDoc `yaml:"keys"`
}

// AttributeDoc declares an attribute. A list attribute is written with
// `list: [string]` in place of a type.
type AttributeDoc struct {
	Name   string   `yaml:"name"`
	Type   string   `yaml:"type"`
	List   []string `yaml:"list"`
	Shared bool     `yaml:"shared"`
}

// PartDoc is a key part: either a bare property name or a
// {label, property} mapping.
type PartDoc struct {
	Label    string `yaml:"label"`
	Property string `yaml:"property"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *PartDoc) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		p.Property = node.Value
		return nil
	}
	type plain PartDoc
	return node.Decode((*plain)(p))
}

// Load reads and parses a schema file.
func Load(path string) (*registry.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	reg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}

// Parse builds a registry from a YAML schema document. Unknown fields are
// rejected.
func Parse(data []byte) (*registry.Registry, error) {
	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}
	b, err := file.Builder()
	if err != nil {
		return nil, err
	}
	return b.Build()
}

// Builder converts the document into registry definitions. Every invalid
// type name is reported.
func (f *File) Builder() (*registry.Builder, error) {
	b := registry.NewBuilder()
	var errs []error
	for _, t := range f.Tables {
		b.AddTable(t.definition())
	}
	for _, m := range f.Models {
		def, err := m.definition()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		b.AddModel(def)
	}
	if err := stderrors.Join(errs...); err != nil {
		return nil, err
	}
	return b, nil
}

func (t TableDoc) definition() registry.TableDefinition {
	def := registry.TableDefinition{Name: t.Name, Timestamps: t.Timestamps.columns}
	for _, k := range t.Keys {
		tagged := true
		if k.Tagged != nil {
			tagged = *k.Tagged
		}
		def.KeyRoles = append(def.KeyRoles, registry.KeyRole{
			Name:            k.Role,
			Column:          k.Column,
			IncludeModelTag: tagged,
		})
	}
	return def
}

func (m ModelDoc) definition() (registry.ModelDefinition, error) {
	def := registry.ModelDefinition{Name: m.Name, Table: m.Table}
	var errs []error
	for _, a := range m.Attributes {
		attr, err := a.attribute()
		if err != nil {
			errs = append(errs, errors.NewDefinitionError(m.Name, "attribute %q: %v", a.Name, err))
			continue
		}
		def.Attributes = append(def.Attributes, attr)
	}

	roles := make([]string, 0, len(m.Keys))
	for role := range m.Keys {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	for _, role := range roles {
		parts := make([]registry.KeyPart, len(m.Keys[role]))
		for i, p := range m.Keys[role] {
			parts[i] = registry.Part(p.Label, p.Property)
		}
		def.Keys = append(def.Keys, registry.Key(role, parts...))
	}
	return def, stderrors.Join(errs...)
}

func (a AttributeDoc) attribute() (registry.Attribute, error) {
	attr := registry.Attribute{Name: a.Name, Type: registry.TypeString, Shared: a.Shared}
	if len(a.List) > 0 || a.Type == registry.TypeList.String() {
		attr.Type = registry.TypeList
		for _, name := range a.List {
			t, err := registry.ParseValueType(name)
			if err != nil {
				return attr, err
			}
			attr.Elements = append(attr.Elements, t)
		}
		return attr, nil
	}
	if a.Type == "" {
		return attr, nil
	}
	t, err := registry.ParseValueType(a.Type)
	if err != nil {
		return attr, err
	}
	attr.Type = t
	return attr, nil
}
