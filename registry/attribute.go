/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"strings"
)

// ValueType is the declared logical type of an attribute.
type ValueType int

const (
	TypeString ValueType = iota
	TypeNumber
	TypeDate
	TypeBoolean
	TypeList
	TypeOpaque
)

var valueTypeNames = map[ValueType]string{
	TypeString:  "string",
	TypeNumber:  "number",
	TypeDate:    "date",
	TypeBoolean: "boolean",
	TypeList:    "list",
	TypeOpaque:  "opaque",
}

func (t ValueType) String() string {
	if name, ok := valueTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ValueType(%d)", int(t))
}

// ParseValueType maps a type name (as written in schema files) to a ValueType.
func ParseValueType(name string) (ValueType, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for t, n := range valueTypeNames {
		if n == lower {
			return t, nil
		}
	}
	switch lower {
	case "bool":
		return TypeBoolean, nil
	case "time", "datetime", "date-time":
		return TypeDate, nil
	case "object", "map", "any":
		return TypeOpaque, nil
	}
	return 0, fmt.Errorf("unknown attribute type %q", name)
}

// EncodeFunc is a custom serializer applied to a value before it is rendered
// into a key token.
type EncodeFunc func(value any) (any, error)

// DecodeFunc is a custom deserializer applied to an unescaped key token.
type DecodeFunc func(raw string) (any, error)

// Attribute is the metadata of one logical property of a model.
type Attribute struct {
	// Name is the property name.
	Name string
	// Type is the declared value type.
	Type ValueType
	// Elements holds the element types of a TypeList attribute.
	Elements []ValueType
	// Shared attributes use the property name as physical column name;
	// scoped ones (the default) are prefixed with the model tag.
	Shared bool
	// Encode and Decode are optional custom codecs for key tokens.
	Encode EncodeFunc
	Decode DecodeFunc

	roles []string
}

// String declares a string attribute.
func String(name string) Attribute { return Attribute{Name: name, Type: TypeString} }

// Number declares a numeric attribute.
func Number(name string) Attribute { return Attribute{Name: name, Type: TypeNumber} }

// Date declares an instant attribute.
func Date(name string) Attribute { return Attribute{Name: name, Type: TypeDate} }

// Boolean declares a boolean attribute.
func Boolean(name string) Attribute { return Attribute{Name: name, Type: TypeBoolean} }

// StringList declares a list-of-string attribute, the only list shape allowed in keys.
func StringList(name string) Attribute {
	return Attribute{Name: name, Type: TypeList, Elements: []ValueType{TypeString}}
}

// Opaque declares an attribute the mapper stores without interpretation.
func Opaque(name string) Attribute { return Attribute{Name: name, Type: TypeOpaque} }

// AsShared returns a copy of the attribute marked as shared.
func (a Attribute) AsShared() Attribute {
	a.Shared = true
	return a
}

// WithCodec returns a copy of the attribute with custom key codecs.
func (a Attribute) WithCodec(encode EncodeFunc, decode DecodeFunc) Attribute {
	a.Encode = encode
	a.Decode = decode
	return a
}

// IsList reports whether the attribute is list-typed.
func (a *Attribute) IsList() bool {
	return a.Type == TypeList
}

// Roles returns the key roles the attribute takes part in, in registration order.
func (a *Attribute) Roles() []string {
	return append([]string(nil), a.roles...)
}

// IsKey reports whether the attribute is part of at least one key role.
func (a *Attribute) IsKey() bool {
	return len(a.roles) > 0
}

// isStringListKeyShape reports whether a list attribute is declared as
// exactly one element of type string.
func (a *Attribute) isStringListKeyShape() bool {
	return len(a.Elements) == 1 && a.Elements[0] == TypeString
}
