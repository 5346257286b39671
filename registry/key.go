/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

// Default key roles of a table.
const (
	PrimaryRole   = "primary"
	SecondaryRole = "secondary"
)

// KeyRole describes one physical key column of a table.
type KeyRole struct {
	// Name is the logical role name (e.g., "primary").
	Name string
	// Column is the physical column holding the encoded key (e.g., "PK").
	Column string
	// IncludeModelTag prefixes the encoding with "<tag>:". Columns of such
	// roles are the marked columns used to resolve a row's model.
	IncludeModelTag bool
}

// DefaultKeyRoles returns the PK/SK layout used when a table declares no roles.
func DefaultKeyRoles() []KeyRole {
	return []KeyRole{
		{Name: PrimaryRole, Column: "PK", IncludeModelTag: true},
		{Name: SecondaryRole, Column: "SK", IncludeModelTag: true},
	}
}

// KeyPart is one position of a key sequence.
type KeyPart struct {
	// Label is the token label written before the value; defaults to Property.
	Label string
	// Property is the attribute supplying the value.
	Property string
}

// Part declares a key position. An empty label defaults to the property name.
func Part(label, property string) KeyPart {
	return KeyPart{Label: label, Property: property}
}

// KeyDefinition is the ordered key sequence of one role of a model.
type KeyDefinition struct {
	Role  string
	Parts []KeyPart
}

// Key declares the sequence of a role.
func Key(role string, parts ...KeyPart) KeyDefinition {
	return KeyDefinition{Role: role, Parts: parts}
}

// KeySequence is the registered, immutable layout of a role for one model.
type KeySequence struct {
	role   KeyRole
	parts  []KeyPart
	labels map[string]string
}

// Role returns the key role descriptor.
func (s *KeySequence) Role() KeyRole {
	return s.role
}

// Parts returns the positions in order.
func (s *KeySequence) Parts() []KeyPart {
	return append([]KeyPart(nil), s.parts...)
}

// Len returns the number of positions.
func (s *KeySequence) Len() int {
	return len(s.parts)
}

// PropertyFor maps a token label to its property. Unknown labels map to
// themselves.
func (s *KeySequence) PropertyFor(label string) string {
	if property, ok := s.labels[label]; ok {
		return property
	}
	return label
}
