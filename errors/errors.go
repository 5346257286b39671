/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common sentinel errors
var (
	// ErrMissingKeyProperty is returned when a key property is absent from the value map being encoded
	ErrMissingKeyProperty = errors.New("missing key property")

	// ErrModelTagMismatch is returned when a decoded key carries a tag other than the asserted model's
	ErrModelTagMismatch = errors.New("model tag mismatch")

	// ErrUnknownModelTag is returned when a tag is not bound to any model of the table
	ErrUnknownModelTag = errors.New("unknown model tag")

	// ErrMalformedKey is returned when an encoded key string violates the token grammar
	ErrMalformedKey = errors.New("malformed key")

	// ErrModelResolution is returned when a row carries no marked key column
	ErrModelResolution = errors.New("cannot resolve model")

	// ErrTableNotBound is returned when a model operation runs before its table is bound to a datastore
	ErrTableNotBound = errors.New("table not bound")

	// ErrInvalidDefinition is returned when a model or table registration is inconsistent
	ErrInvalidDefinition = errors.New("invalid definition")

	// ErrFanOutLimit is returned when a key role expands into more strings than allowed
	ErrFanOutLimit = errors.New("key fan-out limit exceeded")

	// ErrBatchTooLarge is returned when a write expands into more rows than one atomic batch holds
	ErrBatchTooLarge = errors.New("write batch too large")

	// ErrAlreadyExists is returned when attempting to create an entity that already exists
	ErrAlreadyExists = errors.New("entity already exists")

	// ErrNotFound is returned when a model or table is not registered
	ErrNotFound = errors.New("not found")
)

// MissingKeyPropertyError names the key property that was absent and the values supplied.
type MissingKeyPropertyError struct {
	Model    string
	Property string
	Values   map[string]any
}

func (e *MissingKeyPropertyError) Error() string {
	return fmt.Sprintf("[%s] required key property %q is missing on %s", e.Model, e.Property, formatValues(e.Values))
}

func (e *MissingKeyPropertyError) Is(target error) bool {
	return target == ErrMissingKeyProperty
}

// ModelTagMismatchError is a key probed against the wrong model.
type ModelTagMismatchError struct {
	Expected string
	Actual   string
	Key      string
}

func (e *ModelTagMismatchError) Error() string {
	return fmt.Sprintf("key %q belongs to model %q, not %q", e.Key, e.Actual, e.Expected)
}

func (e *ModelTagMismatchError) Is(target error) bool {
	return target == ErrModelTagMismatch
}

// UnknownModelTagError represents a tag with no model in the table registry
type UnknownModelTagError struct {
	Table string
	Tag   string
	Key   string
}

func (e *UnknownModelTagError) Error() string {
	if e.Tag == "" {
		return fmt.Sprintf("key %q has no model tag, table %q cannot resolve its model", e.Key, e.Table)
	}
	return fmt.Sprintf("table %q has no model with tag %q (key %q)", e.Table, e.Tag, e.Key)
}

func (e *UnknownModelTagError) Is(target error) bool {
	return target == ErrUnknownModelTag
}

// MalformedKeyError represents an encoded key whose token structure is inconsistent
type MalformedKeyError struct {
	Key    string
	Reason string
}

func (e *MalformedKeyError) Error() string {
	return fmt.Sprintf("malformed key %q: %s", e.Key, e.Reason)
}

func (e *MalformedKeyError) Is(target error) bool {
	return target == ErrMalformedKey
}

// ModelResolutionError represents a row read at table scope without any marked key column
type ModelResolutionError struct {
	Table   string
	Columns []string
}

func (e *ModelResolutionError) Error() string {
	cols := append([]string(nil), e.Columns...)
	sort.Strings(cols)
	return fmt.Sprintf("cannot resolve model for row of table %q: none of [%s] is a marked key column", e.Table, strings.Join(cols, ", "))
}

func (e *ModelResolutionError) Is(target error) bool {
	return target == ErrModelResolution
}

// TableNotBoundError represents a model operation invoked before its table was bound
type TableNotBoundError struct {
	Model     string
	Table     string
	Operation string
}

func (e *TableNotBoundError) Error() string {
	return fmt.Sprintf("[%s] %s() failed - table %q not initialized", e.Model, e.Operation, e.Table)
}

func (e *TableNotBoundError) Is(target error) bool {
	return target == ErrTableNotBound
}

// DefinitionError represents an invalid model, attribute or table registration
type DefinitionError struct {
	Subject string
	Message string
}

func (e *DefinitionError) Error() string {
	if e.Subject != "" {
		return fmt.Sprintf("[%s] %s", e.Subject, e.Message)
	}
	return e.Message
}

func (e *DefinitionError) Is(target error) bool {
	return target == ErrInvalidDefinition
}

// LimitError represents a fan-out or batch bound being exceeded
type LimitError struct {
	Kind  error
	What  string
	Count int
	Limit int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s: %s produces %d, limit is %d", e.Kind, e.What, e.Count, e.Limit)
}

func (e *LimitError) Is(target error) bool {
	return target == e.Kind
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Type string
	Key  string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s with key %q already exists", e.Type, e.Key)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// NotFoundError represents an unregistered model or table
type NotFoundError struct {
	Type string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Type, e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Helper functions for creating errors

// NewMissingKeyPropertyError creates a new MissingKeyPropertyError
func NewMissingKeyPropertyError(model, property string, values map[string]any) error {
	return &MissingKeyPropertyError{Model: model, Property: property, Values: values}
}

// NewModelTagMismatchError creates a new ModelTagMismatchError
func NewModelTagMismatchError(expected, actual, key string) error {
	return &ModelTagMismatchError{Expected: expected, Actual: actual, Key: key}
}

// NewUnknownModelTagError creates a new UnknownModelTagError
func NewUnknownModelTagError(table, tag, key string) error {
	return &UnknownModelTagError{Table: table, Tag: tag, Key: key}
}

// NewMalformedKeyError creates a new MalformedKeyError
func NewMalformedKeyError(key, reason string) error {
	return &MalformedKeyError{Key: key, Reason: reason}
}

// NewModelResolutionError creates a new ModelResolutionError
func NewModelResolutionError(table string, columns []string) error {
	return &ModelResolutionError{Table: table, Columns: columns}
}

// NewTableNotBoundError creates a new TableNotBoundError
func NewTableNotBoundError(model, table, operation string) error {
	return &TableNotBoundError{Model: model, Table: table, Operation: operation}
}

// NewDefinitionError creates a new DefinitionError
func NewDefinitionError(subject, format string, args ...any) error {
	return &DefinitionError{Subject: subject, Message: fmt.Sprintf(format, args...)}
}

// NewFanOutLimitError creates a LimitError for an oversized key cross product
func NewFanOutLimitError(what string, count, limit int) error {
	return &LimitError{Kind: ErrFanOutLimit, What: what, Count: count, Limit: limit}
}

// NewBatchTooLargeError creates a LimitError for an oversized atomic write
func NewBatchTooLargeError(what string, count, limit int) error {
	return &LimitError{Kind: ErrBatchTooLarge, What: what, Count: count, Limit: limit}
}

// NewAlreadyExistsError creates a new AlreadyExistsError
func NewAlreadyExistsError(entityType, key string) error {
	return &AlreadyExistsError{Type: entityType, Key: key}
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(kind, name string) error {
	return &NotFoundError{Type: kind, Name: name}
}

// IsMissingKeyProperty checks if an error is a missing key property error
func IsMissingKeyProperty(err error) bool {
	return errors.Is(err, ErrMissingKeyProperty)
}

// IsModelTagMismatch checks if an error is a model tag mismatch error
func IsModelTagMismatch(err error) bool {
	return errors.Is(err, ErrModelTagMismatch)
}

// IsUnknownModelTag checks if an error is an unknown model tag error
func IsUnknownModelTag(err error) bool {
	return errors.Is(err, ErrUnknownModelTag)
}

// IsMalformedKey checks if an error is a malformed key error
func IsMalformedKey(err error) bool {
	return errors.Is(err, ErrMalformedKey)
}

// IsModelResolution checks if an error is a model resolution error
func IsModelResolution(err error) bool {
	return errors.Is(err, ErrModelResolution)
}

// IsTableNotBound checks if an error is a table not bound error
func IsTableNotBound(err error) bool {
	return errors.Is(err, ErrTableNotBound)
}

// IsInvalidDefinition checks if an error is a definition error
func IsInvalidDefinition(err error) bool {
	return errors.Is(err, ErrInvalidDefinition)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// formatValues renders a value map with sorted keys so messages are stable.
func formatValues(values map[string]any) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", k, values[k]))
	}
	return "{" + strings.Join(parts, " ") + "}"
}
