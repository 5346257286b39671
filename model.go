/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dynamodel

import (
	"context"

	"github.com/dolsem/dynamodel/errors"
	"github.com/dolsem/dynamodel/registry"
	"github.com/dolsem/dynamodel/storagemodels"
	"github.com/dolsem/dynamodel/translator"
)

// Model is a handle for running operations on one registered model.
type Model struct {
	client *Client
	model  *registry.Model
}

// Definition returns the registered model.
func (m *Model) Definition() *registry.Model {
	return m.model
}

// Make creates an entity in memory without touching the store.
func (m *Model) Make(values map[string]any) *translator.Entity {
	return translator.NewEntity(m.model, values)
}

// Get fetches the entity addressed by the key properties in values. Only
// the first key of a fan-out role is used. A missing row yields nil, nil.
func (m *Model) Get(ctx context.Context, values map[string]any) (*translator.Entity, error) {
	store, err := m.client.storeFor(m.model, "get")
	if err != nil {
		return nil, err
	}
	keys, err := m.client.keyColumns(m.model, values)
	if err != nil {
		return nil, err
	}

	key := make(storagemodels.Key, len(keys))
	for _, k := range keys {
		key[k.column] = k.values[0]
	}
	row, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return m.client.translate(row, m.model, nil)
}

// Create writes every row of a new entity. It fails with ErrAlreadyExists,
// writing nothing, when any of the rows is already present.
func (m *Model) Create(ctx context.Context, values map[string]any) (*translator.Entity, error) {
	return m.client.store(ctx, m.model, values, storagemodels.WriteCreate, "create")
}

// Put writes every row of an entity, overwriting existing rows.
func (m *Model) Put(ctx context.Context, values map[string]any) (*translator.Entity, error) {
	return m.client.store(ctx, m.model, values, storagemodels.WritePut, "put")
}

// Save writes an entity of this model back in put mode.
func (m *Model) Save(ctx context.Context, entity *translator.Entity) (*translator.Entity, error) {
	if entity.Model() != m.model {
		return nil, errors.NewModelTagMismatchError(m.model.Tag(), entity.Model().Tag(), "")
	}
	return m.client.store(ctx, m.model, entity.Values(), storagemodels.WritePut, "save")
}

// Delete removes every row the key properties in values map to.
func (m *Model) Delete(ctx context.Context, values map[string]any) error {
	return m.client.remove(ctx, m.model, values)
}
