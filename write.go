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

// encodedKeys holds every encoding of one key role.
type encodedKeys struct {
	column string
	values []string
}

// keyColumns encodes each key role the model uses, in table order.
func (c *Client) keyColumns(model *registry.Model, values map[string]any) ([]encodedKeys, error) {
	codec := c.translator.Codec()
	var out []encodedKeys
	for _, role := range model.Table().KeyRoles() {
		encoded, err := codec.Encode(model, values, role.Name)
		if err != nil {
			return nil, err
		}
		if len(encoded) == 1 && encoded[0] == "" {
			continue
		}
		out = append(out, encodedKeys{column: role.Column, values: encoded})
	}
	if len(out) == 0 {
		return nil, errors.NewDefinitionError(model.Name(), "model uses no key role")
	}
	return out, nil
}

// combine expands the encoded roles into one physical key per combination.
func (c *Client) combine(model *registry.Model, keys []encodedKeys) ([]storagemodels.Key, error) {
	total := 1
	for _, k := range keys {
		total *= len(k.values)
	}
	if total > c.config.MaxBatchSize {
		return nil, errors.NewBatchTooLargeError(model.Name(), total, c.config.MaxBatchSize)
	}

	combos := []storagemodels.Key{{}}
	for _, k := range keys {
		next := make([]storagemodels.Key, 0, len(combos)*len(k.values))
		for _, partial := range combos {
			for _, v := range k.values {
				key := make(storagemodels.Key, len(partial)+1)
				for col, pv := range partial {
					key[col] = pv
				}
				key[k.column] = v
				next = append(next, key)
			}
		}
		combos = next
	}
	return combos, nil
}

// store writes one row per key combination in a single transaction and
// returns the entity read back from the first row.
func (c *Client) store(ctx context.Context, model *registry.Model, values map[string]any, mode storagemodels.WriteMode, operation string) (*translator.Entity, error) {
	store, err := c.storeFor(model, operation)
	if err != nil {
		return nil, err
	}
	keys, err := c.keyColumns(model, values)
	if err != nil {
		return nil, err
	}
	combos, err := c.combine(model, keys)
	if err != nil {
		return nil, err
	}

	base := c.translator.Project(model, values)
	c.stamp(model.Table(), base, values, mode)

	writes := make([]storagemodels.Write, len(combos))
	for i, key := range combos {
		row := base.Clone()
		for col, v := range key {
			row[col] = v
		}
		writes[i] = storagemodels.Write{Row: row, Key: key, Mode: mode}
	}

	c.logger.Debug("writing entity",
		"model", model.Name(), "mode", mode.String(), "rows", len(writes))
	if err := store.TransactWrite(ctx, writes); err != nil {
		return nil, err
	}
	return c.translate(writes[0].Row, model, nil)
}

// stamp sets the timestamp columns. A put keeps a caller-supplied creation
// instant.
func (c *Client) stamp(table *registry.Table, row storagemodels.Row, values map[string]any, mode storagemodels.WriteMode) {
	ts, ok := table.Timestamps()
	if !ok {
		return
	}
	now := c.now().UnixMilli()
	if ts.UpdatedAt != "" {
		row[ts.UpdatedAt] = now
	}
	if ts.CreatedAt != "" {
		created := now
		if mode == storagemodels.WritePut {
			if ms, ok := translator.EpochMillis(values[ts.CreatedAt]); ok {
				created = ms
			}
		}
		row[ts.CreatedAt] = created
	}
}

// remove deletes every row the model's key values map to.
func (c *Client) remove(ctx context.Context, model *registry.Model, values map[string]any) error {
	store, err := c.storeFor(model, "delete")
	if err != nil {
		return err
	}
	keys, err := c.keyColumns(model, values)
	if err != nil {
		return err
	}
	combos, err := c.combine(model, keys)
	if err != nil {
		return err
	}
	c.logger.Debug("deleting entity", "model", model.Name(), "rows", len(combos))
	return store.Delete(ctx, combos)
}
