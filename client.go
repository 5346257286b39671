/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dynamodel

import (
	"context"
	"log/slog"
	"time"

	"github.com/dolsem/dynamodel/config"
	"github.com/dolsem/dynamodel/datastore"
	"github.com/dolsem/dynamodel/errors"
	"github.com/dolsem/dynamodel/keycodec"
	"github.com/dolsem/dynamodel/registry"
	"github.com/dolsem/dynamodel/storagemodels"
	"github.com/dolsem/dynamodel/translator"
)

// Client runs model operations against the stores bound to the registry's
// tables. It is safe for concurrent use once tables are bound.
type Client struct {
	registry   *registry.Registry
	translator *translator.Translator
	bindings   *bindings
	config     config.Config
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger. Nil means slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithConfig sets the fan-out and batch limits.
func WithConfig(cfg config.Config) Option {
	return func(c *Client) {
		c.config = cfg
	}
}

// WithClock sets the time source of timestamp columns.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// New creates a Client over a built registry.
func New(reg *registry.Registry, opts ...Option) *Client {
	c := &Client{
		registry: reg,
		bindings: newBindings(),
		config:   config.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.config.Validate()
	c.translator = translator.New(keycodec.New(c.config.MaxFanOut))
	return c
}

// Registry returns the registry the client was built with.
func (c *Client) Registry() *registry.Registry {
	return c.registry
}

// Translator returns the row translator in use.
func (c *Client) Translator() *translator.Translator {
	return c.translator
}

// Bind attaches the store holding a registered table.
func (c *Client) Bind(table string, store datastore.Store) error {
	if _, ok := c.registry.Table(table); !ok {
		return errors.NewNotFoundError("table", table)
	}
	if err := c.bindings.bind(table, store); err != nil {
		return err
	}
	c.logger.Debug("table bound", "table", table)
	return nil
}

// Unbind detaches a table's store.
func (c *Client) Unbind(table string) error {
	return c.bindings.remove(table)
}

// BoundTables lists the bound table names, sorted.
func (c *Client) BoundTables() []string {
	return c.bindings.list()
}

// Model returns the handle of a registered model.
func (c *Client) Model(name string) (*Model, error) {
	m, ok := c.registry.Model(name)
	if !ok {
		return nil, errors.NewNotFoundError("model", name)
	}
	return &Model{client: c, model: m}, nil
}

// Save writes an entity back in put mode.
func (c *Client) Save(ctx context.Context, entity *translator.Entity) (*translator.Entity, error) {
	return c.store(ctx, entity.Model(), entity.Values(), storagemodels.WritePut, "save")
}

func (c *Client) storeFor(model *registry.Model, operation string) (datastore.Store, error) {
	store, ok := c.bindings.get(model.Table().Name())
	if !ok {
		return nil, errors.NewTableNotBoundError(model.Name(), model.Table().Name(), operation)
	}
	return store, nil
}

func (c *Client) tableStore(table, operation string) (*registry.Table, datastore.Store, error) {
	t, ok := c.registry.Table(table)
	if !ok {
		return nil, nil, errors.NewNotFoundError("table", table)
	}
	store, ok := c.bindings.get(table)
	if !ok {
		return nil, nil, errors.NewTableNotBoundError("", table, operation)
	}
	return t, store, nil
}

// translate rebuilds an entity of model, or of the row's own model when
// model is nil.
func (c *Client) translate(row storagemodels.Row, model *registry.Model, table *registry.Table) (*translator.Entity, error) {
	var (
		entity *translator.Entity
		err    error
	)
	if model != nil {
		entity, err = c.translator.FromRow(row, model)
	} else {
		entity, err = c.translator.FromTableRow(row, table)
	}
	if err != nil || entity == nil {
		return entity, err
	}
	if unmapped := entity.Unmapped(); len(unmapped) > 0 {
		c.logger.Warn("row columns match no attribute",
			"model", entity.Model().Name(), "columns", unmapped)
	}
	return entity, nil
}
