/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dynamodel

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dolsem/dynamodel/datastore"
)

// bindings is a thread-safe map from table name to the store holding it.
type bindings struct {
	mu     sync.RWMutex
	stores map[string]datastore.Store
}

func newBindings() *bindings {
	return &bindings{
		stores: make(map[string]datastore.Store),
	}
}

func (b *bindings) bind(table string, store datastore.Store) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.stores[table]; exists {
		return fmt.Errorf("table %q already bound", table)
	}
	b.stores[table] = store
	return nil
}

func (b *bindings) get(table string) (datastore.Store, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	store, exists := b.stores[table]
	return store, exists
}

func (b *bindings) remove(table string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.stores[table]; !exists {
		return fmt.Errorf("table %q not bound", table)
	}
	delete(b.stores, table)
	return nil
}

func (b *bindings) list() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	tables := make([]string, 0, len(b.stores))
	for t := range b.stores {
		tables = append(tables, t)
	}
	sort.Strings(tables)
	return tables
}
