/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of datastore.Store for testing
package mock

import (
	"context"
	"sort"
	"sync"

	"github.com/dolsem/dynamodel/errors"
	"github.com/dolsem/dynamodel/storagemodels"
)

// DataStore is an in-memory datastore.Store. Rows are ordered by their key
// columns, compared as strings.
type DataStore struct {
	mu          sync.RWMutex
	keyColumns  []string
	data        map[string]storagemodels.Row
	queryFunc   func(ctx context.Context, params *storagemodels.QueryParams) (*storagemodels.QueryPage, error)
	getError    error
	writeError  error
	deleteError error
	transacts   [][]storagemodels.Write
}

// New creates an empty DataStore keyed by keyColumns (default "PK", "SK").
func New(keyColumns ...string) *DataStore {
	if len(keyColumns) == 0 {
		keyColumns = []string{"PK", "SK"}
	}
	return &DataStore{
		keyColumns: keyColumns,
		data:       make(map[string]storagemodels.Row),
	}
}

// WithQueryFunc sets a custom query function for testing
func (m *DataStore) WithQueryFunc(f func(ctx context.Context, params *storagemodels.QueryParams) (*storagemodels.QueryPage, error)) *DataStore {
	m.queryFunc = f
	return m
}

// WithGetError makes Get operations return an error
func (m *DataStore) WithGetError(err error) *DataStore {
	m.getError = err
	return m
}

// WithWriteError makes TransactWrite operations return an error
func (m *DataStore) WithWriteError(err error) *DataStore {
	m.writeError = err
	return m
}

// WithDeleteError makes Delete operations return an error
func (m *DataStore) WithDeleteError(err error) *DataStore {
	m.deleteError = err
	return m
}

// Get retrieves a row by key. It returns nil, nil when the row is absent.
func (m *DataStore) Get(ctx context.Context, key storagemodels.Key) (storagemodels.Row, error) {
	if m.getError != nil {
		return nil, m.getError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if row, exists := m.data[key.String()]; exists {
		return row.Clone(), nil
	}
	return nil, nil
}

// TransactWrite stores every row or none.
func (m *DataStore) TransactWrite(ctx context.Context, writes []storagemodels.Write) error {
	if m.writeError != nil {
		return m.writeError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	staged := make(map[string]storagemodels.Row, len(writes))
	for _, w := range writes {
		key := m.keyOf(w.Row)
		if len(key) == 0 {
			return errors.NewMalformedKeyError("", "row has no key columns")
		}
		id := key.String()
		if w.Mode == storagemodels.WriteCreate {
			_, stored := m.data[id]
			_, pending := staged[id]
			if stored || pending {
				return errors.NewAlreadyExistsError("row", id)
			}
		}
		staged[id] = w.Row.Clone()
	}
	for id, row := range staged {
		m.data[id] = row
	}
	m.transacts = append(m.transacts, append([]storagemodels.Write(nil), writes...))
	return nil
}

// Delete removes rows by key. Missing rows are ignored.
func (m *DataStore) Delete(ctx context.Context, keys []storagemodels.Key) error {
	if m.deleteError != nil {
		return m.deleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		delete(m.data, key.String())
	}
	return nil
}

// Query evaluates the key condition and filter over all rows. Supported
// conditions are "a = :v", "a < :v" (and <=, >, >=) and
// "begins_with(a, :v)" joined with AND; "#name" placeholders are resolved.
func (m *DataStore) Query(ctx context.Context, params *storagemodels.QueryParams) (*storagemodels.QueryPage, error) {
	if m.queryFunc != nil {
		return m.queryFunc(ctx, params)
	}

	keyCond, err := parseExpression(params.KeyConditionExpression, params)
	if err != nil {
		return nil, err
	}
	var filter expression
	if params.FilterExpression != nil {
		if filter, err = parseExpression(*params.FilterExpression, params); err != nil {
			return nil, err
		}
	}

	m.mu.RLock()
	ids := make([]string, 0, len(m.data))
	for id, row := range m.data {
		if keyCond.matches(row) {
			ids = append(ids, id)
		}
	}
	rows := make(map[string]storagemodels.Row, len(ids))
	for _, id := range ids {
		rows[id] = m.data[id].Clone()
	}
	m.mu.RUnlock()

	sort.Strings(ids)
	if params.ScanIndexForward != nil && !*params.ScanIndexForward {
		for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
			ids[i], ids[j] = ids[j], ids[i]
		}
	}

	if len(params.ExclusiveStartKey) > 0 {
		start := m.keyOf(params.ExclusiveStartKey).String()
		for i, id := range ids {
			if id == start {
				ids = ids[i+1:]
				break
			}
		}
	}

	page := &storagemodels.QueryPage{Rows: []storagemodels.Row{}}
	evaluated := ids
	if params.Limit != nil && int(*params.Limit) < len(ids) {
		evaluated = ids[:*params.Limit]
		last := rows[evaluated[len(evaluated)-1]]
		page.LastEvaluatedKey = storagemodels.Row{}
		for c, v := range m.keyOf(last) {
			page.LastEvaluatedKey[c] = v
		}
	}
	for _, id := range evaluated {
		if filter == nil || filter.matches(rows[id]) {
			page.Rows = append(page.Rows, rows[id])
		}
	}
	return page, nil
}

// Helper methods for testing

// SetRows replaces the stored rows (for testing)
func (m *DataStore) SetRows(rows ...storagemodels.Row) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]storagemodels.Row, len(rows))
	for _, row := range rows {
		m.data[m.keyOf(row).String()] = row.Clone()
	}
}

// Rows returns a copy of the stored rows ordered by key (for testing)
func (m *DataStore) Rows() []storagemodels.Row {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.data))
	for id := range m.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	result := make([]storagemodels.Row, len(ids))
	for i, id := range ids {
		result[i] = m.data[id].Clone()
	}
	return result
}

// Transactions returns the successful TransactWrite calls in order (for testing)
func (m *DataStore) Transactions() [][]storagemodels.Write {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([][]storagemodels.Write(nil), m.transacts...)
}

// Count returns the number of stored rows
func (m *DataStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Clear removes all data
func (m *DataStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]storagemodels.Row)
	m.transacts = nil
}

func (m *DataStore) keyOf(row storagemodels.Row) storagemodels.Key {
	return storagemodels.KeyOf(row, m.keyColumns)
}
