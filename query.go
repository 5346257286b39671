/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dynamodel

import (
	"context"
	"fmt"

	"github.com/dolsem/dynamodel/storagemodels"
	"github.com/dolsem/dynamodel/translator"
)

// QueryResult is one page of entities read at table scope.
type QueryResult struct {
	Entities         []*translator.Entity
	LastEvaluatedKey storagemodels.Row
}

// Query runs one page of params against a table. Every row resolves to the
// model that owns it, so a page may mix models. The first row that fails to
// translate fails the query.
func (c *Client) Query(ctx context.Context, table string, params *storagemodels.QueryParams) (*QueryResult, error) {
	t, store, err := c.tableStore(table, "query")
	if err != nil {
		return nil, err
	}
	page, err := store.Query(ctx, params)
	if err != nil {
		return nil, err
	}

	result := &QueryResult{
		Entities:         make([]*translator.Entity, 0, len(page.Rows)),
		LastEvaluatedKey: page.LastEvaluatedKey,
	}
	for i, row := range page.Rows {
		entity, err := c.translate(row, nil, t)
		if err != nil {
			return nil, fmt.Errorf("row %d of %s: %w", i, table, err)
		}
		result.Entities = append(result.Entities, entity)
	}
	return result, nil
}
