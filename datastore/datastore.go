/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/dolsem/dynamodel/storagemodels"
)

// Store is the physical table a set of models is bound to. Implementations
// perform no retries.
type Store interface {
	// Get returns the row addressed by key, or nil, nil when there is none.
	Get(ctx context.Context, key storagemodels.Key) (storagemodels.Row, error)

	// TransactWrite writes every row or none of them. A WriteCreate row
	// whose key already exists cancels the whole write with errors.ErrAlreadyExists.
	TransactWrite(ctx context.Context, writes []storagemodels.Write) error

	// Delete removes the rows addressed by keys, atomically when there is
	// more than one. Missing rows are not an error.
	Delete(ctx context.Context, keys []storagemodels.Key) error

	// Query returns one page of rows matching params.
	Query(ctx context.Context, params *storagemodels.QueryParams) (*storagemodels.QueryPage, error)
}
