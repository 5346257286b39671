/*
Package datastore defines the store collaborator of dynamodel's write and read paths.

The Store interface moves physical rows in and out of one table:

	type Store interface {
	    Get(ctx context.Context, key storagemodels.Key) (storagemodels.Row, error)
	    TransactWrite(ctx context.Context, writes []storagemodels.Write) error
	    Delete(ctx context.Context, keys []storagemodels.Key) error
	    Query(ctx context.Context, params *storagemodels.QueryParams) (*storagemodels.QueryPage, error)
	}

Implementations:
  - ddb: DynamoDB implementation for single-table designs
  - mock: In-memory implementation for testing

Rows carry already encoded keys; a Store never interprets key strings.
*/
package datastore
