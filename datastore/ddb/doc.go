/*
Package ddb provides a DynamoDB implementation of the datastore.Store interface.

The Store supports:
  - Single-table designs with encoded PK/SK key columns
  - All-or-nothing multi-row writes (TransactWriteItems)
  - Create-only writes guarded by attribute_not_exists conditions
  - Paged key-condition queries

Rows are plain maps; numbers come back as int64 when integral and float64
otherwise.

	client, err := ddb.NewClient(ctx, cfg.AWS, logger)
	if err != nil {
	    return err
	}
	store := ddb.New(client, "Pets")

	err = store.TransactWrite(ctx, []storagemodels.Write{{
	    Row:  storagemodels.Row{"PK": "dog:name{Sparky}", "SK": "dog:owner{Victor}breed{Bull Terrier}"},
	    Key:  storagemodels.Key{"PK": "dog:name{Sparky}", "SK": "dog:owner{Victor}breed{Bull Terrier}"},
	    Mode: storagemodels.WriteCreate,
	}})

No call is retried beyond what the AWS SDK does by itself.
*/
package ddb
