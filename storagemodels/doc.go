/*
Package storagemodels defines the data structures exchanged with the store.

Key Types:

Row:
A physical item, column name to primitive value:

	row := Row{
	    "PK":         "dog:name{Sparky}",
	    "SK":         "dog:owner{Victor}breed{Bull Terrier}",
	    "dog:weight": int64(21),
	    "createdAt":  int64(1714979289123),
	}

QueryParams:
Parameters for querying the store:

	params := &QueryParams{
	    KeyConditionExpression: "PK = :pk AND begins_with(SK, :sk)",
	    ExpressionAttributeValues: map[string]any{
	        ":pk": "dog:name{Sparky}",
	        ":sk": "dog:owner{",
	    },
	    Limit: aws.Int32(100),
	}

StreamResult:
Results from streaming operations with metadata:

	type StreamResult[T any] struct {
	    Item  T          // The translated item
	    Raw   Row        // Raw row
	    Error error      // Item-specific error, if any
	    Meta  StreamMeta // Metadata about this item
	}

StreamOptions:
Configuration for streaming behavior:

	opts := []StreamOption{
	    WithBufferSize(100),
	    WithPageSize(25),
	    WithProgressHandler(progressFunc),
	}

These types provide a consistent interface across different storage implementations.
*/
package storagemodels
