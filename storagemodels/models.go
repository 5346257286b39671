/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"sort"
	"strings"
)

// Row is one physical item: column name to primitive value (string, int64,
// float64, bool, []string, epoch milliseconds for instants, or nested maps and
// lists of those).
type Row map[string]any

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Key holds the encoded key columns that address one row.
type Key map[string]string

// String renders the key deterministically ("PK=a|SK=b").
func (k Key) String() string {
	cols := make([]string, 0, len(k))
	for c := range k {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = c + "=" + k[c]
	}
	return strings.Join(parts, "|")
}

// KeyOf extracts the given key columns from a row. Columns absent from the
// row are skipped.
func KeyOf(row Row, columns []string) Key {
	key := make(Key, len(columns))
	for _, c := range columns {
		if v, ok := row[c].(string); ok {
			key[c] = v
		}
	}
	return key
}

// WriteMode selects the semantics of a row write.
type WriteMode int

const (
	// WritePut overwrites any existing row.
	WritePut WriteMode = iota
	// WriteCreate fails when a row with the same key exists.
	WriteCreate
)

func (m WriteMode) String() string {
	if m == WriteCreate {
		return "create"
	}
	return "put"
}

// Write is one row of an atomic multi-row write.
type Write struct {
	Row  Row
	Key  Key
	Mode WriteMode
}

// QueryParams defines parameters for a key-condition query. Expressions use
// the DynamoDB expression syntax; values are primitives.
type QueryParams struct {
	// KeyConditionExpression is the primary condition for the query.
	KeyConditionExpression string
	// FilterExpression is an optional filter expression.
	FilterExpression *string
	// ExpressionAttributeNames maps "#name" placeholders to column names.
	ExpressionAttributeNames map[string]string
	// ExpressionAttributeValues contains the values for ":value" placeholders.
	ExpressionAttributeValues map[string]any
	// IndexName is optional if you wish to query a secondary index.
	IndexName *string
	// Limit defines an optional limit per query page.
	Limit *int32
	// ExclusiveStartKey for pagination
	ExclusiveStartKey Row
	// ScanIndexForward specifies the order for index traversal.
	// If true (default), traversal is in ascending order.
	// If false, traversal is in descending order.
	ScanIndexForward *bool
}

// QueryPage is one page of query results.
type QueryPage struct {
	Rows []Row
	// LastEvaluatedKey is nil on the last page.
	LastEvaluatedKey Row
}
