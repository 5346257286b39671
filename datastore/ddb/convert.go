/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/dolsem/dynamodel/storagemodels"
)

var decoder = attributevalue.NewDecoder(func(o *attributevalue.DecoderOptions) {
	o.UseNumber = true
})

func toItem(row storagemodels.Row) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(map[string]any(row))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal row: %w", err)
	}
	return item, nil
}

// fromItem converts an item to a row; N values become int64 when integral,
// float64 otherwise.
func fromItem(item map[string]types.AttributeValue) (storagemodels.Row, error) {
	var raw map[string]any
	if err := decoder.Decode(&types.AttributeValueMemberM{Value: item}, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	row := make(storagemodels.Row, len(raw))
	for k, v := range raw {
		row[k] = normalize(v)
	}
	return row, nil
}

func normalize(v any) any {
	switch x := v.(type) {
	case attributevalue.Number:
		return number(x)
	case []attributevalue.Number:
		out := make([]any, len(x))
		for i, n := range x {
			out[i] = number(n)
		}
		return out
	case []any:
		for i := range x {
			x[i] = normalize(x[i])
		}
		return x
	case map[string]any:
		for k := range x {
			x[k] = normalize(x[k])
		}
		return x
	}
	return v
}

func number(n attributevalue.Number) any {
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
