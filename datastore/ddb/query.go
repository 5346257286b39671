/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/dolsem/dynamodel/storagemodels"
)

// Query performs one page of a query against the table. Rows are returned
// as-is; the caller resolves each row's model.
func (s *Store) Query(ctx context.Context, params *storagemodels.QueryParams) (*storagemodels.QueryPage, error) {
	input, err := s.buildQueryInput(params)
	if err != nil {
		return nil, err
	}

	out, err := s.client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	page := &storagemodels.QueryPage{Rows: make([]storagemodels.Row, 0, len(out.Items))}
	for _, item := range out.Items {
		row, err := fromItem(item)
		if err != nil {
			return nil, err
		}
		page.Rows = append(page.Rows, row)
	}
	if len(out.LastEvaluatedKey) > 0 {
		if page.LastEvaluatedKey, err = fromItem(out.LastEvaluatedKey); err != nil {
			return nil, err
		}
	}
	return page, nil
}

func (s *Store) buildQueryInput(params *storagemodels.QueryParams) (*dynamodb.QueryInput, error) {
	if params == nil || params.KeyConditionExpression == "" {
		return nil, fmt.Errorf("query requires a key condition expression")
	}

	var values map[string]types.AttributeValue
	if len(params.ExpressionAttributeValues) > 0 {
		var err error
		values, err = attributevalue.MarshalMap(params.ExpressionAttributeValues)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal expression values: %w", err)
		}
	}

	input := &dynamodb.QueryInput{
		TableName:                 &s.tableName,
		KeyConditionExpression:    &params.KeyConditionExpression,
		ExpressionAttributeNames:  params.ExpressionAttributeNames,
		ExpressionAttributeValues: values,
		FilterExpression:          params.FilterExpression,
		IndexName:                 params.IndexName,
		Limit:                     params.Limit,
		ScanIndexForward:          params.ScanIndexForward,
	}
	if len(params.ExclusiveStartKey) > 0 {
		start, err := toItem(params.ExclusiveStartKey)
		if err != nil {
			return nil, err
		}
		input.ExclusiveStartKey = start
	}
	return input, nil
}
