/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/dolsem/dynamodel/config"
	dmerrors "github.com/dolsem/dynamodel/errors"
	"github.com/dolsem/dynamodel/storagemodels"
)

// API is the subset of the DynamoDB client used by Store.
type API interface {
	GetItem(ctx context.Context, in *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	PutItem(ctx context.Context, in *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	DeleteItem(ctx context.Context, in *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
	TransactWriteItems(ctx context.Context, in *sdk.TransactWriteItemsInput, optFns ...func(*sdk.Options)) (*sdk.TransactWriteItemsOutput, error)
	Query(ctx context.Context, in *sdk.QueryInput, optFns ...func(*sdk.Options)) (*sdk.QueryOutput, error)
}

// Store implements datastore.Store on one DynamoDB table.
type Store struct {
	client    API
	tableName string
}

// New constructs a Store over an existing client.
func New(client API, tableName string) *Store {
	return &Store{client: client, tableName: tableName}
}

// NewClient initializes a DynamoDB client. Static credentials are used when
// both keys are set, the default credential chain otherwise.
func NewClient(ctx context.Context, cfg config.AWS, logger *slog.Logger) (*sdk.Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.HasStaticCredentials() {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := sdk.NewFromConfig(awsCfg, func(o *sdk.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	logger.Info("DynamoDB client initialized", "region", awsCfg.Region, "endpoint", cfg.Endpoint)
	return client, nil
}

// NewFromConfig creates a client from cfg and a Store on table.
func NewFromConfig(ctx context.Context, cfg config.AWS, table string, logger *slog.Logger) (*Store, error) {
	client, err := NewClient(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}
	return New(client, table), nil
}

// TableName returns the physical table name.
func (s *Store) TableName() string {
	return s.tableName
}

// Get retrieves a single row. It returns nil, nil if no row is found.
func (s *Store) Get(ctx context.Context, key storagemodels.Key) (storagemodels.Row, error) {
	keyMap, err := attributevalue.MarshalMap(key)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal key: %w", err)
	}

	out, err := s.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: &s.tableName,
		Key:       keyMap,
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		return nil, nil
	}
	return fromItem(out.Item)
}

// TransactWrite writes all rows atomically. A single row is written with
// PutItem; several with TransactWriteItems.
func (s *Store) TransactWrite(ctx context.Context, writes []storagemodels.Write) error {
	if len(writes) == 0 {
		return nil
	}

	puts := make([]*types.Put, len(writes))
	for i, w := range writes {
		put, err := s.buildPut(w)
		if err != nil {
			return err
		}
		puts[i] = put
	}

	if len(puts) == 1 {
		p := puts[0]
		_, err := s.client.PutItem(ctx, &sdk.PutItemInput{
			TableName:                p.TableName,
			Item:                     p.Item,
			ConditionExpression:      p.ConditionExpression,
			ExpressionAttributeNames: p.ExpressionAttributeNames,
		})
		if err != nil {
			var cfe *types.ConditionalCheckFailedException
			if errors.As(err, &cfe) {
				return dmerrors.NewAlreadyExistsError("row", writes[0].Key.String())
			}
			return fmt.Errorf("PutItem failed: %w", err)
		}
		return nil
	}

	items := make([]types.TransactWriteItem, len(puts))
	for i, p := range puts {
		items[i] = types.TransactWriteItem{Put: p}
	}
	_, err := s.client.TransactWriteItems(ctx, &sdk.TransactWriteItemsInput{
		TransactItems: items,
	})
	return mapTransactionError(err, writes)
}

func (s *Store) buildPut(w storagemodels.Write) (*types.Put, error) {
	item, err := toItem(w.Row)
	if err != nil {
		return nil, err
	}
	put := &types.Put{
		TableName: aws.String(s.tableName),
		Item:      item,
	}
	if w.Mode == storagemodels.WriteCreate {
		cond, names := notExistsCondition(w.Key)
		put.ConditionExpression = aws.String(cond)
		put.ExpressionAttributeNames = names
	}
	return put, nil
}

// Delete removes the rows addressed by keys.
func (s *Store) Delete(ctx context.Context, keys []storagemodels.Key) error {
	if len(keys) == 0 {
		return nil
	}

	keyMaps := make([]map[string]types.AttributeValue, len(keys))
	for i, key := range keys {
		keyMap, err := attributevalue.MarshalMap(key)
		if err != nil {
			return fmt.Errorf("failed to marshal key: %w", err)
		}
		keyMaps[i] = keyMap
	}

	if len(keyMaps) == 1 {
		_, err := s.client.DeleteItem(ctx, &sdk.DeleteItemInput{
			TableName: &s.tableName,
			Key:       keyMaps[0],
		})
		if err != nil {
			return fmt.Errorf("failed to delete item in DynamoDB: %w", err)
		}
		return nil
	}

	items := make([]types.TransactWriteItem, len(keyMaps))
	for i, keyMap := range keyMaps {
		items[i] = types.TransactWriteItem{
			Delete: &types.Delete{
				TableName: aws.String(s.tableName),
				Key:       keyMap,
			},
		}
	}
	if _, err := s.client.TransactWriteItems(ctx, &sdk.TransactWriteItemsInput{TransactItems: items}); err != nil {
		return fmt.Errorf("failed to delete %d items in DynamoDB: %w", len(items), err)
	}
	return nil
}

// mapTransactionError maps a cancelled create transaction to AlreadyExists,
// naming the first row whose condition failed.
func mapTransactionError(err error, writes []storagemodels.Write) error {
	if err == nil {
		return nil
	}

	var txErr *types.TransactionCanceledException
	if errors.As(err, &txErr) {
		for i, reason := range txErr.CancellationReasons {
			if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" && i < len(writes) {
				return dmerrors.NewAlreadyExistsError("row", writes[i].Key.String())
			}
		}
	}
	return fmt.Errorf("TransactWriteItems failed: %w", err)
}

// notExistsCondition builds "attribute_not_exists(#k0)" over the first key
// column; an existing row always carries all of its key columns.
func notExistsCondition(key storagemodels.Key) (string, map[string]string) {
	col := ""
	for c := range key {
		if col == "" || c < col {
			col = c
		}
	}
	return "attribute_not_exists(#k0)", map[string]string{"#k0": col}
}
