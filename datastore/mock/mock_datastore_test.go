/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolsem/dynamodel/datastore"
	"github.com/dolsem/dynamodel/datastore/mock"
	"github.com/dolsem/dynamodel/errors"
	"github.com/dolsem/dynamodel/storagemodels"
)

var _ datastore.Store = (*mock.DataStore)(nil)

func write(mode storagemodels.WriteMode, rows ...storagemodels.Row) []storagemodels.Write {
	out := make([]storagemodels.Write, len(rows))
	for i, r := range rows {
		out[i] = storagemodels.Write{Row: r, Key: storagemodels.KeyOf(r, []string{"PK", "SK"}), Mode: mode}
	}
	return out
}

func TestMockDataStore(t *testing.T) {
	ctx := context.Background()

	t.Run("BasicOperations", func(t *testing.T) {
		store := mock.New()
		row := storagemodels.Row{"PK": "dog:name{Rex}", "SK": "dog:owner{Ann}breed{Pug}", "dog:weight": int64(8)}

		require.NoError(t, store.TransactWrite(ctx, write(storagemodels.WritePut, row)))

		got, err := store.Get(ctx, storagemodels.Key{"PK": "dog:name{Rex}", "SK": "dog:owner{Ann}breed{Pug}"})
		require.NoError(t, err)
		assert.Equal(t, row, got)

		got["dog:weight"] = int64(9)
		again, _ := store.Get(ctx, storagemodels.Key{"PK": "dog:name{Rex}", "SK": "dog:owner{Ann}breed{Pug}"})
		assert.Equal(t, int64(8), again["dog:weight"], "stored rows are isolated from callers")

		require.NoError(t, store.Delete(ctx, []storagemodels.Key{{"PK": "dog:name{Rex}", "SK": "dog:owner{Ann}breed{Pug}"}}))
		got, err = store.Get(ctx, storagemodels.Key{"PK": "dog:name{Rex}", "SK": "dog:owner{Ann}breed{Pug}"})
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("CreateIsAllOrNothing", func(t *testing.T) {
		store := mock.New()
		existing := storagemodels.Row{"PK": "p", "SK": "b"}
		store.SetRows(existing)

		err := store.TransactWrite(ctx, write(storagemodels.WriteCreate,
			storagemodels.Row{"PK": "p", "SK": "a"},
			storagemodels.Row{"PK": "p", "SK": "b"},
		))
		require.Error(t, err)
		assert.True(t, errors.IsAlreadyExists(err))
		assert.Equal(t, 1, store.Count())
		assert.Empty(t, store.Transactions())
	})

	t.Run("DuplicateWithinTransaction", func(t *testing.T) {
		store := mock.New()
		err := store.TransactWrite(ctx, write(storagemodels.WriteCreate,
			storagemodels.Row{"PK": "p", "SK": "a"},
			storagemodels.Row{"PK": "p", "SK": "a"},
		))
		assert.True(t, errors.IsAlreadyExists(err))
	})

	t.Run("PartitionOnlyKeys", func(t *testing.T) {
		store := mock.New()
		row := storagemodels.Row{"PK": "pet_owner:email{a@b.c}"}
		require.NoError(t, store.TransactWrite(ctx, write(storagemodels.WriteCreate, row)))
		got, err := store.Get(ctx, storagemodels.Key{"PK": "pet_owner:email{a@b.c}"})
		require.NoError(t, err)
		assert.Equal(t, row, got)
	})

	t.Run("ErrorSimulation", func(t *testing.T) {
		boom := fmt.Errorf("boom")
		store := mock.New().WithGetError(boom).WithWriteError(boom).WithDeleteError(boom)
		_, err := store.Get(ctx, storagemodels.Key{"PK": "x"})
		assert.ErrorIs(t, err, boom)
		assert.ErrorIs(t, store.TransactWrite(ctx, nil), boom)
		assert.ErrorIs(t, store.Delete(ctx, nil), boom)
	})
}

func TestMockQuery(t *testing.T) {
	ctx := context.Background()
	store := mock.New()
	store.SetRows(
		storagemodels.Row{"PK": "owner{Ann}", "SK": "dog:name{Rex}", "age": int64(3)},
		storagemodels.Row{"PK": "owner{Ann}", "SK": "dog:name{Max}", "age": int64(7)},
		storagemodels.Row{"PK": "owner{Ann}", "SK": "cat:name{Tom}", "age": int64(2)},
		storagemodels.Row{"PK": "owner{Bob}", "SK": "dog:name{Ace}", "age": int64(1)},
	)

	t.Run("KeyCondition", func(t *testing.T) {
		page, err := store.Query(ctx, &storagemodels.QueryParams{
			KeyConditionExpression:    "#pk = :pk AND begins_with(SK, :sk)",
			ExpressionAttributeNames:  map[string]string{"#pk": "PK"},
			ExpressionAttributeValues: map[string]any{":pk": "owner{Ann}", ":sk": "dog:"},
		})
		require.NoError(t, err)
		require.Len(t, page.Rows, 2)
		assert.Equal(t, "dog:name{Max}", page.Rows[0]["SK"])
		assert.Equal(t, "dog:name{Rex}", page.Rows[1]["SK"])
		assert.Nil(t, page.LastEvaluatedKey)
	})

	t.Run("FilterAndOrder", func(t *testing.T) {
		page, err := store.Query(ctx, &storagemodels.QueryParams{
			KeyConditionExpression:    "PK = :pk",
			FilterExpression:          aws.String("age >= :min"),
			ExpressionAttributeValues: map[string]any{":pk": "owner{Ann}", ":min": 3},
			ScanIndexForward:          aws.Bool(false),
		})
		require.NoError(t, err)
		require.Len(t, page.Rows, 2)
		assert.Equal(t, "dog:name{Rex}", page.Rows[0]["SK"])
		assert.Equal(t, "dog:name{Max}", page.Rows[1]["SK"])
	})

	t.Run("Pagination", func(t *testing.T) {
		params := &storagemodels.QueryParams{
			KeyConditionExpression:    "PK = :pk",
			ExpressionAttributeValues: map[string]any{":pk": "owner{Ann}"},
			Limit:                     aws.Int32(2),
		}
		first, err := store.Query(ctx, params)
		require.NoError(t, err)
		require.Len(t, first.Rows, 2)
		require.NotNil(t, first.LastEvaluatedKey)

		params.ExclusiveStartKey = first.LastEvaluatedKey
		second, err := store.Query(ctx, params)
		require.NoError(t, err)
		require.Len(t, second.Rows, 1)
		assert.Nil(t, second.LastEvaluatedKey)
		assert.Equal(t, "dog:name{Rex}", second.Rows[0]["SK"])
	})

	t.Run("Unsupported", func(t *testing.T) {
		_, err := store.Query(ctx, &storagemodels.QueryParams{
			KeyConditionExpression:    "PK BETWEEN :a AND :b",
			ExpressionAttributeValues: map[string]any{":a": "a", ":b": "b"},
		})
		assert.Error(t, err)
	})

	t.Run("QueryFunc", func(t *testing.T) {
		custom := mock.New().WithQueryFunc(func(ctx context.Context, params *storagemodels.QueryParams) (*storagemodels.QueryPage, error) {
			return &storagemodels.QueryPage{Rows: []storagemodels.Row{{"PK": "fixed"}}}, nil
		})
		page, err := custom.Query(ctx, &storagemodels.QueryParams{})
		require.NoError(t, err)
		assert.Equal(t, "fixed", page.Rows[0]["PK"])
	})
}
