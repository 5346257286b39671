//go:build integration
// +build integration

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dynamodel_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolsem/dynamodel"
	"github.com/dolsem/dynamodel/config"
	"github.com/dolsem/dynamodel/datastore/ddb"
	"github.com/dolsem/dynamodel/errors"
	"github.com/dolsem/dynamodel/storagemodels"
	"github.com/dolsem/dynamodel/testmodels"
)

// setupDynamoClient binds the Pets fixtures to the table named by
// DYNAMODEL_DDB_TABLE. The table needs string keys PK (hash) and SK (range).
func setupDynamoClient(t *testing.T) *dynamodel.Client {
	t.Helper()
	cfg, err := config.Load()
	require.NoError(t, err)
	if cfg.AWS.Table == "" {
		t.Skip(config.EnvTable + " not set, skipping integration test")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	store, err := ddb.NewFromConfig(context.Background(), cfg.AWS, cfg.AWS.Table, logger)
	require.NoError(t, err)

	client := dynamodel.New(testmodels.MustBuild(testmodels.Pets()),
		dynamodel.WithConfig(cfg), dynamodel.WithLogger(logger))
	require.NoError(t, client.Bind(testmodels.PetsTable, store))
	return client
}

func TestDynamoRoundTrip(t *testing.T) {
	client := setupDynamoClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dogs, err := client.Model(testmodels.DogModel)
	require.NoError(t, err)

	name := fmt.Sprintf("it-%d", time.Now().UnixNano())
	values := map[string]any{
		"name":       name,
		"owner":      "Victor {the} \\creator",
		"breed":      "Bull Terrier",
		"birthday":   born,
		"vaccinated": false,
		"weight":     21.5,
		"nicknames":  []string{"Spark", "Sparks"},
	}
	key := map[string]any{"name": name, "owner": values["owner"], "breed": values["breed"]}
	t.Cleanup(func() { _ = dogs.Delete(context.Background(), key) })

	_, err = dogs.Create(ctx, values)
	require.NoError(t, err)

	_, err = dogs.Create(ctx, values)
	assert.True(t, errors.IsAlreadyExists(err))

	got, err := dogs.Get(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, got)

	var dog testmodels.Dog
	require.NoError(t, got.As(&dog))
	assert.Equal(t, values["owner"], dog.Owner)
	assert.Equal(t, 21.5, dog.Weight)
	assert.False(t, dog.Vaccinated)
	assert.Equal(t, []string{"Spark", "Sparks"}, dog.Nicknames)
	assert.True(t, born.Equal(dog.Birthday))

	require.NoError(t, dogs.Delete(ctx, key))
	got, err = dogs.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDynamoFanOutAndStream(t *testing.T) {
	client := setupDynamoClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cats, err := client.Model(testmodels.CatModel)
	require.NoError(t, err)

	name := fmt.Sprintf("it-%d", time.Now().UnixNano())
	values := map[string]any{
		"name":     name,
		"tags":     []string{"black", "fluffy", "small"},
		"birthday": born,
	}
	t.Cleanup(func() { _ = cats.Delete(context.Background(), values) })

	_, err = cats.Create(ctx, values)
	require.NoError(t, err)

	params := &storagemodels.QueryParams{
		KeyConditionExpression:    "#pk = :pk",
		ExpressionAttributeNames:  map[string]string{"#pk": "PK"},
		ExpressionAttributeValues: map[string]any{":pk": "cat:n{" + name + "}"},
	}

	var count int
	for r := range client.Stream(ctx, testmodels.PetsTable, params, storagemodels.WithPageSize(2)) {
		require.NoError(t, r.Error)
		assert.Equal(t, testmodels.CatModel, r.Item.Model().Name())
		count++
	}
	assert.Equal(t, 3, count)

	require.NoError(t, cats.Delete(ctx, values))
	result, err := client.Query(ctx, testmodels.PetsTable, params)
	require.NoError(t, err)
	assert.Empty(t, result.Entities)
}
