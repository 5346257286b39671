/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dynamodel

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/dolsem/dynamodel/datastore"
	"github.com/dolsem/dynamodel/registry"
	"github.com/dolsem/dynamodel/storagemodels"
	"github.com/dolsem/dynamodel/translator"
)

// EntityResult is one streamed entity.
type EntityResult = storagemodels.StreamResult[*translator.Entity]

// Stream pages through every row matching params and sends each one,
// translated at table scope, on the returned channel. The channel is closed
// when the query is exhausted, fails, or ctx is done. A failed page ends the
// stream with an error result; a row that fails to translate is sent with
// its error and the error handler decides whether to go on.
func (c *Client) Stream(ctx context.Context, table string, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan EntityResult {
	options := storagemodels.DefaultStreamOptions()
	for _, opt := range opts {
		opt(&options)
	}

	t, store, err := c.tableStore(table, "stream")
	if err != nil {
		failed := make(chan EntityResult, 1)
		failed <- EntityResult{Error: err, Meta: storagemodels.StreamMeta{Timestamp: c.now()}}
		close(failed)
		return failed
	}

	resultCh := make(chan EntityResult, options.BufferSize)

	var query storagemodels.QueryParams
	if params != nil {
		query = *params
	}
	go c.streamWorker(ctx, t, store, query, options, resultCh)
	return resultCh
}

func (c *Client) streamWorker(
	ctx context.Context,
	table *registry.Table,
	store datastore.Store,
	params storagemodels.QueryParams,
	options storagemodels.StreamOptions,
	resultCh chan<- EntityResult,
) {
	defer close(resultCh)

	var (
		itemIndex  int64
		pageNumber int
		itemErrors []error
	)
	startTime := c.now()

	reportProgress := func(lastKey storagemodels.Row) {
		if options.ProgressHandler == nil {
			return
		}
		progress := storagemodels.StreamProgress{
			ItemsProcessed: itemIndex,
			PagesProcessed: pageNumber,
			LastKey:        lastKey,
			Errors:         itemErrors,
			StartTime:      startTime,
		}
		if elapsed := c.now().Sub(startTime).Seconds(); elapsed > 0 {
			progress.CurrentRate = float64(itemIndex) / elapsed
		}
		options.ProgressHandler(progress)
	}

	send := func(result EntityResult) bool {
		select {
		case <-ctx.Done():
			return false
		case resultCh <- result:
			return true
		}
	}

	if options.PageSize > 0 {
		params.Limit = aws.Int32(options.PageSize)
	}

	for {
		if ctx.Err() != nil {
			return
		}

		page, err := store.Query(ctx, &params)
		if err != nil {
			c.logger.Error("stream query failed",
				"table", table.Name(), "page", pageNumber+1, "error", err)
			send(EntityResult{
				Error: fmt.Errorf("query failed: %w", err),
				Meta: storagemodels.StreamMeta{
					Index:      itemIndex,
					PageNumber: pageNumber,
					Timestamp:  c.now(),
				},
			})
			return
		}
		pageNumber++

		for _, row := range page.Rows {
			meta := storagemodels.StreamMeta{
				Index:      itemIndex,
				PageNumber: pageNumber,
				Timestamp:  c.now(),
			}
			itemIndex++

			entity, err := c.translate(row, nil, table)
			if !send(EntityResult{Item: entity, Raw: row, Error: err, Meta: meta}) {
				return
			}
			if err != nil {
				itemErrors = append(itemErrors, err)
				if options.ErrorHandler != nil && !options.ErrorHandler(err) {
					reportProgress(nil)
					return
				}
			}
		}

		reportProgress(page.LastEvaluatedKey)

		if len(page.LastEvaluatedKey) == 0 {
			break
		}
		params.ExclusiveStartKey = page.LastEvaluatedKey
	}

	reportProgress(nil)
}
