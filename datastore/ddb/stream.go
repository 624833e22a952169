/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/entityrepo/errors"
	"github.com/suparena/entityrepo/registry"
	"github.com/suparena/entityrepo/storagemodels"
)

// ScanStream performs a streaming scan over all items of type T with
// configurable options. It is the incremental alternative to ScanAll for
// tables too large to materialize, e.g. when deleting a big table in pages
// instead of through Repository.DeleteAll.
func ScanStream[T any](ctx context.Context, m *Mapper, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[*T] {
	// Apply options
	options := storagemodels.DefaultStreamOptions()
	for _, opt := range opts {
		opt(&options)
	}

	// Create buffered result channel
	resultCh := make(chan storagemodels.StreamResult[*T], options.BufferSize)

	mapping, ok := registry.GetTableMapping[T]()
	if !ok {
		go func() {
			defer close(resultCh)
			resultCh <- storagemodels.StreamResult[*T]{
				Error: fmt.Errorf("%w: %T", errors.ErrNoTableMapping, *new(T)),
			}
		}()
		return resultCh
	}

	// Start streaming in background
	go scanWorker(ctx, m, mapping, options, resultCh)

	return resultCh
}

// scanWorker handles the actual streaming logic
func scanWorker[T any](
	ctx context.Context,
	m *Mapper,
	mapping registry.TableMapping,
	options storagemodels.StreamOptions,
	resultCh chan<- storagemodels.StreamResult[*T],
) {
	defer close(resultCh)

	var itemIndex int64
	var pageNumber int
	startTime := time.Now()

	// Progress reporting helper
	reportProgress := func(lastKey map[string]types.AttributeValue) {
		if options.ProgressHandler == nil {
			return
		}
		progress := storagemodels.StreamProgress{
			ItemsProcessed: itemIndex,
			PagesProcessed: pageNumber,
			LastKey:        lastKey,
			StartTime:      startTime,
		}
		elapsed := time.Since(startTime).Seconds()
		if elapsed > 0 {
			progress.CurrentRate = float64(progress.ItemsProcessed) / elapsed
		}
		options.ProgressHandler(progress)
	}

	input := buildScanInput(mapping, aws.Int32(options.PageSize))

	var lastEvaluatedKey map[string]types.AttributeValue

	for {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return
		default:
		}

		if lastEvaluatedKey != nil {
			input.ExclusiveStartKey = lastEvaluatedKey
		}

		out, err := m.scanWithRetry(ctx, input, options)
		if err != nil {
			if options.ErrorHandler != nil && options.ErrorHandler(err) {
				// Error handler says to continue with the next page
				continue
			}
			resultCh <- storagemodels.StreamResult[*T]{
				Error: fmt.Errorf("scan failed after retries: %w", err),
				Meta: storagemodels.StreamMeta{
					Index:      itemIndex,
					PageNumber: pageNumber,
					Timestamp:  time.Now(),
				},
			}
			return
		}

		pageNumber++

		for _, item := range out.Items {
			result := storagemodels.StreamResult[*T]{
				Raw: item,
				Meta: storagemodels.StreamMeta{
					Index:      itemIndex,
					PageNumber: pageNumber,
					Timestamp:  time.Now(),
				},
			}

			obj, err := unmarshalAs(mapping, item)
			if err != nil {
				result.Error = err
			} else if typed, ok := obj.(*T); ok {
				result.Item = typed
			} else {
				result.Error = fmt.Errorf("unexpected item type %T for EntityType %q", obj, mapping.TypeName)
			}

			select {
			case <-ctx.Done():
				return
			case resultCh <- result:
				itemIndex++
			}
		}

		reportProgress(out.LastEvaluatedKey)

		if out.LastEvaluatedKey == nil {
			return
		}
		lastEvaluatedKey = out.LastEvaluatedKey
	}
}

// scanWithRetry executes a scan page, retrying throttled requests with a
// fixed backoff up to MaxRetries attempts.
func (m *Mapper) scanWithRetry(ctx context.Context, input *sdk.ScanInput, options storagemodels.StreamOptions) (*sdk.ScanOutput, error) {
	var lastErr error
	for attempt := 0; attempt <= options.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(options.RetryBackoff):
			}
		}

		out, err := m.client.Scan(ctx, input)
		if err == nil {
			return out, nil
		}

		lastErr = classify("Scan", err)
		if !errors.IsThrottled(lastErr) {
			return nil, lastErr
		}
	}
	return nil, lastErr
}
