// Package pipeline orchestrates one ingestion run: fetch the uploaded CSV,
// transform it, and write the result to both sinks.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"listing-pipeline/internal/csvio"
	"listing-pipeline/internal/listing"
	"listing-pipeline/internal/logging"
)

// ObjectFetcher reads an uploaded object out of the object store.
type ObjectFetcher interface {
	Fetch(ctx context.Context, bucket, key string) ([]byte, error)
}

// BulkLoader replaces the warehouse table's contents with the given rows.
type BulkLoader interface {
	Load(ctx context.Context, listings []listing.Listing) (int64, error)
}

// BulkIndexer upserts one search document per row, keyed by listing id.
type BulkIndexer interface {
	Index(ctx context.Context, listings []listing.Listing) (int, error)
}

// Service runs the ingestion pipeline. The transform itself is a pure
// function of the input table; a Service carries no mutable state, so
// concurrent runs for different objects do not interfere.
type Service struct {
	store     ObjectFetcher
	warehouse BulkLoader
	search    BulkIndexer
}

// Result summarizes one completed run.
type Result struct {
	RunID    string
	Rows     int
	Loaded   int64
	Indexed  int
	Duration time.Duration
}

// NewService wires the pipeline's collaborators.
func NewService(store ObjectFetcher, warehouse BulkLoader, search BulkIndexer) *Service {
	return &Service{store: store, warehouse: warehouse, search: search}
}

// Run processes exactly one uploaded object, synchronously: fetch, decode,
// transform, load the warehouse, index search. Any sink error fails the
// whole run; there are no retries and no partial-success tracking.
//
// Known consistency gap: the warehouse load commits before indexing
// starts, so an indexing failure leaves the two stores divergent until the
// next successful run. No compensating action is taken.
func (s *Service) Run(ctx context.Context, bucket, key string) (Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := logging.FromContext(ctx).With("run_id", runID, "bucket", bucket, "key", key)

	log.Info("run started")

	raw, err := s.store.Fetch(ctx, bucket, key)
	if err != nil {
		return Result{RunID: runID}, fmt.Errorf("run %s: %w", runID, err)
	}

	table, err := csvio.Read(bytes.NewReader(raw))
	if err != nil {
		return Result{RunID: runID}, fmt.Errorf("run %s: %w", runID, err)
	}
	log.Info("csv decoded", "columns", len(table.Header), "rows", len(table.Rows))

	listings := listing.Transform(table)
	log.Info("transform complete", "rows_in", len(table.Rows), "rows_out", len(listings))

	loaded, err := s.warehouse.Load(ctx, listings)
	if err != nil {
		return Result{RunID: runID}, fmt.Errorf("run %s: %w", runID, err)
	}
	log.Info("warehouse loaded", "rows", loaded)

	indexed, err := s.search.Index(ctx, listings)
	if err != nil {
		return Result{RunID: runID}, fmt.Errorf("run %s: %w", runID, err)
	}
	log.Info("search indexed", "documents", indexed)

	result := Result{
		RunID:    runID,
		Rows:     len(listings),
		Loaded:   loaded,
		Indexed:  indexed,
		Duration: time.Since(start),
	}
	log.Info("run complete", "duration_ms", result.Duration.Milliseconds())
	return result, nil
}
