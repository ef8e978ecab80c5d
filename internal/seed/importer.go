package seed

import (
	"context"
	"fmt"
	"sync"

	"marketplace/internal/model"

	"github.com/rs/zerolog"
)

// Importer loads sample files concurrently and writes them to an empty store.
type Importer struct {
	loader Loader
	store  Store
	logger zerolog.Logger
}

// NewImporter creates a new importer.
func NewImporter(loader Loader, store Store, logger zerolog.Logger) *Importer {
	return &Importer{
		loader: loader,
		store:  store,
		logger: logger.With().Str("component", "coordinate-importer").Logger(),
	}
}

// ImportIfEmpty loads every file and inserts the samples, but only when the
// store holds no coordinates yet. It returns the number of rows written.
// Any file failing to load aborts the import before anything is written, and
// all files go to the store in a single insert so a failed write leaves it empty.
func (i *Importer) ImportIfEmpty(ctx context.Context, paths []string) (int64, error) {
	if len(paths) == 0 {
		return 0, nil
	}

	count, err := i.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to check coordinate store: %w", err)
	}
	if count > 0 {
		i.logger.Info().Int64("existing", count).Msg("coordinate store not empty, skipping seed")
		return 0, nil
	}

	batches, err := i.loadAll(ctx, paths)
	if err != nil {
		return 0, err
	}

	var size int
	for _, batch := range batches {
		size += len(batch)
	}
	all := make([]model.Coordinate, 0, size)
	for _, batch := range batches {
		all = append(all, batch...)
	}

	total, err := i.store.BulkInsert(ctx, all)
	if err != nil {
		return 0, fmt.Errorf("failed to import %d files: %w", len(paths), err)
	}

	i.logger.Info().
		Int("files", len(paths)).
		Int64("inserted", total).
		Msg("coordinate seed imported")

	return total, nil
}

// loadAll loads every path concurrently, returning batches in path order.
func (i *Importer) loadAll(ctx context.Context, paths []string) ([][]model.Coordinate, error) {
	type loadResult struct {
		index       int
		coordinates []model.Coordinate
		err         error
	}

	resultChan := make(chan loadResult, len(paths))
	var wg sync.WaitGroup

	for idx, path := range paths {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()

			coordinates, err := i.loader.Load(ctx, path)
			resultChan <- loadResult{index: index, coordinates: coordinates, err: err}
		}(idx, path)
	}

	wg.Wait()
	close(resultChan)

	results := make([]loadResult, len(paths))
	for result := range resultChan {
		results[result.index] = result
	}

	batches := make([][]model.Coordinate, len(paths))
	for idx, result := range results {
		if result.err != nil {
			i.logger.Error().Err(result.err).Str("file", paths[idx]).Msg("failed to load coordinate file")
			return nil, fmt.Errorf("failed to load coordinate file %s: %w", paths[idx], result.err)
		}
		batches[idx] = result.coordinates
	}

	return batches, nil
}
