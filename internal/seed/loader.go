package seed

import (
	"compress/gzip"
	"context"
	"fmt"
	"os"

	"marketplace/internal/model"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for gzipped sample files on local disk.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based sample loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "coordinate-file-loader").Logger(),
	}
}

// Load reads a gzipped sample file from disk.
func (l *fileLoader) Load(ctx context.Context, filePath string) ([]model.Coordinate, error) {
	l.logger.Info().Str("file", filePath).Msg("loading coordinate file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open coordinate file")
		return nil, fmt.Errorf("failed to open coordinate file %s: %w", filePath, err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to create gzip reader")
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", filePath, err)
	}
	defer gzipReader.Close()

	coordinates, err := parseSamples(ctx, gzipReader)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("error reading coordinate file")
		return nil, fmt.Errorf("error reading coordinate file %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("samples_loaded", len(coordinates)).
		Msg("coordinate file loaded successfully")

	return coordinates, nil
}
