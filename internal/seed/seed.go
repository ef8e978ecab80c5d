// Package seed imports coordinate sample files into an empty store.
package seed

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"marketplace/internal/model"

	"github.com/google/uuid"
)

// Loader reads one gzipped sample file. Each line holds "lat,lon"; blank lines
// and lines starting with '#' are skipped.
type Loader interface {
	Load(ctx context.Context, path string) ([]model.Coordinate, error)
}

// Store is the part of the coordinate repository the importer writes through.
type Store interface {
	Count(ctx context.Context) (int64, error)
	BulkInsert(ctx context.Context, coordinates []model.Coordinate) (int64, error)
}

const (
	scanBufferSize    = 64 * 1024
	scanMaxLineSize   = 1024 * 1024
	cancelCheckPeriod = 100_000
)

// parseSamples reads decompressed sample lines from r.
func parseSamples(ctx context.Context, r io.Reader) ([]model.Coordinate, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, scanBufferSize), scanMaxLineSize)

	now := time.Now().UTC()
	var coordinates []model.Coordinate

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%cancelCheckPeriod == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		lat, lon, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		coordinates = append(coordinates, model.Coordinate{
			ID:        uuid.New(),
			Lat:       lat,
			Lon:       lon,
			CreatedAt: now,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return coordinates, nil
}

func parseLine(line string) (float64, float64, error) {
	latText, lonText, ok := strings.Cut(line, ",")
	if !ok {
		return 0, 0, fmt.Errorf("expected \"lat,lon\", got %q", line)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(latText), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude %q", latText)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonText), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude %q", lonText)
	}

	if math.IsNaN(lat) || math.IsNaN(lon) {
		return 0, 0, fmt.Errorf("coordinate %q is not a number", line)
	}
	if lat < -90 || lat > 90 {
		return 0, 0, fmt.Errorf("latitude %v out of range", lat)
	}
	if lon < -180 || lon > 180 {
		return 0, 0, fmt.Errorf("longitude %v out of range", lon)
	}

	return lat, lon, nil
}
