package main

import (
	"compress/gzip"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
)

// gencoords writes gzipped "lat,lon" sample files for the coordinate seed.
// Every file carries a header comment and the fixed points below, so a
// freshly seeded store has a predictable shape before random samples are added.
func main() {
	dataDir := flag.String("dir", "data/coordinates", "output directory")
	files := flag.Int("files", 3, "number of files to write")
	perFile := flag.Int("samples", 1000, "random samples per file")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	// Create directory if it doesn't exist
	if err := os.MkdirAll(*dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	rng := rand.New(rand.NewSource(*seed))

	var total int
	for i := 1; i <= *files; i++ {
		filePath := filepath.Join(*dataDir, fmt.Sprintf("coordinates%d.gz", i))

		n, err := createCoordinateFile(filePath, rng, *perFile)
		if err != nil {
			log.Fatalf("Failed to create %s: %v", filePath, err)
		}
		total += n

		fmt.Printf("Created %s with %d samples\n", filePath, n)
	}

	fmt.Printf("\n%d sample files created (%d samples)\n", *files, total)
	fmt.Printf("\nSeed them on startup with:\n  SEED_COORDINATE_FILES=")
	for i := 1; i <= *files; i++ {
		if i > 1 {
			fmt.Print(",")
		}
		fmt.Print(filepath.Join(*dataDir, fmt.Sprintf("coordinates%d.gz", i)))
	}
	fmt.Println()
}

// anchors are written to every file.
var anchors = [][2]float64{
	{0, 0},
	{51.5074, -0.1278},
	{-33.8688, 151.2093},
}

func createCoordinateFile(filePath string, rng *rand.Rand, samples int) (int, error) {
	file, err := os.Create(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	if _, err := fmt.Fprintln(gzipWriter, "# lat,lon"); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	written := 0
	for _, p := range anchors {
		if _, err := fmt.Fprintf(gzipWriter, "%g,%g\n", p[0], p[1]); err != nil {
			return written, fmt.Errorf("failed to write sample: %w", err)
		}
		written++
	}

	for i := 0; i < samples; i++ {
		lat := rng.Float64()*180 - 90
		lon := rng.Float64()*360 - 180
		if _, err := fmt.Fprintf(gzipWriter, "%.6f,%.6f\n", lat, lon); err != nil {
			return written, fmt.Errorf("failed to write sample: %w", err)
		}
		written++
	}

	return written, nil
}
