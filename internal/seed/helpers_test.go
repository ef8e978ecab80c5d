package seed

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// gzipLines compresses lines joined by newlines.
func gzipLines(t *testing.T, lines []string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)
	for _, line := range lines {
		_, err := gzipWriter.Write([]byte(line + "\n"))
		require.NoError(t, err)
	}
	require.NoError(t, gzipWriter.Close())
	return buf.Bytes()
}

// createTestSampleFile writes a gzipped sample file into a temp dir.
func createTestSampleFile(t *testing.T, filename string, lines []string) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), filename)
	require.NoError(t, os.WriteFile(filePath, gzipLines(t, lines), 0o644))
	return filePath
}
