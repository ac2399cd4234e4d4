package delivery

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading gzipped pincode files.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based pincode loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "pincode-loader").Logger(),
	}
}

// Load reads a gzipped pincode file and returns a PincodeSet.
// The file is expected to contain one pincode per line.
func (l *fileLoader) Load(ctx context.Context, filePath string) (PincodeSet, error) {
	l.logger.Info().Str("file", filePath).Msg("loading pincode file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open pincode file")
		return nil, fmt.Errorf("failed to open pincode file %s: %w", filePath, err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to create gzip reader")
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", filePath, err)
	}
	defer gzipReader.Close()

	// India has ~19k delivery pincodes, pre-allocate to avoid rehashing
	set := NewMapPincodeSet(20_000).(*mapPincodeSet)

	scanner := bufio.NewScanner(gzipReader)

	lineCount := 0
	for scanner.Scan() {
		// Check context cancellation periodically
		if lineCount%10_000 == 0 {
			select {
			case <-ctx.Done():
				l.logger.Warn().Str("file", filePath).Msg("pincode loading cancelled")
				return nil, ctx.Err()
			default:
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			set.Add(line)
			lineCount++
		}
	}

	if err := scanner.Err(); err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("error reading pincode file")
		return nil, fmt.Errorf("error reading pincode file %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("pincodes_loaded", set.Size()).
		Msg("pincode file loaded successfully")

	return set, nil
}
