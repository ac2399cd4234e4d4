package delivery

import (
	"context"
	"fmt"
	"sync"

	"plantkart/internal/model"

	"github.com/rs/zerolog"
)

// checker implements Checker with concurrent pincode file lookups.
type checker struct {
	pincodeSets []PincodeSet
	logger      zerolog.Logger
	// No mutex needed, pincode sets are read-only after initialization
}

// CheckerConfig holds configuration for the serviceability checker.
type CheckerConfig struct {
	// FilePaths is the list of serviceable-area pincode files to load.
	// Typically one file per fulfilment region.
	FilePaths []string
}

// DefaultCheckerConfig returns the default checker configuration.
func DefaultCheckerConfig() *CheckerConfig {
	return &CheckerConfig{
		FilePaths: []string{
			"data/pincodes/serviceable.gz",
		},
	}
}

// NewChecker creates a new serviceability checker.
// It loads all pincode files at initialization time.
func NewChecker(ctx context.Context, config *CheckerConfig, loader Loader, logger zerolog.Logger) (Checker, error) {
	if config == nil {
		config = DefaultCheckerConfig()
	}

	logger = logger.With().Str("component", "serviceability-checker").Logger()

	logger.Info().
		Int("file_count", len(config.FilePaths)).
		Msg("initialising serviceability checker")

	c := &checker{
		pincodeSets: make([]PincodeSet, 0, len(config.FilePaths)),
		logger:      logger,
	}

	// Load all pincode files concurrently
	type loadResult struct {
		index int
		set   PincodeSet
		err   error
	}

	resultChan := make(chan loadResult, len(config.FilePaths))
	var wg sync.WaitGroup

	for i, filePath := range config.FilePaths {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()

			set, err := loader.Load(ctx, path)
			resultChan <- loadResult{
				index: index,
				set:   set,
				err:   err,
			}
		}(i, filePath)
	}

	wg.Wait()
	close(resultChan)

	// Collect results in order
	results := make([]loadResult, len(config.FilePaths))
	for result := range resultChan {
		results[result.index] = result
	}

	for i, result := range results {
		if result.err != nil {
			logger.Error().
				Err(result.err).
				Str("file", config.FilePaths[i]).
				Msg("failed to load pincode file")
			return nil, fmt.Errorf("failed to load pincode file %s: %w", config.FilePaths[i], result.err)
		}
		c.pincodeSets = append(c.pincodeSets, result.set)
		logger.Info().
			Str("file", config.FilePaths[i]).
			Int("size", result.set.Size()).
			Msg("pincode file loaded")
	}

	totalPincodes := 0
	for _, set := range c.pincodeSets {
		totalPincodes += set.Size()
	}

	logger.Info().
		Int("total_pincodes", totalPincodes).
		Msg("serviceability checker initialised successfully")

	return c, nil
}

// CheckServiceability checks whether orders can be delivered to a pincode.
// A serviceable pincode must:
// - Be exactly 6 digits and not start with 0
// - Appear in at least one of the loaded serviceable-area files
func (c *checker) CheckServiceability(ctx context.Context, pincode string) error {
	// Validate format first (cheap check)
	if !validPincodeFormat(pincode) {
		c.logger.Debug().
			Str("pincode", pincode).
			Msg("pincode format invalid")
		return model.ErrInvalidPincode
	}

	// Check presence in region files concurrently with early termination
	if !c.anyMatch(ctx, pincode) {
		c.logger.Debug().
			Str("pincode", pincode).
			Msg("pincode not found in any serviceable area")
		return model.ErrUnserviceablePincode
	}

	c.logger.Debug().
		Str("pincode", pincode).
		Msg("pincode serviceable")

	return nil
}

// validPincodeFormat reports whether the string is a 6-digit Indian pincode.
// The first digit encodes the postal region and is never 0.
func validPincodeFormat(pincode string) bool {
	if len(pincode) != 6 {
		return false
	}
	if pincode[0] < '1' || pincode[0] > '9' {
		return false
	}
	for i := 1; i < len(pincode); i++ {
		if pincode[i] < '0' || pincode[i] > '9' {
			return false
		}
	}
	return true
}

// anyMatch reports whether any region file contains the given pincode.
// Region files are checked concurrently and terminate early on first match.
func (c *checker) anyMatch(ctx context.Context, pincode string) bool {
	// Buffered channel prevents goroutine leaks on early termination
	resultChan := make(chan bool, len(c.pincodeSets))
	doneChan := make(chan struct{})
	defer close(doneChan)

	for _, set := range c.pincodeSets {
		go func(s PincodeSet) {
			select {
			case <-doneChan:
				return
			case <-ctx.Done():
				return
			default:
			}

			found := s.Contains(pincode)

			select {
			case resultChan <- found:
			case <-doneChan:
				return
			case <-ctx.Done():
				return
			}
		}(set)
	}

	checked := 0
	for checked < len(c.pincodeSets) {
		select {
		case found := <-resultChan:
			checked++
			if found {
				return true
			}
		case <-ctx.Done():
			return false
		}
	}

	return false
}

// Close releases resources held by the checker.
func (c *checker) Close() error {
	// Drop the sets so GC can reclaim the memory
	c.pincodeSets = nil

	c.logger.Info().Msg("serviceability checker closed")

	return nil
}
