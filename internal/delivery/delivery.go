package delivery

import (
	"context"
)

// Checker defines the interface for delivery serviceability checks.
type Checker interface {
	// CheckServiceability checks whether orders can be delivered to a pincode.
	// A serviceable pincode must:
	// - Be exactly 6 digits and not start with 0
	// - Appear in at least one of the loaded serviceable-area files
	CheckServiceability(ctx context.Context, pincode string) error

	// Close releases resources held by the checker.
	Close() error
}

// PincodeSet represents a set of serviceable pincodes for fast lookup.
type PincodeSet interface {
	// Contains checks if a pincode exists in the set.
	Contains(pincode string) bool

	// Size returns the number of pincodes in the set.
	Size() int
}

// Loader defines the interface for loading pincode files.
type Loader interface {
	// Load reads a gzipped pincode file and returns a PincodeSet.
	Load(ctx context.Context, filePath string) (PincodeSet, error)
}
