package repositories

import (
	"errors"
	"fmt"

	"codeweave/internal/database"
)

// Store failure taxonomy. Logical absence is not an error: lookups return
// (nil, nil) when no record matches.
var (
	// ErrStoreUnavailable means the storage engine could not be opened.
	// Produced by database.Init; aliased here so the three store error
	// kinds live in one place.
	ErrStoreUnavailable = database.ErrStoreUnavailable

	// ErrReadFailed means a scan or lookup transaction aborted.
	ErrReadFailed = errors.New("chat store read failed")

	// ErrWriteFailed means a put or delete transaction aborted, including
	// unique-constraint violations. Writes never partially apply.
	ErrWriteFailed = errors.New("chat store write failed")
)

func readErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrReadFailed, op, err)
}

func writeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrWriteFailed, op, err)
}
