package cmd

import (
	"errors"

	"github.com/kuiper-sh/kuiper/packages/core/request"
)

// Exit codes for the kuiper CLI
const (
	// ExitSuccess indicates the request was resolved (and sent) cleanly
	ExitSuccess = 0

	// ExitError indicates a generic failure
	ExitError = 1

	// ExitNotFound indicates no request definition matched
	ExitNotFound = 2

	// ExitAmbiguous indicates a search term matched multiple definitions
	ExitAmbiguous = 3

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)

// usageError marks errors caused by the invocation itself (bad flags,
// unparseable flag values) rather than by resolution or transport.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

func exitCode(err error) int {
	var (
		ambiguous *request.AmbiguousError
		usage     *usageError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &usage):
		return ExitUsageError
	case errors.Is(err, request.ErrNotFound):
		return ExitNotFound
	case errors.As(err, &ambiguous):
		return ExitAmbiguous
	}
	return ExitError
}
