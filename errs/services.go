package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Checklist Generation Service Errors
var (
	ErrGenerationFailed    = errors.New("checklist generation failed")
	ErrGenerationTimeout   = errors.New("checklist generation timed out")
	ErrMalformedModelReply = errors.New("malformed model reply")
	ErrMissingAPIKey       = errors.New("missing API key")
	ErrServiceUnavailable  = errors.New("service unavailable")
)

// Data Consistency Errors
var (
	ErrPartialFailure = errors.New("partial failure")
)

// Storage Errors
var (
	ErrStorageOperation = errors.New("storage operation failed")
)

// NewGenerationError wraps a failed call to the checklist generation
// service. 502 so callers can tell upstream model failures apart from our
// own 500s.
func NewGenerationError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrGenerationFailed,
		Details:    "The checklist generation service did not return a usable result",
		Cause:      cause,
	}
}

func NewGenerationTimeoutError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusGatewayTimeout,
		err:        ErrGenerationTimeout,
		Details:    "The checklist generation service took too long to respond",
		Cause:      cause,
	}
}

func NewMalformedModelReplyError(detail string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrMalformedModelReply,
		Details:    detail,
	}
}

// NewPartialFailureError reports the created-but-incomplete outcome of the
// project wizard: the project row persists, the generated checklist does
// not. Deliberately distinct from a total failure.
func NewPartialFailureError(entity string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrPartialFailure,
		Details:    fmt.Sprintf("%s was created but its dependent records were not; finish manually", entity),
		Cause:      cause,
	}
}

func NewStorageError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrStorageOperation,
		Details:    fmt.Sprintf("Failed to %s in object storage", operation),
		Cause:      cause,
	}
}

func IsGenerationFailed(err error) bool {
	return errors.Is(err, ErrGenerationFailed)
}

func IsPartialFailure(err error) bool {
	return errors.Is(err, ErrPartialFailure)
}
