package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/drivequiz/internal/common"
)

var (
	// ErrUnauthorized is returned for any 401. The stored token has already
	// been cleared and subscribers notified by the time a caller sees it.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUnavailable covers transport failures and bodies that are not JSON.
	ErrUnavailable = errors.New("server unavailable")
	// ErrMalformedResponse means the body parsed but did not match the
	// expected schema.
	ErrMalformedResponse = errors.New("malformed response")
)

// APIError is a non-2xx, non-401 reply.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, http.StatusText(e.Status))
}

// DetailOf returns the server supplied detail of err, if any.
func DetailOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}

// Classify maps a client error onto the shared failure kinds.
func Classify(err error) error {
	var apiErr *APIError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrUnauthorized):
		return common.ErrUnauthorized
	case errors.Is(err, ErrUnavailable):
		return common.ErrConnectivity
	case errors.Is(err, ErrMalformedResponse), errors.As(err, &apiErr):
		return common.ErrValidationRejected
	}
	return common.ErrConnectivity
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedResponse, fmt.Sprintf(format, args...))
}
