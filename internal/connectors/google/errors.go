package google

import (
	"context"
	"errors"

	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/unical/internal/core/domain"
)

// wrapError translates a Calendar API failure into the unified upstream
// error shape, keeping the backend's status and message attached. Context
// cancellation passes through untouched.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &domain.UpstreamError{
			Provider:   Name,
			StatusCode: gerr.Code,
			Message:    gerr.Message,
			Err:        err,
		}
	}

	return &domain.UpstreamError{Provider: Name, Err: err}
}

// isRateLimited reports whether the API rejected the call with 429.
func isRateLimited(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == 429
}
