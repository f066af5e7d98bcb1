package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/pcforge/internal/adapters/repository"
	service "github.com/okian/pcforge/internal/app"
	"github.com/okian/pcforge/internal/domain/model"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest  = errors.New("bad request")
	ErrUnsupported = errors.New("unsupported category")
)

// Error codes carried in the response body.
const (
	codeBadRequest  = "bad_request"
	codeNotFound    = "not_found"
	codeConflict    = "conflict"
	codeUnavailable = "unavailable"
	codeInternal    = "internal_error"
)

// wrap tags err with the operation that failed.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

// badRequest builds an ErrBadRequest for op.
func badRequest(op, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", op, ErrBadRequest, fmt.Sprintf(format, args...))
}

// classify maps an error chain to a status code and body code.
func classify(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, codeInternal
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, repository.ErrAlreadyExists),
		errors.Is(err, model.ErrCategoryImmutable):
		return http.StatusConflict, codeConflict
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, ErrUnsupported),
		errors.Is(err, model.ErrInvalidComponent),
		errors.Is(err, model.ErrUnknownCategory),
		errors.Is(err, repository.ErrInvalidQuery),
		errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, codeBadRequest
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, codeUnavailable
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

// unsupported reports a category without a scoring profile.
func unsupported(c model.Category) error {
	return fmt.Errorf("%w: %s has no scoring profile", ErrUnsupported, c)
}
