// Package api exposes the Pricing API and Quote lifecycle API boundaries
// of §6 over HTTP, using gin the way the teacher's controllers do. It
// contains no pricing or lifecycle logic itself — every handler is a thin
// adapter over internal/pricing, internal/quote and internal/repo.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aurigo/dispatch-core/internal/pricing"
	"github.com/aurigo/dispatch-core/internal/quote"
	"github.com/aurigo/dispatch-core/internal/repo"
)

// ErrorResponse is the stable JSON error shape returned by every handler
// in this package. Key is the machine-readable identifier §6.B calls for
// (alreadyInStatus, invalidTransition, terminalState, notFound, ...);
// Message is for logs and developer consumption, never localized UI copy.
type ErrorResponse struct {
	Error   string `json:"error"`
	Key     string `json:"key"`
	Message string `json:"message,omitempty"`
}

// errorKeyFor maps a package-level sentinel error to the stable errorKey
// values §6.B and §7 require, and the HTTP status a caller should see.
// Unrecognized errors degrade to an opaque 500 — this package never leaks
// a raw driver or I/O error message to a client.
func errorKeyFor(err error) (status int, key string) {
	switch {
	case errors.Is(err, quote.ErrAlreadyInStatus):
		return http.StatusConflict, "alreadyInStatus"
	case errors.Is(err, quote.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, "invalidTransition"
	case errors.Is(err, quote.ErrTerminalState):
		return http.StatusConflict, "terminalState"
	case errors.Is(err, quote.ErrNotFound), errors.Is(err, repo.ErrNotFound):
		return http.StatusNotFound, "notFound"
	case errors.Is(err, pricing.ErrInvalidPrice):
		return http.StatusBadRequest, "invalidPrice"
	case errors.Is(err, pricing.ErrBelowMinimumMargin):
		return http.StatusUnprocessableEntity, "belowMinimumMargin"
	default:
		return http.StatusInternalServerError, "internalError"
	}
}

func writeError(c *gin.Context, err error) {
	status, key := errorKeyFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	c.JSON(status, ErrorResponse{Error: msg, Key: key})
}
