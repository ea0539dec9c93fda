package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/webbongda/matchday/pkg/logging"
)

// Kind classifies a failure that is reported back to the caller.
type Kind string

func (k Kind) Error() string { return string(k) }

const (
	NotFound          Kind = "not found"
	InvalidInput      Kind = "invalid input"
	Locked            Kind = "locked"
	AlreadyPredicted  Kind = "already predicted"
	AlreadyVoted      Kind = "already voted"
	AlreadyRegistered Kind = "already registered"
	Unauthorized      Kind = "unauthorized"
	Forbidden         Kind = "forbidden"
	AccountDisabled   Kind = "account disabled"
)

// Error is a Kind with a message meant for the end user.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// New returns an error of the given kind.
func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Newf is New with a format string.
func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// StatusCode maps a kind to its HTTP status.
func StatusCode(kind Kind) int {
	switch kind {
	case NotFound:
		return http.StatusNotFound
	case InvalidInput, Locked:
		return http.StatusBadRequest
	case AlreadyPredicted, AlreadyVoted, AlreadyRegistered:
		return http.StatusConflict
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden, AccountDisabled:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err as {"error": message} and aborts the chain. Errors
// without a Kind are logged and hidden behind a generic message.
func Respond(c *gin.Context, err error) {
	var e *Error
	if errors.As(err, &e) {
		if e.Kind == Unauthorized {
			c.Header("WWW-Authenticate", "Bearer")
		}
		c.AbortWithStatusJSON(StatusCode(e.Kind), gin.H{"error": e.Message})
		return
	}

	logging.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
}
