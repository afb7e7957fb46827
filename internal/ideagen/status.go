package ideagen

import (
	"errors"
	"net/http"

	"github.com/BerylCAtieno/startup-idea-agent/internal/metrics"
)

// Messages returned to clients. The wording is part of the public contract.
const (
	MsgAreaRequired    = "Area of interest is required"
	MsgRateLimited     = "Rate limits exceeded, please try again later."
	MsgPaymentRequired = "Payment required, please add funds to your Lovable AI workspace."
	MsgUpstreamError   = "AI gateway error"
	MsgUnknownError    = "Unknown error"
)

// HTTPStatus returns the appropriate HTTP status code for a generation error
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrAreaRequired):
		return http.StatusBadRequest
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrPaymentRequired):
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the error string sent to the client. Upstream failures
// stay opaque; local failures surface their own message.
func PublicMessage(err error) string {
	var upErr *UpstreamError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAreaRequired):
		return MsgAreaRequired
	case errors.Is(err, ErrRateLimited):
		return MsgRateLimited
	case errors.Is(err, ErrPaymentRequired):
		return MsgPaymentRequired
	case errors.As(err, &upErr):
		return MsgUpstreamError
	case err.Error() == "":
		return MsgUnknownError
	default:
		return err.Error()
	}
}

// Outcome labels err for the generations counter.
func Outcome(err error) string {
	var upErr *UpstreamError
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrAreaRequired):
		return metrics.OutcomeInvalid
	case errors.Is(err, ErrRateLimited):
		return metrics.OutcomeRateLimited
	case errors.Is(err, ErrPaymentRequired):
		return metrics.OutcomePaymentRequired
	case errors.As(err, &upErr):
		return metrics.OutcomeUpstreamError
	default:
		return metrics.OutcomeError
	}
}
