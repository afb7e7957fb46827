package ideagen

import (
	"errors"
	"fmt"
)

var (
	// ErrAreaRequired rejects a request before any upstream call.
	ErrAreaRequired = errors.New("area of interest is required")
	// ErrRateLimited is returned when the upstream answers 429.
	ErrRateLimited = errors.New("rate limits exceeded, please try again later")
	// ErrPaymentRequired is returned when the upstream answers 402.
	ErrPaymentRequired = errors.New("payment required")
	// ErrEmptyCompletion is returned when a success payload carries no choices.
	ErrEmptyCompletion = errors.New("AI gateway returned no choices")
)

// CredentialError means the bearer credential was never configured.
// No upstream call is made when it is returned.
type CredentialError struct {
	Env string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("%s is not configured", e.Env)
}

// UpstreamError is any other non-success answer from the text-generation endpoint.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("AI gateway error: status %d", e.Status)
}
