package errors

import (
	"errors"
	"fmt"
)

var ErrAuthRequired = errors.New("authentication required")
var ErrSessionExpired = errors.New("session has expired")
var ErrNotFound = errors.New("resource not found")

// TransportError is a network-level failure: the upstream host was
// unreachable or the request timed out before a response arrived.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError is a response-level failure: the upstream answered, but with
// a non-2xx status or a 2xx whose body is not usable JSON.
type ProtocolError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *ProtocolError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: upstream returned %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: upstream returned %d", e.Op, e.StatusCode)
}

// ValidationError means the upstream body parsed as JSON but did not satisfy
// the shape contract for the operation.
type ValidationError struct {
	Op     string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid upstream response: %s", e.Op, e.Reason)
}

// AuthError codes. Each login/register failure carries exactly one of these
// so the caller can tell a rejection from a malformed response from a dead
// network.
const (
	AuthRejected        = "rejected"
	AuthInvalidResponse = "invalid_response"
	AuthTransport       = "transport"
)

type AuthError struct {
	Code    string
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("auth failed (%s): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("auth failed (%s)", e.Code)
}

func (e *AuthError) Unwrap() error { return e.Err }

// PreconditionError reasons. These are raised locally, before any network
// call is issued.
const (
	ReasonEmptySelection    = "empty_selection"
	ReasonMissingHolderInfo = "missing_holder_info"
	ReasonInsufficientFunds = "insufficient_funds"
	ReasonInvalidAmount     = "invalid_amount"
)

type PreconditionError struct {
	Reason  string
	Message string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed (%s): %s", e.Reason, e.Message)
}
