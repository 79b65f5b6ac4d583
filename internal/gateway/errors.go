package gateway

import (
	"errors"
	"fmt"

	"connectrpc.com/connect"
)

// ErrUnavailable matches every UnavailableError under errors.Is.
var ErrUnavailable = errors.New("gateway unavailable")

// Reason classifies why a gateway call failed.
type Reason string

const (
	// ReasonTransport means the request never got a response.
	ReasonTransport Reason = "transport"
	// ReasonStatus means the gateway answered with a non-OK code.
	ReasonStatus Reason = "status"
	// ReasonMalformed means the response could not be used.
	ReasonMalformed Reason = "malformed"
)

// UnavailableError is the single error type returned by the gateway client.
type UnavailableError struct {
	Op     string
	Reason Reason
	// Code is set for ReasonStatus.
	Code connect.Code
	Err  error
}

func (e *UnavailableError) Error() string {
	if e.Reason == ReasonStatus {
		return fmt.Sprintf("gateway %s: %s %s: %v", e.Op, e.Reason, e.Code, e.Err)
	}
	return fmt.Sprintf("gateway %s: %s: %v", e.Op, e.Reason, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// Is reports true for ErrUnavailable.
func (e *UnavailableError) Is(target error) bool { return target == ErrUnavailable }

// Malformed wraps err as a ReasonMalformed failure of op.
func Malformed(op string, err error) error {
	return &UnavailableError{Op: op, Reason: ReasonMalformed, Err: err}
}

// classify wraps a failed RPC. Connect reports network failures as
// CodeUnavailable or CodeUnknown without a wire error; those count as transport.
func classify(op string, err error) error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) && connect.IsWireError(err) {
		return &UnavailableError{Op: op, Reason: ReasonStatus, Code: connectErr.Code(), Err: err}
	}
	return &UnavailableError{Op: op, Reason: ReasonTransport, Err: err}
}

// CodeOf returns the gateway's status code for a ReasonStatus error, or
// connect.CodeUnknown otherwise.
func CodeOf(err error) connect.Code {
	var ue *UnavailableError
	if errors.As(err, &ue) && ue.Reason == ReasonStatus {
		return ue.Code
	}
	return connect.CodeUnknown
}
