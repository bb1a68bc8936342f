package watch

import (
	"errors"
	"fmt"
)

// The watch loop only survives failures it can name. Everything below is
// the closed set of recoverable kinds; any error outside it is treated as
// a programming error and stops the process.

// ErrInvalidCredential means the messaging provider rejected the token
// during the startup probe. Startup-fatal, never seen inside the loop.
var ErrInvalidCredential = errors.New("TELEGRAM_TOKEN is wrong")

// MissingCredentialError reports the first absent credential. Startup-fatal.
type MissingCredentialError struct {
	Name string // environment variable name
}

func (e *MissingCredentialError) Error() string {
	return e.Name + " has not been found in env"
}

// TransportError wraps a network-level failure of an outbound request.
type TransportError struct {
	Op  string // "practicum" or "telegram"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("something went wrong with %s API request: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UnexpectedStatusError reports a non-2xx reply from the status API.
type UnexpectedStatusError struct {
	Code int
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("API answer status code is not a success: %d", e.Code)
}

// DecodeError reports a response body that is not well-formed JSON.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("API answer body could not be decoded: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ShapeError reports a decoded body that does not match the expected
// answer structure.
type ShapeError struct {
	Reason string
}

func (e *ShapeError) Error() string {
	return "unexpected API answer: " + e.Reason
}

// RemoteError reports a logical error signaled by the API through its
// "code" field (e.g. "not_authenticated").
type RemoteError struct {
	Code string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("API answered with error code %q", e.Code)
}

// MissingFieldError reports a homework record without a required key.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("no %q in homework record", e.Field)
}

// UnknownStatusError reports a homework status outside the verdict table.
type UnknownStatusError struct {
	Status string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown homework status: %q", e.Status)
}

// DeliveryError wraps a failed outbound notification.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("message was not delivered: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Recoverable reports whether the loop may continue after err.
// The precheck kinds are excluded on purpose: they cannot occur once the
// loop has started, and retrying bad credentials cannot succeed.
func Recoverable(err error) bool {
	var (
		transport *TransportError
		status    *UnexpectedStatusError
		decode    *DecodeError
		shape     *ShapeError
		remote    *RemoteError
		field     *MissingFieldError
		unknown   *UnknownStatusError
		delivery  *DeliveryError
	)
	switch {
	case errors.As(err, &transport),
		errors.As(err, &status),
		errors.As(err, &decode),
		errors.As(err, &shape),
		errors.As(err, &remote),
		errors.As(err, &field),
		errors.As(err, &unknown),
		errors.As(err, &delivery):
		return true
	}
	return false
}
