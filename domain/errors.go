package domain

import "fmt"

// RemoteError is the single failure shape for everything that goes wrong at
// the service boundary: non-2xx responses, unreachable server, undecodable
// bodies. Status is 0 when the failure happened before a response arrived.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
}

func NewRemoteError(status int, message string) *RemoteError {
	return &RemoteError{Status: status, Message: message}
}

// ValidationError rejects an order submission before any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
