package client

import (
	"errors"
	"fmt"
)

// ErrNetwork means the request never produced a response.
var ErrNetwork = errors.New("network error")

const (
	FallbackLoginMessage    = "Login failed"
	FallbackRegisterMessage = "Registration failed"
	FallbackResetMessage    = "Error sending reset email"

	ResetConfirmation = "Password reset email sent successfully!"
)

// RejectedError is an application-level refusal from the service.
type RejectedError struct {
	Status  int
	Message string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("rejected (%d): %s", e.Status, e.Message)
}

// networkError keeps the transport cause for logs while matching ErrNetwork.
type networkError struct {
	cause error
}

func (e *networkError) Error() string {
	return fmt.Sprintf("%s: %v", ErrNetwork, e.cause)
}

func (e *networkError) Is(target error) bool {
	return target == ErrNetwork
}

func (e *networkError) Unwrap() error {
	return e.cause
}

// Message returns the user-facing text for an error returned by a Client.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected.Message
	}
	if errors.Is(err, ErrNetwork) {
		return ErrNetwork.Error()
	}
	return err.Error()
}
