// Package client talks to the event-management auth API.
//
// # Overview
//
// Client is the transport-agnostic contract used by the form controllers:
// Login, Register and RequestPasswordReset. HTTPClient implements it over
// HTTPS with JSON bodies (multipart/form-data when registering with an
// avatar).
//
// # Error Handling
//
// Every operation returns either its value or an error of one of two kinds:
//
//   - *RejectedError: the service answered with a non-2xx status. Message is
//     the service's "message" field, or the operation's fallback text.
//   - ErrNetwork (via errors.Is): no response was received.
//
// Message(err) turns any returned error into the text shown to the user.
//
// All operations honor context cancellation; HTTPClient additionally bounds
// each request with its configured timeout.
package client
