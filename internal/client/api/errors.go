// Package api implements the REST client for the rental backend: one
// transport core plus a generic, typed resource client instantiated per
// collection. All authentication state is injected through a session.Store.
package api

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials is returned when the auth endpoint rejects a login.
// Any previously live session is left untouched.
var ErrInvalidCredentials = errors.New("invalid credentials")

// FetchError wraps a network/transport failure: the request never produced
// an HTTP status. Match with errors.As.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: request failed: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// UnexpectedStatusError reports a non-200 response on a read operation.
type UnexpectedStatusError struct {
	Op     string
	Status int
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
}

// RejectedError reports a non-200 response on a mutation. Detail carries the
// server's own message when the response body had one.
type RejectedError struct {
	Op     string
	Status int
	Detail string
}

func (e *RejectedError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: rejected (%d): %s", e.Op, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s: rejected (%d)", e.Op, e.Status)
}

// Message returns the user-facing failure text, preferring the server's
// detail string over the generic form.
func (e *RejectedError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request rejected with status %d", e.Status)
}
