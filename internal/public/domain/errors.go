package domain

import "fmt"

// AuthError indicates the identity provider rejected or could not serve
// an identity request.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("auth: %s", e.Reason)
}

func (e *AuthError) Unwrap() error { return e.Err }

// StoreWriteError indicates a document write failed after any preceding
// steps already took effect.
type StoreWriteError struct {
	Collection string
	Err        error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("store write to %s failed: %v", e.Collection, e.Err)
}

func (e *StoreWriteError) Unwrap() error { return e.Err }

// UpstreamError carries a non-success status or transport failure from an
// external provider (weather, chat backend).
type UpstreamError struct {
	Provider string
	Status   int
	Body     string
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s upstream: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s upstream returned %d", e.Provider, e.Status)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// TimeoutError marks a request abandoned at its cancellation deadline.
// Only the chat relay imposes one.
type TimeoutError struct {
	Provider string
	Err      error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s request timed out", e.Provider)
}

func (e *TimeoutError) Unwrap() error { return e.Err }
