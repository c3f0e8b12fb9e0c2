package llm

import (
	"errors"
	"fmt"
)

// ErrMissingCredential is returned when a provider is asked to dispatch
// without an API key configured.
var ErrMissingCredential = errors.New("no API key configured for this provider")

// ProviderError is a non-success HTTP response from a provider, carrying
// the status code and the provider-supplied message when one could be
// parsed from the body.
type ProviderError struct {
	Provider string
	Status   int
	Message  string
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.Status, e.Message)
	}
	return fmt.Sprintf("%s API error (status %d)", e.Provider, e.Status)
}

// TransportError is a network-level failure: the request never produced
// an HTTP response.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UnknownProviderError is returned by New for an unregistered provider name.
type UnknownProviderError struct {
	Name string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown provider: %s", e.Name)
}
