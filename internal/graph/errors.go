package graph

import "fmt"

// AuthError indicates the identity provider did not return a usable token.
type AuthError struct {
	// Description is the provider's error_description, when available.
	Description string
	// Err is the underlying transport or decode error, when any.
	Err error
}

func (e *AuthError) Error() string {
	if e.Description != "" {
		return "graph: token error: " + e.Description
	}
	if e.Err != nil {
		return "graph: token error: " + e.Err.Error()
	}
	return "graph: token error"
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// APIError indicates the directory API responded with status >= 400.
// It carries the status code and the raw response body.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("graph: API error %d: %s", e.StatusCode, e.Body)
}
