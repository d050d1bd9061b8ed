package models

import "fmt"

// FetchErrorKind classifies a failed call to the analysis backend.
type FetchErrorKind int

const (
	// FetchErrorRequest covers failures building the request or handling
	// a successful response body.
	FetchErrorRequest FetchErrorKind = iota
	// FetchErrorResponse means the backend answered with a non-2xx status.
	FetchErrorResponse
	// FetchErrorNoResponse means the request was sent but nothing came back.
	FetchErrorNoResponse
)

func (k FetchErrorKind) String() string {
	switch k {
	case FetchErrorResponse:
		return "response"
	case FetchErrorNoResponse:
		return "no_response"
	default:
		return "request"
	}
}

type FetchError struct {
	Kind       FetchErrorKind
	StatusCode int
	// Detail is the "detail" field of an error response body, if any.
	Detail string
	Cause  error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchErrorResponse:
		if e.Detail != "" {
			return fmt.Sprintf("analysis backend returned %d: %s", e.StatusCode, e.Detail)
		}
		return fmt.Sprintf("analysis backend returned %d", e.StatusCode)
	case FetchErrorNoResponse:
		return fmt.Sprintf("no response from analysis backend: %v", e.Cause)
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "request failed"
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}
