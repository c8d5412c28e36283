package clients

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound matches a *ClientError carrying a 404.
var ErrNotFound = errors.New("not found")

// ClientError reports a 4xx answer from an upstream service.
type ClientError struct {
	Service    string
	StatusCode int
	Message    string
}

func (e *ClientError) Error() string {
	return e.Message
}

// NotFound reports whether the upstream answered 404.
func (e *ClientError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

func (e *ClientError) Is(target error) bool {
	return target == ErrNotFound && e.NotFound()
}

// ServerError reports a 5xx answer, or a 2xx body that could not be decoded.
type ServerError struct {
	Service    string
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return e.Message
}

// TransportError reports that the upstream could not be reached at all:
// connection refused, timeout or a canceled context.
type TransportError struct {
	Service string
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status the gateway answers with for err.
func StatusCode(err error) int {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.StatusCode
	}
	return http.StatusInternalServerError
}

// Message returns the plain-text body the gateway answers with for err.
func Message(err error) string {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Message
	}
	return err.Error()
}

func outcome(err error) string {
	var (
		ce *ClientError
		se *ServerError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &ce):
		return "client_error"
	case errors.As(err, &se):
		return "server_error"
	default:
		return "transport_error"
	}
}
