package httpx

import (
	"errors"
	"fmt"
	"net/http"
)

// ClientError is the only error shape sent to clients. Message is a stable
// upper-case kind, Detail an optional JSON payload.
type ClientError struct {
	Status  int
	Message string
	Detail  any
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("httpx: client error %d %s", e.Status, e.Message)
}

// errorBody is the wire form of a ClientError.
type errorBody struct {
	Message string `json:"message"`
	Detail  any    `json:"detail,omitempty"`
	ReqID   string `json:"req_id"`
}

// BodyError reports a request body that could not be decoded.
type BodyError struct {
	Err error
}

func (e *BodyError) Error() string {
	return "httpx: invalid request body: " + e.Err.Error()
}

func (e *BodyError) Unwrap() error {
	return e.Err
}

// Kind identifies the error in server-side records.
func (e *BodyError) Kind() string {
	return "BodyInvalid"
}

// Kinded is implemented by errors that name their own kind for the request log.
type Kinded interface {
	Kind() string
}

// KindOf returns the kind of the first Kinded error in err's chain, or "Other".
func KindOf(err error) string {
	var k Kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return "Other"
}

// ServiceError is the fallback client error for anything not mapped.
var ServiceError = ClientError{Status: http.StatusInternalServerError, Message: "SERVICE_ERROR"}
