package rpc

import "fmt"

// MethodUnknownError is returned when no handler is registered for a method.
type MethodUnknownError struct {
	Method string
}

func (e *MethodUnknownError) Error() string {
	return fmt.Sprintf("rpc: method %q unknown", e.Method)
}

// Kind identifies the error in server-side records.
func (e *MethodUnknownError) Kind() string { return "RpcMethodUnknown" }

// RPCMethod returns the offending method name.
func (e *MethodUnknownError) RPCMethod() string { return e.Method }

// MissingParamsError is returned when a method needing params got none.
type MissingParamsError struct {
	Method string
}

func (e *MissingParamsError) Error() string {
	return fmt.Sprintf("rpc: method %q missing params", e.Method)
}

// Kind identifies the error in server-side records.
func (e *MissingParamsError) Kind() string { return "RpcMissingParams" }

// RPCMethod returns the offending method name.
func (e *MissingParamsError) RPCMethod() string { return e.Method }

// FailJSONParamsError is returned when params do not decode into, or do not
// validate as, the method's params type.
type FailJSONParamsError struct {
	Method string
	Err    error
}

func (e *FailJSONParamsError) Error() string {
	return fmt.Sprintf("rpc: method %q invalid params: %v", e.Method, e.Err)
}

func (e *FailJSONParamsError) Unwrap() error { return e.Err }

// Kind identifies the error in server-side records.
func (e *FailJSONParamsError) Kind() string { return "RpcFailJsonParams" }

// RPCMethod returns the offending method name.
func (e *FailJSONParamsError) RPCMethod() string { return e.Method }

// RequestError is implemented by every error caused by a malformed RPC request.
type RequestError interface {
	error
	RPCMethod() string
}

var (
	_ RequestError = (*MethodUnknownError)(nil)
	_ RequestError = (*MissingParamsError)(nil)
	_ RequestError = (*FailJSONParamsError)(nil)
)
