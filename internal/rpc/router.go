// Package rpc dispatches JSON-RPC style requests onto typed handler functions.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/odyssey-erp/odyssey-rpc/internal/model"
	"github.com/odyssey-erp/odyssey-rpc/internal/shared"
)

// Request is the RPC envelope. ID is echoed back verbatim.
type Request struct {
	ID     json.RawMessage `json:"id,omitempty"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Response is the success envelope.
type Response struct {
	ID     json.RawMessage `json:"id"`
	Result json.RawMessage `json:"result"`
}

// Info identifies the call in the request log.
type Info struct {
	ID     json.RawMessage
	Method string
}

// Deps are the collaborators every handler receives.
type Deps struct {
	Ctx   shared.Ctx
	Model *model.ModelManager
}

// method is one entry of the dispatch table. call decodes raw params when the
// handler takes any.
type method struct {
	name string
	call func(ctx context.Context, d Deps, v *validator.Validate, params json.RawMessage) (any, error)
}

// withParams registers a handler taking params of type P.
func withParams[P, R any](name string, fn func(context.Context, Deps, P) (R, error)) method {
	return method{
		name: name,
		call: func(ctx context.Context, d Deps, v *validator.Validate, raw json.RawMessage) (any, error) {
			if isAbsent(raw) {
				return nil, &MissingParamsError{Method: name}
			}
			var params P
			if err := json.Unmarshal(raw, &params); err != nil {
				return nil, &FailJSONParamsError{Method: name, Err: err}
			}
			if err := v.Struct(params); err != nil {
				return nil, &FailJSONParamsError{Method: name, Err: err}
			}
			return fn(ctx, d, params)
		},
	}
}

// withoutParams registers a handler that ignores params.
func withoutParams[R any](name string, fn func(context.Context, Deps) (R, error)) method {
	return method{
		name: name,
		call: func(ctx context.Context, d Deps, _ *validator.Validate, _ json.RawMessage) (any, error) {
			return fn(ctx, d)
		},
	}
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Router is a closed table of RPC methods.
type Router struct {
	methods   map[string]method
	validator *validator.Validate
}

// New returns the router of every method the service exposes.
func New() *Router {
	return newRouter(taskMethods()...)
}

// newRouter panics on duplicate method names.
func newRouter(methods ...method) *Router {
	rt := &Router{
		methods:   make(map[string]method, len(methods)),
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, m := range methods {
		if _, dup := rt.methods[m.name]; dup {
			panic(fmt.Sprintf("rpc: duplicate method %q", m.name))
		}
		rt.methods[m.name] = m
	}
	return rt
}

// Methods lists the registered method names in order.
func (rt *Router) Methods() []string {
	names := make([]string, 0, len(rt.methods))
	for name := range rt.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs req as the user of c and returns the success envelope.
func (rt *Router) Dispatch(ctx context.Context, c shared.Ctx, mm *model.ModelManager, req Request) (*Response, error) {
	m, ok := rt.methods[req.Method]
	if !ok {
		return nil, &MethodUnknownError{Method: req.Method}
	}

	result, err := m.call(ctx, Deps{Ctx: c, Model: mm}, rt.validator, req.Params)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("rpc: marshal %s result: %w", req.Method, err)
	}

	id := req.ID
	if len(id) == 0 {
		id = json.RawMessage("null")
	}
	return &Response{ID: id, Result: raw}, nil
}
