// Package nfttest provides a scripted in-memory Caller for testing adapters
// and registry code without a ledger.
package nfttest

import (
	"context"
	"sync"

	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/nft"
)

// Handler answers one remote call.
type Handler func(request nft.CallRequest) (nft.RawResult, error)

// Caller answers calls from per-method handlers and records every call it
// receives. Methods without a handler are rejected with
// nft.RejectMethodNotFound.
type Caller struct {
	mu       sync.Mutex
	handlers map[string]Handler
	calls    []nft.CallRequest
}

func NewCaller() *Caller {
	return &Caller{handlers: make(map[string]Handler)}
}

func (c *Caller) Handle(method string, handler Handler) *Caller {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[method] = handler
	return c
}

// Return answers method with a fixed JSON result.
func (c *Caller) Return(method string, result string) *Caller {
	return c.Handle(method, func(nft.CallRequest) (nft.RawResult, error) {
		return nft.RawResult(result), nil
	})
}

// Reject answers method with a contract-side rejection.
func (c *Caller) Reject(method string, code string, message string) *Caller {
	return c.Handle(method, func(nft.CallRequest) (nft.RawResult, error) {
		return nil, &nft.Rejection{Code: code, Message: message}
	})
}

// Fail answers method with a transport error.
func (c *Caller) Fail(method string, err error) *Caller {
	return c.Handle(method, func(nft.CallRequest) (nft.RawResult, error) {
		return nil, err
	})
}

func (c *Caller) Call(ctx context.Context, request nft.CallRequest) (nft.RawResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	recorded := request
	recorded.Args = append([]any{}, request.Args...)
	c.calls = append(c.calls, recorded)
	handler, ok := c.handlers[request.Method]
	c.mu.Unlock()

	if !ok {
		return nil, &nft.Rejection{
			Code:    nft.RejectMethodNotFound,
			Message: "contract has no method " + request.Method,
		}
	}
	return handler(request)
}

// Calls returns a copy of every recorded call.
func (c *Caller) Calls() []nft.CallRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]nft.CallRequest{}, c.calls...)
}

func (c *Caller) CallsTo(method string) []nft.CallRequest {
	result := make([]nft.CallRequest, 0)
	for _, call := range c.Calls() {
		if call.Method == method {
			result = append(result, call)
		}
	}
	return result
}

// Updates returns the recorded calls that may have changed ledger state.
func (c *Caller) Updates() []nft.CallRequest {
	result := make([]nft.CallRequest, 0)
	for _, call := range c.Calls() {
		if call.Kind == nft.CallUpdate {
			result = append(result, call)
		}
	}
	return result
}

func (c *Caller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = nil
}
