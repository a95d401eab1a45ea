package jsonrpc

import "fmt"

// HTTPError is returned when the gateway answers with a non-2xx status.
type HTTPError struct {
	Status     int
	StatusText string
	Body       string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "gateway request failed"
	}
	if e.Body == "" {
		return fmt.Sprintf("gateway request failed (status=%d %s)", e.Status, e.StatusText)
	}
	return fmt.Sprintf("gateway request failed (status=%d %s): %s", e.Status, e.StatusText, e.Body)
}

const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// RPCError is a JSON-RPC error the gateway raised on its own behalf, such as
// a malformed request or an unreachable replica.
type RPCError struct {
	Code    int
	Message string
	Data    []byte
}

func (e *RPCError) Error() string {
	if e == nil {
		return "gateway returned a JSON-RPC error"
	}
	if e.Message == "" {
		return fmt.Sprintf("gateway returned JSON-RPC error %d", e.Code)
	}
	return fmt.Sprintf("gateway returned JSON-RPC error %d: %s", e.Code, e.Message)
}

// IsServerError reports whether the code lies in the implementation-defined
// server error range.
func (e *RPCError) IsServerError() bool {
	return e != nil && e.Code <= -32000 && e.Code >= -32099
}
