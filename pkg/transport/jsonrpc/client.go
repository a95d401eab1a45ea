package jsonrpc

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/google/uuid"

	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/nft"
)

const (
	Version            = "2.0"
	DefaultUserAgent   = "@hol-org/nft-standards-sdk-go"
	CodeMethodNotFound = -32601

	methodQuery  = "query"
	methodUpdate = "update"
)

type Options struct {
	Endpoint    string
	HTTPClient  *http.Client
	HTTPTimeout time.Duration
	APIKey      string
	Headers     map[string]string
	UserAgent   string
}

// Client is a JSON-RPC gateway Caller. It is safe for concurrent use.
type Client struct {
	endpoint   string
	httpClient *http.Client
	headers    map[string]string
}

var _ nft.Caller = (*Client)(nil)

// NewClient creates a new Client.
func NewClient(options Options) (*Client, error) {
	endpoint := strings.TrimSpace(options.Endpoint)
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid gateway endpoint: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid gateway endpoint: scheme must be http or https")
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return nil, fmt.Errorf("invalid gateway endpoint: host is required")
	}

	httpClient := options.HTTPClient
	if httpClient == nil {
		timeout := options.HTTPTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	headers := map[string]string{}
	for key, value := range options.Headers {
		normalizedKey := normalizeHeaderName(key)
		trimmedValue := strings.TrimSpace(value)
		if normalizedKey != "" && trimmedValue != "" {
			headers[normalizedKey] = trimmedValue
		}
	}
	if apiKey := strings.TrimSpace(options.APIKey); apiKey != "" {
		headers["x-api-key"] = apiKey
	}
	userAgent := strings.TrimSpace(options.UserAgent)
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	headers["user-agent"] = userAgent
	headers["accept"] = "application/json"
	headers["content-type"] = "application/json"
	headers["accept-encoding"] = "br, gzip"

	return &Client{
		endpoint:   parsed.String(),
		httpClient: httpClient,
		headers:    headers,
	}, nil
}

// Endpoint performs the requested operation.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Call performs the requested operation.
func (c *Client) Call(ctx context.Context, request nft.CallRequest) (nft.RawResult, error) {
	if strings.TrimSpace(request.Method) == "" {
		return nil, fmt.Errorf("method is required")
	}

	rpcMethod := methodQuery
	if request.Kind == nft.CallUpdate {
		rpcMethod = methodUpdate
	}
	args := request.Args
	if args == nil {
		args = []any{}
	}

	envelope := rpcRequest{
		JSONRPC: Version,
		ID:      uuid.NewString(),
		Method:  rpcMethod,
		Params: callParams{
			Contract: request.Contract,
			Method:   request.Method,
			Args:     args,
		},
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON-RPC request: %w", err)
	}

	body, err := c.post(ctx, payload)
	if err != nil {
		return nil, err
	}

	var response rpcResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode JSON-RPC response: %w", err)
	}
	if response.ID != envelope.ID {
		return nil, fmt.Errorf("JSON-RPC response id %q does not match request id %q", response.ID, envelope.ID)
	}
	if len(response.Error) > 0 && !bytes.Equal(response.Error, []byte("null")) {
		return nil, responseError(response.Error)
	}
	if len(response.Result) == 0 {
		return nil, fmt.Errorf("JSON-RPC response has neither result nor error")
	}
	return nft.RawResult(response.Result), nil
}

func (c *Client) post(ctx context.Context, payload []byte) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range c.headers {
		request.Header.Set(key, value)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer response.Body.Close()

	body, err := readBody(response)
	if err != nil {
		return nil, fmt.Errorf("failed to read gateway response: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, &HTTPError{
			Status:     response.StatusCode,
			StatusText: response.Status,
			Body:       strings.TrimSpace(string(body)),
		}
	}
	return body, nil
}

func readBody(response *http.Response) ([]byte, error) {
	var reader io.Reader = response.Body
	switch strings.ToLower(strings.TrimSpace(response.Header.Get("Content-Encoding"))) {
	case "br":
		reader = brotli.NewReader(response.Body)
	case "gzip":
		gzipReader, err := gzip.NewReader(response.Body)
		if err != nil {
			return nil, err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}
	return io.ReadAll(reader)
}

func normalizeHeaderName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

type rpcRequest struct {
	JSONRPC string     `json:"jsonrpc"`
	ID      string     `json:"id"`
	Method  string     `json:"method"`
	Params  callParams `json:"params"`
}

type callParams struct {
	Contract string `json:"contract"`
	Method   string `json:"method"`
	Args     []any  `json:"args"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   json.RawMessage `json:"error"`
}

type rpcError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type rejectData struct {
	RejectCode string `json:"reject_code"`
}

// responseError classifies a JSON-RPC error object. Only a missing method or
// an explicit replica reject code is the contract's answer; every other code
// is a gateway failure.
func responseError(raw json.RawMessage) error {
	var decoded rpcError
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("failed to decode JSON-RPC error: %w", err)
	}

	if decoded.Code == CodeMethodNotFound {
		return &nft.Rejection{
			Code:    nft.RejectMethodNotFound,
			Message: decoded.Message,
			Payload: append([]byte{}, raw...),
		}
	}
	if len(decoded.Data) > 0 {
		var data rejectData
		if json.Unmarshal(decoded.Data, &data) == nil && strings.TrimSpace(data.RejectCode) != "" {
			return &nft.Rejection{
				Code:    strings.TrimSpace(data.RejectCode),
				Message: decoded.Message,
				Payload: append([]byte{}, raw...),
			}
		}
	}

	return &RPCError{
		Code:    decoded.Code,
		Message: decoded.Message,
		Data:    append([]byte{}, decoded.Data...),
	}
}
