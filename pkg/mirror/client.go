package mirror

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/shared"
)

type Config struct {
	Network    string
	BaseURL    string
	HTTPClient *http.Client
	APIKey     string
	Headers    map[string]string
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
	headers    map[string]string
}

var defaultBaseURLs = map[string]string{
	shared.NetworkMainnet:    "https://mainnet-public.mirrornode.hedera.com",
	shared.NetworkTestnet:    "https://testnet.mirrornode.hedera.com",
	shared.NetworkPreviewnet: "https://previewnet.mirrornode.hedera.com",
}

type NftQueryOptions struct {
	TokenID string
	Limit   int
	Order   string
}

// StatusError is returned when the mirror node answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("mirror node request failed with status %d: %s", e.StatusCode, e.Body)
}

// IsNotFound reports whether err is a mirror node 404.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}

// NewClient creates a new Client.
func NewClient(config Config) (*Client, error) {
	network, err := shared.NormalizeNetwork(config.Network)
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURLs[network]
	}
	parsedBaseURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid mirror base URL: %w", err)
	}
	if parsedBaseURL.Scheme != "http" && parsedBaseURL.Scheme != "https" {
		return nil, fmt.Errorf("invalid mirror base URL: scheme must be http or https")
	}
	if strings.TrimSpace(parsedBaseURL.Host) == "" {
		return nil, fmt.Errorf("invalid mirror base URL: host is required")
	}
	baseURL = strings.TrimRight(parsedBaseURL.String(), "/")

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	headers := map[string]string{}
	for key, value := range config.Headers {
		headers[key] = value
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		apiKey:     strings.TrimSpace(config.APIKey),
		headers:    headers,
	}, nil
}

// BaseURL performs the requested operation.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetToken returns the requested value.
func (c *Client) GetToken(ctx context.Context, tokenID string) (TokenInfo, error) {
	var tokenInfo TokenInfo
	normalized := strings.TrimSpace(tokenID)
	if normalized == "" {
		return tokenInfo, fmt.Errorf("token ID is required")
	}

	path := fmt.Sprintf("/api/v1/tokens/%s", url.PathEscape(normalized))
	if err := c.getJSON(ctx, path, &tokenInfo); err != nil {
		return tokenInfo, err
	}
	return tokenInfo, nil
}

// GetNft returns the requested value.
func (c *Client) GetNft(ctx context.Context, tokenID string, serialNumber int64) (Nft, error) {
	var nft Nft
	normalized := strings.TrimSpace(tokenID)
	if normalized == "" {
		return nft, fmt.Errorf("token ID is required")
	}
	if serialNumber <= 0 {
		return nft, fmt.Errorf("serial number must be positive")
	}

	path := fmt.Sprintf("/api/v1/tokens/%s/nfts/%d", url.PathEscape(normalized), serialNumber)
	if err := c.getJSON(ctx, path, &nft); err != nil {
		return nft, err
	}
	return nft, nil
}

// GetAccountNfts returns every NFT held by accountID, following pagination
// links.
func (c *Client) GetAccountNfts(
	ctx context.Context,
	accountID string,
	options NftQueryOptions,
) ([]Nft, error) {
	normalizedAccountID := strings.TrimSpace(accountID)
	if normalizedAccountID == "" {
		return nil, fmt.Errorf("account ID is required")
	}

	values := url.Values{}
	if options.TokenID != "" {
		values.Set("token.id", options.TokenID)
	}
	if options.Limit > 0 {
		values.Set("limit", fmt.Sprintf("%d", options.Limit))
	}
	if options.Order != "" {
		values.Set("order", options.Order)
	}

	endpoint := fmt.Sprintf("/api/v1/accounts/%s/nfts", url.PathEscape(normalizedAccountID))
	if encoded := values.Encode(); encoded != "" {
		endpoint = fmt.Sprintf("%s?%s", endpoint, encoded)
	}

	result := make([]Nft, 0)
	next := endpoint

	for next != "" {
		var page nftsResponse
		if err := c.getJSON(ctx, next, &page); err != nil {
			return nil, err
		}

		result = append(result, page.Nfts...)
		next = page.Links.Next
	}

	return result, nil
}

// DecodeMetadata decodes the base64 metadata of an NFT.
func DecodeMetadata(nft Nft) ([]byte, error) {
	if strings.TrimSpace(nft.Metadata) == "" {
		return []byte{}, nil
	}
	decoded, err := base64.StdEncoding.DecodeString(nft.Metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to decode NFT metadata: %w", err)
	}
	return decoded, nil
}

func (c *Client) getJSON(ctx context.Context, pathOrURL string, target any) error {
	requestURL := c.resolveURL(pathOrURL)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	request.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		request.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}
	for key, value := range c.headers {
		request.Header.Set(key, value)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("mirror node request failed: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("failed to read mirror node response: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return &StatusError{
			StatusCode: response.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to decode mirror node response: %w", err)
	}

	return nil
}

func (c *Client) resolveURL(pathOrURL string) string {
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return pathOrURL
	}

	path := pathOrURL
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.baseURL + path
}
