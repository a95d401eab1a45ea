package shared

import (
	"fmt"
	"strings"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

const (
	NetworkMainnet    = "mainnet"
	NetworkTestnet    = "testnet"
	NetworkPreviewnet = "previewnet"
)

// NormalizeNetwork performs the requested operation. An empty network is
// testnet.
func NormalizeNetwork(network string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(network))
	switch normalized {
	case "":
		return NetworkTestnet, nil
	case NetworkMainnet, NetworkTestnet, NetworkPreviewnet:
		return normalized, nil
	default:
		return "", fmt.Errorf("unsupported network %q", network)
	}
}

// NewHederaClient creates a new HederaClient.
func NewHederaClient(network string) (*hedera.Client, error) {
	normalized, err := NormalizeNetwork(network)
	if err != nil {
		return nil, err
	}

	switch normalized {
	case NetworkMainnet:
		return hedera.ClientForMainnet(), nil
	case NetworkPreviewnet:
		return hedera.ClientForPreviewnet(), nil
	default:
		return hedera.ClientForTestnet(), nil
	}
}
