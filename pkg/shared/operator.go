package shared

import (
	"fmt"
	"strings"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

type OperatorConfig struct {
	AccountID  string
	PrivateKey string
	Network    string
}

// OperatorConfigFromEnv reads Hedera operator credentials. Network-scoped
// variables (MAINNET_*, TESTNET_*) win over the generic ones.
func OperatorConfigFromEnv() (OperatorConfig, error) {
	loadDotEnvIfPresent()

	network, err := NormalizeNetwork(firstNonEmptyEnv("HEDERA_NETWORK", "NFT_NETWORK", "NETWORK"))
	if err != nil {
		return OperatorConfig{}, err
	}

	scope := strings.ToUpper(network) + "_"
	accountID := firstNonEmptyEnv(
		scope+"HEDERA_ACCOUNT_ID",
		scope+"HEDERA_OPERATOR_ID",
		scope+"OPERATOR_ID",
		"HEDERA_ACCOUNT_ID",
		"HEDERA_OPERATOR_ID",
		"ACCOUNT_ID",
		"OPERATOR_ID",
	)
	privateKey := firstNonEmptyEnv(
		scope+"HEDERA_PRIVATE_KEY",
		scope+"HEDERA_OPERATOR_KEY",
		scope+"OPERATOR_KEY",
		"HEDERA_PRIVATE_KEY",
		"HEDERA_OPERATOR_KEY",
		"PRIVATE_KEY",
		"OPERATOR_KEY",
	)

	if accountID == "" {
		return OperatorConfig{}, fmt.Errorf("HEDERA_ACCOUNT_ID is required")
	}
	if privateKey == "" {
		return OperatorConfig{}, fmt.Errorf("HEDERA_PRIVATE_KEY is required")
	}

	return OperatorConfig{
		AccountID:  accountID,
		PrivateKey: privateKey,
		Network:    network,
	}, nil
}

// NewOperatorClient creates a Hedera client that signs and pays as the
// configured operator.
func NewOperatorClient(config OperatorConfig) (*hedera.Client, error) {
	accountID, err := hedera.AccountIDFromString(strings.TrimSpace(config.AccountID))
	if err != nil {
		return nil, fmt.Errorf("invalid operator account ID: %w", err)
	}
	privateKey, err := ParsePrivateKey(config.PrivateKey)
	if err != nil {
		return nil, err
	}

	client, err := NewHederaClient(config.Network)
	if err != nil {
		return nil, err
	}
	client.SetOperator(accountID, privateKey)
	return client, nil
}

// ParsePrivateKey parses the provided input value.
func ParsePrivateKey(raw string) (hedera.PrivateKey, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return hedera.PrivateKey{}, fmt.Errorf("private key cannot be empty")
	}

	ed25519Key, edErr := hedera.PrivateKeyFromStringEd25519(candidate)
	if edErr == nil {
		return ed25519Key, nil
	}

	ecdsaKey, ecdsaErr := hedera.PrivateKeyFromStringECDSA(candidate)
	if ecdsaErr == nil {
		return ecdsaKey, nil
	}

	genericKey, genericErr := hedera.PrivateKeyFromString(candidate)
	if genericErr == nil {
		return genericKey, nil
	}

	return hedera.PrivateKey{}, fmt.Errorf(
		"failed to parse private key as ED25519 (%v), ECDSA (%v), or generic (%v)",
		edErr,
		ecdsaErr,
		genericErr,
	)
}
