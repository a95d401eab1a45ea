package shared

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/principal"
)

const (
	DefaultRateBurst = 1
	DefaultLogLevel  = "info"
)

// Config carries the settings an application needs to build transports and
// a registry.
type Config struct {
	Network       string
	GatewayURL    string
	GatewayAPIKey string
	// RateLimit is the sustained calls per second; zero disables limiting.
	RateLimit     float64
	RateBurst     int
	LogLevel      string
	DirectoryFile string
	RedisAddr     string
	// CallerPublicKey is the hex secp256k1 public key of the Internet
	// Computer identity that signs update calls through the gateway.
	CallerPublicKey string
}

// ConfigFromEnv reads Config from NFT_* environment variables.
func ConfigFromEnv() (Config, error) {
	loadDotEnvIfPresent()

	network, err := NormalizeNetwork(firstNonEmptyEnv("NFT_NETWORK", "HEDERA_NETWORK", "NETWORK"))
	if err != nil {
		return Config{}, err
	}

	config := Config{
		Network:       network,
		GatewayURL:    firstNonEmptyEnv("NFT_GATEWAY_URL"),
		GatewayAPIKey: firstNonEmptyEnv("NFT_GATEWAY_API_KEY"),
		RateBurst:     DefaultRateBurst,
		LogLevel:      DefaultLogLevel,
		DirectoryFile: firstNonEmptyEnv("NFT_DIRECTORY_FILE"),
		RedisAddr:     firstNonEmptyEnv("NFT_REDIS_ADDR"),

		CallerPublicKey: firstNonEmptyEnv("NFT_CALLER_PUBLIC_KEY"),
	}
	if level := firstNonEmptyEnv("NFT_LOG_LEVEL"); level != "" {
		config.LogLevel = strings.ToLower(level)
	}

	if rateLimit, ok, err := envFloat("NFT_RATE_LIMIT"); err != nil {
		return Config{}, fmt.Errorf("invalid NFT_RATE_LIMIT: %w", err)
	} else if ok {
		config.RateLimit = rateLimit
	}
	if burst, ok, err := envInt("NFT_RATE_BURST"); err != nil {
		return Config{}, fmt.Errorf("invalid NFT_RATE_BURST: %w", err)
	} else if ok {
		config.RateBurst = burst
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate performs the requested operation.
func (config Config) Validate() error {
	if config.GatewayURL != "" {
		parsed, err := url.Parse(config.GatewayURL)
		if err != nil {
			return fmt.Errorf("invalid gateway URL: %w", err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("invalid gateway URL: scheme must be http or https")
		}
		if strings.TrimSpace(parsed.Host) == "" {
			return fmt.Errorf("invalid gateway URL: host is required")
		}
	}
	if config.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative")
	}
	if config.RateLimit > 0 && config.RateBurst < 1 {
		return fmt.Errorf("rate burst must be at least 1")
	}
	if _, err := ParseLogLevel(config.LogLevel); err != nil {
		return err
	}
	if _, err := config.CallerPrincipal(); err != nil {
		return err
	}
	return nil
}

// CallerPrincipal derives the self-authenticating principal of
// CallerPublicKey. It returns an empty string when no key is configured.
func (config Config) CallerPrincipal() (string, error) {
	if strings.TrimSpace(config.CallerPublicKey) == "" {
		return "", nil
	}
	caller, err := principal.FromSecp256k1Hex(config.CallerPublicKey)
	if err != nil {
		return "", fmt.Errorf("invalid NFT_CALLER_PUBLIC_KEY: %w", err)
	}
	return caller, nil
}
