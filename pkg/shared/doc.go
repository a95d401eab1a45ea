// Package shared provides common utilities used across the HOL NFT Standards
// SDK for Go. It includes network normalization, environment configuration
// with .env loading, Hedera operator client construction, key parsing and
// logger construction.
//
// This package is typically used by the transports and samples but is also
// available for direct use when wiring a registry into an application.
//
// # Environment Variables
//
// ConfigFromEnv reads the NFT_* variables (NFT_NETWORK, NFT_GATEWAY_URL,
// NFT_GATEWAY_API_KEY, NFT_RATE_LIMIT, NFT_RATE_BURST, NFT_LOG_LEVEL,
// NFT_DIRECTORY_FILE, NFT_REDIS_ADDR). OperatorConfigFromEnv reads Hedera
// operator credentials (HEDERA_ACCOUNT_ID, HEDERA_PRIVATE_KEY and their
// network-scoped MAINNET_/TESTNET_ forms). Both load the nearest .env file
// first without overriding variables that are already set.
//
// This package is part of the HOL NFT Standards SDK for Go.
// See https://hol.org for more information about the HOL ecosystem.
package shared
