// Package mirror provides a Hedera Mirror Node client used by the HTS
// transport in the HOL NFT Standards SDK. It handles token, NFT and
// account holding lookups against the Hedera mirror node REST API.
//
// The mirror node provides a read-only view of the Hedera public ledger,
// enabling applications to query token state and NFT ownership without
// submitting transactions to the network.
//
// # Hedera Mirror Node
//
// Learn more about Hedera: https://docs.hedera.com
//
// This package is part of the HOL NFT Standards SDK for Go.
// See https://hol.org for more information about the HOL ecosystem.
package mirror
