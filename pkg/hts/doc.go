// Package hts implements an adapter for Hedera Token Service non-fungible
// tokens (standard ID "hts") for the HOL NFT Standards SDK for Go.
//
// The adapter is not part of the default registry. Register it with
// Descriptor to let a registry resolve and detect HTS collections:
//
//	reg := registry.NewDefault(registry.Options{})
//	if err := reg.Register(hts.Descriptor(), registry.RegisterOptions{}); err != nil {
//		return err
//	}
//
// The contract ID is the collection's token ID (for example 0.0.5005) and
// token IDs are serial numbers. Owners are Hedera account IDs. Metadata
// exposes the on-ledger metadata bytes and the HIP-412 metadata URI they
// hold; everything else lives off-ledger and is reported as unsupported.
//
// This package is part of the HOL NFT Standards SDK for Go.
// See https://hol.org for more information about the HOL ecosystem.
package hts
