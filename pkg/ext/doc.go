// Package ext implements the EXT token standard adapter (standard ID "ext")
// for the HOL NFT Standards SDK for Go.
//
// EXT addresses tokens by composite identifiers that embed the canister
// principal and a 32-bit token index, and records owners as account
// identifiers rather than principals. The adapter accepts either a numeric
// index (encoded against the bound canister) or a composite identifier, and
// lists tokens as composite identifiers.
//
// # Method mapping
//
//	Owner     -> bearer(TokenIdentifier)
//	Metadata  -> bearer(TokenIdentifier) + metadata(TokenIdentifier)
//	Tokens    -> tokens(AccountIdentifier)
//	Balance   -> tokens(AccountIdentifier)
//	Transfer  -> transfer(TransferRequest)
//
// EXT stores no name, description or attributes on chain. Those fields are
// reported as unsupported; the asset URI follows the canister raw-asset
// convention and the on-chain metadata blob is returned as Content.
//
// This package is part of the HOL NFT Standards SDK for Go.
// See https://hol.org for more information about the HOL ecosystem.
package ext
