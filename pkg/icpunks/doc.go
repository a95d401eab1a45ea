// Package icpunks implements the ICPunks token standard adapter (standard ID
// "ic-punks") for the HOL NFT Standards SDK for Go.
//
// ICPunks contracts index tokens by number and return owners as principals.
// The contract traps instead of returning an error value for unknown tokens;
// those traps reach callers as remote errors with the rejection attached.
//
// # Method mapping
//
//	Owner     -> owner_of(nat)
//	Metadata  -> data_of(nat)
//	Tokens    -> user_tokens(principal)
//	Balance   -> user_tokens(principal)
//	Transfer  -> owner_of(nat) + transfer_to(principal, nat)
//
// This package is part of the HOL NFT Standards SDK for Go.
// See https://hol.org for more information about the HOL ecosystem.
package icpunks
