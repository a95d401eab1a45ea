// Package dip721 implements the default NFT adapter of the HOL NFT Standards
// SDK for Go. Contracts registered under the "default" standard ID expose the
// DIP-721 baseline interface: numeric token indices, principal owners,
// Ok/Err result variants and optional operator approvals.
//
// # Method mapping
//
//	Owner     -> ownerOf(nat)
//	Metadata  -> tokenMetadata(nat)
//	Tokens    -> ownerTokenIdentifiers(principal)
//	Balance   -> balanceOf(principal)
//	Transfer  -> transferFrom(principal, principal, nat)
//
// Transfers are authorized up front with ownerOf, isApprovedForAll and
// operatorOf so a caller that is neither owner nor operator never reaches
// transferFrom.
//
// This package is part of the HOL NFT Standards SDK for Go.
// See https://hol.org for more information about the HOL ecosystem.
package dip721
