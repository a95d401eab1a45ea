// Package nft defines the standard-agnostic surface of the HOL NFT Standards
// SDK for Go: the capability interfaces every adapter implements, the remote
// call contract adapters consume from a transport, the catalog of standard
// identifiers, the normalized records returned to callers, and the shared
// error taxonomy.
//
// Client code works exclusively against [NFT] and never inspects which
// standard sits underneath. Adapters for individual standards live in their
// own packages (dip721, ext, icpunks, hts) and are selected through the
// registry package.
//
// # Remote calls
//
// Adapters talk to a deployed contract through a [Caller]. Results are the
// JSON rendering of the remote value: variants are single-key objects, an
// optional value is an array holding zero or one element, and naturals may be
// numbers or decimal strings. Contract-side rejections are reported as
// [*Rejection]; anything else is a transport failure.
//
// # Errors
//
// Every failure unwraps to one of [ErrNotFound], [ErrUnauthorized],
// [ErrUnsupported], [ErrUnknownStandard], [ErrDuplicateStandard],
// [ErrAmbiguousStandard] or [ErrRemote]. Use errors.Is to branch on them.
//
// This package is part of the HOL NFT Standards SDK for Go.
// See https://hol.org for more information about the HOL ecosystem.
package nft
