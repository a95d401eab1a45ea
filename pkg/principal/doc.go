// Package principal wraps github.com/aviate-labs/agent-go/principal with the
// identity encodings shared by the NFT standards supported by this SDK. Text
// and account identifier derivation come from agent-go; this package adds
// canonical-form validation, hex account identifier parsing, EXT composite
// token identifiers and self-authenticating principals derived from secp256k1
// public keys.
//
// Adapters in this SDK use these helpers to translate between the numeric
// token indices and principals that callers hand in and the encodings a
// particular standard expects on the wire.
//
// This package is part of the HOL NFT Standards SDK for Go.
// See https://hol.org for more information about the HOL ecosystem.
package principal
