// Package registry maps NFT standard identifiers to adapter constructors for
// the HOL NFT Standards SDK for Go.
//
// A Registry is an explicitly constructed value. NewDefault seeds it with the
// built-in standards ("default", "ext" and "ic-punks"); further standards are
// added with Register, which refuses to overwrite an existing identifier
// unless RegisterOptions.Replace is set.
//
// Resolve binds an adapter to a contract when the standard is known. Detect
// runs the read-only probes of every registered standard against a contract
// and reports the single standard that matched. ResolveContract combines both
// with an optional Directory that remembers which standard a contract uses.
//
// Registries are safe for concurrent use. Registration takes a write lock;
// resolution and detection share a read lock.
//
// This package is part of the HOL NFT Standards SDK for Go.
// See https://hol.org for more information about the HOL ecosystem.
package registry
