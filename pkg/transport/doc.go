// Package transport provides nft.Caller decorators for the HOL NFT Standards
// SDK for Go: structured call logging, Prometheus call metrics and client
// side rate limiting. Decorators never retry and return the wrapped caller's
// results and errors unchanged.
//
//	caller := transport.Chain(gateway,
//		transport.WithRateLimit(rate.NewLimiter(10, 5)),
//		transport.WithMetrics(metrics),
//		transport.WithLogging(logger),
//	)
//
// Concrete transports live in the jsonrpc and hedera subpackages.
//
// This package is part of the HOL NFT Standards SDK for Go.
// See https://hol.org for more information about the HOL ecosystem.
package transport
