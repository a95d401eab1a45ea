// Package jsonrpc implements nft.Caller over JSON-RPC 2.0 on HTTP for the HOL
// NFT Standards SDK for Go.
//
// Each call is posted to the gateway endpoint as a "query" or "update"
// request whose params name the contract, the method and the arguments. The
// gateway answers with the JSON rendering of the remote return value.
// A -32601 error becomes an *nft.Rejection with nft.RejectMethodNotFound and
// an error carrying data.reject_code becomes a Rejection with that code. Every
// other JSON-RPC error is the gateway's own failure and is returned as
// *RPCError. HTTP failures are returned as *HTTPError. Brotli and gzip encoded
// responses are decoded transparently.
//
// This package is part of the HOL NFT Standards SDK for Go.
// See https://hol.org for more information about the HOL ecosystem.
package jsonrpc
