// The HOL NFT Standards SDK for Go gives applications one interface over NFT
// contracts that implement incompatible token standards. Each standard is
// served by an adapter that translates the unified operations (owner lookup,
// metadata, token listing and transfer) into the contract's native methods,
// and a registry maps standard identifiers to adapters and detects the
// standard of unknown contracts.
//
// # Standards Implemented
//
//   - default: the DIP-721 baseline NFT interface (pkg/dip721)
//   - ext: the EXT token standard (pkg/ext)
//   - ic-punks: the ICPunks NFT interface (pkg/icpunks)
//   - hts: Hedera Token Service non-fungible tokens (pkg/hts, opt-in)
//
// # Packages
//
//   - pkg/nft: capability interfaces, remote call surface and error taxonomy
//   - pkg/registry: standard registry, detection and contract directories
//   - pkg/transport: call logging, metrics and rate limiting decorators
//   - pkg/transport/jsonrpc: JSON-RPC gateway transport
//   - pkg/transport/hedera: Hedera mirror node and SDK transport
//   - pkg/principal: principal, account identifier and token identifier encodings
//
// # Documentation
//
// Hashgraph Online ecosystem: https://hol.org
//
// # Installation
//
//	go get github.com/hashgraph-online/nft-standards-sdk-go@latest
package nft_standards_sdk_go
