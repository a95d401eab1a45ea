// Package hedera provides an nft.Caller that serves the Hedera Token Service
// NFT method surface for the HOL NFT Standards SDK for Go.
//
// Reads are answered from the Hedera mirror node and transfers are submitted
// through hedera-sdk-go with the configured operator. Ledger statuses reach
// adapters as nft.Rejection codes such as INVALID_NFT_ID or
// SENDER_DOES_NOT_OWN_NFT_SERIAL_NO.
//
//	getToken(tokenId)                          -> mirror token info
//	getNft(tokenId, serial)                    -> mirror NFT
//	getAccountNfts(accountId, tokenId)         -> list of mirror NFTs
//	transferNft(tokenId, serial, from, to, ok) -> {"transaction_id", "status"}
//
// This package is part of the HOL NFT Standards SDK for Go.
// See https://hol.org for more information about the HOL ecosystem.
package hedera
