package nft

import (
	"context"
	"iter"
)

// Token is the capability set shared by every token adapter.
type Token interface {
	Standard() StandardID
	Contract() ContractRef
	// Transfer moves a token from its owner to another owner. It fails with
	// ErrUnauthorized when From is neither the owner nor an approved operator,
	// without issuing any mutating call.
	Transfer(ctx context.Context, request TransferRequest) (TransferReceipt, error)
}

// NFT is the unified non-fungible token surface. All methods issue fresh
// remote reads; nothing is cached between calls.
type NFT interface {
	Token
	Owner(ctx context.Context, token TokenID) (OwnerRef, error)
	Metadata(ctx context.Context, token TokenID) (TokenMetadata, error)
	// Tokens lists the tokens held by owner. No remote call is made until the
	// sequence is iterated.
	Tokens(ctx context.Context, owner OwnerRef) iter.Seq2[TokenID, error]
	Balance(ctx context.Context, owner OwnerRef) (uint64, error)
}
