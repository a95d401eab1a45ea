package hts

import (
	"context"

	sdk "github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/tidwall/gjson"

	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/mirror"
	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/nft"
	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/registry"
	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/transport/hedera"
)

// Probe reports whether the contract is a non-fungible HTS token. Contract
// IDs that are not Hedera token IDs are rejected without a call.
func Probe(ctx context.Context, ref nft.ContractRef) (bool, error) {
	if _, err := sdk.TokenIDFromString(ref.ID); err != nil {
		return false, nil
	}
	raw, err := ref.Query(ctx, hedera.MethodGetToken, ref.ID)
	if err != nil {
		if nft.IsRejectedWith(err, nft.RejectMethodNotFound, hedera.StatusNotFound, hedera.StatusInvalidTokenID) {
			return false, nil
		}
		return false, nft.NewRemoteError(nft.StandardHTS, ref.ID, hedera.MethodGetToken, err)
	}
	return gjson.GetBytes(raw, "type").String() == mirror.TokenTypeNonFungibleUnique, nil
}

// Descriptor returns the registry descriptor for HTS collections.
func Descriptor() registry.Descriptor {
	return registry.Descriptor{
		ID:          nft.StandardHTS,
		Description: nft.Describe(nft.StandardHTS),
		New:         Constructor,
		Probe:       Probe,
	}
}
