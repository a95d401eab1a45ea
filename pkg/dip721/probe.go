package dip721

import (
	"context"

	"github.com/hashgraph-online/nft-standards-sdk-go/internal/candid"
	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/nft"
)

// Probe reports whether the contract answers the DIP-721 supportedInterfaces
// query. It issues one read-only call.
func Probe(ctx context.Context, ref nft.ContractRef) (bool, error) {
	raw, err := ref.Query(ctx, methodSupportedInterfaces)
	if err != nil {
		if nft.IsContractRejection(err) {
			return false, nil
		}
		return false, nft.NewRemoteError(nft.StandardDefault, ref.ID, methodSupportedInterfaces, err)
	}

	root, ok := candid.Parse(raw)
	if !ok || !root.IsArray() {
		return false, nil
	}
	for _, element := range root.Array() {
		if _, _, ok := candid.Variant(element); !ok {
			return false, nil
		}
	}
	return true, nil
}
