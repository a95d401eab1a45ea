package ext

import (
	"context"

	"github.com/hashgraph-online/nft-standards-sdk-go/internal/candid"
	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/nft"
)

var probeExtensions = map[string]struct{}{
	"@ext/common":      {},
	"@ext/nonfungible": {},
}

// Probe reports whether the contract lists an EXT extension. It issues one
// read-only call.
func Probe(ctx context.Context, ref nft.ContractRef) (bool, error) {
	raw, err := ref.Query(ctx, methodExtensions)
	if err != nil {
		if nft.IsContractRejection(err) {
			return false, nil
		}
		return false, nft.NewRemoteError(nft.StandardEXT, ref.ID, methodExtensions, err)
	}

	root, ok := candid.Parse(raw)
	if !ok || !root.IsArray() {
		return false, nil
	}
	for _, element := range root.Array() {
		if _, known := probeExtensions[element.String()]; known {
			return true, nil
		}
	}
	return false, nil
}
