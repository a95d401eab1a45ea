package icpunks

import (
	"context"

	"github.com/hashgraph-online/nft-standards-sdk-go/internal/candid"
	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/nft"
	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/principal"
)

// Probe asks the contract for the tokens of the anonymous principal. An
// ICPunks contract answers with a (usually empty) list of indices.
func Probe(ctx context.Context, ref nft.ContractRef) (bool, error) {
	raw, err := ref.Query(ctx, methodUserTokens, principal.Anonymous)
	if err != nil {
		if nft.IsContractRejection(err) {
			return false, nil
		}
		return false, nft.NewRemoteError(nft.StandardICPunks, ref.ID, methodUserTokens, err)
	}

	root, ok := candid.Parse(raw)
	if !ok {
		return false, nil
	}
	_, ok = candid.NatList(root)
	return ok, nil
}
