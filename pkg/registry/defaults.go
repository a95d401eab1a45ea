package registry

import (
	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/dip721"
	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/ext"
	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/icpunks"
	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/nft"
)

// DefaultDescriptors returns the built-in standards in detection order.
func DefaultDescriptors() []Descriptor {
	return []Descriptor{
		{
			ID:          nft.StandardDefault,
			Description: nft.Describe(nft.StandardDefault),
			New: func(ref nft.ContractRef) (nft.NFT, error) {
				return dip721.New(ref)
			},
			Probe: dip721.Probe,
		},
		{
			ID:          nft.StandardEXT,
			Description: nft.Describe(nft.StandardEXT),
			New:         ext.Constructor(ext.Options{}),
			Probe:       ext.Probe,
		},
		{
			ID:          nft.StandardICPunks,
			Description: nft.Describe(nft.StandardICPunks),
			New:         icpunks.Constructor(icpunks.Options{}),
			Probe:       icpunks.Probe,
		},
	}
}
