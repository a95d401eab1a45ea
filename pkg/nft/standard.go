package nft

import (
	"fmt"
	"strings"
)

type StandardID string

const (
	StandardDefault  StandardID = "default"
	StandardEXT      StandardID = "ext"
	StandardICPunks  StandardID = "ic-punks"
	StandardHTS      StandardID = "hts"
	maxStandardIDLen            = 64
)

// StandardInfo is one entry of an inspectable standard catalog.
type StandardInfo struct {
	ID          StandardID `json:"id"`
	Description string     `json:"description"`
}

var catalogDescriptions = map[StandardID]string{
	StandardDefault: "DIP-721 baseline NFT interface",
	StandardEXT:     "EXT token standard (composite token identifiers, account identifier owners)",
	StandardICPunks: "ICPunks NFT interface (numeric token indices, principal owners)",
	StandardHTS:     "Hedera Token Service non-fungible tokens",
}

// DefaultCatalog returns the standards a default registry is seeded with.
func DefaultCatalog() []StandardInfo {
	ids := []StandardID{StandardDefault, StandardEXT, StandardICPunks}
	catalog := make([]StandardInfo, 0, len(ids))
	for _, id := range ids {
		catalog = append(catalog, StandardInfo{ID: id, Description: Describe(id)})
	}
	return catalog
}

// Describe returns the catalog description for id, or an empty string.
func Describe(id StandardID) string {
	return catalogDescriptions[id]
}

func (id StandardID) String() string {
	return string(id)
}

// Validate performs the requested operation.
func (id StandardID) Validate() error {
	value := string(id)
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("standard ID is required")
	}
	if len(value) > maxStandardIDLen {
		return fmt.Errorf("standard ID %q exceeds %d characters", value, maxStandardIDLen)
	}
	for _, character := range value {
		if (character >= 'a' && character <= 'z') ||
			(character >= '0' && character <= '9') ||
			character == '-' || character == '_' || character == '.' {
			continue
		}
		return fmt.Errorf("standard ID %q contains invalid character %q", value, character)
	}
	return nil
}
