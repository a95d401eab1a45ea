package mirror

const TokenTypeNonFungibleUnique = "NON_FUNGIBLE_UNIQUE"

type TokenInfo struct {
	TokenID           string `json:"token_id"`
	Name              string `json:"name"`
	Symbol            string `json:"symbol"`
	Type              string `json:"type"`
	Memo              string `json:"memo"`
	TotalSupply       string `json:"total_supply"`
	MaxSupply         string `json:"max_supply"`
	TreasuryAccountID string `json:"treasury_account_id"`
	Deleted           bool   `json:"deleted"`
	CreatedTimestamp  string `json:"created_timestamp"`
}

type Nft struct {
	AccountID         string  `json:"account_id"`
	CreatedTimestamp  string  `json:"created_timestamp"`
	DelegatingSpender *string `json:"delegating_spender"`
	Deleted           bool    `json:"deleted"`
	Metadata          string  `json:"metadata"`
	ModifiedTimestamp string  `json:"modified_timestamp"`
	SerialNumber      int64   `json:"serial_number"`
	Spender           *string `json:"spender"`
	TokenID           string  `json:"token_id"`
}

type nftsResponse struct {
	Nfts  []Nft `json:"nfts"`
	Links struct {
		Next string `json:"next"`
	} `json:"links"`
}
