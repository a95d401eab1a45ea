package hts

import (
	"context"
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"

	sdk "github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/tidwall/gjson"

	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/mirror"
	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/nft"
	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/transport/hedera"
)

// Adapter speaks the HTS method surface for one token collection.
type Adapter struct {
	ref nft.ContractRef
}

var _ nft.NFT = (*Adapter)(nil)

// New creates a new Adapter. The contract ID must be a Hedera token ID.
func New(ref nft.ContractRef) (*Adapter, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	if _, err := sdk.TokenIDFromString(ref.ID); err != nil {
		return nil, &nft.Error{
			Kind:     nft.ErrUnsupported,
			Standard: nft.StandardHTS,
			Contract: ref.ID,
			Message:  "contract ID is not a Hedera token ID",
		}
	}
	return &Adapter{ref: ref}, nil
}

// Constructor adapts New to the registry constructor signature.
func Constructor(ref nft.ContractRef) (nft.NFT, error) {
	return New(ref)
}

func (a *Adapter) Standard() nft.StandardID {
	return nft.StandardHTS
}

func (a *Adapter) Contract() nft.ContractRef {
	return a.ref
}

// Owner returns the requested value.
func (a *Adapter) Owner(ctx context.Context, token nft.TokenID) (nft.OwnerRef, error) {
	value, err := a.getNft(ctx, token)
	if err != nil {
		return nft.OwnerRef{}, err
	}
	return nft.AddressOwner(value.Get("account_id").String()), nil
}

// Metadata returns the requested value.
func (a *Adapter) Metadata(ctx context.Context, token nft.TokenID) (nft.TokenMetadata, error) {
	serial, err := a.serial(hedera.MethodGetNft, token)
	if err != nil {
		return nft.TokenMetadata{}, err
	}
	value, err := a.getNft(ctx, token)
	if err != nil {
		return nft.TokenMetadata{}, err
	}

	content, err := mirror.DecodeMetadata(mirror.Nft{Metadata: value.Get("metadata").String()})
	if err != nil {
		return nft.TokenMetadata{}, nft.UnexpectedResult(a.Standard(), a.ref.ID, hedera.MethodGetNft, nft.RawResult(value.Raw))
	}

	metadata := nft.TokenMetadata{
		Standard:    a.Standard(),
		Contract:    a.ref.ID,
		Token:       token,
		Index:       nft.Present(serial),
		Owner:       nft.Present(nft.AddressOwner(value.Get("account_id").String())),
		Name:        nft.Unsupported[string](),
		Description: nft.Unsupported[string](),
		Attributes:  nft.Unsupported[[]nft.Attribute](),
		URI:         nft.Absent[string](),
		Content:     nft.Absent[[]byte](),
	}
	if len(content) > 0 {
		metadata.Content = nft.Present(content)
		if uri, ok := metadataURI(content); ok {
			metadata.URI = nft.Present(uri)
		}
	}
	return metadata, nil
}

// Tokens returns the requested value.
func (a *Adapter) Tokens(ctx context.Context, owner nft.OwnerRef) iter.Seq2[nft.TokenID, error] {
	return nft.LazyTokens(ctx, func(ctx context.Context) ([]nft.TokenID, error) {
		account, err := a.accountArg(hedera.MethodGetAccountNfts, owner)
		if err != nil {
			return nil, err
		}

		raw, err := a.ref.Query(ctx, hedera.MethodGetAccountNfts, account, a.ref.ID)
		if code, ok := nft.RejectionCode(err); ok && code == hedera.StatusNotFound {
			return []nft.TokenID{}, nil
		}
		if err != nil {
			return nil, a.callError(hedera.MethodGetAccountNfts, "", err)
		}

		root := gjson.ParseBytes(raw)
		if !gjson.ValidBytes(raw) || !root.IsArray() {
			return nil, nft.UnexpectedResult(a.Standard(), a.ref.ID, hedera.MethodGetAccountNfts, raw)
		}
		tokens := make([]nft.TokenID, 0)
		for _, entry := range root.Array() {
			if entry.Get("deleted").Bool() {
				continue
			}
			serial := entry.Get("serial_number")
			if serial.Type != gjson.Number || serial.Int() <= 0 {
				return nil, nft.UnexpectedResult(a.Standard(), a.ref.ID, hedera.MethodGetAccountNfts, raw)
			}
			tokens = append(tokens, nft.TokenIndex(serial.Uint()))
		}
		return tokens, nil
	})
}

// Balance returns the requested value.
func (a *Adapter) Balance(ctx context.Context, owner nft.OwnerRef) (uint64, error) {
	return nft.CountTokens(a.Tokens(ctx, owner))
}

// Transfer moves a serial from its owner to request.To. When request.From is
// not the owner it must be the serial's approved spender.
func (a *Adapter) Transfer(ctx context.Context, request nft.TransferRequest) (nft.TransferReceipt, error) {
	serial, err := a.serial(hedera.MethodTransferNft, request.Token)
	if err != nil {
		return nft.TransferReceipt{}, err
	}
	sender, err := a.accountArg(hedera.MethodTransferNft, request.From)
	if err != nil {
		return nft.TransferReceipt{}, err
	}
	recipient, err := a.accountArg(hedera.MethodTransferNft, request.To)
	if err != nil {
		return nft.TransferReceipt{}, err
	}

	value, err := a.getNft(ctx, request.Token)
	if err != nil {
		return nft.TransferReceipt{}, err
	}
	owner := nft.AddressOwner(value.Get("account_id").String())

	approved := false
	if owner.ID != sender {
		if !isSpender(value, sender) {
			return nft.TransferReceipt{}, a.classified(
				nft.ErrUnauthorized,
				hedera.MethodTransferNft,
				request.Token,
				sender+" is neither owner nor approved spender",
			)
		}
		approved = true
	}

	raw, err := a.ref.Update(ctx, hedera.MethodTransferNft, a.ref.ID, serial, owner.ID, recipient, approved)
	if err != nil {
		return nft.TransferReceipt{}, a.callError(hedera.MethodTransferNft, request.Token, err)
	}
	transactionID := gjson.GetBytes(raw, "transaction_id")
	if transactionID.Type != gjson.String || transactionID.String() == "" {
		return nft.TransferReceipt{}, nft.UnexpectedResult(a.Standard(), a.ref.ID, hedera.MethodTransferNft, raw)
	}

	return nft.TransferReceipt{
		Standard:      a.Standard(),
		Contract:      a.ref.ID,
		Token:         request.Token,
		From:          owner,
		To:            request.To,
		TransactionID: nft.Present(transactionID.String()),
	}, nil
}

func (a *Adapter) getNft(ctx context.Context, token nft.TokenID) (gjson.Result, error) {
	serial, err := a.serial(hedera.MethodGetNft, token)
	if err != nil {
		return gjson.Result{}, err
	}

	raw, err := a.ref.Query(ctx, hedera.MethodGetNft, a.ref.ID, serial)
	if err != nil {
		return gjson.Result{}, a.callError(hedera.MethodGetNft, token, err)
	}
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, nft.UnexpectedResult(a.Standard(), a.ref.ID, hedera.MethodGetNft, raw)
	}
	value := gjson.ParseBytes(raw)
	if value.Get("deleted").Bool() {
		return gjson.Result{}, a.classified(nft.ErrNotFound, hedera.MethodGetNft, token, "serial has been burned")
	}
	if value.Get("account_id").String() == "" {
		return gjson.Result{}, nft.UnexpectedResult(a.Standard(), a.ref.ID, hedera.MethodGetNft, raw)
	}
	return value, nil
}

func (a *Adapter) serial(method string, token nft.TokenID) (uint64, error) {
	serial, ok := token.Index()
	if !ok {
		return 0, a.classified(nft.ErrUnsupported, method, token, "HTS tokens are addressed by serial number")
	}
	if serial == 0 || serial > 1<<63-1 {
		return 0, a.classified(nft.ErrNotFound, method, token, "serial numbers start at 1")
	}
	return serial, nil
}

func (a *Adapter) accountArg(method string, owner nft.OwnerRef) (string, error) {
	if owner.Kind != nft.OwnerAddress {
		return "", a.classified(nft.ErrUnsupported, method, "", "HTS owners are Hedera accounts, got "+string(owner.Kind))
	}
	accountID, err := sdk.AccountIDFromString(owner.ID)
	if err != nil {
		return "", a.classified(nft.ErrUnsupported, method, "", "invalid Hedera account ID "+owner.ID)
	}
	return accountID.String(), nil
}

func isSpender(value gjson.Result, account string) bool {
	for _, path := range []string{"spender", "delegating_spender"} {
		if value.Get(path).String() == account {
			return true
		}
	}
	return false
}

// metadataURI reads HIP-412 metadata bytes as a URI. Binary metadata has no
// URI.
func metadataURI(content []byte) (string, bool) {
	if !utf8.Valid(content) {
		return "", false
	}
	text := strings.TrimSpace(string(content))
	if text == "" {
		return "", false
	}
	for _, character := range text {
		if unicode.IsControl(character) || unicode.IsSpace(character) {
			return "", false
		}
	}
	return nft.NormalizeAssetURI(text), true
}

func (a *Adapter) callError(method string, token nft.TokenID, err error) error {
	code, ok := nft.RejectionCode(err)
	if ok {
		switch code {
		case hedera.StatusInvalidNftID, hedera.StatusInvalidTokenID, hedera.StatusNotFound:
			return a.classified(nft.ErrNotFound, method, token, code)
		case hedera.StatusSenderDoesNotOwnNftSerialNo, hedera.StatusSpenderDoesNotHaveAllowance:
			return a.classified(nft.ErrUnauthorized, method, token, code)
		}
	}
	return nft.NewRemoteError(a.Standard(), a.ref.ID, method, err)
}

func (a *Adapter) classified(kind error, method string, token nft.TokenID, message string) error {
	return &nft.Error{
		Kind:     kind,
		Standard: a.Standard(),
		Contract: a.ref.ID,
		Method:   method,
		Token:    token,
		Message:  message,
	}
}
