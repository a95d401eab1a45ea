package icpunks

import (
	"context"
	"iter"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/hashgraph-online/nft-standards-sdk-go/internal/candid"
	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/nft"
	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/principal"
)

const (
	methodOwnerOf    = "owner_of"
	methodDataOf     = "data_of"
	methodUserTokens = "user_tokens"
	methodTransferTo = "transfer_to"

	DefaultAssetHost = "raw.icp0.io"
)

type Options struct {
	// AssetHost is the domain suffix used to resolve relative token URLs.
	AssetHost string
}

type Adapter struct {
	ref       nft.ContractRef
	assetHost string
}

var _ nft.NFT = (*Adapter)(nil)

// New creates a new Adapter.
func New(ref nft.ContractRef) (*Adapter, error) {
	return NewWithOptions(ref, Options{})
}

// NewWithOptions creates a new Adapter.
func NewWithOptions(ref nft.ContractRef, options Options) (*Adapter, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	assetHost := strings.Trim(strings.TrimSpace(options.AssetHost), "./")
	if assetHost == "" {
		assetHost = DefaultAssetHost
	}
	return &Adapter{ref: ref, assetHost: assetHost}, nil
}

// Constructor returns a constructor that applies options to every adapter.
func Constructor(options Options) func(nft.ContractRef) (nft.NFT, error) {
	return func(ref nft.ContractRef) (nft.NFT, error) {
		return NewWithOptions(ref, options)
	}
}

func (a *Adapter) Standard() nft.StandardID {
	return nft.StandardICPunks
}

func (a *Adapter) Contract() nft.ContractRef {
	return a.ref
}

// Owner returns the requested value.
func (a *Adapter) Owner(ctx context.Context, token nft.TokenID) (nft.OwnerRef, error) {
	index, err := a.tokenIndex(methodOwnerOf, token)
	if err != nil {
		return nft.OwnerRef{}, err
	}

	raw, err := a.ref.Query(ctx, methodOwnerOf, index)
	if err != nil {
		return nft.OwnerRef{}, a.remoteError(methodOwnerOf, err)
	}
	root, ok := candid.Parse(raw)
	if !ok {
		return nft.OwnerRef{}, nft.UnexpectedResult(a.Standard(), a.ref.ID, methodOwnerOf, raw)
	}
	owner, ok := candid.Principal(root)
	if !ok {
		return nft.OwnerRef{}, nft.UnexpectedResult(a.Standard(), a.ref.ID, methodOwnerOf, raw)
	}
	return nft.PrincipalOwner(owner), nil
}

// Metadata returns the requested value.
func (a *Adapter) Metadata(ctx context.Context, token nft.TokenID) (nft.TokenMetadata, error) {
	index, err := a.tokenIndex(methodDataOf, token)
	if err != nil {
		return nft.TokenMetadata{}, err
	}

	raw, err := a.ref.Query(ctx, methodDataOf, index)
	if err != nil {
		return nft.TokenMetadata{}, a.remoteError(methodDataOf, err)
	}
	desc, ok := candid.Parse(raw)
	if !ok || !desc.IsObject() {
		return nft.TokenMetadata{}, nft.UnexpectedResult(a.Standard(), a.ref.ID, methodDataOf, raw)
	}

	id, ok := candid.Nat(desc.Get("id"))
	if !ok {
		return nft.TokenMetadata{}, nft.UnexpectedResult(a.Standard(), a.ref.ID, methodDataOf, raw)
	}
	if id != index {
		return nft.TokenMetadata{}, nft.UnexpectedResult(a.Standard(), a.ref.ID, methodDataOf, raw)
	}
	owner, ok := candid.Principal(desc.Get("owner"))
	if !ok {
		return nft.TokenMetadata{}, nft.UnexpectedResult(a.Standard(), a.ref.ID, methodDataOf, raw)
	}
	attributes, ok := decodeProperties(desc.Get("properties"))
	if !ok {
		return nft.TokenMetadata{}, nft.UnexpectedResult(a.Standard(), a.ref.ID, methodDataOf, raw)
	}

	return nft.TokenMetadata{
		Standard:    a.Standard(),
		Contract:    a.ref.ID,
		Token:       token,
		Index:       nft.Present(index),
		Owner:       nft.Present(nft.PrincipalOwner(owner)),
		Name:        textField(desc.Get("name")),
		Description: textField(desc.Get("desc")),
		URI:         a.uriField(desc.Get("url")),
		Attributes:  nft.Present(attributes),
		Content:     nft.Unsupported[[]byte](),
	}, nil
}

// Tokens returns the requested value.
func (a *Adapter) Tokens(ctx context.Context, owner nft.OwnerRef) iter.Seq2[nft.TokenID, error] {
	return nft.LazyTokens(ctx, func(ctx context.Context) ([]nft.TokenID, error) {
		holder, err := a.principalArg(methodUserTokens, owner)
		if err != nil {
			return nil, err
		}

		raw, err := a.ref.Query(ctx, methodUserTokens, holder)
		if err != nil {
			return nil, a.remoteError(methodUserTokens, err)
		}
		root, ok := candid.Parse(raw)
		if !ok {
			return nil, nft.UnexpectedResult(a.Standard(), a.ref.ID, methodUserTokens, raw)
		}
		indices, ok := candid.NatList(root)
		if !ok {
			return nil, nft.UnexpectedResult(a.Standard(), a.ref.ID, methodUserTokens, raw)
		}

		tokens := make([]nft.TokenID, 0, len(indices))
		for _, index := range indices {
			tokens = append(tokens, nft.TokenIndex(index))
		}
		return tokens, nil
	})
}

// Balance returns the requested value.
func (a *Adapter) Balance(ctx context.Context, owner nft.OwnerRef) (uint64, error) {
	return nft.CountTokens(a.Tokens(ctx, owner))
}

// Transfer moves a token owned by request.From. ICPunks has no operator
// approvals, so only the owner may transfer.
func (a *Adapter) Transfer(ctx context.Context, request nft.TransferRequest) (nft.TransferReceipt, error) {
	index, err := a.tokenIndex(methodTransferTo, request.Token)
	if err != nil {
		return nft.TransferReceipt{}, err
	}
	if _, err := a.principalArg(methodTransferTo, request.From); err != nil {
		return nft.TransferReceipt{}, err
	}
	recipient, err := a.principalArg(methodTransferTo, request.To)
	if err != nil {
		return nft.TransferReceipt{}, err
	}

	owner, err := a.Owner(ctx, request.Token)
	if err != nil {
		return nft.TransferReceipt{}, err
	}
	if !owner.Equal(request.From) {
		return nft.TransferReceipt{}, a.classified(
			nft.ErrUnauthorized,
			methodTransferTo,
			request.Token,
			request.From.String()+" does not own the token",
		)
	}

	raw, err := a.ref.Update(ctx, methodTransferTo, recipient, index)
	if err != nil {
		return nft.TransferReceipt{}, a.remoteError(methodTransferTo, err)
	}
	root, ok := candid.Parse(raw)
	if !ok || (root.Type != gjson.True && root.Type != gjson.False) {
		return nft.TransferReceipt{}, nft.UnexpectedResult(a.Standard(), a.ref.ID, methodTransferTo, raw)
	}
	if !root.Bool() {
		return nft.TransferReceipt{}, a.classified(nft.ErrUnauthorized, methodTransferTo, request.Token, "contract refused the transfer")
	}

	return nft.TransferReceipt{
		Standard:      a.Standard(),
		Contract:      a.ref.ID,
		Token:         request.Token,
		From:          owner,
		To:            request.To,
		TransactionID: nft.Unsupported[string](),
	}, nil
}

func (a *Adapter) tokenIndex(method string, token nft.TokenID) (uint64, error) {
	if index, ok := token.Index(); ok {
		return index, nil
	}

	canister, index, err := principal.DecodeTokenIdentifier(string(token))
	if err != nil || canister != a.ref.ID {
		return 0, a.classified(nft.ErrUnsupported, method, token, "ICPunks tokens are addressed by index")
	}
	return uint64(index), nil
}

func (a *Adapter) principalArg(method string, owner nft.OwnerRef) (string, error) {
	if owner.Kind != nft.OwnerPrincipal {
		return "", a.classified(nft.ErrUnsupported, method, "", "ICPunks owners are principals")
	}
	if err := principal.Validate(owner.ID); err != nil {
		return "", a.classified(nft.ErrUnsupported, method, "", err.Error())
	}
	return owner.ID, nil
}

func (a *Adapter) uriField(value gjson.Result) nft.Field[string] {
	text, ok := candid.Text(value)
	text = strings.TrimSpace(text)
	if !ok || text == "" {
		return nft.Absent[string]()
	}
	if strings.HasPrefix(text, "/") && !strings.HasPrefix(text, "/ipfs/") {
		return nft.Present("https://" + a.ref.ID + "." + a.assetHost + text)
	}
	return nft.Present(nft.NormalizeAssetURI(text))
}

func textField(value gjson.Result) nft.Field[string] {
	text, ok := candid.Text(value)
	if !ok || text == "" {
		return nft.Absent[string]()
	}
	return nft.Present(text)
}

// decodeProperties reads vec Property { name : text; value : text }.
func decodeProperties(value gjson.Result) ([]nft.Attribute, bool) {
	if !value.Exists() || value.Type == gjson.Null {
		return []nft.Attribute{}, true
	}
	if !value.IsArray() {
		return nil, false
	}

	elements := value.Array()
	attributes := make([]nft.Attribute, 0, len(elements))
	for _, element := range elements {
		name, ok := candid.Text(element.Get("name"))
		if !ok {
			return nil, false
		}
		propertyValue := element.Get("value")
		rendered := propertyValue.String()
		if propertyValue.Type == gjson.Number {
			rendered = strconv.FormatFloat(propertyValue.Num, 'f', -1, 64)
		}
		attributes = append(attributes, nft.Attribute{Key: name, Value: rendered})
	}
	return attributes, true
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

func (a *Adapter) remoteError(method string, err error) error {
	return nft.NewRemoteError(a.Standard(), a.ref.ID, method, err)
}
