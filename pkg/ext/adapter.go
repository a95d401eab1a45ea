package ext

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"math"
	"strings"

	"github.com/hashgraph-online/nft-standards-sdk-go/internal/candid"
	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/nft"
	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/principal"
)

const (
	methodBearer     = "bearer"
	methodMetadata   = "metadata"
	methodTokens     = "tokens"
	methodTransfer   = "transfer"
	methodAllowance  = "allowance"
	methodExtensions = "extensions"

	DefaultAssetHost = "raw.icp0.io"
)

type Options struct {
	// AssetHost is the domain suffix serving canister assets.
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
	if err := principal.Validate(ref.ID); err != nil {
		return nil, fmt.Errorf("EXT contracts are addressed by canister principal: %w", err)
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
	return nft.StandardEXT
}

func (a *Adapter) Contract() nft.ContractRef {
	return a.ref
}

// Owner returns the account identifier holding the token.
func (a *Adapter) Owner(ctx context.Context, token nft.TokenID) (nft.OwnerRef, error) {
	identifier, _, err := a.tokenIdentifier(methodBearer, token)
	if err != nil {
		return nft.OwnerRef{}, err
	}
	return a.bearer(ctx, token, identifier)
}

func (a *Adapter) bearer(ctx context.Context, token nft.TokenID, identifier string) (nft.OwnerRef, error) {
	raw, err := a.ref.Query(ctx, methodBearer, identifier)
	if err != nil {
		return nft.OwnerRef{}, a.remoteError(methodBearer, err)
	}
	value, err := a.unwrap(methodBearer, token, raw)
	if err != nil {
		return nft.OwnerRef{}, err
	}

	accountText, ok := candid.Text(value)
	if !ok {
		return nft.OwnerRef{}, nft.UnexpectedResult(a.Standard(), a.ref.ID, methodBearer, raw)
	}
	account, err := principal.ParseAccountIdentifier(accountText)
	if err != nil {
		return nft.OwnerRef{}, nft.UnexpectedResult(a.Standard(), a.ref.ID, methodBearer, raw)
	}
	return nft.AccountOwner(account), nil
}

// Metadata returns the requested value.
func (a *Adapter) Metadata(ctx context.Context, token nft.TokenID) (nft.TokenMetadata, error) {
	identifier, index, err := a.tokenIdentifier(methodMetadata, token)
	if err != nil {
		return nft.TokenMetadata{}, err
	}

	owner, err := a.bearer(ctx, token, identifier)
	if err != nil {
		return nft.TokenMetadata{}, err
	}

	raw, err := a.ref.Query(ctx, methodMetadata, identifier)
	if err != nil {
		return nft.TokenMetadata{}, a.remoteError(methodMetadata, err)
	}
	value, err := a.unwrap(methodMetadata, token, raw)
	if err != nil {
		return nft.TokenMetadata{}, err
	}

	kind, payload, ok := candid.Variant(value)
	if !ok {
		return nft.TokenMetadata{}, nft.UnexpectedResult(a.Standard(), a.ref.ID, methodMetadata, raw)
	}
	if kind != "nonfungible" {
		return nft.TokenMetadata{}, a.classified(nft.ErrUnsupported, methodMetadata, token, "token is "+kind)
	}

	content := nft.Absent[[]byte]()
	blobValue, present, ok := candid.Opt(payload.Get("metadata"))
	if !ok {
		return nft.TokenMetadata{}, nft.UnexpectedResult(a.Standard(), a.ref.ID, methodMetadata, raw)
	}
	if present {
		blob, ok := candid.Blob(blobValue)
		if !ok {
			return nft.TokenMetadata{}, nft.UnexpectedResult(a.Standard(), a.ref.ID, methodMetadata, raw)
		}
		content = nft.Present(blob)
	}

	return nft.TokenMetadata{
		Standard:    a.Standard(),
		Contract:    a.ref.ID,
		Token:       token,
		Index:       nft.Present(uint64(index)),
		Owner:       nft.Present(owner),
		Name:        nft.Unsupported[string](),
		Description: nft.Unsupported[string](),
		URI:         nft.Present(a.assetURI(identifier)),
		Attributes:  nft.Unsupported[[]nft.Attribute](),
		Content:     content,
	}, nil
}

// Tokens lists the composite identifiers held by owner.
func (a *Adapter) Tokens(ctx context.Context, owner nft.OwnerRef) iter.Seq2[nft.TokenID, error] {
	return nft.LazyTokens(ctx, func(ctx context.Context) ([]nft.TokenID, error) {
		account, err := a.accountArg(methodTokens, owner)
		if err != nil {
			return nil, err
		}

		raw, err := a.ref.Query(ctx, methodTokens, account)
		if err != nil {
			return nil, a.remoteError(methodTokens, err)
		}
		root, ok := candid.Parse(raw)
		if !ok {
			return nil, nft.UnexpectedResult(a.Standard(), a.ref.ID, methodTokens, raw)
		}
		if tag, payload, ok := candid.Variant(root); ok && tag == tagErr {
			if errTag, message, _ := candid.Variant(payload); errTag == errOther && strings.EqualFold(message.Str, noTokensMessage) {
				return []nft.TokenID{}, nil
			}
		}

		value, err := a.unwrap(methodTokens, "", raw)
		if err != nil {
			return nil, err
		}
		indices, ok := candid.NatList(value)
		if !ok {
			return nil, nft.UnexpectedResult(a.Standard(), a.ref.ID, methodTokens, raw)
		}

		tokens := make([]nft.TokenID, 0, len(indices))
		for _, index := range indices {
			if index > math.MaxUint32 {
				return nil, nft.UnexpectedResult(a.Standard(), a.ref.ID, methodTokens, raw)
			}
			identifier, err := principal.EncodeTokenIdentifier(a.ref.ID, uint32(index))
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, nft.TokenID(identifier))
		}
		return tokens, nil
	})
}

// Balance returns the requested value.
func (a *Adapter) Balance(ctx context.Context, owner nft.OwnerRef) (uint64, error) {
	return nft.CountTokens(a.Tokens(ctx, owner))
}

// Transfer performs the requested operation.
func (a *Adapter) Transfer(ctx context.Context, request nft.TransferRequest) (nft.TransferReceipt, error) {
	identifier, _, err := a.tokenIdentifier(methodTransfer, request.Token)
	if err != nil {
		return nft.TransferReceipt{}, err
	}
	if _, err := a.accountArg(methodTransfer, request.From); err != nil {
		return nft.TransferReceipt{}, err
	}
	recipient, err := a.userArg(methodTransfer, request.To)
	if err != nil {
		return nft.TransferReceipt{}, err
	}

	owner, err := a.bearer(ctx, request.Token, identifier)
	if err != nil {
		return nft.TransferReceipt{}, err
	}
	if !owner.Equal(request.From) {
		approved, err := a.hasAllowance(ctx, owner, request.From, identifier)
		if err != nil {
			return nft.TransferReceipt{}, err
		}
		if !approved {
			return nft.TransferReceipt{}, a.classified(
				nft.ErrUnauthorized,
				methodTransfer,
				request.Token,
				request.From.String()+" is neither bearer nor approved spender",
			)
		}
	}

	raw, err := a.ref.Update(ctx, methodTransfer, map[string]any{
		"from":       userValue(owner),
		"to":         recipient,
		"token":      identifier,
		"amount":     1,
		"memo":       []any{},
		"notify":     false,
		"subaccount": []any{},
	})
	if err != nil {
		return nft.TransferReceipt{}, a.remoteError(methodTransfer, err)
	}
	if _, err := a.unwrap(methodTransfer, request.Token, raw); err != nil {
		return nft.TransferReceipt{}, err
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

func (a *Adapter) hasAllowance(ctx context.Context, owner nft.OwnerRef, spender nft.OwnerRef, identifier string) (bool, error) {
	if spender.Kind != nft.OwnerPrincipal {
		return false, nil
	}

	raw, err := a.ref.Query(ctx, methodAllowance, map[string]any{
		"owner":   userValue(owner),
		"spender": spender.ID,
		"token":   identifier,
	})
	if nft.IsMethodNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, a.remoteError(methodAllowance, err)
	}

	value, err := a.unwrap(methodAllowance, "", raw)
	if err != nil {
		if errors.Is(err, nft.ErrRemote) {
			return false, err
		}
		return false, nil
	}
	allowance, ok := candid.Nat(value)
	if !ok {
		return false, nft.UnexpectedResult(a.Standard(), a.ref.ID, methodAllowance, raw)
	}
	return allowance > 0, nil
}

// tokenIdentifier resolves a TokenID to the composite identifier of a token
// in the bound canister.
func (a *Adapter) tokenIdentifier(method string, token nft.TokenID) (string, uint32, error) {
	if index, ok := token.Index(); ok {
		if index > math.MaxUint32 {
			return "", 0, a.classified(nft.ErrNotFound, method, token, "EXT token indices are 32-bit")
		}
		identifier, err := principal.EncodeTokenIdentifier(a.ref.ID, uint32(index))
		if err != nil {
			return "", 0, err
		}
		return identifier, uint32(index), nil
	}

	canister, index, err := principal.DecodeTokenIdentifier(string(token))
	if err != nil {
		return "", 0, a.classified(nft.ErrUnsupported, method, token, err.Error())
	}
	if canister != a.ref.ID {
		return "", 0, a.classified(nft.ErrNotFound, method, token, "identifier belongs to contract "+canister)
	}
	return strings.ToLower(strings.TrimSpace(string(token))), index, nil
}

func (a *Adapter) accountArg(method string, owner nft.OwnerRef) (string, error) {
	account, err := owner.AccountIdentifier()
	if err != nil {
		return "", a.classified(nft.ErrUnsupported, method, "", err.Error())
	}
	return account, nil
}

func (a *Adapter) userArg(method string, owner nft.OwnerRef) (map[string]any, error) {
	switch owner.Kind {
	case nft.OwnerPrincipal:
		if err := principal.Validate(owner.ID); err != nil {
			return nil, a.classified(nft.ErrUnsupported, method, "", err.Error())
		}
	case nft.OwnerAccountIdentifier:
		if _, err := principal.ParseAccountIdentifier(owner.ID); err != nil {
			return nil, a.classified(nft.ErrUnsupported, method, "", err.Error())
		}
	default:
		return nil, a.classified(nft.ErrUnsupported, method, "", "EXT users are principals or account identifiers")
	}
	return userValue(owner), nil
}

// userValue renders the EXT User variant.
func userValue(owner nft.OwnerRef) map[string]any {
	if owner.Kind == nft.OwnerPrincipal {
		return map[string]any{"principal": owner.ID}
	}
	return map[string]any{"address": owner.ID}
}

func (a *Adapter) assetURI(identifier string) string {
	return fmt.Sprintf("https://%s.%s/?tokenid=%s", a.ref.ID, a.assetHost, identifier)
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
