package dip721

import (
	"context"
	"errors"
	"iter"
	"strconv"

	"github.com/hashgraph-online/nft-standards-sdk-go/internal/candid"
	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/nft"
	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/principal"
)

const (
	methodOwnerOf               = "ownerOf"
	methodTokenMetadata         = "tokenMetadata"
	methodOwnerTokenIdentifiers = "ownerTokenIdentifiers"
	methodBalanceOf             = "balanceOf"
	methodTransferFrom          = "transferFrom"
	methodIsApprovedForAll      = "isApprovedForAll"
	methodOperatorOf            = "operatorOf"
	methodSupportedInterfaces   = "supportedInterfaces"
)

// Adapter speaks DIP-721 to one contract.
type Adapter struct {
	ref nft.ContractRef
}

var _ nft.NFT = (*Adapter)(nil)

// New creates a new Adapter.
func New(ref nft.ContractRef) (*Adapter, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	return &Adapter{ref: ref}, nil
}

func (a *Adapter) Standard() nft.StandardID {
	return nft.StandardDefault
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
	value, err := a.unwrap(methodOwnerOf, token, raw)
	if err != nil {
		return nft.OwnerRef{}, err
	}

	ownerValue, present, ok := candid.Opt(value)
	if !ok {
		return nft.OwnerRef{}, nft.UnexpectedResult(a.Standard(), a.ref.ID, methodOwnerOf, raw)
	}
	if !present {
		return nft.OwnerRef{}, a.classified(nft.ErrNotFound, methodOwnerOf, token, "token has no owner")
	}
	owner, ok := candid.Principal(ownerValue)
	if !ok {
		return nft.OwnerRef{}, nft.UnexpectedResult(a.Standard(), a.ref.ID, methodOwnerOf, raw)
	}
	return nft.PrincipalOwner(owner), nil
}

// Metadata returns the requested value.
func (a *Adapter) Metadata(ctx context.Context, token nft.TokenID) (nft.TokenMetadata, error) {
	index, err := a.tokenIndex(methodTokenMetadata, token)
	if err != nil {
		return nft.TokenMetadata{}, err
	}

	raw, err := a.ref.Query(ctx, methodTokenMetadata, index)
	if err != nil {
		return nft.TokenMetadata{}, a.remoteError(methodTokenMetadata, err)
	}
	value, err := a.unwrap(methodTokenMetadata, token, raw)
	if err != nil {
		return nft.TokenMetadata{}, err
	}

	metadata, ok := decodeTokenMetadata(value, index)
	if !ok {
		return nft.TokenMetadata{}, nft.UnexpectedResult(a.Standard(), a.ref.ID, methodTokenMetadata, raw)
	}
	metadata.Standard = a.Standard()
	metadata.Contract = a.ref.ID
	metadata.Token = token
	return metadata, nil
}

// Tokens returns the requested value.
func (a *Adapter) Tokens(ctx context.Context, owner nft.OwnerRef) iter.Seq2[nft.TokenID, error] {
	return nft.LazyTokens(ctx, func(ctx context.Context) ([]nft.TokenID, error) {
		ownerPrincipal, err := a.principalArg(methodOwnerTokenIdentifiers, owner)
		if err != nil {
			return nil, err
		}

		raw, err := a.ref.Query(ctx, methodOwnerTokenIdentifiers, ownerPrincipal)
		if err != nil {
			return nil, a.remoteError(methodOwnerTokenIdentifiers, err)
		}
		root, ok := candid.Parse(raw)
		if !ok {
			return nil, nft.UnexpectedResult(a.Standard(), a.ref.ID, methodOwnerTokenIdentifiers, raw)
		}
		if _, errTag, isErr := resultError(root); isErr && errTag == errOwnerNotFound {
			return []nft.TokenID{}, nil
		}

		value, err := a.unwrap(methodOwnerTokenIdentifiers, "", raw)
		if err != nil {
			return nil, err
		}
		indices, ok := candid.NatList(value)
		if !ok {
			return nil, nft.UnexpectedResult(a.Standard(), a.ref.ID, methodOwnerTokenIdentifiers, raw)
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
	ownerPrincipal, err := a.principalArg(methodBalanceOf, owner)
	if err != nil {
		return 0, err
	}

	raw, err := a.ref.Query(ctx, methodBalanceOf, ownerPrincipal)
	if err != nil {
		return 0, a.remoteError(methodBalanceOf, err)
	}
	root, ok := candid.Parse(raw)
	if !ok {
		return 0, nft.UnexpectedResult(a.Standard(), a.ref.ID, methodBalanceOf, raw)
	}
	if _, errTag, isErr := resultError(root); isErr && errTag == errOwnerNotFound {
		return 0, nil
	}

	value, err := a.unwrap(methodBalanceOf, "", raw)
	if err != nil {
		return 0, err
	}
	balance, ok := candid.Nat(value)
	if !ok {
		return 0, nft.UnexpectedResult(a.Standard(), a.ref.ID, methodBalanceOf, raw)
	}
	return balance, nil
}

// Transfer performs the requested operation.
func (a *Adapter) Transfer(ctx context.Context, request nft.TransferRequest) (nft.TransferReceipt, error) {
	index, err := a.tokenIndex(methodTransferFrom, request.Token)
	if err != nil {
		return nft.TransferReceipt{}, err
	}
	caller, err := a.principalArg(methodTransferFrom, request.From)
	if err != nil {
		return nft.TransferReceipt{}, err
	}
	recipient, err := a.principalArg(methodTransferFrom, request.To)
	if err != nil {
		return nft.TransferReceipt{}, err
	}

	owner, err := a.Owner(ctx, request.Token)
	if err != nil {
		return nft.TransferReceipt{}, err
	}
	if !owner.Equal(request.From) {
		approved, err := a.isOperator(ctx, owner.ID, caller, index)
		if err != nil {
			return nft.TransferReceipt{}, err
		}
		if !approved {
			return nft.TransferReceipt{}, a.classified(
				nft.ErrUnauthorized,
				methodTransferFrom,
				request.Token,
				caller+" is neither owner nor operator",
			)
		}
	}

	raw, err := a.ref.Update(ctx, methodTransferFrom, owner.ID, recipient, index)
	if err != nil {
		return nft.TransferReceipt{}, a.remoteError(methodTransferFrom, err)
	}
	value, err := a.unwrap(methodTransferFrom, request.Token, raw)
	if err != nil {
		return nft.TransferReceipt{}, err
	}
	transactionID, ok := candid.Nat(value)
	if !ok {
		return nft.TransferReceipt{}, nft.UnexpectedResult(a.Standard(), a.ref.ID, methodTransferFrom, raw)
	}

	return nft.TransferReceipt{
		Standard:      a.Standard(),
		Contract:      a.ref.ID,
		Token:         request.Token,
		From:          owner,
		To:            request.To,
		TransactionID: nft.Present(strconv.FormatUint(transactionID, 10)),
	}, nil
}

// isOperator reports whether operator may move the token for owner. A
// classified Err answer means no approval; anything unclassifiable is
// returned as a remote error.
func (a *Adapter) isOperator(ctx context.Context, owner string, operator string, index uint64) (bool, error) {
	raw, err := a.ref.Query(ctx, methodIsApprovedForAll, owner, operator)
	switch {
	case nft.IsMethodNotFound(err):
	case err != nil:
		return false, a.remoteError(methodIsApprovedForAll, err)
	default:
		value, err := a.unwrap(methodIsApprovedForAll, "", raw)
		if err != nil {
			if errors.Is(err, nft.ErrRemote) {
				return false, err
			}
			break
		}
		if !value.IsBool() {
			return false, nft.UnexpectedResult(a.Standard(), a.ref.ID, methodIsApprovedForAll, raw)
		}
		if value.Bool() {
			return true, nil
		}
	}

	raw, err = a.ref.Query(ctx, methodOperatorOf, index)
	if nft.IsMethodNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, a.remoteError(methodOperatorOf, err)
	}
	value, err := a.unwrap(methodOperatorOf, nft.TokenIndex(index), raw)
	if err != nil {
		if errors.Is(err, nft.ErrRemote) {
			return false, err
		}
		return false, nil
	}
	operatorValue, present, ok := candid.Opt(value)
	if !ok {
		return false, nft.UnexpectedResult(a.Standard(), a.ref.ID, methodOperatorOf, raw)
	}
	if !present {
		return false, nil
	}
	current, ok := candid.Principal(operatorValue)
	if !ok {
		return false, nft.UnexpectedResult(a.Standard(), a.ref.ID, methodOperatorOf, raw)
	}
	return current == operator, nil
}

func (a *Adapter) tokenIndex(method string, token nft.TokenID) (uint64, error) {
	if index, ok := token.Index(); ok {
		return index, nil
	}

	canister, index, err := principal.DecodeTokenIdentifier(string(token))
	if err != nil {
		return 0, a.classified(nft.ErrUnsupported, method, token, "DIP-721 tokens are addressed by numeric index")
	}
	if canister != a.ref.ID {
		return 0, a.classified(nft.ErrNotFound, method, token, "identifier belongs to contract "+canister)
	}
	return uint64(index), nil
}

func (a *Adapter) principalArg(method string, owner nft.OwnerRef) (string, error) {
	if owner.Kind != nft.OwnerPrincipal {
		return "", a.classified(nft.ErrUnsupported, method, "", "DIP-721 owners are principals, got "+string(owner.Kind))
	}
	if err := principal.Validate(owner.ID); err != nil {
		return "", a.classified(nft.ErrUnsupported, method, "", err.Error())
	}
	return owner.ID, nil
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
