package dip721

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/nft"
	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/nft/nfttest"
	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/principal"
)

var (
	canister = principal.Encode([]byte{0, 0, 0, 0, 0, 0xe0, 0, 0x01, 0x01, 0x01})
	alice    = principal.Encode([]byte{0xa1, 0x1c, 0xe0, 0x01})
	bob      = principal.Encode([]byte{0xb0, 0xb0, 0x00, 0x02})
	carol    = principal.Encode([]byte{0xca, 0x70, 0x10, 0x03})
)

func newAdapter(t *testing.T, caller *nfttest.Caller) *Adapter {
	t.Helper()
	ref, err := nft.NewContractRef(canister, caller)
	require.NoError(t, err)
	adapter, err := New(ref)
	require.NoError(t, err)
	return adapter
}

func ownerOfAlice() nfttest.Handler {
	return func(request nft.CallRequest) (nft.RawResult, error) {
		if request.Args[0] == uint64(1) {
			return nft.RawResult(`{"Ok":["` + alice + `"]}`), nil
		}
		return nft.RawResult(`{"Err":{"TokenNotFound":null}}`), nil
	}
}

func TestNewRequiresCaller(t *testing.T) {
	_, err := New(nft.ContractRef{ID: canister})
	require.Error(t, err)
}

func TestOwner(t *testing.T) {
	caller := nfttest.NewCaller().Handle(methodOwnerOf, ownerOfAlice())
	adapter := newAdapter(t, caller)

	owner, err := adapter.Owner(context.Background(), "1")
	require.NoError(t, err)
	require.Equal(t, nft.PrincipalOwner(alice), owner)

	calls := caller.CallsTo(methodOwnerOf)
	require.Len(t, calls, 1)
	require.Equal(t, nft.CallQuery, calls[0].Kind)
	require.Equal(t, []any{uint64(1)}, calls[0].Args)

	_, err = adapter.Owner(context.Background(), "2")
	require.ErrorIs(t, err, nft.ErrNotFound)
}

func TestOwnerAcceptsCompositeIdentifierForSameContract(t *testing.T) {
	caller := nfttest.NewCaller().Handle(methodOwnerOf, ownerOfAlice())
	adapter := newAdapter(t, caller)

	identifier, err := principal.EncodeTokenIdentifier(canister, 1)
	require.NoError(t, err)
	owner, err := adapter.Owner(context.Background(), nft.TokenID(identifier))
	require.NoError(t, err)
	require.Equal(t, alice, owner.ID)

	foreign, err := principal.EncodeTokenIdentifier(alice, 1)
	require.NoError(t, err)
	_, err = adapter.Owner(context.Background(), nft.TokenID(foreign))
	require.ErrorIs(t, err, nft.ErrNotFound)

	_, err = adapter.Owner(context.Background(), "not-an-index")
	require.ErrorIs(t, err, nft.ErrUnsupported)
	require.Len(t, caller.Calls(), 1)
}

func TestOwnerBurnedTokenIsNotFound(t *testing.T) {
	caller := nfttest.NewCaller().Return(methodOwnerOf, `{"Ok":[]}`)
	_, err := newAdapter(t, caller).Owner(context.Background(), "9")
	require.ErrorIs(t, err, nft.ErrNotFound)
}

func TestOwnerWrapsTransportFailure(t *testing.T) {
	boom := errors.New("connection reset")
	caller := nfttest.NewCaller().Fail(methodOwnerOf, boom)

	_, err := newAdapter(t, caller).Owner(context.Background(), "1")
	require.ErrorIs(t, err, nft.ErrRemote)
	require.ErrorIs(t, err, boom)
}

func TestOwnerUnclassifiedErrorKeepsPayload(t *testing.T) {
	caller := nfttest.NewCaller().Return(methodOwnerOf, `{"Err":{"Other":"ledger paused"}}`)

	_, err := newAdapter(t, caller).Owner(context.Background(), "1")
	require.ErrorIs(t, err, nft.ErrRemote)
	var remote *nft.RemoteError
	require.True(t, errors.As(err, &remote))
	require.Contains(t, string(remote.Payload), "ledger paused")
}

func TestMetadata(t *testing.T) {
	caller := nfttest.NewCaller().Return(methodTokenMetadata, `{"Ok":{
		"token_identifier": 1,
		"owner": ["`+alice+`"],
		"properties": [
			["name", {"TextContent": "Genesis"}],
			["location", {"TextContent": "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"}],
			["rarity", {"NatContent": "7"}],
			["animated", {"BoolContent": false}]
		]
	}}`)
	adapter := newAdapter(t, caller)

	metadata, err := adapter.Metadata(context.Background(), "1")
	require.NoError(t, err)
	require.Equal(t, nft.StandardDefault, metadata.Standard)
	require.Equal(t, canister, metadata.Contract)

	name, ok := metadata.Name.Get()
	require.True(t, ok)
	require.Equal(t, "Genesis", name)

	uri, ok := metadata.URI.Get()
	require.True(t, ok)
	require.Equal(t, "ipfs://QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG", uri)

	require.Equal(t, nft.FieldAbsent, metadata.Description.Status)
	require.Equal(t, nft.FieldUnsupported, metadata.Content.Status)

	attributes, ok := metadata.Attributes.Get()
	require.True(t, ok)
	require.Contains(t, attributes, nft.Attribute{Key: "rarity", Value: "7"})
	require.Contains(t, attributes, nft.Attribute{Key: "animated", Value: "false"})

	again, err := adapter.Metadata(context.Background(), "1")
	require.NoError(t, err)
	require.Equal(t, metadata, again)
	require.Len(t, caller.Calls(), 2)
}

func TestMetadataIsIdempotent(t *testing.T) {
	caller := nfttest.NewCaller().Return(methodTokenMetadata, `{"Ok":{
		"token_identifier": 1,
		"owner": ["`+alice+`"],
		"properties": [["name", {"TextContent": "Genesis"}], ["location", {"TextContent": "https://example.com/1.png"}]]
	}}`)
	adapter := newAdapter(t, caller)

	first, err := adapter.Metadata(context.Background(), nft.TokenIndex(1))
	require.NoError(t, err)
	for range 3 {
		next, err := adapter.Metadata(context.Background(), nft.TokenIndex(1))
		require.NoError(t, err)
		require.Equal(t, first, next)
	}
	require.Len(t, caller.CallsTo(methodTokenMetadata), 4)
	require.Empty(t, caller.Updates())
}

func TestMetadataRejectsOtherToken(t *testing.T) {
	caller := nfttest.NewCaller().Return(methodTokenMetadata, `{"Ok":{"token_identifier": 2, "owner": [], "properties": []}}`)

	_, err := newAdapter(t, caller).Metadata(context.Background(), "1")
	require.ErrorIs(t, err, nft.ErrRemote)
}

func TestTokensAndBalance(t *testing.T) {
	caller := nfttest.NewCaller().
		Handle(methodOwnerTokenIdentifiers, func(request nft.CallRequest) (nft.RawResult, error) {
			if request.Args[0] == alice {
				return nft.RawResult(`{"Ok":[4,"1",9]}`), nil
			}
			return nft.RawResult(`{"Err":{"OwnerNotFound":null}}`), nil
		}).
		Return(methodBalanceOf, `{"Ok":3}`)
	adapter := newAdapter(t, caller)

	sequence := adapter.Tokens(context.Background(), nft.PrincipalOwner(alice))
	require.Empty(t, caller.Calls())

	tokens, err := nft.CollectTokens(sequence)
	require.NoError(t, err)
	require.Equal(t, []nft.TokenID{"4", "1", "9"}, tokens)

	tokens, err = nft.CollectTokens(adapter.Tokens(context.Background(), nft.PrincipalOwner(bob)))
	require.NoError(t, err)
	require.Empty(t, tokens)

	balance, err := adapter.Balance(context.Background(), nft.PrincipalOwner(alice))
	require.NoError(t, err)
	require.Equal(t, uint64(3), balance)

	_, err = nft.CollectTokens(adapter.Tokens(context.Background(), nft.AddressOwner("0.0.5")))
	require.ErrorIs(t, err, nft.ErrUnsupported)
}

func TestTransferByOwner(t *testing.T) {
	caller := nfttest.NewCaller().
		Handle(methodOwnerOf, ownerOfAlice()).
		Return(methodTransferFrom, `{"Ok":"88"}`)
	adapter := newAdapter(t, caller)

	receipt, err := adapter.Transfer(context.Background(), nft.TransferRequest{
		From:  nft.PrincipalOwner(alice),
		To:    nft.PrincipalOwner(bob),
		Token: "1",
	})
	require.NoError(t, err)
	transactionID, ok := receipt.TransactionID.Get()
	require.True(t, ok)
	require.Equal(t, "88", transactionID)

	updates := caller.Updates()
	require.Len(t, updates, 1)
	require.Equal(t, []any{alice, bob, uint64(1)}, updates[0].Args)
}

func TestTransferByNonOwnerIssuesNoUpdate(t *testing.T) {
	caller := nfttest.NewCaller().
		Handle(methodOwnerOf, ownerOfAlice()).
		Return(methodIsApprovedForAll, `{"Ok":false}`).
		Return(methodOperatorOf, `{"Ok":[]}`).
		Return(methodTransferFrom, `{"Ok":1}`)
	adapter := newAdapter(t, caller)

	_, err := adapter.Transfer(context.Background(), nft.TransferRequest{
		From:  nft.PrincipalOwner(bob),
		To:    nft.PrincipalOwner(carol),
		Token: "1",
	})
	require.ErrorIs(t, err, nft.ErrUnauthorized)
	require.Empty(t, caller.Updates())
}

func TestTransferByOperator(t *testing.T) {
	caller := nfttest.NewCaller().
		Handle(methodOwnerOf, ownerOfAlice()).
		Return(methodOperatorOf, `{"Ok":["`+bob+`"]}`).
		Return(methodTransferFrom, `{"Ok":5}`)
	adapter := newAdapter(t, caller)

	receipt, err := adapter.Transfer(context.Background(), nft.TransferRequest{
		From:  nft.PrincipalOwner(bob),
		To:    nft.PrincipalOwner(carol),
		Token: "1",
	})
	require.NoError(t, err)
	require.Equal(t, nft.PrincipalOwner(alice), receipt.From)
	require.Len(t, caller.Updates(), 1)
}

func TestTransferOperatorLookupFailureIsRemote(t *testing.T) {
	caller := nfttest.NewCaller().
		Handle(methodOwnerOf, ownerOfAlice()).
		Return(methodIsApprovedForAll, `{"Err":{"Other":"storage unavailable"}}`).
		Return(methodOperatorOf, `{"Err":{"Other":"storage unavailable"}}`).
		Return(methodTransferFrom, `{"Ok":1}`)

	_, err := newAdapter(t, caller).Transfer(context.Background(), nft.TransferRequest{
		From:  nft.PrincipalOwner(bob),
		To:    nft.PrincipalOwner(carol),
		Token: "1",
	})
	require.ErrorIs(t, err, nft.ErrRemote)
	require.NotErrorIs(t, err, nft.ErrUnauthorized)

	var remote *nft.RemoteError
	require.True(t, errors.As(err, &remote))
	require.Contains(t, string(remote.Payload), "storage unavailable")
	require.Empty(t, caller.Updates())
}

func TestTransferMalformedOperatorIsRemote(t *testing.T) {
	caller := nfttest.NewCaller().
		Handle(methodOwnerOf, ownerOfAlice()).
		Return(methodIsApprovedForAll, `{"Ok":false}`).
		Return(methodOperatorOf, `{"Ok":"` + bob + `"}`)

	_, err := newAdapter(t, caller).Transfer(context.Background(), nft.TransferRequest{
		From:  nft.PrincipalOwner(bob),
		To:    nft.PrincipalOwner(carol),
		Token: "1",
	})
	require.ErrorIs(t, err, nft.ErrRemote)
	require.Empty(t, caller.Updates())
}

func TestTransferClassifiedOperatorErrorIsUnauthorized(t *testing.T) {
	caller := nfttest.NewCaller().
		Handle(methodOwnerOf, ownerOfAlice()).
		Return(methodIsApprovedForAll, `{"Err":{"OwnerNotFound":null}}`).
		Return(methodOperatorOf, `{"Err":{"TokenNotFound":null}}`)

	_, err := newAdapter(t, caller).Transfer(context.Background(), nft.TransferRequest{
		From:  nft.PrincipalOwner(bob),
		To:    nft.PrincipalOwner(carol),
		Token: "1",
	})
	require.ErrorIs(t, err, nft.ErrUnauthorized)
	require.Empty(t, caller.Updates())
}

func TestTransferRemoteRejectionIsMapped(t *testing.T) {
	caller := nfttest.NewCaller().
		Handle(methodOwnerOf, ownerOfAlice()).
		Return(methodTransferFrom, `{"Err":{"UnauthorizedOwner":null}}`)

	_, err := newAdapter(t, caller).Transfer(context.Background(), nft.TransferRequest{
		From:  nft.PrincipalOwner(alice),
		To:    nft.PrincipalOwner(bob),
		Token: "1",
	})
	require.ErrorIs(t, err, nft.ErrUnauthorized)
}

func TestProbe(t *testing.T) {
	ref, err := nft.NewContractRef(canister, nfttest.NewCaller().Return(methodSupportedInterfaces, `[{"Approval":null},{"Mint":null}]`))
	require.NoError(t, err)
	matched, err := Probe(context.Background(), ref)
	require.NoError(t, err)
	require.True(t, matched)

	ref.Caller = nfttest.NewCaller()
	matched, err = Probe(context.Background(), ref)
	require.NoError(t, err)
	require.False(t, matched)

	ref.Caller = nfttest.NewCaller().Fail(methodSupportedInterfaces, context.DeadlineExceeded)
	_, err = Probe(context.Background(), ref)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	ref.Caller = nfttest.NewCaller().Reject(methodSupportedInterfaces, nft.RejectCanisterReject, "no")
	matched, err = Probe(context.Background(), ref)
	require.NoError(t, err)
	require.False(t, matched)

	ref.Caller = nfttest.NewCaller().Reject(methodSupportedInterfaces, "SYS_TRANSIENT", "replica overloaded")
	_, err = Probe(context.Background(), ref)
	require.ErrorIs(t, err, nft.ErrRemote)
}
