package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/ext"
	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/nft"
	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/nft/nfttest"
	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/principal"
	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/transport/jsonrpc"
)

var (
	canister = principal.Encode([]byte{0, 0, 0, 0, 0, 0xe0, 0, 0x04, 0x01, 0x01})
	alice    = principal.Encode([]byte{0xa1, 0x1c, 0xe0, 0x01})
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func contractRef(t *testing.T, caller nft.Caller) nft.ContractRef {
	t.Helper()
	ref, err := nft.NewContractRef(canister, caller)
	require.NoError(t, err)
	return ref
}

func TestNewDefaultSeedsBuiltInStandards(t *testing.T) {
	registry := NewDefault(Options{})

	require.Equal(t, StateBuilt, registry.State())
	require.Equal(t, nft.DefaultCatalog(), registry.Standards())

	for _, info := range registry.Standards() {
		adapter, err := registry.Resolve(info.ID, contractRef(t, nfttest.NewCaller()))
		require.NoError(t, err, info.ID)
		require.Equal(t, info.ID, adapter.Standard())
		require.Equal(t, canister, adapter.Contract().ID)
	}
}

func TestResolveExtOwnerIssuesOneNativeCall(t *testing.T) {
	account, err := principal.AccountIdentifier(alice, nil)
	require.NoError(t, err)
	identifier, err := principal.EncodeTokenIdentifier(canister, 42)
	require.NoError(t, err)

	caller := nfttest.NewCaller().Return("bearer", `{"ok":"`+account+`"}`)
	adapter, err := NewDefault(Options{}).Resolve(nft.StandardEXT, contractRef(t, caller))
	require.NoError(t, err)
	require.IsType(t, &ext.Adapter{}, adapter)

	owner, err := adapter.Owner(context.Background(), nft.TokenIndex(42))
	require.NoError(t, err)
	require.Equal(t, nft.AccountOwner(account), owner)

	calls := caller.Calls()
	require.Len(t, calls, 1)
	require.Equal(t, "bearer", calls[0].Method)
	require.Equal(t, nft.CallQuery, calls[0].Kind)
	require.Equal(t, []any{identifier}, calls[0].Args)
}

func TestResolveUnknownStandard(t *testing.T) {
	adapter, err := NewDefault(Options{}).Resolve("erc-721", contractRef(t, nfttest.NewCaller()))
	require.ErrorIs(t, err, nft.ErrUnknownStandard)
	require.Nil(t, adapter)
}

func TestResolveConstructorFailureReturnsNoAdapter(t *testing.T) {
	ref, err := nft.NewContractRef("0.0.1234", nfttest.NewCaller())
	require.NoError(t, err)

	adapter, err := NewDefault(Options{}).Resolve(nft.StandardEXT, ref)
	require.Error(t, err)
	require.Nil(t, adapter)
}

type stubAdapter struct {
	nft.NFT
	standard nft.StandardID
}

func (adapter stubAdapter) Standard() nft.StandardID {
	return adapter.standard
}

func TestRegisterDuplicateAndReplace(t *testing.T) {
	registry := NewDefault(Options{})
	replacement := Descriptor{
		ID:          nft.StandardDefault,
		Description: "replacement",
		New: func(nft.ContractRef) (nft.NFT, error) {
			return stubAdapter{standard: "replacement"}, nil
		},
	}

	err := registry.Register(replacement, RegisterOptions{})
	require.ErrorIs(t, err, nft.ErrDuplicateStandard)
	require.Equal(t, StateBuilt, registry.State())

	require.NoError(t, registry.Register(replacement, RegisterOptions{Replace: true}))
	require.Equal(t, StateExtended, registry.State())

	adapter, err := registry.Resolve(nft.StandardDefault, contractRef(t, nfttest.NewCaller()))
	require.NoError(t, err)
	require.Equal(t, nft.StandardID("replacement"), adapter.Standard())

	standards := registry.Standards()
	require.Len(t, standards, 3)
	require.Equal(t, nft.StandardDefault, standards[0].ID)
	require.Equal(t, "replacement", standards[0].Description)
}

func TestRegisterValidatesDescriptor(t *testing.T) {
	registry := New(Options{})

	require.Error(t, registry.Register(Descriptor{ID: "custom"}, RegisterOptions{}))
	require.Error(t, registry.Register(Descriptor{
		ID:  "Not Valid",
		New: func(nft.ContractRef) (nft.NFT, error) { return stubAdapter{}, nil },
	}, RegisterOptions{}))
	require.Empty(t, registry.Standards())
}

func TestDetectSingleMatch(t *testing.T) {
	caller := nfttest.NewCaller().Return("extensions", `["@ext/common","@ext/nonfungible"]`)

	id, err := NewDefault(Options{}).Detect(context.Background(), contractRef(t, caller))
	require.NoError(t, err)
	require.Equal(t, nft.StandardEXT, id)
	require.Empty(t, caller.Updates())
}

func TestDetectAmbiguous(t *testing.T) {
	caller := nfttest.NewCaller().
		Return("supportedInterfaces", `[{"TransferNotification":null}]`).
		Return("user_tokens", `[]`)

	_, err := NewDefault(Options{}).Detect(context.Background(), contractRef(t, caller))
	require.ErrorIs(t, err, nft.ErrAmbiguousStandard)
	require.Contains(t, err.Error(), "default, ic-punks")
}

func TestDetectNoMatch(t *testing.T) {
	_, err := NewDefault(Options{}).Detect(context.Background(), contractRef(t, nfttest.NewCaller()))
	require.ErrorIs(t, err, nft.ErrUnknownStandard)
}

func TestDetectTransportFailureAborts(t *testing.T) {
	boom := errors.New("gateway unavailable")
	caller := nfttest.NewCaller().
		Return("supportedInterfaces", `[]`).
		Fail("extensions", boom)

	_, err := NewDefault(Options{}).Detect(context.Background(), contractRef(t, caller))
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, err, nft.ErrRemote)
}

func TestDetectCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDefault(Options{}).Detect(ctx, contractRef(t, nfttest.NewCaller()))
	require.ErrorIs(t, err, context.Canceled)
}

func TestDetectBlocksUpdateCalls(t *testing.T) {
	caller := nfttest.NewCaller().Return("mint", `{"ok":1}`)
	registry := New(Options{})
	require.NoError(t, registry.Register(Descriptor{
		ID:  "mutating",
		New: func(nft.ContractRef) (nft.NFT, error) { return stubAdapter{}, nil },
		Probe: func(ctx context.Context, ref nft.ContractRef) (bool, error) {
			_, err := ref.Update(ctx, "mint")
			return err == nil, err
		},
	}, RegisterOptions{}))

	_, err := registry.Detect(context.Background(), contractRef(t, caller))
	require.Error(t, err)
	require.Empty(t, caller.Calls())
}

func TestDetectGatewayOutageIsNotUnknownStandard(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"jsonrpc":"2.0","id":"` + request.ID + `","error":{"code":-32603,"message":"internal error: upstream replica unreachable"}}`))
	}))
	defer server.Close()

	gateway, err := jsonrpc.NewClient(jsonrpc.Options{Endpoint: server.URL, HTTPClient: server.Client()})
	require.NoError(t, err)

	_, err = NewDefault(Options{}).Detect(context.Background(), contractRef(t, gateway))
	require.Error(t, err)
	require.NotErrorIs(t, err, nft.ErrUnknownStandard)
	require.ErrorIs(t, err, nft.ErrRemote)

	var rpcErr *jsonrpc.RPCError
	require.True(t, errors.As(err, &rpcErr))
	require.Equal(t, jsonrpc.CodeInternalError, rpcErr.Code)
}

func TestDetectContractRejectionIsNoMatch(t *testing.T) {
	caller := nfttest.NewCaller().
		Reject("supportedInterfaces", nft.RejectCanisterError, "trapped").
		Reject("user_tokens", nft.RejectCanisterReject, "rejected").
		Return("extensions", `["@ext/nonfungible"]`)

	id, err := NewDefault(Options{}).Detect(context.Background(), contractRef(t, caller))
	require.NoError(t, err)
	require.Equal(t, nft.StandardEXT, id)
}

func TestConcurrentRegisterResolveAndDetect(t *testing.T) {
	registry := NewDefault(Options{})
	caller := nfttest.NewCaller().Return("extensions", `["@ext/common"]`)
	ref := contractRef(t, caller)

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers*3)
	for index := range workers {
		wg.Add(3)
		go func() {
			defer wg.Done()
			errs <- registry.Register(Descriptor{
				ID:  nft.StandardID(fmt.Sprintf("custom-%d", index)),
				New: func(nft.ContractRef) (nft.NFT, error) { return stubAdapter{}, nil },
			}, RegisterOptions{})
		}()
		go func() {
			defer wg.Done()
			adapter, err := registry.Resolve(nft.StandardEXT, ref)
			if err == nil && adapter.Standard() != nft.StandardEXT {
				err = fmt.Errorf("resolved %s", adapter.Standard())
			}
			registry.Standards()
			errs <- err
		}()
		go func() {
			defer wg.Done()
			id, err := registry.Detect(context.Background(), ref)
			if err == nil && id != nft.StandardEXT {
				err = fmt.Errorf("detected %s", id)
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	require.Len(t, registry.Standards(), len(nft.DefaultCatalog())+workers)
	require.Equal(t, StateExtended, registry.State())
	for index := range workers {
		_, ok := registry.Lookup(nft.StandardID(fmt.Sprintf("custom-%d", index)))
		require.True(t, ok)
	}
}
