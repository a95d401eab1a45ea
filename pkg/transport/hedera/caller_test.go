package hedera

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	sdk "github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/mirror"
	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/nft"
)

type recordingSubmitter struct {
	mu        sync.Mutex
	transfers []NftTransfer
	err       error
}

func (s *recordingSubmitter) TransferNft(_ context.Context, transfer NftTransfer) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transfers = append(s.transfers, transfer)
	if s.err != nil {
		return "", s.err
	}
	return "0.0.1001@1700000000.000000001", nil
}

func newMirrorServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/tokens/0.0.5005":
			w.Write([]byte(`{"token_id":"0.0.5005","name":"Punks","symbol":"PNK","type":"NON_FUNGIBLE_UNIQUE","total_supply":"3"}`))
		case "/api/v1/tokens/0.0.5005/nfts/2":
			w.Write([]byte(`{"account_id":"0.0.1001","metadata":"aXBmczovL2JhZnk=","serial_number":2,"token_id":"0.0.5005","spender":"0.0.2002"}`))
		case "/api/v1/accounts/0.0.1001/nfts":
			if r.URL.Query().Get("token.id") != "0.0.5005" {
				t.Fatalf("unexpected token filter: %s", r.URL.RawQuery)
			}
			w.Write([]byte(`{"nfts":[{"serial_number":1,"token_id":"0.0.5005"},{"serial_number":2,"token_id":"0.0.5005"}],"links":{"next":null}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"_status":{"messages":[{"message":"Not found"}]}}`))
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestCaller(t *testing.T, submitter Submitter) *Caller {
	t.Helper()
	server := newMirrorServer(t)
	mirrorClient, err := mirror.NewClient(mirror.Config{Network: "testnet", BaseURL: server.URL})
	require.NoError(t, err)
	caller, err := NewCaller(Options{Mirror: mirrorClient, Submitter: submitter})
	require.NoError(t, err)
	return caller
}

func query(caller *Caller, method string, args ...any) (nft.RawResult, error) {
	return caller.Call(context.Background(), nft.CallRequest{
		Contract: "0.0.5005",
		Method:   method,
		Args:     args,
		Kind:     nft.CallQuery,
	})
}

func TestNewCallerRequiresMirror(t *testing.T) {
	_, err := NewCaller(Options{})
	require.Error(t, err)
}

func TestGetToken(t *testing.T) {
	caller := newTestCaller(t, nil)

	raw, err := query(caller, MethodGetToken, "0.0.5005")
	require.NoError(t, err)
	require.Equal(t, mirror.TokenTypeNonFungibleUnique, gjson.GetBytes(raw, "type").String())
}

func TestGetTokenUnknownIsRejected(t *testing.T) {
	caller := newTestCaller(t, nil)

	_, err := query(caller, MethodGetToken, "0.0.9")
	code, ok := nft.RejectionCode(err)
	require.True(t, ok)
	require.Equal(t, StatusInvalidTokenID, code)
}

func TestGetNft(t *testing.T) {
	caller := newTestCaller(t, nil)

	raw, err := query(caller, MethodGetNft, "0.0.5005", int64(2))
	require.NoError(t, err)
	require.Equal(t, "0.0.1001", gjson.GetBytes(raw, "account_id").String())
	require.Equal(t, "0.0.2002", gjson.GetBytes(raw, "spender").String())

	raw, err = query(caller, MethodGetNft, "0.0.5005", "2")
	require.NoError(t, err)
	require.EqualValues(t, 2, gjson.GetBytes(raw, "serial_number").Int())
}

func TestGetNftMissingSerial(t *testing.T) {
	caller := newTestCaller(t, nil)

	_, err := query(caller, MethodGetNft, "0.0.5005", uint64(7))
	code, _ := nft.RejectionCode(err)
	require.Equal(t, StatusInvalidNftID, code)

	_, err = query(caller, MethodGetNft, "0.0.5005", 0)
	code, _ = nft.RejectionCode(err)
	require.Equal(t, StatusInvalidNftID, code)

	_, err = query(caller, MethodGetNft, "0.0.5005")
	code, _ = nft.RejectionCode(err)
	require.Equal(t, "INVALID_ARGUMENT", code)
}

func TestGetAccountNfts(t *testing.T) {
	caller := newTestCaller(t, nil)

	raw, err := query(caller, MethodGetAccountNfts, "0.0.1001", "0.0.5005")
	require.NoError(t, err)

	var values []mirror.Nft
	require.NoError(t, json.Unmarshal(raw, &values))
	require.Len(t, values, 2)
	require.EqualValues(t, 1, values[0].SerialNumber)
}

func TestUnknownMethod(t *testing.T) {
	caller := newTestCaller(t, nil)

	_, err := query(caller, "supportedInterfaces")
	require.True(t, nft.IsMethodNotFound(err))
}

func TestTransferNftSubmits(t *testing.T) {
	submitter := &recordingSubmitter{}
	caller := newTestCaller(t, submitter)

	raw, err := caller.Call(context.Background(), nft.CallRequest{
		Contract: "0.0.5005",
		Method:   MethodTransferNft,
		Args:     []any{"0.0.5005", int64(2), "0.0.1001", "0.0.3003", true},
		Kind:     nft.CallUpdate,
	})
	require.NoError(t, err)
	require.Equal(t, "0.0.1001@1700000000.000000001", gjson.GetBytes(raw, "transaction_id").String())
	require.Equal(t, StatusSuccess, gjson.GetBytes(raw, "status").String())
	require.Equal(t, []NftTransfer{{
		TokenID:      "0.0.5005",
		SerialNumber: 2,
		From:         "0.0.1001",
		To:           "0.0.3003",
		Approved:     true,
	}}, submitter.transfers)
}

func TestTransferNftRequiresUpdate(t *testing.T) {
	submitter := &recordingSubmitter{}
	caller := newTestCaller(t, submitter)

	_, err := query(caller, MethodTransferNft, "0.0.5005", 2, "0.0.1001", "0.0.3003")
	code, _ := nft.RejectionCode(err)
	require.Equal(t, StatusQueryNotAllowed, code)
	require.Empty(t, submitter.transfers)
}

func TestTransferNftWithoutSubmitter(t *testing.T) {
	caller := newTestCaller(t, nil)

	_, err := caller.Call(context.Background(), nft.CallRequest{
		Method: MethodTransferNft,
		Args:   []any{"0.0.5005", 2, "0.0.1001", "0.0.3003"},
		Kind:   nft.CallUpdate,
	})
	require.Error(t, err)
	_, isRejection := nft.RejectionCode(err)
	require.False(t, isRejection)
}

func TestCallHonoursCancellation(t *testing.T) {
	caller := newTestCaller(t, &recordingSubmitter{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := caller.Call(ctx, nft.CallRequest{Method: MethodGetToken, Args: []any{"0.0.5005"}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestBuildTransferTransaction(t *testing.T) {
	transaction, err := buildTransferTransaction(NftTransfer{
		TokenID:      "0.0.5005",
		SerialNumber: 2,
		From:         "0.0.1001",
		To:           "0.0.3003",
	})
	require.NoError(t, err)

	transfers := transaction.GetNftTransfers()
	tokenID, err := sdk.TokenIDFromString("0.0.5005")
	require.NoError(t, err)
	require.Len(t, transfers[tokenID], 1)
	require.EqualValues(t, 2, transfers[tokenID][0].SerialNumber)
	require.Equal(t, "0.0.1001", transfers[tokenID][0].SenderAccountID.String())
	require.Equal(t, "0.0.3003", transfers[tokenID][0].ReceiverAccountID.String())
	require.False(t, transfers[tokenID][0].IsApproved)
}

func TestBuildTransferTransactionInvalid(t *testing.T) {
	cases := []NftTransfer{
		{TokenID: "token", SerialNumber: 1, From: "0.0.1", To: "0.0.2"},
		{TokenID: "0.0.5005", SerialNumber: 0, From: "0.0.1", To: "0.0.2"},
		{TokenID: "0.0.5005", SerialNumber: 1, From: "alice", To: "0.0.2"},
		{TokenID: "0.0.5005", SerialNumber: 1, From: "0.0.1", To: ""},
	}
	for _, transfer := range cases {
		_, err := buildTransferTransaction(transfer)
		require.Error(t, err, "%+v", transfer)
	}
}

func TestStatusErrorMapsLedgerStatus(t *testing.T) {
	err := statusError(sdk.ErrHederaReceiptStatus{Status: sdk.StatusSenderDoesNotOwnNftSerialNo}, "failed to fetch NFT transfer receipt")
	code, ok := nft.RejectionCode(err)
	require.True(t, ok)
	require.Equal(t, StatusSenderDoesNotOwnNftSerialNo, code)

	err = statusError(sdk.ErrHederaPreCheckStatus{Status: sdk.StatusSpenderDoesNotHaveAllowance}, "failed to execute NFT transfer")
	code, ok = nft.RejectionCode(err)
	require.True(t, ok)
	require.Equal(t, StatusSpenderDoesNotHaveAllowance, code)

	cause := errors.New("connection reset")
	err = statusError(cause, "failed to execute NFT transfer")
	require.ErrorIs(t, err, cause)
	_, ok = nft.RejectionCode(err)
	require.False(t, ok)
}
