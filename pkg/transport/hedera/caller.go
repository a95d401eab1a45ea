package hedera

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/mirror"
	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/nft"
)

const (
	MethodGetToken       = "getToken"
	MethodGetNft         = "getNft"
	MethodGetAccountNfts = "getAccountNfts"
	MethodTransferNft    = "transferNft"
)

const (
	StatusSuccess                     = "SUCCESS"
	StatusNotFound                    = "NOT_FOUND"
	StatusInvalidTokenID              = "INVALID_TOKEN_ID"
	StatusInvalidNftID                = "INVALID_NFT_ID"
	StatusSenderDoesNotOwnNftSerialNo = "SENDER_DOES_NOT_OWN_NFT_SERIAL_NO"
	StatusSpenderDoesNotHaveAllowance = "SPENDER_DOES_NOT_HAVE_ALLOWANCE"
	StatusQueryNotAllowed             = "QUERY_NOT_ALLOWED"
)

// MirrorReader is the subset of the mirror node client the caller reads from.
type MirrorReader interface {
	GetToken(ctx context.Context, tokenID string) (mirror.TokenInfo, error)
	GetNft(ctx context.Context, tokenID string, serialNumber int64) (mirror.Nft, error)
	GetAccountNfts(ctx context.Context, accountID string, options mirror.NftQueryOptions) ([]mirror.Nft, error)
}

type Options struct {
	Mirror MirrorReader
	// Submitter executes transfers. Without one, transferNft is rejected.
	Submitter Submitter
}

// Caller answers HTS method calls. It is safe for concurrent use when its
// mirror reader and submitter are.
type Caller struct {
	mirror    MirrorReader
	submitter Submitter
}

var _ nft.Caller = (*Caller)(nil)

// NewCaller creates a new Caller.
func NewCaller(options Options) (*Caller, error) {
	if options.Mirror == nil {
		return nil, fmt.Errorf("mirror reader is required")
	}
	return &Caller{
		mirror:    options.Mirror,
		submitter: options.Submitter,
	}, nil
}

// Call performs the requested operation.
func (c *Caller) Call(ctx context.Context, request nft.CallRequest) (nft.RawResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	args, err := encodeArgs(request.Args)
	if err != nil {
		return nil, err
	}

	switch request.Method {
	case MethodGetToken:
		return c.getToken(ctx, args)
	case MethodGetNft:
		return c.getNft(ctx, args)
	case MethodGetAccountNfts:
		return c.getAccountNfts(ctx, args)
	case MethodTransferNft:
		if request.Kind != nft.CallUpdate {
			return nil, &nft.Rejection{
				Code:    StatusQueryNotAllowed,
				Message: MethodTransferNft + " changes ledger state and cannot run as a query",
			}
		}
		return c.transferNft(ctx, args)
	default:
		return nil, &nft.Rejection{
			Code:    nft.RejectMethodNotFound,
			Message: "HTS has no method " + request.Method,
		}
	}
}

func (c *Caller) getToken(ctx context.Context, args []gjson.Result) (nft.RawResult, error) {
	tokenID, err := stringArg(MethodGetToken, args, 0)
	if err != nil {
		return nil, err
	}
	token, err := c.mirror.GetToken(ctx, tokenID)
	if err != nil {
		return nil, mirrorError(err, StatusInvalidTokenID)
	}
	return marshalResult(token)
}

func (c *Caller) getNft(ctx context.Context, args []gjson.Result) (nft.RawResult, error) {
	tokenID, err := stringArg(MethodGetNft, args, 0)
	if err != nil {
		return nil, err
	}
	serial, err := serialArg(MethodGetNft, args, 1)
	if err != nil {
		return nil, err
	}
	value, err := c.mirror.GetNft(ctx, tokenID, serial)
	if err != nil {
		return nil, mirrorError(err, StatusInvalidNftID)
	}
	return marshalResult(value)
}

func (c *Caller) getAccountNfts(ctx context.Context, args []gjson.Result) (nft.RawResult, error) {
	accountID, err := stringArg(MethodGetAccountNfts, args, 0)
	if err != nil {
		return nil, err
	}
	tokenID, err := stringArg(MethodGetAccountNfts, args, 1)
	if err != nil {
		return nil, err
	}
	values, err := c.mirror.GetAccountNfts(ctx, accountID, mirror.NftQueryOptions{
		TokenID: tokenID,
		Order:   "asc",
	})
	if err != nil {
		return nil, mirrorError(err, StatusNotFound)
	}
	return marshalResult(values)
}

func (c *Caller) transferNft(ctx context.Context, args []gjson.Result) (nft.RawResult, error) {
	if c.submitter == nil {
		return nil, fmt.Errorf("no submitter configured for %s", MethodTransferNft)
	}

	transfer := NftTransfer{}
	var err error
	if transfer.TokenID, err = stringArg(MethodTransferNft, args, 0); err != nil {
		return nil, err
	}
	if transfer.SerialNumber, err = serialArg(MethodTransferNft, args, 1); err != nil {
		return nil, err
	}
	if transfer.From, err = stringArg(MethodTransferNft, args, 2); err != nil {
		return nil, err
	}
	if transfer.To, err = stringArg(MethodTransferNft, args, 3); err != nil {
		return nil, err
	}
	if len(args) > 4 {
		transfer.Approved = args[4].Bool()
	}

	transactionID, err := c.submitter.TransferNft(ctx, transfer)
	if err != nil {
		return nil, err
	}
	return marshalResult(transferResult{
		TransactionID: transactionID,
		Status:        StatusSuccess,
	})
}

type transferResult struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
}

// mirrorError turns a mirror 404 into a ledger status rejection. Other
// failures are transport errors.
func mirrorError(err error, notFoundStatus string) error {
	if !mirror.IsNotFound(err) {
		return err
	}
	var payload []byte
	var statusErr *mirror.StatusError
	if errors.As(err, &statusErr) {
		payload = []byte(statusErr.Body)
	}
	return &nft.Rejection{
		Code:    notFoundStatus,
		Message: err.Error(),
		Payload: payload,
	}
}

func encodeArgs(args []any) ([]gjson.Result, error) {
	result := make([]gjson.Result, 0, len(args))
	for index, arg := range args {
		encoded, err := json.Marshal(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to encode argument %d: %w", index, err)
		}
		result = append(result, gjson.ParseBytes(encoded))
	}
	return result, nil
}

func stringArg(method string, args []gjson.Result, index int) (string, error) {
	if index >= len(args) {
		return "", argumentRejection(method, index, "is missing")
	}
	value := strings.TrimSpace(args[index].String())
	if value == "" {
		return "", argumentRejection(method, index, "is empty")
	}
	return value, nil
}

func serialArg(method string, args []gjson.Result, index int) (int64, error) {
	raw, err := stringArg(method, args, index)
	if err != nil {
		return 0, err
	}
	serial, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || serial <= 0 {
		return 0, &nft.Rejection{
			Code:    StatusInvalidNftID,
			Message: fmt.Sprintf("%s: serial number %q is not a positive integer", method, raw),
		}
	}
	return serial, nil
}

func argumentRejection(method string, index int, problem string) error {
	return &nft.Rejection{
		Code:    "INVALID_ARGUMENT",
		Message: fmt.Sprintf("%s: argument %d %s", method, index, problem),
	}
}

func marshalResult(value any) (nft.RawResult, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode HTS result: %w", err)
	}
	return nft.RawResult(encoded), nil
}
