package hedera

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sdk "github.com/hashgraph/hedera-sdk-go/v2"

	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/nft"
)

// NftTransfer moves one serial between accounts. Approved marks a transfer
// paid for by a spender allowance instead of the owner's signature.
type NftTransfer struct {
	TokenID      string
	SerialNumber int64
	From         string
	To           string
	Approved     bool
}

// Submitter executes NFT transfers and returns the transaction ID.
type Submitter interface {
	TransferNft(ctx context.Context, transfer NftTransfer) (string, error)
}

// SDKSubmitter submits transfers with a hedera-sdk-go client whose operator
// pays and signs.
type SDKSubmitter struct {
	client *sdk.Client
}

// NewSDKSubmitter creates a new SDKSubmitter.
func NewSDKSubmitter(client *sdk.Client) (*SDKSubmitter, error) {
	if client == nil {
		return nil, fmt.Errorf("hedera client is required")
	}
	return &SDKSubmitter{client: client}, nil
}

// TransferNft performs the requested operation.
func (s *SDKSubmitter) TransferNft(ctx context.Context, transfer NftTransfer) (string, error) {
	transaction, err := buildTransferTransaction(transfer)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	response, err := transaction.Execute(s.client)
	if err != nil {
		return "", statusError(err, "failed to execute NFT transfer")
	}

	receipt, err := response.GetReceipt(s.client)
	if err != nil {
		return "", statusError(err, "failed to fetch NFT transfer receipt")
	}
	if receipt.Status != sdk.StatusSuccess {
		return "", &nft.Rejection{
			Code:    receipt.Status.String(),
			Message: "NFT transfer failed with status " + receipt.Status.String(),
		}
	}

	return response.TransactionID.String(), nil
}

func buildTransferTransaction(transfer NftTransfer) (*sdk.TransferTransaction, error) {
	tokenID, err := sdk.TokenIDFromString(strings.TrimSpace(transfer.TokenID))
	if err != nil {
		return nil, fmt.Errorf("invalid token ID: %w", err)
	}
	if transfer.SerialNumber <= 0 {
		return nil, fmt.Errorf("serial number must be positive")
	}
	sender, err := sdk.AccountIDFromString(strings.TrimSpace(transfer.From))
	if err != nil {
		return nil, fmt.Errorf("invalid sender account ID: %w", err)
	}
	receiver, err := sdk.AccountIDFromString(strings.TrimSpace(transfer.To))
	if err != nil {
		return nil, fmt.Errorf("invalid receiver account ID: %w", err)
	}

	nftID := sdk.NftID{
		TokenID:      tokenID,
		SerialNumber: transfer.SerialNumber,
	}

	transaction := sdk.NewTransferTransaction()
	if transfer.Approved {
		transaction.AddApprovedNftTransfer(nftID, sender, receiver, true)
	} else {
		transaction.AddNftTransfer(nftID, sender, receiver)
	}
	return transaction, nil
}

// statusError surfaces ledger statuses as rejections so adapters can
// classify them. Anything else stays a transport failure.
func statusError(err error, action string) error {
	var precheck sdk.ErrHederaPreCheckStatus
	if errors.As(err, &precheck) {
		return &nft.Rejection{
			Code:    precheck.Status.String(),
			Message: action + ": precheck status " + precheck.Status.String(),
		}
	}
	var receipt sdk.ErrHederaReceiptStatus
	if errors.As(err, &receipt) {
		return &nft.Rejection{
			Code:    receipt.Status.String(),
			Message: action + ": receipt status " + receipt.Status.String(),
		}
	}
	return fmt.Errorf("%s: %w", action, err)
}
