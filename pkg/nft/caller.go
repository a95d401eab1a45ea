package nft

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type CallKind int

const (
	// CallQuery is a read-only call that must not change ledger state.
	CallQuery CallKind = iota
	// CallUpdate may change ledger state.
	CallUpdate
)

func (kind CallKind) String() string {
	switch kind {
	case CallQuery:
		return "query"
	case CallUpdate:
		return "update"
	default:
		return fmt.Sprintf("CallKind(%d)", int(kind))
	}
}

type CallRequest struct {
	Contract string
	Method   string
	Args     []any
	Kind     CallKind
}

// RawResult is the JSON rendering of a remote return value.
type RawResult []byte

// Caller performs one remote call against a deployed contract.
type Caller interface {
	Call(ctx context.Context, request CallRequest) (RawResult, error)
}

// CallerFunc adapts a function to the Caller interface.
type CallerFunc func(ctx context.Context, request CallRequest) (RawResult, error)

func (fn CallerFunc) Call(ctx context.Context, request CallRequest) (RawResult, error) {
	return fn(ctx, request)
}

// ContractRef identifies one deployed contract and the transport that reaches
// it. Adapters keep the reference for their lifetime and never close the
// caller.
type ContractRef struct {
	ID     string
	Caller Caller
}

// NewContractRef creates a new ContractRef.
func NewContractRef(id string, caller Caller) (ContractRef, error) {
	ref := ContractRef{ID: strings.TrimSpace(id), Caller: caller}
	if err := ref.Validate(); err != nil {
		return ContractRef{}, err
	}
	return ref, nil
}

func (ref ContractRef) Validate() error {
	if strings.TrimSpace(ref.ID) == "" {
		return fmt.Errorf("contract ID is required")
	}
	if ref.Caller == nil {
		return fmt.Errorf("contract %s has no caller", ref.ID)
	}
	return nil
}

// Query issues a read-only call against the contract.
func (ref ContractRef) Query(ctx context.Context, method string, args ...any) (RawResult, error) {
	return ref.Caller.Call(ctx, CallRequest{
		Contract: ref.ID,
		Method:   method,
		Args:     args,
		Kind:     CallQuery,
	})
}

// Update issues a call that may change ledger state.
func (ref ContractRef) Update(ctx context.Context, method string, args ...any) (RawResult, error) {
	return ref.Caller.Call(ctx, CallRequest{
		Contract: ref.ID,
		Method:   method,
		Args:     args,
		Kind:     CallUpdate,
	})
}

const (
	RejectMethodNotFound = "METHOD_NOT_FOUND"
	// RejectCanisterReject and RejectCanisterError are the replica reject
	// codes for a contract that explicitly rejected or trapped on a call.
	RejectCanisterReject = "CANISTER_REJECT"
	RejectCanisterError  = "CANISTER_ERROR"
)

// Rejection is returned by transports when the contract itself rejected the
// call, as opposed to the transport failing to deliver it.
type Rejection struct {
	Code    string
	Message string
	Payload []byte
}

func (r *Rejection) Error() string {
	if r == nil {
		return "remote call rejected"
	}
	if r.Message == "" {
		return fmt.Sprintf("remote call rejected (%s)", r.Code)
	}
	return fmt.Sprintf("remote call rejected (%s): %s", r.Code, r.Message)
}

// RejectionCode returns the code of the first Rejection in err's chain.
func RejectionCode(err error) (string, bool) {
	var rejection *Rejection
	if errors.As(err, &rejection) && rejection != nil {
		return rejection.Code, true
	}
	return "", false
}

// IsMethodNotFound reports whether err says the contract lacks the method.
func IsMethodNotFound(err error) bool {
	code, ok := RejectionCode(err)
	return ok && code == RejectMethodNotFound
}

// IsRejectedWith reports whether err is a Rejection carrying one of codes.
func IsRejectedWith(err error, codes ...string) bool {
	code, ok := RejectionCode(err)
	if !ok {
		return false
	}
	for _, candidate := range codes {
		if code == candidate {
			return true
		}
	}
	return false
}

// IsContractRejection reports whether the contract itself refused the call
// because it lacks the method, rejected it or trapped.
func IsContractRejection(err error) bool {
	return IsRejectedWith(err, RejectMethodNotFound, RejectCanisterReject, RejectCanisterError)
}
