package nft

import (
	"strconv"
	"strings"

	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/principal"
)

// TokenID is either a decimal token index or a standard-native identifier.
type TokenID string

// TokenIndex formats a numeric token index as a TokenID.
func TokenIndex(index uint64) TokenID {
	return TokenID(strconv.FormatUint(index, 10))
}

// Index returns the numeric index when id is a plain decimal index.
func (id TokenID) Index() (uint64, bool) {
	value, err := strconv.ParseUint(strings.TrimSpace(string(id)), 10, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func (id TokenID) String() string {
	return string(id)
}

type OwnerKind string

const (
	OwnerPrincipal         OwnerKind = "principal"
	OwnerAccountIdentifier OwnerKind = "account-identifier"
	OwnerAddress           OwnerKind = "address"
)

type OwnerRef struct {
	Kind OwnerKind `json:"kind"`
	ID   string    `json:"id"`
}

func PrincipalOwner(id string) OwnerRef {
	return OwnerRef{Kind: OwnerPrincipal, ID: strings.TrimSpace(id)}
}

func AccountOwner(identifier string) OwnerRef {
	return OwnerRef{Kind: OwnerAccountIdentifier, ID: strings.ToLower(strings.TrimSpace(identifier))}
}

func AddressOwner(address string) OwnerRef {
	return OwnerRef{Kind: OwnerAddress, ID: strings.TrimSpace(address)}
}

func (owner OwnerRef) IsZero() bool {
	return owner.ID == ""
}

func (owner OwnerRef) String() string {
	if owner.Kind == "" {
		return owner.ID
	}
	return string(owner.Kind) + ":" + owner.ID
}

// AccountIdentifier returns the default-subaccount account identifier of a
// principal owner, or the identifier itself for account owners.
func (owner OwnerRef) AccountIdentifier() (string, error) {
	switch owner.Kind {
	case OwnerAccountIdentifier:
		return principal.ParseAccountIdentifier(owner.ID)
	case OwnerPrincipal:
		return principal.AccountIdentifier(owner.ID, nil)
	default:
		return "", &Error{Kind: ErrUnsupported, Message: "owner kind " + string(owner.Kind) + " has no account identifier"}
	}
}

// Equal compares two owners. A principal and an account identifier are equal
// when the identifier belongs to the principal's default subaccount.
func (owner OwnerRef) Equal(other OwnerRef) bool {
	if owner.IsZero() || other.IsZero() {
		return false
	}
	if owner.Kind == other.Kind {
		if owner.Kind == OwnerAccountIdentifier {
			return strings.EqualFold(owner.ID, other.ID)
		}
		return owner.ID == other.ID
	}

	mixed := (owner.Kind == OwnerPrincipal && other.Kind == OwnerAccountIdentifier) ||
		(owner.Kind == OwnerAccountIdentifier && other.Kind == OwnerPrincipal)
	if !mixed {
		return false
	}
	left, err := owner.AccountIdentifier()
	if err != nil {
		return false
	}
	right, err := other.AccountIdentifier()
	if err != nil {
		return false
	}
	return left == right
}

type FieldStatus uint8

const (
	// FieldUnsupported means the standard has no concept of the field.
	FieldUnsupported FieldStatus = iota
	// FieldAbsent means the standard supports the field but the token has no value.
	FieldAbsent
	FieldPresent
)

func (status FieldStatus) String() string {
	switch status {
	case FieldAbsent:
		return "absent"
	case FieldPresent:
		return "present"
	default:
		return "unsupported"
	}
}

// Field carries a value together with an explicit presence marker. The zero
// value is unsupported.
type Field[T any] struct {
	Value  T           `json:"value"`
	Status FieldStatus `json:"status"`
}

func Present[T any](value T) Field[T] {
	return Field[T]{Value: value, Status: FieldPresent}
}

func Absent[T any]() Field[T] {
	return Field[T]{Status: FieldAbsent}
}

func Unsupported[T any]() Field[T] {
	return Field[T]{Status: FieldUnsupported}
}

// Get returns the value and whether it is present.
func (field Field[T]) Get() (T, bool) {
	return field.Value, field.Status == FieldPresent
}

func (field Field[T]) Supported() bool {
	return field.Status != FieldUnsupported
}

type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// TokenMetadata is the normalized description of one token.
type TokenMetadata struct {
	Standard    StandardID         `json:"standard"`
	Contract    string             `json:"contract"`
	Token       TokenID            `json:"token"`
	Index       Field[uint64]      `json:"index"`
	Owner       Field[OwnerRef]    `json:"owner"`
	Name        Field[string]      `json:"name"`
	Description Field[string]      `json:"description"`
	URI         Field[string]      `json:"uri"`
	Attributes  Field[[]Attribute] `json:"attributes"`
	// Content holds the metadata bytes stored on the ledger, when the
	// standard keeps them there.
	Content Field[[]byte] `json:"content"`
}

type TransferRequest struct {
	From  OwnerRef
	To    OwnerRef
	Token TokenID
}

type TransferReceipt struct {
	Standard      StandardID    `json:"standard"`
	Contract      string        `json:"contract"`
	Token         TokenID       `json:"token"`
	From          OwnerRef      `json:"from"`
	To            OwnerRef      `json:"to"`
	TransactionID Field[string] `json:"transactionId"`
}
