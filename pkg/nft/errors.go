package nft

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrUnsupported       = errors.New("unsupported by standard")
	ErrUnknownStandard   = errors.New("unknown standard")
	ErrDuplicateStandard = errors.New("duplicate standard")
	ErrAmbiguousStandard = errors.New("ambiguous standard")
	ErrRemote            = errors.New("remote call failed")

	errUnexpectedResult = errors.New("unexpected result shape")
)

const maxPayloadInMessage = 256

// Error is a classified failure. Kind is one of the package sentinels.
type Error struct {
	Kind     error
	Standard StandardID
	Contract string
	Method   string
	Token    TokenID
	Message  string
}

func (e *Error) Error() string {
	if e == nil {
		return "nft error"
	}

	var builder strings.Builder
	if e.Standard != "" {
		builder.WriteString(string(e.Standard))
		builder.WriteString(": ")
	}
	if e.Method != "" {
		builder.WriteString(e.Method)
		builder.WriteString(": ")
	}
	if e.Kind != nil {
		builder.WriteString(e.Kind.Error())
	} else {
		builder.WriteString("nft error")
	}
	if e.Message != "" {
		builder.WriteString(": ")
		builder.WriteString(e.Message)
	}

	details := make([]string, 0, 2)
	if e.Token != "" {
		details = append(details, "token="+string(e.Token))
	}
	if e.Contract != "" {
		details = append(details, "contract="+e.Contract)
	}
	if len(details) > 0 {
		builder.WriteString(" (")
		builder.WriteString(strings.Join(details, " "))
		builder.WriteString(")")
	}
	return builder.String()
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Kind
}

// RemoteError wraps a transport or ledger failure together with the payload
// the remote returned, if any.
type RemoteError struct {
	Standard StandardID
	Contract string
	Method   string
	Payload  []byte
	Err      error
}

func NewRemoteError(standard StandardID, contract string, method string, err error) *RemoteError {
	remote := &RemoteError{
		Standard: standard,
		Contract: contract,
		Method:   method,
		Err:      err,
	}
	var rejection *Rejection
	if errors.As(err, &rejection) && rejection != nil {
		remote.Payload = append([]byte{}, rejection.Payload...)
	}
	return remote
}

// UnexpectedResult reports a response the adapter cannot classify.
func UnexpectedResult(standard StandardID, contract string, method string, payload RawResult) *RemoteError {
	return &RemoteError{
		Standard: standard,
		Contract: contract,
		Method:   method,
		Payload:  append([]byte{}, payload...),
		Err:      errUnexpectedResult,
	}
}

func (e *RemoteError) Error() string {
	if e == nil {
		return ErrRemote.Error()
	}

	message := ErrRemote.Error()
	if e.Method != "" {
		message = e.Method + ": " + message
	}
	if e.Standard != "" {
		message = string(e.Standard) + ": " + message
	}
	if e.Err != nil {
		message = fmt.Sprintf("%s: %v", message, e.Err)
	}
	if len(e.Payload) > 0 {
		payload := string(e.Payload)
		if len(payload) > maxPayloadInMessage {
			payload = payload[:maxPayloadInMessage] + "..."
		}
		message = fmt.Sprintf("%s (payload=%s)", message, payload)
	}
	return message
}

func (e *RemoteError) Unwrap() []error {
	if e == nil {
		return nil
	}
	if e.Err == nil {
		return []error{ErrRemote}
	}
	return []error{ErrRemote, e.Err}
}
