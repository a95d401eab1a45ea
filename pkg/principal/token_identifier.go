package principal

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

var ErrInvalidTokenIdentifier = errors.New("invalid token identifier")

var tokenIdentifierPrefix = []byte("\x0Atid")

// EncodeTokenIdentifier builds the composite identifier that EXT contracts use
// for the token at index inside canister.
func EncodeTokenIdentifier(canister string, index uint32) (string, error) {
	raw, err := Decode(canister)
	if err != nil {
		return "", err
	}

	payload := make([]byte, 0, len(tokenIdentifierPrefix)+len(raw)+4)
	payload = append(payload, tokenIdentifierPrefix...)
	payload = append(payload, raw...)
	payload = binary.BigEndian.AppendUint32(payload, index)

	return Encode(payload), nil
}

// DecodeTokenIdentifier splits a composite identifier into its canister and
// token index.
func DecodeTokenIdentifier(identifier string) (string, uint32, error) {
	raw, err := Decode(identifier)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrInvalidTokenIdentifier, err)
	}
	if !bytes.HasPrefix(raw, tokenIdentifierPrefix) {
		return "", 0, fmt.Errorf("%w: missing tid prefix", ErrInvalidTokenIdentifier)
	}

	body := raw[len(tokenIdentifierPrefix):]
	if len(body) < 4 {
		return "", 0, fmt.Errorf("%w: missing token index", ErrInvalidTokenIdentifier)
	}

	canister := Encode(body[:len(body)-4])
	index := binary.BigEndian.Uint32(body[len(body)-4:])
	return canister, index, nil
}
