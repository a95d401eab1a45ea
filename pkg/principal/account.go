package principal

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"hash/crc32"
	"strings"

	"github.com/aviate-labs/agent-go/principal"
)

const (
	SubaccountSize        = 32
	accountIdentifierSize = 32
	checksumSize          = 4
)

var (
	ErrInvalidSubaccount        = errors.New("subaccount must be 32 bytes")
	ErrInvalidAccountIdentifier = errors.New("invalid account identifier")
)

// AccountIdentifier derives the hex account identifier of a principal.
// A nil subaccount selects the default (all zero) subaccount.
func AccountIdentifier(principalText string, subaccount []byte) (string, error) {
	owner, err := parse(principalText)
	if err != nil {
		return "", err
	}

	var sub [SubaccountSize]byte
	if subaccount != nil {
		if len(subaccount) != SubaccountSize {
			return "", fmt.Errorf("%w: got %d", ErrInvalidSubaccount, len(subaccount))
		}
		copy(sub[:], subaccount)
	}

	return principal.NewAccountID(owner, sub).String(), nil
}

// ParseAccountIdentifier validates a hex account identifier and returns it in
// lower case. The leading four bytes are the CRC-32 of the SHA-224 hash.
func ParseAccountIdentifier(value string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	decoded, err := hex.DecodeString(normalized)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidAccountIdentifier, err)
	}
	if len(decoded) != accountIdentifierSize {
		return "", fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidAccountIdentifier, accountIdentifierSize, len(decoded))
	}
	if binary.BigEndian.Uint32(decoded[:checksumSize]) != crc32.ChecksumIEEE(decoded[checksumSize:]) {
		return "", fmt.Errorf("%w: checksum mismatch", ErrInvalidAccountIdentifier)
	}
	return normalized, nil
}

func IsAccountIdentifier(value string) bool {
	_, err := ParseAccountIdentifier(value)
	return err == nil
}
