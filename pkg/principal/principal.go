package principal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aviate-labs/agent-go/principal"
)

const (
	// Anonymous is the text form of the anonymous principal.
	Anonymous = "2vxsx-fae"
	// ManagementCanister is the text form of the empty principal.
	ManagementCanister = "aaaaa-aa"

	maxPrincipalBytes = 29
)

var ErrInvalidPrincipal = errors.New("invalid principal text")

// Encode renders raw principal bytes in their canonical text form.
func Encode(raw []byte) string {
	return principal.Principal{Raw: raw}.String()
}

// Decode parses principal text and returns the raw principal bytes. Only the
// canonical lower-case grouping is accepted.
func Decode(text string) ([]byte, error) {
	parsed, err := parse(text)
	if err != nil {
		return nil, err
	}
	return append([]byte{}, parsed.Raw...), nil
}

func parse(text string) (principal.Principal, error) {
	trimmed := strings.ToLower(strings.TrimSpace(text))
	if trimmed == "" {
		return principal.Principal{}, fmt.Errorf("%w: value is empty", ErrInvalidPrincipal)
	}

	parsed, err := principal.Decode(trimmed)
	if err != nil {
		return principal.Principal{}, fmt.Errorf("%w: %v", ErrInvalidPrincipal, err)
	}
	if len(parsed.Raw) > maxPrincipalBytes {
		return principal.Principal{}, fmt.Errorf("%w: %d bytes exceeds maximum of %d", ErrInvalidPrincipal, len(parsed.Raw), maxPrincipalBytes)
	}
	if parsed.String() != trimmed {
		return principal.Principal{}, fmt.Errorf("%w: %s is not in canonical form", ErrInvalidPrincipal, text)
	}
	return parsed, nil
}

// Validate performs the requested operation.
func Validate(text string) error {
	_, err := parse(text)
	return err
}

// IsPrincipal reports whether text is a canonical principal.
func IsPrincipal(text string) bool {
	return Validate(text) == nil
}
