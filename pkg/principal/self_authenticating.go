package principal

import (
	"encoding/asn1"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/aviate-labs/agent-go/principal"
	"github.com/btcsuite/btcd/btcec/v2"
)

const selfAuthenticatingTag = 0x02

var (
	oidECPublicKey = asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}
	oidSecp256k1   = asn1.ObjectIdentifier{1, 3, 132, 0, 10}
)

type ecAlgorithmIdentifier struct {
	Algorithm asn1.ObjectIdentifier
	Curve     asn1.ObjectIdentifier
}

type subjectPublicKeyInfo struct {
	Algorithm ecAlgorithmIdentifier
	PublicKey asn1.BitString
}

// SelfAuthenticating derives the principal owned by a DER encoded public key.
func SelfAuthenticating(publicKeyDER []byte) string {
	return principal.NewSelfAuthenticating(publicKeyDER).String()
}

// FromSecp256k1PublicKey derives the self-authenticating principal of a
// secp256k1 public key.
func FromSecp256k1PublicKey(publicKey *btcec.PublicKey) (string, error) {
	if publicKey == nil {
		return "", fmt.Errorf("public key is required")
	}

	point := publicKey.SerializeUncompressed()
	der, err := asn1.Marshal(subjectPublicKeyInfo{
		Algorithm: ecAlgorithmIdentifier{
			Algorithm: oidECPublicKey,
			Curve:     oidSecp256k1,
		},
		PublicKey: asn1.BitString{Bytes: point, BitLength: len(point) * 8},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode secp256k1 public key: %w", err)
	}

	return SelfAuthenticating(der), nil
}

// FromSecp256k1Hex parses a compressed or uncompressed hex public key.
func FromSecp256k1Hex(publicKeyHex string) (string, error) {
	decoded, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(publicKeyHex), "0x"))
	if err != nil {
		return "", fmt.Errorf("invalid public key hex: %w", err)
	}
	publicKey, err := btcec.ParsePubKey(decoded)
	if err != nil {
		return "", fmt.Errorf("invalid secp256k1 public key: %w", err)
	}
	return FromSecp256k1PublicKey(publicKey)
}
