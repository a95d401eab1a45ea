// Package candid decodes the JSON rendering of remote values that the
// adapters receive from a transport.
package candid

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/principal"
)

// Parse validates raw JSON and returns its root value.
func Parse(raw []byte) (gjson.Result, bool) {
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, false
	}
	return gjson.ParseBytes(raw), true
}

// Variant returns the tag and payload of a variant value. Variants are
// single-key objects; a bare string is accepted for payload-less tags.
func Variant(value gjson.Result) (string, gjson.Result, bool) {
	if value.Type == gjson.String {
		return value.Str, gjson.Result{}, value.Str != ""
	}
	if !value.IsObject() {
		return "", gjson.Result{}, false
	}

	var tag string
	var payload gjson.Result
	count := 0
	value.ForEach(func(key, field gjson.Result) bool {
		count++
		tag = key.Str
		payload = field
		return count < 2
	})
	if count != 1 {
		return "", gjson.Result{}, false
	}
	return tag, payload, true
}

// Opt unwraps an optional value rendered as an array of zero or one element.
// null is accepted as none.
func Opt(value gjson.Result) (gjson.Result, bool, bool) {
	if value.Type == gjson.Null {
		return gjson.Result{}, false, true
	}
	if !value.IsArray() {
		return gjson.Result{}, false, false
	}
	elements := value.Array()
	switch len(elements) {
	case 0:
		return gjson.Result{}, false, true
	case 1:
		return elements[0], true, true
	default:
		return gjson.Result{}, false, false
	}
}

// Nat decodes a natural number given as a JSON number or decimal string.
func Nat(value gjson.Result) (uint64, bool) {
	switch value.Type {
	case gjson.Number:
		parsed, err := strconv.ParseUint(value.Raw, 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	case gjson.String:
		parsed, err := strconv.ParseUint(strings.ReplaceAll(value.Str, "_", ""), 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// NatList decodes a vector of naturals.
func NatList(value gjson.Result) ([]uint64, bool) {
	if !value.IsArray() {
		return nil, false
	}
	elements := value.Array()
	result := make([]uint64, 0, len(elements))
	for _, element := range elements {
		parsed, ok := Nat(element)
		if !ok {
			return nil, false
		}
		result = append(result, parsed)
	}
	return result, true
}

// Text decodes a JSON string.
func Text(value gjson.Result) (string, bool) {
	if value.Type != gjson.String {
		return "", false
	}
	return value.Str, true
}

// Principal decodes principal text and checks that it is canonical.
func Principal(value gjson.Result) (string, bool) {
	text, ok := Text(value)
	if !ok || !principal.IsPrincipal(text) {
		return "", false
	}
	return text, true
}

// Blob decodes a byte vector rendered as an array of numbers.
func Blob(value gjson.Result) ([]byte, bool) {
	if !value.IsArray() {
		return nil, false
	}
	elements := value.Array()
	result := make([]byte, 0, len(elements))
	for _, element := range elements {
		parsed, ok := Nat(element)
		if !ok || parsed > 0xff {
			return nil, false
		}
		result = append(result, byte(parsed))
	}
	return result, true
}
