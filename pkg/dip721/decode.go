package dip721

import (
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/hashgraph-online/nft-standards-sdk-go/internal/candid"
	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/nft"
)

const (
	tagOk  = "Ok"
	tagErr = "Err"

	errOwnerNotFound        = "OwnerNotFound"
	errTokenNotFound        = "TokenNotFound"
	errUnauthorizedOwner    = "UnauthorizedOwner"
	errUnauthorizedOperator = "UnauthorizedOperator"

	propertyName        = "name"
	propertyDescription = "description"
	propertyLocation    = "location"
)

// resultError reports the NftError tag of an Err result.
func resultError(root gjson.Result) (string, string, bool) {
	tag, payload, ok := candid.Variant(root)
	if !ok || tag != tagErr {
		return "", "", false
	}
	errTag, _, ok := candid.Variant(payload)
	if !ok {
		return tag, "", true
	}
	return tag, errTag, true
}

// unwrap returns the Ok payload or the classified Err.
func (a *Adapter) unwrap(method string, token nft.TokenID, raw nft.RawResult) (gjson.Result, error) {
	root, ok := candid.Parse(raw)
	if !ok {
		return gjson.Result{}, nft.UnexpectedResult(a.Standard(), a.ref.ID, method, raw)
	}
	tag, payload, ok := candid.Variant(root)
	if !ok {
		return gjson.Result{}, nft.UnexpectedResult(a.Standard(), a.ref.ID, method, raw)
	}
	switch tag {
	case tagOk:
		return payload, nil
	case tagErr:
		_, errTag, _ := resultError(root)
		return gjson.Result{}, a.classify(method, token, errTag, raw)
	default:
		return gjson.Result{}, nft.UnexpectedResult(a.Standard(), a.ref.ID, method, raw)
	}
}

func (a *Adapter) classify(method string, token nft.TokenID, errTag string, raw nft.RawResult) error {
	switch errTag {
	case errTokenNotFound, errOwnerNotFound:
		return a.classified(nft.ErrNotFound, method, token, errTag)
	case errUnauthorizedOwner, errUnauthorizedOperator:
		return a.classified(nft.ErrUnauthorized, method, token, errTag)
	default:
		return nft.UnexpectedResult(a.Standard(), a.ref.ID, method, raw)
	}
}

func decodeTokenMetadata(value gjson.Result, index uint64) (nft.TokenMetadata, bool) {
	if !value.IsObject() {
		return nft.TokenMetadata{}, false
	}
	identifier, ok := candid.Nat(value.Get("token_identifier"))
	if !ok || identifier != index {
		return nft.TokenMetadata{}, false
	}

	metadata := nft.TokenMetadata{
		Index:       nft.Present(identifier),
		Owner:       nft.Absent[nft.OwnerRef](),
		Name:        nft.Absent[string](),
		Description: nft.Absent[string](),
		URI:         nft.Absent[string](),
		Content:     nft.Unsupported[[]byte](),
	}

	ownerValue, present, ok := candid.Opt(value.Get("owner"))
	if !ok {
		return nft.TokenMetadata{}, false
	}
	if present {
		owner, ok := candid.Principal(ownerValue)
		if !ok {
			return nft.TokenMetadata{}, false
		}
		metadata.Owner = nft.Present(nft.PrincipalOwner(owner))
	}

	properties := value.Get("properties")
	if properties.Exists() && !properties.IsArray() {
		return nft.TokenMetadata{}, false
	}
	attributes := make([]nft.Attribute, 0)
	for _, property := range properties.Array() {
		pair := property.Array()
		if len(pair) != 2 {
			return nft.TokenMetadata{}, false
		}
		key, ok := candid.Text(pair[0])
		if !ok {
			return nft.TokenMetadata{}, false
		}
		text, ok := genericValueText(pair[1])
		if !ok {
			return nft.TokenMetadata{}, false
		}
		attributes = append(attributes, nft.Attribute{Key: key, Value: text})

		switch key {
		case propertyName:
			metadata.Name = nft.Present(text)
		case propertyDescription:
			metadata.Description = nft.Present(text)
		case propertyLocation:
			metadata.URI = nft.Present(nft.NormalizeAssetURI(text))
		}
	}
	metadata.Attributes = nft.Present(attributes)

	return metadata, true
}

// genericValueText renders scalar GenericValue variants as text. Nested and
// binary values keep their JSON rendering.
func genericValueText(value gjson.Result) (string, bool) {
	tag, payload, ok := candid.Variant(value)
	if !ok {
		return "", false
	}
	switch tag {
	case "TextContent", "Principal":
		return candid.Text(payload)
	case "BoolContent":
		if !payload.IsBool() {
			return "", false
		}
		return strconv.FormatBool(payload.Bool()), true
	case "NatContent", "Nat64Content", "Nat32Content", "Nat16Content", "Nat8Content":
		number, ok := candid.Nat(payload)
		if !ok {
			return "", false
		}
		return strconv.FormatUint(number, 10), true
	case "IntContent", "Int64Content", "Int32Content", "Int16Content", "Int8Content", "FloatContent":
		if payload.Type != gjson.Number && payload.Type != gjson.String {
			return "", false
		}
		if payload.Type == gjson.String {
			return payload.Str, true
		}
		return payload.Raw, true
	default:
		return payload.Raw, true
	}
}
