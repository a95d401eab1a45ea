package ext

import (
	"github.com/tidwall/gjson"

	"github.com/hashgraph-online/nft-standards-sdk-go/internal/candid"
	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/nft"
)

const (
	tagOk  = "ok"
	tagErr = "err"

	errInvalidToken        = "InvalidToken"
	errUnauthorized        = "Unauthorized"
	errInsufficientBalance = "InsufficientBalance"
	errOther               = "Other"

	noTokensMessage = "No tokens"
)

// unwrap returns the ok payload of an EXT result or the classified err.
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
		errTag, _, _ := candid.Variant(payload)
		switch errTag {
		case errInvalidToken:
			return gjson.Result{}, a.classified(nft.ErrNotFound, method, token, errTag)
		case errUnauthorized, errInsufficientBalance:
			return gjson.Result{}, a.classified(nft.ErrUnauthorized, method, token, errTag)
		}
	}
	return gjson.Result{}, nft.UnexpectedResult(a.Standard(), a.ref.ID, method, raw)
}
