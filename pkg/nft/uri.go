package nft

import (
	"strings"

	"github.com/ipfs/go-cid"
)

const ipfsScheme = "ipfs://"

// NormalizeAssetURI rewrites IPFS references (bare CIDs, ipfs:// URIs and
// /ipfs/ gateway paths) to the canonical ipfs://<cid>[/path] form. Values
// that are not IPFS references are returned trimmed and otherwise untouched.
func NormalizeAssetURI(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	var reference string
	switch {
	case strings.HasPrefix(strings.ToLower(trimmed), ipfsScheme):
		reference = strings.TrimPrefix(trimmed[len(ipfsScheme):], "ipfs/")
	case strings.HasPrefix(trimmed, "/ipfs/"):
		reference = strings.TrimPrefix(trimmed, "/ipfs/")
	case !strings.Contains(trimmed, "://"):
		reference = trimmed
	default:
		return trimmed
	}

	contentID, path, ok := parseIPFSReference(reference)
	if !ok {
		return trimmed
	}
	return ipfsScheme + contentID.String() + path
}

func parseIPFSReference(reference string) (cid.Cid, string, bool) {
	candidate := reference
	path := ""
	if separator := strings.Index(reference, "/"); separator >= 0 {
		candidate = reference[:separator]
		path = reference[separator:]
	}
	contentID, err := cid.Decode(candidate)
	if err != nil {
		return cid.Undef, "", false
	}
	return contentID, path, true
}
