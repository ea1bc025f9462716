// Package shortid derives compact, URL-safe public identifiers for article
// slugs. The identifier is deterministic: the same slug always yields the
// same short id, so nothing extra has to be persisted to resolve one. The
// resolver recomputes ids over the known slugs and compares.
package shortid

import (
	"hash/fnv"
)

// chars is the base62 alphabet used for encoding.
var chars = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")

// Length is the fixed length of a short id.
const Length = 11

// FromSlug returns the short public identifier for a slug. The empty slug
// has no short id.
func FromSlug(slug string) string {
	if slug == "" {
		return ""
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(slug))

	return encode(h.Sum64())
}

// encode renders a 64-bit value in base62, left-padded to the fixed length.
func encode(v uint64) string {
	base := uint64(len(chars))
	out := make([]byte, Length)

	for i := Length - 1; i >= 0; i-- {
		out[i] = chars[v%base]
		v /= base
	}

	return string(out)
}
