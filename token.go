package sioclient

import "math/rand"

// TokenLength is the length of the cache-busting token appended to every
// polling/handshake URL as the `t` query parameter.
const TokenLength = 7

const tokenCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// randomToken returns a length-character string drawn from tokenCharset.
// The token is a cache-buster, not a secret, so this intentionally uses
// math/rand rather than crypto/rand — spec.md §9 is explicit that the
// off-by-one in the original (`rand() % sizeof(charset) - 1`, which
// applies the modulo before the subtraction and so occasionally indexes
// one byte before the charset array) should be fixed in place rather
// than used as an excuse to switch to a cryptographic generator. The fix
// is `% len(charset)`, the full, inclusive index range.
func randomToken(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = tokenCharset[rand.Intn(len(tokenCharset))]
	}
	return string(b)
}
