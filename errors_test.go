package sioclient

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorIsMatchesByKind(t *testing.T) {
	err := newErr(KindState, "Op", "boom")
	if !errors.Is(err, &Error{Kind: KindState}) {
		t.Fatal("errors.Is should match on Kind alone")
	}
	if errors.Is(err, &Error{Kind: KindConfig}) {
		t.Fatal("errors.Is should not match a different Kind")
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := wrapErr(KindTransport, "Op", "wrapping", cause)
	if !errors.Is(err, cause) {
		t.Fatal("errors.Is should see through Unwrap to the cause")
	}
}

func TestTokenLengthAndCharset(t *testing.T) {
	tok := randomToken(TokenLength)
	if len(tok) != TokenLength {
		t.Fatalf("len(token) = %d, want %d", len(tok), TokenLength)
	}
	for _, c := range tok {
		if !strings.ContainsRune(tokenCharset, c) {
			t.Fatalf("token %q contains a byte outside tokenCharset", tok)
		}
	}
}
