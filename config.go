package sioclient

import (
	"io"
	"log/slog"

	"github.com/zweieuro/go-sioclient/internal/httptransport"
)

// DefaultEIOVersion is the Engine.IO major version used when
// Config.EIOVersion is zero.
const DefaultEIOVersion = 4

// DefaultSIOURLPath is the URL path segment used when Config.SIOURLPath
// is empty.
const DefaultSIOURLPath = "/socket.io"

// DefaultNamespace is the Socket.IO namespace used when Config.Namespace
// is empty. Only the default namespace is supported (spec.md §1
// Non-goals).
const DefaultNamespace = "/"

// SessionIDLength is the expected length of the server-assigned session
// id, for callers that want to sanity-check it; this client does not
// enforce the length itself, since the server is authoritative.
const SessionIDLength = 20

// MaxRecvBuffer is the starting capacity hint for a polling response
// accumulator — the original's MAX_HTTP_RECV_BUFFER.
const MaxRecvBuffer = 512

// AuthBodyFunc produces the JSON auth payload sent as the body of the
// initial Socket.IO CONNECT packet. spec.md §9 notes the original
// declares this callback but hard-codes an empty auth body regardless —
// an unresolved ambiguity it explicitly tells implementers not to
// guess past. This port honors the callback when supplied and falls
// back to an empty string when it is nil, which is the one behavior the
// original unambiguously exhibits.
type AuthBodyFunc func(*Session) (string, error)

// Config is the set of options passed to Manager.Init, matching
// spec.md §6's option table plus the ambient additions SPEC_FULL.md
// adds (Doer, Logger, RecordSeparator, RebuildPostClient).
type Config struct {
	// EIOVersion is the Engine.IO major version; 0 selects
	// DefaultEIOVersion.
	EIOVersion uint8

	// Transport selects the wire transport. Only TransportPolling is
	// implemented.
	Transport TransportKind

	// BaseMAC is sent as the HTTP "MAC" header during the handshake.
	BaseMAC string

	// ServerAddress is required: host plus port, no scheme, no path.
	ServerAddress string

	// SIOURLPath defaults to DefaultSIOURLPath.
	SIOURLPath string

	// Namespace defaults to DefaultNamespace.
	Namespace string

	// AllocAuthBodyCB optionally produces the auth body sent with the
	// initial CONNECT packet.
	AllocAuthBodyCB AuthBodyFunc

	// Doer is the HTTP request/response collaborator. If nil, a
	// default built on httptransport.NewClient is used for each of the
	// session's three lazily-created transport handles.
	Doer httptransport.Doer

	// Logger receives structured diagnostic output. If nil, logging is
	// a no-op (slog.New(slog.DiscardHandler) in all but the oldest Go
	// toolchains; here built explicitly for portability).
	Logger *slog.Logger

	// RecordSeparator is the delimiter byte used to split a polling
	// response body into packets. Defaults to DefaultRecordSeparator.
	RecordSeparator byte

	// RebuildPostClient mirrors REBUILD_CLIENT_POST from the original:
	// when true (the default), the post transport handle is torn down
	// and rebuilt after every POST to work around a server/library
	// interaction bug the original never diagnosed further.
	RebuildPostClient *bool
}

func (c *Config) normalize() {
	if c.EIOVersion == 0 {
		c.EIOVersion = DefaultEIOVersion
	}
	if c.SIOURLPath == "" {
		c.SIOURLPath = DefaultSIOURLPath
	}
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
	if c.RecordSeparator == 0 {
		c.RecordSeparator = DefaultRecordSeparator
	}
	if c.RebuildPostClient == nil {
		t := true
		c.RebuildPostClient = &t
	}
	if c.Logger == nil {
		c.Logger = discardLogger()
	}
}

func (c *Config) validate() error {
	if c.ServerAddress == "" {
		return newErr(KindConfig, "Init", "server_address is required")
	}
	if c.Transport != TransportPolling && c.Transport != TransportWebsocket {
		return newErr(KindConfig, "Init", "unknown transport selector")
	}
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
