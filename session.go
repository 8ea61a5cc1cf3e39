package sioclient

import (
	"log/slog"
	"sync"
	"time"

	"github.com/zweieuro/go-sioclient/internal/httptransport"
)

// defaultFailFastTimeout bounds the handshake and post requests, which
// should surface an unreachable server quickly rather than hang. The
// poll request has no such timeout: its deadline is derived from the
// server's ping-timeout once the handshake completes (see poll.go).
const defaultFailFastTimeout = 10 * time.Second

// transportHandle bundles a lazily-created Doer with the per-request
// accumulator state its event-driven C ancestor kept in a function-level
// static. Keeping the accumulator here, one per handle, per session, is
// the structural fix spec.md §9 calls for: with it, a Manager running
// more sessions than one can never have two in-flight requests
// corrupting each other's receive buffer, because each handle (and each
// session) owns its own.
type transportHandle struct {
	doer httptransport.Doer
}

// Session is the descriptor for one logical connection to a Socket.IO
// server — the direct port of sio_client_t. Every mutable field is
// guarded by mu; callers reach a Session only through
// Manager.GetAndLock/Unlock, mirroring sio_client_get_and_lock/
// unlockClient.
type Session struct {
	id    ClientID
	mu    sync.Mutex
	state sessionState

	eioVersion uint8
	transport  TransportKind

	serverAddress string
	sioURLPath    string
	namespace     string
	baseMAC       string
	allocAuthBody AuthBodyFunc

	recordSeparator   byte
	rebuildPostClient bool
	logger            *slog.Logger

	// One Doer factory per transport handle, so the handshake and post
	// handles can fail fast while the poll handle stays unbounded. All
	// three return cfg.Doer verbatim when the caller supplied one.
	handshakeDoerFactory func() httptransport.Doer
	pollDoerFactory      func() httptransport.Doer
	postDoerFactory      func() httptransport.Doer

	// Negotiated at handshake time; zero/empty until then.
	serverSessionID   string
	pingIntervalMS    int
	pingTimeoutMS     int

	handshake *transportHandle
	poll      *transportHandle
	post      *transportHandle
	ws        *websocketDialer

	pollingRunning bool
	pollDone       chan struct{}
	wg             sync.WaitGroup

	bus *Bus
}

func newSession(id ClientID, cfg Config, bus *Bus) *Session {
	// fixedDoer short-circuits every factory to the injected Doer (tests,
	// or a host program that wants one shared client); otherwise each
	// factory builds its own httptransport.Client with the timeout
	// appropriate to its handle.
	fixedOr := func(opts ...httptransport.ClientOption) func() httptransport.Doer {
		return func() httptransport.Doer {
			if cfg.Doer != nil {
				return cfg.Doer
			}
			return httptransport.NewClient(opts...)
		}
	}

	return &Session{
		id:                   id,
		state:                stateInitialized,
		eioVersion:           cfg.EIOVersion,
		transport:            cfg.Transport,
		serverAddress:        cfg.ServerAddress,
		sioURLPath:           cfg.SIOURLPath,
		namespace:            cfg.Namespace,
		baseMAC:              cfg.BaseMAC,
		allocAuthBody:        cfg.AllocAuthBodyCB,
		recordSeparator:      cfg.RecordSeparator,
		rebuildPostClient:    *cfg.RebuildPostClient,
		handshakeDoerFactory: fixedOr(httptransport.WithTimeout(defaultFailFastTimeout)),
		pollDoerFactory:      fixedOr(),
		postDoerFactory:      fixedOr(httptransport.WithTimeout(defaultFailFastTimeout)),
		logger:               cfg.Logger,
		pingIntervalMS:       0,
		pingTimeoutMS:        0,
		bus:                  bus,
	}
}

// ID returns the session's ClientID.
func (s *Session) ID() ClientID { return s.id }

// connected reports whether the session has a live session id and an
// active poll loop. Caller must hold s.mu.
func (s *Session) connectedLocked() bool {
	return s.serverSessionID != "" && s.pollingRunning
}

func (s *Session) log() *slog.Logger {
	if s.logger == nil {
		return discardLogger()
	}
	return s.logger.With("client_id", int(s.id))
}
