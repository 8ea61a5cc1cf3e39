package sioclient

import (
	"context"
	"errors"
	"time"

	"github.com/gorilla/websocket"
)

// ErrNotImplemented is returned by every WebSocket-transport code path.
// spec.md §1 reserves WebSockets "as a future variant" and lists
// "transport upgrade from polling to a streaming transport" as an
// explicit Non-goal; this port goes one step further than the original
// (which simply asserts false) by giving the transport a real,
// TransportKind-selectable type backed by gorilla/websocket's Dialer and
// Conn, so a host program can see the shape a working implementation
// would have — without pretending one exists.
var ErrNotImplemented = errors.New("sioclient: websocket transport is not implemented")

// websocketDialer mirrors the fields a real implementation would need:
// a configured gorilla/websocket.Dialer and, once connected, the
// resulting Conn. No code path ever populates conn — see
// handshakeWebsocket and sendPacketWebsocket below.
type websocketDialer struct {
	dialer websocket.Dialer
	conn   *websocket.Conn
}

func newWebsocketDialer() *websocketDialer {
	return &websocketDialer{
		dialer: websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
		},
	}
}

// sendPacketWebsocket is the WebSocket-transport analogue of
// pollingPost. Reserved; see ErrNotImplemented.
func sendPacketWebsocket(_ context.Context, _ *Session, _ *Packet) error {
	return ErrNotImplemented
}
