package sioclient

import (
	"context"
	"net/http"

	"github.com/zweieuro/go-sioclient/internal/handshakejson"
)

// Begin performs the handshake for the session at id and, on success,
// starts its poll loop and posts an EventConnected event. On failure it
// posts an EventConnectError event carrying whatever packets were
// received. It corresponds to sio_client_begin + handshake_polling from
// the original.
func (m *Manager) Begin(id ClientID) error {
	s, err := m.GetAndLock(id)
	if err != nil {
		return err
	}
	defer m.Unlock(s)

	return begin(context.Background(), s)
}

func begin(ctx context.Context, s *Session) error {
	if s.pollingRunning {
		return newErr(KindState, "Begin", "poll loop already running, close the session first")
	}
	if s.transport != TransportPolling {
		return handshakeWebsocket(ctx, s)
	}
	return handshakePolling(ctx, s)
}

func handshakePolling(ctx context.Context, s *Session) error {
	s.state = stateHandshaking

	if s.handshake == nil {
		s.handshake = &transportHandle{}
	}

	url := handshakeURL(s)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return wrapErr(KindTransport, "Begin", "building handshake request", err)
	}
	req.Header.Set("Content-Type", "text/html")
	req.Header.Set("Accept", "text/plain")
	if s.baseMAC != "" {
		req.Header.Set("MAC", s.baseMAC)
	}

	batch, _, err := doRequest(ctx, s.handshake, s.handshakeDoerFactory, req, s.recordSeparator)
	if err != nil {
		s.bus.Publish(Event{ClientID: s.id, Kind: EventConnectError, Batch: batch, Len: len(batch)})
		return wrapErr(KindTransport, "Begin", "handshake GET failed", err)
	}

	if len(batch) != 1 {
		s.bus.Publish(Event{ClientID: s.id, Kind: EventConnectError, Batch: batch, Len: len(batch)})
		return newErr(KindProtocol, "Begin", "expected exactly one handshake packet")
	}
	open := batch[0]
	if open.EIOKind != EIOKindOpen {
		s.bus.Publish(Event{ClientID: s.id, Kind: EventConnectError, Batch: batch, Len: len(batch)})
		return newErr(KindProtocol, "Begin", "expected an OPEN packet")
	}

	payload, err := handshakejson.Extract(open.JSON())
	if err != nil {
		s.bus.Publish(Event{ClientID: s.id, Kind: EventConnectError, Batch: batch, Len: len(batch)})
		return wrapErr(KindProtocol, "Begin", "parsing handshake JSON", err)
	}
	s.serverSessionID = payload.SID
	s.pingIntervalMS = payload.PingInterval
	s.pingTimeoutMS = payload.PingTimeout

	authBody := ""
	if s.allocAuthBody != nil {
		authBody, err = s.allocAuthBody(s)
		if err != nil {
			s.bus.Publish(Event{ClientID: s.id, Kind: EventConnectError, Batch: batch, Len: len(batch)})
			return wrapErr(KindConfig, "Begin", "auth body callback failed", err)
		}
	}

	connectPacket := BuildEventMessage("", authBody)
	connectPacket.SetSIOKind(SIOKindConnect)

	if s.post == nil {
		s.post = &transportHandle{}
	}
	if err := pollingPost(ctx, s, connectPacket); err != nil {
		s.bus.Publish(Event{ClientID: s.id, Kind: EventConnectError, Batch: batch, Len: len(batch)})
		return err
	}

	s.pollingRunning = true
	s.state = stateConnected
	s.pollDone = make(chan struct{})

	s.wg.Add(1)
	go pollLoop(s)

	s.bus.Publish(Event{ClientID: s.id, Kind: EventConnected, Batch: batch, Len: len(batch)})
	return nil
}

// handshakeWebsocket is reserved; see transport_websocket.go. It still
// builds the dialer a working implementation would use, so the shape of
// the reserved transport is visible even though no code path completes
// a connection with it.
func handshakeWebsocket(_ context.Context, s *Session) error {
	s.ws = newWebsocketDialer()
	return ErrNotImplemented
}
