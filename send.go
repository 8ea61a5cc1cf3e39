package sioclient

import "context"

// SendPacket sends packet through the session's wire transport. It
// refuses with KindState if the handshake has not completed, matching
// spec.md §4.5's "Send (public)".
func (m *Manager) SendPacket(id ClientID, packet *Packet) error {
	s, err := m.GetAndLock(id)
	if err != nil {
		return err
	}
	defer m.Unlock(s)
	return sendPacket(context.Background(), s, packet)
}

// sendPacket is the internal, already-locked send path shared by
// SendPacket and the poll loop's PONG replies.
func sendPacket(ctx context.Context, s *Session, packet *Packet) error {
	if s.serverSessionID == "" {
		return newErr(KindState, "SendPacket", "server session id not set, handshake not completed")
	}
	if s.post == nil {
		s.post = &transportHandle{}
	}

	switch s.transport {
	case TransportPolling:
		return pollingPost(ctx, s, packet)
	case TransportWebsocket:
		return sendPacketWebsocket(ctx, s, packet)
	default:
		return newErr(KindConfig, "SendPacket", "unknown transport selector")
	}
}

// SendString builds an EVENT packet from event and data (raw JSON) and
// sends it, matching sio_send_string.
func (m *Manager) SendString(id ClientID, event, data string) error {
	packet := BuildEventMessage(event, data)
	return m.SendPacket(id, packet)
}

// IsConnected reports whether the session at id has a live session id
// and a running poll loop.
func (m *Manager) IsConnected(id ClientID) bool {
	s, err := m.GetAndLock(id)
	if err != nil {
		return false
	}
	defer m.Unlock(s)
	return s.connectedLocked()
}
