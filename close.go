package sioclient

import "context"

// Close stops the session's poll loop and sends a final CLOSE packet.
// It does not destroy the session — callers that want the slot freed
// must call Manager.Destroy afterward, matching spec.md §4.5.
//
// Unlike the original, which busy-waits (yielding) for the poll task to
// notice pollingRunning went false, this waits on pollDone — a channel
// the poll loop closes on its way out — retiring the busy-wait spec.md
// §9 explicitly calls out for replacement with "a join handle or a
// completion notification".
func (m *Manager) Close(id ClientID) error {
	s, err := m.GetAndLock(id)
	if err != nil {
		return err
	}

	if s.serverSessionID == "" {
		m.Unlock(s)
		return newErr(KindState, "Close", "server session id not set, socket not connected")
	}

	s.pollingRunning = false
	pollDone := s.pollDone
	m.Unlock(s)

	if pollDone != nil {
		<-pollDone
	}

	closePacket := newControlPacket(EIOKindClose)
	return m.SendPacket(id, closePacket)
}
