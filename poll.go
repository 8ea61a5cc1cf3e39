package sioclient

import (
	"context"
	"time"
)

// pollLoop is the background task spawned by a successful Begin. It runs
// until Close clears pollingRunning, issuing one long-poll GET per
// iteration and dispatching whatever packets come back — the direct
// port of sio_polling_task.
func pollLoop(s *Session) {
	defer s.wg.Done()
	defer close(s.pollDone)

	log := s.log()
	log.Info("poll loop started")

	for {
		s.mu.Lock()
		if !s.pollingRunning {
			s.mu.Unlock()
			log.Info("poll loop stopping")
			break
		}
		if s.poll == nil {
			s.poll = &transportHandle{}
		}
		// The poll timeout is derived from the server's ping timeout,
		// matching the original's (very large, faithfully carried)
		// `2 * server_ping_timeout_ms * 1000` millisecond expression —
		// see DESIGN.md for why this is kept rather than "corrected".
		timeout := time.Duration(2*s.pingTimeoutMS*1000) * time.Millisecond
		s.mu.Unlock()

		ctx := context.Background()
		cancel := func() {}
		if timeout > 0 {
			ctx, cancel = context.WithTimeout(ctx, timeout)
		}

		batch, err := pollingGet(ctx, s)
		cancel()
		if err != nil {
			log.Warn("polling GET failed", "error", err)
			break
		}

		closeRequested := false
		for _, p := range batch {
			switch p.EIOKind {
			case EIOKindPing:
				pong := newControlPacket(EIOKindPong)
				if sendErr := sendPacketLocked(context.Background(), s, pong); sendErr != nil {
					log.Warn("failed to send PONG", "error", sendErr)
				}
			case EIOKindClose:
				closeRequested = true
			case EIOKindMessage:
				// Left for dispatch below.
			default:
				log.Warn("unhandled packet in poll response", "kind", p.EIOKind)
			}
		}
		if closeRequested {
			break
		}

		if len(batch) == 1 && batch[0].EIOKind != EIOKindMessage {
			// Single non-message packet (already serviced above, e.g. a
			// lone PING): nothing to dispatch this iteration.
			continue
		}

		s.bus.Publish(Event{ClientID: s.id, Kind: EventReceivedMessage, Batch: batch, Len: len(batch)})
	}

	s.bus.Publish(Event{ClientID: s.id, Kind: EventDisconnected})

	s.mu.Lock()
	s.pollingRunning = false
	s.poll = nil
	s.state = stateClosing
	s.mu.Unlock()
}

// sendPacketLocked sends packet through the standard POST path,
// acquiring the session's lock for the duration — used by the poll loop
// itself (for PONG replies) where the caller is not already holding the
// lock, unlike the public SendPacket/SendString entry points which are
// called through Manager.GetAndLock by the host application.
func sendPacketLocked(ctx context.Context, s *Session, packet *Packet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sendPacket(ctx, s, packet)
}
