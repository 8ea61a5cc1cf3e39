package sioclient

import "sync"

// EventKind identifies what happened to a session. The six values match
// spec.md §6's event bus table exactly.
type EventKind int

const (
	EventReady EventKind = iota
	EventConnected
	EventReceivedMessage
	EventConnectError
	EventUpgradeTransportError
	EventDisconnected
)

func (k EventKind) String() string {
	switch k {
	case EventReady:
		return "ready"
	case EventConnected:
		return "connected"
	case EventReceivedMessage:
		return "received_message"
	case EventConnectError:
		return "connect_error"
	case EventUpgradeTransportError:
		return "upgrade_transport_error"
	case EventDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Event is the payload posted on a Bus. Batch is nil for kinds that
// don't carry packets (Ready, Disconnected); Len mirrors len(Batch) for
// convenience and for parity with the original's separate length field.
type Event struct {
	ClientID ClientID
	Kind     EventKind
	Batch    Batch
	Len      int
}

// Bus is a non-blocking broadcast event bus carrying session lifecycle
// Events. Subscribers receive events on buffered channels; a slow
// subscriber misses events rather than stalling every other subscriber
// or the goroutine publishing them (the poll loop, which must not block
// on a consumer to keep polling).
type Bus struct {
	mu         sync.RWMutex
	subs       map[chan Event]struct{}
	recvToSend map[<-chan Event]chan Event
}

// NewBus returns a ready-to-use, empty Bus.
func NewBus() *Bus {
	return &Bus{
		subs:       make(map[chan Event]struct{}),
		recvToSend: make(map[<-chan Event]chan Event),
	}
}

// Publish fans e out to every current subscriber. Safe to call on a nil
// *Bus (no-op), so a Manager constructed without one can still be used.
func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribe returns a channel that receives every Event published after
// the call, buffered to bufSize. The caller must eventually call
// Unsubscribe.
func (b *Bus) Subscribe(bufSize int) <-chan Event {
	ch := make(chan Event, bufSize)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[ch] = struct{}{}
	b.recvToSend[ch] = ch
	return ch
}

// Unsubscribe removes a subscription and closes its channel. Safe to
// call more than once for the same channel.
func (b *Bus) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	send, ok := b.recvToSend[ch]
	if !ok {
		return
	}
	delete(b.subs, send)
	delete(b.recvToSend, ch)
	close(send)
}
