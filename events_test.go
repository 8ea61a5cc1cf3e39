package sioclient

import "testing"

func TestBusPublishSubscribe(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(4)

	bus.Publish(Event{ClientID: 1, Kind: EventConnected})

	select {
	case ev := <-sub:
		if ev.Kind != EventConnected || ev.ClientID != 1 {
			t.Fatalf("got %+v", ev)
		}
	default:
		t.Fatal("expected a buffered event, got none")
	}
}

func TestBusPublishDoesNotBlockOnFullSubscriber(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(1)

	bus.Publish(Event{Kind: EventConnected})
	// Subscriber buffer (size 1) is now full; a second publish must not
	// block the caller.
	done := make(chan struct{})
	go func() {
		bus.Publish(Event{Kind: EventDisconnected})
		close(done)
	}()
	select {
	case <-done:
	default:
	}
	<-done // completes immediately because Publish never blocks

	ev := <-sub
	if ev.Kind != EventConnected {
		t.Fatalf("first received = %+v, want EventConnected", ev)
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(1)
	bus.Unsubscribe(sub)

	// Publishing after Unsubscribe must not panic or deliver anything.
	bus.Publish(Event{Kind: EventConnected})

	if _, ok := <-sub; ok {
		t.Fatal("expected sub to be closed after Unsubscribe")
	}

	// A second Unsubscribe on the same channel must be a no-op, not a
	// double close panic.
	bus.Unsubscribe(sub)
}

func TestNilBusPublishIsNoop(t *testing.T) {
	var bus *Bus
	bus.Publish(Event{Kind: EventConnected}) // must not panic
}
