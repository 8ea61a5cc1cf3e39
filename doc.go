/*
Package sioclient is a client for the Socket.IO realtime protocol running
atop Engine.IO. It is aimed at resource-constrained, long-running programs
that need a small number of simultaneous logical sessions to a Socket.IO
server over the HTTP long-polling transport (a WebSocket transport is
reserved as a future variant; see transport_websocket.go).

The package grew out of a microcontroller-oriented C client and keeps its
shape: a fixed-capacity registry of sessions addressed by a small integer
id, a per-session mutex guarding everything the session owns, and a
background goroutine per connected session that repeatedly issues long
polls and dispatches whatever it receives onto an event bus.

A minimal client looks like this:

	mgr := sioclient.NewManager(4, sioclient.ManagerOptions{})

	id, err := mgr.Init(sioclient.Config{
		ServerAddress: "example.com:3000",
		BaseMAC:       "de:ad:be:ef:00:01",
	})
	if err != nil {
		log.Fatal(err)
	}

	sub := mgr.Events().Subscribe(16)
	if err := mgr.Begin(id); err != nil {
		log.Fatal(err)
	}

	for ev := range sub {
		switch ev.Kind {
		case sioclient.EventConnected:
			mgr.SendString(id, "hello", `{"from":"gopher"}`)
		case sioclient.EventReceivedMessage:
			log.Printf("got %d packets", ev.Len)
		}
	}

Ownership and lifetime follow Go conventions rather than the original's
manual alloc/free pairs: a Packet's buffer and a Batch's packets are
reclaimed by the garbage collector once nothing references them, so there
are no Free functions in this port. Everything else — the packet codec,
the framing, the state machine, the locking discipline — is a direct,
idiomatic port of the original client's behavior.
*/
package sioclient
