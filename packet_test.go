package sioclient

import "testing"

func TestParsePacketOpen(t *testing.T) {
	p := &Packet{Data: []byte(`0{"sid":"abc123","pingInterval":25000,"pingTimeout":20000}`)}
	if err := ParsePacket(p); err != nil {
		t.Fatalf("ParsePacket: %v", err)
	}
	if p.EIOKind != EIOKindOpen {
		t.Fatalf("EIOKind = %v, want Open", p.EIOKind)
	}
	if p.JSON() != `{"sid":"abc123","pingInterval":25000,"pingTimeout":20000}` {
		t.Fatalf("JSON() = %q", p.JSON())
	}
}

func TestParsePacketOkServer(t *testing.T) {
	p := &Packet{Data: []byte("ok")}
	if err := ParsePacket(p); err != nil {
		t.Fatalf("ParsePacket: %v", err)
	}
	if p.EIOKind != EIOKindOkServer {
		t.Fatalf("EIOKind = %v, want OkServer", p.EIOKind)
	}
	if p.JSON() != "" {
		t.Fatalf("JSON() = %q, want empty", p.JSON())
	}
}

func TestParsePacketControlBytes(t *testing.T) {
	tests := []struct {
		data []byte
		kind EIOKind
	}{
		{[]byte("2"), EIOKindPing},
		{[]byte("3"), EIOKindPong},
		{[]byte("1"), EIOKindClose},
		{[]byte("6"), EIOKindNoop},
	}
	for _, tt := range tests {
		p := &Packet{Data: tt.data}
		if err := ParsePacket(p); err != nil {
			t.Fatalf("ParsePacket(%q): %v", tt.data, err)
		}
		if p.EIOKind != tt.kind {
			t.Errorf("ParsePacket(%q) = %v, want %v", tt.data, p.EIOKind, tt.kind)
		}
	}
}

func TestParsePacketUnrecognizedIndicator(t *testing.T) {
	p := &Packet{Data: []byte("9garbage")}
	if err := ParsePacket(p); err == nil {
		t.Fatal("expected an error for an unrecognized indicator byte")
	}
	if p.EIOKind != EIOKindNone {
		t.Fatalf("EIOKind = %v, want None", p.EIOKind)
	}
}

func TestParsePacketEmpty(t *testing.T) {
	p := &Packet{Data: nil}
	if err := ParsePacket(p); err == nil {
		t.Fatal("expected an error for empty packet data")
	}
}

func TestParsePacketMessageEvent(t *testing.T) {
	p := &Packet{Data: []byte(`42["chat",{"msg":"hi"}]`)}
	if err := ParsePacket(p); err != nil {
		t.Fatalf("ParsePacket: %v", err)
	}
	if p.EIOKind != EIOKindMessage || p.SIOKind != SIOKindEvent {
		t.Fatalf("kinds = %v/%v, want Message/Event", p.EIOKind, p.SIOKind)
	}
	if p.JSON() != `["chat",{"msg":"hi"}]` {
		t.Fatalf("JSON() = %q", p.JSON())
	}
}

func TestParsePacketMessageUnknownSIOKind(t *testing.T) {
	// '9' - '0' = 9, outside the enumerated SIOKind range.
	p := &Packet{Data: []byte(`49{"x":1}`)}
	if err := ParsePacket(p); err != nil {
		t.Fatalf("ParsePacket should not fail on an unknown sio kind: %v", err)
	}
	if p.SIOKind != SIOKindNone {
		t.Fatalf("SIOKind = %v, want None for an unrecognized sio indicator", p.SIOKind)
	}
}

func TestBuildEventMessageNoEventName(t *testing.T) {
	p := BuildEventMessage("", `{"a":1}`)
	if string(p.Data) != `42{"a":1}` {
		t.Fatalf("Data = %q", p.Data)
	}
	if p.EIOKind != EIOKindMessage || p.SIOKind != SIOKindEvent {
		t.Fatalf("kinds = %v/%v", p.EIOKind, p.SIOKind)
	}
}

func TestBuildEventMessageWithEventName(t *testing.T) {
	p := BuildEventMessage("chat", `{"a":1}`)
	if string(p.Data) != `42["chat",{"a":1}]` {
		t.Fatalf("Data = %q", p.Data)
	}
}

func TestSetEIOAndSIOKind(t *testing.T) {
	p := newControlPacket(EIOKindPing)
	if err := p.SetEIOKind(EIOKindPong); err != nil {
		t.Fatalf("SetEIOKind: %v", err)
	}
	if p.Data[0] != '3' || p.EIOKind != EIOKindPong {
		t.Fatalf("SetEIOKind did not rewrite packet: %+v", p)
	}

	msg := BuildEventMessage("", "{}")
	if err := msg.SetSIOKind(SIOKindAck); err != nil {
		t.Fatalf("SetSIOKind: %v", err)
	}
	if msg.Data[1] != '3' || msg.SIOKind != SIOKindAck {
		t.Fatalf("SetSIOKind did not rewrite packet: %+v", msg)
	}

	ctrl := newControlPacket(EIOKindPing)
	if err := ctrl.SetSIOKind(SIOKindAck); err == nil {
		t.Fatal("SetSIOKind should refuse on a non-message packet")
	}
}
