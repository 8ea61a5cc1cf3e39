package sioclient

import "fmt"

// Packet is one Engine.IO/Socket.IO frame. It corresponds to Packet_t in
// the original client: an Engine.IO kind, a Socket.IO kind (meaningful
// only when EIOKind is EIOKindMessage), the raw on-wire bytes, and the
// index into Data at which the JSON payload begins.
//
// Unlike the C original, Packet owns no C heap allocation to free: Data
// is a plain Go slice reclaimed by the garbage collector. JSONStart is an
// index rather than a pointer for the same reason — there is nothing to
// invalidate, but the index is only meaningful relative to the Data this
// packet held when it was parsed.
type Packet struct {
	EIOKind  EIOKind
	SIOKind  SIOKind
	Data     []byte
	JSONStart int // -1 if absent
}

// JSON returns the JSON payload, or the empty string if this packet
// carries none.
func (p *Packet) JSON() string {
	if p.JSONStart < 0 || p.JSONStart >= len(p.Data) {
		return ""
	}
	return string(p.Data[p.JSONStart:])
}

// ParsePacket populates p.EIOKind, p.SIOKind and p.JSONStart from p.Data,
// following the table in spec.md §4.1 exactly.
func ParsePacket(p *Packet) error {
	if len(p.Data) < 1 {
		p.EIOKind = EIOKindNone
		p.SIOKind = SIOKindNone
		p.JSONStart = -1
		return newErr(KindProtocol, "ParsePacket", "packet length is less than 1")
	}

	p.JSONStart = -1

	if len(p.Data) == 2 && p.Data[0] == 'o' && p.Data[1] == 'k' {
		p.EIOKind = EIOKindOkServer
		p.SIOKind = SIOKindNone
		return nil
	}

	eio := EIOKind(int8(p.Data[0]) - '0')
	if !eio.valid() {
		p.EIOKind = EIOKindNone
		p.SIOKind = SIOKindNone
		return newErr(KindProtocol, "ParsePacket", fmt.Sprintf("unrecognized engine.io indicator %q", p.Data[0]))
	}
	p.EIOKind = eio
	p.SIOKind = SIOKindNone

	if len(p.Data) <= 2 {
		// Single indicator byte (plus at most one more); nothing more
		// to extract.
		return nil
	}

	switch p.EIOKind {
	case EIOKindOpen:
		p.JSONStart = 1

	case EIOKindMessage:
		sio := SIOKind(int8(p.Data[1]) - '0')
		if !sio.valid() {
			// Matches the original's "unknown packet type" warning
			// path: leave SIOKind as SIOKindNone rather than fail the
			// whole parse.
			return nil
		}
		p.SIOKind = sio
		for i := 2; i < len(p.Data); i++ {
			if p.Data[i] == '{' || p.Data[i] == '[' {
				p.JSONStart = i
				break
			}
		}

	default:
		// Other kinds with len > 2: warn-and-ignore in the original.
	}

	return nil
}

// BuildEventMessage constructs a Socket.IO EVENT packet. If event is
// empty, the body is "42"+json; otherwise it is
// "42[\"event\",json]", matching spec.md §4.1 / §6.
func BuildEventMessage(event, json string) *Packet {
	var data []byte
	if event == "" {
		data = make([]byte, 0, 2+len(json))
		data = append(data, '4', '2')
		data = append(data, json...)
	} else {
		data = make([]byte, 0, 2+2+len(event)+2+len(json)+1)
		data = append(data, '4', '2', '[', '"')
		data = append(data, event...)
		data = append(data, '"', ',')
		data = append(data, json...)
		data = append(data, ']')
	}
	return &Packet{
		EIOKind:   EIOKindMessage,
		SIOKind:   SIOKindEvent,
		Data:      data,
		JSONStart: -1,
	}
}

// newControlPacket builds a bare two-byte control packet such as PING,
// PONG or CLOSE — the original's calloc(1,2)+setEioType idiom.
func newControlPacket(kind EIOKind) *Packet {
	p := &Packet{Data: make([]byte, 2), JSONStart: -1}
	p.Data[0] = byte(kind) + '0'
	p.Data[1] = 0
	p.EIOKind = kind
	return p
}

// SetEIOKind rewrites the packet's Engine.IO indicator byte in place,
// matching setEioType from the original.
func (p *Packet) SetEIOKind(kind EIOKind) error {
	if len(p.Data) < 1 {
		return newErr(KindState, "SetEIOKind", "packet has no data to rewrite")
	}
	p.Data[0] = byte(kind) + '0'
	p.EIOKind = kind
	return nil
}

// SetSIOKind rewrites the packet's Socket.IO indicator byte in place.
// It is a no-op returning an error unless the packet's EIOKind is
// EIOKindMessage, matching setSioType from the original.
func (p *Packet) SetSIOKind(kind SIOKind) error {
	if p.EIOKind != EIOKindMessage {
		return newErr(KindState, "SetSIOKind", "packet is not a message packet, cannot set sio kind")
	}
	if len(p.Data) < 2 {
		return newErr(KindState, "SetSIOKind", "packet has no second byte to rewrite")
	}
	p.Data[1] = byte(kind) + '0'
	p.SIOKind = kind
	return nil
}
