package sioclient

// Batch is a bounded, ordered sequence of packets produced by one polling
// response body. Spec.md §9 calls out the original's null-terminated
// array of owning pointers for replacement with "a growable sequence of
// owned packets" — a plain slice is that sequence; there is no sentinel
// element and no explicit free.
type Batch []*Packet

// DefaultRecordSeparator is the delimiter byte the original client uses
// between concatenated packets in a polling response body. The real
// Engine.IO protocol delimits with 0x1E; the source this client was
// ported from hard-codes 0x20 (ASCII space) while calling it "ASCII RS".
// spec.md §9 leaves this as an open question the implementer must
// resolve against the target server, so it is kept as an overridable
// constant rather than silently corrected. See DESIGN.md.
const DefaultRecordSeparator byte = 0x20

// ParseBatch splits body on sep, parsing each delimited slice into a
// Packet via ParsePacket. A body with zero occurrences of sep yields an
// empty, non-nil Batch — mirroring the original's "rs_count == 0 → empty
// batch" behavior rather than treating it as an error.
func ParseBatch(body []byte, sep byte) (Batch, error) {
	if len(body) == 0 || body[len(body)-1] != sep {
		body = append(append([]byte{}, body...), sep)
	}

	count := 0
	for _, b := range body {
		if b == sep {
			count++
		}
	}
	if count == 0 {
		return Batch{}, nil
	}

	batch := make(Batch, 0, count)
	start := 0
	for i, b := range body {
		if b != sep {
			continue
		}
		if i > start {
			raw := make([]byte, i-start)
			copy(raw, body[start:i])
			p := &Packet{Data: raw, JSONStart: -1}
			if err := ParsePacket(p); err != nil {
				// A malformed individual packet does not abort framing
				// of the rest of the batch; it is appended with
				// EIOKindNone so callers can see something arrived.
				p.EIOKind = EIOKindNone
				p.SIOKind = SIOKindNone
			}
			batch = append(batch, p)
		}
		start = i + 1
	}
	return batch, nil
}
