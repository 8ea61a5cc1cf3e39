package sioclient

import "testing"

func TestParseBatchSingle(t *testing.T) {
	body := []byte("2")
	batch, err := ParseBatch(body, DefaultRecordSeparator)
	if err != nil {
		t.Fatalf("ParseBatch: %v", err)
	}
	if len(batch) != 1 {
		t.Fatalf("len(batch) = %d, want 1", len(batch))
	}
	if batch[0].EIOKind != EIOKindPing {
		t.Fatalf("batch[0].EIOKind = %v, want Ping", batch[0].EIOKind)
	}
}

func TestParseBatchMultiple(t *testing.T) {
	sep := DefaultRecordSeparator
	body := append([]byte("2"), sep)
	body = append(body, '4', '2', '{', '}')
	body = append(body, sep)

	batch, err := ParseBatch(body, sep)
	if err != nil {
		t.Fatalf("ParseBatch: %v", err)
	}
	if len(batch) != 2 {
		t.Fatalf("len(batch) = %d, want 2", len(batch))
	}
	if batch[0].EIOKind != EIOKindPing {
		t.Fatalf("batch[0].EIOKind = %v, want Ping", batch[0].EIOKind)
	}
	if batch[1].EIOKind != EIOKindMessage || batch[1].SIOKind != SIOKindEvent {
		t.Fatalf("batch[1] kinds = %v/%v", batch[1].EIOKind, batch[1].SIOKind)
	}
}

func TestParseBatchMissingTrailingSeparator(t *testing.T) {
	// ParseBatch must tolerate a body with no trailing separator by
	// appending one itself, rather than silently dropping the final
	// packet.
	batch, err := ParseBatch([]byte("6"), DefaultRecordSeparator)
	if err != nil {
		t.Fatalf("ParseBatch: %v", err)
	}
	if len(batch) != 1 || batch[0].EIOKind != EIOKindNoop {
		t.Fatalf("batch = %+v", batch)
	}
}

func TestParseBatchEmptyBody(t *testing.T) {
	batch, err := ParseBatch(nil, DefaultRecordSeparator)
	if err != nil {
		t.Fatalf("ParseBatch: %v", err)
	}
	if batch == nil || len(batch) != 0 {
		t.Fatalf("batch = %+v, want empty non-nil batch", batch)
	}
}

func TestParseBatchMalformedPacketDoesNotAbortBatch(t *testing.T) {
	sep := DefaultRecordSeparator
	body := append([]byte("2"), sep)
	body = append(body, '9')
	body = append(body, sep)
	body = append(body, '3')
	body = append(body, sep)

	batch, err := ParseBatch(body, sep)
	if err != nil {
		t.Fatalf("ParseBatch: %v", err)
	}
	if len(batch) != 3 {
		t.Fatalf("len(batch) = %d, want 3 (malformed packet kept as a placeholder)", len(batch))
	}
	if batch[0].EIOKind != EIOKindPing {
		t.Errorf("batch[0] = %v", batch[0].EIOKind)
	}
	if batch[1].EIOKind != EIOKindNone {
		t.Errorf("batch[1] = %v, want None for the malformed packet", batch[1].EIOKind)
	}
	if batch[2].EIOKind != EIOKindPong {
		t.Errorf("batch[2] = %v", batch[2].EIOKind)
	}
}
