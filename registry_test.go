package sioclient

import "testing"

func testConfig(addr string) Config {
	return Config{ServerAddress: addr}
}

func TestManagerInitAssignsLowestFreeSlot(t *testing.T) {
	m := NewManager(2, ManagerOptions{})

	id0, err := m.Init(testConfig("a:1"))
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if id0 != 0 {
		t.Fatalf("id0 = %d, want 0", id0)
	}

	id1, err := m.Init(testConfig("b:1"))
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if id1 != 1 {
		t.Fatalf("id1 = %d, want 1", id1)
	}

	if _, err := m.Init(testConfig("c:1")); err == nil {
		t.Fatal("expected KindCapacity error once the registry is full")
	} else if e, ok := err.(*Error); !ok || e.Kind != KindCapacity {
		t.Fatalf("err = %v, want KindCapacity", err)
	}

	if err := m.Destroy(id0); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	id2, err := m.Init(testConfig("d:1"))
	if err != nil {
		t.Fatalf("Init after Destroy: %v", err)
	}
	if id2 != 0 {
		t.Fatalf("id2 = %d, want 0 (lowest free slot reused)", id2)
	}
}

func TestManagerInitRequiresServerAddress(t *testing.T) {
	m := NewManager(1, ManagerOptions{})
	if _, err := m.Init(Config{}); err == nil {
		t.Fatal("expected KindConfig error for missing ServerAddress")
	} else if e, ok := err.(*Error); !ok || e.Kind != KindConfig {
		t.Fatalf("err = %v, want KindConfig", err)
	}
}

func TestManagerGetAndLockUnknownID(t *testing.T) {
	m := NewManager(1, ManagerOptions{})
	if _, err := m.GetAndLock(ClientID(5)); err == nil {
		t.Fatal("expected an error for an unknown ClientID")
	}
}

func TestManagerGetAndLockUnlock(t *testing.T) {
	m := NewManager(1, ManagerOptions{})
	id, err := m.Init(testConfig("a:1"))
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	s, err := m.GetAndLock(id)
	if err != nil {
		t.Fatalf("GetAndLock: %v", err)
	}
	if !m.IsLocked(id) {
		t.Fatal("IsLocked should report true while held")
	}
	m.Unlock(s)
	if m.IsLocked(id) {
		t.Fatal("IsLocked should report false once released")
	}
}

func TestManagerDestroyRefusesWhilePolling(t *testing.T) {
	m := NewManager(1, ManagerOptions{})
	id, err := m.Init(testConfig("a:1"))
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	s, err := m.GetAndLock(id)
	if err != nil {
		t.Fatalf("GetAndLock: %v", err)
	}
	s.pollingRunning = true
	m.Unlock(s)

	if err := m.Destroy(id); err == nil {
		t.Fatal("expected Destroy to refuse while polling")
	} else if e, ok := err.(*Error); !ok || e.Kind != KindState {
		t.Fatalf("err = %v, want KindState", err)
	}
}

func TestManagerIsInitialized(t *testing.T) {
	m := NewManager(1, ManagerOptions{})
	if m.IsInitialized(ClientID(0)) {
		t.Fatal("fresh Manager should report no initialized slots")
	}
	id, err := m.Init(testConfig("a:1"))
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if !m.IsInitialized(id) {
		t.Fatal("IsInitialized should be true after Init")
	}
}
