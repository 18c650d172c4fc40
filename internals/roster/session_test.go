package roster

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/gmsim/api-server/pkg/kvstore"
)

func testManager(kv kvstore.KVStore) (*Manager, *Session) {
	m := &Manager{
		KV:        kv,
		SalaryCap: 150,
		sessions:  make(map[string]*Session),
	}
	session := NewSession(7, m.SalaryCap, testPool())
	m.sessions[session.ID] = session
	return m, session
}

func TestManagerAddRemove(t *testing.T) {
	kv := kvstore.NewMemory()
	m, session := testManager(kv)

	if _, err := m.AddPlayer(session.ID, "a"); err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}
	if _, err := m.AddPlayer(session.ID, "c"); err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}

	snapshot, err := kv.Get("roster_" + session.ID)
	if err != nil {
		t.Fatalf("roster snapshot missing: %v", err)
	}
	var ids []string
	if err := json.Unmarshal([]byte(snapshot), &ids); err != nil {
		t.Fatalf("snapshot not json: %v", err)
	}
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "c" {
		t.Errorf("snapshot = %v, want [a c]", ids)
	}

	if _, err := m.RemovePlayer(session.ID, "a"); err != nil {
		t.Fatalf("RemovePlayer: %v", err)
	}
	if session.Ledger.Has("a") {
		t.Error("player a still on roster after remove")
	}
}

func TestManagerUnknownSession(t *testing.T) {
	m, _ := testManager(kvstore.NewMemory())

	if _, err := m.AddPlayer("nope", "a"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestManagerClose(t *testing.T) {
	kv := kvstore.NewMemory()
	m, session := testManager(kv)

	m.AddPlayer(session.ID, "a")
	if err := m.Close(session.ID); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := m.Get(session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get after Close err = %v, want ErrSessionNotFound", err)
	}
	if _, err := kv.Get("roster_" + session.ID); !errors.Is(err, kvstore.ErrNotFound) {
		t.Error("roster snapshot should be deleted on Close")
	}
}

func TestBeginProjectionSupersedes(t *testing.T) {
	session := NewSession(1, 150, testPool())

	first := session.BeginProjection(context.Background())
	second := session.BeginProjection(context.Background())

	if first.Err() == nil {
		t.Error("first projection context should be cancelled by the second")
	}
	if second.Err() != nil {
		t.Errorf("second projection context cancelled early: %v", second.Err())
	}
}

func TestSessionIDShape(t *testing.T) {
	s := NewSession(1, 150, testPool())
	if len(s.ID) != 8 {
		t.Errorf("session id %q, want 8 chars", s.ID)
	}
	for _, r := range s.ID {
		alnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !alnum {
			t.Errorf("session id %q has non-alphanumeric %q", s.ID, r)
		}
	}
}
