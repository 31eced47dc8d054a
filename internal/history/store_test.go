package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/sudo-give-me-coffee/Boop-GTK/internal/db"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	conn, err := db.Open(filepath.Join(t.TempDir(), "boop.db"))
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return NewStore(conn)
}

func seed(t *testing.T, s *Store, n int) {
	t.Helper()
	base := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		inv := Invocation{
			ID:        string(rune('a' + i)),
			Script:    "uppercase",
			Status:    StatusOK,
			Duration:  time.Duration(i) * time.Millisecond,
			StartedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := s.Record(inv); err != nil {
			t.Fatalf("Record(%d) error = %v", i, err)
		}
	}
}

func TestRecordAndList(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, 3)

	got, err := s.List(0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("List() returned %d records, want 3", len(got))
	}
	// Newest first.
	if got[0].ID != "c" || got[2].ID != "a" {
		t.Errorf("List() order = [%s %s %s], want newest first", got[0].ID, got[1].ID, got[2].ID)
	}
	if got[0].Status != StatusOK {
		t.Errorf("Status = %q, want %q", got[0].Status, StatusOK)
	}
}

func TestListLimit(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, 5)

	got, err := s.List(2)
	if err != nil {
		t.Fatalf("List(2) error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List(2) returned %d records, want 2", len(got))
	}
	if got[0].ID != "e" {
		t.Errorf("List(2) first = %q, want %q", got[0].ID, "e")
	}
}

func TestRecordFailure(t *testing.T) {
	s := newTestStore(t)
	err := s.Record(Invocation{
		ID:        "x",
		Script:    "broken",
		Status:    StatusFailed,
		ErrorKind: "runtime",
		Message:   "script panicked: boom",
		StartedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	got, err := s.List(1)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if got[0].ErrorKind != "runtime" {
		t.Errorf("ErrorKind = %q, want %q", got[0].ErrorKind, "runtime")
	}
	if got[0].Message != "script panicked: boom" {
		t.Errorf("Message = %q", got[0].Message)
	}
}

func TestPrune(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, 5)

	removed, err := s.Prune(2)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if removed != 3 {
		t.Errorf("Prune() removed %d, want 3", removed)
	}

	got, err := s.List(0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("after prune: %d records, want 2", len(got))
	}
	if got[0].ID != "e" || got[1].ID != "d" {
		t.Errorf("after prune kept [%s %s], want [e d]", got[0].ID, got[1].ID)
	}
}

func TestPruneNoop(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, 2)

	removed, err := s.Prune(0)
	if err != nil {
		t.Fatalf("Prune(0) error = %v", err)
	}
	if removed != 0 {
		t.Errorf("Prune(0) removed %d, want 0", removed)
	}
}
