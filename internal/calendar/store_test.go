package calendar

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/biznexus-ai/backend/internal/domain"
)

func TestNewStoreSeedsDefaults(t *testing.T) {
	s := NewStore(t.TempDir())

	events := s.List()
	if len(events) != 2 {
		t.Fatalf("got %d default events, want 2", len(events))
	}
	if events[0].Title != "Inventory Audit" || events[1].Title != "Supplier Call" {
		t.Errorf("unexpected defaults: %+v", events)
	}
}

func TestAddAssignsID(t *testing.T) {
	s := NewStore(t.TempDir())

	saved, err := s.Add(domain.Event{Title: "Stock take", Start: "2026-09-01T09:00:00Z", Type: "operation"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("expected a generated id")
	}

	events := s.List()
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
}

func TestDeleteUnknownIsNoop(t *testing.T) {
	s := NewStore(t.TempDir())

	if err := s.Delete("nope"); err != nil {
		t.Fatalf("delete unknown: %v", err)
	}
	if len(s.List()) != 2 {
		t.Error("deleting an unknown id must not remove anything")
	}
}

func TestPersistenceAcrossStores(t *testing.T) {
	dir := t.TempDir()

	s := NewStore(dir)
	saved, err := s.Add(domain.Event{Title: "Audit follow-up", Start: "2026-09-02T10:00:00Z", Type: "meeting"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Delete("1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	reopened := NewStore(dir)
	events := reopened.List()
	if len(events) != 2 {
		t.Fatalf("got %d events after reload, want 2", len(events))
	}
	found := false
	for _, e := range events {
		if e.ID == saved.ID {
			found = true
		}
		if e.ID == "1" {
			t.Error("deleted event survived the reload")
		}
	}
	if !found {
		t.Error("added event missing after reload")
	}
}

func TestCorruptFileReseeds(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, eventsFileName), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s := NewStore(dir)
	if len(s.List()) != 2 {
		t.Error("corrupt file should reseed the default events")
	}
}
