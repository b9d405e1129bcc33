package calendar

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/biznexus-ai/backend/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const eventsFileName = "events.json"

// Store is a JSON-file-backed calendar event store. Writes go through a
// temp file plus rename so a concurrent reader never sees a half-written
// file.
type Store struct {
	mu     sync.Mutex
	path   string
	events []domain.Event
}

// NewStore loads existing events from dir, seeding defaults when the file
// is absent or unreadable.
func NewStore(dir string) *Store {
	s := &Store{path: filepath.Join(dir, eventsFileName)}
	s.events = s.load()
	return s
}

func (s *Store) load() []domain.Event {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return defaultEvents()
	}
	var events []domain.Event
	if err := json.Unmarshal(data, &events); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("events file corrupt, reseeding defaults")
		return defaultEvents()
	}
	return events
}

func defaultEvents() []domain.Event {
	today := time.Now()
	return []domain.Event{
		{
			ID:    "1",
			Title: "Inventory Audit",
			Start: time.Date(today.Year(), today.Month(), today.Day(), 10, 0, 0, 0, today.Location()).Format(time.RFC3339),
			Type:  "operation",
		},
		{
			ID:    "2",
			Title: "Supplier Call",
			Start: time.Date(today.Year(), today.Month(), today.Day(), 14, 30, 0, 0, today.Location()).Format(time.RFC3339),
			Type:  "meeting",
		},
	}
}

// List returns all events.
func (s *Store) List() []domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Event, len(s.events))
	copy(out, s.events)
	return out
}

// Add stores a new event, assigning a uuid when the client sent none.
func (s *Store) Add(event domain.Event) (domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	s.events = append(s.events, event)

	if err := s.save(); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

// Delete removes an event by id. Unknown ids are a no-op, not an error.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.events[:0]
	for _, e := range s.events {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.events = kept

	return s.save()
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.events, "", "    ")
	if err != nil {
		return fmt.Errorf("encode events: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write events temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace events file: %w", err)
	}
	return nil
}
