package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/isdelr/tagpulse-be/internal/models"
)

// ErrMissingField is matched by every ValidationError.
var ErrMissingField = errors.New("missing required field")

// ValidationError reports which required event fields were empty.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingField, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrMissingField
}

// Publisher receives every event after it has been stored.
type Publisher interface {
	Publish(event models.Event)
}

// EventServiceProvider defines the interface for event services.
type EventServiceProvider interface {
	CreateEvent(tagID, source, eventType string) (models.Event, error)
	GetAllEvents() []models.Event
	GetStats() models.Stats
	Count() int
}

// EventService keeps all events in memory. Reads return them newest first.
type EventService struct {
	mu        sync.RWMutex
	events    []models.Event // oldest first; append is the only mutation
	nextID    int64
	publisher Publisher
	now       func() time.Time
}

// NewEventService creates an empty EventService. publisher may be nil.
func NewEventService(publisher Publisher) *EventService {
	return &EventService{
		events:    []models.Event{},
		nextID:    1,
		publisher: publisher,
		now:       time.Now,
	}
}

// CreateEvent validates and stores a new event.
func (s *EventService) CreateEvent(tagID, source, eventType string) (models.Event, error) {
	var missing []string
	if tagID == "" {
		missing = append(missing, "tagId")
	}
	if source == "" {
		missing = append(missing, "source")
	}
	if eventType == "" {
		missing = append(missing, "type")
	}
	if len(missing) > 0 {
		return models.Event{}, &ValidationError{Fields: missing}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	event := models.Event{
		ID:        s.nextID,
		TagID:     tagID,
		Source:    source,
		Type:      eventType,
		CreatedAt: s.now(),
	}
	s.nextID++
	s.events = append(s.events, event)

	// Publish under the lock so the live feed sees events in id order.
	// Publisher implementations must not block or call back into the service.
	if s.publisher != nil {
		s.publisher.Publish(event)
	}
	return event, nil
}

// GetAllEvents returns a copy of every stored event, most recent first.
func (s *EventService) GetAllEvents() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Event, len(s.events))
	for i, e := range s.events {
		out[len(s.events)-1-i] = e
	}
	return out
}

// GetStats aggregates the current events in a single pass.
func (s *EventService) GetStats() models.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := models.Stats{
		TotalEvents:    len(s.events),
		EventsByType:   make(map[string]int),
		EventsBySource: make(map[string]int),
	}
	tags := make(map[string]struct{})
	for _, e := range s.events {
		tags[e.TagID] = struct{}{}
		stats.EventsByType[e.Type]++
		stats.EventsBySource[e.Source]++
	}
	stats.UniqueTags = len(tags)
	return stats
}

// Count returns the number of stored events.
func (s *EventService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}
