package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/isdelr/taskflow-be/internal/models"
	"github.com/isdelr/taskflow-be/internal/store"
	"github.com/isdelr/taskflow-be/internal/websocket"
)

// EventServiceProvider defines the interface for activity event services.
type EventServiceProvider interface {
	CreateEvent(ctx context.Context, eventType, level, message string, projectID *string) error
	GetRecentEvents(ctx context.Context, limit int) ([]models.Event, error)
	PruneEventsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// EventService records activity events and pushes them to websocket
// subscribers.
type EventService struct {
	events store.EventStore
	hub    *websocket.Hub
}

// NewEventService creates a new EventService. The hub may be nil when no
// realtime feed is wanted (e.g. in tests).
func NewEventService(events store.EventStore, hub *websocket.Hub) *EventService {
	return &EventService{events: events, hub: hub}
}

// CreateEvent logs a new event and broadcasts it to subscribers.
func (s *EventService) CreateEvent(ctx context.Context, eventType, level, message string, projectID *string) error {
	event := models.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Level:     level,
		Message:   message,
		ProjectID: projectID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.events.Insert(ctx, event); err != nil {
		return err
	}

	if s.hub != nil {
		data := websocket.NewEventMessage(event)
		if projectID != nil {
			s.hub.BroadcastTo(*projectID, data)
			s.hub.BroadcastTo(websocket.FeedGlobal, data)
		} else {
			s.hub.Broadcast <- data
		}
	}
	return nil
}

// GetRecentEvents retrieves the most recent events.
func (s *EventService) GetRecentEvents(ctx context.Context, limit int) ([]models.Event, error) {
	return s.events.ListRecent(ctx, limit)
}

// PruneEventsBefore removes events older than the cutoff and reports how
// many were removed.
func (s *EventService) PruneEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.events.DeleteOlderThan(ctx, cutoff)
}
