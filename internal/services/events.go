package services

import (
	"context"
	"time"

	"github.com/hogar-app/hogar/internal/chat"
	"github.com/hogar-app/hogar/internal/model"
	"github.com/hogar-app/hogar/internal/store"
)

// EventService orchestrates calendar use cases.
type EventService struct {
	store store.Store
	now   func() time.Time
}

func NewEventService(s store.Store) *EventService {
	return &EventService{store: s, now: time.Now}
}

// CreateEvent normalizes the date expression before persisting. Unparseable
// dates resolve to today rather than failing; every stored event carries a
// concrete calendar date.
func (s *EventService) CreateEvent(ctx context.Context, e *model.Event) (*model.Event, error) {
	e.Date = chat.ResolveDate(e.Date, s.now())
	if e.Type == "" {
		e.Type = model.EventTypeGeneric
	}
	return s.store.Events().Create(ctx, e)
}

func (s *EventService) GetEvent(ctx context.Context, eventID string) (*model.Event, error) {
	return s.store.Events().GetByID(ctx, eventID)
}

func (s *EventService) ListEvents(ctx context.Context) ([]*model.Event, error) {
	return s.store.Events().List(ctx)
}

func (s *EventService) UpdateEvent(ctx context.Context, e *model.Event) (*model.Event, error) {
	e.Date = chat.ResolveDate(e.Date, s.now())
	if e.Type == "" {
		e.Type = model.EventTypeGeneric
	}
	return s.store.Events().Update(ctx, e)
}

func (s *EventService) DeleteEvent(ctx context.Context, eventID string) error {
	return s.store.Events().Delete(ctx, eventID)
}

// AttachMember links a member to an event. Both sides must exist.
func (s *EventService) AttachMember(ctx context.Context, eventID, memberID string) error {
	if _, err := s.store.Events().GetByID(ctx, eventID); err != nil {
		return err
	}
	if _, err := s.store.Members().GetByID(ctx, memberID); err != nil {
		return err
	}
	return s.store.Events().AttachMember(ctx, eventID, memberID)
}

func (s *EventService) ListAttendees(ctx context.Context, eventID string) ([]*model.Member, error) {
	if _, err := s.store.Events().GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.store.Events().ListAttendees(ctx, eventID)
}
