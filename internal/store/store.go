package store

import (
	"context"

	"github.com/hogar-app/hogar/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (sqlite, postgres).
type Store interface {
	Events() Events
	Members() Members
	ShoppingItems() ShoppingItems
	ChatInteractions() ChatInteractions
}

type Events interface {
	Create(ctx context.Context, e *model.Event) (*model.Event, error)
	GetByID(ctx context.Context, eventID string) (*model.Event, error)
	// List returns all events ordered by date ascending.
	List(ctx context.Context) ([]*model.Event, error)
	// ListUpcoming returns up to limit events with date >= from (YYYY-MM-DD),
	// ordered by date ascending.
	ListUpcoming(ctx context.Context, from string, limit int) ([]*model.Event, error)
	Update(ctx context.Context, e *model.Event) (*model.Event, error)
	Delete(ctx context.Context, eventID string) error
	AttachMember(ctx context.Context, eventID, memberID string) error
	ListAttendees(ctx context.Context, eventID string) ([]*model.Member, error)
}

type Members interface {
	Create(ctx context.Context, m *model.Member) (*model.Member, error)
	GetByID(ctx context.Context, memberID string) (*model.Member, error)
	List(ctx context.Context) ([]*model.Member, error)
	Update(ctx context.Context, m *model.Member) (*model.Member, error)
	Delete(ctx context.Context, memberID string) error
}

type ShoppingItems interface {
	Create(ctx context.Context, it *model.ShoppingItem) (*model.ShoppingItem, error)
	List(ctx context.Context) ([]*model.ShoppingItem, error)
	// ListPending returns up to limit items with completed=false, oldest first.
	ListPending(ctx context.Context, limit int) ([]*model.ShoppingItem, error)
	ToggleCompleted(ctx context.Context, itemID string) (*model.ShoppingItem, error)
	Delete(ctx context.Context, itemID string) error
}

type ChatInteractions interface {
	// Append records one (message, response) pair. The log is append-only.
	Append(ctx context.Context, ci *model.ChatInteraction) (*model.ChatInteraction, error)
	// ListRecent returns the most recent limit interactions in chronological
	// order (oldest of the window first).
	ListRecent(ctx context.Context, limit int) ([]*model.ChatInteraction, error)
}
