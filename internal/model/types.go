package model

import "time"

// Event types created by the chat assistant. Events created through the CRUD
// surface may carry user-defined types.
const (
	EventTypeReminder = "reminder"
	EventTypeGeneric  = "generic"
)

// Event is a calendar entry, optionally attended by members.
type Event struct {
	EventID      string    `json:"eventId"`
	Name         string    `json:"name"`
	Date         string    `json:"date"` // YYYY-MM-DD, no time component
	Type         string    `json:"type"`
	Description  *string   `json:"description,omitempty"`
	CreationTime time.Time `json:"creationTime"`
}

// Member is a family member referenced by events through a join table.
type Member struct {
	MemberID     string    `json:"memberId"`
	Name         string    `json:"name"`
	Email        *string   `json:"email,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	BirthDate    *string   `json:"birthDate,omitempty"` // YYYY-MM-DD
	Avatar       *string   `json:"avatar,omitempty"`
	CreationTime time.Time `json:"creationTime"`
}

// ShoppingItem is a single entry on the shared shopping list.
type ShoppingItem struct {
	ItemID       string    `json:"itemId"`
	Name         string    `json:"name"`
	Completed    bool      `json:"completed"`
	CreationTime time.Time `json:"creationTime"`
}

// ChatInteraction is one (message, response) pair in the append-only chat log.
type ChatInteraction struct {
	InteractionID string    `json:"interactionId"`
	Message       string    `json:"message"`
	Response      string    `json:"response"`
	CreationTime  time.Time `json:"creationTime"`
}

// AssistantContext is the snapshot handed to the completion endpoint and
// returned by GET /api/chat/context for UI pre-population.
type AssistantContext struct {
	UpcomingEvents []*Event        `json:"upcomingEvents"`
	Members        []*Member       `json:"members"`
	PendingItems   []*ShoppingItem `json:"pendingItems"`
}
