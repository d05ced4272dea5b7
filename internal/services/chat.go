package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/hogar-app/hogar/internal/chat"
	"github.com/hogar-app/hogar/internal/contextcache"
	"github.com/hogar-app/hogar/internal/llm"
	"github.com/hogar-app/hogar/internal/model"
	"github.com/hogar-app/hogar/internal/store"
)

// Context assembly bounds for the completion prompt.
const (
	maxContextEvents  = 10
	maxContextMembers = 10
	maxContextItems   = 20
)

// ChatService is the action dispatcher: it turns a recognized intent into
// exactly one state mutation and a confirmation, or falls through to the
// completion endpoint. A single message never produces more than one mutation.
type ChatService struct {
	store store.Store
	llm   llm.Client
	cache *contextcache.Cache
	log   zerolog.Logger
	now   func() time.Time
}

func NewChatService(s store.Store, client llm.Client, cache *contextcache.Cache, log zerolog.Logger) *ChatService {
	return &ChatService{store: s, llm: client, cache: cache, log: log, now: time.Now}
}

// ChatResult is the outcome of handling one message.
type ChatResult struct {
	Response string                  `json:"response"`
	Intent   chat.Kind               `json:"intent"`
	Context  *model.AssistantContext `json:"context,omitempty"`
}

// HandleMessage processes a single user message end to end.
//
// Store-write failures on the action paths propagate to the caller; a failure
// of the completion endpoint never does, it is recovered with a canned reply.
func (s *ChatService) HandleMessage(ctx context.Context, userID, message string) (*ChatResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("%w: message required", model.ErrValidation)
	}

	in := chat.Recognize(message)
	switch in.Kind {
	case chat.KindAddShoppingItem:
		return s.addShoppingItem(ctx, userID, message, in)
	case chat.KindCreateReminder:
		return s.createEvent(ctx, userID, message, in, model.EventTypeReminder)
	case chat.KindCreateEvent:
		return s.createEvent(ctx, userID, message, in, model.EventTypeGeneric)
	default:
		return s.freeformReply(ctx, userID, message)
	}
}

func (s *ChatService) addShoppingItem(ctx context.Context, userID, message string, in chat.Intent) (*ChatResult, error) {
	if _, err := s.store.ShoppingItems().Create(ctx, &model.ShoppingItem{Name: in.ItemName}); err != nil {
		return nil, err
	}
	s.cache.Evict(userID)
	response := fmt.Sprintf("He añadido %s a la lista de la compra.", in.ItemName)
	s.appendInteraction(ctx, message, response)
	return &ChatResult{Response: response, Intent: in.Kind}, nil
}

func (s *ChatService) createEvent(ctx context.Context, userID, message string, in chat.Intent, eventType string) (*ChatResult, error) {
	date := chat.ResolveDate(in.DateExpr, s.now())
	if _, err := s.store.Events().Create(ctx, &model.Event{Name: in.Title, Date: date, Type: eventType}); err != nil {
		return nil, err
	}
	s.cache.Evict(userID)
	var response string
	if eventType == model.EventTypeReminder {
		response = fmt.Sprintf("Recordatorio creado: %s el %s.", in.Title, date)
	} else {
		response = fmt.Sprintf("Evento creado: %s el %s.", in.Title, date)
	}
	s.appendInteraction(ctx, message, response)
	return &ChatResult{Response: response, Intent: in.Kind}, nil
}

// freeformReply handles messages with no recognized intent: it assembles the
// assistant context, queries the completion endpoint, and recovers endpoint
// failures with a canned reply. The interaction record is the only mutation
// on this path, so its failure does propagate.
func (s *ChatService) freeformReply(ctx context.Context, userID, message string) (*ChatResult, error) {
	actx, err := s.AssistantContext(ctx, userID)
	if err != nil {
		return nil, err
	}

	response, err := s.llm.Complete(ctx, buildPrompt(message, actx))
	if err != nil || response == "" {
		if err != nil {
			s.log.Warn().Err(err).Msg("completion endpoint unavailable, using canned fallback")
		}
		response = chat.PickFallback(message, actx)
	}

	if _, err := s.store.ChatInteractions().Append(ctx, &model.ChatInteraction{Message: message, Response: response}); err != nil {
		return nil, err
	}
	return &ChatResult{Response: response, Intent: chat.KindNone, Context: actx}, nil
}

// appendInteraction records the (message, response) pair after an action was
// taken. The chat log is advisory, not authoritative: a failure here is
// logged and the confirmed action stands.
func (s *ChatService) appendInteraction(ctx context.Context, message, response string) {
	if _, err := s.store.ChatInteractions().Append(ctx, &model.ChatInteraction{Message: message, Response: response}); err != nil {
		s.log.Error().Stack().Err(err).Msg("failed to record chat interaction")
	}
}

// AssistantContext returns the cached context for the user, assembling and
// caching a fresh snapshot on miss.
func (s *ChatService) AssistantContext(ctx context.Context, userID string) (*model.AssistantContext, error) {
	if cached, ok := s.cache.Get(userID); ok {
		return cached, nil
	}

	today := s.now().Format("2006-01-02")
	events, err := s.store.Events().ListUpcoming(ctx, today, maxContextEvents)
	if err != nil {
		return nil, err
	}
	members, err := s.store.Members().List(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.store.ShoppingItems().ListPending(ctx, maxContextItems)
	if err != nil {
		return nil, err
	}

	actx := &model.AssistantContext{
		UpcomingEvents: events,
		Members:        lo.Subset(members, 0, maxContextMembers),
		PendingItems:   items,
	}
	s.cache.Set(userID, actx)
	return actx, nil
}

// History returns the most recent limit interactions, oldest first.
func (s *ChatService) History(ctx context.Context, limit int) ([]*model.ChatInteraction, error) {
	return s.store.ChatInteractions().ListRecent(ctx, limit)
}

// buildPrompt assembles the natural-language context block sent to the
// completion endpoint.
func buildPrompt(message string, actx *model.AssistantContext) string {
	var b strings.Builder
	b.WriteString("Eres el asistente de una aplicación de organización familiar. ")
	b.WriteString("Responde en español, de forma breve y útil, usando solo la información siguiente.\n\n")

	b.WriteString("Próximos eventos:\n")
	if len(actx.UpcomingEvents) == 0 {
		b.WriteString("- (ninguno)\n")
	}
	for _, e := range actx.UpcomingEvents {
		fmt.Fprintf(&b, "- %s (%s, %s)\n", e.Name, e.Date, e.Type)
	}

	b.WriteString("\nMiembros de la familia:\n")
	if len(actx.Members) == 0 {
		b.WriteString("- (ninguno)\n")
	}
	for _, m := range actx.Members {
		fmt.Fprintf(&b, "- %s\n", m.Name)
	}

	b.WriteString("\nLista de la compra pendiente:\n")
	if len(actx.PendingItems) == 0 {
		b.WriteString("- (vacía)\n")
	}
	for _, it := range actx.PendingItems {
		fmt.Fprintf(&b, "- %s\n", it.Name)
	}

	fmt.Fprintf(&b, "\nMensaje del usuario: %s\n", message)
	return b.String()
}
