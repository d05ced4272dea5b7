package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hogar-app/hogar/internal/chat"
	"github.com/hogar-app/hogar/internal/contextcache"
	"github.com/hogar-app/hogar/internal/model"
	"github.com/hogar-app/hogar/internal/store"
)

// --- Fakes ---

type fakeStore struct {
	events       []*model.Event
	members      []*model.Member
	items        []*model.ShoppingItem
	interactions []*model.ChatInteraction

	failItemCreate       bool
	failEventCreate      bool
	failInteractionWrite bool
	listCalls            int
}

func (f *fakeStore) Events() store.Events                     { return &fakeEvents{f} }
func (f *fakeStore) Members() store.Members                   { return &fakeMembers{f} }
func (f *fakeStore) ShoppingItems() store.ShoppingItems       { return &fakeItems{f} }
func (f *fakeStore) ChatInteractions() store.ChatInteractions { return &fakeInteractions{f} }

type fakeEvents struct{ p *fakeStore }

func (e *fakeEvents) Create(_ context.Context, m *model.Event) (*model.Event, error) {
	if e.p.failEventCreate {
		return nil, errors.New("event insert failed")
	}
	out := *m
	out.EventID = fmt.Sprintf("ev-%d", len(e.p.events)+1)
	out.CreationTime = time.Now()
	e.p.events = append(e.p.events, &out)
	return &out, nil
}
func (e *fakeEvents) GetByID(context.Context, string) (*model.Event, error) { panic("unused") }
func (e *fakeEvents) List(context.Context) ([]*model.Event, error)          { panic("unused") }
func (e *fakeEvents) ListUpcoming(_ context.Context, from string, limit int) ([]*model.Event, error) {
	e.p.listCalls++
	var out []*model.Event
	for _, ev := range e.p.events {
		if ev.Date >= from && len(out) < limit {
			out = append(out, ev)
		}
	}
	return out, nil
}
func (e *fakeEvents) Update(context.Context, *model.Event) (*model.Event, error) { panic("unused") }
func (e *fakeEvents) Delete(context.Context, string) error                       { panic("unused") }
func (e *fakeEvents) AttachMember(context.Context, string, string) error         { panic("unused") }
func (e *fakeEvents) ListAttendees(context.Context, string) ([]*model.Member, error) {
	panic("unused")
}

type fakeMembers struct{ p *fakeStore }

func (m *fakeMembers) Create(context.Context, *model.Member) (*model.Member, error) {
	panic("unused")
}
func (m *fakeMembers) GetByID(context.Context, string) (*model.Member, error) { panic("unused") }
func (m *fakeMembers) List(context.Context) ([]*model.Member, error) {
	m.p.listCalls++
	return m.p.members, nil
}
func (m *fakeMembers) Update(context.Context, *model.Member) (*model.Member, error) {
	panic("unused")
}
func (m *fakeMembers) Delete(context.Context, string) error { panic("unused") }

type fakeItems struct{ p *fakeStore }

func (i *fakeItems) Create(_ context.Context, it *model.ShoppingItem) (*model.ShoppingItem, error) {
	if i.p.failItemCreate {
		return nil, errors.New("item insert failed")
	}
	out := *it
	out.ItemID = fmt.Sprintf("it-%d", len(i.p.items)+1)
	out.CreationTime = time.Now()
	i.p.items = append(i.p.items, &out)
	return &out, nil
}
func (i *fakeItems) List(context.Context) ([]*model.ShoppingItem, error) { panic("unused") }
func (i *fakeItems) ListPending(_ context.Context, limit int) ([]*model.ShoppingItem, error) {
	i.p.listCalls++
	var out []*model.ShoppingItem
	for _, it := range i.p.items {
		if !it.Completed && len(out) < limit {
			out = append(out, it)
		}
	}
	return out, nil
}
func (i *fakeItems) ToggleCompleted(context.Context, string) (*model.ShoppingItem, error) {
	panic("unused")
}
func (i *fakeItems) Delete(context.Context, string) error { panic("unused") }

type fakeInteractions struct{ p *fakeStore }

func (c *fakeInteractions) Append(_ context.Context, ci *model.ChatInteraction) (*model.ChatInteraction, error) {
	if c.p.failInteractionWrite {
		return nil, errors.New("interaction insert failed")
	}
	out := *ci
	out.InteractionID = fmt.Sprintf("ci-%d", len(c.p.interactions)+1)
	out.CreationTime = time.Now()
	c.p.interactions = append(c.p.interactions, &out)
	return &out, nil
}
func (c *fakeInteractions) ListRecent(_ context.Context, limit int) ([]*model.ChatInteraction, error) {
	if len(c.p.interactions) <= limit {
		return c.p.interactions, nil
	}
	return c.p.interactions[len(c.p.interactions)-limit:], nil
}

type fakeLLM struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeLLM) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func newChatService(fs *fakeStore, fl *fakeLLM) *ChatService {
	svc := NewChatService(fs, fl, contextcache.New(time.Hour), zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC) }
	return svc
}

// --- Tests ---

func TestHandleMessageAddsShoppingItem(t *testing.T) {
	fs := &fakeStore{}
	fl := &fakeLLM{}
	svc := newChatService(fs, fl)

	res, err := svc.HandleMessage(context.Background(), "fam", "Añadir Plátanos a la lista")
	require.NoError(t, err)

	require.Len(t, fs.items, 1)
	assert.Equal(t, "Plátanos", fs.items[0].Name)
	assert.False(t, fs.items[0].Completed)
	assert.Empty(t, fs.events, "a shopping message must not create events")
	assert.Contains(t, res.Response, "Plátanos")
	assert.Equal(t, chat.KindAddShoppingItem, res.Intent)

	require.Len(t, fs.interactions, 1)
	assert.Equal(t, "Añadir Plátanos a la lista", fs.interactions[0].Message)
	assert.Equal(t, res.Response, fs.interactions[0].Response)

	assert.Empty(t, fl.prompts, "the completion endpoint is never queried when an action was taken")
}

func TestHandleMessageCreatesReminder(t *testing.T) {
	fs := &fakeStore{}
	svc := newChatService(fs, &fakeLLM{})

	res, err := svc.HandleMessage(context.Background(), "fam", "Recuérdame llamar a mamá mañana")
	require.NoError(t, err)

	require.Len(t, fs.events, 1)
	assert.Equal(t, "llamar a mamá", fs.events[0].Name)
	assert.Equal(t, model.EventTypeReminder, fs.events[0].Type)
	assert.Equal(t, "2026-09-03", fs.events[0].Date)
	assert.Empty(t, fs.items, "a reminder message must not create shopping items")
	assert.Contains(t, res.Response, "2026-09-03")
}

func TestHandleMessageCreatesEvent(t *testing.T) {
	fs := &fakeStore{}
	svc := newChatService(fs, &fakeLLM{})

	_, err := svc.HandleMessage(context.Background(), "fam", "Crear evento Fiesta Sorpresa el 2025-12-25")
	require.NoError(t, err)

	require.Len(t, fs.events, 1)
	assert.Equal(t, "Fiesta Sorpresa", fs.events[0].Name)
	assert.Equal(t, "2025-12-25", fs.events[0].Date)
	assert.Equal(t, model.EventTypeGeneric, fs.events[0].Type)
}

func TestHandleMessageFreeformRelaysLLM(t *testing.T) {
	fs := &fakeStore{
		events:  []*model.Event{{Name: "Dentista", Date: "2026-09-15", Type: "reminder"}},
		members: []*model.Member{{Name: "Lucía"}},
		items:   []*model.ShoppingItem{{Name: "Pan"}},
	}
	fl := &fakeLLM{response: "El próximo evento es el dentista."}
	svc := newChatService(fs, fl)

	res, err := svc.HandleMessage(context.Background(), "fam", "¿qué toca esta semana?")
	require.NoError(t, err)

	assert.Equal(t, "El próximo evento es el dentista.", res.Response)
	assert.Empty(t, fs.items[1:], "no mutations on the freeform path")
	require.Len(t, fs.interactions, 1)

	require.Len(t, fl.prompts, 1)
	assert.Contains(t, fl.prompts[0], "Dentista")
	assert.Contains(t, fl.prompts[0], "Lucía")
	assert.Contains(t, fl.prompts[0], "Pan")
	assert.Contains(t, fl.prompts[0], "¿qué toca esta semana?")

	require.NotNil(t, res.Context)
	assert.Len(t, res.Context.UpcomingEvents, 1)
}

func TestHandleMessageLLMDownFallsBackToCanned(t *testing.T) {
	fs := &fakeStore{}
	fl := &fakeLLM{err: errors.New("connection refused")}
	svc := newChatService(fs, fl)

	res, err := svc.HandleMessage(context.Background(), "fam", "Hola")
	require.NoError(t, err, "completion failures are recoverable, never surfaced")
	assert.Equal(t, chat.FallbackGreeting, res.Response)

	require.Len(t, fs.interactions, 1, "the interaction is recorded even on the fallback path")
	assert.Empty(t, fs.events)
	assert.Empty(t, fs.items)
}

func TestHandleMessageEmptyMessage(t *testing.T) {
	svc := newChatService(&fakeStore{}, &fakeLLM{})
	_, err := svc.HandleMessage(context.Background(), "fam", "   ")
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestHandleMessageStoreFailurePropagates(t *testing.T) {
	fs := &fakeStore{failItemCreate: true}
	fl := &fakeLLM{}
	svc := newChatService(fs, fl)

	_, err := svc.HandleMessage(context.Background(), "fam", "Añadir pan a la lista")
	assert.Error(t, err)
	assert.Empty(t, fl.prompts)
}

func TestHandleMessageActionSurvivesLogFailure(t *testing.T) {
	fs := &fakeStore{failInteractionWrite: true}
	svc := newChatService(fs, &fakeLLM{})

	res, err := svc.HandleMessage(context.Background(), "fam", "Añadir pan a la lista")
	require.NoError(t, err, "the chat log is advisory; a log failure does not undo the action")
	require.Len(t, fs.items, 1)
	assert.Contains(t, res.Response, "pan")
}

func TestAssistantContextCachesPerUser(t *testing.T) {
	fs := &fakeStore{members: []*model.Member{{Name: "Lucía"}}}
	svc := newChatService(fs, &fakeLLM{})

	_, err := svc.AssistantContext(context.Background(), "fam")
	require.NoError(t, err)
	first := fs.listCalls

	_, err = svc.AssistantContext(context.Background(), "fam")
	require.NoError(t, err)
	assert.Equal(t, first, fs.listCalls, "second read must hit the cache")

	// a mutation evicts, forcing reassembly
	_, err = svc.HandleMessage(context.Background(), "fam", "Añadir pan a la lista")
	require.NoError(t, err)
	_, err = svc.AssistantContext(context.Background(), "fam")
	require.NoError(t, err)
	assert.Greater(t, fs.listCalls, first)
}

func TestAssistantContextBoundsMembers(t *testing.T) {
	fs := &fakeStore{}
	for i := 0; i < 15; i++ {
		fs.members = append(fs.members, &model.Member{Name: fmt.Sprintf("m%d", i)})
	}
	svc := newChatService(fs, &fakeLLM{})

	actx, err := svc.AssistantContext(context.Background(), "fam")
	require.NoError(t, err)
	assert.Len(t, actx.Members, 10)
}
