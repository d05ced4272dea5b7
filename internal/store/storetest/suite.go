package storetest

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/hogar-app/hogar/internal/model"
	"github.com/hogar-app/hogar/internal/store"
)

// Run exercises a compliance suite against a store.Store implementation.
// Implementations should provide a clean, isolated store from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	// Events
	ev, err := s.Events().Create(ctx, &model.Event{Name: "Cumpleaños Abuela", Date: "2026-09-10", Type: model.EventTypeGeneric})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if ev.EventID == "" || ev.CreationTime.IsZero() {
		t.Fatalf("CreateEvent: missing id or creation time: %+v", ev)
	}
	if got, err := s.Events().GetByID(ctx, ev.EventID); err != nil || got.Name != "Cumpleaños Abuela" {
		t.Fatalf("GetEvent: got=%v err=%v", got, err)
	}
	if _, err := s.Events().GetByID(ctx, "missing"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetEvent missing: want ErrNotFound, got %v", err)
	}

	// Events sort by date ascending regardless of insertion order
	if _, err := s.Events().Create(ctx, &model.Event{Name: "Dentista", Date: "2026-09-01", Type: model.EventTypeReminder}); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	list, err := s.Events().List(ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("ListEvents: n=%d err=%v", len(list), err)
	}
	if list[0].Name != "Dentista" {
		t.Fatalf("ListEvents: want date-ascending order, got first=%q", list[0].Name)
	}

	// ListUpcoming respects the from bound and the limit
	up, err := s.Events().ListUpcoming(ctx, "2026-09-05", 10)
	if err != nil || len(up) != 1 || up[0].EventID != ev.EventID {
		t.Fatalf("ListUpcoming: got=%v err=%v", up, err)
	}
	if up, err = s.Events().ListUpcoming(ctx, "2026-01-01", 1); err != nil || len(up) != 1 {
		t.Fatalf("ListUpcoming limit: n=%d err=%v", len(up), err)
	}

	// Update
	ev.Name = "Cumpleaños de la abuela"
	if upd, err := s.Events().Update(ctx, ev); err != nil || upd.Name != "Cumpleaños de la abuela" {
		t.Fatalf("UpdateEvent: got=%v err=%v", upd, err)
	}
	if _, err := s.Events().Update(ctx, &model.Event{EventID: "missing", Name: "x", Date: "2026-01-01", Type: "generic"}); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("UpdateEvent missing: want ErrNotFound, got %v", err)
	}

	// Members + attendees
	m, err := s.Members().Create(ctx, &model.Member{Name: "Lucía"})
	if err != nil || m.MemberID == "" {
		t.Fatalf("CreateMember: got=%v err=%v", m, err)
	}
	if err := s.Events().AttachMember(ctx, ev.EventID, m.MemberID); err != nil {
		t.Fatalf("AttachMember: %v", err)
	}
	// attaching twice is a no-op
	if err := s.Events().AttachMember(ctx, ev.EventID, m.MemberID); err != nil {
		t.Fatalf("AttachMember twice: %v", err)
	}
	att, err := s.Events().ListAttendees(ctx, ev.EventID)
	if err != nil || len(att) != 1 || att[0].MemberID != m.MemberID {
		t.Fatalf("ListAttendees: got=%v err=%v", att, err)
	}

	email := "lucia@example.test"
	m.Email = &email
	if upd, err := s.Members().Update(ctx, m); err != nil || upd.Email == nil || *upd.Email != email {
		t.Fatalf("UpdateMember: got=%v err=%v", upd, err)
	}
	if ms, err := s.Members().List(ctx); err != nil || len(ms) != 1 {
		t.Fatalf("ListMembers: n=%d err=%v", len(ms), err)
	}

	// Shopping items
	it, err := s.ShoppingItems().Create(ctx, &model.ShoppingItem{Name: "Plátanos"})
	if err != nil || it.ItemID == "" || it.Completed {
		t.Fatalf("CreateItem: got=%v err=%v", it, err)
	}
	if _, err := s.ShoppingItems().Create(ctx, &model.ShoppingItem{Name: "Leche"}); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	pending, err := s.ShoppingItems().ListPending(ctx, 20)
	if err != nil || len(pending) != 2 {
		t.Fatalf("ListPending: n=%d err=%v", len(pending), err)
	}
	toggled, err := s.ShoppingItems().ToggleCompleted(ctx, it.ItemID)
	if err != nil || !toggled.Completed {
		t.Fatalf("ToggleCompleted: got=%v err=%v", toggled, err)
	}
	if pending, err = s.ShoppingItems().ListPending(ctx, 20); err != nil || len(pending) != 1 || pending[0].Name != "Leche" {
		t.Fatalf("ListPending after toggle: got=%v err=%v", pending, err)
	}
	if _, err := s.ShoppingItems().ToggleCompleted(ctx, "missing"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("ToggleCompleted missing: want ErrNotFound, got %v", err)
	}
	if err := s.ShoppingItems().Delete(ctx, it.ItemID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if err := s.ShoppingItems().Delete(ctx, it.ItemID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("DeleteItem twice: want ErrNotFound, got %v", err)
	}

	// Chat log: append-only, ListRecent returns the newest window oldest-first
	for i := 0; i < 5; i++ {
		msg := fmt.Sprintf("mensaje %d", i)
		if _, err := s.ChatInteractions().Append(ctx, &model.ChatInteraction{Message: msg, Response: "ok"}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	recent, err := s.ChatInteractions().ListRecent(ctx, 3)
	if err != nil || len(recent) != 3 {
		t.Fatalf("ListRecent: n=%d err=%v", len(recent), err)
	}
	if recent[0].Message != "mensaje 2" || recent[2].Message != "mensaje 4" {
		t.Fatalf("ListRecent: want chronological window [2..4], got %q..%q", recent[0].Message, recent[2].Message)
	}
	// Idempotence: identical ordered result on a second read
	again, err := s.ChatInteractions().ListRecent(ctx, 3)
	if err != nil || len(again) != 3 {
		t.Fatalf("ListRecent again: n=%d err=%v", len(again), err)
	}
	for i := range recent {
		if recent[i].InteractionID != again[i].InteractionID {
			t.Fatalf("ListRecent not stable at %d: %s vs %s", i, recent[i].InteractionID, again[i].InteractionID)
		}
	}

	// Deleting an event cascades its attendee rows but leaves the member
	if err := s.Events().Delete(ctx, ev.EventID); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}
	if _, err := s.Members().GetByID(ctx, m.MemberID); err != nil {
		t.Fatalf("member should survive event deletion: %v", err)
	}
}
