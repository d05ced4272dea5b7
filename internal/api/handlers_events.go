package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hogar-app/hogar/internal/api/respond"
	"github.com/hogar-app/hogar/internal/api/validate"
	"github.com/hogar-app/hogar/internal/model"
	"github.com/hogar-app/hogar/internal/services"
)

// EventHandler handles calendar HTTP requests.
type EventHandler struct {
	svc *services.EventService
}

func NewEventHandler(svc *services.EventService) *EventHandler { return &EventHandler{svc: svc} }

type eventRequest struct {
	Name        string  `json:"name"`
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	Description *string `json:"description,omitempty"`
}

// CreateEvent handles POST /api/events.
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var in eventRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid JSON")
		return
	}
	if err := validate.CreateEvent(in.Name, in.Description); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	ev, err := h.svc.CreateEvent(r.Context(), &model.Event{
		Name:        in.Name,
		Date:        in.Date,
		Type:        in.Type,
		Description: in.Description,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, ev)
}

// ListEvents handles GET /api/events.
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.ListEvents(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, events)
}

// GetEvent handles GET /api/events/{eventId}.
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	ev, err := h.svc.GetEvent(r.Context(), mux.Vars(r)["eventId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, ev)
}

// UpdateEvent handles PUT /api/events/{eventId}.
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var in eventRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid JSON")
		return
	}
	if err := validate.CreateEvent(in.Name, in.Description); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	ev, err := h.svc.UpdateEvent(r.Context(), &model.Event{
		EventID:     mux.Vars(r)["eventId"],
		Name:        in.Name,
		Date:        in.Date,
		Type:        in.Type,
		Description: in.Description,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, ev)
}

// DeleteEvent handles DELETE /api/events/{eventId}.
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteEvent(r.Context(), mux.Vars(r)["eventId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AttachMember handles POST /api/events/{eventId}/members/{memberId}.
func (h *EventHandler) AttachMember(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.svc.AttachMember(r.Context(), vars["eventId"], vars["memberId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListAttendees handles GET /api/events/{eventId}/members.
func (h *EventHandler) ListAttendees(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.ListAttendees(r.Context(), mux.Vars(r)["eventId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, members)
}
