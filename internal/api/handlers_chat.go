package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/hogar-app/hogar/internal/api/respond"
	"github.com/hogar-app/hogar/internal/api/validate"
	"github.com/hogar-app/hogar/internal/services"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200

	// userIDHeader identifies the requesting household member for the
	// context cache. There is no authentication; absent headers share one
	// cache slot.
	userIDHeader  = "X-User-Id"
	defaultUserID = "default"
)

// ChatHandler handles the assistant endpoints.
type ChatHandler struct {
	svc *services.ChatService
}

func NewChatHandler(svc *services.ChatService) *ChatHandler { return &ChatHandler{svc: svc} }

func requestUserID(r *http.Request) string {
	if id := r.Header.Get(userIDHeader); id != "" {
		return id
	}
	return defaultUserID
}

// PostMessage handles POST /api/chat.
func (h *ChatHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid JSON")
		return
	}
	if err := validate.ChatMessage(in.Message); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	res, err := h.svc.HandleMessage(r.Context(), requestUserID(r), in.Message)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteSuccess(w, http.StatusOK, res)
}

// GetHistory handles GET /api/chat/history?limit=N.
func (h *ChatHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respond.WriteBadRequest(w, "limit must be a positive integer")
			return
		}
		if n > maxHistoryLimit {
			n = maxHistoryLimit
		}
		limit = n
	}

	history, err := h.svc.History(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteSuccess(w, http.StatusOK, history)
}

// GetContext handles GET /api/chat/context.
func (h *ChatHandler) GetContext(w http.ResponseWriter, r *http.Request) {
	actx, err := h.svc.AssistantContext(r.Context(), requestUserID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteSuccess(w, http.StatusOK, actx)
}
