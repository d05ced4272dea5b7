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

// ShoppingHandler handles shopping-list HTTP requests.
type ShoppingHandler struct {
	svc *services.ShoppingService
}

func NewShoppingHandler(svc *services.ShoppingService) *ShoppingHandler {
	return &ShoppingHandler{svc: svc}
}

// CreateItem handles POST /api/shopping.
func (h *ShoppingHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid JSON")
		return
	}
	if err := validate.CreateShoppingItem(in.Name); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	it, err := h.svc.CreateItem(r.Context(), &model.ShoppingItem{Name: in.Name})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, it)
}

// ListItems handles GET /api/shopping.
func (h *ShoppingHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListItems(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, items)
}

// ToggleItem handles PATCH /api/shopping/{itemId}/toggle.
func (h *ShoppingHandler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	it, err := h.svc.ToggleItem(r.Context(), mux.Vars(r)["itemId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, it)
}

// DeleteItem handles DELETE /api/shopping/{itemId}.
func (h *ShoppingHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteItem(r.Context(), mux.Vars(r)["itemId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
