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

// MemberHandler handles family-member HTTP requests.
type MemberHandler struct {
	svc *services.MemberService
}

func NewMemberHandler(svc *services.MemberService) *MemberHandler { return &MemberHandler{svc: svc} }

type memberRequest struct {
	Name      string  `json:"name"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	BirthDate *string `json:"birthDate,omitempty"`
	Avatar    *string `json:"avatar,omitempty"`
}

// CreateMember handles POST /api/members.
func (h *MemberHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var in memberRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid JSON")
		return
	}
	if err := validate.CreateMember(in.Name, in.Email, in.BirthDate); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	m, err := h.svc.CreateMember(r.Context(), &model.Member{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		BirthDate: in.BirthDate,
		Avatar:    in.Avatar,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, m)
}

// ListMembers handles GET /api/members.
func (h *MemberHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.ListMembers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, members)
}

// GetMember handles GET /api/members/{memberId}.
func (h *MemberHandler) GetMember(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.GetMember(r.Context(), mux.Vars(r)["memberId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, m)
}

// UpdateMember handles PUT /api/members/{memberId}.
func (h *MemberHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	var in memberRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid JSON")
		return
	}
	if err := validate.CreateMember(in.Name, in.Email, in.BirthDate); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	m, err := h.svc.UpdateMember(r.Context(), &model.Member{
		MemberID:  mux.Vars(r)["memberId"],
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		BirthDate: in.BirthDate,
		Avatar:    in.Avatar,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, m)
}

// DeleteMember handles DELETE /api/members/{memberId}.
func (h *MemberHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteMember(r.Context(), mux.Vars(r)["memberId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
