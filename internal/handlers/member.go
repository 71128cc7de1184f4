package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/beastgym/apiserver/internal/services"
	"github.com/beastgym/apiserver/internal/store"
	"github.com/beastgym/apiserver/types"
)

// MemberHandler provides HTTP handlers for gym members.
type MemberHandler struct {
	memberService *services.MemberService
}

// NewMemberHandler constructs a handler with the provided service.
func NewMemberHandler(memberService *services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// MemberRouter registers member routes on the given router. All member
// routes are guarded by the supplied middleware chain.
func MemberRouter(r chi.Router, memberService *services.MemberService, guards ...func(http.Handler) http.Handler) {
	handler := NewMemberHandler(memberService)

	r.Use(guards...)
	r.Get("/", handler.ListMembers)
	r.Post("/", handler.CreateMember)
	r.Route("/{memberID}", func(r chi.Router) {
		r.Get("/", handler.GetMember)
		r.Put("/", handler.UpdateMember)
		r.Delete("/", handler.DeleteMember)
	})
}

// MemberUpsertRequest is the JSON payload for creating or updating a member.
type MemberUpsertRequest struct {
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Plan      string     `json:"plan"`
	JoinedAt  *time.Time `json:"joined_at"`
	TrainerID *int       `json:"trainer_id"`
	PhotoKey  string     `json:"photo_key"`
}

// MemberListResponse is the paginated list response payload.
type MemberListResponse struct {
	Items []types.Member `json:"items"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
	Total int            `json:"total"`
}

func (h *MemberHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	page, limit, offset, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, total, err := h.memberService.List(r.Context(), offset, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list members")
		return
	}

	writeJSON(w, http.StatusOK, MemberListResponse{
		Items: items,
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

func (h *MemberHandler) GetMember(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "memberID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	member, err := h.memberService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "member not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch member")
		return
	}

	writeJSON(w, http.StatusOK, member)
}

func (h *MemberHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	req, err := parseMemberRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	member := types.Member{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Plan:      req.Plan,
		TrainerID: req.TrainerID,
		PhotoKey:  req.PhotoKey,
	}
	if req.JoinedAt != nil {
		member.JoinedAt = *req.JoinedAt
	}

	created, err := h.memberService.Create(r.Context(), member)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create member")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *MemberHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "memberID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	req, err := parseMemberRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	member := types.Member{
		ID:        id,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Plan:      req.Plan,
		TrainerID: req.TrainerID,
		PhotoKey:  req.PhotoKey,
	}
	if req.JoinedAt != nil {
		member.JoinedAt = *req.JoinedAt
	}

	updated, err := h.memberService.Update(r.Context(), member)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "member not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update member")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *MemberHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "memberID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	if err := h.memberService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "member not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete member")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseMemberRequest(r *http.Request) (MemberUpsertRequest, error) {
	var req MemberUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return MemberUpsertRequest{}, errors.New("invalid request")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" {
		return MemberUpsertRequest{}, errors.New("name is required")
	}
	if req.Email == "" {
		return MemberUpsertRequest{}, errors.New("email is required")
	}
	return req, nil
}
