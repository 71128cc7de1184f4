package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/beastgym/apiserver/internal/services"
	"github.com/beastgym/apiserver/internal/store"
	"github.com/beastgym/apiserver/types"
)

// WellnessHandler provides HTTP handlers for wellness plans.
type WellnessHandler struct {
	wellnessService *services.WellnessService
	trainerService  *services.TrainerService
	sessionResolver *SessionHandler
}

// NewWellnessHandler constructs a handler with the provided services.
func NewWellnessHandler(wellnessService *services.WellnessService, trainerService *services.TrainerService) *WellnessHandler {
	return &WellnessHandler{
		wellnessService: wellnessService,
		trainerService:  trainerService,
		sessionResolver: &SessionHandler{trainerService: trainerService},
	}
}

// WellnessRouter registers admin wellness-plan routes on the given
// router. All routes are guarded by the supplied middleware chain.
func WellnessRouter(r chi.Router, wellnessService *services.WellnessService, trainerService *services.TrainerService, guards ...func(http.Handler) http.Handler) {
	handler := NewWellnessHandler(wellnessService, trainerService)

	r.Use(guards...)
	r.Get("/", handler.ListPlans)
	r.Post("/", handler.CreatePlan)
	r.Route("/{planID}", func(r chi.Router) {
		r.Get("/", handler.GetPlan)
		r.Put("/", handler.UpdatePlan)
		r.Delete("/", handler.DeletePlan)
	})
}

// TrainerWellnessRouter registers the trainer-surface wellness routes.
// Trainers see and author only their own plans.
func TrainerWellnessRouter(r chi.Router, wellnessService *services.WellnessService, trainerService *services.TrainerService, guards ...func(http.Handler) http.Handler) {
	handler := NewWellnessHandler(wellnessService, trainerService)

	r.Use(guards...)
	r.Get("/", handler.ListOwnPlans)
	r.Post("/", handler.CreateOwnPlan)
	r.Put("/{planID}", handler.UpdateOwnPlan)
}

// WellnessUpsertRequest is the JSON payload for creating or updating a
// wellness plan.
type WellnessUpsertRequest struct {
	MemberID  int      `json:"member_id"`
	TrainerID int      `json:"trainer_id"`
	Title     string   `json:"title"`
	Notes     string   `json:"notes"`
	Diet      []string `json:"diet"`
	Workout   []string `json:"workout"`
}

// WellnessListResponse is the paginated list response payload.
type WellnessListResponse struct {
	Items []types.WellnessPlan `json:"items"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
	Total int                  `json:"total"`
}

func (h *WellnessHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	page, limit, offset, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, total, err := h.wellnessService.List(r.Context(), offset, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list plans")
		return
	}

	writeJSON(w, http.StatusOK, WellnessListResponse{
		Items: items,
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

func (h *WellnessHandler) ListOwnPlans(w http.ResponseWriter, r *http.Request) {
	trainer, ok := h.sessionResolver.resolveTrainer(w, r)
	if !ok {
		return
	}

	items, err := h.wellnessService.ListByTrainer(r.Context(), trainer.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list plans")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"plans":   items,
	})
}

func (h *WellnessHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "planID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid plan id")
		return
	}

	plan, err := h.wellnessService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "plan not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch plan")
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

func (h *WellnessHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	req, err := parseWellnessRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.TrainerID < 1 {
		writeError(w, http.StatusBadRequest, "trainer_id is required")
		return
	}

	created, err := h.wellnessService.Create(r.Context(), planFromRequest(req, 0))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create plan")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// CreateOwnPlan creates a plan authored by the authenticated trainer,
// ignoring any trainer_id in the payload.
func (h *WellnessHandler) CreateOwnPlan(w http.ResponseWriter, r *http.Request) {
	trainer, ok := h.sessionResolver.resolveTrainer(w, r)
	if !ok {
		return
	}

	req, err := parseWellnessRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.TrainerID = trainer.ID

	created, err := h.wellnessService.Create(r.Context(), planFromRequest(req, 0))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create plan")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *WellnessHandler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "planID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid plan id")
		return
	}

	req, err := parseWellnessRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.wellnessService.Update(r.Context(), planFromRequest(req, id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "plan not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update plan")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// UpdateOwnPlan updates a plan only if the authenticated trainer
// authored it.
func (h *WellnessHandler) UpdateOwnPlan(w http.ResponseWriter, r *http.Request) {
	trainer, ok := h.sessionResolver.resolveTrainer(w, r)
	if !ok {
		return
	}

	id, err := parseIDParam(chi.URLParam(r, "planID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid plan id")
		return
	}

	existing, err := h.wellnessService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "plan not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch plan")
		return
	}
	if existing.TrainerID != trainer.ID {
		writeError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	req, err := parseWellnessRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.TrainerID = trainer.ID

	updated, err := h.wellnessService.Update(r.Context(), planFromRequest(req, id))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update plan")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *WellnessHandler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "planID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid plan id")
		return
	}

	if err := h.wellnessService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "plan not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete plan")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseWellnessRequest(r *http.Request) (WellnessUpsertRequest, error) {
	var req WellnessUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return WellnessUpsertRequest{}, errors.New("invalid request")
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return WellnessUpsertRequest{}, errors.New("title is required")
	}
	if req.MemberID < 1 {
		return WellnessUpsertRequest{}, errors.New("member_id is required")
	}
	return req, nil
}

func planFromRequest(req WellnessUpsertRequest, id int) types.WellnessPlan {
	return types.WellnessPlan{
		ID:        id,
		MemberID:  req.MemberID,
		TrainerID: req.TrainerID,
		Title:     req.Title,
		Notes:     req.Notes,
		Diet:      req.Diet,
		Workout:   req.Workout,
	}
}
