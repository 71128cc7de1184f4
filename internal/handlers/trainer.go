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

// TrainerHandler provides HTTP handlers for trainer profiles.
type TrainerHandler struct {
	trainerService *services.TrainerService
}

// NewTrainerHandler constructs a handler with the provided service.
func NewTrainerHandler(trainerService *services.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainerService: trainerService}
}

// TrainerRouter registers trainer administration routes on the given
// router. All trainer routes are guarded by the supplied middleware chain.
func TrainerRouter(r chi.Router, trainerService *services.TrainerService, guards ...func(http.Handler) http.Handler) {
	handler := NewTrainerHandler(trainerService)

	r.Use(guards...)
	r.Get("/", handler.ListTrainers)
	r.Post("/", handler.CreateTrainer)
	r.Route("/{trainerID}", func(r chi.Router) {
		r.Get("/", handler.GetTrainer)
		r.Put("/", handler.UpdateTrainer)
		r.Delete("/", handler.DeleteTrainer)
	})
}

// TrainerCreateRequest is the JSON payload for creating a trainer. The
// password seeds the trainer's login account and is never echoed back.
type TrainerCreateRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Specialty string `json:"specialty"`
	Password  string `json:"password"`
}

// TrainerUpdateRequest is the JSON payload for updating a trainer profile.
type TrainerUpdateRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Specialty string `json:"specialty"`
	PhotoKey  string `json:"photo_key"`
}

// TrainerListResponse is the paginated list response payload.
type TrainerListResponse struct {
	Items []types.Trainer `json:"items"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
	Total int             `json:"total"`
}

func (h *TrainerHandler) ListTrainers(w http.ResponseWriter, r *http.Request) {
	page, limit, offset, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, total, err := h.trainerService.List(r.Context(), offset, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list trainers")
		return
	}

	writeJSON(w, http.StatusOK, TrainerListResponse{
		Items: items,
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

func (h *TrainerHandler) GetTrainer(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "trainerID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid trainer id")
		return
	}

	trainer, err := h.trainerService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "trainer not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch trainer")
		return
	}

	writeJSON(w, http.StatusOK, trainer)
}

func (h *TrainerHandler) CreateTrainer(w http.ResponseWriter, r *http.Request) {
	var req TrainerCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "name, email, and password are required")
		return
	}

	created, err := h.trainerService.Create(r.Context(), services.NewTrainerInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Specialty: req.Specialty,
		Password:  req.Password,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create trainer")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *TrainerHandler) UpdateTrainer(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "trainerID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid trainer id")
		return
	}

	var req TrainerUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "name and email are required")
		return
	}

	updated, err := h.trainerService.Update(r.Context(), types.Trainer{
		ID:        id,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Specialty: req.Specialty,
		PhotoKey:  req.PhotoKey,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "trainer not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update trainer")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *TrainerHandler) DeleteTrainer(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "trainerID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid trainer id")
		return
	}

	if err := h.trainerService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "trainer not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete trainer")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
