package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/beastgym/apiserver/internal/services"
	"github.com/beastgym/apiserver/internal/store"
	"github.com/beastgym/apiserver/types"
)

// SessionHandler provides HTTP handlers for the class schedule.
type SessionHandler struct {
	sessionService *services.SessionService
	trainerService *services.TrainerService
}

// NewSessionHandler constructs a handler with the provided services.
func NewSessionHandler(sessionService *services.SessionService, trainerService *services.TrainerService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		trainerService: trainerService,
	}
}

// SessionRouter registers class-schedule routes on the given router.
// Reads are public; mutations are guarded by the supplied middleware
// chain.
func SessionRouter(r chi.Router, sessionService *services.SessionService, trainerService *services.TrainerService, guards ...func(http.Handler) http.Handler) {
	handler := NewSessionHandler(sessionService, trainerService)

	r.Get("/", handler.ListSessions)
	r.With(guards...).Post("/", handler.CreateSession)
	r.Route("/{sessionID}", func(r chi.Router) {
		r.Get("/", handler.GetSession)
		r.With(guards...).Put("/", handler.UpdateSession)
		r.With(guards...).Delete("/", handler.DeleteSession)
	})
}

// TrainerSessionRouter registers the trainer-surface schedule routes:
// each trainer sees the sessions assigned to them.
func TrainerSessionRouter(r chi.Router, sessionService *services.SessionService, trainerService *services.TrainerService, guards ...func(http.Handler) http.Handler) {
	handler := NewSessionHandler(sessionService, trainerService)

	r.Use(guards...)
	r.Get("/", handler.ListOwnSessions)
}

// SessionUpsertRequest is the JSON payload for creating or updating a
// class session.
type SessionUpsertRequest struct {
	Title     string    `json:"title"`
	TrainerID int       `json:"trainer_id"`
	Location  string    `json:"location"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	Capacity  int       `json:"capacity"`
}

// SessionListResponse is the paginated list response payload.
type SessionListResponse struct {
	Items []types.ClassSession `json:"items"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
	Total int                  `json:"total"`
}

func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	page, limit, offset, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, total, err := h.sessionService.List(r.Context(), offset, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}

	writeJSON(w, http.StatusOK, SessionListResponse{
		Items: items,
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

// ListOwnSessions lists the sessions assigned to the authenticated
// trainer.
func (h *SessionHandler) ListOwnSessions(w http.ResponseWriter, r *http.Request) {
	trainer, ok := h.resolveTrainer(w, r)
	if !ok {
		return
	}

	items, err := h.sessionService.ListByTrainer(r.Context(), trainer.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"sessions": items,
	})
}

func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	session, err := h.sessionService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch session")
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	req, err := parseSessionRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.sessionService.Create(r.Context(), types.ClassSession{
		Title:     req.Title,
		TrainerID: req.TrainerID,
		Location:  req.Location,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		Capacity:  req.Capacity,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidTimeRange) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *SessionHandler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	req, err := parseSessionRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.sessionService.Update(r.Context(), types.ClassSession{
		ID:        id,
		Title:     req.Title,
		TrainerID: req.TrainerID,
		Location:  req.Location,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		Capacity:  req.Capacity,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidTimeRange) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update session")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	if err := h.sessionService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete session")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// resolveTrainer maps the authenticated principal to its trainer
// profile. Writes the error response itself on failure.
func (h *SessionHandler) resolveTrainer(w http.ResponseWriter, r *http.Request) (types.Trainer, bool) {
	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return types.Trainer{}, false
	}

	accountID, err := strconv.Atoi(principal.UserID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return types.Trainer{}, false
	}

	trainer, err := h.trainerService.GetByAccountID(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "Not authorized")
			return types.Trainer{}, false
		}
		writeError(w, http.StatusInternalServerError, "failed to load trainer profile")
		return types.Trainer{}, false
	}
	return trainer, true
}

func parseSessionRequest(r *http.Request) (SessionUpsertRequest, error) {
	var req SessionUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return SessionUpsertRequest{}, errors.New("invalid request")
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return SessionUpsertRequest{}, errors.New("title is required")
	}
	if req.TrainerID < 1 {
		return SessionUpsertRequest{}, errors.New("trainer_id is required")
	}
	if req.StartsAt.IsZero() || req.EndsAt.IsZero() {
		return SessionUpsertRequest{}, errors.New("starts_at and ends_at are required")
	}
	return req, nil
}
