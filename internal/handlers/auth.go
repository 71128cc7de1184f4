package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/beastgym/apiserver/internal/auth"
	"github.com/beastgym/apiserver/internal/services"
	"github.com/beastgym/apiserver/internal/store"
)

// AuthHandler provides the login, logout, and who-am-I endpoints for the
// admin and trainer surfaces.
type AuthHandler struct {
	accounts      *services.AccountService
	codec         *auth.Codec
	secureCookies bool
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(accounts *services.AccountService, codec *auth.Codec, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		accounts:      accounts,
		codec:         codec,
		secureCookies: secureCookies,
	}
}

// AuthRouter registers the admin-surface auth routes on the given router.
func AuthRouter(r chi.Router, handler *AuthHandler) {
	r.Post("/login", handler.Login)
	r.Post("/logout", handler.Logout(auth.AdminCookie))
	r.With(RequireAuth(handler.codec, auth.AdminCookie)).Get("/me", handler.Me)
}

// TrainerAuthRouter registers the trainer-surface auth routes on the
// given router. The trainer surface authenticates against its own cookie
// and additionally requires the trainer role on who-am-I.
func TrainerAuthRouter(r chi.Router, handler *AuthHandler) {
	r.Post("/logout", handler.Logout(auth.TrainerCookie))
	r.With(
		RequireAuth(handler.codec, auth.TrainerCookie),
		RequireRole(auth.RoleTrainer),
	).Get("/me", handler.TrainerMe)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// AuthUser is the non-sensitive profile returned by login and who-am-I.
// The password hash and the raw token never appear in a response body.
type AuthUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type LoginResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	User    AuthUser `json:"user"`
}

type MeResponse struct {
	Success bool     `json:"success"`
	User    AuthUser `json:"user"`
}

type TrainerMeResponse struct {
	Success bool     `json:"success"`
	Trainer AuthUser `json:"trainer"`
}

// Login verifies credentials against the account store and, on success,
// issues a session token as an HTTP-only cookie on the surface matching
// the requested role. "No such account" and "wrong password" produce
// identical responses so the endpoint cannot be used to enumerate
// accounts.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid request")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Role = strings.TrimSpace(req.Role)
	if req.Email == "" || req.Password == "" || req.Role == "" {
		writeFail(w, http.StatusBadRequest, "All fields are required")
		return
	}

	role, ok := auth.ParseRole(req.Role)
	if !ok {
		writeFail(w, http.StatusBadRequest, "Invalid role")
		return
	}

	account, err := h.accounts.GetByEmailAndRole(r.Context(), req.Email, string(role))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeFail(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		slog.Error("login: account lookup failed", slog.Any("error", err))
		writeFail(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	if !auth.VerifyPassword(req.Password, account.PasswordHash) {
		writeFail(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !account.Active {
		writeFail(w, http.StatusUnauthorized, "Account is deactivated")
		return
	}

	principal := auth.Principal{
		UserID: strconv.Itoa(account.ID),
		Email:  account.Email,
		Role:   role,
		Name:   account.Name,
	}

	token, err := h.codec.Issue(principal)
	if err != nil {
		slog.Error("login: token issuance failed", slog.Any("error", err))
		writeFail(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	h.setSessionCookie(w, cookieNameForRole(role), token)

	writeJSON(w, http.StatusOK, LoginResponse{
		Success: true,
		Message: "Login successful",
		User:    profileFromPrincipal(principal),
	})
}

// Logout returns a handler that clears the given surface's session
// cookie. It always reports success, even when no session existed, and
// disables response caching so an intermediary never replays a
// "still logged in" response. The server keeps no session state, so
// this is purely client-side cookie replacement.
func (h *AuthHandler) Logout(cookieName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.clearSessionCookie(w, cookieName)

		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")

		writeJSON(w, http.StatusOK, StatusResponse{
			Success: true,
			Message: "Logged out successfully",
		})
	}
}

// Me returns the authenticated principal's public profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	writeJSON(w, http.StatusOK, MeResponse{
		Success: true,
		User:    profileFromPrincipal(*principal),
	})
}

// TrainerMe returns the authenticated trainer's public profile under the
// trainer key.
func (h *AuthHandler) TrainerMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	writeJSON(w, http.StatusOK, TrainerMeResponse{
		Success: true,
		Trainer: profileFromPrincipal(*principal),
	})
}

func profileFromPrincipal(p auth.Principal) AuthUser {
	return AuthUser{
		ID:    p.UserID,
		Name:  p.Name,
		Email: p.Email,
		Role:  string(p.Role),
	}
}

func cookieNameForRole(role auth.Role) string {
	if role == auth.RoleTrainer {
		return auth.TrainerCookie
	}
	return auth.AdminCookie
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, name, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.codec.TTL() / time.Second),
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}
