package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/beastgym/apiserver/internal/auth"
	"github.com/beastgym/apiserver/internal/services"
	"github.com/beastgym/apiserver/internal/store"
	"github.com/beastgym/apiserver/types"
)

type fakeAccountRepo struct {
	accounts []types.Account
	err      error
}

func (f *fakeAccountRepo) GetByID(ctx context.Context, id int) (types.Account, error) {
	if f.err != nil {
		return types.Account{}, f.err
	}
	for _, account := range f.accounts {
		if account.ID == id {
			return account, nil
		}
	}
	return types.Account{}, store.ErrNotFound
}

func (f *fakeAccountRepo) GetByEmailAndRole(ctx context.Context, email, role string) (types.Account, error) {
	if f.err != nil {
		return types.Account{}, f.err
	}
	for _, account := range f.accounts {
		if account.Email == email && account.Role == role {
			return account, nil
		}
	}
	return types.Account{}, store.ErrNotFound
}

func (f *fakeAccountRepo) Create(ctx context.Context, account types.Account) (types.Account, error) {
	account.ID = len(f.accounts) + 1
	f.accounts = append(f.accounts, account)
	return account, nil
}

func (f *fakeAccountRepo) Update(ctx context.Context, account types.Account) (types.Account, error) {
	return account, nil
}

func (f *fakeAccountRepo) SetActive(ctx context.Context, id int, active bool) error {
	return nil
}

func (f *fakeAccountRepo) Delete(ctx context.Context, id int) error {
	return nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	digest, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	return digest
}

// newAuthTestServer mounts both auth surfaces the way the server does
// and seeds one active admin and one active trainer account.
func newAuthTestServer(t *testing.T, repo *fakeAccountRepo) http.Handler {
	t.Helper()

	codec, err := auth.NewCodec("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	handler := NewAuthHandler(services.NewAccountService(repo), codec, false)

	router := chi.NewRouter()
	router.Route("/auth", func(r chi.Router) {
		AuthRouter(r, handler)
	})
	router.Route("/trainer/auth", func(r chi.Router) {
		TrainerAuthRouter(r, handler)
	})
	return router
}

func seededRepo(t *testing.T) *fakeAccountRepo {
	t.Helper()
	return &fakeAccountRepo{accounts: []types.Account{
		{
			ID:           1,
			Name:         "Admin",
			Email:        "admin@example.com",
			Role:         "super_admin",
			PasswordHash: mustHash(t, "admin-pass"),
			Active:       true,
		},
		{
			ID:           2,
			Name:         "Trainer",
			Email:        "trainer@example.com",
			Role:         "trainer",
			PasswordHash: mustHash(t, "trainer-pass"),
			Active:       true,
		},
		{
			ID:           3,
			Name:         "Gone",
			Email:        "gone@example.com",
			Role:         "trainer",
			PasswordHash: mustHash(t, "gone-pass"),
			Active:       false,
		},
	}}
}

func postLogin(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest("POST", "/auth/login", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestLoginSuccessAdmin(t *testing.T) {
	t.Parallel()

	router := newAuthTestServer(t, seededRepo(t))
	w := postLogin(t, router, `{"email":"admin@example.com","password":"admin-pass","role":"super_admin"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}

	var resp LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Message != "Login successful" {
		t.Errorf("unexpected body: %+v", resp)
	}
	want := AuthUser{ID: "1", Name: "Admin", Email: "admin@example.com", Role: "super_admin"}
	if resp.User != want {
		t.Errorf("user = %+v, want %+v", resp.User, want)
	}

	cookie := sessionCookie(t, w, auth.AdminCookie)
	if cookie.Value == "" {
		t.Error("expected a session token in the cookie")
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be HTTP-only")
	}
	if cookie.Path != "/" {
		t.Errorf("cookie path = %q, want /", cookie.Path)
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("cookie SameSite = %v, want Lax", cookie.SameSite)
	}
	if cookie.MaxAge != int(time.Hour/time.Second) {
		t.Errorf("cookie MaxAge = %d, want %d", cookie.MaxAge, int(time.Hour/time.Second))
	}
	if cookie.Secure {
		t.Error("secure flag should be off outside production")
	}
	if strings.Contains(w.Body.String(), cookie.Value) {
		t.Error("raw token must not appear in the response body")
	}
}

func TestLoginSuccessTrainerSetsTrainerCookie(t *testing.T) {
	t.Parallel()

	router := newAuthTestServer(t, seededRepo(t))
	w := postLogin(t, router, `{"email":"trainer@example.com","password":"trainer-pass","role":"trainer"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}
	cookie := sessionCookie(t, w, auth.TrainerCookie)
	if cookie.Value == "" {
		t.Error("expected a session token in the trainer cookie")
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.AdminCookie {
			t.Error("trainer login must not touch the admin cookie")
		}
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()

	router := newAuthTestServer(t, seededRepo(t))

	noUser := postLogin(t, router, `{"email":"nobody@example.com","password":"whatever","role":"super_admin"}`)
	badPass := postLogin(t, router, `{"email":"admin@example.com","password":"wrong","role":"super_admin"}`)

	if noUser.Code != http.StatusUnauthorized || badPass.Code != http.StatusUnauthorized {
		t.Fatalf("statuses = %d, %d, want 401, 401", noUser.Code, badPass.Code)
	}
	if noUser.Body.String() != badPass.Body.String() {
		t.Errorf("bodies differ: %q vs %q", noUser.Body.String(), badPass.Body.String())
	}
	if len(noUser.Result().Cookies()) != 0 || len(badPass.Result().Cookies()) != 0 {
		t.Error("failed login must not set cookies")
	}
}

func TestLoginDeactivatedAccount(t *testing.T) {
	t.Parallel()

	router := newAuthTestServer(t, seededRepo(t))
	w := postLogin(t, router, `{"email":"gone@example.com","password":"gone-pass","role":"trainer"}`)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	var resp StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success || resp.Message != "Account is deactivated" {
		t.Errorf("unexpected body: %+v", resp)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Error("deactivated account must not receive a session cookie")
	}
}

func TestLoginValidation(t *testing.T) {
	t.Parallel()

	router := newAuthTestServer(t, seededRepo(t))

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"missing email", `{"password":"x","role":"trainer"}`, "All fields are required"},
		{"missing password", `{"email":"a@b.c","role":"trainer"}`, "All fields are required"},
		{"missing role", `{"email":"a@b.c","password":"x"}`, "All fields are required"},
		{"blank email", `{"email":"  ","password":"x","role":"trainer"}`, "All fields are required"},
		{"unknown role", `{"email":"a@b.c","password":"x","role":"manager"}`, "Invalid role"},
		{"malformed json", `{"email":`, "Invalid request"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := postLogin(t, router, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			var resp StatusResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Success || resp.Message != tt.message {
				t.Errorf("body = %+v, want message %q", resp, tt.message)
			}
		})
	}
}

func TestLoginStoreFailure(t *testing.T) {
	t.Parallel()

	repo := seededRepo(t)
	repo.err = errors.New("connection refused")
	router := newAuthTestServer(t, repo)

	w := postLogin(t, router, `{"email":"admin@example.com","password":"admin-pass","role":"super_admin"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Something went wrong") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestLogoutAlwaysSucceeds(t *testing.T) {
	t.Parallel()

	router := newAuthTestServer(t, seededRepo(t))

	// No session at all; logout still reports success.
	r := httptest.NewRequest("POST", "/auth/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Message != "Logged out successfully" {
		t.Errorf("unexpected body: %+v", resp)
	}

	cookie := sessionCookie(t, w, auth.AdminCookie)
	if cookie.Value != "" {
		t.Error("cleared cookie must carry an empty value")
	}
	if cookie.MaxAge >= 0 {
		t.Errorf("cleared cookie MaxAge = %d, want negative", cookie.MaxAge)
	}
	if !cookie.Expires.Before(time.Now()) {
		t.Errorf("cleared cookie Expires = %v, want the past", cookie.Expires)
	}

	headers := w.Result().Header
	if got := headers.Get("Cache-Control"); !strings.Contains(got, "no-store") {
		t.Errorf("Cache-Control = %q, want no-store", got)
	}
	if got := headers.Get("Pragma"); got != "no-cache" {
		t.Errorf("Pragma = %q, want no-cache", got)
	}
	if got := headers.Get("Expires"); got != "0" {
		t.Errorf("Expires = %q, want 0", got)
	}
}

func TestTrainerLogoutClearsTrainerCookie(t *testing.T) {
	t.Parallel()

	router := newAuthTestServer(t, seededRepo(t))
	r := httptest.NewRequest("POST", "/trainer/auth/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	cookie := sessionCookie(t, w, auth.TrainerCookie)
	if cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Errorf("expected cleared trainer cookie, got %+v", cookie)
	}
}

func loginAndGetCookie(t *testing.T, router http.Handler, body, cookieName string) *http.Cookie {
	t.Helper()
	w := postLogin(t, router, body)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200; body %s", w.Code, w.Body.String())
	}
	return sessionCookie(t, w, cookieName)
}

func TestMe(t *testing.T) {
	t.Parallel()

	router := newAuthTestServer(t, seededRepo(t))
	cookie := loginAndGetCookie(t, router,
		`{"email":"admin@example.com","password":"admin-pass","role":"super_admin"}`, auth.AdminCookie)

	r := httptest.NewRequest("GET", "/auth/me", nil)
	r.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}
	var resp MeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	want := AuthUser{ID: "1", Name: "Admin", Email: "admin@example.com", Role: "super_admin"}
	if !resp.Success || resp.User != want {
		t.Errorf("body = %+v, want user %+v", resp, want)
	}
}

func TestMeWithoutSession(t *testing.T) {
	t.Parallel()

	router := newAuthTestServer(t, seededRepo(t))
	r := httptest.NewRequest("GET", "/auth/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "Not authenticated" {
		t.Errorf("error = %q, want Not authenticated", resp.Error)
	}
}

func TestMeWithGarbageToken(t *testing.T) {
	t.Parallel()

	router := newAuthTestServer(t, seededRepo(t))
	r := httptest.NewRequest("GET", "/auth/me", nil)
	r.AddCookie(&http.Cookie{Name: auth.AdminCookie, Value: "not-a-token"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestTrainerMe(t *testing.T) {
	t.Parallel()

	router := newAuthTestServer(t, seededRepo(t))
	cookie := loginAndGetCookie(t, router,
		`{"email":"trainer@example.com","password":"trainer-pass","role":"trainer"}`, auth.TrainerCookie)

	r := httptest.NewRequest("GET", "/trainer/auth/me", nil)
	r.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}
	var resp TrainerMeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	want := AuthUser{ID: "2", Name: "Trainer", Email: "trainer@example.com", Role: "trainer"}
	if !resp.Success || resp.Trainer != want {
		t.Errorf("body = %+v, want trainer %+v", resp, want)
	}
}

func TestTrainerMeRejectsAdminToken(t *testing.T) {
	t.Parallel()

	router := newAuthTestServer(t, seededRepo(t))
	adminCookie := loginAndGetCookie(t, router,
		`{"email":"admin@example.com","password":"admin-pass","role":"super_admin"}`, auth.AdminCookie)

	// An admin token smuggled into the trainer cookie passes token
	// verification but fails the role gate.
	r := httptest.NewRequest("GET", "/trainer/auth/me", nil)
	r.AddCookie(&http.Cookie{Name: auth.TrainerCookie, Value: adminCookie.Value})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "Not authorized" {
		t.Errorf("error = %q, want Not authorized", resp.Error)
	}
}

func TestAdminMeIgnoresTrainerCookie(t *testing.T) {
	t.Parallel()

	router := newAuthTestServer(t, seededRepo(t))
	trainerCookie := loginAndGetCookie(t, router,
		`{"email":"trainer@example.com","password":"trainer-pass","role":"trainer"}`, auth.TrainerCookie)

	r := httptest.NewRequest("GET", "/auth/me", nil)
	r.AddCookie(trainerCookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
