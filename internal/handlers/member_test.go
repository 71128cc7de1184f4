package handlers

import (
	"context"
	"encoding/json"
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

type fakeMemberRepo struct {
	members map[int]types.Member
	nextID  int
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: map[int]types.Member{}, nextID: 1}
}

func (f *fakeMemberRepo) List(ctx context.Context, offset, limit int) ([]types.Member, int, error) {
	items := make([]types.Member, 0, len(f.members))
	for _, m := range f.members {
		items = append(items, m)
	}
	return items, len(items), nil
}

func (f *fakeMemberRepo) Get(ctx context.Context, id int) (types.Member, error) {
	m, ok := f.members[id]
	if !ok {
		return types.Member{}, store.ErrNotFound
	}
	return m, nil
}

func (f *fakeMemberRepo) Create(ctx context.Context, member types.Member) (types.Member, error) {
	member.ID = f.nextID
	f.nextID++
	f.members[member.ID] = member
	return member, nil
}

func (f *fakeMemberRepo) Update(ctx context.Context, member types.Member) (types.Member, error) {
	if _, ok := f.members[member.ID]; !ok {
		return types.Member{}, store.ErrNotFound
	}
	f.members[member.ID] = member
	return member, nil
}

func (f *fakeMemberRepo) Delete(ctx context.Context, id int) error {
	if _, ok := f.members[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.members, id)
	return nil
}

// newMemberTestServer mounts guarded member routes and hands back cookies
// for an admin and a trainer session.
func newMemberTestServer(t *testing.T, repo *fakeMemberRepo) (http.Handler, *http.Cookie, *http.Cookie) {
	t.Helper()

	codec, err := auth.NewCodec("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	router := chi.NewRouter()
	router.Route("/members", func(r chi.Router) {
		MemberRouter(r, services.NewMemberService(repo),
			RequireAuth(codec, auth.AdminCookie),
			RequireRole(auth.RoleSuperAdmin),
		)
	})

	adminToken, err := codec.Issue(auth.Principal{UserID: "1", Email: "admin@example.com", Role: auth.RoleSuperAdmin, Name: "Admin"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	trainerToken, err := codec.Issue(auth.Principal{UserID: "2", Email: "trainer@example.com", Role: auth.RoleTrainer, Name: "Trainer"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	admin := &http.Cookie{Name: auth.AdminCookie, Value: adminToken}
	trainer := &http.Cookie{Name: auth.AdminCookie, Value: trainerToken}
	return router, admin, trainer
}

func doJSON(t *testing.T, router http.Handler, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		r.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestMemberRoutesRequireAdminSession(t *testing.T) {
	t.Parallel()

	router, _, trainerCookie := newMemberTestServer(t, newFakeMemberRepo())

	// Anonymous.
	if w := doJSON(t, router, "GET", "/members/", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous list status = %d, want 401", w.Code)
	}

	// A trainer token in the admin cookie authenticates but lacks the role.
	w := doJSON(t, router, "GET", "/members/", "", trainerCookie)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("trainer-token list status = %d, want 401", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "Not authorized" {
		t.Errorf("error = %q, want Not authorized", resp.Error)
	}
}

func TestMemberCRUD(t *testing.T) {
	t.Parallel()

	router, adminCookie, _ := newMemberTestServer(t, newFakeMemberRepo())

	w := doJSON(t, router, "POST", "/members/",
		`{"name":"Ravi","email":"ravi@example.com","phone":"555-0100","plan":"quarterly"}`, adminCookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201; body %s", w.Code, w.Body.String())
	}
	var created types.Member
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.ID == 0 || created.Name != "Ravi" || created.Plan != "quarterly" {
		t.Errorf("created = %+v", created)
	}

	w = doJSON(t, router, "GET", "/members/1", "", adminCookie)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", w.Code)
	}

	w = doJSON(t, router, "PUT", "/members/1",
		`{"name":"Ravi K","email":"ravi@example.com","plan":"annual"}`, adminCookie)
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, want 200; body %s", w.Code, w.Body.String())
	}
	var updated types.Member
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode updated: %v", err)
	}
	if updated.Name != "Ravi K" || updated.Plan != "annual" {
		t.Errorf("updated = %+v", updated)
	}

	w = doJSON(t, router, "GET", "/members/", "", adminCookie)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", w.Code)
	}
	var list MemberListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if list.Total != 1 || len(list.Items) != 1 {
		t.Errorf("list = %+v, want one member", list)
	}

	w = doJSON(t, router, "DELETE", "/members/1", "", adminCookie)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", w.Code)
	}
	w = doJSON(t, router, "GET", "/members/1", "", adminCookie)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", w.Code)
	}
}

func TestMemberValidation(t *testing.T) {
	t.Parallel()

	router, adminCookie, _ := newMemberTestServer(t, newFakeMemberRepo())

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"x@example.com"}`},
		{"missing email", `{"name":"X"}`},
		{"malformed json", `{"name":`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := doJSON(t, router, "POST", "/members/", tt.body, adminCookie)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}

	if w := doJSON(t, router, "GET", "/members/abc", "", adminCookie); w.Code != http.StatusBadRequest {
		t.Errorf("non-numeric id status = %d, want 400", w.Code)
	}
	if w := doJSON(t, router, "GET", "/members/99", "", adminCookie); w.Code != http.StatusNotFound {
		t.Errorf("missing member status = %d, want 404", w.Code)
	}
}
