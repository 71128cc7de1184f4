package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestCodec(t *testing.T, ttl time.Duration) *Codec {
	t.Helper()
	codec, err := NewCodec("test-secret", ttl)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return codec
}

func TestNewCodecRejectsEmptySecret(t *testing.T) {
	t.Parallel()

	if _, err := NewCodec("", DefaultTokenTTL); err == nil {
		t.Error("expected error for empty secret")
	}
	if _, err := NewCodec("   ", DefaultTokenTTL); err == nil {
		t.Error("expected error for blank secret")
	}
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, time.Hour)
	issued := Principal{
		UserID: "42",
		Email:  "admin@example.com",
		Role:   RoleSuperAdmin,
		Name:   "Admin",
	}

	token, err := codec.Issue(issued)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	got, ok := codec.Verify(token)
	if !ok {
		t.Fatal("expected token to verify")
	}
	if got != issued {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, issued)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, time.Hour)
	token, err := codec.Issue(Principal{UserID: "1", Role: RoleTrainer})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Flip a character in the payload segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, ok := codec.Verify(tampered); ok {
		t.Error("expected tampered token to fail verification")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, time.Hour)
	other, err := NewCodec("another-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	token, err := other.Issue(Principal{UserID: "1", Role: RoleTrainer})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, ok := codec.Verify(token); ok {
		t.Error("expected token signed with a different secret to fail")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, time.Hour)
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
		Role: string(RoleTrainer),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, ok := codec.Verify(token); ok {
		t.Error("expected expired token to fail verification")
	}
}

func TestVerifyRejectsBadClaims(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, time.Hour)
	sign := func(t *testing.T, claims Claims) string {
		t.Helper()
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return token
	}
	valid := jwt.RegisteredClaims{
		Subject:   "1",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	tests := []struct {
		name   string
		claims Claims
	}{
		{
			name:   "unknown role",
			claims: Claims{RegisteredClaims: valid, Role: "manager"},
		},
		{
			name:   "empty role",
			claims: Claims{RegisteredClaims: valid},
		},
		{
			name: "empty subject",
			claims: Claims{
				RegisteredClaims: jwt.RegisteredClaims{
					IssuedAt:  valid.IssuedAt,
					ExpiresAt: valid.ExpiresAt,
				},
				Role: string(RoleTrainer),
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, ok := codec.Verify(sign(t, tt.claims)); ok {
				t.Error("expected verification to fail")
			}
		})
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, time.Hour)
	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, ok := codec.Verify(token); ok {
			t.Errorf("expected %q to fail verification", token)
		}
	}
}

func TestAuthenticateFromCookie(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, time.Hour)
	issued := Principal{UserID: "7", Email: "t@example.com", Role: RoleTrainer, Name: "T"}
	token, err := codec.Issue(issued)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(&http.Cookie{Name: TrainerCookie, Value: token})

	got, ok := codec.Authenticate(r, TrainerCookie)
	if !ok {
		t.Fatal("expected cookie session to authenticate")
	}
	if got != issued {
		t.Errorf("principal mismatch: got %+v, want %+v", got, issued)
	}

	// A valid token on the wrong cookie name is anonymous.
	if _, ok := codec.Authenticate(r, AdminCookie); ok {
		t.Error("expected absent admin cookie to be anonymous")
	}
}

func TestAuthenticateAbsentOrEmptyCookie(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, time.Hour)

	r := httptest.NewRequest("GET", "/", nil)
	if _, ok := codec.Authenticate(r, AdminCookie); ok {
		t.Error("expected request without cookie to be anonymous")
	}

	r = httptest.NewRequest("GET", "/", nil)
	r.AddCookie(&http.Cookie{Name: AdminCookie, Value: ""})
	if _, ok := codec.Authenticate(r, AdminCookie); ok {
		t.Error("expected empty cookie value to be anonymous")
	}
}
