package auth

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	digest, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if digest == "correct horse battery staple" {
		t.Fatal("digest must not equal the plaintext")
	}

	if !VerifyPassword("correct horse battery staple", digest) {
		t.Error("expected matching password to verify")
	}
	if VerifyPassword("wrong password", digest) {
		t.Error("expected non-matching password to fail")
	}
}

func TestHashPasswordSaltsPerCall(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	second, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if first == second {
		t.Error("expected distinct digests for equal plaintexts")
	}
}

func TestVerifyPasswordMalformedDigest(t *testing.T) {
	t.Parallel()

	if VerifyPassword("secret", "not-a-bcrypt-digest") {
		t.Error("expected malformed digest to verify false")
	}
	if VerifyPassword("secret", "") {
		t.Error("expected empty digest to verify false")
	}
}
