package utils

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("sup3r-secret")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "sup3r-secret" {
		t.Fatalf("hash equals plain password")
	}

	if !CheckPasswordHash("sup3r-secret", hash) {
		t.Fatalf("correct password rejected")
	}
	if CheckPasswordHash("wrong-password", hash) {
		t.Fatalf("wrong password accepted")
	}
}
