package hash

import "testing"

func TestHashAndCheck(t *testing.T) {
	h, err := HashPassword("supersecret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if h == "supersecret" {
		t.Fatal("hash must not equal plaintext")
	}
	if !Check(h, "supersecret") {
		t.Fatal("check failed for correct password")
	}
	if Check(h, "wrong") {
		t.Fatal("check passed for wrong password")
	}
}
