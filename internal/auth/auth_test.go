package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	svc := NewService(4) // minimum cost keeps the test fast

	hash, err := svc.HashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter2hunter2" {
		t.Fatal("password stored in the clear")
	}

	if !svc.CheckPassword(hash, "hunter2hunter2") {
		t.Error("correct password rejected")
	}
	if svc.CheckPassword(hash, "wrong-password") {
		t.Error("wrong password accepted")
	}
}

func TestNewServiceClampsCost(t *testing.T) {
	// Out-of-range costs fall back to the bcrypt default instead of
	// failing on every hash call.
	svc := NewService(99)
	if _, err := svc.HashPassword("pw"); err != nil {
		t.Errorf("HashPassword with clamped cost: %v", err)
	}
}

func TestNewSessionTokenUnique(t *testing.T) {
	if NewSessionToken() == NewSessionToken() {
		t.Error("session tokens must be unique")
	}
}
