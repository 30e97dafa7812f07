package access

import (
	"errors"
	"testing"
)

// TestHashPassphrase_RoundTrip tests hashing and verification.
func TestHashPassphrase_RoundTrip(t *testing.T) {
	hash, err := HashPassphrase("bismillah-1")
	if err != nil {
		t.Fatalf("HashPassphrase: %v", err)
	}
	if hash == "bismillah-1" {
		t.Error("hash must not equal the plaintext")
	}
	if err := CheckPassphrase(hash, "bismillah-1"); err != nil {
		t.Errorf("CheckPassphrase with correct passphrase: %v", err)
	}
	if err := CheckPassphrase(hash, "wrong"); !errors.Is(err, ErrWrongPassphrase) {
		t.Errorf("expected ErrWrongPassphrase, got %v", err)
	}
}

// TestHashPassphrase_Empty tests the empty guard.
func TestHashPassphrase_Empty(t *testing.T) {
	if _, err := HashPassphrase(""); !errors.Is(err, ErrEmptyPassphrase) {
		t.Errorf("expected ErrEmptyPassphrase, got %v", err)
	}
}

// TestHashPassphrase_TooShort tests the length guard.
func TestHashPassphrase_TooShort(t *testing.T) {
	if _, err := HashPassphrase("short"); !errors.Is(err, ErrPassphraseTooShort) {
		t.Errorf("expected ErrPassphraseTooShort, got %v", err)
	}
}

// TestCheckPassphrase_NoHash tests that an unset hash never matches.
func TestCheckPassphrase_NoHash(t *testing.T) {
	if err := CheckPassphrase("", "anything"); !errors.Is(err, ErrWrongPassphrase) {
		t.Errorf("expected ErrWrongPassphrase, got %v", err)
	}
}
