package password

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	h, err := NewHasher(Config{Cost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("new hasher: %v", err)
	}

	hash, err := h.Hash("hunter22")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Fatalf("unexpected hash format: %q", hash)
	}

	ok, err := h.Verify("hunter22", hash)
	if err != nil || !ok {
		t.Fatalf("expected match, got ok=%v err=%v", ok, err)
	}

	ok, err = h.Verify("wrong", hash)
	if err != nil {
		t.Fatalf("mismatch must not error: %v", err)
	}
	if ok {
		t.Fatal("wrong password accepted")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	h, err := NewHasher(Config{})
	if err != nil {
		t.Fatalf("new hasher: %v", err)
	}
	if _, err := h.Verify("x", "not-a-bcrypt-hash"); err == nil {
		t.Fatal("expected error for malformed hash")
	}
}

func TestNewHasherCostBounds(t *testing.T) {
	if _, err := NewHasher(Config{Cost: bcrypt.MinCost - 1}); err == nil {
		t.Fatal("expected under-min cost to be rejected")
	}
	if _, err := NewHasher(Config{Cost: bcrypt.MaxCost + 1}); err == nil {
		t.Fatal("expected over-max cost to be rejected")
	}

	h, err := NewHasher(Config{})
	if err != nil {
		t.Fatalf("zero cost must select the default: %v", err)
	}
	if h.cost != DefaultCost {
		t.Fatalf("expected default cost %d, got %d", DefaultCost, h.cost)
	}
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	h, err := NewHasher(Config{Cost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("new hasher: %v", err)
	}
	if _, err := h.Hash(""); err == nil {
		t.Fatal("expected empty password to be rejected")
	}
}

func TestNeedsUpgrade(t *testing.T) {
	low, err := NewHasher(Config{Cost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("new hasher: %v", err)
	}
	hash, err := low.Hash("hunter22")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	high, err := NewHasher(Config{Cost: bcrypt.MinCost + 2})
	if err != nil {
		t.Fatalf("new hasher: %v", err)
	}

	upgrade, err := high.NeedsUpgrade(hash)
	if err != nil {
		t.Fatalf("needs upgrade: %v", err)
	}
	if !upgrade {
		t.Fatal("low-cost hash should need upgrade")
	}

	upgrade, err = low.NeedsUpgrade(hash)
	if err != nil {
		t.Fatalf("needs upgrade: %v", err)
	}
	if upgrade {
		t.Fatal("same-cost hash should not need upgrade")
	}
}
