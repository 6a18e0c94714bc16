package internal

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// NewSessionID returns an opaque session identifier with well over 128
// bits of entropy: a random UUID rendered as 32 hex characters plus a
// 4-byte random suffix. The exact construction is not load-bearing; only
// its entropy and practical uniqueness are.
func NewSessionID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}

	var suffix [4]byte
	if _, err := rand.Read(suffix[:]); err != nil {
		return "", err
	}

	return hex.EncodeToString(id[:]) + hex.EncodeToString(suffix[:]), nil
}
