package id

import (
	"crypto/rand"

	"github.com/google/uuid"
)

// GenerateID creates a unique 16-character alphanumeric ID.
// Used for catalog entries that arrive without an id.
func GenerateID() string {
	const chars = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	for i := range b {
		b[i] = chars[b[i]%byte(len(chars))]
	}
	return string(b)
}

// NewSessionID returns a random (version 4) UUID. Session ids must not be
// guessable, so this never falls back to a sequential source.
func NewSessionID() string {
	return uuid.NewString()
}
