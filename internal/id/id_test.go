package id_test

import (
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizpractice/backend/internal/id"
)

func TestGenerateID(t *testing.T) {
	got := id.GenerateID()
	assert.Regexp(t, regexp.MustCompile(`^[a-z0-9]{16}$`), got)
	assert.NotEqual(t, got, id.GenerateID())
}

func TestNewSessionID_IsRandomUUID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		sid := id.NewSessionID()
		parsed, err := uuid.Parse(sid)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(4), parsed.Version())
		assert.False(t, seen[sid])
		seen[sid] = true
	}
}
