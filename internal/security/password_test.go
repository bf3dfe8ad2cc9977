package security

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPassword(t *testing.T) {
	ctx := context.Background()

	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	require.True(t, IsHashed(hash))

	tests := []struct {
		name    string
		stored  string
		attempt string
		want    bool
	}{
		{"hashed match", hash, "hunter2", true},
		{"hashed mismatch", hash, "hunter3", false},
		{"plaintext match", "password123", "password123", true},
		{"plaintext mismatch", "password123", "password12", false},
		{"empty attempt", "password123", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckPassword(ctx, tt.stored, tt.attempt))
		})
	}
}

func TestNewSessionToken(t *testing.T) {
	a := NewSessionToken()
	b := NewSessionToken()

	assert.True(t, strings.HasPrefix(a, SessionTokenPrefix))
	assert.NotEqual(t, a, b)
}
