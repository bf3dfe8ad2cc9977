package security

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/rs/xid"
	"golang.org/x/crypto/bcrypt"

	"github.com/locvowork/hr_records/internal/logger"
)

// SessionTokenPrefix marks tokens issued by NewSessionToken.
const SessionTokenPrefix = "session_"

// HashPassword returns the bcrypt hash of plain.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// IsHashed reports whether stored looks like a bcrypt hash.
func IsHashed(stored string) bool {
	return strings.HasPrefix(stored, "$2")
}

// CheckPassword compares a login attempt against the stored value. Rows
// seeded before hashing was introduced still hold plaintext; those are
// compared in constant time and reported so they can be rehashed.
func CheckPassword(ctx context.Context, stored, attempt string) bool {
	if IsHashed(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(attempt)) == nil
	}

	logger.WarnLog(ctx, "Stored password is not hashed, comparing plaintext")
	return subtle.ConstantTimeCompare([]byte(stored), []byte(attempt)) == 1
}

// NewSessionToken returns an opaque, unique session marker. It carries no
// claims and is not verified by the server.
func NewSessionToken() string {
	return SessionTokenPrefix + xid.New().String()
}
