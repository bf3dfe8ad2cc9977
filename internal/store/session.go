package store

import (
	"context"

	"github.com/locvowork/hr_records/internal/domain"
	"github.com/locvowork/hr_records/internal/logger"
	"github.com/locvowork/hr_records/internal/mirror"
)

// Login exchanges credentials for a session marker. The marker is kept as an
// opaque flag; nothing parses or verifies it. A rejected login leaves the
// session unchanged and returns domain.ErrUserNotFound or
// domain.ErrInvalidCredentials.
func (s *Store) Login(ctx context.Context, email, password string) error {
	res, err := s.gw.Login(ctx, domain.Credentials{Email: email, Password: password})
	if err != nil {
		logger.WarnLog(ctx, "Login failed for %s: %v", email, err)
		s.mu.Lock()
		s.setErr(Session, err.Error())
		s.mu.Unlock()
		s.notify(Event{Kind: EventFailed, Resource: Session})
		return err
	}

	s.mu.Lock()
	s.authenticated = true
	s.token = res.Token
	s.user = res.User
	s.setErr(Session, "")
	s.mu.Unlock()

	if err := s.mirror.Set(ctx, mirror.KeyAuth, mirror.AuthTrue); err != nil {
		logger.WarnLog(ctx, "Failed to write %s to mirror: %v", mirror.KeyAuth, err)
	}
	if err := s.mirror.Set(ctx, mirror.KeyToken, res.Token); err != nil {
		logger.WarnLog(ctx, "Failed to write %s to mirror: %v", mirror.KeyToken, err)
	}
	s.notify(Event{Kind: EventSession, Resource: Session})
	return nil
}

// Logout clears the session flag and token unconditionally. Calling it again
// is a no-op.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.authenticated = false
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	s.removeMirrored(ctx, mirror.KeyAuth)
	s.removeMirrored(ctx, mirror.KeyToken)
	s.notify(Event{Kind: EventSession, Resource: Session})
}
