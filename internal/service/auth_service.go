package service

import (
	"context"
	"errors"
	"strings"

	"github.com/locvowork/hr_records/internal/domain"
	"github.com/locvowork/hr_records/internal/logger"
	"github.com/locvowork/hr_records/internal/metrics"
	"github.com/locvowork/hr_records/internal/security"
)

type AuthService interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error)
}

type authService struct {
	users domain.UserRepository
}

func NewAuthService(users domain.UserRepository) AuthService {
	return &authService{users: users}
}

// Login checks credentials. Unknown users and wrong passwords are reported in
// the result, not as errors; only lookup failures are errors. The issued token
// is a presence marker with no claims and no expiry.
func (s *authService) Login(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error) {
	email := strings.TrimSpace(creds.Email)

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		metrics.LoginUnknownUser.Inc()
		return &domain.LoginResult{Success: false, Message: domain.MsgUserNotFound}, nil
	}
	if err != nil {
		return nil, err
	}

	if !security.CheckPassword(ctx, user.Password, creds.Password) {
		metrics.LoginInvalidPassword.Inc()
		return &domain.LoginResult{Success: false, Message: domain.MsgInvalidPassword}, nil
	}

	metrics.LoginSucceeded.Inc()
	logger.InfoLog(ctx, "User %d logged in", user.ID)
	return &domain.LoginResult{
		Success: true,
		Token:   security.NewSessionToken(),
		User:    &domain.User{ID: user.ID, Email: user.Email},
	}, nil
}
