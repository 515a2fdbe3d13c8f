package service

import (
	"context"
	"tazkara/internal/external"
	"tazkara/internal/logger"
	"tazkara/internal/models"
	"tazkara/internal/session"
)

type AuthService struct {
	client   *external.Client
	sessions *session.Manager
}

func NewAuthService(client *external.Client, sessions *session.Manager) *AuthService {
	return &AuthService{
		client:   client,
		sessions: sessions,
	}
}

func (s *AuthService) Login(ctx context.Context, identifier, password string) (models.User, error) {
	user, err := s.client.Login(ctx, identifier, password)
	if err != nil {
		return models.User{}, err
	}
	if err := s.sessions.Establish(ctx, user); err != nil {
		logger.WithContext(ctx).Warn("failed to persist session after login", "user_id", user.ID, "error", err)
	}
	return user, nil
}

func (s *AuthService) Register(ctx context.Context, name, phone, password string) (models.User, error) {
	user, err := s.client.Register(ctx, name, phone, password)
	if err != nil {
		return models.User{}, err
	}
	if err := s.sessions.Establish(ctx, user); err != nil {
		logger.WithContext(ctx).Warn("failed to persist session after registration", "user_id", user.ID, "error", err)
	}
	return user, nil
}

// Logout always succeeds locally. The upstream call is best-effort: the
// backend invalidating the token is nice to have, but the local session is
// cleared no matter what.
func (s *AuthService) Logout(ctx context.Context, token string) {
	if token != "" {
		if err := s.client.Logout(ctx, token); err != nil {
			logger.WithContext(ctx).Debug("upstream logout failed", "error", err)
		}
	}
	s.sessions.Clear(ctx, token)
}

func (s *AuthService) Current(ctx context.Context, token string) (models.User, bool) {
	return s.sessions.Current(ctx, token)
}
