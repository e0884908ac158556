package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/contactbook/backend/internal/model"
	"github.com/contactbook/backend/internal/repository"
	"github.com/contactbook/backend/pkg/auth"
)

// SessionService manages DB-backed user sessions.
// Implements auth.SessionValidator.
type SessionService struct {
	repo repository.SessionRepository
	now  func() time.Time
}

// NewSessionService creates a SessionService.
func NewSessionService(repo repository.SessionRepository) *SessionService {
	return &SessionService{repo: repo, now: time.Now}
}

// CreateSession generates a new opaque token, stores it, and returns the session.
func (s *SessionService) CreateSession(ctx context.Context, userID string) (*model.Session, error) {
	token, err := auth.GenerateSessionToken()
	if err != nil {
		return nil, err
	}
	now := s.now()
	session := &model.Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(auth.SessionDuration),
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ValidateSession validates a session token and returns the user ID.
// Sessions past the halfway point of their lifetime are silently extended,
// so an active user never gets logged out.
func (s *SessionService) ValidateSession(ctx context.Context, token string) (string, error) {
	session, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		return "", errors.New("invalid_session")
	}

	now := s.now()
	if now.After(session.ExpiresAt) {
		_ = s.repo.DeleteByToken(ctx, token)
		return "", errors.New("session_expired")
	}

	if session.ExpiresAt.Sub(now) < auth.SessionDuration/2 {
		if err := s.repo.Extend(ctx, token, now.Add(auth.SessionDuration)); err != nil {
			// Refresh failures are not fatal; the session is still valid.
			slog.Warn("session refresh failed", "error", err)
		}
	}

	return session.UserID, nil
}

// DeleteSession removes a session (logout).
func (s *SessionService) DeleteSession(ctx context.Context, token string) error {
	return s.repo.DeleteByToken(ctx, token)
}

// DeleteAllSessions removes all sessions for a user (forced logout).
func (s *SessionService) DeleteAllSessions(ctx context.Context, userID string) error {
	return s.repo.DeleteByUserID(ctx, userID)
}
