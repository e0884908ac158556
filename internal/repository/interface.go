package repository

import (
	"context"
	"time"

	"github.com/contactbook/backend/internal/model"
)

// DB is the minimal liveness surface used by the health endpoint.
type DB interface {
	Ping(ctx context.Context) error
}

// UserRepository handles persistence for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// SessionRepository handles persistence for user sessions.
type SessionRepository interface {
	Create(ctx context.Context, s *model.Session) error
	FindByToken(ctx context.Context, token string) (*model.Session, error)
	Extend(ctx context.Context, token string, expiresAt time.Time) error
	DeleteByToken(ctx context.Context, token string) error
	DeleteByUserID(ctx context.Context, userID string) error
}

// OtpRepository handles persistence for pending signup challenges.
// At most one challenge exists per email; Upsert replaces any prior one.
type OtpRepository interface {
	Upsert(ctx context.Context, c *model.OtpChallenge) error
	FindByEmail(ctx context.Context, email string) (*model.OtpChallenge, error)
	IncrementAttempts(ctx context.Context, id string) error
	DeleteByEmail(ctx context.Context, email string) error
}

// ProfileRepository handles persistence for per-user profiles.
type ProfileRepository interface {
	Create(ctx context.Context, p *model.Profile) error
	FindByUserID(ctx context.Context, userID string) (*model.Profile, error)
	Update(ctx context.Context, userID string, u model.ProfileUpdate) (*model.Profile, error)
}
