package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/contactbook/backend/internal/mail"
	"github.com/contactbook/backend/internal/model"
	"github.com/contactbook/backend/internal/repository"
)

const (
	otpTTL         = 10 * time.Minute
	maxOtpAttempts = 5
)

// authServiceImpl is the production implementation of AuthService.
type authServiceImpl struct {
	users    repository.UserRepository
	otps     repository.OtpRepository
	profiles repository.ProfileRepository
	sessions *SessionService
	mailer   mail.Mailer
	now      func() time.Time
}

// NewAuthService creates an AuthService.
func NewAuthService(
	users repository.UserRepository,
	otps repository.OtpRepository,
	profiles repository.ProfileRepository,
	sessions *SessionService,
	mailer mail.Mailer,
) AuthService {
	return &authServiceImpl{
		users:    users,
		otps:     otps,
		profiles: profiles,
		sessions: sessions,
		mailer:   mailer,
		now:      time.Now,
	}
}

func (s *authServiceImpl) SignUp(ctx context.Context, email, password, displayName string) error {
	email = normalizeEmail(email)

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	code, err := generateOtpCode()
	if err != nil {
		return err
	}

	now := s.now()
	challenge := &model.OtpChallenge{
		ID:           uuid.NewString(),
		Email:        email,
		Code:         code,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(displayName),
		CreatedAt:    now,
		ExpiresAt:    now.Add(otpTTL),
	}
	if err := s.otps.Upsert(ctx, challenge); err != nil {
		return err
	}

	if err := s.sendOtpMail(ctx, email, code); err != nil {
		// The challenge is useless if the code never arrived.
		_ = s.otps.DeleteByEmail(ctx, email)
		return err
	}

	slog.Info("signup challenge issued", "email", email)
	return nil
}

func (s *authServiceImpl) VerifyOtp(ctx context.Context, email, code string) (*model.User, *model.Session, error) {
	email = normalizeEmail(email)

	challenge, err := s.otps.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, ErrOtpInvalid
	}
	if err != nil {
		return nil, nil, err
	}

	if challenge.Expired(s.now()) {
		_ = s.otps.DeleteByEmail(ctx, email)
		return nil, nil, ErrOtpExpired
	}
	if challenge.Attempts >= maxOtpAttempts {
		_ = s.otps.DeleteByEmail(ctx, email)
		return nil, nil, ErrOtpExpired
	}

	if subtle.ConstantTimeCompare([]byte(challenge.Code), []byte(code)) != 1 {
		_ = s.otps.IncrementAttempts(ctx, challenge.ID)
		return nil, nil, ErrOtpInvalid
	}

	// Verified: the account comes into existence now, password included.
	user := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: challenge.PasswordHash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// The email got registered through another signup while this
			// challenge was pending. The challenge is useless now.
			_ = s.otps.DeleteByEmail(ctx, email)
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, err
	}

	profile := &model.Profile{UserID: user.ID, DisplayName: challenge.DisplayName}
	if err := s.profiles.Create(ctx, profile); err != nil {
		// The account exists and can sign in; the profile will be
		// provisioned lazily on first read.
		slog.Error("profile provisioning failed", "user_id", user.ID, "error", err)
	}

	_ = s.otps.DeleteByEmail(ctx, email)

	session, err := s.sessions.CreateSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	slog.Info("signup verified", "user_id", user.ID)
	return user, session, nil
}

func (s *authServiceImpl) ResendOtp(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	challenge, err := s.otps.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrOtpInvalid
	}
	if err != nil {
		return err
	}

	code, err := generateOtpCode()
	if err != nil {
		return err
	}

	// Keep the captured password and display name; only the code rotates.
	now := s.now()
	challenge.Code = code
	challenge.Attempts = 0
	challenge.CreatedAt = now
	challenge.ExpiresAt = now.Add(otpTTL)
	if err := s.otps.Upsert(ctx, challenge); err != nil {
		return err
	}

	return s.sendOtpMail(ctx, email, code)
}

func (s *authServiceImpl) SignIn(ctx context.Context, email, password string) (*model.User, *model.Session, error) {
	email = normalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.sessions.CreateSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	slog.Info("sign in", "user_id", user.ID)
	return user, session, nil
}

func (s *authServiceImpl) SignOut(ctx context.Context, token string) error {
	return s.sessions.DeleteSession(ctx, token)
}

func (s *authServiceImpl) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) (*model.Session, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return nil, ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return nil, err
	}

	// Stolen sessions die with the old password. The caller gets a fresh one
	// so they stay signed in.
	if err := s.sessions.DeleteAllSessions(ctx, userID); err != nil {
		return nil, err
	}
	session, err := s.sessions.CreateSession(ctx, userID)
	if err != nil {
		return nil, err
	}

	slog.Info("password changed", "user_id", userID)
	return session, nil
}

func (s *authServiceImpl) sendOtpMail(ctx context.Context, email, code string) error {
	body := fmt.Sprintf(
		"Your Contact Manager verification code is: %s\n\nThe code expires in %d minutes. If you did not request it, ignore this email.\n",
		code, int(otpTTL.Minutes()))
	return s.mailer.Send(ctx, email, "Your verification code", body)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// generateOtpCode returns a uniformly random 6-digit code, zero-padded.
func generateOtpCode() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	n := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	return fmt.Sprintf("%06d", n%1000000), nil
}
