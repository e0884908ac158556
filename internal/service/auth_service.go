package service

import (
	"context"

	"github.com/contactbook/backend/internal/model"
)

// AuthService implements email/password authentication with an email-OTP
// signup flow. A signup passes through three states: credentials submitted
// (challenge row created, code emailed), awaiting verification, and
// authenticated. No user account exists until the code is verified, so a
// half-created account with an unverified password cannot occur.
type AuthService interface {
	// SignUp starts a signup: it stores a challenge carrying the hashed
	// password and display name, and emails a 6-digit code. It does not
	// create a user or a session.
	SignUp(ctx context.Context, email, password, displayName string) error

	// VerifyOtp exchanges the emailed code for an account and a session.
	// On success the user row is created with the password captured at
	// SignUp, the profile is provisioned, and a session is issued.
	// On failure the signup stays pending.
	VerifyOtp(ctx context.Context, email, code string) (*model.User, *model.Session, error)

	// ResendOtp rotates the code on the pending signup and emails it again.
	ResendOtp(ctx context.Context, email string) error

	// SignIn exchanges credentials for a session. Unknown email and wrong
	// password both fail with ErrInvalidCredentials.
	SignIn(ctx context.Context, email, password string) (*model.User, *model.Session, error)

	// SignOut invalidates the session token. Signing out an already-dead
	// session is a no-op.
	SignOut(ctx context.Context, token string) error

	// ChangePassword replaces the password after verifying the current one
	// (ErrInvalidCredentials on a mismatch). Every existing session is
	// revoked and a fresh one is returned for the caller.
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) (*model.Session, error)
}
