package model

import "time"

// OtpChallenge is a pending signup awaiting email verification. The account
// password hash and display name ride along on the challenge so that no user
// row exists until the code is verified; a signup in the "awaiting OTP"
// state is exactly one row in otp_challenges and nothing else.
type OtpChallenge struct {
	ID           string
	Email        string
	Code         string
	PasswordHash string
	DisplayName  string
	Attempts     int
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// Expired reports whether the challenge is past its expiry at the given time.
func (c *OtpChallenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
