package model

import "time"

// Session is a server-issued proof of authenticated identity. The token is
// opaque; validity is decided by the sessions table, not by the token itself.
type Session struct {
	Token     string    `json:"-"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
