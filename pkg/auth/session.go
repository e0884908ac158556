package auth

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"time"
)

const sessionCookieName = "contactbook_session"

// SessionDuration is the sliding lifetime of a session.
const SessionDuration = 30 * 24 * time.Hour

// SessionCookieName returns the session cookie name.
func SessionCookieName() string {
	return sessionCookieName
}

// GenerateSessionToken returns a new opaque session token. The token carries
// no claims; the sessions table is the source of truth.
func GenerateSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// SessionCookie builds the HttpOnly cookie carrying the session token.
// secure should be true everywhere except plain-HTTP local development.
func SessionCookie(token string, expiresAt time.Time, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredSessionCookie builds a cookie that clears the session on the client.
func ExpiredSessionCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
