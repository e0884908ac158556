package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/contactbook/backend/internal/model"
	"github.com/contactbook/backend/internal/repository"
	"github.com/contactbook/backend/internal/service"
	"github.com/contactbook/backend/pkg/auth"
)

const minPasswordLength = 6

// AuthHandler serves the signup, login, and session endpoints.
type AuthHandler struct {
	authService service.AuthService
	userRepo    repository.UserRepository
	secure      bool
}

// NewAuthHandler creates an AuthHandler. secure controls the Secure flag on
// session cookies and should be true everywhere except plain-HTTP local
// development.
func NewAuthHandler(authService service.AuthService, userRepo repository.UserRepository, secure bool) *AuthHandler {
	return &AuthHandler{authService: authService, userRepo: userRepo, secure: secure}
}

type signUpRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// SignUp handles POST /api/auth/signup. It dispatches a verification code;
// no account or session exists until the code is verified.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}
	if req.Email == "" || req.Password == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "email_and_password_required"})
		return
	}
	if len(req.Password) < minPasswordLength {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "password_too_short"})
		return
	}

	if err := h.authService.SignUp(r.Context(), req.Email, req.Password, req.DisplayName); err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "email_taken"})
			return
		}
		slog.Error("signup failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "signup_failed"})
		return
	}

	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"message": "OTP Sent! Please check your email for the verification code.",
	})
}

type verifyOtpRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type authResponse struct {
	User    *model.User `json:"user"`
	Message string      `json:"message"`
}

// VerifyOtp handles POST /api/auth/verify-otp. On success the account comes
// into existence and the response sets the session cookie.
func (h *AuthHandler) VerifyOtp(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req verifyOtpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}
	if req.Email == "" || req.Code == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "email_and_code_required"})
		return
	}

	user, session, err := h.authService.VerifyOtp(r.Context(), req.Email, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOtpExpired):
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "otp_expired"})
		case errors.Is(err, service.ErrOtpInvalid):
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "otp_invalid"})
		case errors.Is(err, service.ErrEmailTaken):
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "email_taken"})
		default:
			slog.Error("otp verification failed", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "verify_failed"})
		}
		return
	}

	http.SetCookie(w, auth.SessionCookie(session.Token, session.ExpiresAt, h.secure))
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(authResponse{
		User:    user,
		Message: "Account Created! Your email has been verified and account is ready.",
	})
}

type resendOtpRequest struct {
	Email string `json:"email"`
}

// ResendOtp handles POST /api/auth/resend-otp. A fresh code replaces the
// pending one; the captured password and display name are untouched.
func (h *AuthHandler) ResendOtp(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req resendOtpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}
	if req.Email == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "email_required"})
		return
	}

	if err := h.authService.ResendOtp(r.Context(), req.Email); err != nil {
		if errors.Is(err, service.ErrOtpInvalid) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "no_pending_signup"})
			return
		}
		slog.Error("otp resend failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "resend_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]string{
		"message": "OTP Resent! Please check your email for the new verification code.",
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	user, session, err := h.authService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error": "Invalid email or password. Please try again.",
			})
			return
		}
		slog.Error("login failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "login_failed"})
		return
	}

	http.SetCookie(w, auth.SessionCookie(session.Token, session.ExpiresAt, h.secure))
	_ = json.NewEncoder(w).Encode(authResponse{
		User:    user,
		Message: "Welcome back! You have successfully signed in.",
	})
}

// Logout handles POST /api/auth/logout. The session row is removed and the
// cookie cleared; an absent cookie is not an error. When the session row
// cannot be deleted the cookie is kept so the client does not believe it is
// signed out while the session is still alive server side.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if cookie, err := r.Cookie(auth.SessionCookieName()); err == nil {
		if err := h.authService.SignOut(r.Context(), cookie.Value); err != nil {
			slog.Error("session delete on logout failed", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "logout_failed"})
			return
		}
	}

	http.SetCookie(w, auth.ExpiredSessionCookie(h.secure))
	_ = json.NewEncoder(w).Encode(map[string]string{
		"message": "You have been signed out successfully.",
	})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword handles PUT /api/me/password. Runs behind RequireAuth.
// All other sessions are revoked; the response sets a fresh session cookie.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "current_and_new_password_required"})
		return
	}
	if len(req.NewPassword) < minPasswordLength {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "password_too_short"})
		return
	}

	session, err := h.authService.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Current password is incorrect. Please try again."})
			return
		}
		slog.Error("password change failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "password_change_failed"})
		return
	}

	http.SetCookie(w, auth.SessionCookie(session.Token, session.ExpiresAt, h.secure))
	_ = json.NewEncoder(w).Encode(map[string]string{
		"message": "Password updated! Other devices have been signed out.",
	})
}

type meResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Me handles GET /api/me. Runs behind RequireAuth.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	user, err := h.userRepo.FindByID(r.Context(), userID)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "user_not_found"})
		return
	}

	_ = json.NewEncoder(w).Encode(meResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	})
}
