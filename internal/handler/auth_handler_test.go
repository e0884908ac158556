package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/contactbook/backend/internal/model"
	"github.com/contactbook/backend/internal/service"
	"github.com/contactbook/backend/pkg/auth"
)

// ---------------------------------------------------------------------------
// mocks
// ---------------------------------------------------------------------------

type mockAuthService struct {
	signUpFunc    func(ctx context.Context, email, password, displayName string) error
	verifyOtpFunc func(ctx context.Context, email, code string) (*model.User, *model.Session, error)
	resendFunc    func(ctx context.Context, email string) error
	signInFunc    func(ctx context.Context, email, password string) (*model.User, *model.Session, error)
	signOutFunc   func(ctx context.Context, token string) error
	signOutCalls  []string
	changePwFunc  func(ctx context.Context, userID, currentPassword, newPassword string) (*model.Session, error)
}

func (m *mockAuthService) SignUp(ctx context.Context, email, password, displayName string) error {
	if m.signUpFunc != nil {
		return m.signUpFunc(ctx, email, password, displayName)
	}
	return nil
}

func (m *mockAuthService) VerifyOtp(ctx context.Context, email, code string) (*model.User, *model.Session, error) {
	if m.verifyOtpFunc != nil {
		return m.verifyOtpFunc(ctx, email, code)
	}
	return nil, nil, service.ErrOtpInvalid
}

func (m *mockAuthService) ResendOtp(ctx context.Context, email string) error {
	if m.resendFunc != nil {
		return m.resendFunc(ctx, email)
	}
	return nil
}

func (m *mockAuthService) SignIn(ctx context.Context, email, password string) (*model.User, *model.Session, error) {
	if m.signInFunc != nil {
		return m.signInFunc(ctx, email, password)
	}
	return nil, nil, service.ErrInvalidCredentials
}

func (m *mockAuthService) SignOut(ctx context.Context, token string) error {
	m.signOutCalls = append(m.signOutCalls, token)
	if m.signOutFunc != nil {
		return m.signOutFunc(ctx, token)
	}
	return nil
}

func (m *mockAuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) (*model.Session, error) {
	if m.changePwFunc != nil {
		return m.changePwFunc(ctx, userID, currentPassword, newPassword)
	}
	return nil, service.ErrInvalidCredentials
}

type mockUserRepo struct {
	findByIDFunc func(ctx context.Context, id string) (*model.User, error)
}

func (m *mockUserRepo) Create(context.Context, *model.User) error { return nil }
func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, errors.New("not found")
}
func (m *mockUserRepo) FindByEmail(context.Context, string) (*model.User, error) {
	return nil, errors.New("not found")
}
func (m *mockUserRepo) UpdatePassword(context.Context, string, string) error { return nil }

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, r io.Reader) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookieName() {
			return c
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// SignUp
// ---------------------------------------------------------------------------

func TestAuthHandler_SignUp_Accepted(t *testing.T) {
	var gotEmail string
	svc := &mockAuthService{
		signUpFunc: func(_ context.Context, email, password, displayName string) error {
			gotEmail = email
			return nil
		},
	}
	h := NewAuthHandler(svc, &mockUserRepo{}, false)

	rec := httptest.NewRecorder()
	h.SignUp(rec, postJSON("/api/auth/signup", `{"email":"a@example.com","password":"secret123","display_name":"Alice"}`))

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if gotEmail != "a@example.com" {
		t.Errorf("service not called with email, got %q", gotEmail)
	}
	body := decodeBody(t, rec.Body)
	if !strings.Contains(body["message"].(string), "OTP Sent!") {
		t.Errorf("unexpected message %v", body["message"])
	}
	if sessionCookie(rec) != nil {
		t.Error("signup must not set a session cookie")
	}
}

func TestAuthHandler_SignUp_ShortPassword(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, &mockUserRepo{}, false)

	rec := httptest.NewRecorder()
	h.SignUp(rec, postJSON("/api/auth/signup", `{"email":"a@example.com","password":"abc"}`))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_SignUp_EmailTaken(t *testing.T) {
	svc := &mockAuthService{
		signUpFunc: func(context.Context, string, string, string) error {
			return service.ErrEmailTaken
		},
	}
	h := NewAuthHandler(svc, &mockUserRepo{}, false)

	rec := httptest.NewRecorder()
	h.SignUp(rec, postJSON("/api/auth/signup", `{"email":"a@example.com","password":"secret123"}`))

	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
}

// ---------------------------------------------------------------------------
// VerifyOtp
// ---------------------------------------------------------------------------

func TestAuthHandler_VerifyOtp_SetsSessionCookie(t *testing.T) {
	svc := &mockAuthService{
		verifyOtpFunc: func(_ context.Context, email, code string) (*model.User, *model.Session, error) {
			return &model.User{ID: "u1", Email: email},
				&model.Session{Token: "tok-123", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)},
				nil
		},
	}
	h := NewAuthHandler(svc, &mockUserRepo{}, false)

	rec := httptest.NewRecorder()
	h.VerifyOtp(rec, postJSON("/api/auth/verify-otp", `{"email":"a@example.com","code":"123456"}`))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	cookie := sessionCookie(rec)
	if cookie == nil || cookie.Value != "tok-123" {
		t.Fatalf("expected session cookie, got %+v", cookie)
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
	body := decodeBody(t, rec.Body)
	if !strings.Contains(body["message"].(string), "Account Created!") {
		t.Errorf("unexpected message %v", body["message"])
	}
}

func TestAuthHandler_VerifyOtp_WrongCode(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, &mockUserRepo{}, false)

	rec := httptest.NewRecorder()
	h.VerifyOtp(rec, postJSON("/api/auth/verify-otp", `{"email":"a@example.com","code":"000000"}`))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if sessionCookie(rec) != nil {
		t.Error("no cookie on failed verification")
	}
}

func TestAuthHandler_VerifyOtp_Expired(t *testing.T) {
	svc := &mockAuthService{
		verifyOtpFunc: func(context.Context, string, string) (*model.User, *model.Session, error) {
			return nil, nil, service.ErrOtpExpired
		},
	}
	h := NewAuthHandler(svc, &mockUserRepo{}, false)

	rec := httptest.NewRecorder()
	h.VerifyOtp(rec, postJSON("/api/auth/verify-otp", `{"email":"a@example.com","code":"123456"}`))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	body := decodeBody(t, rec.Body)
	if body["error"] != "otp_expired" {
		t.Errorf("expected otp_expired, got %v", body["error"])
	}
}

func TestAuthHandler_VerifyOtp_EmailTaken(t *testing.T) {
	svc := &mockAuthService{
		verifyOtpFunc: func(context.Context, string, string) (*model.User, *model.Session, error) {
			return nil, nil, service.ErrEmailTaken
		},
	}
	h := NewAuthHandler(svc, &mockUserRepo{}, false)

	rec := httptest.NewRecorder()
	h.VerifyOtp(rec, postJSON("/api/auth/verify-otp", `{"email":"a@example.com","code":"123456"}`))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if sessionCookie(rec) != nil {
		t.Error("no cookie when the email is already registered")
	}
	body := decodeBody(t, rec.Body)
	if body["error"] != "email_taken" {
		t.Errorf("expected email_taken, got %v", body["error"])
	}
}

// ---------------------------------------------------------------------------
// ResendOtp
// ---------------------------------------------------------------------------

func TestAuthHandler_ResendOtp(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, &mockUserRepo{}, false)

	rec := httptest.NewRecorder()
	h.ResendOtp(rec, postJSON("/api/auth/resend-otp", `{"email":"a@example.com"}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec.Body)
	if !strings.Contains(body["message"].(string), "OTP Resent!") {
		t.Errorf("unexpected message %v", body["message"])
	}
}

func TestAuthHandler_ResendOtp_NoPendingSignup(t *testing.T) {
	svc := &mockAuthService{
		resendFunc: func(context.Context, string) error { return service.ErrOtpInvalid },
	}
	h := NewAuthHandler(svc, &mockUserRepo{}, false)

	rec := httptest.NewRecorder()
	h.ResendOtp(rec, postJSON("/api/auth/resend-otp", `{"email":"nobody@example.com"}`))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

// ---------------------------------------------------------------------------
// Login / Logout
// ---------------------------------------------------------------------------

func TestAuthHandler_Login_Success(t *testing.T) {
	svc := &mockAuthService{
		signInFunc: func(_ context.Context, email, password string) (*model.User, *model.Session, error) {
			return &model.User{ID: "u1", Email: email},
				&model.Session{Token: "tok-456", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)},
				nil
		},
	}
	h := NewAuthHandler(svc, &mockUserRepo{}, false)

	rec := httptest.NewRecorder()
	h.Login(rec, postJSON("/api/auth/login", `{"email":"a@example.com","password":"secret123"}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if c := sessionCookie(rec); c == nil || c.Value != "tok-456" {
		t.Fatalf("expected session cookie, got %+v", c)
	}
	body := decodeBody(t, rec.Body)
	if !strings.Contains(body["message"].(string), "Welcome back!") {
		t.Errorf("unexpected message %v", body["message"])
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, &mockUserRepo{}, false)

	rec := httptest.NewRecorder()
	h.Login(rec, postJSON("/api/auth/login", `{"email":"a@example.com","password":"wrong"}`))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	body := decodeBody(t, rec.Body)
	if body["error"] != "Invalid email or password. Please try again." {
		t.Errorf("unexpected error message %v", body["error"])
	}
}

func TestAuthHandler_Logout_ClearsCookieAndSession(t *testing.T) {
	svc := &mockAuthService{}
	h := NewAuthHandler(svc, &mockUserRepo{}, false)

	req := postJSON("/api/auth/logout", `{}`)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName(), Value: "tok-789"})
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(svc.signOutCalls) != 1 || svc.signOutCalls[0] != "tok-789" {
		t.Errorf("session not deleted, calls %v", svc.signOutCalls)
	}
	c := sessionCookie(rec)
	if c == nil || c.Value != "" || c.MaxAge != -1 {
		t.Errorf("expected clearing cookie, got %+v", c)
	}
}

func TestAuthHandler_Logout_SessionDeleteFailure(t *testing.T) {
	svc := &mockAuthService{
		signOutFunc: func(context.Context, string) error {
			return errors.New("connection reset")
		},
	}
	h := NewAuthHandler(svc, &mockUserRepo{}, false)

	req := postJSON("/api/auth/logout", `{}`)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName(), Value: "tok-789"})
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if sessionCookie(rec) != nil {
		t.Error("cookie must not be cleared while the session row survives")
	}
	body := decodeBody(t, rec.Body)
	if body["error"] != "logout_failed" {
		t.Errorf("unexpected body %v", body)
	}
}

// ---------------------------------------------------------------------------
// ChangePassword
// ---------------------------------------------------------------------------

func TestAuthHandler_ChangePassword_IssuesFreshCookie(t *testing.T) {
	svc := &mockAuthService{
		changePwFunc: func(_ context.Context, userID, current, next string) (*model.Session, error) {
			if userID != "u1" || current != "old-secret" || next != "new-secret" {
				t.Errorf("unexpected args %q %q %q", userID, current, next)
			}
			return &model.Session{Token: "tok-new", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
	}
	h := NewAuthHandler(svc, &mockUserRepo{}, false)

	req := postJSON("/api/me/password", `{"current_password":"old-secret","new_password":"new-secret"}`)
	req = req.WithContext(auth.WithUserID(req.Context(), "u1"))
	rec := httptest.NewRecorder()
	h.ChangePassword(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	cookie := sessionCookie(rec)
	if cookie == nil || cookie.Value != "tok-new" {
		t.Fatalf("expected replacement session cookie, got %+v", cookie)
	}
	body := decodeBody(t, rec.Body)
	if !strings.Contains(body["message"].(string), "Password updated!") {
		t.Errorf("unexpected message %v", body["message"])
	}
}

func TestAuthHandler_ChangePassword_WrongCurrentPassword(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, &mockUserRepo{}, false)

	req := postJSON("/api/me/password", `{"current_password":"wrong","new_password":"new-secret"}`)
	req = req.WithContext(auth.WithUserID(req.Context(), "u1"))
	rec := httptest.NewRecorder()
	h.ChangePassword(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if sessionCookie(rec) != nil {
		t.Error("no cookie on a rejected password change")
	}
	body := decodeBody(t, rec.Body)
	if body["error"] != "Current password is incorrect. Please try again." {
		t.Errorf("unexpected error message %v", body["error"])
	}
}

func TestAuthHandler_ChangePassword_ShortNewPassword(t *testing.T) {
	svc := &mockAuthService{
		changePwFunc: func(context.Context, string, string, string) (*model.Session, error) {
			t.Error("service must not run for a too-short password")
			return nil, nil
		},
	}
	h := NewAuthHandler(svc, &mockUserRepo{}, false)

	req := postJSON("/api/me/password", `{"current_password":"old-secret","new_password":"abc"}`)
	req = req.WithContext(auth.WithUserID(req.Context(), "u1"))
	rec := httptest.NewRecorder()
	h.ChangePassword(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decodeBody(t, rec.Body)
	if body["error"] != "password_too_short" {
		t.Errorf("unexpected error %v", body["error"])
	}
}

// ---------------------------------------------------------------------------
// Me
// ---------------------------------------------------------------------------

func TestAuthHandler_Me(t *testing.T) {
	repo := &mockUserRepo{
		findByIDFunc: func(_ context.Context, id string) (*model.User, error) {
			if id == "u1" {
				return &model.User{ID: "u1", Email: "a@example.com"}, nil
			}
			return nil, errors.New("not found")
		},
	}
	h := NewAuthHandler(&mockAuthService{}, repo, false)

	req := httptest.NewRequest("GET", "/api/me", nil)
	req = req.WithContext(auth.WithUserID(req.Context(), "u1"))
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec.Body)
	if body["email"] != "a@example.com" {
		t.Errorf("unexpected body %v", body)
	}
	if _, leaked := body["password_hash"]; leaked {
		t.Error("password hash must never be serialized")
	}
}

func TestAuthHandler_Me_NoContextUser(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, &mockUserRepo{}, false)

	rec := httptest.NewRecorder()
	h.Me(rec, httptest.NewRequest("GET", "/api/me", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}
