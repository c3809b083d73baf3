package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"invoicing-dashboard-backend/internal/auth"
)

// stubAuthService returns canned sign-in results and records calls
type stubAuthService struct {
	token      string
	signInErr  error
	sessionErr error

	signedOut []string
}

func (s *stubAuthService) SignIn(ctx context.Context, email, password string) (string, error) {
	if s.signInErr != nil {
		return "", s.signInErr
	}
	return s.token, nil
}

func (s *stubAuthService) SignOut(ctx context.Context, token string) error {
	s.signedOut = append(s.signedOut, token)
	return nil
}

func (s *stubAuthService) Session(ctx context.Context, token string) (string, error) {
	if s.sessionErr != nil {
		return "", s.sessionErr
	}
	return "user-1", nil
}

func loginForm() url.Values {
	return url.Values{
		"email":    {"user@example.com"},
		"password": {"password123"},
	}
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &stubAuthService{token: "token-1"}
	h := NewAuthHandler(svc, "session", time.Hour, testLogger())

	rr := httptest.NewRecorder()
	h.Login(rr, postForm("/login", loginForm()))

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if got := rr.Header().Get("Location"); got != "/dashboard" {
		t.Errorf("Location = %q, want %q", got, "/dashboard")
	}

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("set %d cookies, want 1", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != "session" || cookie.Value != "token-1" {
		t.Errorf("cookie = %s=%s, want session=token-1", cookie.Name, cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Error("session cookie is not HttpOnly")
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	svc := &stubAuthService{signInErr: &auth.Error{
		Category: auth.CategoryCredentials,
		Err:      errors.New("password mismatch"),
	}}
	h := NewAuthHandler(svc, "session", time.Hour, testLogger())

	rr := httptest.NewRecorder()
	h.Login(rr, postForm("/login", loginForm()))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}

	var resp MessageResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp.Message != "Invalid credentials." {
		t.Errorf("message = %q, want %q", resp.Message, "Invalid credentials.")
	}

	if len(rr.Result().Cookies()) != 0 {
		t.Error("cookie set for rejected credentials")
	}
}

func TestAuthHandler_Login_ProviderFailure(t *testing.T) {
	// Any categorized failure besides bad credentials gets the generic
	// message, without leaking the cause
	svc := &stubAuthService{signInErr: &auth.Error{
		Category: auth.CategoryProvider,
		Err:      errors.New("connection refused"),
	}}
	h := NewAuthHandler(svc, "session", time.Hour, testLogger())

	rr := httptest.NewRecorder()
	h.Login(rr, postForm("/login", loginForm()))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}

	var resp MessageResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp.Message != "Something went wrong." {
		t.Errorf("message = %q, want %q", resp.Message, "Something went wrong.")
	}
}

func TestAuthHandler_Login_UnrecognizedFailure(t *testing.T) {
	// An error outside the auth taxonomy propagates to the shared error
	// handler and keeps its distinct response shape
	svc := &stubAuthService{signInErr: errors.New("boom")}
	h := NewAuthHandler(svc, "session", time.Hour, testLogger())

	rr := httptest.NewRecorder()
	h.Login(rr, postForm("/login", loginForm()))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp.Error.Code != "INTERNAL_ERROR" {
		t.Errorf("code = %q, want INTERNAL_ERROR", resp.Error.Code)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, "session", time.Hour, testLogger())

	req := postForm("/logout", url.Values{})
	req.AddCookie(&http.Cookie{Name: "session", Value: "token-1"})

	rr := httptest.NewRecorder()
	h.Logout(rr, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if got := rr.Header().Get("Location"); got != "/login" {
		t.Errorf("Location = %q, want %q", got, "/login")
	}

	if len(svc.signedOut) != 1 || svc.signedOut[0] != "token-1" {
		t.Errorf("signed out %v, want [token-1]", svc.signedOut)
	}

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Errorf("cookies = %v, want one expired session cookie", cookies)
	}
}

func TestAuthHandler_Logout_WithoutCookie(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, "session", time.Hour, testLogger())

	rr := httptest.NewRecorder()
	h.Logout(rr, postForm("/logout", url.Values{}))

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if len(svc.signedOut) != 0 {
		t.Errorf("signed out %v without a cookie", svc.signedOut)
	}
}
