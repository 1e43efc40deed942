package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/socialchef/chefgpt/internal/config"
)

func TestSessionMiddleware(t *testing.T) {
	secret := "test-secret"
	cfg := &config.Config{SessionSecret: secret}

	createToken := func(claims jwt.MapClaims, key string) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		tokenString, _ := token.SignedString([]byte(key))
		return tokenString
	}

	tests := []struct {
		name          string
		cookie        string
		wantSessionID string
		wantNewCookie bool
	}{
		{
			name:          "No cookie",
			wantNewCookie: true,
		},
		{
			name:          "Garbage cookie",
			cookie:        "not-a-token",
			wantNewCookie: true,
		},
		{
			name: "Expired session",
			cookie: createToken(jwt.MapClaims{
				"sub": "session-123",
				"iss": "chefgpt",
				"exp": time.Now().Add(-time.Hour).Unix(),
			}, secret),
			wantNewCookie: true,
		},
		{
			name: "Invalid signature",
			cookie: createToken(jwt.MapClaims{
				"sub": "session-123",
				"iss": "chefgpt",
				"exp": time.Now().Add(time.Hour).Unix(),
			}, "wrong-secret"),
			wantNewCookie: true,
		},
		{
			name: "Wrong issuer",
			cookie: createToken(jwt.MapClaims{
				"sub": "session-123",
				"iss": "someone-else",
				"exp": time.Now().Add(time.Hour).Unix(),
			}, secret),
			wantNewCookie: true,
		},
		{
			name: "Valid session",
			cookie: createToken(jwt.MapClaims{
				"sub": "session-123",
				"iss": "chefgpt",
				"exp": time.Now().Add(time.Hour).Unix(),
			}, secret),
			wantSessionID: "session-123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID string
			handler := SessionMiddleware(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				id, ok := GetSessionID(r.Context())
				if !ok || id == "" {
					t.Error("expected session ID in context")
				}
				gotID = id
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest("GET", "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tt.cookie})
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusOK {
				t.Errorf("expected status %d, got %d", http.StatusOK, rr.Code)
			}
			if tt.wantSessionID != "" && gotID != tt.wantSessionID {
				t.Errorf("expected session ID %s, got %s", tt.wantSessionID, gotID)
			}

			issued := rr.Result().Cookies()
			if tt.wantNewCookie && len(issued) != 1 {
				t.Fatalf("expected a new session cookie, got %d cookies", len(issued))
			}
			if !tt.wantNewCookie && len(issued) != 0 {
				t.Errorf("expected no new cookie, got %d", len(issued))
			}
		})
	}
}

func TestSessionMiddleware_IssuedCookieRoundTrips(t *testing.T) {
	cfg := &config.Config{SessionSecret: "test-secret"}

	var ids []string
	handler := SessionMiddleware(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := GetSessionID(r.Context())
		ids = append(ids, id)
	}))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest("GET", "/", nil))
	cookies := first.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	if !cookies[0].HttpOnly {
		t.Error("expected HttpOnly session cookie")
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(cookies[0])
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if len(ids) != 2 || ids[0] != ids[1] {
		t.Errorf("expected the same session on the second request, got %v", ids)
	}
}

func TestGetSessionID_Missing(t *testing.T) {
	if _, ok := GetSessionID(httptest.NewRequest("GET", "/", nil).Context()); ok {
		t.Error("expected no session ID in a bare context")
	}
}

func TestSignSession_ReadBack(t *testing.T) {
	secret := []byte("test-secret")
	token, err := SignSession("session-abc", secret, time.Now())
	if err != nil {
		t.Fatalf("SignSession failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	id, ok := readSessionCookie(req, secret)
	if !ok || id != "session-abc" {
		t.Errorf("expected session-abc, got %q (ok=%v)", id, ok)
	}

	expired, _ := SignSession("session-abc", secret, time.Now().Add(-48*time.Hour))
	req = httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: expired})
	if _, ok := readSessionCookie(req, secret); ok {
		t.Error("expected an expired token to be rejected")
	}
}
