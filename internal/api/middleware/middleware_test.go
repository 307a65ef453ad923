package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tec-planning/backend/config"
	"tec-planning/backend/internal/model"
	"tec-planning/backend/internal/service"
	"tec-planning/backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── mocks ──

type mockAuthenticator struct {
	user  *model.User
	err   error
	token string
}

func (m *mockAuthenticator) Authenticate(_ context.Context, token string) (*model.User, *jwt.Claims, error) {
	m.token = token
	if m.err != nil {
		return nil, nil, m.err
	}
	return m.user, &jwt.Claims{}, nil
}

type mockLimiter struct {
	allowed bool
	err     error
	calls   int
}

func (m *mockLimiter) CheckRateLimit(_ context.Context, _ string, _ int, _ time.Duration) (bool, error) {
	m.calls++
	return m.allowed, m.err
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return body.Message
}

func guarded(auth Authenticator) *gin.Engine {
	r := gin.New()
	r.GET("/me", JWTAuth(auth), func(c *gin.Context) {
		user := c.MustGet(CurrentUserKey).(*model.User)
		c.JSON(http.StatusOK, gin.H{"email": user.Email})
	})
	return r
}

// ── JWTAuth ──

func TestJWTAuth_Failures(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		err     error
		status  int
		message string
	}{
		{"no header", "", nil, http.StatusUnauthorized, "Authorization header missing or invalid"},
		{"wrong scheme", "Basic abc", nil, http.StatusUnauthorized, "Authorization header missing or invalid"},
		{"empty token", "Bearer ", nil, http.StatusUnauthorized, "Authorization header missing or invalid"},
		{"invalid token", "Bearer nope", service.ErrTokenInvalid, http.StatusUnauthorized, "Invalid or expired token"},
		{"user gone", "Bearer tok", service.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"database down", "Bearer tok", errors.New("connection refused"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			guarded(&mockAuthenticator{err: tt.err}).ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			if got := message(t, w); got != tt.message {
				t.Errorf("message = %q, want %q", got, tt.message)
			}
		})
	}
}

func TestJWTAuth_Success(t *testing.T) {
	auth := &mockAuthenticator{user: &model.User{Email: "ana@tec.ac.cr"}}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")

	guarded(auth).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if auth.token != "good-token" {
		t.Errorf("token passed = %q", auth.token)
	}
	if !strings.Contains(w.Body.String(), "ana@tec.ac.cr") {
		t.Errorf("body = %s", w.Body.String())
	}
}

// ── RateLimit ──

func TestRateLimit(t *testing.T) {
	run := func(limiter RateLimiter) int {
		r := gin.New()
		r.POST("/auth/login", RateLimit(limiter, 5, time.Minute, zap.NewNop()), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
		return w.Code
	}

	if code := run(nil); code != http.StatusOK {
		t.Errorf("nil limiter: %d", code)
	}
	if code := run(&mockLimiter{allowed: true}); code != http.StatusOK {
		t.Errorf("allowed: %d", code)
	}
	if code := run(&mockLimiter{allowed: false}); code != http.StatusTooManyRequests {
		t.Errorf("denied: %d", code)
	}
	if code := run(&mockLimiter{err: errors.New("redis down")}); code != http.StatusOK {
		t.Errorf("limiter error: %d", code)
	}
}

// ── RequestID ──

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(requestIDKey)) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "abc-123" || w.Body.String() != "abc-123" {
		t.Errorf("client id not reused: header %q body %q", got, w.Body.String())
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("x", 200))
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); len(got) != 36 {
		t.Errorf("oversized id not replaced: %q", got)
	}
}

// ── BodyLimit ──

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(16))
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("a", 64))))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}")))
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

// ── CORS ──

func TestCORS(t *testing.T) {
	preflight := func(cfg config.CORSConfig, origin string) *httptest.ResponseRecorder {
		r := gin.New()
		r.Use(CORS(cfg))
		r.GET("/programs", func(c *gin.Context) { c.Status(http.StatusOK) })
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/programs", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", "GET")
		r.ServeHTTP(w, req)
		return w
	}

	w := preflight(config.CORSConfig{AllowOrigins: []string{"*"}}, "http://anywhere.test")
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("wildcard allow-origin = %q", got)
	}

	listed := config.CORSConfig{AllowOrigins: []string{"http://localhost:5173"}}
	w = preflight(listed, "http://localhost:5173")
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("listed allow-origin = %q", got)
	}
	w = preflight(listed, "http://evil.test")
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unlisted origin allowed: %q", got)
	}
}
