package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sohada-a2it/A2itHRMServer/internal/auth"
	autherrors "github.com/sohada-a2it/A2itHRMServer/internal/auth/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	loginFn   func(email, password string, meta auth.LoginContext) (string, string, auth.AuthResponse, error)
	refreshFn func(token string) (string, string, auth.AuthResponse, error)
	getMeFn   func(userID string) (*auth.AuthResponse, error)
	logoutFn  func(userID string) error
}

func (f *fakeAuthService) Login(_ context.Context, email, password string, meta auth.LoginContext) (string, string, auth.AuthResponse, error) {
	return f.loginFn(email, password, meta)
}

func (f *fakeAuthService) RefreshToken(_ context.Context, token string) (string, string, auth.AuthResponse, error) {
	return f.refreshFn(token)
}

func (f *fakeAuthService) GetMe(_ context.Context, userID string) (*auth.AuthResponse, error) {
	return f.getMeFn(userID)
}

func (f *fakeAuthService) Logout(_ context.Context, userID string) error {
	if f.logoutFn != nil {
		return f.logoutFn(userID)
	}
	return nil
}

func newAuthRouter(svc auth.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := auth.NewHandler(svc)
	r.POST("/auth/login", handler.Login)
	r.POST("/auth/refresh", handler.RefreshToken)
	r.GET("/auth/me", func(c *gin.Context) { c.Set("user_id", "user-1") }, handler.Me)
	r.POST("/auth/logout", func(c *gin.Context) { c.Set("user_id", "user-1") }, handler.Logout)
	return r
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("web client gets auth cookies", func(t *testing.T) {
		svc := &fakeAuthService{
			loginFn: func(email, password string, meta auth.LoginContext) (string, string, auth.AuthResponse, error) {
				assert.Equal(t, "rahim@a2it.com", email)
				return "access-token", "refresh-token", auth.AuthResponse{Email: email, Role: "hr_manager"}, nil
			},
		}
		router := newAuthRouter(svc)

		body, _ := json.Marshal(auth.LoginRequest{Email: "rahim@a2it.com", Password: "password123"})
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Client-Type", "web")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		cookieNames := make(map[string]bool)
		for _, c := range w.Result().Cookies() {
			cookieNames[c.Name] = true
		}
		assert.True(t, cookieNames["access_token"])
		assert.True(t, cookieNames["refresh_token"])
	})

	t.Run("mobile client gets tokens in the body only", func(t *testing.T) {
		svc := &fakeAuthService{
			loginFn: func(email, password string, _ auth.LoginContext) (string, string, auth.AuthResponse, error) {
				return "access-token", "refresh-token", auth.AuthResponse{Email: email}, nil
			},
		}
		router := newAuthRouter(svc)

		body, _ := json.Marshal(auth.LoginRequest{Email: "rahim@a2it.com", Password: "password123"})
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Client-Type", "mobile")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Result().Cookies())
		assert.Contains(t, w.Body.String(), "access-token")
	})

	t.Run("invalid credentials are mapped to 401", func(t *testing.T) {
		svc := &fakeAuthService{
			loginFn: func(_, _ string, _ auth.LoginContext) (string, string, auth.AuthResponse, error) {
				return "", "", auth.AuthResponse{}, autherrors.ErrInvalidCredentials
			},
		}
		router := newAuthRouter(svc)

		body, _ := json.Marshal(auth.LoginRequest{Email: "rahim@a2it.com", Password: "bad"})
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		router := newAuthRouter(&fakeAuthService{})

		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader([]byte(`{"email":"x"}`)))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	t.Run("web client reads the cookie", func(t *testing.T) {
		svc := &fakeAuthService{
			refreshFn: func(token string) (string, string, auth.AuthResponse, error) {
				assert.Equal(t, "cookie-refresh", token)
				return "new-access", "new-refresh", auth.AuthResponse{}, nil
			},
		}
		router := newAuthRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
		req.Header.Set("X-Client-Type", "web")
		req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "cookie-refresh"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("web client without cookie gets 401", func(t *testing.T) {
		router := newAuthRouter(&fakeAuthService{})

		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
		req.Header.Set("X-Client-Type", "web")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("api client sends the token in the body", func(t *testing.T) {
		svc := &fakeAuthService{
			refreshFn: func(token string) (string, string, auth.AuthResponse, error) {
				assert.Equal(t, "body-refresh", token)
				return "new-access", "new-refresh", auth.AuthResponse{}, nil
			},
		}
		router := newAuthRouter(svc)

		body, _ := json.Marshal(auth.RefreshRequest{RefreshToken: "body-refresh"})
		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Client-Type", "api")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAuthHandler_Me(t *testing.T) {
	t.Run("returns the profile", func(t *testing.T) {
		svc := &fakeAuthService{
			getMeFn: func(userID string) (*auth.AuthResponse, error) {
				assert.Equal(t, "user-1", userID)
				return &auth.AuthResponse{ID: userID, Email: "rahim@a2it.com"}, nil
			},
		}
		router := newAuthRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "rahim@a2it.com")
	})

	t.Run("service errors are surfaced", func(t *testing.T) {
		svc := &fakeAuthService{
			getMeFn: func(_ string) (*auth.AuthResponse, error) {
				return nil, errors.New("boom")
			},
		}
		router := newAuthRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	var revoked string
	svc := &fakeAuthService{
		logoutFn: func(userID string) error {
			revoked = userID
			return nil
		},
	}
	router := newAuthRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", revoked)

	expired := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "access_token" && c.MaxAge < 0 {
			expired = true
		}
	}
	assert.True(t, expired)
}
