package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "storefront/common/errors"
	"storefront/middleware"
	"storefront/models"
	"storefront/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubSessions map[string]uint

func (s stubSessions) Resolve(_ context.Context, token string) (uint, error) {
	if token == "broken" {
		return 0, errors.New("backend unavailable")
	}
	id, ok := s[token]
	if !ok {
		return 0, session.ErrInvalidToken
	}
	return id, nil
}

type stubUsers map[uint]*models.User

func (s stubUsers) Get(_ context.Context, id uint) (*models.User, error) {
	u, ok := s[id]
	if !ok {
		return nil, apperrors.NotFound("User not found")
	}
	return u, nil
}

func setupRouter() *gin.Engine {
	sessions := stubSessions{"customer-token": 1, "admin-token": 2, "ghost-token": 9}
	users := stubUsers{1: {ID: 1}, 2: {ID: 2, IsAdmin: true}}

	r := gin.New()
	r.Use(apperrors.ErrorMiddleware(zap.NewNop()))
	authed := r.Group("/", middleware.RequireSession(sessions))
	authed.GET("/me", func(c *gin.Context) {
		id, _ := middleware.GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})
	authed.GET("/admin", middleware.AdminOnly(users), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRequireSession(t *testing.T) {
	r := setupRouter()

	tests := []struct {
		name   string
		setup  func(*http.Request)
		status int
		body   string
	}{
		{"no token", func(*http.Request) {}, http.StatusUnauthorized, `"message":"Unauthorized"`},
		{"cookie", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "customer-token"})
		}, http.StatusOK, `{"id":1}`},
		{"bearer", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer admin-token")
		}, http.StatusOK, `{"id":2}`},
		{"unknown token", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer nope")
		}, http.StatusUnauthorized, `"code":401`},
		{"backend failure", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer broken")
		}, http.StatusInternalServerError, `"message":"Internal server error"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestAdminOnly(t *testing.T) {
	r := setupRouter()

	for token, status := range map[string]int{
		"customer-token": http.StatusForbidden,
		"ghost-token":    http.StatusForbidden,
		"admin-token":    http.StatusNoContent,
	} {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, status, w.Code, token)
		if status == http.StatusForbidden {
			assert.Contains(t, w.Body.String(), "Forbidden - Admin access required")
		}
	}
}
