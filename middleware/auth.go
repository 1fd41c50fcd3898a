package middleware

import (
	"context"
	"errors"
	"strings"

	apperrors "storefront/common/errors"
	"storefront/models"
	"storefront/session"

	"github.com/gin-gonic/gin"
)

const UserContextKey = "userID"

// SessionResolver maps a session token to the user it belongs to.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (uint, error)
}

// UserLookup loads the account behind a session.
type UserLookup interface {
	Get(ctx context.Context, id uint) (*models.User, error)
}

// RequireSession rejects requests without a live session. The token is read
// from the session cookie first and from a Bearer Authorization header
// otherwise.
func RequireSession(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := Token(c)
		if token == "" {
			abort(c, apperrors.ErrUnauthorized)
			return
		}

		userID, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, session.ErrInvalidToken) || errors.Is(err, session.ErrRevoked) {
				abort(c, apperrors.ErrUnauthorized)
				return
			}
			abort(c, apperrors.Internal(err))
			return
		}

		c.Set(UserContextKey, userID)
		c.Next()
	}
}

// AdminOnly must run after RequireSession.
func AdminOnly(users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			abort(c, apperrors.ErrUnauthorized)
			return
		}

		user, err := users.Get(c.Request.Context(), userID)
		if err != nil {
			var appErr *apperrors.Error
			if errors.As(err, &appErr) && appErr.Code < 500 {
				abort(c, apperrors.ErrAdminRequired)
				return
			}
			abort(c, err)
			return
		}
		if !user.IsAdmin {
			abort(c, apperrors.ErrAdminRequired)
			return
		}
		c.Next()
	}
}

// Token returns the session token carried by the request, if any.
func Token(c *gin.Context) string {
	if v, err := c.Cookie(session.CookieName); err == nil && v != "" {
		return v
	}
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// GetUserID extracts the authenticated user ID from the Gin context.
func GetUserID(c *gin.Context) (uint, bool) {
	id, ok := c.Get(UserContextKey)
	if !ok {
		return 0, false
	}
	uid, ok := id.(uint)
	return uid, ok && uid != 0
}

func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
