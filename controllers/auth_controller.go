package controllers

import (
	"net/http"

	"storefront/middleware"
	"storefront/models"
	"storefront/services"
	"storefront/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthController struct {
	auth         *services.AuthService
	users        *services.UserService
	sessions     *session.Manager
	secureCookie bool
	logger       *zap.Logger
}

func NewAuthController(auth *services.AuthService, users *services.UserService, sessions *session.Manager, secureCookie bool, logger *zap.Logger) *AuthController {
	return &AuthController{auth: auth, users: users, sessions: sessions, secureCookie: secureCookie, logger: logger}
}

// Register handles POST /api/auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := ac.auth.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ac.startSession(c, user.ID) {
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Login handles POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	user, err := ac.auth.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ac.startSession(c, user.ID) {
		return
	}
	c.JSON(http.StatusOK, user)
}

// Logout handles POST /api/auth/logout
func (ac *AuthController) Logout(c *gin.Context) {
	if err := ac.sessions.Revoke(c.Request.Context(), middleware.Token(c)); err != nil {
		ac.logger.Warn("session revoke failed", zap.Error(err))
	}
	ac.setCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Me handles GET /api/auth/me
func (ac *AuthController) Me(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	user, err := ac.users.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ac *AuthController) startSession(c *gin.Context, userID uint) bool {
	token, err := ac.sessions.Issue(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return false
	}
	ac.setCookie(c, token, int(ac.sessions.TTL().Seconds()))
	return true
}

func (ac *AuthController) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, value, maxAge, "/", "", ac.secureCookie, true)
}
