package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"sync"

	apperrors "storefront/common/errors"
	"storefront/middleware"
	"storefront/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidation teaches gin's validator about JSON field names and
// decimal money fields. Safe to call more than once.
func RegisterValidation() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			models.RegisterValidation(v)
		}
	})
}

// bindJSON decodes and validates the body, recording a 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		_ = c.Error(apperrors.FromBinding(err))
		return false
	}
	return true
}

// bindOptionalJSON is bindJSON for endpoints whose body may be empty; the
// service validates what was sent.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	_ = c.Error(apperrors.FromBinding(err))
	return false
}

// bindLenientJSON is bindOptionalJSON that also tolerates values of the wrong
// JSON type. Such fields stay at their zero value for the service to reject
// with its own message.
func bindLenientJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	var typeErr *json.UnmarshalTypeError
	if err == nil || errors.Is(err, io.EOF) || errors.As(err, &typeErr) {
		return true
	}
	_ = c.Error(apperrors.FromBinding(err))
	return false
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		_ = c.Error(apperrors.ErrInvalidID)
		return 0, false
	}
	return uint(id), true
}

// currentUser returns the session's user ID. Routes using it sit behind
// middleware.RequireSession, so a miss is a wiring bug reported as 401.
func currentUser(c *gin.Context) (uint, bool) {
	id, ok := middleware.GetUserID(c)
	if !ok {
		_ = c.Error(apperrors.ErrUnauthorized)
	}
	return id, ok
}

func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
}
