package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "storefront/common/errors"
	"storefront/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext(body string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(http.MethodPost, "/", http.NoBody)
	} else {
		req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	}
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c
}

func TestParseID(t *testing.T) {
	tests := []struct {
		raw  string
		want uint
		ok   bool
	}{
		{"7", 7, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			c := testContext("")
			c.Params = gin.Params{{Key: "id", Value: tt.raw}}

			id, ok := parseID(c, "id")
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, id)
			if !tt.ok {
				require.Len(t, c.Errors, 1)
				assert.ErrorIs(t, c.Errors[0].Err, apperrors.ErrInvalidID)
			}
		})
	}
}

func TestBindOptionalJSON(t *testing.T) {
	RegisterValidation()

	t.Run("empty body", func(t *testing.T) {
		c := testContext("")
		var req models.PlaceOrderRequest
		assert.True(t, bindOptionalJSON(c, &req))
		assert.Empty(t, c.Errors)
	})

	t.Run("partial body", func(t *testing.T) {
		c := testContext(`{"shippingCity":"Austin"}`)
		var req models.PlaceOrderRequest
		assert.True(t, bindOptionalJSON(c, &req))
		assert.Equal(t, "Austin", req.ShippingCity)
	})

	t.Run("malformed body", func(t *testing.T) {
		c := testContext(`{"shippingCity":`)
		var req models.PlaceOrderRequest
		assert.False(t, bindOptionalJSON(c, &req))
		require.Len(t, c.Errors, 1)

		appErr := apperrors.From(c.Errors[0].Err)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
	})
}

func TestBindLenientJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		ok      bool
		wantNil bool
	}{
		{"valid", `{"quantity":3}`, true, false},
		{"empty body", "", true, true},
		{"wrong type", `{"quantity":"three"}`, true, true},
		{"malformed", `{"quantity":`, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testContext(tt.body)
			var req models.UpdateCartItemRequest

			assert.Equal(t, tt.ok, bindLenientJSON(c, &req))
			assert.Equal(t, tt.wantNil, req.Quantity == nil)
			if tt.ok {
				assert.Empty(t, c.Errors)
			} else {
				require.Len(t, c.Errors, 1)
				assert.Equal(t, "Invalid request body", apperrors.From(c.Errors[0].Err).Message)
			}
		})
	}
}

func TestBindJSON_ReportsFields(t *testing.T) {
	RegisterValidation()

	c := testContext(`{"rating":9}`)
	var req models.CreateReviewRequest
	assert.False(t, bindJSON(c, &req))
	require.Len(t, c.Errors, 1)

	appErr := apperrors.From(c.Errors[0].Err)
	require.NotEmpty(t, appErr.Fields)
	assert.Equal(t, "rating", appErr.Fields[0].Field)
}
