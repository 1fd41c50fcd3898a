package controllers

import (
	"net/http"

	"storefront/models"
	"storefront/services"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{cart: cart}
}

// List handles GET /api/cart
func (cc *CartController) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	lines, err := cc.cart.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lines)
}

// Add handles POST /api/cart
func (cc *CartController) Add(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.AddToCartRequest
	if !bindJSON(c, &req) {
		return
	}
	line, err := cc.cart.Add(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, line)
}

// Update handles PUT /api/cart/:id
func (cc *CartController) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	// A missing or non-numeric quantity stays nil and the service reports
	// it as an invalid quantity.
	var req models.UpdateCartItemRequest
	if !bindLenientJSON(c, &req) {
		return
	}

	line, err := cc.cart.UpdateQuantity(c.Request.Context(), userID, id, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, line)
}

// Remove handles DELETE /api/cart/:id
func (cc *CartController) Remove(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := cc.cart.Remove(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Clear handles DELETE /api/cart
func (cc *CartController) Clear(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := cc.cart.Clear(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
