package controllers

import (
	"net/http"
	"strconv"

	"shop-api/middleware"
	"shop-api/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AddToCartRequest is the body of POST /products/:slug/to_cart.
// Quantity defaults to 1 when omitted.
type AddToCartRequest struct {
	Quantity *int `json:"quantity"`
}

// UpdateQuantityRequest is the body of PUT /cart/:item_id.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CartController handles the cart endpoints. Every handler runs behind
// RequireAuth and operates on the caller's own cart only.
type CartController struct {
	cartService services.CartService
}

// NewCartController creates a new CartController.
func NewCartController(svc services.CartService) *CartController {
	return &CartController{cartService: svc}
}

func callerID(c *gin.Context) uuid.UUID {
	return c.MustGet(middleware.ContextUserID).(uuid.UUID)
}

// GetCart handles GET /cart
func (cc *CartController) GetCart(c *gin.Context) {
	state, svcErr := cc.cartService.GetCart(c.Request.Context(), callerID(c))
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(state))
}

// AddToCart handles POST /products/:slug/to_cart
func (cc *CartController) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	if svcErr := cc.cartService.AddToCart(c.Request.Context(), callerID(c), c.Param("slug"), quantity); svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	c.Status(http.StatusCreated)
}

// RemoveFromCart handles DELETE /products/:slug/to_cart
func (cc *CartController) RemoveFromCart(c *gin.Context) {
	if svcErr := cc.cartService.RemoveFromCart(c.Request.Context(), callerID(c), c.Param("slug")); svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateItem handles PUT /cart/:item_id
func (cc *CartController) UpdateItem(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"quantity": "Quantity is required."}})
		return
	}

	removed, svcErr := cc.cartService.UpdateQuantity(c.Request.Context(), callerID(c), uint(itemID), *req.Quantity)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	if removed {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quantity": *req.Quantity})
}

// RemoveItem handles DELETE /cart/:item_id
func (cc *CartController) RemoveItem(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}

	if svcErr := cc.cartService.RemoveItem(c.Request.Context(), callerID(c), uint(itemID)); svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearCart handles DELETE /cart/clear
func (cc *CartController) ClearCart(c *gin.Context) {
	if svcErr := cc.cartService.ClearCart(c.Request.Context(), callerID(c)); svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	c.Status(http.StatusNoContent)
}
