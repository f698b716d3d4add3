package http

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"spicemart-backend/internal/domain"
	"spicemart-backend/internal/service"
)

type CartHandler struct {
	cart *service.Cart
}

func NewCartHandler(cart *service.Cart) *CartHandler {
	return &CartHandler{cart: cart}
}

type cartItemRequest struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.cart.Cart(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"cart": cart})
}

func (h *CartHandler) Add(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %s", domain.ErrInvalidInput, "malformed request body"))
		return
	}

	cart, err := h.cart.AddItem(c.Request.Context(), c.GetString(userIDKey), req.ItemID, req.Quantity)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"message": "product added to cart", "cart": cart})
}

func (h *CartHandler) Update(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %s", domain.ErrInvalidInput, "malformed request body"))
		return
	}

	cart, err := h.cart.SetItem(c.Request.Context(), c.GetString(userIDKey), req.ItemID, req.Quantity)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"message": "cart updated", "cart": cart})
}

func (h *CartHandler) Clear(c *gin.Context) {
	cart, err := h.cart.Clear(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"message": "cart cleared", "cart": cart})
}
