package http

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"spicemart-backend/internal/domain"
	"spicemart-backend/internal/service"
)

type OrderHandler struct {
	orders *service.Orders
}

func NewOrderHandler(orders *service.Orders) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) Place(c *gin.Context) {
	var req struct {
		Items []struct {
			ItemID   string  `json:"itemId"`
			Quantity int     `json:"quantity"`
			Price    float64 `json:"price"`
		} `json:"items"`
		Amount        float64        `json:"amount"`
		Address       domain.Address `json:"address"`
		PaymentMethod string         `json:"paymentMethod"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %s", domain.ErrInvalidInput, "malformed request body"))
		return
	}

	in := service.PlaceOrderInput{
		Amount:        req.Amount,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, service.OrderItemInput{ItemID: it.ItemID, Quantity: it.Quantity, Price: it.Price})
	}

	if _, err := h.orders.Place(c.Request.Context(), c.GetString(userIDKey), in); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"message": "order placed successfully"})
}

func (h *OrderHandler) UserOrders(c *gin.Context) {
	orders, err := h.orders.UserOrders(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"orders": orders})
}

func (h *OrderHandler) ListAll(c *gin.Context) {
	orders, err := h.orders.AllOrders(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"orders": orders})
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %s", domain.ErrInvalidInput, "malformed request body"))
		return
	}

	order, err := h.orders.AdvanceStatus(c.Request.Context(), req.ID, req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"updatedOrder": order})
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	var req struct {
		ID string `json:"id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %s", domain.ErrInvalidInput, "malformed request body"))
		return
	}

	if err := h.orders.Cancel(c.Request.Context(), req.ID); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"message": "order cancelled"})
}
