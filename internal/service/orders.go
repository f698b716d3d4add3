package service

import (
	"context"
	"fmt"
	"time"

	"spicemart-backend/internal/domain"
	"spicemart-backend/internal/store"
)

const paymentMethodCOD = "COD"

// Orders owns order creation and the status lifecycle. Status moves go
// through the store's compare-and-set so two concurrent transitions from
// the same starting state cannot both succeed.
type Orders struct {
	orders   store.OrderStore
	products store.ProductStore
}

func NewOrders(orders store.OrderStore, products store.ProductStore) *Orders {
	return &Orders{orders: orders, products: products}
}

type OrderItemInput struct {
	ItemID   string
	Quantity int
	Price    float64
}

type PlaceOrderInput struct {
	Items         []OrderItemInput
	Amount        float64
	Address       domain.Address
	PaymentMethod string
}

// Place creates the order in status Placed. Cash-on-delivery orders
// start with payment unconfirmed, everything else confirmed. The cart is
// left untouched; clearing it is the client's call.
func (s *Orders) Place(ctx context.Context, userID string, in PlaceOrderInput) (*domain.Order, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", domain.ErrInvalidInput)
	}

	items := make([]domain.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		pid, err := parseItemID(it.ItemID)
		if err != nil {
			return nil, err
		}
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%w: item quantity must be at least 1", domain.ErrInvalidInput)
		}
		if it.Price < 0 {
			return nil, fmt.Errorf("%w: item price must not be negative", domain.ErrInvalidInput)
		}
		items = append(items, domain.OrderItem{ProductID: pid, Quantity: it.Quantity, Price: it.Price})
	}

	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than zero", domain.ErrInvalidInput)
	}
	if err := validateAddress(in.Address); err != nil {
		return nil, err
	}
	if in.PaymentMethod == "" {
		return nil, fmt.Errorf("%w: payment method is required", domain.ErrInvalidInput)
	}

	order := &domain.Order{
		UserID:           uid,
		Items:            items,
		Amount:           in.Amount,
		Address:          in.Address,
		PaymentMethod:    in.PaymentMethod,
		PaymentConfirmed: in.PaymentMethod != paymentMethodCOD,
		Status:           domain.StatusPlaced,
		CreatedAt:        time.Now(),
	}
	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// AdvanceStatus moves the order exactly one step forward in the fixed
// Placed → Shipped → Delivered sequence. Anything else, including
// Cancelled, is rejected.
func (s *Orders) AdvanceStatus(ctx context.Context, orderID, status string) (*domain.Order, error) {
	oid, err := parseItemID(orderID)
	if err != nil {
		return nil, err
	}
	requested, ok := domain.ParseOrderStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}

	order, err := s.orders.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	next, ok := order.Status.Next()
	if !ok || next != requested {
		return nil, fmt.Errorf("%w: cannot move from %s to %s", domain.ErrInvalidTransition, order.Status, requested)
	}

	swapped, err := s.orders.CompareAndSetStatus(ctx, oid, order.Status, requested)
	if err != nil {
		return nil, err
	}
	if !swapped {
		// A concurrent transition got there first.
		return nil, fmt.Errorf("%w: cannot move from %s to %s", domain.ErrInvalidTransition, order.Status, requested)
	}
	order.Status = requested
	return order, nil
}

// Cancel sets the order to Cancelled. Only a Placed order can be
// cancelled; cancellation never deletes anything.
func (s *Orders) Cancel(ctx context.Context, orderID string) error {
	oid, err := parseItemID(orderID)
	if err != nil {
		return err
	}
	order, err := s.orders.FindByID(ctx, oid)
	if err != nil {
		return err
	}
	if order.Status != domain.StatusPlaced {
		return fmt.Errorf("%w: only a placed order can be cancelled", domain.ErrInvalidTransition)
	}

	swapped, err := s.orders.CompareAndSetStatus(ctx, oid, domain.StatusPlaced, domain.StatusCancelled)
	if err != nil {
		return err
	}
	if !swapped {
		return fmt.Errorf("%w: only a placed order can be cancelled", domain.ErrInvalidTransition)
	}
	return nil
}

// UserOrders returns the user's orders newest first; no orders is an
// empty list, not an error.
func (s *Orders) UserOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	return s.orders.ListByUser(ctx, uid)
}

// ResolvedOrderItem is an order line joined with its current product
// record; Product is nil when the product has since been removed.
type ResolvedOrderItem struct {
	domain.OrderItem
	Product *domain.Product `json:"product,omitempty"`
}

type AdminOrder struct {
	domain.Order
	Items []ResolvedOrderItem `json:"items"`
}

// AllOrders lists every order with product details resolved per line.
func (s *Orders) AllOrders(ctx context.Context) ([]AdminOrder, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Product, len(products))
	for i := range products {
		byID[products[i].ID.Hex()] = &products[i]
	}

	out := make([]AdminOrder, 0, len(orders))
	for _, o := range orders {
		resolved := make([]ResolvedOrderItem, 0, len(o.Items))
		for _, it := range o.Items {
			resolved = append(resolved, ResolvedOrderItem{
				OrderItem: it,
				Product:   byID[it.ProductID.Hex()],
			})
		}
		out = append(out, AdminOrder{Order: o, Items: resolved})
	}
	return out, nil
}

func validateAddress(a domain.Address) error {
	if a.FullName == "" || a.PhoneNumber == "" || a.Pincode == "" || a.City == "" || a.State == "" {
		return fmt.Errorf("%w: address fields missing", domain.ErrInvalidInput)
	}
	return nil
}
