package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"spicemart-backend/internal/domain"
	"spicemart-backend/internal/store"
)

// Cart implements the cart engine on top of CartStore's atomic per-line
// primitives; it never reads a cart just to write it back.
type Cart struct {
	carts store.CartStore
}

func NewCart(carts store.CartStore) *Cart {
	return &Cart{carts: carts}
}

// AddItem merges quantity into an existing line for the product, or
// appends a new line at the end. Existing lines keep their position.
func (s *Cart) AddItem(ctx context.Context, userID, itemID string, quantity int) ([]domain.CartLine, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	pid, err := parseItemID(itemID)
	if err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", domain.ErrInvalidInput)
	}

	if err := s.carts.AddItem(ctx, uid, pid, quantity); err != nil {
		return nil, err
	}
	return s.carts.GetCart(ctx, uid)
}

// SetItem replaces the quantity of an existing line, removing it when
// the quantity is zero. A line that does not exist is an error.
func (s *Cart) SetItem(ctx context.Context, userID, itemID string, quantity int) ([]domain.CartLine, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	pid, err := parseItemID(itemID)
	if err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", domain.ErrInvalidInput)
	}

	if quantity == 0 {
		err = s.carts.RemoveItem(ctx, uid, pid)
	} else {
		err = s.carts.SetItemQuantity(ctx, uid, pid, quantity)
	}
	if err != nil {
		return nil, err
	}
	return s.carts.GetCart(ctx, uid)
}

func (s *Cart) Cart(ctx context.Context, userID string) ([]domain.CartLine, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	return s.carts.GetCart(ctx, uid)
}

// Clear empties the cart; repeating it is a no-op.
func (s *Cart) Clear(ctx context.Context, userID string) ([]domain.CartLine, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	if err := s.carts.ClearCart(ctx, uid); err != nil {
		return nil, err
	}
	return []domain.CartLine{}, nil
}

func parseItemID(itemID string) (primitive.ObjectID, error) {
	pid, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid item id", domain.ErrInvalidInput)
	}
	return pid, nil
}
