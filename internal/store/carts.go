package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"spicemart-backend/internal/domain"
)

// CartStore exposes atomic per-line primitives over the cart array on the
// user document, so callers never do read-modify-write of the whole cart.
// Every method returns domain.ErrNotFound when the user does not exist;
// SetItemQuantity and RemoveItem additionally return it when the line is
// missing.
type CartStore interface {
	GetCart(ctx context.Context, userID primitive.ObjectID) ([]domain.CartLine, error)
	AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) error
	SetItemQuantity(ctx context.Context, userID, productID primitive.ObjectID, quantity int) error
	RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) error
	ClearCart(ctx context.Context, userID primitive.ObjectID) error
}

type mongoCartStore struct {
	collection *mongo.Collection
}

func NewCartStore(db *mongo.Database) CartStore {
	return &mongoCartStore{collection: db.Collection("users")}
}

func (s *mongoCartStore) GetCart(ctx context.Context, userID primitive.ObjectID) ([]domain.CartLine, error) {
	var u domain.User
	opts := options.FindOne().SetProjection(bson.M{"cart": 1})
	err := s.collection.FindOne(ctx, bson.M{"_id": userID}, opts).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("get cart: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if u.Cart == nil {
		return []domain.CartLine{}, nil
	}
	return u.Cart, nil
}

// AddItem increments an existing line or appends a new one, atomically.
// The $ne guard on the push keeps a concurrent insert of the same product
// from producing two lines; if the push loses that race the increment is
// retried once.
func (s *mongoCartStore) AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) error {
	matched, err := s.incrementLine(ctx, userID, productID, quantity)
	if err != nil {
		return err
	}
	if matched {
		return nil
	}

	res, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": userID, "cart.itemId": bson.M{"$ne": productID}},
		bson.M{
			"$push": bson.M{"cart": domain.CartLine{ProductID: productID, Quantity: quantity}},
			"$set":  bson.M{"updatedAt": time.Now()},
		})
	if err != nil {
		return fmt.Errorf("add cart item: %w", err)
	}
	if res.MatchedCount == 1 {
		return nil
	}

	matched, err = s.incrementLine(ctx, userID, productID, quantity)
	if err != nil {
		return err
	}
	if !matched {
		return fmt.Errorf("add cart item: %w", domain.ErrNotFound)
	}
	return nil
}

func (s *mongoCartStore) incrementLine(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (bool, error) {
	res, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": userID, "cart.itemId": productID},
		bson.M{
			"$inc": bson.M{"cart.$.quantity": quantity},
			"$set": bson.M{"updatedAt": time.Now()},
		})
	if err != nil {
		return false, fmt.Errorf("add cart item: %w", err)
	}
	return res.MatchedCount == 1, nil
}

func (s *mongoCartStore) SetItemQuantity(ctx context.Context, userID, productID primitive.ObjectID, quantity int) error {
	res, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": userID, "cart.itemId": productID},
		bson.M{
			"$set": bson.M{"cart.$.quantity": quantity, "updatedAt": time.Now()},
		})
	if err != nil {
		return fmt.Errorf("set cart item: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("set cart item: %w", domain.ErrNotFound)
	}
	return nil
}

func (s *mongoCartStore) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) error {
	// The filter must name the line: the $set of updatedAt alone would
	// modify the document, so counts on a user-only filter cannot tell
	// whether $pull removed anything.
	res, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": userID, "cart.itemId": productID},
		bson.M{
			"$pull": bson.M{"cart": bson.M{"itemId": productID}},
			"$set":  bson.M{"updatedAt": time.Now()},
		})
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("remove cart item: %w", domain.ErrNotFound)
	}
	return nil
}

func (s *mongoCartStore) ClearCart(ctx context.Context, userID primitive.ObjectID) error {
	res, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"cart": []domain.CartLine{}, "updatedAt": time.Now()}})
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("clear cart: %w", domain.ErrNotFound)
	}
	return nil
}
