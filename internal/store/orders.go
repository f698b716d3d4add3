package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"spicemart-backend/internal/domain"
)

type OrderStore interface {
	Insert(ctx context.Context, o *domain.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	// CompareAndSetStatus moves the order from one status to another only
	// if it still holds the expected current status, serializing
	// concurrent transitions on the same order.
	CompareAndSetStatus(ctx context.Context, id primitive.ObjectID, from, to domain.OrderStatus) (bool, error)
}

type mongoOrderStore struct {
	collection *mongo.Collection
}

func NewOrderStore(db *mongo.Database) OrderStore {
	return &mongoOrderStore{collection: db.Collection("orders")}
}

func (s *mongoOrderStore) Insert(ctx context.Context, o *domain.Order) error {
	res, err := s.collection.InsertOne(ctx, o)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	o.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *mongoOrderStore) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	var o domain.Order
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("find order: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return &o, nil
}

func (s *mongoOrderStore) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list user orders: %w", err)
	}
	orders := []domain.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("list user orders: %w", err)
	}
	return orders, nil
}

func (s *mongoOrderStore) ListAll(ctx context.Context) ([]domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	orders := []domain.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *mongoOrderStore) CompareAndSetStatus(ctx context.Context, id primitive.ObjectID, from, to domain.OrderStatus) (bool, error) {
	res, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to}})
	if err != nil {
		return false, fmt.Errorf("update order status: %w", err)
	}
	return res.MatchedCount == 1, nil
}
