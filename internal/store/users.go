package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"spicemart-backend/internal/domain"
)

// UserUpdate lists the mutable profile fields; empty means unchanged.
// Password must already be hashed by the caller.
type UserUpdate struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

type UserStore interface {
	Insert(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	Update(ctx context.Context, id primitive.ObjectID, upd UserUpdate) error
}

type mongoUserStore struct {
	collection *mongo.Collection
}

func NewUserStore(db *mongo.Database) UserStore {
	return &mongoUserStore{collection: db.Collection("users")}
}

func (s *mongoUserStore) Insert(ctx context.Context, u *domain.User) error {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.Cart == nil {
		u.Cart = []domain.CartLine{}
	}

	res, err := s.collection.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("insert user: %w", domain.ErrConflict)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *mongoUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *mongoUserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *mongoUserStore) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return s.findOne(ctx, bson.M{"phone": phone})
}

func (s *mongoUserStore) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var u domain.User
	err := s.collection.FindOne(ctx, filter).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("find user: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (s *mongoUserStore) Update(ctx context.Context, id primitive.ObjectID, upd UserUpdate) error {
	set := bson.M{"updatedAt": time.Now()}
	if upd.Name != "" {
		set["name"] = upd.Name
	}
	if upd.Email != "" {
		set["email"] = upd.Email
	}
	if upd.Phone != "" {
		set["phone"] = upd.Phone
	}
	if upd.Password != "" {
		set["password"] = upd.Password
	}

	res, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("update user: %w", domain.ErrConflict)
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update user: %w", domain.ErrNotFound)
	}
	return nil
}
