package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartLine is one (product, quantity) pair in a user's cart.
// Lines keep first-insertion order; a quantity of zero is never stored.
type CartLine struct {
	ProductID primitive.ObjectID `bson:"itemId" json:"itemId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// User carries either an email or a phone (at least one, each unique
// across users when present). Password holds the bcrypt hash, never the
// plaintext, and is excluded from JSON.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Password  string             `bson:"password" json:"-"`
	Cart      []CartLine         `bson:"cart" json:"cart"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
