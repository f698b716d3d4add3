package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the order lifecycle: Placed → Shipped → Delivered, with
// Cancelled as a side branch reachable only from Placed.
type OrderStatus string

const (
	StatusPlaced    OrderStatus = "Placed"
	StatusShipped   OrderStatus = "Shipped"
	StatusDelivered OrderStatus = "Delivered"
	StatusCancelled OrderStatus = "Cancelled"
)

// Next returns the sole forward step from s. Terminal states have none.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case StatusPlaced:
		return StatusShipped, true
	case StatusShipped:
		return StatusDelivered, true
	}
	return "", false
}

func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

func ParseOrderStatus(v string) (OrderStatus, bool) {
	switch OrderStatus(v) {
	case StatusPlaced, StatusShipped, StatusDelivered, StatusCancelled:
		return OrderStatus(v), true
	}
	return "", false
}

// Address requires FullName, PhoneNumber, Pincode, City and State;
// Apartment and Locality are optional.
type Address struct {
	FullName    string `bson:"fullName" json:"fullName"`
	PhoneNumber string `bson:"phoneNumber" json:"phoneNumber"`
	Pincode     string `bson:"pincode" json:"pincode"`
	City        string `bson:"city" json:"city"`
	State       string `bson:"state" json:"state"`
	Apartment   string `bson:"apartment,omitempty" json:"apartment,omitempty"`
	Locality    string `bson:"locality,omitempty" json:"locality,omitempty"`
}

// OrderItem snapshots a cart line with the price at time of purchase.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"itemId" json:"itemId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
}

// Order items and amount are immutable after creation; only the status
// moves, and only through the lifecycle above. Orders are never deleted.
type Order struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           primitive.ObjectID `bson:"userId" json:"userId"`
	Items            []OrderItem        `bson:"items" json:"items"`
	Amount           float64            `bson:"amount" json:"amount"`
	Address          Address            `bson:"address" json:"address"`
	PaymentMethod    string             `bson:"paymentMethod" json:"paymentMethod"`
	PaymentConfirmed bool               `bson:"payment" json:"payment"`
	Status           OrderStatus        `bson:"status" json:"status"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}
