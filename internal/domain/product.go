package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	OldPrice    float64            `bson:"oldprice" json:"oldprice"`
	NewPrice    float64            `bson:"newprice" json:"newprice"`
	Discount    float64            `bson:"discount" json:"discount"`
	Images      []string           `bson:"image" json:"image"`
	Category    string             `bson:"category" json:"category"`
	Rating      float64            `bson:"rating" json:"rating"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
