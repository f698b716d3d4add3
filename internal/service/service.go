// Package service holds the business rules between the HTTP handlers and
// the stores: identity and credentials, the cart engine, the catalog and
// the order lifecycle.
package service

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"spicemart-backend/internal/domain"
)

// parseUserID decodes the subject of an already-verified token. A subject
// that is not a valid object id means the token was not issued by us.
func parseUserID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: bad token subject", domain.ErrUnauthorized)
	}
	return oid, nil
}
