package cache

import (
	"context"
	"errors"

	"spicemart-backend/internal/domain"
)

// ProductCache holds the full product listing. Implementations may drop
// entries at any time; a miss is signalled with ErrCacheMiss.
type ProductCache interface {
	Get(ctx context.Context) ([]domain.Product, error)
	Set(ctx context.Context, products []domain.Product) error
	Delete(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")
