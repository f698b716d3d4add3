package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"spicemart-backend/internal/cache"
	"spicemart-backend/internal/domain"
	"spicemart-backend/internal/store"
)

// Catalog manages products. Listing goes through an optional cache that
// is invalidated on every admin mutation.
type Catalog struct {
	products store.ProductStore
	cache    cache.ProductCache
}

// NewCatalog accepts a nil cache, which disables caching.
func NewCatalog(products store.ProductStore, productCache cache.ProductCache) *Catalog {
	return &Catalog{products: products, cache: productCache}
}

// ProductInput carries product fields for create and update. On update,
// zero values leave the stored field untouched.
type ProductInput struct {
	Name        string
	Description string
	Category    string
	OldPrice    float64
	NewPrice    float64
	Discount    float64
	Rating      float64
	Images      []string
}

func (s *Catalog) AddProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if in.Name == "" || in.Description == "" || in.Category == "" {
		return nil, fmt.Errorf("%w: name, description and category are required", domain.ErrInvalidInput)
	}
	if err := validatePricing(in.OldPrice, in.NewPrice, in.Discount, in.Rating); err != nil {
		return nil, err
	}

	p := &domain.Product{
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		OldPrice:    in.OldPrice,
		NewPrice:    in.NewPrice,
		Discount:    in.Discount,
		Rating:      in.Rating,
		Images:      in.Images,
		CreatedAt:   time.Now(),
	}
	if p.Images == nil {
		p.Images = []string{}
	}

	if err := s.products.Insert(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *Catalog) UpdateProduct(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	pid, err := parseItemID(id)
	if err != nil {
		return nil, err
	}
	p, err := s.products.FindByID(ctx, pid)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	if in.Category != "" {
		p.Category = in.Category
	}
	if in.OldPrice != 0 {
		p.OldPrice = in.OldPrice
	}
	if in.NewPrice != 0 {
		p.NewPrice = in.NewPrice
	}
	if in.Discount != 0 {
		p.Discount = in.Discount
	}
	if in.Rating != 0 {
		p.Rating = in.Rating
	}
	if len(in.Images) > 0 {
		p.Images = in.Images
	}

	if err := validatePricing(p.OldPrice, p.NewPrice, p.Discount, p.Rating); err != nil {
		return nil, err
	}
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *Catalog) Products(ctx context.Context) ([]domain.Product, error) {
	if s.cache != nil {
		products, err := s.cache.Get(ctx)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			slog.Warn("product cache read failed", "error", err)
		}
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, products); err != nil {
			slog.Warn("product cache write failed", "error", err)
		}
	}
	return products, nil
}

func (s *Catalog) Product(ctx context.Context, id string) (*domain.Product, error) {
	pid, err := parseItemID(id)
	if err != nil {
		return nil, err
	}
	return s.products.FindByID(ctx, pid)
}

func (s *Catalog) RemoveProduct(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: product id is required", domain.ErrInvalidInput)
	}
	pid, err := parseItemID(id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, pid); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func validatePricing(oldPrice, newPrice, discount, rating float64) error {
	if oldPrice <= 0 || newPrice <= 0 {
		return fmt.Errorf("%w: prices must be greater than zero", domain.ErrInvalidInput)
	}
	if oldPrice < newPrice {
		return fmt.Errorf("%w: old price must not be lower than new price", domain.ErrInvalidInput)
	}
	if discount < 0 || discount > 100 {
		return fmt.Errorf("%w: discount must be between 0 and 100", domain.ErrInvalidInput)
	}
	if rating < 0 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 0 and 5", domain.ErrInvalidInput)
	}
	return nil
}

func (s *Catalog) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx); err != nil {
		slog.Warn("product cache invalidation failed", "error", err)
	}
}
