package http

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"spicemart-backend/internal/domain"
	"spicemart-backend/internal/media"
	"spicemart-backend/internal/service"
)

// Admin panels submit products as multipart forms with up to four image
// slots named image1..image4.
var imageFields = []string{"image1", "image2", "image3", "image4"}

type ProductHandler struct {
	catalog *service.Catalog
	media   media.Store
}

func NewProductHandler(catalog *service.Catalog, mediaStore media.Store) *ProductHandler {
	return &ProductHandler{catalog: catalog, media: mediaStore}
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.catalog.Products(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"products": products})
}

func (h *ProductHandler) Single(c *gin.Context) {
	var req struct {
		ProductID string `json:"productId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %s", domain.ErrInvalidInput, "malformed request body"))
		return
	}

	product, err := h.catalog.Product(c.Request.Context(), req.ProductID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"product": product})
}

func (h *ProductHandler) Add(c *gin.Context) {
	in, err := h.productForm(c)
	if err != nil {
		fail(c, err)
		return
	}

	product, err := h.catalog.AddProduct(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"message": "product saved successfully", "product": product})
}

func (h *ProductHandler) Update(c *gin.Context) {
	in, err := h.productForm(c)
	if err != nil {
		fail(c, err)
		return
	}

	product, err := h.catalog.UpdateProduct(c.Request.Context(), c.PostForm("id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"message": "product updated successfully", "updatedProduct": product})
}

func (h *ProductHandler) Remove(c *gin.Context) {
	var req struct {
		ID string `json:"id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %s", domain.ErrInvalidInput, "malformed request body"))
		return
	}

	if err := h.catalog.RemoveProduct(c.Request.Context(), req.ID); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"message": "product removed successfully"})
}

func (h *ProductHandler) productForm(c *gin.Context) (service.ProductInput, error) {
	in := service.ProductInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
	}

	var err error
	if in.OldPrice, err = formFloat(c, "oldprice"); err != nil {
		return in, err
	}
	if in.NewPrice, err = formFloat(c, "newprice"); err != nil {
		return in, err
	}
	if in.Discount, err = formFloat(c, "discount"); err != nil {
		return in, err
	}
	if in.Rating, err = formFloat(c, "rating"); err != nil {
		return in, err
	}

	for _, field := range imageFields {
		file, err := c.FormFile(field)
		if err != nil {
			continue
		}
		url, err := h.media.Save(file)
		if err != nil {
			return in, fmt.Errorf("store image: %w", err)
		}
		in.Images = append(in.Images, url)
	}
	return in, nil
}

func formFloat(c *gin.Context, field string) (float64, error) {
	raw := c.PostForm(field)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, field)
	}
	return v, nil
}
