package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/stockroom/inventory-api/internal/core/domain"
	"github.com/stockroom/inventory-api/internal/core/ports"
)

// ProductService implements owner-scoped CRUD over inventory records.
type ProductService struct {
	repo     ports.ProductRepository
	uploader ports.UploadService
	logger   zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, uploader ports.UploadService, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, uploader: uploader, logger: logger}
}

// Create persists a new product. When an image is supplied it is uploaded
// first; an upload failure aborts the whole operation so no partial product
// is ever persisted.
func (s *ProductService) Create(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	if in.Name == "" || in.Category == "" || in.Description == "" {
		return nil, fmt.Errorf("%w: please fill in all required fields", domain.ErrValidation)
	}

	image, err := s.uploader.Process(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product, err := s.repo.Create(ctx, &domain.Product{
		UserID:      in.UserID,
		Name:        in.Name,
		SKU:         in.SKU,
		Category:    in.Category,
		Quantity:    in.Quantity,
		Price:       in.Price,
		Description: in.Description,
		Image:       image,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", in.UserID).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().Str("product_id", product.ID).Str("user_id", in.UserID).Msg("product created")
	return product, nil
}

func (s *ProductService) List(ctx context.Context, userID string) ([]*domain.Product, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *ProductService) Get(ctx context.Context, userID, productID string) (*domain.Product, error) {
	return s.ownedProduct(ctx, userID, productID)
}

// Update applies the supplied fields to an owned product. A nil image input
// keeps the existing descriptor; a supplied one replaces it entirely.
func (s *ProductService) Update(ctx context.Context, userID, productID string, in ports.UpdateProductInput) (*domain.Product, error) {
	product, err := s.ownedProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	if in.Image != nil {
		image, err := s.uploader.Process(ctx, in.Image)
		if err != nil {
			return nil, err
		}
		if image != nil {
			product.Image = image
		}
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Quantity != nil {
		product.Quantity = *in.Quantity
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	product.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", product.ID).Str("user_id", userID).Msg("product updated")
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, userID, productID string) error {
	product, err := s.ownedProduct(ctx, userID, productID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, product.ID); err != nil {
		return err
	}

	s.logger.Info().Str("product_id", product.ID).Str("user_id", userID).Msg("product deleted")
	return nil
}

// ownedProduct loads a product and enforces the owner check. Existence is
// checked before ownership, so a foreign product id yields ErrNotOwner, not
// ErrProductNotFound.
func (s *ProductService) ownedProduct(ctx context.Context, userID, productID string) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.UserID != userID {
		return nil, domain.ErrNotOwner
	}
	return product, nil
}
