package ports

import (
	"context"

	"github.com/stockroom/inventory-api/internal/core/domain"
)

// FileInput carries an uploaded file from the transport layer. A nil
// *FileInput means no file was supplied.
type FileInput struct {
	FileName    string
	ContentType string
	Data        []byte
}

// CreateProductInput carries all data needed to create a product.
type CreateProductInput struct {
	UserID      string
	Name        string
	SKU         string
	Category    string
	Quantity    int64
	Price       float64
	Description string
	Image       *FileInput
}

// UpdateProductInput carries a partial product update. Nil fields keep the
// stored value. SKU is not updatable and is intentionally absent. A nil
// Image keeps the existing image descriptor unchanged.
type UpdateProductInput struct {
	Name        *string
	Category    *string
	Quantity    *int64
	Price       *float64
	Description *string
	Image       *FileInput
}

// ProductService defines owner-scoped product operations. Every operation
// re-checks ownership against the supplied user id.
type ProductService interface {
	Create(ctx context.Context, in CreateProductInput) (*domain.Product, error)
	List(ctx context.Context, userID string) ([]*domain.Product, error)
	Get(ctx context.Context, userID, productID string) (*domain.Product, error)
	Update(ctx context.Context, userID, productID string, in UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, userID, productID string) error
}

// UploadService validates and stores an uploaded image.
type UploadService interface {
	// Process returns the stored image descriptor. Unsupported mime types
	// are silently rejected: both the descriptor and the error are nil and
	// the caller proceeds without an image.
	Process(ctx context.Context, file *FileInput) (*domain.ProductImage, error)
}
