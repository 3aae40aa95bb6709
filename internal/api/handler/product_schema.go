package handler

import (
	"time"

	"github.com/stockroom/inventory-api/internal/core/domain"
)

// Response-only types owned by the transport layer. These are intentionally
// separate from domain types so the JSON contract is not coupled to
// internal service changes.

type productImageResponse struct {
	FileName string `json:"fileName"`
	FilePath string `json:"filePath"`
	FileType string `json:"fileType"`
	FileSize string `json:"fileSize"`
}

type productResponse struct {
	ID          string                `json:"_id"`
	UserID      string                `json:"user"`
	Name        string                `json:"name"`
	SKU         string                `json:"sku"`
	Category    string                `json:"category"`
	Quantity    int64                 `json:"quantity"`
	Price       float64               `json:"price"`
	Description string                `json:"description"`
	Image       *productImageResponse `json:"image,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

func toProductResponse(p *domain.Product) productResponse {
	resp := productResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		SKU:         p.SKU,
		Category:    p.Category,
		Quantity:    p.Quantity,
		Price:       p.Price,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Image != nil {
		resp.Image = &productImageResponse{
			FileName: p.Image.FileName,
			FilePath: p.Image.FilePath,
			FileType: p.Image.FileType,
			FileSize: p.Image.FileSize,
		}
	}
	return resp
}

func toProductListResponse(products []*domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}
