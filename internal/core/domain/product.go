package domain

import "time"

// ProductImage describes a file stored in the object store. FileSize is the
// human-readable string shown to clients, not the raw byte count.
type ProductImage struct {
	FileName string `json:"fileName" bson:"file_name"`
	FilePath string `json:"filePath" bson:"file_path"`
	FileType string `json:"fileType" bson:"file_type"`
	FileSize string `json:"fileSize" bson:"file_size"`
}

// Product is an inventory record scoped to its owning user. Only the owner
// may read, update, or delete it.
type Product struct {
	ID          string        `json:"_id" bson:"_id,omitempty"`
	UserID      string        `json:"user" bson:"user_id"`
	Name        string        `json:"name" bson:"name"`
	SKU         string        `json:"sku" bson:"sku"`
	Category    string        `json:"category" bson:"category"`
	Quantity    int64         `json:"quantity" bson:"quantity"`
	Price       float64       `json:"price" bson:"price"`
	Description string        `json:"description" bson:"description"`
	Image       *ProductImage `json:"image,omitempty" bson:"image,omitempty"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" bson:"updated_at"`
}
