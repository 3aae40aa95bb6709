package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/stockroom/inventory-api/internal/core/domain"
	"github.com/stockroom/inventory-api/internal/core/ports"
)

// MaxUploadSize is the largest accepted image payload.
const MaxUploadSize = 5 * 1024 * 1024

var allowedImageTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpg":  {},
	"image/jpeg": {},
}

// UploadService validates image uploads and forwards them to the object
// store.
type UploadService struct {
	store  ports.FileStore
	logger zerolog.Logger
}

func NewUploadService(store ports.FileStore, logger zerolog.Logger) *UploadService {
	return &UploadService{store: store, logger: logger}
}

// Process stores the file and returns its descriptor. Files with an
// unsupported mime type are dropped without error: the request proceeds
// with no image attached. Oversized files and store failures are terminal.
func (s *UploadService) Process(ctx context.Context, file *ports.FileInput) (*domain.ProductImage, error) {
	if file == nil {
		return nil, nil
	}
	if _, ok := allowedImageTypes[file.ContentType]; !ok {
		s.logger.Debug().Str("content_type", file.ContentType).Msg("unsupported image type dropped")
		return nil, nil
	}
	if len(file.Data) > MaxUploadSize {
		return nil, fmt.Errorf("%w: limit is %s", domain.ErrFileTooLarge, FormatFileSize(MaxUploadSize))
	}

	url, err := s.store.Put(ctx, storageKey(), file.ContentType, file.Data)
	if err != nil {
		s.logger.Error().Err(err).Str("file_name", file.FileName).Msg("object store put failed")
		return nil, fmt.Errorf("%w: %s", domain.ErrUploadFailed, err)
	}

	return &domain.ProductImage{
		FileName: file.FileName,
		FilePath: url,
		FileType: file.ContentType,
		FileSize: FormatFileSize(int64(len(file.Data))),
	}, nil
}

// storageKey returns a random hex object key.
func storageKey() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB", "TB", "PB", "EB", "YB", "ZB"}

// FormatFileSize renders a byte count as a human-readable base-1000 string
// rounded to two decimals with trailing zeros trimmed, e.g. 1000 -> "1 KB",
// 1536000 -> "1.54 MB". Zero maps to the literal "0 bytes".
func FormatFileSize(bytes int64) string {
	if bytes == 0 {
		return "0 bytes"
	}
	idx := int(math.Floor(math.Log(float64(bytes)) / math.Log(1000)))
	if idx >= len(sizeUnits) {
		idx = len(sizeUnits) - 1
	}
	value := float64(bytes) / math.Pow(1000, float64(idx))
	rounded := math.Round(value*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + sizeUnits[idx]
}
