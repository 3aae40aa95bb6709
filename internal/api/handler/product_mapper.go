package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/stockroom/inventory-api/internal/core/domain"
	"github.com/stockroom/inventory-api/internal/core/ports"
)

// formValue reports field presence separately from its value so a literal
// "0" for quantity or price is not mistaken for an absent field.
func formValue(form *multipart.Form, key string) (string, bool) {
	vals, ok := form.Value[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

func parseQuantity(raw string) (int64, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: quantity must be a non-negative integer", domain.ErrValidation)
	}
	return n, nil
}

func parsePrice(raw string) (float64, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 {
		return 0, fmt.Errorf("%w: price must be a non-negative number", domain.ErrValidation)
	}
	return f, nil
}

// formFile reads the optional single "image" part into a FileInput. No part
// means no image; a nil *FileInput is returned without error.
func formFile(form *multipart.Form) (*ports.FileInput, error) {
	files, ok := form.File["image"]
	if !ok || len(files) == 0 {
		return nil, nil
	}

	fh := files[0]
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: could not read uploaded file", domain.ErrValidation)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read uploaded file", domain.ErrValidation)
	}

	return &ports.FileInput{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
