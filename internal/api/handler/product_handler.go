package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stockroom/inventory-api/internal/api/metrics"
	"github.com/stockroom/inventory-api/internal/core/domain"
	"github.com/stockroom/inventory-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for product operations. Create and
// Update consume multipart/form-data so an image can ride along with the
// product fields.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// Create creates a product owned by the authenticated user.
//
// @Summary      Create a product
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     CookieAuth
// @Param        name         formData  string  true   "Product name"
// @Param        sku          formData  string  false  "Stock keeping unit"
// @Param        category     formData  string  true   "Category"
// @Param        quantity     formData  string  true   "Quantity"
// @Param        price        formData  string  true   "Price"
// @Param        description  formData  string  true   "Description"
// @Param        image        formData  file    false  "Product image"
// @Success      201          {object}  productResponse
// @Failure      400          {object}  map[string]string
// @Failure      500          {object}  map[string]string
// @Router       /api/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "expected multipart form data")
	}

	in := ports.CreateProductInput{UserID: userID}
	in.Name, _ = formValue(form, "name")
	in.SKU, _ = formValue(form, "sku")
	in.Category, _ = formValue(form, "category")
	in.Description, _ = formValue(form, "description")

	rawQuantity, ok := formValue(form, "quantity")
	if !ok {
		return fmt.Errorf("%w: quantity is required", domain.ErrValidation)
	}
	if in.Quantity, err = parseQuantity(rawQuantity); err != nil {
		return err
	}

	rawPrice, ok := formValue(form, "price")
	if !ok {
		return fmt.Errorf("%w: price is required", domain.ErrValidation)
	}
	if in.Price, err = parsePrice(rawPrice); err != nil {
		return err
	}

	if in.Image, err = formFile(form); err != nil {
		return err
	}

	product, err := h.service.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}

	metrics.ProductsCreatedTotal.Inc()
	if product.Image != nil {
		metrics.ImageUploadsTotal.Inc()
	}
	return c.JSON(http.StatusCreated, toProductResponse(product))
}

// List returns the authenticated user's products, newest first.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Security     CookieAuth
// @Success      200  {array}  productResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	products, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProductListResponse(products))
}

// Get returns a single product if the caller owns it.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  productResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	product, err := h.service.Get(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProductResponse(product))
}

// Update applies a partial update to an owned product. Fields absent from
// the form keep their stored values; a supplied image replaces the stored
// descriptor entirely.
//
// @Summary      Update a product
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     CookieAuth
// @Param        id           path      string  true   "Product id"
// @Param        name         formData  string  false  "Product name"
// @Param        category     formData  string  false  "Category"
// @Param        quantity     formData  string  false  "Quantity"
// @Param        price        formData  string  false  "Price"
// @Param        description  formData  string  false  "Description"
// @Param        image        formData  file    false  "Replacement image"
// @Success      200          {object}  productResponse
// @Failure      401          {object}  map[string]string
// @Failure      404          {object}  map[string]string
// @Router       /api/products/{id} [patch]
func (h *ProductHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "expected multipart form data")
	}

	var in ports.UpdateProductInput
	if v, ok := formValue(form, "name"); ok {
		in.Name = &v
	}
	if v, ok := formValue(form, "category"); ok {
		in.Category = &v
	}
	if v, ok := formValue(form, "description"); ok {
		in.Description = &v
	}
	if raw, ok := formValue(form, "quantity"); ok {
		q, err := parseQuantity(raw)
		if err != nil {
			return err
		}
		in.Quantity = &q
	}
	if raw, ok := formValue(form, "price"); ok {
		p, err := parsePrice(raw)
		if err != nil {
			return err
		}
		in.Price = &p
	}
	if in.Image, err = formFile(form); err != nil {
		return err
	}

	product, err := h.service.Update(c.Request().Context(), userID, c.Param("id"), in)
	if err != nil {
		return err
	}

	if in.Image != nil && product.Image != nil {
		metrics.ImageUploadsTotal.Inc()
	}
	return c.JSON(http.StatusOK, toProductResponse(product))
}

// Delete removes an owned product.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}

	metrics.ProductsDeletedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "product deleted"})
}
