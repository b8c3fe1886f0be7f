package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/burgerqueen/pos-api/internal/api/metrics"
	"github.com/burgerqueen/pos-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /products.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Page size (default 10, max 100)"
// @Success      200    {array}   productResponse
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	page, err := pageFromQuery(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), page)
	if err != nil {
		return err
	}

	writePageHeaders(c, page, result.LastPage, result.Total)
	return c.JSON(http.StatusOK, toProductResponses(result.Items))
}

// Get handles GET /products/:productId.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        productId  path      string  true  "Product id"
// @Success      200        {object}  productResponse
// @Failure      401        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /products/{productId} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.service.Get(c.Request().Context(), c.Param("productId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(*product))
}

// Create handles POST /products.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product details"
// @Success      201   {object}  productResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	var req createProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.service.Create(c.Request().Context(), claims, toProduct(req))
	if err != nil {
		return err
	}

	metrics.ProductWritesTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, toProductResponse(*product))
}

// Update handles PATCH /products/:productId.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        productId  path      string                true  "Product id"
// @Param        body       body      updateProductRequest  true  "Fields to change"
// @Success      200        {object}  productResponse
// @Failure      400        {object}  errorResponse
// @Failure      401        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /products/{productId} [patch]
func (h *ProductHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	var req updateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.service.Update(c.Request().Context(), claims, c.Param("productId"), toProductPatch(req))
	if err != nil {
		return err
	}

	metrics.ProductWritesTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toProductResponse(*product))
}

// Delete handles DELETE /products/:productId.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        productId  path      string  true  "Product id"
// @Success      200        {object}  productResponse
// @Failure      401        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /products/{productId} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	product, err := h.service.Delete(c.Request().Context(), claims, c.Param("productId"))
	if err != nil {
		return err
	}

	metrics.ProductWritesTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, toProductResponse(*product))
}
