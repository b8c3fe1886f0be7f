package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/burgerqueen/pos-api/internal/api/metrics"
	"github.com/burgerqueen/pos-api/internal/core/ports"
)

const (
	headerIdempotencyKey = "Idempotency-Key"
	headerReplayed       = "Idempotent-Replayed"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// List handles GET /orders.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Page size (default 10, max 100)"
// @Success      200    {array}   orderResponse
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Router       /orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	page, err := pageFromQuery(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), claims, page)
	if err != nil {
		return err
	}

	writePageHeaders(c, page, result.LastPage, result.Total)
	return c.JSON(http.StatusOK, toOrderResponses(result.Items))
}

// Get handles GET /orders/:orderId.
//
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        orderId  path      string  true  "Order id"
// @Success      200      {object}  orderResponse
// @Failure      401      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /orders/{orderId} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	order, err := h.service.Get(c.Request().Context(), claims, c.Param("orderId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(order))
}

// Create handles POST /orders. A repeated Idempotency-Key returns the order
// the first request produced with 200 instead of 201.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string              false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createOrderRequest  true   "Order details"
// @Success      201              {object}  orderResponse
// @Success      200              {object}  orderResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Router       /orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	var req createOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	key := c.Request().Header.Get(headerIdempotencyKey)
	result, err := h.service.Create(c.Request().Context(), claims, toNewOrder(req), key)
	if err != nil {
		return err
	}

	metrics.OrdersCreatedTotal.WithLabelValues(strconv.FormatBool(result.AlreadyExisted)).Inc()

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
		c.Response().Header().Set(headerReplayed, "true")
	}
	return c.JSON(status, toOrderResponse(result.Order))
}

// Update handles PATCH /orders/:orderId.
//
// @Summary      Update an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        orderId  path      string              true  "Order id"
// @Param        body     body      updateOrderRequest  true  "Fields to change"
// @Success      200      {object}  orderResponse
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /orders/{orderId} [patch]
func (h *OrderHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	var req updateOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.service.Update(c.Request().Context(), claims, c.Param("orderId"), toOrderPatch(req))
	if err != nil {
		return err
	}

	if req.Status != nil {
		metrics.OrderStatusChangesTotal.WithLabelValues(string(order.Status)).Inc()
	}
	return c.JSON(http.StatusOK, toOrderResponse(order))
}

// Delete handles DELETE /orders/:orderId.
//
// @Summary      Delete an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        orderId  path      string  true  "Order id"
// @Success      200      {object}  orderResponse
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /orders/{orderId} [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	order, err := h.service.Delete(c.Request().Context(), claims, c.Param("orderId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(order))
}
