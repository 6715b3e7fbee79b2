package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retailcrm-bff/internal/application/dto"
	"github.com/jhoicas/retailcrm-bff/internal/application/usecase"
)

// OrderHandler maneja las peticiones HTTP de órdenes y sus pagos.
type OrderHandler struct {
	orders   *usecase.OrderUseCase
	payments *usecase.PaymentUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(orders *usecase.OrderUseCase, payments *usecase.PaymentUseCase) *OrderHandler {
	return &OrderHandler{orders: orders, payments: payments}
}

// ListByClient GET /api/v1/orders/client/:id?page=&limit=
func (h *OrderHandler) ListByClient(c *fiber.Ctx) error {
	clientID, err := c.ParamsInt("id")
	if err != nil || clientID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAM", Message: "id de cliente inválido"})
	}
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	list, err := h.orders.ListByCustomer(c.UserContext(), clientID, page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Create POST /api/v1/orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.orders.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// CreatePayment POST /api/v1/orders/:id/payments
func (h *OrderHandler) CreatePayment(c *fiber.Ctx) error {
	orderID, err := c.ParamsInt("id")
	if err != nil || orderID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAM", Message: "id de orden inválido"})
	}
	var in dto.CreatePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	payment, err := h.payments.Create(c.UserContext(), orderID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}
