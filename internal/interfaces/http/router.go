package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retailcrm-bff/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC *usecase.CustomerUseCase
	OrderUC    *usecase.OrderUseCase
	PaymentUC  *usecase.PaymentUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)

	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.PaymentUC)
	orders.Get("/client/:id", orderHandler.ListByClient)
	orders.Post("/", orderHandler.Create)
	orders.Post("/:id/payments", orderHandler.CreatePayment)
}
