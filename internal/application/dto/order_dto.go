package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea en POST /api/v1/orders.
type OrderItemRequest struct {
	OfferID  int             `json:"offerId,omitempty"`
	Name     string          `json:"name,omitempty"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// CreateOrderRequest body para POST /api/v1/orders.
type CreateOrderRequest struct {
	CustomerID int                `json:"customerId"`
	Items      []OrderItemRequest `json:"items"`
}

// OrderItemResponse línea de orden en respuestas.
type OrderItemResponse struct {
	OfferID  int             `json:"offerId,omitempty"`
	Name     string          `json:"name,omitempty"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// OrderResponse orden en respuestas.
type OrderResponse struct {
	ID          int                 `json:"id"`
	OrderNumber string              `json:"orderNumber"`
	CreatedAt   time.Time           `json:"createdAt"`
	CustomerID  int                 `json:"customerId"`
	Items       []OrderItemResponse `json:"items"`
}
