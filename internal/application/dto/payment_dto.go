package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePaymentRequest body para POST /api/v1/orders/:id/payments. El tipo de
// pago no se acepta del cliente: lo selecciona el servicio contra el CRM.
type CreatePaymentRequest struct {
	Amount  decimal.Decimal `json:"amount"`
	Comment string          `json:"comment,omitempty"`
}

// PaymentResponse pago en respuestas.
type PaymentResponse struct {
	ID      int             `json:"id"`
	OrderID int             `json:"order_id"`
	Amount  decimal.Decimal `json:"amount"`
	Type    string          `json:"type"`
	Comment string          `json:"comment,omitempty"`
	PaidAt  time.Time       `json:"paid_at"`
}
