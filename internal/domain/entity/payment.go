package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment proyección local de un pago del CRM, siempre ligado a una orden.
type Payment struct {
	ID      int
	OrderID int
	Amount  decimal.Decimal
	Type    string // código de tipo de pago del CRM, no lo elige el usuario
	Comment string
	PaidAt  time.Time
}
