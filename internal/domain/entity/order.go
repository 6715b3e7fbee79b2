package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order proyección local de una orden del CRM. El número se genera localmente
// antes de enviarla; el ID lo asigna el CRM.
type Order struct {
	ID         int
	Number     string
	CreatedAt  time.Time
	CustomerID int
	Items      []OrderItem
}

// OrderItem línea de la orden.
type OrderItem struct {
	OfferID  int // referencia externa de producto; 0 si no aplica
	Name     string
	Quantity int
	Price    decimal.Decimal // precio unitario, no negativo
}
