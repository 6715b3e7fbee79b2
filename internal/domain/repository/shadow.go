package repository

import (
	"context"

	"github.com/jhoicas/retailcrm-bff/internal/domain/entity"
)

// Puertos del esquema espejo local. El CRM es la autoridad: el espejo guarda
// copias de lo creado para consultas internas y nunca participa en el camino
// de lectura del API.

// CustomerShadow persistencia espejo de clientes.
type CustomerShadow interface {
	Save(ctx context.Context, c *entity.Customer) error
	GetByID(ctx context.Context, id int) (*entity.Customer, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Customer, error)
}

// OrderShadow persistencia espejo de órdenes.
type OrderShadow interface {
	Save(ctx context.Context, o *entity.Order) error
	GetByID(ctx context.Context, id int) (*entity.Order, error)
	ListByCustomer(ctx context.Context, customerID int, limit, offset int) ([]*entity.Order, error)
}

// PaymentShadow persistencia espejo de pagos.
type PaymentShadow interface {
	Save(ctx context.Context, p *entity.Payment) error
	ListByOrder(ctx context.Context, orderID int) ([]*entity.Payment, error)
}
