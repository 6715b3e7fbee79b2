package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/retailcrm-bff/internal/domain"
	"github.com/jhoicas/retailcrm-bff/internal/domain/entity"
	"github.com/jhoicas/retailcrm-bff/internal/domain/repository"
)

var _ repository.OrderShadow = (*OrderRepo)(nil)

// OrderRepo espejo local de órdenes. Solo se copia la cabecera; las líneas
// viven en el CRM y se releen de allí.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Save inserta o actualiza la cabecera de la orden.
func (r *OrderRepo) Save(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (id, order_number, created_at, customer_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			order_number = EXCLUDED.order_number,
			created_at = EXCLUDED.created_at,
			customer_id = EXCLUDED.customer_id`
	_, err := r.q.Exec(ctx, query, o.ID, o.Number, o.CreatedAt, o.CustomerID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("upsert order: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera local de una orden.
func (r *OrderRepo) GetByID(ctx context.Context, id int) (*entity.Order, error) {
	query := `SELECT id, order_number, created_at, customer_id FROM orders WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(ctx, query, id).Scan(&o.ID, &o.Number, &o.CreatedAt, &o.CustomerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// ListByCustomer lista cabeceras locales de un cliente con paginación.
func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID int, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT id, order_number, created_at, customer_id
		FROM orders WHERE customer_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.Number, &o.CreatedAt, &o.CustomerID); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
