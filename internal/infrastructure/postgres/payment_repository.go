package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/retailcrm-bff/internal/domain"
	"github.com/jhoicas/retailcrm-bff/internal/domain/entity"
	"github.com/jhoicas/retailcrm-bff/internal/domain/repository"
)

var _ repository.PaymentShadow = (*PaymentRepo)(nil)

// PaymentRepo espejo local de pagos.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador.
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Save inserta o actualiza la copia del pago.
func (r *PaymentRepo) Save(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO payments (id, order_id, amount, type, comment, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			order_id = EXCLUDED.order_id,
			amount = EXCLUDED.amount,
			type = EXCLUDED.type,
			comment = EXCLUDED.comment,
			paid_at = EXCLUDED.paid_at`
	_, err := r.q.Exec(ctx, query, p.ID, p.OrderID, p.Amount, p.Type, nullIfEmpty(p.Comment), p.PaidAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("upsert payment: %w", err)
	}
	return nil
}

// ListByOrder lista copias locales de pagos de una orden.
func (r *PaymentRepo) ListByOrder(ctx context.Context, orderID int) ([]*entity.Payment, error) {
	query := `
		SELECT id, order_id, amount, type, COALESCE(comment, ''), paid_at
		FROM payments WHERE order_id = $1 ORDER BY paid_at`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.OrderID, &p.Amount, &p.Type, &p.Comment, &p.PaidAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
