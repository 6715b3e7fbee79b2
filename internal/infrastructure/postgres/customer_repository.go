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

var _ repository.CustomerShadow = (*CustomerRepo)(nil)

// CustomerRepo espejo local de clientes (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Save inserta o actualiza la copia del cliente; el id lo asignó el CRM.
func (r *CustomerRepo) Save(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (id, first_name, last_name, email, phone, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			registered_at = EXCLUDED.registered_at`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.FirstName, nullIfEmpty(c.LastName), c.Email, nullIfEmpty(c.Phone), c.RegisteredAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("upsert customer: %w", err)
	}
	return nil
}

// GetByID obtiene la copia local de un cliente.
func (r *CustomerRepo) GetByID(ctx context.Context, id int) (*entity.Customer, error) {
	query := `
		SELECT id, first_name, COALESCE(last_name, ''), email, COALESCE(phone, ''), registered_at
		FROM customers WHERE id = $1`
	var c entity.Customer
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.RegisteredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// List lista copias locales con paginación.
func (r *CustomerRepo) List(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	query := `
		SELECT id, first_name, COALESCE(last_name, ''), email, COALESCE(phone, ''), registered_at
		FROM customers ORDER BY registered_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.RegisteredAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// nullIfEmpty mapea string vacío a NULL para columnas opcionales.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
