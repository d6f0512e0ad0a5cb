package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/donaflor/panaderia-api/internal/domain"
	"github.com/donaflor/panaderia-api/internal/domain/entity"
	"github.com/donaflor/panaderia-api/internal/domain/repository"
)

var _ repository.ProductionOrderRepository = (*ProductionOrderRepo)(nil)

// ProductionOrderRepo órdenes de producción sobre PostgreSQL (usable con pool o tx).
type ProductionOrderRepo struct {
	q Querier
}

// NewProductionOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionOrderRepository(q Querier) *ProductionOrderRepo {
	return &ProductionOrderRepo{q: q}
}

const orderColumns = `id, company_id, product_id, recipe_id, code, planned_quantity,
		produced_quantity, status, scheduled_for, finalized_at, created_at, updated_at`

// GetByID obtiene una orden por ID; nil si no existe.
func (r *ProductionOrderRepo) GetByID(ctx context.Context, id string) (*entity.ProductionOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM production_orders WHERE id = $1`
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production order: %w", err)
	}
	return o, nil
}

// Finalize marca la orden como finalizada. La guarda sobre status evita
// finalizar dos veces la misma orden en una carrera.
func (r *ProductionOrderRepo) Finalize(ctx context.Context, id string, producedQuantity decimal.Decimal, finalizedAt time.Time) error {
	query := `
		UPDATE production_orders
		SET status = $2, produced_quantity = $3, finalized_at = $4, updated_at = now()
		WHERE id = $1 AND status IN ($5, $6)`
	tag, err := r.q.Exec(ctx, query, id, entity.OrderStatusFinalized, producedQuantity, finalizedAt,
		entity.OrderStatusPending, entity.OrderStatusInProgress)
	if err != nil {
		return fmt.Errorf("finalize production order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotOpen
	}
	return nil
}

// ListByCompany órdenes de una empresa, opcionalmente filtradas por estado.
func (r *ProductionOrderRepo) ListByCompany(ctx context.Context, companyID, status string, limit, offset int) ([]*entity.ProductionOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM production_orders WHERE company_id = $1`
	args := []any{companyID}
	pos := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list production orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan production order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.ProductionOrder, error) {
	var o entity.ProductionOrder
	err := row.Scan(
		&o.ID, &o.CompanyID, &o.ProductID, &o.RecipeID, &o.Code, &o.PlannedQuantity,
		&o.ProducedQuantity, &o.Status, &o.ScheduledFor, &o.FinalizedAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
