package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/donaflor/panaderia-api/internal/domain/entity"
	"github.com/donaflor/panaderia-api/internal/domain/repository"
)

var _ repository.BatchMovementRepository = (*BatchMovementRepo)(nil)

// BatchMovementRepo log de movimientos sobre PostgreSQL (usable con pool o tx).
// Append-only: solo INSERT y SELECT.
type BatchMovementRepo struct {
	q Querier
}

// NewBatchMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchMovementRepository(q Querier) *BatchMovementRepo {
	return &BatchMovementRepo{q: q}
}

// Create persiste un movimiento de lote.
func (r *BatchMovementRepo) Create(ctx context.Context, movement *entity.BatchMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO batch_movements (id, batch_id, raw_material_id, type, quantity, reason,
			production_order_id, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	createdBy := (*string)(nil)
	if movement.CreatedBy != "" {
		createdBy = &movement.CreatedBy
	}
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.BatchID, movement.RawMaterialID, movement.Type,
		movement.Quantity, movement.Reason, movement.ProductionOrderID, movement.Notes,
		movement.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create batch movement: %w", err)
	}
	return nil
}

// ListByBatch movimientos de un lote, más recientes primero.
func (r *BatchMovementRepo) ListByBatch(ctx context.Context, batchID string, limit, offset int) ([]*entity.BatchMovement, error) {
	query := `
		SELECT id, batch_id, raw_material_id, type, quantity, reason, production_order_id, notes, created_at, created_by
		FROM batch_movements
		WHERE batch_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	return r.queryMovements(ctx, query, batchID, limit, offset)
}

// ListByProductionOrder movimientos generados por una orden de producción.
func (r *BatchMovementRepo) ListByProductionOrder(ctx context.Context, productionOrderID string) ([]*entity.BatchMovement, error) {
	query := `
		SELECT id, batch_id, raw_material_id, type, quantity, reason, production_order_id, notes, created_at, created_by
		FROM batch_movements
		WHERE production_order_id = $1
		ORDER BY created_at ASC`
	return r.queryMovements(ctx, query, productionOrderID)
}

func (r *BatchMovementRepo) queryMovements(ctx context.Context, query string, args ...any) ([]*entity.BatchMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list batch movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.BatchMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.BatchMovement, error) {
	var m entity.BatchMovement
	var notes, createdBy *string
	err := row.Scan(
		&m.ID, &m.BatchID, &m.RawMaterialID, &m.Type, &m.Quantity, &m.Reason,
		&m.ProductionOrderID, &notes, &m.CreatedAt, &createdBy,
	)
	if err != nil {
		return nil, err
	}
	if notes != nil {
		m.Notes = *notes
	}
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
	return &m, nil
}
