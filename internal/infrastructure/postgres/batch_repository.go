package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/donaflor/panaderia-api/internal/domain"
	"github.com/donaflor/panaderia-api/internal/domain/entity"
	"github.com/donaflor/panaderia-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación del ledger de lotes sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `id, raw_material_id, supplier_id, initial_quantity, remaining_quantity,
		unit_cost, received_at, expires_at, lot_number, invoice_number, created_at`

// Create persiste un lote nuevo.
func (r *BatchRepo) Create(ctx context.Context, batch *entity.Batch) error {
	if batch.ID == "" {
		batch.ID = uuid.New().String()
	}
	query := `
		INSERT INTO batches (id, raw_material_id, supplier_id, initial_quantity, remaining_quantity,
			unit_cost, received_at, expires_at, lot_number, invoice_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		batch.ID, batch.RawMaterialID, batch.SupplierID, batch.Initial, batch.Remaining,
		batch.UnitCost, batch.ReceivedAt, batch.ExpiresAt, batch.LotNumber, batch.InvoiceNumber,
		batch.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID; nil si no existe.
func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1`
	b, err := scanBatch(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return b, nil
}

// ListAvailable lotes consumibles de un insumo en orden FIFO
// (recepción ascendente, empates por id).
func (r *BatchRepo) ListAvailable(ctx context.Context, rawMaterialID string) ([]*entity.Batch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM batches
		WHERE raw_material_id = $1 AND remaining_quantity > 0
		ORDER BY received_at ASC, id ASC`
	return r.queryBatches(ctx, query, rawMaterialID)
}

// ListAvailableForUpdate igual que ListAvailable pero bloqueando las filas
// (SELECT FOR UPDATE) para la duración de la transacción.
func (r *BatchRepo) ListAvailableForUpdate(ctx context.Context, rawMaterialID string) ([]*entity.Batch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM batches
		WHERE raw_material_id = $1 AND remaining_quantity > 0
		ORDER BY received_at ASC, id ASC
		FOR UPDATE`
	return r.queryBatches(ctx, query, rawMaterialID)
}

// Decrement descuenta qty del restante con guarda en el WHERE: si la fila
// cambió entre la verificación y el commit no matchea y se reporta conflicto.
// El restante nunca puede quedar negativo.
func (r *BatchRepo) Decrement(ctx context.Context, batchID string, qty decimal.Decimal) error {
	if !qty.GreaterThan(decimal.Zero) {
		return &domain.InvalidQuantityError{Field: "quantity", Value: qty, Reason: "el decremento debe ser positivo"}
	}
	query := `
		UPDATE batches
		SET remaining_quantity = remaining_quantity - $2
		WHERE id = $1 AND remaining_quantity >= $2`
	tag, err := r.q.Exec(ctx, query, batchID, qty)
	if err != nil {
		return fmt.Errorf("decrement batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.ConcurrencyConflictError{BatchID: batchID}
	}
	return nil
}

// SumRemaining total disponible de un insumo sumando todos sus lotes.
func (r *BatchRepo) SumRemaining(ctx context.Context, rawMaterialID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(remaining_quantity), 0)
		FROM batches WHERE raw_material_id = $1`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, rawMaterialID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum remaining: %w", err)
	}
	return total, nil
}

// ListExpiring lotes con restante > 0 de la empresa que vencen dentro de la ventana dada.
func (r *BatchRepo) ListExpiring(ctx context.Context, companyID string, withinDays int) ([]*entity.Batch, error) {
	query := `
		SELECT b.id, b.raw_material_id, b.supplier_id, b.initial_quantity, b.remaining_quantity,
			b.unit_cost, b.received_at, b.expires_at, b.lot_number, b.invoice_number, b.created_at
		FROM batches b
		JOIN raw_materials rm ON rm.id = b.raw_material_id
		WHERE rm.company_id = $1
		  AND b.remaining_quantity > 0
		  AND b.expires_at IS NOT NULL
		  AND b.expires_at <= now() + ($2 * interval '1 day')
		ORDER BY b.expires_at ASC`
	return r.queryBatches(ctx, query, companyID, withinDays)
}

// ListByRawMaterial todos los lotes de un insumo (incluidos agotados), en el
// mismo orden FIFO en que se consumen.
func (r *BatchRepo) ListByRawMaterial(ctx context.Context, rawMaterialID string, limit, offset int) ([]*entity.Batch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM batches
		WHERE raw_material_id = $1
		ORDER BY received_at ASC, id ASC
		LIMIT $2 OFFSET $3`
	return r.queryBatches(ctx, query, rawMaterialID, limit, offset)
}

func (r *BatchRepo) queryBatches(ctx context.Context, query string, args ...any) ([]*entity.Batch, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func scanBatch(row pgx.Row) (*entity.Batch, error) {
	var b entity.Batch
	var lotNumber, invoiceNumber *string
	err := row.Scan(
		&b.ID, &b.RawMaterialID, &b.SupplierID, &b.Initial, &b.Remaining,
		&b.UnitCost, &b.ReceivedAt, &b.ExpiresAt, &lotNumber, &invoiceNumber, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lotNumber != nil {
		b.LotNumber = *lotNumber
	}
	if invoiceNumber != nil {
		b.InvoiceNumber = *invoiceNumber
	}
	return &b, nil
}
