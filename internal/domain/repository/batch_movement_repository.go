package repository

import (
	"context"

	"github.com/donaflor/panaderia-api/internal/domain/entity"
)

// BatchMovementRepository puerto de persistencia del log de movimientos.
// Append-only: no hay update ni delete.
type BatchMovementRepository interface {
	Create(ctx context.Context, movement *entity.BatchMovement) error
	ListByBatch(ctx context.Context, batchID string, limit, offset int) ([]*entity.BatchMovement, error)
	ListByProductionOrder(ctx context.Context, productionOrderID string) ([]*entity.BatchMovement, error)
}
