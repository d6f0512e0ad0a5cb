package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/donaflor/panaderia-api/internal/domain/entity"
)

// BatchRepository define el puerto de persistencia del ledger de lotes.
// Todos los listados ordenan FIFO (fecha de recepción ascendente, empates
// por id); los ListAvailable* devuelven solo lotes con restante > 0.
type BatchRepository interface {
	Create(ctx context.Context, batch *entity.Batch) error
	GetByID(ctx context.Context, id string) (*entity.Batch, error)
	// ListAvailable lotes consumibles de un insumo en orden FIFO.
	ListAvailable(ctx context.Context, rawMaterialID string) ([]*entity.Batch, error)
	// ListAvailableForUpdate igual que ListAvailable pero bloqueando las filas
	// (SELECT FOR UPDATE). Solo tiene sentido dentro de una transacción.
	ListAvailableForUpdate(ctx context.Context, rawMaterialID string) ([]*entity.Batch, error)
	// Decrement descuenta qty del restante del lote. Debe fallar con
	// ConcurrencyConflictError si el restante ya no alcanza (la fila cambió
	// entre la verificación y el commit) y nunca dejar el lote en negativo.
	Decrement(ctx context.Context, batchID string, qty decimal.Decimal) error
	// SumRemaining total disponible de un insumo sumando todos sus lotes.
	SumRemaining(ctx context.Context, rawMaterialID string) (decimal.Decimal, error)
	// ListExpiring lotes con restante > 0 que vencen dentro de la ventana dada.
	ListExpiring(ctx context.Context, companyID string, withinDays int) ([]*entity.Batch, error)
	ListByRawMaterial(ctx context.Context, rawMaterialID string, limit, offset int) ([]*entity.Batch, error)
}
