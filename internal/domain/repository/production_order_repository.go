package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/donaflor/panaderia-api/internal/domain/entity"
)

// ProductionOrderRepository puerto de persistencia de órdenes de producción.
type ProductionOrderRepository interface {
	GetByID(ctx context.Context, id string) (*entity.ProductionOrder, error)
	// Finalize marca la orden como finalizada registrando lo producido.
	Finalize(ctx context.Context, id string, producedQuantity decimal.Decimal, finalizedAt time.Time) error
	ListByCompany(ctx context.Context, companyID, status string, limit, offset int) ([]*entity.ProductionOrder, error)
}
