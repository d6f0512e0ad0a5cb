package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de producción.
const (
	OrderStatusPending    = "pending"
	OrderStatusInProgress = "in_progress"
	OrderStatusFinalized  = "finalized"
	OrderStatusCancelled  = "cancelled"
)

// ProductionOrder orden de producción de un producto según su receta.
// PlannedQuantity es lo que se planificó producir; ProducedQuantity lo que
// realmente salió del horno (puede diferir por merma o sobre-rendimiento).
type ProductionOrder struct {
	ID               string
	CompanyID        string
	ProductID        string
	RecipeID         string
	Code             string // referencia legible (OP-2026-0042) usada en movimientos
	PlannedQuantity  decimal.Decimal
	ProducedQuantity decimal.Decimal
	Status           string
	ScheduledFor     *time.Time
	FinalizedAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CanFinalize indica si la orden está en un estado que admite finalización.
func (o *ProductionOrder) CanFinalize() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusInProgress
}
