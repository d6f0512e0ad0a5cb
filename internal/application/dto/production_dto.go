package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinalizeOrderRequest body para POST /api/production-orders/:id/finalize.
type FinalizeOrderRequest struct {
	ProducedQuantity decimal.Decimal `json:"produced_quantity"`
}

// ConsumedIngredientDTO consumo real de un insumo en la finalización.
type ConsumedIngredientDTO struct {
	RawMaterialID string          `json:"raw_material_id"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	Quantity      decimal.Decimal `json:"quantity"`
	Cost          decimal.Decimal `json:"cost"`
}

// FinalizeOrderResponse resultado de la finalización.
type FinalizeOrderResponse struct {
	OrderID             string                  `json:"order_id"`
	ProducedQuantity    decimal.Decimal         `json:"produced_quantity"`
	TotalIngredientCost decimal.Decimal         `json:"total_ingredient_cost"`
	UnitCost            decimal.Decimal         `json:"unit_cost"`
	YieldVariancePct    decimal.Decimal         `json:"yield_variance_pct"`
	Consumed            []ConsumedIngredientDTO `json:"consumed"`
	VirtualMaterialID   string                  `json:"virtual_material_id,omitempty"`
}

// ShortageDTO faltante de un insumo para reporte legible.
type ShortageDTO struct {
	RawMaterialID string          `json:"raw_material_id"`
	Name          string          `json:"name"`
	Required      decimal.Decimal `json:"required"`
	Available     decimal.Decimal `json:"available"`
	Unit          string          `json:"unit"`
}

// AvailabilityResponse respuesta de la verificación previa de disponibilidad.
type AvailabilityResponse struct {
	Sufficient bool          `json:"sufficient"`
	Shortages  []ShortageDTO `json:"shortages"`
}

// ProductionOrderResponse orden de producción para listados.
type ProductionOrderResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	RecipeID         string          `json:"recipe_id"`
	Code             string          `json:"code"`
	PlannedQuantity  decimal.Decimal `json:"planned_quantity"`
	ProducedQuantity decimal.Decimal `json:"produced_quantity"`
	Status           string          `json:"status"`
	ScheduledFor     *time.Time      `json:"scheduled_for,omitempty"`
	FinalizedAt      *time.Time      `json:"finalized_at,omitempty"`
}

// MovementDTO movimiento de lote para listados.
type MovementDTO struct {
	ID                string          `json:"id"`
	BatchID           string          `json:"batch_id"`
	RawMaterialID     string          `json:"raw_material_id"`
	Type              string          `json:"type"`
	Quantity          decimal.Decimal `json:"quantity"`
	Reason            string          `json:"reason"`
	ProductionOrderID *string         `json:"production_order_id,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	CreatedAt         string          `json:"created_at"`
}
