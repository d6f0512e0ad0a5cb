package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento sobre lotes.
const (
	MovementTypeIn  = "in"  // entrada (recepción, producción de semielaborado)
	MovementTypeOut = "out" // salida (consumo de producción)
)

// Motivos de movimiento.
const (
	ReasonProduction       = "production"        // consumo por orden de producción
	ReasonProductionOutput = "production_output" // alta del semielaborado producido
	ReasonPurchase         = "purchase"          // recepción de compra
	ReasonAdjustment       = "adjustment"        // ajuste manual
)

// BatchMovement registro de auditoría de un movimiento sobre un lote.
// Se crea uno por cada par (insumo, lote) tocado; nunca se modifica ni borra.
type BatchMovement struct {
	ID                string
	BatchID           string
	RawMaterialID     string
	Type              string // in | out
	Quantity          decimal.Decimal
	Reason            string
	ProductionOrderID *string
	Notes             string
	CreatedAt         time.Time
	CreatedBy         string // UserID
}
