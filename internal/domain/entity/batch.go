package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/donaflor/panaderia-api/internal/domain"
)

// Batch representa un lote físico recibido de un insumo: cantidad inicial,
// cantidad restante, fecha de recepción y vencimiento opcional.
// Invariante: 0 <= Remaining <= Initial. Remaining solo decrece por consumo
// de producción; los incrementos llegan como lotes nuevos (recepción).
type Batch struct {
	ID            string
	RawMaterialID string
	SupplierID    *string
	Initial       decimal.Decimal // cantidad recibida, en StockUnit del insumo
	Remaining     decimal.Decimal
	UnitCost      decimal.Decimal // costo por StockUnit al momento de la recepción
	ReceivedAt    time.Time
	ExpiresAt     *time.Time
	LotNumber     string
	InvoiceNumber string
	CreatedAt     time.Time
}

// NewBatch construye un lote validando sus invariantes. Remaining arranca
// igual a la cantidad recibida.
func NewBatch(rawMaterialID string, quantity, unitCost decimal.Decimal, receivedAt time.Time) (*Batch, error) {
	if rawMaterialID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !quantity.GreaterThan(decimal.Zero) {
		return nil, &domain.InvalidQuantityError{
			Field:  "quantity",
			Value:  quantity,
			Reason: "un lote debe recibirse con cantidad positiva",
		}
	}
	if unitCost.LessThan(decimal.Zero) {
		return nil, &domain.InvalidQuantityError{
			Field:  "unit_cost",
			Value:  unitCost,
			Reason: "el costo no puede ser negativo",
		}
	}
	return &Batch{
		RawMaterialID: rawMaterialID,
		Initial:       quantity,
		Remaining:     quantity,
		UnitCost:      unitCost,
		ReceivedAt:    receivedAt,
		CreatedAt:     time.Now(),
	}, nil
}

// Consume descuenta qty del restante. Falla con InvalidQuantityError si qty
// no es positiva o si dejaría el lote en negativo.
func (b *Batch) Consume(qty decimal.Decimal) error {
	if !qty.GreaterThan(decimal.Zero) {
		return &domain.InvalidQuantityError{
			Field:  "quantity",
			Value:  qty,
			Reason: "el consumo debe ser positivo",
		}
	}
	if b.Remaining.LessThan(qty) {
		return &domain.InvalidQuantityError{
			Field:  "quantity",
			Value:  qty,
			Reason: "el lote quedaría en negativo",
		}
	}
	b.Remaining = b.Remaining.Sub(qty)
	return nil
}

// IsExpired indica si el lote está vencido a la fecha dada.
func (b *Batch) IsExpired(at time.Time) bool {
	return b.ExpiresAt != nil && b.ExpiresAt.Before(at)
}
