package production

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/donaflor/panaderia-api/internal/domain"
	"github.com/donaflor/panaderia-api/internal/domain/entity"
)

// AllocationEntry cuánto descontar de un lote concreto.
type AllocationEntry struct {
	BatchID  string
	Quantity decimal.Decimal
	UnitCost decimal.Decimal // costo del lote, para valorizar el consumo
}

// AllocationPlan plan de deducción FIFO para un insumo. Si los lotes no
// alcanzan, Uncovered > 0 y el plan es parcial: el committer debe rechazar la
// operación completa en lugar de sub-consumir en silencio.
type AllocationPlan struct {
	RawMaterialID string
	Required      decimal.Decimal
	Entries       []AllocationEntry
	Uncovered     decimal.Decimal
}

// FullyCovered indica si el plan cubre todo lo requerido.
func (p AllocationPlan) FullyCovered() bool {
	return p.Uncovered.IsZero()
}

// Allocated suma de las cantidades del plan.
func (p AllocationPlan) Allocated() decimal.Decimal {
	total := decimal.Zero
	for _, e := range p.Entries {
		total = total.Add(e.Quantity)
	}
	return total
}

// Cost valoriza el plan: sum(cantidad * costo del lote).
func (p AllocationPlan) Cost() decimal.Decimal {
	total := decimal.Zero
	for _, e := range p.Entries {
		total = total.Add(e.Quantity.Mul(e.UnitCost))
	}
	return total
}

// Allocate construye el plan FIFO sobre el snapshot de lotes recibido:
// más antiguo primero por fecha de recepción, empates por ID para que el
// orden sea determinista. Consume greedy min(faltante, restante del lote).
// Función pura: no lee ni escribe el ledger, lo que permite testearla con
// listas en memoria.
func Allocate(rawMaterialID string, required decimal.Decimal, batches []*entity.Batch) (AllocationPlan, error) {
	plan := AllocationPlan{RawMaterialID: rawMaterialID, Required: required, Uncovered: decimal.Zero}
	if required.LessThan(decimal.Zero) {
		return plan, &domain.InvalidQuantityError{
			Field:  "required",
			Value:  required,
			Reason: "la cantidad requerida no puede ser negativa",
		}
	}
	if required.IsZero() {
		return plan, nil
	}

	ordered := make([]*entity.Batch, 0, len(batches))
	for _, b := range batches {
		if b.RawMaterialID == rawMaterialID && b.Remaining.GreaterThan(decimal.Zero) {
			ordered = append(ordered, b)
		}
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].ReceivedAt.Equal(ordered[j].ReceivedAt) {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].ReceivedAt.Before(ordered[j].ReceivedAt)
	})

	needed := required
	for _, b := range ordered {
		if needed.IsZero() {
			break
		}
		take := decimal.Min(needed, b.Remaining)
		plan.Entries = append(plan.Entries, AllocationEntry{
			BatchID:  b.ID,
			Quantity: take,
			UnitCost: b.UnitCost,
		})
		needed = needed.Sub(take)
	}
	plan.Uncovered = needed
	return plan, nil
}
