package production

import (
	"github.com/shopspring/decimal"

	"github.com/donaflor/panaderia-api/internal/domain"
	"github.com/donaflor/panaderia-api/internal/domain/entity"
)

// SufficiencyResult resultado de la verificación previa de disponibilidad.
type SufficiencyResult struct {
	Sufficient bool
	Shortages  []domain.Shortage
}

// CheckSufficiency verifica que cada insumo requerido esté cubierto por la
// suma del restante de TODOS sus lotes (el vencimiento solo afecta el orden
// de consumo, no la disponibilidad). Un insumo sin lotes cuenta como
// disponible cero y produce un faltante, no un error. Función pura sobre el
// snapshot: no muta estado y es idempotente.
func CheckSufficiency(required []RequiredIngredient, batchesByMaterial map[string][]*entity.Batch) SufficiencyResult {
	result := SufficiencyResult{Sufficient: true}
	for _, req := range required {
		available := decimal.Zero
		for _, b := range batchesByMaterial[req.RawMaterialID] {
			available = available.Add(b.Remaining)
		}
		if available.LessThan(req.Quantity) {
			result.Shortages = append(result.Shortages, domain.Shortage{
				RawMaterialID: req.RawMaterialID,
				Name:          req.Name,
				Required:      req.Quantity,
				Available:     available,
				Unit:          req.Unit,
			})
		}
	}
	result.Sufficient = len(result.Shortages) == 0
	return result
}
