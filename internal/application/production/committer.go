package production

import (
	"context"
	"time"

	"github.com/donaflor/panaderia-api/internal/domain"
	"github.com/donaflor/panaderia-api/internal/domain/entity"
	domainprod "github.com/donaflor/panaderia-api/internal/domain/production"
	"github.com/donaflor/panaderia-api/internal/domain/repository"
)

// commitPlans aplica los planes de deducción sobre los repositorios atados a
// la transacción del caller. Primero valida que TODOS los planes estén
// completamente cubiertos; si alguno es parcial aborta antes de tocar el
// ledger reportando la lista completa de faltantes. Luego decrementa cada
// lote y registra un movimiento out/production por cada par (insumo, lote).
func commitPlans(
	ctx context.Context,
	batchRepo repository.BatchRepository,
	movRepo repository.BatchMovementRepository,
	plans []domainprod.AllocationPlan,
	required map[string]domainprod.RequiredIngredient,
	productionOrderID, userID string,
	now time.Time,
) error {
	var shortages []domain.Shortage
	for _, plan := range plans {
		if plan.FullyCovered() {
			continue
		}
		req := required[plan.RawMaterialID]
		shortages = append(shortages, domain.Shortage{
			RawMaterialID: plan.RawMaterialID,
			Name:          req.Name,
			Required:      plan.Required,
			Available:     plan.Allocated(),
			Unit:          req.Unit,
		})
	}
	if len(shortages) > 0 {
		return &domain.InsufficientStockError{Shortages: shortages}
	}

	for _, plan := range plans {
		for _, e := range plan.Entries {
			if err := batchRepo.Decrement(ctx, e.BatchID, e.Quantity); err != nil {
				return err
			}
			mov := &entity.BatchMovement{
				BatchID:           e.BatchID,
				RawMaterialID:     plan.RawMaterialID,
				Type:              entity.MovementTypeOut,
				Quantity:          e.Quantity,
				Reason:            entity.ReasonProduction,
				ProductionOrderID: &productionOrderID,
				CreatedAt:         now,
				CreatedBy:         userID,
			}
			if err := movRepo.Create(ctx, mov); err != nil {
				return err
			}
		}
	}
	return nil
}
