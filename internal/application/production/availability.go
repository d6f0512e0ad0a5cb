package production

import (
	"context"

	"github.com/donaflor/panaderia-api/internal/domain"
	"github.com/donaflor/panaderia-api/internal/domain/entity"
	domainprod "github.com/donaflor/panaderia-api/internal/domain/production"
	"github.com/donaflor/panaderia-api/internal/domain/repository"
)

// CheckAvailabilityUseCase verificación previa de disponibilidad para una
// orden, sin tocar el ledger. Pensada para que la UI muestre faltantes antes
// de intentar finalizar; la verificación vinculante vuelve a correr dentro de
// la transacción de Finalize.
type CheckAvailabilityUseCase struct {
	orderRepo  repository.ProductionOrderRepository
	recipeRepo repository.RecipeRepository
	batchRepo  repository.BatchRepository
}

// NewCheckAvailabilityUseCase construye el caso de uso.
func NewCheckAvailabilityUseCase(
	orderRepo repository.ProductionOrderRepository,
	recipeRepo repository.RecipeRepository,
	batchRepo repository.BatchRepository,
) *CheckAvailabilityUseCase {
	return &CheckAvailabilityUseCase{
		orderRepo:  orderRepo,
		recipeRepo: recipeRepo,
		batchRepo:  batchRepo,
	}
}

// Check devuelve el resultado de suficiencia para la orden dada. Solo lee.
func (uc *CheckAvailabilityUseCase) Check(ctx context.Context, companyID, orderID string) (*domainprod.SufficiencyResult, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	recipe, err := uc.recipeRepo.GetByID(ctx, order.RecipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}

	required, err := domainprod.BuildRequirements(recipe, order.PlannedQuantity)
	if err != nil {
		return nil, err
	}

	snapshot := make(map[string][]*entity.Batch, len(required))
	for _, req := range required {
		batches, err := uc.batchRepo.ListAvailable(ctx, req.RawMaterialID)
		if err != nil {
			return nil, err
		}
		snapshot[req.RawMaterialID] = batches
	}

	result := domainprod.CheckSufficiency(required, snapshot)
	return &result, nil
}
