package production

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/donaflor/panaderia-api/internal/domain"
	"github.com/donaflor/panaderia-api/internal/domain/entity"
	domainprod "github.com/donaflor/panaderia-api/internal/domain/production"
	"github.com/donaflor/panaderia-api/internal/domain/repository"
)

// Config opciones de la finalización de producción.
type Config struct {
	// RecalcCostOnFinalize cuando es true (default) el costo realizado se
	// escribe en el producto y en el insumo virtual al finalizar; cuando es
	// false solo se calcula y devuelve al caller.
	RecalcCostOnFinalize bool
}

// FinalizeOrderUseCase finaliza una orden de producción: deriva el consumo
// teórico desde la ficha técnica, verifica disponibilidad, arma los planes
// FIFO, los aplica de forma atómica y calcula el costo realizado. Si el
// producto es un semielaborado, lo refleja como insumo virtual con un lote
// nuevo por la cantidad producida.
type FinalizeOrderUseCase struct {
	txRunner   TxRunner
	orderRepo  repository.ProductionOrderRepository
	recipeRepo repository.RecipeRepository
	cfg        Config
}

// NewFinalizeOrderUseCase construye el caso de uso.
func NewFinalizeOrderUseCase(
	txRunner TxRunner,
	orderRepo repository.ProductionOrderRepository,
	recipeRepo repository.RecipeRepository,
	cfg Config,
) *FinalizeOrderUseCase {
	return &FinalizeOrderUseCase{
		txRunner:   txRunner,
		orderRepo:  orderRepo,
		recipeRepo: recipeRepo,
		cfg:        cfg,
	}
}

// FinalizeInput entrada para finalizar una orden.
type FinalizeInput struct {
	CompanyID        string
	UserID           string
	OrderID          string
	ProducedQuantity decimal.Decimal
}

// ConsumedIngredient detalle de lo consumido por insumo, para la respuesta.
type ConsumedIngredient struct {
	RawMaterialID string
	Name          string
	Unit          string
	Quantity      decimal.Decimal
	Cost          decimal.Decimal
}

// FinalizeResult resultado de la finalización.
type FinalizeResult struct {
	OrderID             string
	ProducedQuantity    decimal.Decimal
	TotalIngredientCost decimal.Decimal
	UnitCost            decimal.Decimal
	YieldVariancePct    decimal.Decimal
	Consumed            []ConsumedIngredient
	VirtualMaterialID   string // vacío si el producto no es semielaborado
}

// Finalize ejecuta la finalización completa dentro de una transacción:
// bloquea los lotes afectados (SELECT FOR UPDATE), verifica suficiencia con
// la lista completa de faltantes, aplica los planes y registra movimientos.
// Ante InsufficientStockError o ConcurrencyConflictError el ledger queda
// exactamente como estaba.
func (uc *FinalizeOrderUseCase) Finalize(ctx context.Context, input FinalizeInput) (*FinalizeResult, error) {
	if input.ProducedQuantity.LessThan(decimal.Zero) {
		return nil, &domain.InvalidQuantityError{
			Field:  "produced_quantity",
			Value:  input.ProducedQuantity,
			Reason: "no puede ser negativa",
		}
	}

	order, err := uc.orderRepo.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.CompanyID != input.CompanyID {
		return nil, domain.ErrForbidden
	}
	if !order.CanFinalize() {
		return nil, domain.ErrOrderNotOpen
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
	requiredByID := make(map[string]domainprod.RequiredIngredient, len(required))
	for _, r := range required {
		requiredByID[r.RawMaterialID] = r
	}

	now := time.Now()
	result := &FinalizeResult{
		OrderID:          order.ID,
		ProducedQuantity: input.ProducedQuantity,
	}

	err = uc.txRunner.Run(ctx, func(
		batchRepo repository.BatchRepository,
		movRepo repository.BatchMovementRepository,
		materialRepo repository.RawMaterialRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.ProductionOrderRepository,
	) error {
		// Bloquea los lotes de cada insumo en orden FIFO y arma el snapshot.
		snapshot := make(map[string][]*entity.Batch, len(required))
		for _, req := range required {
			batches, err := batchRepo.ListAvailableForUpdate(ctx, req.RawMaterialID)
			if err != nil {
				return err
			}
			snapshot[req.RawMaterialID] = batches
		}

		check := domainprod.CheckSufficiency(required, snapshot)
		if !check.Sufficient {
			return &domain.InsufficientStockError{Shortages: check.Shortages}
		}

		plans := make([]domainprod.AllocationPlan, 0, len(required))
		for _, req := range required {
			plan, err := domainprod.Allocate(req.RawMaterialID, req.Quantity, snapshot[req.RawMaterialID])
			if err != nil {
				return err
			}
			plans = append(plans, plan)
		}

		if err := commitPlans(ctx, batchRepo, movRepo, plans, requiredByID, order.ID, input.UserID, now); err != nil {
			return err
		}

		totalCost := decimal.Zero
		for _, plan := range plans {
			req := requiredByID[plan.RawMaterialID]
			cost := plan.Cost()
			totalCost = totalCost.Add(cost)
			result.Consumed = append(result.Consumed, ConsumedIngredient{
				RawMaterialID: plan.RawMaterialID,
				Name:          req.Name,
				Unit:          req.Unit,
				Quantity:      plan.Required,
				Cost:          cost,
			})
		}

		realized := domainprod.ComputeRealizedCost(totalCost, order.PlannedQuantity, input.ProducedQuantity)
		result.TotalIngredientCost = totalCost
		result.UnitCost = realized.UnitCost
		result.YieldVariancePct = realized.YieldVariancePct

		if err := orderRepo.Finalize(ctx, order.ID, input.ProducedQuantity, now); err != nil {
			return err
		}

		product, err := productRepo.GetByID(ctx, order.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if uc.cfg.RecalcCostOnFinalize {
			if err := productRepo.UpdateCost(ctx, product.ID, realized.UnitCost); err != nil {
				return err
			}
		}

		if !product.IsSemiProcessed {
			return nil
		}
		return uc.reflectSemiProcessed(ctx, batchRepo, movRepo, materialRepo, product, order, input, realized.UnitCost, now, result)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// reflectSemiProcessed asegura el insumo virtual del semielaborado, sincroniza
// su costo y da de alta un lote por la cantidad producida con su movimiento
// de entrada, todo dentro de la transacción de la finalización.
func (uc *FinalizeOrderUseCase) reflectSemiProcessed(
	ctx context.Context,
	batchRepo repository.BatchRepository,
	movRepo repository.BatchMovementRepository,
	materialRepo repository.RawMaterialRepository,
	product *entity.Product,
	order *entity.ProductionOrder,
	input FinalizeInput,
	unitCost decimal.Decimal,
	now time.Time,
	result *FinalizeResult,
) error {
	bridge := NewVirtualBridge(materialRepo)
	material, err := bridge.EnsureVirtualRawMaterial(ctx, product)
	if err != nil {
		return err
	}
	result.VirtualMaterialID = material.ID

	if uc.cfg.RecalcCostOnFinalize {
		if err := bridge.SyncVirtualCost(ctx, material, unitCost); err != nil {
			return err
		}
	}

	// Una producción con rendimiento cero no genera lote.
	if !input.ProducedQuantity.GreaterThan(decimal.Zero) {
		return nil
	}
	batch, err := entity.NewBatch(material.ID, input.ProducedQuantity, unitCost, now)
	if err != nil {
		return err
	}
	batch.LotNumber = order.Code
	if err := batchRepo.Create(ctx, batch); err != nil {
		return err
	}
	orderID := order.ID
	mov := &entity.BatchMovement{
		BatchID:           batch.ID,
		RawMaterialID:     material.ID,
		Type:              entity.MovementTypeIn,
		Quantity:          input.ProducedQuantity,
		Reason:            entity.ReasonProductionOutput,
		ProductionOrderID: &orderID,
		CreatedAt:         now,
		CreatedBy:         input.UserID,
	}
	return movRepo.Create(ctx, mov)
}
