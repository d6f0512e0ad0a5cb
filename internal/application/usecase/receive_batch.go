package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/donaflor/panaderia-api/internal/application/production"
	"github.com/donaflor/panaderia-api/internal/domain"
	"github.com/donaflor/panaderia-api/internal/domain/entity"
	domainprod "github.com/donaflor/panaderia-api/internal/domain/production"
	"github.com/donaflor/panaderia-api/internal/domain/repository"
)

// ReceiveBatchUseCase registra la recepción de un lote de insumo: crea el
// lote, su movimiento de entrada y actualiza el costo promedio ponderado del
// insumo, todo en una transacción.
type ReceiveBatchUseCase struct {
	txRunner     production.TxRunner
	materialRepo repository.RawMaterialRepository
}

// NewReceiveBatchUseCase construye el caso de uso.
func NewReceiveBatchUseCase(txRunner production.TxRunner, materialRepo repository.RawMaterialRepository) *ReceiveBatchUseCase {
	return &ReceiveBatchUseCase{txRunner: txRunner, materialRepo: materialRepo}
}

// ReceiveBatchInput entrada para registrar una recepción.
type ReceiveBatchInput struct {
	CompanyID     string
	UserID        string
	RawMaterialID string
	SupplierID    *string
	Quantity      decimal.Decimal
	UnitCost      decimal.Decimal
	ExpiresAt     *time.Time
	LotNumber     string
	InvoiceNumber string
	Notes         string
}

// Receive valida el insumo, crea el lote y registra el movimiento de entrada.
// Devuelve el lote persistido.
func (uc *ReceiveBatchUseCase) Receive(ctx context.Context, input ReceiveBatchInput) (*entity.Batch, error) {
	material, err := uc.materialRepo.GetByID(ctx, input.RawMaterialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	if material.CompanyID != input.CompanyID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	batch, err := entity.NewBatch(input.RawMaterialID, input.Quantity, input.UnitCost, now)
	if err != nil {
		return nil, err
	}
	batch.SupplierID = input.SupplierID
	batch.ExpiresAt = input.ExpiresAt
	batch.LotNumber = input.LotNumber
	batch.InvoiceNumber = input.InvoiceNumber

	err = uc.txRunner.Run(ctx, func(
		batchRepo repository.BatchRepository,
		movRepo repository.BatchMovementRepository,
		materialRepo repository.RawMaterialRepository,
		_ repository.ProductRepository,
		_ repository.ProductionOrderRepository,
	) error {
		currentStock, err := batchRepo.SumRemaining(ctx, input.RawMaterialID)
		if err != nil {
			return err
		}
		if err := batchRepo.Create(ctx, batch); err != nil {
			return err
		}
		mov := &entity.BatchMovement{
			BatchID:       batch.ID,
			RawMaterialID: input.RawMaterialID,
			Type:          entity.MovementTypeIn,
			Quantity:      input.Quantity,
			Reason:        entity.ReasonPurchase,
			Notes:         input.Notes,
			CreatedAt:     now,
			CreatedBy:     input.UserID,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		newCost := domainprod.WeightedAverageCost(currentStock, material.StandardCost, input.Quantity, input.UnitCost)
		return materialRepo.UpdateCosts(ctx, material.ID, newCost, input.UnitCost)
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}
