package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/donaflor/panaderia-api/internal/domain"
	"github.com/donaflor/panaderia-api/internal/domain/entity"
	"github.com/donaflor/panaderia-api/internal/domain/repository"
)

// RawMaterialUseCase casos de uso del catálogo de insumos.
type RawMaterialUseCase struct {
	materialRepo repository.RawMaterialRepository
	batchRepo    repository.BatchRepository
}

// NewRawMaterialUseCase construye el caso de uso.
func NewRawMaterialUseCase(materialRepo repository.RawMaterialRepository, batchRepo repository.BatchRepository) *RawMaterialUseCase {
	return &RawMaterialUseCase{materialRepo: materialRepo, batchRepo: batchRepo}
}

// CreateInput datos para crear un insumo.
type CreateInput struct {
	CompanyID        string
	Name             string
	Unit             string
	StockUnit        string
	ConversionFactor decimal.Decimal
	MinStockAlert    decimal.Decimal
	StandardCost     decimal.Decimal
}

// Create crea un insumo físico validando invariantes.
func (uc *RawMaterialUseCase) Create(ctx context.Context, input CreateInput) (*entity.RawMaterial, error) {
	material, err := entity.NewRawMaterial(input.CompanyID, input.Name, input.Unit, input.StockUnit, input.ConversionFactor)
	if err != nil {
		return nil, err
	}
	if input.MinStockAlert.LessThan(decimal.Zero) || input.StandardCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	material.MinStockAlert = input.MinStockAlert
	material.StandardCost = input.StandardCost
	if err := uc.materialRepo.Create(ctx, material); err != nil {
		return nil, err
	}
	return material, nil
}

// GetWithStock devuelve el insumo junto con su stock total (suma de lotes).
func (uc *RawMaterialUseCase) GetWithStock(ctx context.Context, companyID, id string) (*entity.RawMaterial, decimal.Decimal, error) {
	material, err := uc.materialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if material == nil {
		return nil, decimal.Zero, domain.ErrNotFound
	}
	if material.CompanyID != companyID {
		return nil, decimal.Zero, domain.ErrForbidden
	}
	stock, err := uc.batchRepo.SumRemaining(ctx, id)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return material, stock, nil
}

// List lista los insumos de la empresa.
func (uc *RawMaterialUseCase) List(ctx context.Context, companyID string, limit, offset int) ([]*entity.RawMaterial, error) {
	return uc.materialRepo.ListByCompany(ctx, companyID, limit, offset)
}

// ListBelowMinimum insumos con stock por debajo de su umbral de alerta.
func (uc *RawMaterialUseCase) ListBelowMinimum(ctx context.Context, companyID string) ([]*entity.RawMaterial, error) {
	return uc.materialRepo.ListBelowMinimum(ctx, companyID)
}

// ListBatches lotes de un insumo en orden FIFO.
func (uc *RawMaterialUseCase) ListBatches(ctx context.Context, companyID, rawMaterialID string, limit, offset int) ([]*entity.Batch, error) {
	material, err := uc.materialRepo.GetByID(ctx, rawMaterialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	if material.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return uc.batchRepo.ListByRawMaterial(ctx, rawMaterialID, limit, offset)
}
