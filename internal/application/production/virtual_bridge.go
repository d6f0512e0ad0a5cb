package production

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/donaflor/panaderia-api/internal/domain"
	"github.com/donaflor/panaderia-api/internal/domain/entity"
	"github.com/donaflor/panaderia-api/internal/domain/repository"
)

// VirtualBridge promueve un semielaborado a insumo de primera clase para que
// otras recetas puedan consumirlo, y mantiene su costo sincronizado con el
// costo realizado de la receta que lo produce.
type VirtualBridge struct {
	materialRepo repository.RawMaterialRepository
}

// NewVirtualBridge construye el puente.
func NewVirtualBridge(materialRepo repository.RawMaterialRepository) *VirtualBridge {
	return &VirtualBridge{materialRepo: materialRepo}
}

// EnsureVirtualRawMaterial devuelve el insumo virtual enlazado al producto,
// creándolo si no existe. Idempotente: la búsqueda por produced_by_product_id
// antes de crear evita duplicados.
func (b *VirtualBridge) EnsureVirtualRawMaterial(ctx context.Context, product *entity.Product) (*entity.RawMaterial, error) {
	if product == nil || product.ID == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := b.materialRepo.GetByProducedProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	material, err := entity.NewRawMaterial(product.CompanyID, product.Name, product.Unit, product.Unit, decimal.NewFromInt(1))
	if err != nil {
		return nil, err
	}
	productID := product.ID
	material.ProducedByProductID = &productID
	if err := b.materialRepo.Create(ctx, material); err != nil {
		return nil, err
	}
	return material, nil
}

// SyncVirtualCost escribe el último costo realizado en el insumo virtual,
// para que las recetas que lo consumen vean un costo vigente sin necesidad de
// rastrear costos por lote propios.
func (b *VirtualBridge) SyncVirtualCost(ctx context.Context, material *entity.RawMaterial, unitCost decimal.Decimal) error {
	if material == nil || !material.IsVirtual() {
		return domain.ErrInvalidInput
	}
	material.StandardCost = unitCost
	material.LastCost = unitCost
	material.UpdatedAt = time.Now()
	return b.materialRepo.UpdateCosts(ctx, material.ID, unitCost, unitCost)
}
