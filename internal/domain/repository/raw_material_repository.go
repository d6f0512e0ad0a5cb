package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/donaflor/panaderia-api/internal/domain/entity"
)

// RawMaterialRepository puerto de persistencia del catálogo de insumos.
type RawMaterialRepository interface {
	Create(ctx context.Context, material *entity.RawMaterial) error
	GetByID(ctx context.Context, id string) (*entity.RawMaterial, error)
	// GetByProducedProduct busca el insumo virtual enlazado a un producto
	// terminado vía produced_by_product_id; nil si no existe.
	GetByProducedProduct(ctx context.Context, productID string) (*entity.RawMaterial, error)
	Update(ctx context.Context, material *entity.RawMaterial) error
	// UpdateCosts actualiza costo estándar y último costo conocido.
	UpdateCosts(ctx context.Context, id string, standardCost, lastCost decimal.Decimal) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.RawMaterial, error)
	// ListBelowMinimum insumos cuyo stock total (suma de lotes) está por
	// debajo de su umbral de alerta.
	ListBelowMinimum(ctx context.Context, companyID string) ([]*entity.RawMaterial, error)
}
