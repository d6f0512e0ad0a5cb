package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/donaflor/panaderia-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para productos terminados (DIP).
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	UpdateCost(ctx context.Context, productID string, cost decimal.Decimal) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error)
}
