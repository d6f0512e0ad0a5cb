package repository

import (
	"context"

	"github.com/donaflor/panaderia-api/internal/domain/entity"
)

// RecipeRepository puerto de persistencia de fichas técnicas.
type RecipeRepository interface {
	// GetByID devuelve la receta con sus ingredientes cargados.
	GetByID(ctx context.Context, id string) (*entity.Recipe, error)
	GetByProduct(ctx context.Context, productID string) (*entity.Recipe, error)
}
