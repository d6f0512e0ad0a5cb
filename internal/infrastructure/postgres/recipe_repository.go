package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/donaflor/panaderia-api/internal/domain/entity"
	"github.com/donaflor/panaderia-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo fichas técnicas sobre PostgreSQL (usable con pool o tx).
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// GetByID devuelve la receta con sus ingredientes cargados; nil si no existe.
func (r *RecipeRepo) GetByID(ctx context.Context, id string) (*entity.Recipe, error) {
	query := `
		SELECT id, company_id, product_id, name, yield_quantity, created_at, updated_at
		FROM recipes WHERE id = $1`
	var rec entity.Recipe
	err := r.q.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.CompanyID, &rec.ProductID, &rec.Name, &rec.YieldQuantity,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	if err := r.loadIngredients(ctx, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetByProduct devuelve la receta vigente de un producto; nil si no existe.
func (r *RecipeRepo) GetByProduct(ctx context.Context, productID string) (*entity.Recipe, error) {
	query := `
		SELECT id, company_id, product_id, name, yield_quantity, created_at, updated_at
		FROM recipes WHERE product_id = $1
		ORDER BY created_at DESC
		LIMIT 1`
	var rec entity.Recipe
	err := r.q.QueryRow(ctx, query, productID).Scan(
		&rec.ID, &rec.CompanyID, &rec.ProductID, &rec.Name, &rec.YieldQuantity,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe by product: %w", err)
	}
	if err := r.loadIngredients(ctx, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// loadIngredients carga las líneas de la ficha con el nombre y la unidad del
// insumo desnormalizados para mensajes de error.
func (r *RecipeRepo) loadIngredients(ctx context.Context, rec *entity.Recipe) error {
	query := `
		SELECT ri.raw_material_id, rm.name, rm.stock_unit, ri.quantity
		FROM recipe_ingredients ri
		JOIN raw_materials rm ON rm.id = ri.raw_material_id
		WHERE ri.recipe_id = $1
		ORDER BY rm.name ASC`
	rows, err := r.q.Query(ctx, query, rec.ID)
	if err != nil {
		return fmt.Errorf("list recipe ingredients: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ing entity.RecipeIngredient
		if err := rows.Scan(&ing.RawMaterialID, &ing.Name, &ing.Unit, &ing.Quantity); err != nil {
			return fmt.Errorf("scan recipe ingredient: %w", err)
		}
		rec.Ingredients = append(rec.Ingredients, ing)
	}
	return rows.Err()
}
