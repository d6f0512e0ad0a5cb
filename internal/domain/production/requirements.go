package production

import (
	"github.com/shopspring/decimal"

	"github.com/donaflor/panaderia-api/internal/domain"
	"github.com/donaflor/panaderia-api/internal/domain/entity"
)

// RequiredIngredient consumo teórico de un insumo para una orden, derivado de
// la ficha técnica por la cantidad planificada. Transitorio: no se persiste.
type RequiredIngredient struct {
	RawMaterialID string
	Name          string
	Unit          string
	Quantity      decimal.Decimal // en StockUnit del insumo
}

// BuildRequirements escala los ingredientes de la receta a la cantidad
// planificada: cantidad_ingrediente * (planificado / rendimiento_base).
// Las recetas pueden repetir un insumo en varias líneas (harina en la masa y
// harina para espolvorear); aquí se consolidan en un único requerimiento por
// insumo para que la verificación y la asignación operen sobre el total.
func BuildRequirements(recipe *entity.Recipe, plannedQuantity decimal.Decimal) ([]RequiredIngredient, error) {
	if recipe == nil || len(recipe.Ingredients) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if !plannedQuantity.GreaterThan(decimal.Zero) {
		return nil, &domain.InvalidQuantityError{
			Field:  "planned_quantity",
			Value:  plannedQuantity,
			Reason: "debe ser positiva",
		}
	}
	if !recipe.YieldQuantity.GreaterThan(decimal.Zero) {
		return nil, &domain.InvalidQuantityError{
			Field:  "yield_quantity",
			Value:  recipe.YieldQuantity,
			Reason: "la receta debe rendir una cantidad positiva",
		}
	}
	ratio := plannedQuantity.Div(recipe.YieldQuantity)
	reqs := make([]RequiredIngredient, 0, len(recipe.Ingredients))
	index := make(map[string]int, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		scaled := ing.Quantity.Mul(ratio)
		if i, ok := index[ing.RawMaterialID]; ok {
			reqs[i].Quantity = reqs[i].Quantity.Add(scaled)
			continue
		}
		index[ing.RawMaterialID] = len(reqs)
		reqs = append(reqs, RequiredIngredient{
			RawMaterialID: ing.RawMaterialID,
			Name:          ing.Name,
			Unit:          ing.Unit,
			Quantity:      scaled,
		})
	}
	return reqs, nil
}
