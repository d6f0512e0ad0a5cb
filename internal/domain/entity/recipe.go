package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe es la ficha técnica de un producto: ingredientes y rendimiento.
// YieldQuantity es cuántas unidades del producto rinde una ejecución base de
// la receta; las cantidades de los ingredientes están expresadas para ese
// rendimiento.
type Recipe struct {
	ID            string
	CompanyID     string
	ProductID     string
	Name          string
	YieldQuantity decimal.Decimal
	Ingredients   []RecipeIngredient
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RecipeIngredient línea de la ficha técnica: cuánto insumo consume el
// rendimiento base, en StockUnit del insumo.
type RecipeIngredient struct {
	RawMaterialID string
	Name          string // desnormalizado para mensajes de error
	Unit          string
	Quantity      decimal.Decimal
}
