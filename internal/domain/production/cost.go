package production

import "github.com/shopspring/decimal"

// RealizedCost resultado del cálculo de costo realizado de una producción.
// YieldVariancePct positivo = se produjo más de lo planificado (el insumo
// rindió más); negativo = merma.
type RealizedCost struct {
	UnitCost         decimal.Decimal
	YieldVariancePct decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// ComputeRealizedCost calcula el costo unitario realizado a partir del costo
// total de insumos consumidos y la cantidad realmente producida.
// Una producción con rendimiento cero es un resultado válido (aunque
// desafortunado) de registrar: se devuelve costo cero en lugar de error.
// Función pura y determinista.
func ComputeRealizedCost(totalIngredientCost, plannedQuantity, producedQuantity decimal.Decimal) RealizedCost {
	var r RealizedCost
	if producedQuantity.GreaterThan(decimal.Zero) {
		r.UnitCost = totalIngredientCost.Div(producedQuantity)
	} else {
		r.UnitCost = decimal.Zero
	}
	if plannedQuantity.GreaterThan(decimal.Zero) {
		r.YieldVariancePct = producedQuantity.Sub(plannedQuantity).Div(plannedQuantity).Mul(hundred)
	} else {
		r.YieldVariancePct = decimal.Zero
	}
	return r
}

// WeightedAverageCost costo promedio ponderado al recibir una entrada:
// ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada).
// Usado por la recepción de lotes para mantener el costo estándar del insumo.
func WeightedAverageCost(currentStock, currentCost, incomingQty, incomingCost decimal.Decimal) decimal.Decimal {
	sum := currentStock.Add(incomingQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := currentStock.Mul(currentCost).Add(incomingQty.Mul(incomingCost))
	return num.Div(sum)
}
