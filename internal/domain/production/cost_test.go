package production

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeRealizedCost(t *testing.T) {
	tests := []struct {
		name         string
		total        float64
		planned      float64
		produced     float64
		wantUnitCost string
		wantVariance string
	}{
		{"producción exacta", 100, 50, 50, "2", "0"},
		{"merma del 20%", 100, 50, 40, "2.5", "-20"},
		{"sobre-rendimiento", 100, 50, 60, "1.6666666666666667", "20"},
		{"planificado cero no divide", 100, 0, 10, "10", "0"},
		{"producido cero devuelve costo cero", 100, 50, 0, "0", "-100"},
		{"todo cero", 0, 0, 0, "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeRealizedCost(
				decimal.NewFromFloat(tt.total),
				decimal.NewFromFloat(tt.planned),
				decimal.NewFromFloat(tt.produced),
			)
			wantCost := decimal.RequireFromString(tt.wantUnitCost)
			wantVar := decimal.RequireFromString(tt.wantVariance)
			assert.True(t, got.UnitCost.Equal(wantCost),
				"unit cost: esperado %s, obtenido %s", wantCost, got.UnitCost)
			assert.True(t, got.YieldVariancePct.Equal(wantVar),
				"variación: esperado %s, obtenido %s", wantVar, got.YieldVariancePct)
		})
	}
}

func TestWeightedAverageCost(t *testing.T) {
	tests := []struct {
		name     string
		stock    int64
		cost     int64
		inQty    int64
		inCost   int64
		expected string
	}{
		{"sin stock previo toma el costo de entrada", 0, 0, 10, 5, "5"},
		{"promedio simple", 10, 10, 10, 20, "15"},
		{"entrada cero mantiene el costo", 10, 7, 0, 0, "7"},
		{"todo cero devuelve cero", 0, 0, 0, 0, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeightedAverageCost(
				decimal.NewFromInt(tt.stock), decimal.NewFromInt(tt.cost),
				decimal.NewFromInt(tt.inQty), decimal.NewFromInt(tt.inCost),
			)
			want := decimal.RequireFromString(tt.expected)
			assert.True(t, got.Equal(want), "esperado %s, obtenido %s", want, got)
		})
	}
}
