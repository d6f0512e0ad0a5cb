package production

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaflor/panaderia-api/internal/domain/entity"
)

func requerido(id, name string, qty float64) RequiredIngredient {
	return RequiredIngredient{
		RawMaterialID: id,
		Name:          name,
		Unit:          "kg",
		Quantity:      decimal.NewFromFloat(qty),
	}
}

func TestCheckSufficiency_CubiertoSumandoTodosLosLotes(t *testing.T) {
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	snapshot := map[string][]*entity.Batch{
		"harina": {lote("b1", "harina", 6, d), lote("b2", "harina", 6, d.AddDate(0, 1, 0))},
	}
	res := CheckSufficiency([]RequiredIngredient{requerido("harina", "Harina", 10)}, snapshot)
	assert.True(t, res.Sufficient)
	assert.Empty(t, res.Shortages)
}

func TestCheckSufficiency_FaltanteConDetalleCompleto(t *testing.T) {
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	snapshot := map[string][]*entity.Batch{
		"harina": {lote("b1", "harina", 4, d)},
	}
	res := CheckSufficiency([]RequiredIngredient{requerido("harina", "Harina", 10)}, snapshot)
	require.False(t, res.Sufficient)
	require.Len(t, res.Shortages, 1)
	s := res.Shortages[0]
	assert.Equal(t, "Harina", s.Name)
	assert.True(t, s.Required.Equal(decimal.NewFromInt(10)))
	assert.True(t, s.Available.Equal(decimal.NewFromInt(4)))
	assert.Equal(t, "kg", s.Unit)
}

// Un insumo sin lotes cuenta como disponible cero, no como error de datos.
func TestCheckSufficiency_InsumoSinLotes(t *testing.T) {
	res := CheckSufficiency([]RequiredIngredient{requerido("azucar", "Azúcar", 2)}, map[string][]*entity.Batch{})
	require.False(t, res.Sufficient)
	require.Len(t, res.Shortages, 1)
	assert.True(t, res.Shortages[0].Available.IsZero())
}

// Reporta TODOS los faltantes, no solo el primero.
func TestCheckSufficiency_ReportaTodosLosFaltantes(t *testing.T) {
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	snapshot := map[string][]*entity.Batch{
		"harina": {lote("b1", "harina", 100, d)},
	}
	reqs := []RequiredIngredient{
		requerido("harina", "Harina", 10),
		requerido("azucar", "Azúcar", 5),
		requerido("manteca", "Manteca", 3),
	}
	res := CheckSufficiency(reqs, snapshot)
	require.False(t, res.Sufficient)
	assert.Len(t, res.Shortages, 2)
}

// Idempotencia: dos llamadas sin mutaciones intermedias dan lo mismo.
func TestCheckSufficiency_Idempotente(t *testing.T) {
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	snapshot := map[string][]*entity.Batch{
		"harina": {lote("b1", "harina", 4, d)},
	}
	reqs := []RequiredIngredient{requerido("harina", "Harina", 10)}

	primera := CheckSufficiency(reqs, snapshot)
	segunda := CheckSufficiency(reqs, snapshot)
	assert.Equal(t, primera, segunda)
	// y no mutó el snapshot
	assert.True(t, snapshot["harina"][0].Remaining.Equal(decimal.NewFromInt(4)))
}
