package production

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaflor/panaderia-api/internal/domain"
	"github.com/donaflor/panaderia-api/internal/domain/entity"
)

func lote(id, materialID string, remaining float64, receivedAt time.Time) *entity.Batch {
	qty := decimal.NewFromFloat(remaining)
	return &entity.Batch{
		ID:            id,
		RawMaterialID: materialID,
		Initial:       qty,
		Remaining:     qty,
		UnitCost:      decimal.NewFromInt(2),
		ReceivedAt:    receivedAt,
	}
}

// Escenario de la harina: lote A (2024-01-01, 10kg) y lote B (2024-02-01, 20kg).
// Pedir 15kg debe dar [(A,10),(B,5)].
func TestAllocate_HarinaDosLotes(t *testing.T) {
	a := lote("batch-a", "harina", 10, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	b := lote("batch-b", "harina", 20, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))

	plan, err := Allocate("harina", decimal.NewFromInt(15), []*entity.Batch{b, a})
	require.NoError(t, err)

	require.Len(t, plan.Entries, 2)
	assert.Equal(t, "batch-a", plan.Entries[0].BatchID)
	assert.True(t, plan.Entries[0].Quantity.Equal(decimal.NewFromInt(10)),
		"debe agotar el lote más antiguo: %s", plan.Entries[0].Quantity)
	assert.Equal(t, "batch-b", plan.Entries[1].BatchID)
	assert.True(t, plan.Entries[1].Quantity.Equal(decimal.NewFromInt(5)))
	assert.True(t, plan.FullyCovered())
	assert.True(t, plan.Allocated().Equal(decimal.NewFromInt(15)), "conservación: lo asignado debe igualar lo requerido")
}

// Una deducción menor al primer lote solo debe tocar el primer lote.
func TestAllocate_SoloPrimerLoteSiAlcanza(t *testing.T) {
	d1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 1, 0)
	d3 := d1.AddDate(0, 2, 0)
	batches := []*entity.Batch{
		lote("b3", "m", 30, d3),
		lote("b1", "m", 10, d1),
		lote("b2", "m", 20, d2),
	}

	plan, err := Allocate("m", decimal.NewFromInt(8), batches)
	require.NoError(t, err)
	require.Len(t, plan.Entries, 1)
	assert.Equal(t, "b1", plan.Entries[0].BatchID)
	assert.True(t, plan.Entries[0].Quantity.Equal(decimal.NewFromInt(8)))
}

// Empate de fecha de recepción: desempata por ID de lote (determinismo).
func TestAllocate_EmpateDesempataPorID(t *testing.T) {
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	batches := []*entity.Batch{
		lote("zz", "m", 5, d),
		lote("aa", "m", 5, d),
	}
	plan, err := Allocate("m", decimal.NewFromInt(6), batches)
	require.NoError(t, err)
	require.Len(t, plan.Entries, 2)
	assert.Equal(t, "aa", plan.Entries[0].BatchID)
	assert.Equal(t, "zz", plan.Entries[1].BatchID)
}

// Lotes insuficientes: plan parcial con el remanente sin cubrir, no error.
func TestAllocate_PlanParcialConRemanente(t *testing.T) {
	batches := []*entity.Batch{
		lote("b1", "m", 4, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	plan, err := Allocate("m", decimal.NewFromInt(10), batches)
	require.NoError(t, err)
	assert.False(t, plan.FullyCovered())
	assert.True(t, plan.Uncovered.Equal(decimal.NewFromInt(6)))
	assert.True(t, plan.Allocated().Equal(decimal.NewFromInt(4)))
}

func TestAllocate_IgnoraLotesVaciosYDeOtroInsumo(t *testing.T) {
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	vacio := lote("b0", "m", 10, d)
	vacio.Remaining = decimal.Zero
	otro := lote("bx", "otro", 50, d)
	bueno := lote("b1", "m", 10, d.AddDate(0, 0, 1))

	plan, err := Allocate("m", decimal.NewFromInt(5), []*entity.Batch{vacio, otro, bueno})
	require.NoError(t, err)
	require.Len(t, plan.Entries, 1)
	assert.Equal(t, "b1", plan.Entries[0].BatchID)
}

func TestAllocate_CantidadCero(t *testing.T) {
	plan, err := Allocate("m", decimal.Zero, nil)
	require.NoError(t, err)
	assert.Empty(t, plan.Entries)
	assert.True(t, plan.FullyCovered())
}

func TestAllocate_CantidadNegativaEsErrorDelCaller(t *testing.T) {
	_, err := Allocate("m", decimal.NewFromInt(-1), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAllocationPlan_CostValorizaPorLote(t *testing.T) {
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	caro := lote("b2", "m", 10, d.AddDate(0, 0, 1))
	caro.UnitCost = decimal.NewFromInt(5)
	barato := lote("b1", "m", 10, d)
	barato.UnitCost = decimal.NewFromInt(3)

	plan, err := Allocate("m", decimal.NewFromInt(12), []*entity.Batch{caro, barato})
	require.NoError(t, err)
	// 10 * 3 + 2 * 5 = 40
	assert.True(t, plan.Cost().Equal(decimal.NewFromInt(40)), "costo FIFO: %s", plan.Cost())
}
