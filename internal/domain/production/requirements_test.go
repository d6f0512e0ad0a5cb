package production

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaflor/panaderia-api/internal/domain"
	"github.com/donaflor/panaderia-api/internal/domain/entity"
)

func receta(yield float64, ingredients ...entity.RecipeIngredient) *entity.Recipe {
	return &entity.Recipe{
		ID:            "rec-1",
		ProductID:     "prod-1",
		YieldQuantity: decimal.NewFromFloat(yield),
		Ingredients:   ingredients,
	}
}

func ingrediente(id, name string, qty float64) entity.RecipeIngredient {
	return entity.RecipeIngredient{
		RawMaterialID: id,
		Name:          name,
		Unit:          "kg",
		Quantity:      decimal.NewFromFloat(qty),
	}
}

func TestBuildRequirements_EscalaPorRatio(t *testing.T) {
	rec := receta(10, ingrediente("harina", "Harina", 7.5), ingrediente("azucar", "Azúcar", 2))

	reqs, err := BuildRequirements(rec, decimal.NewFromInt(20))
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.True(t, reqs[0].Quantity.Equal(decimal.NewFromInt(15)), "harina: %s", reqs[0].Quantity)
	assert.True(t, reqs[1].Quantity.Equal(decimal.NewFromInt(4)), "azúcar: %s", reqs[1].Quantity)
}

// Una receta puede repetir un insumo en varias líneas (harina en la masa y
// harina para espolvorear); el requerimiento resultante debe ser uno solo con
// la suma, para que suficiencia y asignación operen sobre el total.
func TestBuildRequirements_ConsolidaInsumoRepetido(t *testing.T) {
	rec := receta(10,
		ingrediente("harina", "Harina", 7),
		ingrediente("azucar", "Azúcar", 2),
		ingrediente("harina", "Harina para espolvorear", 0.5),
	)

	reqs, err := BuildRequirements(rec, decimal.NewFromInt(20))
	require.NoError(t, err)
	require.Len(t, reqs, 2, "las líneas duplicadas deben consolidarse")

	assert.Equal(t, "harina", reqs[0].RawMaterialID)
	assert.True(t, reqs[0].Quantity.Equal(decimal.NewFromInt(15)), "harina consolidada: %s", reqs[0].Quantity)
	// El nombre y la unidad de la primera línea son los que se conservan.
	assert.Equal(t, "Harina", reqs[0].Name)
	assert.Equal(t, "azucar", reqs[1].RawMaterialID)
	assert.True(t, reqs[1].Quantity.Equal(decimal.NewFromInt(4)))
}

func TestBuildRequirements_RecetaVaciaInvalida(t *testing.T) {
	_, err := BuildRequirements(nil, decimal.NewFromInt(10))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = BuildRequirements(receta(10), decimal.NewFromInt(10))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuildRequirements_CantidadesInvalidas(t *testing.T) {
	rec := receta(10, ingrediente("harina", "Harina", 7.5))

	_, err := BuildRequirements(rec, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	recSinRendimiento := receta(0, ingrediente("harina", "Harina", 7.5))
	_, err = BuildRequirements(recSinRendimiento, decimal.NewFromInt(10))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
