package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/donaflor/panaderia-api/internal/domain"
)

// RawMaterial representa un insumo comprable o virtual (semielaborado que
// reingresa como ingrediente). Unit es la unidad de la ficha técnica y
// StockUnit la de almacenamiento; ConversionFactor convierte entre ambas.
// ProducedByProductID enlaza el insumo virtual con el producto que lo genera;
// nil para insumos físicos.
type RawMaterial struct {
	ID                  string
	CompanyID           string
	Name                string
	Unit                string          // unidad de medida en recetas (g, ml, un)
	StockUnit           string          // unidad de almacenamiento (kg, l, caja)
	ConversionFactor    decimal.Decimal // StockUnit -> Unit; siempre > 0
	MinStockAlert       decimal.Decimal // umbral de alerta en StockUnit
	StandardCost        decimal.Decimal // costo de referencia por StockUnit
	LastCost            decimal.Decimal // último costo conocido por StockUnit
	ProducedByProductID *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NewRawMaterial construye un insumo validando sus invariantes.
func NewRawMaterial(companyID, name, unit, stockUnit string, conversionFactor decimal.Decimal) (*RawMaterial, error) {
	if companyID == "" || name == "" || unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if !conversionFactor.GreaterThan(decimal.Zero) {
		return nil, &domain.InvalidQuantityError{
			Field:  "conversion_factor",
			Value:  conversionFactor,
			Reason: "debe ser mayor que cero",
		}
	}
	if stockUnit == "" {
		stockUnit = unit
	}
	now := time.Now()
	return &RawMaterial{
		CompanyID:        companyID,
		Name:             name,
		Unit:             unit,
		StockUnit:        stockUnit,
		ConversionFactor: conversionFactor,
		MinStockAlert:    decimal.Zero,
		StandardCost:     decimal.Zero,
		LastCost:         decimal.Zero,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// IsVirtual indica si el insumo es producido por una receta propia
// (semielaborado) en lugar de comprado a proveedores.
func (m *RawMaterial) IsVirtual() bool {
	return m.ProducedByProductID != nil && *m.ProducedByProductID != ""
}
