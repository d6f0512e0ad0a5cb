package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto terminado de la ficha técnica: pan, torta o
// un semielaborado (masa madre, relleno) que puede reingresar como insumo.
// Cost es el costo unitario realizado de la última producción finalizada.
type Product struct {
	ID              string
	CompanyID       string
	Name            string
	Unit            string // unidad de venta/producción (un, kg, porción)
	Price           decimal.Decimal
	Cost            decimal.Decimal
	IsSemiProcessed bool // true si puede consumirse como insumo virtual
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
