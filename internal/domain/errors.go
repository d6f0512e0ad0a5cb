package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrOrderNotOpen      = errors.New("la orden de producción no admite finalización")
)

// Shortage detalle de faltante de un insumo: lo requerido vs. lo disponible
// sumando todos los lotes. Unit permite armar mensajes legibles para el usuario.
type Shortage struct {
	RawMaterialID string
	Name          string
	Required      decimal.Decimal
	Available     decimal.Decimal
	Unit          string
}

func (s Shortage) String() string {
	return fmt.Sprintf("%s: requerido %s %s, disponible %s %s",
		s.Name, s.Required.String(), s.Unit, s.Available.String(), s.Unit)
}

// InsufficientStockError stock insuficiente para cubrir uno o más insumos.
// Lleva la lista completa de faltantes para que el caller presente un único
// mensaje accionable en lugar de detenerse en el primero.
type InsufficientStockError struct {
	Shortages []Shortage
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, s.String())
	}
	return "stock insuficiente: " + strings.Join(parts, "; ")
}

// Is permite errors.Is(err, domain.ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// ConcurrencyConflictError la cantidad restante de un lote cambió entre la
// verificación y el commit (otra finalización ganó la carrera). El caller debe
// reintentar la finalización completa una vez y luego reportar al usuario.
type ConcurrencyConflictError struct {
	BatchID string
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("conflicto de concurrencia sobre el lote %s", e.BatchID)
}

// Is permite errors.Is(err, domain.ErrConflict).
func (e *ConcurrencyConflictError) Is(target error) bool {
	return target == ErrConflict
}

// InvalidQuantityError una cantidad negativa o un decremento que dejaría el
// lote en negativo. Indica un bug del caller; no se reintenta.
type InvalidQuantityError struct {
	Field  string
	Value  decimal.Decimal
	Reason string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("cantidad inválida en %s (%s): %s", e.Field, e.Value.String(), e.Reason)
}

// Is permite errors.Is(err, domain.ErrInvalidInput).
func (e *InvalidQuantityError) Is(target error) bool {
	return target == ErrInvalidInput
}
