package production

import (
	"context"

	"github.com/donaflor/panaderia-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la verificación, los
// decrementos de lotes y los movimientos de una finalización sean atómicos:
// o se aplica todo o no se aplica nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		batchRepo repository.BatchRepository,
		movRepo repository.BatchMovementRepository,
		materialRepo repository.RawMaterialRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.ProductionOrderRepository,
	) error) error
}
