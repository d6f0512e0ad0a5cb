package alerts

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/donaflor/panaderia-api/internal/domain/repository"
	"github.com/donaflor/panaderia-api/pkg/logger"
)

// Config opciones del notificador de vencimientos.
type Config struct {
	// Schedule expresión cron; default "0 6 * * *" (todos los días 6:00).
	Schedule string
	// ExpiryWindowDays ventana de aviso de vencimiento en días.
	ExpiryWindowDays int
	// CompanyIDs empresas a revisar. El scan es por empresa para respetar el
	// aislamiento multi-tenant.
	CompanyIDs []string
}

// ExpiryNotifier job diario que revisa lotes próximos a vencer e insumos por
// debajo del stock mínimo, y emite warnings estructurados. No muta nada.
type ExpiryNotifier struct {
	batchRepo    repository.BatchRepository
	materialRepo repository.RawMaterialRepository
	log          *logger.Logger
	cfg          Config
	cron         *cron.Cron
}

// NewExpiryNotifier construye el notificador.
func NewExpiryNotifier(
	batchRepo repository.BatchRepository,
	materialRepo repository.RawMaterialRepository,
	log *logger.Logger,
	cfg Config,
) *ExpiryNotifier {
	if cfg.Schedule == "" {
		cfg.Schedule = "0 6 * * *"
	}
	if cfg.ExpiryWindowDays <= 0 {
		cfg.ExpiryWindowDays = 7
	}
	return &ExpiryNotifier{
		batchRepo:    batchRepo,
		materialRepo: materialRepo,
		log:          log,
		cfg:          cfg,
		cron:         cron.New(),
	}
}

// Start agenda el job y arranca el scheduler.
func (n *ExpiryNotifier) Start() error {
	_, err := n.cron.AddFunc(n.cfg.Schedule, func() {
		n.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}
	n.cron.Start()
	return nil
}

// Stop detiene el scheduler esperando el job en curso.
func (n *ExpiryNotifier) Stop() {
	ctx := n.cron.Stop()
	<-ctx.Done()
}

// RunOnce ejecuta una pasada de revisión. Exportado para disparos manuales y
// tests.
func (n *ExpiryNotifier) RunOnce(ctx context.Context) {
	for _, companyID := range n.cfg.CompanyIDs {
		expiring, err := n.batchRepo.ListExpiring(ctx, companyID, n.cfg.ExpiryWindowDays)
		if err != nil {
			n.log.Error().Err(err).Str("company_id", companyID).Msg("revisión de vencimientos")
		} else {
			for _, b := range expiring {
				n.log.Warn().
					Str("company_id", companyID).
					Str("batch_id", b.ID).
					Str("raw_material_id", b.RawMaterialID).
					Str("remaining", b.Remaining.String()).
					Time("expires_at", *b.ExpiresAt).
					Msg("lote próximo a vencer")
			}
		}

		low, err := n.materialRepo.ListBelowMinimum(ctx, companyID)
		if err != nil {
			n.log.Error().Err(err).Str("company_id", companyID).Msg("revisión de stock mínimo")
			continue
		}
		for _, m := range low {
			n.log.Warn().
				Str("company_id", companyID).
				Str("raw_material_id", m.ID).
				Str("name", m.Name).
				Str("min_stock_alert", m.MinStockAlert.String()).
				Msg("insumo por debajo del stock mínimo")
		}
	}
}
