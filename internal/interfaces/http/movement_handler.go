package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/donaflor/panaderia-api/internal/application/dto"
	"github.com/donaflor/panaderia-api/internal/domain"
	"github.com/donaflor/panaderia-api/internal/domain/entity"
	"github.com/donaflor/panaderia-api/internal/domain/repository"
)

// MovementHandler consultas del log de movimientos de lotes (protegido).
// El log es append-only; aquí solo hay lecturas.
type MovementHandler struct {
	movRepo      repository.BatchMovementRepository
	batchRepo    repository.BatchRepository
	materialRepo repository.RawMaterialRepository
	orderRepo    repository.ProductionOrderRepository
}

// NewMovementHandler construye el handler.
func NewMovementHandler(
	movRepo repository.BatchMovementRepository,
	batchRepo repository.BatchRepository,
	materialRepo repository.RawMaterialRepository,
	orderRepo repository.ProductionOrderRepository,
) *MovementHandler {
	return &MovementHandler{
		movRepo:      movRepo,
		batchRepo:    batchRepo,
		materialRepo: materialRepo,
		orderRepo:    orderRepo,
	}
}

// ListByBatch godoc
// @Summary      Movimientos de un lote
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del lote"
// @Param        limit   query  int     false  "límite (default 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.MovementDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/movements [get]
func (h *MovementHandler) ListByBatch(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	batchID := c.Params("id")
	batch, err := h.batchRepo.GetByID(c.Context(), batchID)
	if err != nil {
		return h.mapError(c, err)
	}
	if batch == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote no encontrado"})
	}
	// El lote no conoce la empresa: se valida a través de su insumo.
	material, err := h.materialRepo.GetByID(c.Context(), batch.RawMaterialID)
	if err != nil {
		return h.mapError(c, err)
	}
	if material == nil || material.CompanyID != companyID {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	}

	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	movements, err := h.movRepo.ListByBatch(c.Context(), batchID, page.Limit, page.Offset)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(toMovementDTOs(movements))
}

// ListByOrder godoc
// @Summary      Movimientos de una orden de producción
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {array}  dto.MovementDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production-orders/{id}/movements [get]
func (h *MovementHandler) ListByOrder(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	orderID := c.Params("id")
	order, err := h.orderRepo.GetByID(c.Context(), orderID)
	if err != nil {
		return h.mapError(c, err)
	}
	if order == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
	}
	if order.CompanyID != companyID {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	}

	movements, err := h.movRepo.ListByProductionOrder(c.Context(), orderID)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(toMovementDTOs(movements))
}

func (h *MovementHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func toMovementDTOs(movements []*entity.BatchMovement) []dto.MovementDTO {
	out := make([]dto.MovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementDTO{
			ID:                m.ID,
			BatchID:           m.BatchID,
			RawMaterialID:     m.RawMaterialID,
			Type:              m.Type,
			Quantity:          m.Quantity,
			Reason:            m.Reason,
			ProductionOrderID: m.ProductionOrderID,
			Notes:             m.Notes,
			CreatedAt:         m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return out
}
