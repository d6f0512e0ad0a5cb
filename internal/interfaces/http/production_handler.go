package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/donaflor/panaderia-api/internal/application/dto"
	"github.com/donaflor/panaderia-api/internal/application/production"
	"github.com/donaflor/panaderia-api/internal/domain"
	"github.com/donaflor/panaderia-api/internal/domain/repository"
)

// ProductionHandler maneja la finalización de órdenes de producción y sus
// consultas asociadas (protegido).
type ProductionHandler struct {
	finalize     *production.FinalizeOrderUseCase
	availability *production.CheckAvailabilityUseCase
	orderRepo    repository.ProductionOrderRepository
}

// NewProductionHandler construye el handler.
func NewProductionHandler(
	finalize *production.FinalizeOrderUseCase,
	availability *production.CheckAvailabilityUseCase,
	orderRepo repository.ProductionOrderRepository,
) *ProductionHandler {
	return &ProductionHandler{
		finalize:     finalize,
		availability: availability,
		orderRepo:    orderRepo,
	}
}

// Finalize godoc
// @Summary      Finalizar una orden de producción
// @Description  Consume los insumos de la ficha técnica en orden FIFO por lote,
//
//	registra los movimientos y calcula el costo realizado. Falla completa
//	(sin tocar ningún lote) si algún insumo no alcanza.
//
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.FinalizeOrderRequest  true  "produced_quantity"
// @Success      200   {object}  dto.FinalizeOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/production-orders/{id}/finalize [post]
func (h *ProductionHandler) Finalize(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.FinalizeOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	result, err := h.finalize.Finalize(c.Context(), production.FinalizeInput{
		CompanyID:        companyID,
		UserID:           userID,
		OrderID:          c.Params("id"),
		ProducedQuantity: in.ProducedQuantity,
	})
	if err != nil {
		return h.mapError(c, err)
	}

	resp := dto.FinalizeOrderResponse{
		OrderID:             result.OrderID,
		ProducedQuantity:    result.ProducedQuantity,
		TotalIngredientCost: result.TotalIngredientCost,
		UnitCost:            result.UnitCost,
		YieldVariancePct:    result.YieldVariancePct,
		VirtualMaterialID:   result.VirtualMaterialID,
	}
	for _, ci := range result.Consumed {
		resp.Consumed = append(resp.Consumed, dto.ConsumedIngredientDTO{
			RawMaterialID: ci.RawMaterialID,
			Name:          ci.Name,
			Unit:          ci.Unit,
			Quantity:      ci.Quantity,
			Cost:          ci.Cost,
		})
	}
	return c.JSON(resp)
}

// CheckAvailability godoc
// @Summary      Verificación previa de disponibilidad
// @Description  Indica si el stock alcanza para la orden, con el detalle de
//
//	faltantes por insumo. Solo lectura; la verificación vinculante corre
//	dentro de la transacción de finalización.
//
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.AvailabilityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production-orders/{id}/availability [get]
func (h *ProductionHandler) CheckAvailability(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	result, err := h.availability.Check(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return h.mapError(c, err)
	}
	resp := dto.AvailabilityResponse{Sufficient: result.Sufficient, Shortages: []dto.ShortageDTO{}}
	for _, s := range result.Shortages {
		resp.Shortages = append(resp.Shortages, dto.ShortageDTO{
			RawMaterialID: s.RawMaterialID,
			Name:          s.Name,
			Required:      s.Required,
			Available:     s.Available,
			Unit:          s.Unit,
		})
	}
	return c.JSON(resp)
}

// ListOrders godoc
// @Summary      Listar órdenes de producción de la empresa
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending | in_progress | finalized | cancelled"
// @Param        limit   query  int     false  "límite (default 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.ProductionOrderResponse
// @Router       /api/production-orders [get]
func (h *ProductionHandler) ListOrders(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	orders, err := h.orderRepo.ListByCompany(c.Context(), companyID, c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return h.mapError(c, err)
	}
	out := make([]dto.ProductionOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, dto.ProductionOrderResponse{
			ID:               o.ID,
			ProductID:        o.ProductID,
			RecipeID:         o.RecipeID,
			Code:             o.Code,
			PlannedQuantity:  o.PlannedQuantity,
			ProducedQuantity: o.ProducedQuantity,
			Status:           o.Status,
			ScheduledFor:     o.ScheduledFor,
			FinalizedAt:      o.FinalizedAt,
		})
	}
	return c.JSON(out)
}

// mapError traduce errores de dominio a códigos HTTP. El detalle de faltantes
// viaja en el mensaje para que la UI arme un único aviso accionable.
func (h *ProductionHandler) mapError(c *fiber.Ctx, err error) error {
	var insufficientErr *domain.InsufficientStockError
	if errors.As(err, &insufficientErr) {
		shortages := make([]dto.ShortageDTO, 0, len(insufficientErr.Shortages))
		for _, s := range insufficientErr.Shortages {
			shortages = append(shortages, dto.ShortageDTO{
				RawMaterialID: s.RawMaterialID,
				Name:          s.Name,
				Required:      s.Required,
				Available:     s.Available,
				Unit:          s.Unit,
			})
		}
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"code":      "INSUFFICIENT_STOCK",
			"message":   insufficientErr.Error(),
			"shortages": shortages,
		})
	}
	switch {
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto de concurrencia; reintente la operación"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrOrderNotOpen):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ORDER_NOT_OPEN", Message: "la orden no admite finalización"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
