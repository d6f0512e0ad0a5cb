package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/donaflor/panaderia-api/internal/application/dto"
	"github.com/donaflor/panaderia-api/internal/application/usecase"
	"github.com/donaflor/panaderia-api/internal/domain"
	"github.com/donaflor/panaderia-api/internal/domain/entity"
)

// RawMaterialHandler maneja insumos y recepción de lotes (protegido).
type RawMaterialHandler struct {
	materials *usecase.RawMaterialUseCase
	receive   *usecase.ReceiveBatchUseCase
}

// NewRawMaterialHandler construye el handler.
func NewRawMaterialHandler(materials *usecase.RawMaterialUseCase, receive *usecase.ReceiveBatchUseCase) *RawMaterialHandler {
	return &RawMaterialHandler{materials: materials, receive: receive}
}

// Create godoc
// @Summary      Crear un insumo
// @Tags         raw-materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRawMaterialRequest  true  "insumo"
// @Success      201   {object}  dto.RawMaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/raw-materials [post]
func (h *RawMaterialHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateRawMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	material, err := h.materials.Create(c.Context(), usecase.CreateInput{
		CompanyID:        companyID,
		Name:             in.Name,
		Unit:             in.Unit,
		StockUnit:        in.StockUnit,
		ConversionFactor: in.ConversionFactor,
		MinStockAlert:    in.MinStockAlert,
		StandardCost:     in.StandardCost,
	})
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toRawMaterialResponse(material))
}

// Get godoc
// @Summary      Detalle de un insumo con stock total
// @Tags         raw-materials
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del insumo"
// @Success      200  {object}  dto.RawMaterialResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/raw-materials/{id} [get]
func (h *RawMaterialHandler) Get(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	material, stock, err := h.materials.GetWithStock(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return h.mapError(c, err)
	}
	resp := toRawMaterialResponse(material)
	resp.TotalStock = stock
	return c.JSON(resp)
}

// List godoc
// @Summary      Listar insumos de la empresa
// @Tags         raw-materials
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "límite (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.RawMaterialResponse
// @Router       /api/raw-materials [get]
func (h *RawMaterialHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	materials, err := h.materials.List(c.Context(), companyID, page.Limit, page.Offset)
	if err != nil {
		return h.mapError(c, err)
	}
	out := make([]dto.RawMaterialResponse, 0, len(materials))
	for _, m := range materials {
		out = append(out, toRawMaterialResponse(m))
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Insumos por debajo de su stock mínimo
// @Tags         raw-materials
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RawMaterialResponse
// @Router       /api/raw-materials/low-stock [get]
func (h *RawMaterialHandler) LowStock(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	materials, err := h.materials.ListBelowMinimum(c.Context(), companyID)
	if err != nil {
		return h.mapError(c, err)
	}
	out := make([]dto.RawMaterialResponse, 0, len(materials))
	for _, m := range materials {
		out = append(out, toRawMaterialResponse(m))
	}
	return c.JSON(out)
}

// ReceiveBatch godoc
// @Summary      Recibir un lote de un insumo
// @Description  Crea el lote, registra el movimiento de entrada y actualiza el
//
//	costo promedio ponderado del insumo, todo en una transacción.
//
// @Tags         raw-materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del insumo"
// @Param        body  body  dto.ReceiveBatchRequest  true  "lote"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/raw-materials/{id}/batches [post]
func (h *RawMaterialHandler) ReceiveBatch(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ReceiveBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	batch, err := h.receive.Receive(c.Context(), usecase.ReceiveBatchInput{
		CompanyID:     companyID,
		UserID:        userID,
		RawMaterialID: c.Params("id"),
		SupplierID:    in.SupplierID,
		Quantity:      in.Quantity,
		UnitCost:      in.UnitCost,
		ExpiresAt:     in.ExpiresAt,
		LotNumber:     in.LotNumber,
		InvoiceNumber: in.InvoiceNumber,
		Notes:         in.Notes,
	})
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toBatchResponse(batch))
}

// ListBatches godoc
// @Summary      Lotes disponibles de un insumo, en orden FIFO
// @Tags         raw-materials
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del insumo"
// @Param        limit   query  int     false  "límite (default 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.BatchResponse
// @Router       /api/raw-materials/{id}/batches [get]
func (h *RawMaterialHandler) ListBatches(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	batches, err := h.materials.ListBatches(c.Context(), companyID, c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return h.mapError(c, err)
	}
	out := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, toBatchResponse(b))
	}
	return c.JSON(out)
}

func (h *RawMaterialHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un insumo con ese nombre"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func toRawMaterialResponse(m *entity.RawMaterial) dto.RawMaterialResponse {
	return dto.RawMaterialResponse{
		ID:                  m.ID,
		Name:                m.Name,
		Unit:                m.Unit,
		StockUnit:           m.StockUnit,
		ConversionFactor:    m.ConversionFactor,
		MinStockAlert:       m.MinStockAlert,
		StandardCost:        m.StandardCost,
		LastCost:            m.LastCost,
		ProducedByProductID: m.ProducedByProductID,
	}
}

func toBatchResponse(b *entity.Batch) dto.BatchResponse {
	return dto.BatchResponse{
		ID:            b.ID,
		RawMaterialID: b.RawMaterialID,
		Initial:       b.Initial,
		Remaining:     b.Remaining,
		UnitCost:      b.UnitCost,
		ReceivedAt:    b.ReceivedAt,
		ExpiresAt:     b.ExpiresAt,
		LotNumber:     b.LotNumber,
		InvoiceNumber: b.InvoiceNumber,
	}
}
