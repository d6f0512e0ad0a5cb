package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRawMaterialRequest body para POST /api/raw-materials.
type CreateRawMaterialRequest struct {
	Name             string          `json:"name"`
	Unit             string          `json:"unit"`
	StockUnit        string          `json:"stock_unit,omitempty"`
	ConversionFactor decimal.Decimal `json:"conversion_factor"`
	MinStockAlert    decimal.Decimal `json:"min_stock_alert"`
	StandardCost     decimal.Decimal `json:"standard_cost"`
}

// RawMaterialResponse insumo con su stock total.
type RawMaterialResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Unit                string          `json:"unit"`
	StockUnit           string          `json:"stock_unit"`
	ConversionFactor    decimal.Decimal `json:"conversion_factor"`
	MinStockAlert       decimal.Decimal `json:"min_stock_alert"`
	StandardCost        decimal.Decimal `json:"standard_cost"`
	LastCost            decimal.Decimal `json:"last_cost"`
	ProducedByProductID *string         `json:"produced_by_product_id,omitempty"`
	TotalStock          decimal.Decimal `json:"total_stock,omitempty"`
}

// ReceiveBatchRequest body para POST /api/raw-materials/:id/batches.
type ReceiveBatchRequest struct {
	SupplierID    *string         `json:"supplier_id,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	ExpiresAt     *time.Time      `json:"expires_at,omitempty"`
	LotNumber     string          `json:"lot_number,omitempty"`
	InvoiceNumber string          `json:"invoice_number,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// BatchResponse lote para listados y respuestas de recepción.
type BatchResponse struct {
	ID            string          `json:"id"`
	RawMaterialID string          `json:"raw_material_id"`
	Initial       decimal.Decimal `json:"initial_quantity"`
	Remaining     decimal.Decimal `json:"remaining_quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	ReceivedAt    time.Time       `json:"received_at"`
	ExpiresAt     *time.Time      `json:"expires_at,omitempty"`
	LotNumber     string          `json:"lot_number,omitempty"`
	InvoiceNumber string          `json:"invoice_number,omitempty"`
}
