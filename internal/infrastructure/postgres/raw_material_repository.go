package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/donaflor/panaderia-api/internal/domain"
	"github.com/donaflor/panaderia-api/internal/domain/entity"
	"github.com/donaflor/panaderia-api/internal/domain/repository"
)

var _ repository.RawMaterialRepository = (*RawMaterialRepo)(nil)

// RawMaterialRepo catálogo de insumos sobre PostgreSQL (usable con pool o tx).
type RawMaterialRepo struct {
	q Querier
}

// NewRawMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRawMaterialRepository(q Querier) *RawMaterialRepo {
	return &RawMaterialRepo{q: q}
}

const rawMaterialColumns = `id, company_id, name, unit, stock_unit, conversion_factor,
		min_stock_alert, standard_cost, last_cost, produced_by_product_id, created_at, updated_at`

// Create persiste un insumo. La unicidad de produced_by_product_id la
// garantiza un índice único parcial; una violación se reporta como duplicado.
func (r *RawMaterialRepo) Create(ctx context.Context, material *entity.RawMaterial) error {
	if material.ID == "" {
		material.ID = uuid.New().String()
	}
	query := `
		INSERT INTO raw_materials (id, company_id, name, unit, stock_unit, conversion_factor,
			min_stock_alert, standard_cost, last_cost, produced_by_product_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		material.ID, material.CompanyID, material.Name, material.Unit, material.StockUnit,
		material.ConversionFactor, material.MinStockAlert, material.StandardCost, material.LastCost,
		material.ProducedByProductID, material.CreatedAt, material.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create raw material: %w", err)
	}
	return nil
}

// GetByID obtiene un insumo por ID; nil si no existe.
func (r *RawMaterialRepo) GetByID(ctx context.Context, id string) (*entity.RawMaterial, error) {
	query := `SELECT ` + rawMaterialColumns + ` FROM raw_materials WHERE id = $1`
	m, err := scanRawMaterial(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get raw material: %w", err)
	}
	return m, nil
}

// GetByProducedProduct busca el insumo virtual enlazado al producto; nil si no existe.
func (r *RawMaterialRepo) GetByProducedProduct(ctx context.Context, productID string) (*entity.RawMaterial, error) {
	query := `SELECT ` + rawMaterialColumns + ` FROM raw_materials WHERE produced_by_product_id = $1`
	m, err := scanRawMaterial(r.q.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get raw material by product: %w", err)
	}
	return m, nil
}

// Update actualiza los campos editables del insumo.
func (r *RawMaterialRepo) Update(ctx context.Context, material *entity.RawMaterial) error {
	query := `
		UPDATE raw_materials
		SET name = $2, unit = $3, stock_unit = $4, conversion_factor = $5,
			min_stock_alert = $6, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		material.ID, material.Name, material.Unit, material.StockUnit,
		material.ConversionFactor, material.MinStockAlert,
	)
	if err != nil {
		return fmt.Errorf("update raw material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateCosts actualiza costo estándar y último costo conocido.
func (r *RawMaterialRepo) UpdateCosts(ctx context.Context, id string, standardCost, lastCost decimal.Decimal) error {
	query := `
		UPDATE raw_materials
		SET standard_cost = $2, last_cost = $3, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, standardCost, lastCost)
	if err != nil {
		return fmt.Errorf("update raw material costs: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany insumos de una empresa, ordenados por nombre.
func (r *RawMaterialRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.RawMaterial, error) {
	query := `
		SELECT ` + rawMaterialColumns + `
		FROM raw_materials
		WHERE company_id = $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`
	return r.queryMaterials(ctx, query, companyID, limit, offset)
}

// ListBelowMinimum insumos cuyo stock total está por debajo del umbral de alerta.
func (r *RawMaterialRepo) ListBelowMinimum(ctx context.Context, companyID string) ([]*entity.RawMaterial, error) {
	query := `
		SELECT ` + rawMaterialColumns + `
		FROM raw_materials rm
		WHERE rm.company_id = $1
		  AND rm.min_stock_alert > 0
		  AND COALESCE((SELECT SUM(b.remaining_quantity) FROM batches b WHERE b.raw_material_id = rm.id), 0) < rm.min_stock_alert
		ORDER BY rm.name ASC`
	return r.queryMaterials(ctx, query, companyID)
}

func (r *RawMaterialRepo) queryMaterials(ctx context.Context, query string, args ...any) ([]*entity.RawMaterial, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list raw materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.RawMaterial
	for rows.Next() {
		m, err := scanRawMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan raw material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanRawMaterial(row pgx.Row) (*entity.RawMaterial, error) {
	var m entity.RawMaterial
	err := row.Scan(
		&m.ID, &m.CompanyID, &m.Name, &m.Unit, &m.StockUnit, &m.ConversionFactor,
		&m.MinStockAlert, &m.StandardCost, &m.LastCost, &m.ProducedByProductID,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
