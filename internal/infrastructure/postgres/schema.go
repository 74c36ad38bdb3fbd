package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventario-chatbot/internal/application/inventory"
	"github.com/jhoicas/inventario-chatbot/internal/domain/entity"
)

var _ inventory.SchemaManager = (*Schema)(nil)

// schemaDDL crea las relaciones del almacén. Es idempotente.
// seq desempata movimientos con el mismo created_at.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id             UUID PRIMARY KEY,
		name           TEXT NOT NULL UNIQUE CHECK (btrim(name) <> ''),
		stock_quantity INTEGER NOT NULL DEFAULT 0,
		location       TEXT NOT NULL DEFAULT 'PENDIENTE',
		unit_cost      NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (unit_cost >= 0),
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS movements (
		id         UUID PRIMARY KEY,
		seq        BIGSERIAL NOT NULL,
		product_id UUID NOT NULL REFERENCES products(id),
		type       TEXT NOT NULL CHECK (type IN ('ENTRADA', 'SALIDA')),
		quantity   INTEGER NOT NULL CHECK (quantity > 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_movements_product_created ON movements (product_id, created_at DESC)`,
}

// Schema gestiona las tablas del almacén y el catálogo inicial.
type Schema struct {
	pool *pgxpool.Pool
}

// NewSchema construye el gestor de esquema.
func NewSchema(pool *pgxpool.Pool) *Schema {
	return &Schema{pool: pool}
}

// EnsureSchema ejecuta el DDL en una sola transacción.
func (s *Schema) EnsureSchema(ctx context.Context) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		for _, stmt := range schemaDDL {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("ejecutar DDL: %w", err)
			}
		}
		return nil
	})
}

// SeedProducts inserta en lote los productos que no existan (por nombre).
func (s *Schema) SeedProducts(ctx context.Context, products []*entity.Product) (int, error) {
	batch := &pgx.Batch{}
	for _, p := range products {
		batch.Queue(`
			INSERT INTO products (`+productColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (name) DO NOTHING`,
			p.ID, p.Name, p.StockQuantity, p.Location, p.UnitCost, p.CreatedAt, p.UpdatedAt,
		)
	}

	inserted := 0
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		br := tx.SendBatch(ctx, batch)
		for range products {
			tag, err := br.Exec()
			if err != nil {
				_ = br.Close()
				return fmt.Errorf("insertar semilla: %w", err)
			}
			inserted += int(tag.RowsAffected())
		}
		return br.Close()
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
