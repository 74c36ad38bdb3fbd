package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-chatbot/internal/domain"
	"github.com/jhoicas/inventario-chatbot/internal/domain/entity"
	"github.com/jhoicas/inventario-chatbot/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, stock_quantity, location, unit_cost, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.StockQuantity, product.Location,
		product.UnitCost, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByName obtiene un producto por nombre exacto.
func (r *ProductRepo) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	return r.getByName(ctx, `SELECT `+productColumns+` FROM products WHERE name = $1`, name)
}

// GetByNameForUpdate igual que GetByName pero bloquea la fila (solo tiene efecto dentro de una tx).
func (r *ProductRepo) GetByNameForUpdate(ctx context.Context, name string) (*entity.Product, error) {
	return r.getByName(ctx, `SELECT `+productColumns+` FROM products WHERE name = $1 FOR UPDATE`, name)
}

func (r *ProductRepo) getByName(ctx context.Context, query, name string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, query, name).Scan(
		&p.ID, &p.Name, &p.StockQuantity, &p.Location, &p.UnitCost, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// AddStock suma delta en la misma sentencia para no perder ajustes concurrentes.
func (r *ProductRepo) AddStock(ctx context.Context, productID string, delta int) (int, error) {
	var qty int
	err := r.q.QueryRow(ctx,
		`UPDATE products SET stock_quantity = stock_quantity + $2, updated_at = now()
		 WHERE id = $1 RETURNING stock_quantity`,
		productID, delta,
	).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("update stock: %w", err)
	}
	return qty, nil
}

// ListNames devuelve todos los nombres ordenados alfabéticamente.
func (r *ProductRepo) ListNames(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT name FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list product names: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan product names: %w", err)
	}
	return names, nil
}
