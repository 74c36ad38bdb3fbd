package inventory

import (
	"context"

	"github.com/jhoicas/inventario-chatbot/internal/domain/entity"
	"github.com/jhoicas/inventario-chatbot/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil; Rollback en cualquier otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
	) error) error
}

// SchemaManager crea las relaciones del almacén y siembra el catálogo inicial.
type SchemaManager interface {
	EnsureSchema(ctx context.Context) error
	// SeedProducts inserta los productos cuyo nombre no exista y devuelve cuántos insertó.
	SeedProducts(ctx context.Context, products []*entity.Product) (int, error)
}
