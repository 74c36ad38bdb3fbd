package repository

import (
	"context"

	"github.com/jhoicas/inventario-chatbot/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get devuelven (nil, nil) cuando no hay fila.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	// GetByNameForUpdate bloquea la fila hasta el fin de la transacción.
	GetByNameForUpdate(ctx context.Context, name string) (*entity.Product, error)
	// AddStock suma delta al stock y devuelve la cantidad resultante.
	AddStock(ctx context.Context, productID string, delta int) (int, error)
	ListNames(ctx context.Context) ([]string, error)
}
