package repository

import (
	"context"

	"github.com/jhoicas/inventario-chatbot/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para movimientos (solo inserción y lectura).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.Movement, error)
	CountByProduct(ctx context.Context, productID string) (int, error)
}
