package inventory

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-chatbot/internal/domain"
	"github.com/jhoicas/inventario-chatbot/internal/domain/entity"
	"github.com/jhoicas/inventario-chatbot/internal/domain/inventory"
	"github.com/jhoicas/inventario-chatbot/internal/domain/repository"
)

// UseCase operaciones del almacén de inventario: consulta, ajuste por delta con auditoría,
// alta de productos y sugerencias por similitud.
type UseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.MovementRepository
	schema      SchemaManager
	now         func() time.Time
}

// NewUseCase construye el caso de uso. productRepo y movRepo trabajan sobre el pool (lecturas y altas);
// los ajustes de stock pasan siempre por txRunner.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
	schema SchemaManager,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		movRepo:     movRepo,
		schema:      schema,
		now:         time.Now,
	}
}

// CreateProductInput entrada para dar de alta un producto.
type CreateProductInput struct {
	Name         string
	InitialStock int
	UnitCost     decimal.Decimal
	Location     string
}

// StockUpdate resultado de un ajuste de stock aplicado.
type StockUpdate struct {
	Product  *entity.Product
	Movement *entity.Movement
	Delta    int
}

// Initialize crea las relaciones si no existen y, si seed es true, inserta el catálogo inicial
// sin duplicar filas. Devuelve cuántos productos se sembraron.
func (uc *UseCase) Initialize(ctx context.Context, seed bool) (int, error) {
	if err := uc.schema.EnsureSchema(ctx); err != nil {
		return 0, fmt.Errorf("crear esquema: %w", err)
	}
	if !seed {
		return 0, nil
	}
	now := uc.now()
	catalog := SeedCatalog()
	for _, p := range catalog {
		p.ID = uuid.New().String()
		p.CreatedAt = now
		p.UpdatedAt = now
	}
	n, err := uc.schema.SeedProducts(ctx, catalog)
	if err != nil {
		return 0, fmt.Errorf("sembrar catálogo: %w", err)
	}
	return n, nil
}

// GetStock busca un producto por nombre exacto. ErrNotFound si no existe.
func (uc *UseCase) GetStock(ctx context.Context, name string) (*entity.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.productRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// UpdateStock suma delta al stock del producto y registra el movimiento en la misma transacción.
// La fila del producto queda bloqueada (SELECT FOR UPDATE) hasta el commit, así que ajustes
// concurrentes sobre el mismo producto se serializan.
// delta == 0 devuelve ErrNoOp sin tocar el almacén; un delta fuera del rango de INTEGER
// devuelve ErrInvalidInput antes de abrir la transacción.
func (uc *UseCase) UpdateStock(ctx context.Context, name string, delta int) (*StockUpdate, error) {
	name = strings.TrimSpace(name)
	if name == "" || !fitsInteger(delta) {
		return nil, domain.ErrInvalidInput
	}
	if delta == 0 {
		return nil, domain.ErrNoOp
	}

	var out *StockUpdate
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.MovementRepository) error {
		product, err := productRepo.GetByNameForUpdate(ctx, name)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		now := uc.now()
		newQty, err := productRepo.AddStock(ctx, product.ID, delta)
		if err != nil {
			return err
		}
		mov := entity.NewMovement(product.ID, delta, now)
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}

		product.StockQuantity = newQty
		product.UpdatedAt = now
		out = &StockUpdate{Product: product, Movement: mov, Delta: delta}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProduct da de alta un producto. El stock inicial es saldo de apertura: no genera movimiento.
// El costo se redondea a 2 decimales, la escala de la columna unit_cost.
func (uc *UseCase) CreateProduct(ctx context.Context, in CreateProductInput) (*entity.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.InitialStock < 0 || !fitsInteger(in.InitialStock) || in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	location := strings.TrimSpace(in.Location)
	if location == "" {
		location = entity.LocationUnassigned
	}

	existing, err := uc.productRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := uc.now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Name:          name,
		StockQuantity: in.InitialStock,
		Location:      location,
		UnitCost:      in.UnitCost.Round(entity.UnitCostScale),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	// El repositorio traduce la violación de unicidad a ErrDuplicate si otro alta gana la carrera.
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// SuggestSimilar compara name contra todos los nombres del almacén y devuelve hasta 5
// candidatos con similitud >= 0.6, de mayor a menor.
func (uc *UseCase) SuggestSimilar(ctx context.Context, name string) ([]inventory.Match, error) {
	names, err := uc.productRepo.ListNames(ctx)
	if err != nil {
		return nil, err
	}
	return inventory.CloseMatches(strings.TrimSpace(name), names, inventory.SuggestionLimit, inventory.SuggestionCutoff), nil
}

// ListMovements devuelve el historial de movimientos de un producto, del más reciente al más antiguo.
func (uc *UseCase) ListMovements(ctx context.Context, name string, limit, offset int) (*entity.Product, []*entity.Movement, error) {
	product, err := uc.GetStock(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	limit, offset = NormalizePage(limit, offset)
	movements, err := uc.movRepo.ListByProduct(ctx, product.ID, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	return product, movements, nil
}

// CountMovements total de movimientos de un producto (para paginar).
func (uc *UseCase) CountMovements(ctx context.Context, productID string) (int, error) {
	return uc.movRepo.CountByProduct(ctx, productID)
}

// Límites de paginación del historial.
const (
	DefaultMovementLimit = 20
	MaxMovementLimit     = 100
)

// NormalizePage aplica el límite por defecto, el tope y un offset no negativo.
func NormalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultMovementLimit
	}
	if limit > MaxMovementLimit {
		limit = MaxMovementLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// fitsInteger indica si n cabe en una columna INTEGER de PostgreSQL (int32).
func fitsInteger(n int) bool {
	return n >= math.MinInt32 && n <= math.MaxInt32
}
