// Package inventorytest provee un almacén en memoria que implementa los puertos del inventario
// con semántica transaccional (todo o nada) para pruebas de casos de uso y transportes.
package inventorytest

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-chatbot/internal/application/inventory"
	"github.com/jhoicas/inventario-chatbot/internal/domain"
	"github.com/jhoicas/inventario-chatbot/internal/domain/entity"
	"github.com/jhoicas/inventario-chatbot/internal/domain/repository"
)

var (
	_ inventory.TxRunner            = (*Store)(nil)
	_ inventory.SchemaManager       = (*Store)(nil)
	_ repository.ProductRepository  = (*productView)(nil)
	_ repository.MovementRepository = (*movementView)(nil)
)

// Store almacén en memoria. Los campos Fail* inyectan errores en la operación correspondiente.
type Store struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	movements []*entity.Movement

	SchemaCalls int

	FailGetByName      error
	FailCreateProduct  error
	FailAddStock       error
	FailCreateMovement error
	FailListNames      error
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{products: map[string]*entity.Product{}}
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() repository.ProductRepository { return &productView{s: s, lock: true} }

// Movements repositorio de movimientos fuera de transacción.
func (s *Store) Movements() repository.MovementRepository { return &movementView{s: s, lock: true} }

// Put inserta un producto directamente (sin validaciones) y lo devuelve con ID asignado.
func (s *Store) Put(p entity.Product) *entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	cp := p
	s.products[cp.ID] = &cp
	return &cp
}

// Snapshot copia de un producto por nombre (nil si no existe).
func (s *Store) Snapshot(name string) *entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p := s.findByName(name); p != nil {
		cp := *p
		return &cp
	}
	return nil
}

// MovementsOf movimientos de un producto en orden de inserción.
func (s *Store) MovementsOf(productID string) []entity.Movement {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.Movement
	for _, m := range s.movements {
		if m.ProductID == productID {
			out = append(out, *m)
		}
	}
	return out
}

// MovementCount total de movimientos registrados.
func (s *Store) MovementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movements)
}

// Run ejecuta fn con el almacén bloqueado; si fn falla se restaura el estado previo.
func (s *Store) Run(ctx context.Context, fn func(repository.ProductRepository, repository.MovementRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := make(map[string]*entity.Product, len(s.products))
	for id, p := range s.products {
		cp := *p
		products[id] = &cp
	}
	movements := append([]*entity.Movement(nil), s.movements...)

	if err := fn(&productView{s: s}, &movementView{s: s}); err != nil {
		s.products = products
		s.movements = movements
		return err
	}
	return nil
}

// EnsureSchema solo cuenta llamadas.
func (s *Store) EnsureSchema(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SchemaCalls++
	return nil
}

// SeedProducts inserta los productos cuyo nombre no exista.
func (s *Store) SeedProducts(ctx context.Context, products []*entity.Product) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, p := range products {
		if s.findByName(p.Name) != nil {
			continue
		}
		cp := *p
		s.products[cp.ID] = &cp
		n++
	}
	return n, nil
}

func (s *Store) findByName(name string) *entity.Product {
	for _, p := range s.products {
		if p.Name == name {
			return p
		}
	}
	return nil
}

func (s *Store) guard(lock bool) func() {
	if !lock {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type productView struct {
	s    *Store
	lock bool
}

func (v *productView) Create(ctx context.Context, product *entity.Product) error {
	defer v.s.guard(v.lock)()
	if v.s.FailCreateProduct != nil {
		return v.s.FailCreateProduct
	}
	if v.s.findByName(product.Name) != nil {
		return domain.ErrDuplicate
	}
	cp := *product
	v.s.products[cp.ID] = &cp
	return nil
}

func (v *productView) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	defer v.s.guard(v.lock)()
	if v.s.FailGetByName != nil {
		return nil, v.s.FailGetByName
	}
	if p := v.s.findByName(name); p != nil {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (v *productView) GetByNameForUpdate(ctx context.Context, name string) (*entity.Product, error) {
	return v.GetByName(ctx, name)
}

func (v *productView) AddStock(ctx context.Context, productID string, delta int) (int, error) {
	defer v.s.guard(v.lock)()
	if v.s.FailAddStock != nil {
		return 0, v.s.FailAddStock
	}
	p, ok := v.s.products[productID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	p.StockQuantity += delta
	return p.StockQuantity, nil
}

func (v *productView) ListNames(ctx context.Context) ([]string, error) {
	defer v.s.guard(v.lock)()
	if v.s.FailListNames != nil {
		return nil, v.s.FailListNames
	}
	names := make([]string, 0, len(v.s.products))
	for _, p := range v.s.products {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names, nil
}

type movementView struct {
	s    *Store
	lock bool
}

func (v *movementView) Create(ctx context.Context, movement *entity.Movement) error {
	defer v.s.guard(v.lock)()
	if v.s.FailCreateMovement != nil {
		return v.s.FailCreateMovement
	}
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	cp := *movement
	v.s.movements = append(v.s.movements, &cp)
	return nil
}

func (v *movementView) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.Movement, error) {
	defer v.s.guard(v.lock)()
	var list []*entity.Movement
	for i := len(v.s.movements) - 1; i >= 0; i-- {
		if m := v.s.movements[i]; m.ProductID == productID {
			cp := *m
			list = append(list, &cp)
		}
	}
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (v *movementView) CountByProduct(ctx context.Context, productID string) (int, error) {
	defer v.s.guard(v.lock)()
	n := 0
	for _, m := range v.s.movements {
		if m.ProductID == productID {
			n++
		}
	}
	return n, nil
}

// NewUseCase arma un inventory.UseCase completo sobre el almacén en memoria.
func (s *Store) NewUseCase() *inventory.UseCase {
	return inventory.NewUseCase(s, s.Products(), s.Movements(), s)
}
