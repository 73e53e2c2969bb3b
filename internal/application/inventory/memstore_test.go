package inventory_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/despensa-solidaria/pos-api/internal/domain/entity"
	domaininv "github.com/despensa-solidaria/pos-api/internal/domain/inventory"
	"github.com/despensa-solidaria/pos-api/internal/domain/repository"
)

// memStore es una implementación en memoria de los repositorios de
// inventario para probar el motor sin base de datos. No simula bloqueo de
// filas: los tests de concurrencia real viven en el nivel de integración.
type memStore struct {
	products  map[string]*entity.Product
	batches   map[string]*entity.Batch
	movements []*entity.Movement
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[string]*entity.Product),
		batches:  make(map[string]*entity.Batch),
	}
}

// Run implementa inventory.TxRunner sin transacción real: los tests validan
// la lógica del motor, la atomicidad la aporta PostgreSQL.
func (s *memStore) Run(_ context.Context, fn func(
	batchRepo repository.BatchRepository,
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
) error) error {
	return fn(&memBatchRepo{s}, &memProductRepo{s}, &memMovementRepo{s})
}

// txDeps agrupa los repositorios que el motor recibe dentro de una tx.
type txDeps struct {
	batches   repository.BatchRepository
	products  repository.ProductRepository
	movements repository.MovementRepository
}

func runInTx(s *memStore, fn func(deps txDeps) error) error {
	return s.Run(context.Background(), func(
		batchRepo repository.BatchRepository,
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
	) error {
		return fn(txDeps{batches: batchRepo, products: productRepo, movements: movRepo})
	})
}

func (s *memStore) addProduct(id string, price int64) *entity.Product {
	p := &entity.Product{
		ID:     id,
		Name:   "Producto " + id,
		Price:  decimal.NewFromInt(price),
		Active: true,
	}
	s.products[id] = p
	return p
}

func (s *memStore) addBatch(id, productID string, qty int64, expiresAt *time.Time) *entity.Batch {
	b := &entity.Batch{
		ID:        id,
		ProductID: productID,
		Label:     "LOTE-" + id,
		Quantity:  decimal.NewFromInt(qty),
		ExpiresAt: expiresAt,
		UnitCost:  decimal.NewFromInt(1),
		CreatedAt: time.Now(),
	}
	s.batches[id] = b
	if p, ok := s.products[productID]; ok {
		p.Stock = p.Stock.Add(b.Quantity)
	}
	return b
}

func (s *memStore) productBatches(productID string) []entity.Batch {
	var out []entity.Batch
	for _, b := range s.batches {
		if b.ProductID == productID {
			out = append(out, *b)
		}
	}
	domaininv.SortFEFO(out)
	return out
}

type memBatchRepo struct{ s *memStore }

func (r *memBatchRepo) Create(batch *entity.Batch) error {
	cp := *batch
	r.s.batches[batch.ID] = &cp
	return nil
}

func (r *memBatchRepo) ListByProduct(productID string) ([]entity.Batch, error) {
	return r.s.productBatches(productID), nil
}

func (r *memBatchRepo) ListForUpdate(productID string) ([]entity.Batch, error) {
	return r.s.productBatches(productID), nil
}

func (r *memBatchRepo) UpdateQuantity(batchID string, quantity decimal.Decimal) error {
	if b, ok := r.s.batches[batchID]; ok {
		b.Quantity = quantity
	}
	return nil
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(product *entity.Product) error {
	cp := *product
	r.s.products[product.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *memProductRepo) Update(product *entity.Product) error {
	if p, ok := r.s.products[product.ID]; ok {
		*p = *product
	}
	return nil
}

func (r *memProductRepo) UpdateStock(productID string, stock decimal.Decimal) error {
	if p, ok := r.s.products[productID]; ok {
		p.Stock = stock
	}
	return nil
}

func (r *memProductRepo) List(onlyActive bool, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if onlyActive && !p.Active {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(movement *entity.Movement) error {
	cp := *movement
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *memMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}
