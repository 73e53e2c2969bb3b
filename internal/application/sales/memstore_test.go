package sales_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/despensa-solidaria/pos-api/internal/domain/entity"
	domaininv "github.com/despensa-solidaria/pos-api/internal/domain/inventory"
	"github.com/despensa-solidaria/pos-api/internal/domain/repository"
)

// memStore es la implementación en memoria de todos los repositorios que los
// casos de uso de ventas necesitan. Sin bloqueo de filas ni rollback: los
// tests validan la lógica de liquidación, la atomicidad la aporta PostgreSQL.
type memStore struct {
	products  map[string]*entity.Product
	batches   map[string]*entity.Batch
	movements []*entity.Movement
	sales     map[string]*entity.Sale
	items     map[string][]*entity.SaleItem
	customers map[string]*entity.Customer
}

func newMemStore() *memStore {
	return &memStore{
		products:  make(map[string]*entity.Product),
		batches:   make(map[string]*entity.Batch),
		sales:     make(map[string]*entity.Sale),
		items:     make(map[string][]*entity.SaleItem),
		customers: make(map[string]*entity.Customer),
	}
}

// RunSale implementa sales.SaleTxRunner.
func (s *memStore) RunSale(_ context.Context, fn func(
	batchRepo repository.BatchRepository,
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return fn(&memBatchRepo{s}, &memProductRepo{s}, &memMovementRepo{s}, &memSaleRepo{s})
}

func (s *memStore) addProduct(id string, price int64, taxable bool) *entity.Product {
	p := &entity.Product{
		ID:      id,
		Name:    "Producto " + id,
		Price:   decimal.NewFromInt(price),
		Taxable: taxable,
		Active:  true,
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

func (s *memStore) addCustomer(id, name string) *entity.Customer {
	c := &entity.Customer{ID: id, Name: name}
	s.customers[id] = c
	return c
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

type memSaleRepo struct{ s *memStore }

func (r *memSaleRepo) Create(sale *entity.Sale) error {
	cp := *sale
	r.s.sales[sale.ID] = &cp
	return nil
}

func (r *memSaleRepo) CreateItem(item *entity.SaleItem) error {
	cp := *item
	r.s.items[item.SaleID] = append(r.s.items[item.SaleID], &cp)
	return nil
}

func (r *memSaleRepo) GetByID(id string) (*entity.Sale, error) {
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *sale
	return &cp, nil
}

func (r *memSaleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	return r.GetByID(id)
}

func (r *memSaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	for _, item := range r.s.items[saleID] {
		cp := *item
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memSaleRepo) UpdatePayment(id string, amountPaid decimal.Decimal, status, descriptor string) error {
	if sale, ok := r.s.sales[id]; ok {
		sale.AmountPaid = amountPaid
		sale.Status = status
		sale.PaymentDescriptor = descriptor
	}
	return nil
}

func (r *memSaleRepo) UpdateStatus(id string, status, descriptor string) error {
	if sale, ok := r.s.sales[id]; ok {
		sale.Status = status
		sale.PaymentDescriptor = descriptor
	}
	return nil
}

func (r *memSaleRepo) List(status string, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, sale := range r.s.sales {
		if status != "" && sale.Status != status {
			continue
		}
		cp := *sale
		out = append(out, &cp)
	}
	return out, nil
}

type memCustomerRepo struct{ s *memStore }

func (r *memCustomerRepo) Create(customer *entity.Customer) error {
	cp := *customer
	r.s.customers[customer.ID] = &cp
	return nil
}

func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memCustomerRepo) GetByDocument(documentID string) (*entity.Customer, error) {
	for _, c := range r.s.customers {
		if c.DocumentID == documentID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.s.customers {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

// fixedRates implementa sales.RateProvider con valores fijos.
type fixedRates struct {
	current  decimal.Decimal
	fallback decimal.Decimal
}

func (f fixedRates) Current() decimal.Decimal  { return f.current }
func (f fixedRates) Fallback() decimal.Decimal { return f.fallback }
