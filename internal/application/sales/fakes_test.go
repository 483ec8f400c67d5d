package sales_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/entity"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El txRunner simula la atomicidad de la transacción real:
// snapshotea el estado antes de ejecutar el callback y lo restaura si falla,
// igual que un ROLLBACK.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	mu       sync.Mutex
	products map[string]*entity.Product
	sales    map[string]*entity.Sale
	returns  []*entity.Return
	counters map[string]int

	failCounter bool
	failSale    bool
}

func newFakeStore(products ...*entity.Product) *fakeStore {
	s := &fakeStore{
		products: make(map[string]*entity.Product),
		sales:    make(map[string]*entity.Sale),
		counters: make(map[string]int),
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *fakeStore) snapshot() []byte {
	b, _ := json.Marshal(struct {
		Products map[string]*entity.Product
		Sales    map[string]*entity.Sale
		Returns  []*entity.Return
		Counters map[string]int
	}{s.products, s.sales, s.returns, s.counters})
	return b
}

func (s *fakeStore) restore(b []byte) {
	var snap struct {
		Products map[string]*entity.Product
		Sales    map[string]*entity.Sale
		Returns  []*entity.Return
		Counters map[string]int
	}
	_ = json.Unmarshal(b, &snap)
	s.products, s.sales, s.returns, s.counters = snap.Products, snap.Sales, snap.Returns, snap.Counters
}

func (s *fakeStore) variantStock(productID, size, color string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.products[productID]
	for _, v := range p.Variants {
		if v.Size == size && v.Color == color {
			return v.Stock
		}
	}
	return -1
}

// ── ProductRepository ────────────────────────────────────────────────────────

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) clone(p *entity.Product) *entity.Product {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Variants = append([]entity.Variant(nil), p.Variants...)
	return &cp
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[p.ID] = r.clone(p)
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.clone(r.s.products[id]), nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	return r.Create(p)
}

func (r *fakeProductRepo) UpdateVariants(productID string, variants []entity.Variant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok {
		return errors.New("producto inexistente")
	}
	p.Variants = append([]entity.Variant(nil), variants...)
	return nil
}

func (r *fakeProductRepo) Search(string, int, int) ([]*entity.Product, error)  { return nil, nil }
func (r *fakeProductRepo) List(int, int) ([]*entity.Product, error)           { return nil, nil }
func (r *fakeProductRepo) ListByCategory(string) ([]*entity.Product, error)   { return nil, nil }
func (r *fakeProductRepo) Delete(id string) error                             { return nil }

// ── SaleRepository ───────────────────────────────────────────────────────────

type fakeSaleRepo struct{ s *fakeStore }

func (r *fakeSaleRepo) Create(sale *entity.Sale) error {
	if r.s.failSale {
		return errors.New("fallo simulado de persistencia")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sales[sale.ID] = sale
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.sales[id], nil
}

func (r *fakeSaleRepo) GetBySaleNumber(number string) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sale := range r.s.sales {
		if sale.SaleNumber == number {
			return sale, nil
		}
	}
	return nil, nil
}

func (r *fakeSaleRepo) List(int, int) ([]*entity.Sale, error)         { return nil, nil }
func (r *fakeSaleRepo) ListByDay(time.Time) ([]*entity.Sale, error)   { return nil, nil }

// ── SaleCounterRepository ────────────────────────────────────────────────────

type fakeCounterRepo struct{ s *fakeStore }

func (r *fakeCounterRepo) Next(day string) (int, error) {
	if r.s.failCounter {
		return 0, errors.New("secuencia caída")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.counters[day]++
	return r.s.counters[day], nil
}

// ── ReturnRepository ─────────────────────────────────────────────────────────

type fakeReturnRepo struct{ s *fakeStore }

func (r *fakeReturnRepo) Create(ret *entity.Return) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.returns = append(r.s.returns, ret)
	return nil
}

func (r *fakeReturnRepo) ListBySale(saleID string) ([]*entity.Return, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Return
	for _, ret := range r.s.returns {
		if ret.SaleID == saleID {
			out = append(out, ret)
		}
	}
	return out, nil
}

func (r *fakeReturnRepo) List(int, int) ([]*entity.Return, error) { return nil, nil }

// ── TxRunner ─────────────────────────────────────────────────────────────────

type fakeTxRunner struct{ s *fakeStore }

func (t *fakeTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	counterRepo repository.SaleCounterRepository,
	returnRepo repository.ReturnRepository,
) error) error {
	snap := t.s.snapshot()
	err := fn(&fakeProductRepo{t.s}, &fakeSaleRepo{t.s}, &fakeCounterRepo{t.s}, &fakeReturnRepo{t.s})
	if err != nil {
		t.s.restore(snap)
	}
	return err
}

// ── StatsRecorder ────────────────────────────────────────────────────────────

type fakeStats struct {
	mu     sync.Mutex
	called chan struct{}
	fail   bool

	name  string
	total decimal.Decimal
}

func newFakeStats() *fakeStats {
	return &fakeStats{called: make(chan struct{}, 1)}
}

func (f *fakeStats) RecordPurchase(_ context.Context, name string, total decimal.Decimal, _ time.Time) error {
	f.mu.Lock()
	f.name, f.total = name, total
	f.mu.Unlock()
	f.called <- struct{}{}
	if f.fail {
		return errors.New("CRM caído")
	}
	return nil
}
