package service

import (
	"context"
	"sync"

	"github.com/bazarlivre/pos-api/internal/domain/entity"
	"github.com/bazarlivre/pos-api/internal/domain/repository"
	"github.com/bazarlivre/pos-api/pkg/pagination"
	"github.com/google/uuid"
)

// fakeCustomerRepo is an in-memory CustomerRepository keyed by normalized name.
type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers map[string]*entity.Customer
	upserts   int
	failNext  error
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[string]*entity.Customer)}
}

func (f *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	return f.Upsert(nil, c)
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.customers {
		if c.ID == id {
			out := *c
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerRepo) GetByName(_ context.Context, name string) (*entity.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.customers[name]
	if !ok {
		return nil, nil
	}
	out := *c
	return &out, nil
}

func (f *fakeCustomerRepo) Upsert(_ context.Context, c *entity.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}
	f.upserts++
	if existing, ok := f.customers[c.Name]; ok {
		existing.Phone = c.Phone
		c.ID = existing.ID
		return nil
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	stored := *c
	f.customers[c.Name] = &stored
	return nil
}

func (f *fakeCustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	return f.Upsert(ctx, c)
}

func (f *fakeCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for name, c := range f.customers {
		if c.ID == id {
			delete(f.customers, name)
		}
	}
	return nil
}

func (f *fakeCustomerRepo) List(_ context.Context, _ *pagination.PaginationParams, _ string) ([]entity.Customer, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.Customer, 0, len(f.customers))
	for _, c := range f.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

// fakeProductRepo is an in-memory ProductRepository.
type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo(products ...entity.Product) *fakeProductRepo {
	f := &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
	for i := range products {
		p := products[i]
		f.products[p.ID] = &p
	}
	return f
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	stored := *p
	f.products[p.ID] = &stored
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	out := *p
	return &out, nil
}

func (f *fakeProductRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *p
	f.products[p.ID] = &stored
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) List(_ context.Context, _ *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	all, _ := f.ListAll(nil)
	return all, int64(len(all)), nil
}

func (f *fakeProductRepo) ListAll(_ context.Context) ([]entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProductRepo) AtomicDecrementBatch(_ context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.decrementLocked(decrements), nil
}

// decrementLocked applies the decrements only when every product has enough
// stock, mirroring the all-or-nothing transaction.
func (f *fakeProductRepo) decrementLocked(decrements map[uuid.UUID]int) []uuid.UUID {
	var failed []uuid.UUID
	for id, amount := range decrements {
		p, ok := f.products[id]
		if !ok || p.Quantity < amount {
			failed = append(failed, id)
		}
	}
	if len(failed) > 0 {
		return failed
	}
	for id, amount := range decrements {
		f.products[id].Quantity -= amount
	}
	return nil
}

func (f *fakeProductRepo) AtomicIncrementBatch(_ context.Context, increments map[uuid.UUID]int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, amount := range increments {
		if p, ok := f.products[id]; ok {
			p.Quantity += amount
		}
	}
	return nil
}

// fakePromotionRepo is an in-memory PromotionRepository.
type fakePromotionRepo struct {
	mu         sync.Mutex
	promotions []entity.Promotion
}

func newFakePromotionRepo(promotions ...entity.Promotion) *fakePromotionRepo {
	return &fakePromotionRepo{promotions: promotions}
}

func (f *fakePromotionRepo) Create(_ context.Context, p *entity.Promotion) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.promotions = append(f.promotions, *p)
	return nil
}

func (f *fakePromotionRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Promotion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.promotions {
		if f.promotions[i].ID == id {
			out := f.promotions[i]
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakePromotionRepo) Update(_ context.Context, p *entity.Promotion) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.promotions {
		if f.promotions[i].ID == p.ID {
			f.promotions[i] = *p
		}
	}
	return nil
}

func (f *fakePromotionRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.promotions[:0]
	for _, p := range f.promotions {
		if p.ID != id {
			out = append(out, p)
		}
	}
	f.promotions = out
	return nil
}

func (f *fakePromotionRepo) List(_ context.Context, _ *pagination.PaginationParams, _ string) ([]entity.Promotion, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]entity.Promotion(nil), f.promotions...)
	return out, int64(len(out)), nil
}

func (f *fakePromotionRepo) ListActive(_ context.Context) ([]entity.Promotion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Promotion
	for _, p := range f.promotions {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

// fakeSaleRepo is an in-memory SaleRepository backed by the product fake so
// create-with-decrement behaves like the real transaction.
type fakeSaleRepo struct {
	mu       sync.Mutex
	sales    map[string]*entity.Sale
	products *fakeProductRepo
}

func newFakeSaleRepo(products *fakeProductRepo) *fakeSaleRepo {
	return &fakeSaleRepo{sales: make(map[string]*entity.Sale), products: products}
}

func (f *fakeSaleRepo) Create(_ context.Context, sale *entity.Sale, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	f.products.mu.Lock()
	failed := f.products.decrementLocked(decrements)
	f.products.mu.Unlock()
	if len(failed) > 0 {
		return failed, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *sale
	f.sales[sale.Code] = &stored
	return nil, nil
}

func (f *fakeSaleRepo) GetByCode(_ context.Context, code string) (*entity.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sales[code]
	if !ok {
		return nil, nil
	}
	out := *s
	out.Items = append([]entity.SaleItem(nil), s.Items...)
	return &out, nil
}

func (f *fakeSaleRepo) Update(_ context.Context, sale *entity.Sale) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *sale
	f.sales[sale.Code] = &stored
	return nil
}

func (f *fakeSaleRepo) Delete(_ context.Context, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sales, code)
	return nil
}

func (f *fakeSaleRepo) List(_ context.Context, _ *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.Sale, 0, len(f.sales))
	for _, s := range f.sales {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (f *fakeSaleRepo) SetItemDelivered(_ context.Context, code string, productID uuid.UUID, delivered bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sales[code]
	if !ok {
		return nil
	}
	for i := range s.Items {
		if s.Items[i].ProductID == productID {
			s.Items[i].Entregue = delivered
		}
	}
	return nil
}
