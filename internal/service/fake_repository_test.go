package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/alimikegami/product-catalog-service/internal/domain"
	"github.com/alimikegami/product-catalog-service/internal/dto"
	"github.com/alimikegami/product-catalog-service/internal/repository"
	pkgdto "github.com/alimikegami/product-catalog-service/pkg/dto"
)

var errStorage = errors.New(`insert or update on table "products" violates foreign key constraint "products_presentation_id_fkey"`)

var presentations = map[int64]domain.Presentation{
	1: {ID: 1, Name: "Unidad"},
	2: {ID: 2, Name: "Docena"},
}

// fakeProductRepository keeps products in memory. Transactions snapshot the
// rows and restore them when the callback fails.
type fakeProductRepository struct {
	mu       sync.Mutex
	products map[int64]domain.Product
	nextID   int64
	inTrx    bool

	failAdd    error
	failGet    error
	failDelete error
	failList   error
}

func newFakeProductRepository() *fakeProductRepository {
	return &fakeProductRepository{products: map[int64]domain.Product{}, nextID: 1}
}

func (r *fakeProductRepository) sorted() []domain.Product {
	res := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		res = append(res, p)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Name != res[j].Name {
			return res[i].Name < res[j].Name
		}
		return res[i].ID < res[j].ID
	})
	return res
}

func (r *fakeProductRepository) GetProducts(ctx context.Context, filter pkgdto.Filter) ([]domain.Product, error) {
	if r.failList != nil {
		return nil, r.failList
	}

	all := r.sorted()
	if !filter.IsPaged() {
		return all, nil
	}
	if filter.OffsetOverflows() {
		return []domain.Product{}, nil
	}

	start := filter.Offset()
	if start >= len(all) {
		return []domain.Product{}, nil
	}
	end := start + filter.Limit()
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (r *fakeProductRepository) GetProductByID(ctx context.Context, id int64) (domain.Product, error) {
	if r.failGet != nil {
		return domain.Product{}, r.failGet
	}
	return r.products[id], nil
}

func (r *fakeProductRepository) AddProduct(ctx context.Context, data domain.Product) (int64, error) {
	if r.failAdd != nil {
		return 0, r.failAdd
	}

	pres, ok := presentations[data.PresentationID]
	if !ok {
		return 0, errStorage
	}

	data.ID = r.nextID
	data.Presentation = pres
	r.products[data.ID] = data
	r.nextID++

	return data.ID, nil
}

func (r *fakeProductRepository) UpsertProduct(ctx context.Context, data domain.Product) error {
	if r.failAdd != nil {
		return r.failAdd
	}

	pres, ok := presentations[data.PresentationID]
	if !ok {
		return errStorage
	}

	data.Presentation = pres
	data.File = nil
	if existing, ok := r.products[data.ID]; ok {
		data.File = existing.File
	}
	r.products[data.ID] = data

	if data.ID >= r.nextID {
		r.nextID = data.ID + 1
	}

	return nil
}

func (r *fakeProductRepository) DeleteProduct(ctx context.Context, id int64) error {
	if r.failDelete != nil {
		return r.failDelete
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepository) CountProducts(ctx context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *fakeProductRepository) GetFileReferences(ctx context.Context) ([]string, error) {
	files := []string{}
	for _, p := range r.products {
		if p.File != nil {
			files = append(files, *p.File)
		}
	}
	return files, nil
}

func (r *fakeProductRepository) HandleTrx(ctx context.Context, fn func(ctx context.Context, repo repository.ProductRepository) error) error {
	if r.inTrx {
		return fn(ctx, r)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make(map[int64]domain.Product, len(r.products))
	for id, p := range r.products {
		snapshot[id] = p
	}
	nextID := r.nextID

	r.inTrx = true
	err := fn(ctx, r)
	r.inTrx = false

	if err != nil {
		r.products = snapshot
		r.nextID = nextID
	}

	return err
}

type recordingPublisher struct {
	mu       sync.Mutex
	messages []dto.KafkaMessage
	err      error
}

func (p *recordingPublisher) Publish(ctx context.Context, msg dto.KafkaMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, msg)
	return nil
}

func (p *recordingPublisher) Close() error {
	return nil
}

func (p *recordingPublisher) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	types := make([]string, 0, len(p.messages))
	for _, m := range p.messages {
		types = append(types, m.EventType)
	}
	return types
}
