package repository

import (
	"context"
	"sort"
	"sync"

	"catalog-api-server/internal/domain"
)

// memoryProductRepository keeps products in a slug-keyed map guarded by a
// RWMutex. The lock serializes writers so two inserts racing on the same
// slug cannot both win; readers take the shared lock only.
type memoryProductRepository struct {
	mu     sync.RWMutex
	bySlug map[string]*domain.Product
	byID   map[int64]string
	nextID int64
}

func NewMemoryProductRepository() ProductStore {
	return &memoryProductRepository{
		bySlug: make(map[string]*domain.Product),
		byID:   make(map[int64]string),
		nextID: 1,
	}
}

func (r *memoryProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*domain.Product, 0, len(r.bySlug))
	for _, p := range r.bySlug {
		cp := *p
		products = append(products, &cp)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })

	return products, nil
}

func (r *memoryProductRepository) Get(ctx context.Context, slug string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.bySlug[slug]
	if !ok {
		return nil, ErrNotFound
	}

	cp := *p
	return &cp, nil
}

func (r *memoryProductRepository) Insert(ctx context.Context, rec *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bySlug[rec.Slug]; exists {
		return nil, ErrConflict
	}

	cp := *rec
	if cp.ID == 0 {
		cp.ID = r.nextID
		r.nextID++
	} else if _, exists := r.byID[cp.ID]; exists {
		return nil, ErrConflict
	} else if cp.ID >= r.nextID {
		r.nextID = cp.ID + 1
	}

	r.bySlug[cp.Slug] = &cp
	r.byID[cp.ID] = cp.Slug

	out := cp
	return &out, nil
}

func (r *memoryProductRepository) Replace(ctx context.Context, slug string, rec *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.bySlug[slug]
	if !ok {
		return nil, ErrNotFound
	}

	cp := *rec
	cp.ID = existing.ID // the numeric id never changes on update

	// A slug rename must not land on another record's slug.
	if cp.Slug != slug {
		if _, taken := r.bySlug[cp.Slug]; taken {
			return nil, ErrConflict
		}
		delete(r.bySlug, slug)
	}

	r.bySlug[cp.Slug] = &cp
	r.byID[cp.ID] = cp.Slug

	out := cp
	return &out, nil
}

func (r *memoryProductRepository) Delete(ctx context.Context, slug string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.bySlug[slug]
	if !ok {
		return ErrNotFound
	}

	delete(r.byID, p.ID)
	delete(r.bySlug, slug)
	return nil
}
