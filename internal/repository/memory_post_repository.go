package repository

import (
	"context"
	"sort"
	"sync"

	"catalog-api-server/internal/domain"
)

type memoryPostRepository struct {
	mu     sync.RWMutex
	byID   map[int64]*domain.Post
	nextID int64
}

func NewMemoryPostRepository() PostStore {
	return &memoryPostRepository{
		byID:   make(map[int64]*domain.Post),
		nextID: 1,
	}
}

func (r *memoryPostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]*domain.Post, 0, len(r.byID))
	for _, p := range r.byID {
		cp := *p
		posts = append(posts, &cp)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })

	return posts, nil
}

func (r *memoryPostRepository) Get(ctx context.Context, id int64) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}

	cp := *p
	return &cp, nil
}

func (r *memoryPostRepository) Insert(ctx context.Context, rec *domain.Post) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *rec
	if cp.ID == 0 {
		cp.ID = r.nextID
		r.nextID++
	} else if _, exists := r.byID[cp.ID]; exists {
		return nil, ErrConflict
	} else if cp.ID >= r.nextID {
		r.nextID = cp.ID + 1
	}

	r.byID[cp.ID] = &cp

	out := cp
	return &out, nil
}

func (r *memoryPostRepository) Replace(ctx context.Context, id int64, rec *domain.Post) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}

	cp := *rec
	cp.ID = existing.ID
	cp.CreatedAt = existing.CreatedAt // assigned once at creation, immutable

	r.byID[id] = &cp

	out := cp
	return &out, nil
}

func (r *memoryPostRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}

	delete(r.byID, id)
	return nil
}
