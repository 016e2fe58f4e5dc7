package service

import (
	"context"
	"time"

	"catalog-api-server/internal/domain"
	"catalog-api-server/internal/repository"
)

type PostService struct {
	repo repository.PostStore
}

func NewPostService(repo repository.PostStore) *PostService {
	return &PostService{repo: repo}
}

func (s *PostService) List(ctx context.Context) ([]*domain.Post, error) {
	return s.repo.List(ctx)
}

func (s *PostService) Get(ctx context.Context, id int64) (*domain.Post, error) {
	return s.repo.Get(ctx, id)
}

func (s *PostService) Create(ctx context.Context, req *domain.PostRequest) (*domain.Post, error) {
	post := &domain.Post{
		Name:      req.Name,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}

	return s.repo.Insert(ctx, post)
}

// Update replaces name and message; the store preserves id and created_at.
func (s *PostService) Update(ctx context.Context, id int64, req *domain.PostRequest) (*domain.Post, error) {
	post := &domain.Post{
		Name:    req.Name,
		Message: req.Message,
	}

	return s.repo.Replace(ctx, id, post)
}

func (s *PostService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
