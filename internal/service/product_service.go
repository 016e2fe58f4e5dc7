package service

import (
	"context"

	"catalog-api-server/internal/domain"
	"catalog-api-server/internal/repository"
)

type ProductService struct {
	repo repository.ProductStore
}

func NewProductService(repo repository.ProductStore) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *ProductService) Get(ctx context.Context, slug string) (*domain.Product, error) {
	return s.repo.Get(ctx, slug)
}

func (s *ProductService) Create(ctx context.Context, req *domain.ProductRequest) (*domain.Product, error) {
	product := &domain.Product{
		Slug:  req.Slug,
		Name:  req.Name,
		Price: *req.Price,
	}

	return s.repo.Insert(ctx, product)
}

func (s *ProductService) Update(ctx context.Context, slug string, req *domain.ProductRequest) (*domain.Product, error) {
	product := &domain.Product{
		Slug:  req.Slug,
		Name:  req.Name,
		Price: *req.Price,
	}

	return s.repo.Replace(ctx, slug, product)
}

func (s *ProductService) Delete(ctx context.Context, slug string) error {
	return s.repo.Delete(ctx, slug)
}
