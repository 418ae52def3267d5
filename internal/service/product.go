package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopstack/backend/internal/model"
)

var ErrInvalidProduct = errors.New("invalid product")

// ProductStore is the catalog storage collaborator.
type ProductStore interface {
	CreateProduct(ctx context.Context, req model.CreateProductRequest) (*model.Product, error)
	GetProductList(ctx context.Context) ([]model.Product, error)
	GetFeaturedProducts(ctx context.Context) ([]model.Product, error)
	GetProductsByCategory(ctx context.Context, category string) ([]model.Product, error)
	ToggleFeaturedProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type ProductService struct {
	repo ProductStore
}

func NewProductService(repo ProductStore) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) CreateProduct(ctx context.Context, req model.CreateProductRequest) (*model.Product, error) {
	if strings.TrimSpace(req.Name) == "" || req.Price < 0 {
		return nil, ErrInvalidProduct
	}
	return s.repo.CreateProduct(ctx, req)
}

func (s *ProductService) GetProductList(ctx context.Context) ([]model.Product, error) {
	return s.repo.GetProductList(ctx)
}

func (s *ProductService) GetFeaturedProducts(ctx context.Context) ([]model.Product, error) {
	return s.repo.GetFeaturedProducts(ctx)
}

func (s *ProductService) GetProductsByCategory(ctx context.Context, category string) ([]model.Product, error) {
	return s.repo.GetProductsByCategory(ctx, category)
}

func (s *ProductService) ToggleFeaturedProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return s.repo.ToggleFeaturedProduct(ctx, id)
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteProduct(ctx, id)
}
