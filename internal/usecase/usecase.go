package usecase

import (
	"context"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
)

type ProductUC interface {
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
	GetAllProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, fields *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) (bool, error)
	ApplyDiscount(ctx context.Context, req *ApplyDiscountReq) (*domain.Product, error)
	ApplyTax(ctx context.Context, req *ApplyTaxReq) (*domain.Product, error)
}
