package redis

import (
	"context"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
)

// NopCache используется, когда Redis не настроен: каждый запрос даёт промах.
type NopCache struct{}

func NewNopCache() NopCache { return NopCache{} }

func (NopCache) GetProduct(context.Context, int64) (*domain.Product, bool, error) {
	return nil, false, nil
}

func (NopCache) Generation(context.Context, int64) (int64, error) { return 0, nil }

func (NopCache) SetProductIfUnchanged(context.Context, *domain.Product, int64) (bool, error) {
	return false, nil
}

func (NopCache) DeleteProducts(context.Context, []int64) error { return nil }
