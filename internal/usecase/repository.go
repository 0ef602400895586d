package usecase

import (
	"context"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
)

// ProductRepository — хранилище продуктов с ключом по ID.
// FindByID и FindByIDForUpdate возвращают e.ErrProductNotFound, если записи нет.
type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	DeleteByID(ctx context.Context, id int64) error
}

// CacheRepository — кэш продуктов по ID. Промах не является ошибкой.
// Заполнение условное: SetProductIfUnchanged пишет, только если с момента Generation
// запись не инвалидировалась через DeleteProducts.
type CacheRepository interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, bool, error)
	Generation(ctx context.Context, id int64) (int64, error)
	SetProductIfUnchanged(ctx context.Context, product *domain.Product, generation int64) (bool, error)
	DeleteProducts(ctx context.Context, ids []int64) error
}

// TxManager выполняет fn в одной транзакции хранилища.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
