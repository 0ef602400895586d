package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/jimlawless/whereami"
)

// ProductRepo хранит продукты в памяти процесса. Возвращает и сохраняет копии, поэтому
// изменения вызывающей стороны не попадают в хранилище без Save.
type ProductRepo struct {
	mu       sync.RWMutex
	products map[int64]domain.Product
	lastID   int64
}

func NewProductRepo() *ProductRepo {
	return &ProductRepo{
		products: make(map[int64]domain.Product),
	}
}

func (r *ProductRepo) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, e.ErrProductNotFound
	}

	return &product, nil
}

// FindByIDForUpdate совпадает с FindByID: сериализацию обеспечивает TxManager.
func (r *ProductRepo) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Product, error) {
	return r.FindByID(ctx, id)
}

// FindAll возвращает продукты в порядке возрастания ID (порядок вставки).
func (r *ProductRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	r.mu.RLock()
	result := make([]domain.Product, 0, len(r.products))
	for _, product := range r.products {
		result = append(result, product)
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result, nil
}

// Save вставляет продукт с новым ID, если ID не задан, иначе полностью заменяет запись с этим ID.
func (r *ProductRepo) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	saved := *product
	if !saved.HasID() {
		r.lastID++
		saved.ID = r.lastID
	} else if saved.ID > r.lastID {
		r.lastID = saved.ID
	}

	r.products[saved.ID] = saved

	return &saved, nil
}

func (r *ProductRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.products[id]
	return ok, nil
}

// DeleteByID удаляет продукт; отсутствие записи не считается ошибкой.
func (r *ProductRepo) DeleteByID(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.products, id)
	return nil
}
