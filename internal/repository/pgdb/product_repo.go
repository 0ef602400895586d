package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const productColumns = `id, name, description, price, quantity_available, created_at, updated_at`

// ProductRepo реализует репозиторий продуктов поверх PostgreSQL.
// Внутри TxManager.Do запросы выполняются в транзакции из контекста, иначе на пуле.
type ProductRepo struct {
	pool   *pgxpool.Pool
	getter *trmpgx.CtxGetter
	conv   converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, getter *trmpgx.CtxGetter, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool:   pool,
		getter: getter,
		conv:   conv,
	}
}

func (p *ProductRepo) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	return p.findOne(ctx, query, id)
}

// FindByIDForUpdate блокирует строку до конца транзакции.
func (p *ProductRepo) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`

	return p.findOne(ctx, query, id)
}

func (p *ProductRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`

	rows, err := p.conn(ctx).Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	models, err := pgx.CollectRows(rows, pgx.RowToStructByName[converter.ProductModel])
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models), nil
}

// Save вставляет продукт без ID или полностью перезаписывает существующий.
// Перезапись несуществующего ID возвращает e.ErrProductNotFound: ID назначает только последовательность.
func (p *ProductRepo) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	model := p.conv.ToModel(product)

	if !product.HasID() {
		query := `
			INSERT INTO products (name, description, price, quantity_available)
			VALUES ($1, $2, $3, $4)
			RETURNING ` + productColumns

		return p.findOne(ctx, query, model.Name, model.Description, model.Price, model.QuantityAvailable)
	}

	query := `
		UPDATE products
		SET name = $2,
			description = $3,
			price = $4,
			quantity_available = $5,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + productColumns

	return p.findOne(ctx, query, model.ID, model.Name, model.Description, model.Price, model.QuantityAvailable)
}

func (p *ProductRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`

	var exists bool
	if err := p.conn(ctx).QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return exists, nil
}

// DeleteByID удаляет продукт; отсутствие строки не считается ошибкой.
func (p *ProductRepo) DeleteByID(ctx context.Context, id int64) error {
	if _, err := p.conn(ctx).Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// findOne выполняет запрос, возвращающий одну строку products.
func (p *ProductRepo) findOne(ctx context.Context, query string, args ...any) (*domain.Product, error) {
	rows, err := p.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[converter.ProductModel])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrProductNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

func (p *ProductRepo) conn(ctx context.Context) trmpgx.Tr {
	return p.getter.DefaultTrOrDB(ctx, p.pool)
}
