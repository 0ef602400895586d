package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/cfg"
	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/repository/redis/converter"
	"github.com/DRSN-tech/catalog-backend/pkg/clients"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// generationTTL должен превышать время любого заполнения кэша.
const generationTTL = 24 * time.Hour

var errGenerationChanged = errors.New("cache generation changed")

type CacheRepo struct {
	client *clients.RedisClient
	conv   converter.ProductConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.ProductConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetProduct возвращает закэшированный продукт. Промах и повреждённая запись дают ok == false без ошибки.
func (c *CacheRepo) GetProduct(ctx context.Context, id int64) (*domain.Product, bool, error) {
	key := c.productKey(id)

	data, err := c.client.Client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, false, nil // cache miss
		}
		return nil, false, e.Wrap(whereami.WhereAmI(), err)
	}

	model, err := c.unmarshalProductFromCache(data)
	if err != nil {
		c.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		c.drop(key)
		return nil, false, nil
	}

	if model.ID != id {
		c.logger.Warnf("Cache ID mismatch: key_id: %d, model_id: %d", id, model.ID)
		c.drop(key)
		return nil, false, nil // cache miss
	}

	return c.conv.ToEntity(model), true, nil
}

// Generation возвращает поколение записи продукта. Каждое DeleteProducts увеличивает его,
// отсутствующий ключ означает поколение 0.
func (c *CacheRepo) Generation(ctx context.Context, id int64) (int64, error) {
	gen, err := c.client.Client.Get(ctx, c.generationKey(id)).Int64()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return 0, nil
		}
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return gen, nil
}

// SetProductIfUnchanged кэширует продукт, только если его поколение всё ещё равно generation.
// Ключ поколения находится под WATCH, поэтому инвалидация между проверкой и записью отменяет запись.
// Возвращает false, если запись пропущена.
func (c *CacheRepo) SetProductIfUnchanged(ctx context.Context, product *domain.Product, generation int64) (bool, error) {
	data, err := c.marshalProductForCache(*c.conv.ToRedisModel(product))
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	genKey := c.generationKey(product.ID)
	err = c.client.Client.Watch(ctx, func(tx *r.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, r.Nil) {
			return err
		}
		if current != generation {
			return errGenerationChanged
		}

		_, err = tx.TxPipelined(ctx, func(pipe r.Pipeliner) error {
			pipe.Set(ctx, c.productKey(product.ID), data, c.cfg.ProductTTL)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errGenerationChanged), errors.Is(err, r.TxFailedErr):
		return false, nil
	default:
		return false, e.Wrap(whereami.WhereAmI(), err)
	}
}

// DeleteProducts удаляет продукты из кэша и увеличивает их поколение
func (c *CacheRepo) DeleteProducts(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	pipeline := c.client.Client.TxPipeline()
	pipeline.Del(ctx, c.buildProductCacheKeys(ids)...)
	for _, id := range ids {
		genKey := c.generationKey(id)
		pipeline.Incr(ctx, genKey)
		pipeline.Expire(ctx, genKey, generationTTL)
	}

	if _, err := pipeline.Exec(ctx); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// drop удаляет некорректную запись, не прерывая чтение
func (c *CacheRepo) drop(key string) {
	if err := c.client.Client.Del(context.Background(), key).Err(); err != nil {
		c.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}
}

// marshalProductForCache сериализует продукт в JSON для кэша
func (c *CacheRepo) marshalProductForCache(model converter.ProductRedisModel) ([]byte, error) {
	return json.Marshal(model)
}

// unmarshalProductFromCache десериализует JSON из кэша в модель продукта
func (c *CacheRepo) unmarshalProductFromCache(data []byte) (*converter.ProductRedisModel, error) {
	var model converter.ProductRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, err
	}

	return &model, nil
}

// buildProductCacheKeys формирует Redis-ключи из ID продуктов
func (c *CacheRepo) buildProductCacheKeys(ids []int64) []string {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = c.productKey(id)
	}

	return keys
}

// productKey возвращает Redis-ключ для одного продукта
func (c *CacheRepo) productKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}

func (c *CacheRepo) generationKey(id int64) string {
	return fmt.Sprintf("product:%d:gen", id)
}
