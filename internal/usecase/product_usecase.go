package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
)

const (
	reasonDiscount = "discount"
	reasonTax      = "tax"

	cacheFillTimeout = 500 * time.Millisecond
)

// ProductUseCase реализует бизнес-логику каталога продуктов.
type ProductUseCase struct {
	productRepo ProductRepository
	txManager   TxManager
	cacheRepo   CacheRepository
	producer    MessageProducer
	logger      logger.Logger
}

func NewProductUC(
	productRepo ProductRepository,
	txManager TxManager,
	cacheRepo CacheRepository,
	producer MessageProducer,
	logger logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		txManager:   txManager,
		cacheRepo:   cacheRepo,
		producer:    producer,
		logger:      logger,
	}
}

// GetProductByID возвращает продукт из кэша, а при промахе загружает его из хранилища и кладёт в кэш.
// Поколение читается до хранилища: если запись успели изменить, кэш не заполняется.
func (p *ProductUseCase) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	const op = "ProductUseCase.GetProductByID"

	cached, ok, err := p.cacheRepo.GetProduct(ctx, id)
	if err != nil {
		p.logger.Warnf("Cache lookup failed, falling back to store: %v", e.Wrap(op, err))
	} else if ok {
		return cached, nil
	}

	generation, genErr := p.cacheRepo.Generation(ctx, id)
	if genErr != nil {
		p.logger.Warnf("Failed to read cache generation for product %d: %v", id, e.Wrap(op, genErr))
	}

	product, err := p.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if genErr == nil {
		p.fillCache(ctx, product, generation)
	}

	return product, nil
}

func (p *ProductUseCase) fillCache(ctx context.Context, product *domain.Product, generation int64) {
	fillCtx, cancel := context.WithTimeout(ctx, cacheFillTimeout)
	defer cancel()

	stored, err := p.cacheRepo.SetProductIfUnchanged(fillCtx, product, generation)
	if err != nil {
		p.logger.Warnf("Failed to cache product %d: %v", product.ID, err)
		return
	}
	if !stored {
		p.logger.Debugf("Product %d changed while loading, cache fill skipped", product.ID)
	}
}

// GetAllProducts возвращает все продукты хранилища.
func (p *ProductUseCase) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "ProductUseCase.GetAllProducts"

	products, err := p.productRepo.FindAll(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return products, nil
}

// CreateProduct сохраняет новый продукт. Переданный клиентом ID игнорируется: создание всегда вставляет новую запись.
func (p *ProductUseCase) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	const op = "ProductUseCase.CreateProduct"

	if product == nil {
		return nil, e.Wrap(op, e.ErrInvalidRequestBody)
	}

	toSave := product.Clone()
	toSave.ID = 0

	created, err := p.productRepo.Save(ctx, toSave)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	p.publish(ctx, NewWriteMessageReq(created.ID, ProductCreated, created))

	return created, nil
}

// UpdateProduct перезаписывает name, description, price и quantityAvailable продукта id значениями из fields.
// Возвращает состояние продукта после изменения.
func (p *ProductUseCase) UpdateProduct(ctx context.Context, id int64, fields *domain.Product) (*domain.Product, error) {
	const op = "ProductUseCase.UpdateProduct"

	if fields == nil {
		return nil, e.Wrap(op, e.ErrInvalidRequestBody)
	}

	var updated *domain.Product
	err := p.txManager.Do(ctx, func(ctx context.Context) error {
		existing, err := p.productRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		existing.Overwrite(fields)

		updated, err = p.productRepo.Save(ctx, existing)
		return err
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	p.invalidate(ctx, id)
	p.publish(ctx, NewWriteMessageReq(id, ProductUpdated, updated))

	return updated, nil
}

// DeleteProduct удаляет продукт. Возвращает false, если продукта не было.
func (p *ProductUseCase) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	const op = "ProductUseCase.DeleteProduct"

	var deleted bool
	err := p.txManager.Do(ctx, func(ctx context.Context) error {
		exists, err := p.productRepo.ExistsByID(ctx, id)
		if err != nil || !exists {
			return err
		}

		if err := p.productRepo.DeleteByID(ctx, id); err != nil {
			return err
		}

		deleted = true
		return nil
	})
	if err != nil {
		return false, e.Wrap(op, err)
	}

	if deleted {
		p.invalidate(ctx, id)
		p.publish(ctx, NewWriteMessageReq(id, ProductDeleted, nil))
	}

	return deleted, nil
}

// ApplyDiscount уменьшает цену продукта на заданный процент.
func (p *ProductUseCase) ApplyDiscount(ctx context.Context, req *ApplyDiscountReq) (*domain.Product, error) {
	const op = "ProductUseCase.ApplyDiscount"

	product, err := p.changePrice(ctx, req.ProductID, reasonDiscount, req.DiscountPercentage, req.ApplicableValue, discountedPrice)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return product, nil
}

// ApplyTax увеличивает цену продукта на заданную ставку налога.
func (p *ProductUseCase) ApplyTax(ctx context.Context, req *ApplyTaxReq) (*domain.Product, error) {
	const op = "ProductUseCase.ApplyTax"

	product, err := p.changePrice(ctx, req.ProductID, reasonTax, req.TaxRate, req.ApplicableValue, taxedPrice)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return product, nil
}

// changePrice загружает продукт под блокировкой, пересчитывает цену через calc и сохраняет его.
func (p *ProductUseCase) changePrice(
	ctx context.Context,
	id int64,
	reason string,
	percentage float64,
	applicableValue float64,
	calc func(price, percentage float64) (float64, error),
) (*domain.Product, error) {
	var (
		product  *domain.Product
		oldPrice float64
	)

	err := p.txManager.Do(ctx, func(ctx context.Context) error {
		existing, err := p.productRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		oldPrice = existing.Price
		newPrice, err := calc(existing.Price, percentage)
		if err != nil {
			return err
		}
		existing.Price = newPrice

		product, err = p.productRepo.Save(ctx, existing)
		return err
	})
	if err != nil {
		return nil, err
	}

	p.invalidate(ctx, id)

	msg := NewWriteMessageReq(id, ProductPriceChanged, product)
	msg.PriceChange = NewPriceChange(reason, percentage, applicableValue, oldPrice, product.Price)
	p.publish(ctx, msg)

	return product, nil
}

// invalidate удаляет продукт из кэша. Ошибка кэша не влияет на результат операции.
func (p *ProductUseCase) invalidate(ctx context.Context, id int64) {
	if err := p.cacheRepo.DeleteProducts(ctx, []int64{id}); err != nil {
		p.logger.Warnf("Failed to delete product %d from cache: %v", id, err)
	}
}

// publish отправляет событие изменения продукта. Ошибка брокера не влияет на результат операции.
func (p *ProductUseCase) publish(ctx context.Context, req *WriteMessageReq) {
	if err := p.producer.WriteMessage(ctx, req); err != nil && !errors.Is(err, context.Canceled) {
		p.logger.Warnf("Failed to publish %s event for product %d: %v", req.EventType, req.ProductID, err)
	}
}
