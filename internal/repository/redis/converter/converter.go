package converter

import "github.com/DRSN-tech/catalog-backend/internal/domain"

// ProductConverter преобразует Product между domain и моделью Redis.
type ProductConverter interface {
	ToRedisModel(entity *domain.Product) *ProductRedisModel
	ToEntity(model *ProductRedisModel) *domain.Product
}

type ProductConverterImpl struct{}

func NewProductConverterImpl() *ProductConverterImpl {
	return &ProductConverterImpl{}
}

func (c *ProductConverterImpl) ToRedisModel(entity *domain.Product) *ProductRedisModel {
	if entity == nil {
		return nil
	}

	return &ProductRedisModel{
		ID:                entity.ID,
		Name:              entity.Name,
		Description:       entity.Description,
		Price:             entity.Price,
		QuantityAvailable: entity.QuantityAvailable,
	}
}

func (c *ProductConverterImpl) ToEntity(model *ProductRedisModel) *domain.Product {
	if model == nil {
		return nil
	}

	return &domain.Product{
		ID:                model.ID,
		Name:              model.Name,
		Description:       model.Description,
		Price:             model.Price,
		QuantityAvailable: model.QuantityAvailable,
	}
}
