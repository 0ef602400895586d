package usecase

import "github.com/DRSN-tech/catalog-backend/internal/domain"

// PRODUCT USECASE

// ApplyDiscountReq — запрос на применение скидки к цене продукта.
// ApplicableValue принимается API, но на расчёт цены не влияет.
type ApplyDiscountReq struct {
	ProductID          int64
	DiscountPercentage float64
	ApplicableValue    float64
}

// ApplyTaxReq — запрос на применение налога к цене продукта.
type ApplyTaxReq struct {
	ProductID       int64
	TaxRate         float64
	ApplicableValue float64
}

// INFRASTRUCTURE

// ProductEventType — тип события изменения продукта.
type ProductEventType string

const (
	ProductCreated      ProductEventType = "created"
	ProductUpdated      ProductEventType = "updated"
	ProductDeleted      ProductEventType = "deleted"
	ProductPriceChanged ProductEventType = "price_changed"
)

// PriceChange описывает изменение цены скидкой или налогом.
type PriceChange struct {
	Reason          string  `json:"reason"` // discount | tax
	Percentage      float64 `json:"percentage"`
	ApplicableValue float64 `json:"applicable_value"`
	OldPrice        float64 `json:"old_price"`
	NewPrice        float64 `json:"new_price"`
}

// WriteMessageReq — событие для публикации в брокер.
type WriteMessageReq struct {
	ProductID   int64
	EventType   ProductEventType
	Product     *domain.Product // nil для deleted
	PriceChange *PriceChange
}

// MAPPERS

func NewApplyDiscountReq(productID int64, discountPercentage float64, applicableValue float64) *ApplyDiscountReq {
	return &ApplyDiscountReq{
		ProductID:          productID,
		DiscountPercentage: discountPercentage,
		ApplicableValue:    applicableValue,
	}
}

func NewApplyTaxReq(productID int64, taxRate float64, applicableValue float64) *ApplyTaxReq {
	return &ApplyTaxReq{
		ProductID:       productID,
		TaxRate:         taxRate,
		ApplicableValue: applicableValue,
	}
}

func NewWriteMessageReq(productID int64, eventType ProductEventType, product *domain.Product) *WriteMessageReq {
	return &WriteMessageReq{
		ProductID: productID,
		EventType: eventType,
		Product:   product,
	}
}

func NewPriceChange(reason string, percentage, applicableValue, oldPrice, newPrice float64) *PriceChange {
	return &PriceChange{
		Reason:          reason,
		Percentage:      percentage,
		ApplicableValue: applicableValue,
		OldPrice:        oldPrice,
		NewPrice:        newPrice,
	}
}
