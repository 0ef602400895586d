package usecase

import (
	"math"

	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// discountedPrice считает price - price*percentage/100.
// Границы процента не проверяются: отрицательная скидка повышает цену, скидка больше 100% делает её отрицательной.
func discountedPrice(price, percentage float64) (float64, error) {
	if err := validatePercentage(price, percentage); err != nil {
		return 0, err
	}

	p := decimal.NewFromFloat(price)
	return toFinitePrice(p.Sub(p.Mul(decimal.NewFromFloat(percentage)).Div(hundred)))
}

// taxedPrice считает price + price*rate/100.
func taxedPrice(price, rate float64) (float64, error) {
	if err := validatePercentage(price, rate); err != nil {
		return 0, err
	}

	p := decimal.NewFromFloat(price)
	return toFinitePrice(p.Add(p.Mul(decimal.NewFromFloat(rate)).Div(hundred)))
}

// toFinitePrice переводит результат в float64. Значение за пределами float64 становится ±Inf
// и отклоняется до сохранения.
func toFinitePrice(d decimal.Decimal) (float64, error) {
	price := d.InexactFloat64()
	if math.IsInf(price, 0) || math.IsNaN(price) {
		return 0, e.ErrPriceNotFinite
	}

	return price, nil
}

// validatePercentage отсекает NaN и бесконечности, которые decimal не представляет.
func validatePercentage(price, percentage float64) error {
	if math.IsNaN(percentage) || math.IsInf(percentage, 0) {
		return e.ErrInvalidPercentage
	}

	if math.IsNaN(price) || math.IsInf(price, 0) {
		return e.ErrPriceNotFinite
	}

	return nil
}
