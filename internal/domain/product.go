package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Product описывает товар каталога
type Product struct {
	ID                int64   `json:"id"` // 0 — идентификатор ещё не присвоен
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Price             float64 `json:"price"`
	QuantityAvailable int     `json:"quantityAvailable"`
}

func NewProduct(name string, description string, price float64, quantityAvailable int) *Product {
	return &Product{
		Name:              name,
		Description:       description,
		Price:             price,
		QuantityAvailable: quantityAvailable,
	}
}

// HasID сообщает, присвоен ли продукту идентификатор хранилищем.
func (p *Product) HasID() bool {
	return p.ID != 0
}

// Overwrite заменяет изменяемые поля значениями из src. ID не трогается.
func (p *Product) Overwrite(src *Product) {
	p.Name = src.Name
	p.Description = src.Description
	p.Price = src.Price
	p.QuantityAvailable = src.QuantityAvailable
}

// Clone возвращает копию продукта.
func (p *Product) Clone() *Product {
	c := *p
	return &c
}

// String возвращает человекочитаемое описание продукта, которое отдаётся в ответах API:
// Product(productId=1, name=Widget, description=Blue, price=30.0, quantityAvailable=50)
func (p *Product) String() string {
	id := "null"
	if p.HasID() {
		id = strconv.FormatInt(p.ID, 10)
	}

	return fmt.Sprintf(
		"Product(productId=%s, name=%s, description=%s, price=%s, quantityAvailable=%d)",
		id, p.Name, p.Description, FormatPrice(p.Price), p.QuantityAvailable,
	)
}

// FormatPrice печатает цену в кратчайшем виде, сохраняя ".0" у целых значений.
func FormatPrice(price float64) string {
	s := strconv.FormatFloat(price, 'f', -1, 64)
	if strings.ContainsAny(s, ".NI") { // NaN и ±Inf оставляем как есть
		return s
	}

	return s + ".0"
}
