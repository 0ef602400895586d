package http

import (
	"errors"
	"net/http"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
}

func NewProductHandler(productUsecase usecase.ProductUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, logger: logger}
}

// getProduct
//
//	@Summary		Получение товара
//	@Description	Возвращает описание товара по ID
//	@Tags			products
//	@Produce		plain
//	@Param			id	path		int				true	"ID товара"
//	@Success		200	{string}	string			"Product available: ..."
//	@Failure		400	{string}	string			"Product not found with ID: ..."
//	@Failure		500	{object}	ErrorResponse	"Внутренняя ошибка"
//	@Router			/products/{id} [get]
func (p *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(r)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	product, err := p.productUsecase.GetProductByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, e.ErrProductNotFound) {
			p.logger.Warnf("Product not found with ID: %d", id)
			WriteText(w, http.StatusBadRequest, "Product not found with ID: %d", id)
			return
		}

		p.logger.Errorf(err, "failed to get product %d", id)
		WriteError(w, err)
		return
	}

	p.logger.Infof("Product available: %s", product)
	WriteText(w, http.StatusOK, "Product available: %s", product)
}

// listProducts
//
//	@Summary		Список товаров
//	@Description	Возвращает все товары каталога в порядке ID
//	@Tags			products
//	@Produce		json
//	@Success		200	{array}		domain.Product
//	@Failure		500	{object}	ErrorResponse	"Внутренняя ошибка"
//	@Router			/products [get]
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := p.productUsecase.GetAllProducts(r.Context())
	if err != nil {
		p.logger.Errorf(err, "failed to list products")
		WriteError(w, err)
		return
	}

	if products == nil {
		products = []domain.Product{}
	}

	if err := WriteSuccess(w, http.StatusOK, products); err != nil {
		p.logger.Errorf(err, "failed to encode %d products", len(products))
		return
	}

	p.logger.Infof("Listed %d products", len(products))
}

// createProduct
//
//	@Summary		Создание товара
//	@Description	Создаёт новый товар; переданный id игнорируется
//	@Tags			products
//	@Accept			json
//	@Produce		plain
//	@Param			product	body		ProductRequest	true	"Товар"
//	@Success		200		{string}	string			"Product created: ..."
//	@Failure		400		{object}	ErrorResponse	"Некорректное тело запроса"
//	@Failure		500		{object}	ErrorResponse	"Внутренняя ошибка"
//	@Router			/products [post]
func (p *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	product, err := decodeProduct(w, r)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	created, err := p.productUsecase.CreateProduct(r.Context(), product)
	if err != nil && !errors.Is(err, e.ErrInvalidRequestBody) {
		p.logger.Errorf(err, "failed to create product")
		WriteError(w, err)
		return
	}

	if created == nil {
		p.logger.Warnf("Product creation failed")
		WriteText(w, http.StatusBadRequest, "Product creation failed")
		return
	}

	p.logger.Infof("Product created: %s", created)
	WriteText(w, http.StatusOK, "Product created: %s", created)
}

// updateProduct
//
//	@Summary		Обновление товара
//	@Description	Перезаписывает name, description, price и quantityAvailable товара
//	@Tags			products
//	@Accept			json
//	@Produce		plain
//	@Param			id		path		int				true	"ID товара"
//	@Param			product	body		ProductRequest	true	"Новые значения"
//	@Success		200		{string}	string			"Product updated: ..."
//	@Failure		400		{string}	string			"Product update failed"
//	@Failure		500		{object}	ErrorResponse	"Внутренняя ошибка"
//	@Router			/products/{id} [put]
func (p *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(r)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	fields, err := decodeProduct(w, r)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	updated, err := p.productUsecase.UpdateProduct(r.Context(), id, fields)
	if err != nil {
		if errors.Is(err, e.ErrProductNotFound) {
			p.logger.Warnf("Product update failed: product %d not found", id)
			WriteText(w, http.StatusBadRequest, "Product update failed")
			return
		}

		p.logger.Errorf(err, "failed to update product %d", id)
		WriteError(w, err)
		return
	}

	p.logger.Infof("Product updated: %s", updated)
	WriteText(w, http.StatusOK, "Product updated: %s", updated)
}

// deleteProduct
//
//	@Summary		Удаление товара
//	@Tags			products
//	@Produce		plain
//	@Param			id	path		int				true	"ID товара"
//	@Success		200	{string}	string			"Product ... deleted successfully"
//	@Failure		400	{string}	string			"Product not found with ID: ..."
//	@Failure		500	{object}	ErrorResponse	"Внутренняя ошибка"
//	@Router			/products/{id} [delete]
func (p *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(r)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	deleted, err := p.productUsecase.DeleteProduct(r.Context(), id)
	if err != nil {
		p.logger.Errorf(err, "failed to delete product %d", id)
		WriteError(w, err)
		return
	}

	if !deleted {
		p.logger.Warnf("Product not found with ID: %d", id)
		WriteText(w, http.StatusBadRequest, "Product not found with ID: %d", id)
		return
	}

	p.logger.Infof("Product %d deleted successfully", id)
	WriteText(w, http.StatusOK, "Product %d deleted successfully", id)
}

// applyDiscount
//
//	@Summary		Применение скидки
//	@Description	Уменьшает цену товара на discountPercentage процентов. applicableValue на расчёт не влияет.
//	@Tags			products
//	@Produce		plain
//	@Param			id					path		int		true	"ID товара"
//	@Param			discountPercentage	query		number	true	"Скидка, %"
//	@Param			applicableValue		query		number	true	"Не используется в расчёте"
//	@Success		200					{string}	string	"Discount applied successfully. ..."
//	@Failure		400					{string}	string	"Product not found with ID: ... | Error applying discount: ..."
//	@Router			/products/{id}/apply-discount [put]
func (p *ProductHandler) applyDiscount(w http.ResponseWriter, r *http.Request) {
	const action = "discount"

	id, err := parseProductID(r)
	if err != nil {
		p.writeApplyError(w, action, err)
		return
	}

	percentage, err := parseQueryFloat(r, "discountPercentage")
	if err != nil {
		p.writeApplyError(w, action, err)
		return
	}

	applicableValue, err := parseQueryFloat(r, "applicableValue")
	if err != nil {
		p.writeApplyError(w, action, err)
		return
	}

	product, err := p.productUsecase.ApplyDiscount(r.Context(), usecase.NewApplyDiscountReq(id, percentage, applicableValue))
	if err != nil {
		p.handleApplyError(w, action, id, err)
		return
	}

	p.logger.Infof("Discount applied successfully. %s", product)
	WriteText(w, http.StatusOK, "Discount applied successfully. %s", product)
}

// applyTax
//
//	@Summary		Применение налога
//	@Description	Увеличивает цену товара на taxRate процентов. applicableValue на расчёт не влияет.
//	@Tags			products
//	@Produce		plain
//	@Param			id				path		int		true	"ID товара"
//	@Param			taxRate			query		number	true	"Ставка налога, %"
//	@Param			applicableValue	query		number	true	"Не используется в расчёте"
//	@Success		200				{string}	string	"Tax applied successfully. ..."
//	@Failure		400				{string}	string	"Product not found with ID: ... | Error applying tax: ..."
//	@Router			/products/{id}/apply-tax [put]
func (p *ProductHandler) applyTax(w http.ResponseWriter, r *http.Request) {
	const action = "tax"

	id, err := parseProductID(r)
	if err != nil {
		p.writeApplyError(w, action, err)
		return
	}

	taxRate, err := parseQueryFloat(r, "taxRate")
	if err != nil {
		p.writeApplyError(w, action, err)
		return
	}

	applicableValue, err := parseQueryFloat(r, "applicableValue")
	if err != nil {
		p.writeApplyError(w, action, err)
		return
	}

	product, err := p.productUsecase.ApplyTax(r.Context(), usecase.NewApplyTaxReq(id, taxRate, applicableValue))
	if err != nil {
		p.handleApplyError(w, action, id, err)
		return
	}

	p.logger.Infof("Tax applied successfully. %s", product)
	WriteText(w, http.StatusOK, "Tax applied successfully. %s", product)
}

// handleApplyError переводит любую ошибку скидки или налога в 400.
func (p *ProductHandler) handleApplyError(w http.ResponseWriter, action string, id int64, err error) {
	if errors.Is(err, e.ErrProductNotFound) {
		p.logger.Warnf("Product not found with ID: %d", id)
		WriteText(w, http.StatusBadRequest, "Product not found with ID: %d", id)
		return
	}

	p.logger.Errorf(err, "failed to apply %s to product %d", action, id)
	p.writeApplyError(w, action, err)
}

// writeApplyError отдаёт текст исходной ошибки без префиксов e.Wrap.
func (p *ProductHandler) writeApplyError(w http.ResponseWriter, action string, err error) {
	msg := e.Cause(err).Error()
	p.logger.Warnf("Error applying %s: %s", action, msg)
	WriteText(w, http.StatusBadRequest, "Error applying %s: %s", action, msg)
}
