package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const maxRequestBodySize = 1 << 20

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ProductRequest — тело запроса на создание и обновление продукта.
type ProductRequest struct {
	ID                int64   `json:"id,omitempty"` // игнорируется
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Price             float64 `json:"price"`
	QuantityAvailable int     `json:"quantityAvailable"`
}

func (r *ProductRequest) toDomain() *domain.Product {
	return domain.NewProduct(r.Name, r.Description, r.Price, r.QuantityAvailable)
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrInvalidProductID):
		return http.StatusBadRequest, e.ErrInvalidProductID.Error()
	case errors.Is(err, e.ErrInvalidRequestBody):
		return http.StatusBadRequest, e.ErrInvalidRequestBody.Error()
	case errors.Is(err, e.ErrInvalidQueryParam):
		return http.StatusBadRequest, e.ErrInvalidQueryParam.Error()
	case errors.Is(err, e.ErrInvalidPercentage):
		return http.StatusBadRequest, e.ErrInvalidPercentage.Error()
	case errors.Is(err, e.ErrPriceNotFinite):
		return http.StatusBadRequest, e.ErrPriceNotFinite.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) error {
	code, msg := ToHTTPResponse(err)
	return writeJSON(w, code, NewErrorResponse(code, msg))
}

// WriteSuccess сериализует data до записи статуса. Если data не кодируется в JSON
// (например, цена +Inf), клиент получает 500 с ErrorResponse, а ошибка возвращается.
func WriteSuccess(w http.ResponseWriter, status int, data interface{}) error {
	body, err := json.Marshal(data)
	if err != nil {
		code := http.StatusInternalServerError
		if wErr := writeJSON(w, code, NewErrorResponse(code, e.ErrInternalServerError.Error())); wErr != nil {
			return errors.Join(e.Wrap(whereami.WhereAmI(), err), wErr)
		}
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return writeBody(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return writeBody(w, status, body)
}

func writeBody(w http.ResponseWriter, status int, body []byte) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}

// WriteText отдаёт человекочитаемый ответ API.
func WriteText(w http.ResponseWriter, status int, format string, args ...any) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, format, args...)
}

// parseProductID достаёт {id} из пути. Допустимы любые int64, в том числе отрицательные:
// такого продукта просто не найдётся.
func parseProductID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", e.ErrInvalidProductID, raw)
	}

	return id, nil
}

func decodeProduct(w http.ResponseWriter, r *http.Request) (*domain.Product, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	var req ProductRequest
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("%w: %v", e.ErrInvalidRequestBody, err))
	}

	return req.toDomain(), nil
}

// parseQueryFloat читает обязательный числовой query-параметр.
func parseQueryFloat(r *http.Request, name string) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, fmt.Errorf("%w: required parameter %s is missing", e.ErrInvalidQueryParam, name)
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s=%q is not a finite number", e.ErrInvalidQueryParam, name, raw)
	}

	return v, nil
}
