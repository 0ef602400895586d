package http

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DRSN-tech/catalog-backend/internal/cfg"
	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/infrastructure/kafka"
	"github.com/DRSN-tech/catalog-backend/internal/repository/memory"
	"github.com/DRSN-tech/catalog-backend/internal/repository/redis"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProductUC struct {
	mock.Mock
}

func (m *mockProductUC) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*domain.Product)
	return product, args.Error(1)
}

func (m *mockProductUC) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]domain.Product)
	return products, args.Error(1)
}

func (m *mockProductUC) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, product)
	created, _ := args.Get(0).(*domain.Product)
	return created, args.Error(1)
}

func (m *mockProductUC) UpdateProduct(ctx context.Context, id int64, fields *domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, id, fields)
	updated, _ := args.Get(0).(*domain.Product)
	return updated, args.Error(1)
}

func (m *mockProductUC) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockProductUC) ApplyDiscount(ctx context.Context, req *usecase.ApplyDiscountReq) (*domain.Product, error) {
	args := m.Called(ctx, req)
	product, _ := args.Get(0).(*domain.Product)
	return product, args.Error(1)
}

func (m *mockProductUC) ApplyTax(ctx context.Context, req *usecase.ApplyTaxReq) (*domain.Product, error) {
	args := m.Called(ctx, req)
	product, _ := args.Get(0).(*domain.Product)
	return product, args.Error(1)
}

func newTestRouter(uc usecase.ProductUC) http.Handler {
	r := chi.NewRouter()
	NewRouter(r, &cfg.HTTPConfig{SwaggerHost: "localhost:8080"}, logger.NewNopLogger()).Init(uc)
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

var widget = &domain.Product{ID: 1, Name: "Widget", Description: "Blue", Price: 30, QuantityAvailable: 50}

func TestGetProduct(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		setup      func(m *mockProductUC)
		wantStatus int
		wantBody   string
		wantJSON   bool
	}{
		{
			name:   "Found",
			target: "/products/1",
			setup: func(m *mockProductUC) {
				m.On("GetProductByID", mock.Anything, int64(1)).Return(widget, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   "Product available: Product(productId=1, name=Widget, description=Blue, price=30.0, quantityAvailable=50)",
		},
		{
			name:   "Not found",
			target: "/products/42",
			setup: func(m *mockProductUC) {
				m.On("GetProductByID", mock.Anything, int64(42)).Return(nil, e.Wrap("op", e.ErrProductNotFound))
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Product not found with ID: 42",
		},
		{
			name:       "Malformed id",
			target:     "/products/abc",
			setup:      func(m *mockProductUC) {},
			wantStatus: http.StatusBadRequest,
			wantJSON:   true,
		},
		{
			name:   "Store failure is not a client error",
			target: "/products/1",
			setup: func(m *mockProductUC) {
				m.On("GetProductByID", mock.Anything, int64(1)).Return(nil, errors.New("connection refused"))
			},
			wantStatus: http.StatusInternalServerError,
			wantJSON:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockProductUC{}
			tt.setup(m)

			rec := do(t, newTestRouter(m), http.MethodGet, tt.target, "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantJSON {
				assert.Equal(t, tt.wantStatus, decodeError(t, rec).Code)
			} else {
				assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
			m.AssertExpectations(t)
		})
	}
}

func TestListProducts(t *testing.T) {
	t.Run("Empty store returns empty array", func(t *testing.T) {
		m := &mockProductUC{}
		m.On("GetAllProducts", mock.Anything).Return(nil, nil)

		rec := do(t, newTestRouter(m), http.MethodGet, "/products", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("Products encoded as JSON", func(t *testing.T) {
		m := &mockProductUC{}
		m.On("GetAllProducts", mock.Anything).Return([]domain.Product{*widget}, nil)

		rec := do(t, newTestRouter(m), http.MethodGet, "/products", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t,
			`[{"id":1,"name":"Widget","description":"Blue","price":30,"quantityAvailable":50}]`,
			rec.Body.String())
	})

	t.Run("Unencodable price becomes internal error", func(t *testing.T) {
		broken := domain.Product{ID: 1, Name: "Widget", Price: math.Inf(1), QuantityAvailable: 1}
		m := &mockProductUC{}
		m.On("GetAllProducts", mock.Anything).Return([]domain.Product{broken}, nil)

		rec := do(t, newTestRouter(m), http.MethodGet, "/products", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Equal(t, *NewErrorResponse(http.StatusInternalServerError, "internal server error"), decodeError(t, rec))
	})
}

func TestCreateProduct(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		m := &mockProductUC{}
		m.On("CreateProduct", mock.Anything, domain.NewProduct("Widget", "Blue", 30, 50)).Return(widget, nil)

		rec := do(t, newTestRouter(m), http.MethodPost, "/products",
			`{"id":99,"name":"Widget","description":"Blue","price":30.0,"quantityAvailable":50}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Product created: "+widget.String(), rec.Body.String())
		m.AssertExpectations(t)
	})

	t.Run("Nil result", func(t *testing.T) {
		m := &mockProductUC{}
		m.On("CreateProduct", mock.Anything, mock.Anything).Return(nil, nil)

		rec := do(t, newTestRouter(m), http.MethodPost, "/products", `{"name":"Widget"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Product creation failed", rec.Body.String())
	})

	t.Run("Malformed body", func(t *testing.T) {
		m := &mockProductUC{}

		rec := do(t, newTestRouter(m), http.MethodPost, "/products", `{"name":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, e.ErrInvalidRequestBody.Error(), decodeError(t, rec).Message)
		m.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
	})

	t.Run("Store failure", func(t *testing.T) {
		m := &mockProductUC{}
		m.On("CreateProduct", mock.Anything, mock.Anything).Return(nil, errors.New("disk full"))

		rec := do(t, newTestRouter(m), http.MethodPost, "/products", `{"name":"Widget"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, e.ErrInternalServerError.Error(), decodeError(t, rec).Message)
	})
}

func TestUpdateProduct(t *testing.T) {
	t.Run("Updated", func(t *testing.T) {
		updated := &domain.Product{ID: 1, Name: "Gadget", Description: "Red", Price: 12.5, QuantityAvailable: 3}
		m := &mockProductUC{}
		m.On("UpdateProduct", mock.Anything, int64(1), domain.NewProduct("Gadget", "Red", 12.5, 3)).Return(updated, nil)

		rec := do(t, newTestRouter(m), http.MethodPut, "/products/1",
			`{"name":"Gadget","description":"Red","price":12.5,"quantityAvailable":3}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t,
			"Product updated: Product(productId=1, name=Gadget, description=Red, price=12.5, quantityAvailable=3)",
			rec.Body.String())
	})

	t.Run("Not found", func(t *testing.T) {
		m := &mockProductUC{}
		m.On("UpdateProduct", mock.Anything, int64(5), mock.Anything).Return(nil, e.ErrProductNotFound)

		rec := do(t, newTestRouter(m), http.MethodPut, "/products/5", `{"name":"Gadget"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Product update failed", rec.Body.String())
	})
}

func TestDeleteProduct(t *testing.T) {
	t.Run("Deleted", func(t *testing.T) {
		m := &mockProductUC{}
		m.On("DeleteProduct", mock.Anything, int64(1)).Return(true, nil)

		rec := do(t, newTestRouter(m), http.MethodDelete, "/products/1", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Product 1 deleted successfully", rec.Body.String())
	})

	t.Run("Absent", func(t *testing.T) {
		m := &mockProductUC{}
		m.On("DeleteProduct", mock.Anything, int64(8)).Return(false, nil)

		rec := do(t, newTestRouter(m), http.MethodDelete, "/products/8", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Product not found with ID: 8", rec.Body.String())
	})
}

func TestApplyDiscount(t *testing.T) {
	t.Run("Applied", func(t *testing.T) {
		discounted := &domain.Product{ID: 1, Name: "Widget", Description: "Blue", Price: 27, QuantityAvailable: 50}
		m := &mockProductUC{}
		m.On("ApplyDiscount", mock.Anything, usecase.NewApplyDiscountReq(1, 10, 50)).Return(discounted, nil)

		rec := do(t, newTestRouter(m), http.MethodPut, "/products/1/apply-discount?discountPercentage=10&applicableValue=50", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Discount applied successfully. "+discounted.String(), rec.Body.String())
	})

	t.Run("Not found", func(t *testing.T) {
		m := &mockProductUC{}
		m.On("ApplyDiscount", mock.Anything, mock.Anything).Return(nil, e.Wrap("op", e.ErrProductNotFound))

		rec := do(t, newTestRouter(m), http.MethodPut, "/products/3/apply-discount?discountPercentage=10&applicableValue=50", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Product not found with ID: 3", rec.Body.String())
	})

	t.Run("Store failure becomes client error", func(t *testing.T) {
		m := &mockProductUC{}
		m.On("ApplyDiscount", mock.Anything, mock.Anything).
			Return(nil, e.Wrap("ProductUseCase.ApplyDiscount", errors.New("connection refused")))

		rec := do(t, newTestRouter(m), http.MethodPut, "/products/3/apply-discount?discountPercentage=10&applicableValue=50", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Error applying discount: connection refused", rec.Body.String())
	})

	t.Run("Missing parameter", func(t *testing.T) {
		m := &mockProductUC{}

		rec := do(t, newTestRouter(m), http.MethodPut, "/products/3/apply-discount?discountPercentage=10", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.True(t, strings.HasPrefix(rec.Body.String(), "Error applying discount: "))
		assert.Contains(t, rec.Body.String(), "applicableValue")
		m.AssertNotCalled(t, "ApplyDiscount", mock.Anything, mock.Anything)
	})

	t.Run("Non-numeric parameter", func(t *testing.T) {
		m := &mockProductUC{}

		rec := do(t, newTestRouter(m), http.MethodPut, "/products/3/apply-discount?discountPercentage=ten&applicableValue=50", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t,
			`Error applying discount: invalid query parameter: discountPercentage="ten" is not a finite number`,
			rec.Body.String())
	})
}

func TestApplyTax(t *testing.T) {
	t.Run("Applied", func(t *testing.T) {
		taxed := &domain.Product{ID: 1, Name: "Widget", Description: "Blue", Price: 28.35, QuantityAvailable: 50}
		m := &mockProductUC{}
		m.On("ApplyTax", mock.Anything, usecase.NewApplyTaxReq(1, 5, 50)).Return(taxed, nil)

		rec := do(t, newTestRouter(m), http.MethodPut, "/products/1/apply-tax?taxRate=5&applicableValue=50", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Tax applied successfully. "+taxed.String(), rec.Body.String())
	})

	t.Run("Malformed id", func(t *testing.T) {
		m := &mockProductUC{}

		rec := do(t, newTestRouter(m), http.MethodPut, "/products/x/apply-tax?taxRate=5&applicableValue=50", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, `Error applying tax: invalid product id: "x"`, rec.Body.String())
	})

	t.Run("Wrapped service errors lose location prefixes", func(t *testing.T) {
		m := &mockProductUC{}
		m.On("ApplyTax", mock.Anything, mock.Anything).
			Return(nil, e.Wrap("ProductUseCase.ApplyTax", e.ErrPriceNotFinite))

		rec := do(t, newTestRouter(m), http.MethodPut, "/products/1/apply-tax?taxRate=100&applicableValue=0", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Error applying tax: price must be a finite number", rec.Body.String())
	})
}

func TestRecoverer(t *testing.T) {
	m := &mockProductUC{}
	m.On("GetAllProducts", mock.Anything).Run(func(mock.Arguments) { panic("boom") })

	rec := do(t, newTestRouter(m), http.MethodGet, "/products", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// Полный сценарий через роутер поверх in-memory хранилища.
func TestCatalogScenario(t *testing.T) {
	uc := usecase.NewProductUC(
		memory.NewProductRepo(),
		memory.NewTxManager(),
		redis.NewNopCache(),
		kafka.NewNopProducer(),
		logger.NewNopLogger(),
	)
	h := newTestRouter(uc)

	rec := do(t, h, http.MethodPost, "/products", `{"name":"Widget","description":"Blue","price":30.0,"quantityAvailable":50}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Product created: Product(productId=1, name=Widget, description=Blue, price=30.0, quantityAvailable=50)", rec.Body.String())

	rec = do(t, h, http.MethodGet, "/products/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "price=30.0")

	rec = do(t, h, http.MethodPut, "/products/1/apply-discount?discountPercentage=10.0&applicableValue=50.0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "price=27.0")

	rec = do(t, h, http.MethodPut, "/products/1/apply-tax?taxRate=5.0&applicableValue=50.0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Tax applied successfully. Product(productId=1, name=Widget, description=Blue, price=28.35, quantityAvailable=50)", rec.Body.String())

	rec = do(t, h, http.MethodDelete, "/products/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Product 1 deleted successfully", rec.Body.String())

	rec = do(t, h, http.MethodDelete, "/products/1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/products/1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Product not found with ID: 1", rec.Body.String())
}
