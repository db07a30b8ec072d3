package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-api/internal/apperror"
	handler "catalog-api/internal/handler/http"
	"catalog-api/internal/model"
	"catalog-api/internal/repository"
	"catalog-api/internal/router"
	"catalog-api/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// mockCatalogRepo backs the product, stock and report services in one mock,
// mirroring how the real ProductRepository serves all three.
type mockCatalogRepo struct {
	mock.Mock
}

func (m *mockCatalogRepo) Insert(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockCatalogRepo) FindAll(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *mockCatalogRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *mockCatalogRepo) Replace(ctx context.Context, id primitive.ObjectID, updated *model.Product) (*model.Product, error) {
	args := m.Called(ctx, id, updated)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *mockCatalogRepo) Patch(ctx context.Context, id primitive.ObjectID, patch model.ProductPatch) (*model.Product, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *mockCatalogRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockCatalogRepo) SetProductStock(ctx context.Context, id primitive.ObjectID, stock int) (*model.Product, error) {
	args := m.Called(ctx, id, stock)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *mockCatalogRepo) IncrementVariantStock(ctx context.Context, id primitive.ObjectID, sku string, delta int) (*model.Product, error) {
	args := m.Called(ctx, id, sku, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *mockCatalogRepo) SetVariantStock(ctx context.Context, id primitive.ObjectID, sku string, stock int) (*model.Product, error) {
	args := m.Called(ctx, id, sku, stock)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *mockCatalogRepo) FindByVariantStock(ctx context.Context, reportType model.ReportType, threshold int) ([]model.Product, error) {
	args := m.Called(ctx, reportType, threshold)
	return args.Get(0).([]model.Product), args.Error(1)
}

type mockCategoryRepo struct {
	mock.Mock
}

func (m *mockCategoryRepo) Insert(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *mockCategoryRepo) FindAll(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *mockCategoryRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *mockCategoryRepo) Replace(ctx context.Context, id primitive.ObjectID, updated *model.Category) (*model.Category, error) {
	args := m.Called(ctx, id, updated)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *mockCategoryRepo) Patch(ctx context.Context, id primitive.ObjectID, patch model.CategoryPatch) (*model.Category, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestServer(catalog *mockCatalogRepo, categories *mockCategoryRepo) *httptest.Server {
	productHandler := handler.NewProductHandler(
		service.NewProductService(catalog),
		service.NewStockService(catalog),
	)
	categoryHandler := handler.NewCategoryHandler(service.NewCategoryService(categories))
	reportHandler := handler.NewReportHandler(service.NewReportService(catalog))
	healthHandler := handler.NewHealthHandler(service.NewHealthService(nil))

	return httptest.NewServer(router.New(productHandler, categoryHandler, reportHandler, healthHandler))
}

func doRequest(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestCreateProduct(t *testing.T) {
	catalog := new(mockCatalogRepo)
	srv := newTestServer(catalog, new(mockCategoryRepo))
	defer srv.Close()

	catalog.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/products", map[string]any{
		"name":     "Headphones",
		"price":    100,
		"variants": []map[string]any{{"sku": "A1", "stock": 3}},
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created model.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "Headphones", created.Name)
	catalog.AssertExpectations(t)
}

func TestCreateProductValidationFailure(t *testing.T) {
	catalog := new(mockCatalogRepo)
	srv := newTestServer(catalog, new(mockCategoryRepo))
	defer srv.Close()

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/products", map[string]any{"price": -1})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body model.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "VALIDATION_ERROR", body.Category)
	catalog.AssertNotCalled(t, "Insert")
}

func TestDeleteMissingProductIs404(t *testing.T) {
	catalog := new(mockCatalogRepo)
	srv := newTestServer(catalog, new(mockCategoryRepo))
	defer srv.Close()

	id := primitive.NewObjectID()
	catalog.On("Delete", mock.Anything, id).Return(apperror.NewNotFoundError("product %s not found", id.Hex())).Once()

	resp := doRequest(t, http.MethodDelete, srv.URL+"/api/products/"+id.Hex(), nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	catalog.AssertExpectations(t)
}

func TestInvalidReportTypeIs400(t *testing.T) {
	catalog := new(mockCatalogRepo)
	srv := newTestServer(catalog, new(mockCategoryRepo))
	defer srv.Close()

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/products/report/medium-stock?threshold=2", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	catalog.AssertNotCalled(t, "FindByVariantStock")
}

func TestReportRequiresThreshold(t *testing.T) {
	catalog := new(mockCatalogRepo)
	srv := newTestServer(catalog, new(mockCategoryRepo))
	defer srv.Close()

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/reports/low-stock", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	catalog.AssertNotCalled(t, "FindByVariantStock")
}

func TestLowStockReportRows(t *testing.T) {
	catalog := new(mockCatalogRepo)
	srv := newTestServer(catalog, new(mockCategoryRepo))
	defer srv.Close()

	id := primitive.NewObjectID()
	products := []model.Product{{
		ID:       id,
		Name:     "Headphones",
		Variants: []model.Variant{{SKU: "A1", Stock: 1}, {SKU: "A2", Stock: 9}},
	}}
	catalog.On("FindByVariantStock", mock.Anything, model.LowStock, 2).Return(products, nil).Once()

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/reports/low-stock?threshold=2", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var rows []model.ReportRow
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "A1", rows[0].VariantSKU)
	assert.Equal(t, 1, rows[0].VariantStock)
	catalog.AssertExpectations(t)
}

func TestAdjustStockBelowZeroIs400(t *testing.T) {
	catalog := new(mockCatalogRepo)
	srv := newTestServer(catalog, new(mockCategoryRepo))
	defer srv.Close()

	id := primitive.NewObjectID()
	existing := &model.Product{ID: id, Variants: []model.Variant{{SKU: "A1", Stock: 3}}}

	catalog.On("IncrementVariantStock", mock.Anything, id, "A1", -5).Return(nil, repository.ErrNoMatch).Once()
	catalog.On("FindByID", mock.Anything, id).Return(existing, nil).Once()

	resp := doRequest(t, http.MethodPatch, srv.URL+"/api/products/stock", map[string]any{
		"productId":   id.Hex(),
		"variantSku":  "A1",
		"stockChange": -5,
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	catalog.AssertExpectations(t)
}

func TestSetVariantStock(t *testing.T) {
	catalog := new(mockCatalogRepo)
	srv := newTestServer(catalog, new(mockCategoryRepo))
	defer srv.Close()

	id := primitive.NewObjectID()
	updated := &model.Product{ID: id, Variants: []model.Variant{{SKU: "A1", Stock: 5}}}
	catalog.On("SetVariantStock", mock.Anything, id, "A1", 5).Return(updated, nil).Once()

	resp := doRequest(t, http.MethodPatch, srv.URL+"/api/products/"+id.Hex()+"/variants/A1", map[string]any{"stock": 5})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var product model.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&product))
	assert.Equal(t, 5, product.Variant("A1").Stock)
	catalog.AssertExpectations(t)
}

func TestCategoryDeleteIs204(t *testing.T) {
	categories := new(mockCategoryRepo)
	srv := newTestServer(new(mockCatalogRepo), categories)
	defer srv.Close()

	id := primitive.NewObjectID()
	categories.On("Delete", mock.Anything, id).Return(nil).Once()

	resp := doRequest(t, http.MethodDelete, srv.URL+"/api/categories/"+id.Hex(), nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	categories.AssertExpectations(t)
}

func TestCategoryCreateConflictIs409(t *testing.T) {
	categories := new(mockCategoryRepo)
	srv := newTestServer(new(mockCatalogRepo), categories)
	defer srv.Close()

	categories.On("Insert", mock.Anything, mock.Anything).Return(apperror.NewConflictError("category %q already exists", "Audio")).Once()

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/categories", map[string]any{"name": "Audio"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	categories.AssertExpectations(t)
}
