package server_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mytheresa/go-inventory/app/categories"
	"github.com/mytheresa/go-inventory/app/config"
	"github.com/mytheresa/go-inventory/app/database/databasetest"
	"github.com/mytheresa/go-inventory/app/products"
	"github.com/mytheresa/go-inventory/app/server"
	"github.com/mytheresa/go-inventory/app/suppliers"
	"github.com/mytheresa/go-inventory/app/web"
	"github.com/mytheresa/go-inventory/models"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

var testHTTPConfig = config.HTTP{
	Metrics:         true,
	ReadTimeout:     time.Second,
	WriteTimeout:    time.Second,
	ShutdownTimeout: time.Second,
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func newService(t *testing.T, db *gorm.DB, cfg config.HTTP, store server.Pinger) *server.Service {
	t.Helper()

	pages, err := web.NewPages()
	require.NoError(t, err)

	productsRepo := models.NewProductsRepository(db)
	categoriesRepo := models.NewCategoriesRepository(db)
	suppliersRepo := models.NewSuppliersRepository(db)

	if store == nil {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		store = sqlDB
	}

	return server.New(cfg, discard, store, server.Handlers{
		Products:   products.NewProductHandler(productsRepo, categoriesRepo, suppliersRepo, pages, discard),
		Categories: categories.NewCategoryHandler(categoriesRepo, pages, discard),
		Suppliers:  suppliers.NewSupplierHandler(suppliersRepo, pages, discard),
	})
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func post(t *testing.T, h http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreateThroughFormsThenList(t *testing.T) {
	db := databasetest.New(t)
	h := newService(t, db, testHTTPConfig, nil).Handler()

	rec := post(t, h, "/add-category", url.Values{"name": {"Electronics"}})
	require.Equal(t, http.StatusFound, rec.Code)
	rec = post(t, h, "/add-supplier", url.Values{"name": {"TechCorp"}, "contact": {"techcorp@example.com"}})
	require.Equal(t, http.StatusFound, rec.Code)

	var category models.Category
	require.NoError(t, db.Where("name = ?", "Electronics").First(&category).Error)
	var supplier models.Supplier
	require.NoError(t, db.Where("name = ?", "TechCorp").First(&supplier).Error)

	rec = post(t, h, "/add-product", url.Values{
		"name":       {"Laptop"},
		"price":      {"1200.99"},
		"categoryId": {fmt.Sprint(category.ID)},
		"supplierId": {fmt.Sprint(supplier.ID)},
	})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, web.HomePath, rec.Header().Get("Location"))

	rec = get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Laptop")
	assert.Contains(t, body, "1200.99")
	assert.Contains(t, body, "Electronics")
	assert.Contains(t, body, "TechCorp")
}

func TestListEmptyStore(t *testing.T) {
	db := databasetest.New(t)
	h := newService(t, db, testHTTPConfig, nil).Handler()

	rec := get(t, h, "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "No products yet.")
}

func TestFormPages(t *testing.T) {
	db, seeded := databasetest.NewSeeded(t)
	h := newService(t, db, testHTTPConfig, nil).Handler()
	laptop := seeded.Products[0]

	testCases := []struct {
		name     string
		target   string
		contains []string
	}{
		{name: "Add category", target: "/add-category", contains: []string{`action="/add-category"`}},
		{name: "Add supplier", target: "/add-supplier", contains: []string{`name="contact"`}},
		{name: "Add product", target: "/add-product", contains: []string{"Electronics", "Books", "TechCorp", "BookStore"}},
		{
			name:     "Edit existing product",
			target:   fmt.Sprintf("/edit-product/%d", laptop.ID),
			contains: []string{`value="Laptop"`, `value="1200.99"`, "selected"},
		},
		{name: "Edit unknown product", target: "/edit-product/9999", contains: []string{`value=""`}},
		{name: "Edit non numeric id", target: "/edit-product/abc", contains: []string{`action="/edit-product/abc"`}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := get(t, h, tc.target)

			assert.Equal(t, http.StatusOK, rec.Code)
			for _, s := range tc.contains {
				assert.Contains(t, rec.Body.String(), s)
			}
		})
	}
}

func TestCreateProductMissingField(t *testing.T) {
	db, seeded := databasetest.NewSeeded(t)
	h := newService(t, db, testHTTPConfig, nil).Handler()

	rec := post(t, h, "/add-product", url.Values{
		"name":       {"Tablet"},
		"categoryId": {fmt.Sprint(seeded.Categories[0].ID)},
		"supplierId": {fmt.Sprint(seeded.Suppliers[0].ID)},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, products.MissingFieldsMessage, strings.TrimSpace(rec.Body.String()))

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.Equal(t, int64(len(seeded.Products)), count)
}

func TestEditProductPreservesOmittedFields(t *testing.T) {
	db, seeded := databasetest.NewSeeded(t)
	h := newService(t, db, testHTTPConfig, nil).Handler()
	laptop := seeded.Products[0]

	rec := post(t, h, fmt.Sprintf("/edit-product/%d", laptop.ID), url.Values{"price": {"999.50"}})
	require.Equal(t, http.StatusFound, rec.Code)

	var got models.Product
	require.NoError(t, db.First(&got, laptop.ID).Error)
	assert.Equal(t, "Laptop", got.Name)
	assert.Equal(t, "999.5", got.Price.String())
	assert.Equal(t, laptop.CategoryID, got.CategoryID)
	assert.Equal(t, laptop.SupplierID, got.SupplierID)
}

func TestPriceOutsideColumnPrecisionIsRejected(t *testing.T) {
	db, seeded := databasetest.NewSeeded(t)
	h := newService(t, db, testHTTPConfig, nil).Handler()
	laptop := seeded.Products[0]

	testCases := []struct {
		name  string
		price string
	}{
		{name: "Three decimals", price: "1.999"},
		{name: "Above column range", price: "100000000"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := post(t, h, fmt.Sprintf("/edit-product/%d", laptop.ID), url.Values{"price": {tc.price}})
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "Invalid value: price")

			rec = post(t, h, "/add-product", url.Values{
				"name":       {"Cable"},
				"price":      {tc.price},
				"categoryId": {fmt.Sprint(laptop.CategoryID)},
				"supplierId": {fmt.Sprint(laptop.SupplierID)},
			})
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var got models.Product
			require.NoError(t, db.First(&got, laptop.ID).Error)
			assert.Equal(t, "1200.99", got.Price.StringFixed(2))

			var count int64
			require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
			assert.Equal(t, int64(len(seeded.Products)), count)
		})
	}
}

func TestDeleteProductIsIdempotent(t *testing.T) {
	db, seeded := databasetest.NewSeeded(t)
	h := newService(t, db, testHTTPConfig, nil).Handler()
	book := seeded.Products[2]
	target := fmt.Sprintf("/delete-product/%d", book.ID)

	for i := 0; i < 2; i++ {
		rec := post(t, h, target, url.Values{})
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, web.HomePath, rec.Header().Get("Location"))
	}

	rec := get(t, h, "/")
	assert.NotContains(t, rec.Body.String(), book.Name)
	assert.Contains(t, rec.Body.String(), "Laptop")
}

func TestCreateCategoryWithoutNameIsSkipped(t *testing.T) {
	db, seeded := databasetest.NewSeeded(t)
	h := newService(t, db, testHTTPConfig, nil).Handler()

	rec := post(t, h, "/add-category", url.Values{"name": {""}})
	assert.Equal(t, http.StatusFound, rec.Code)

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.Equal(t, int64(len(seeded.Categories)), count)
}

func TestUnknownRouteAndMethod(t *testing.T) {
	db := databasetest.New(t)
	h := newService(t, db, testHTTPConfig, nil).Handler()

	assert.Equal(t, http.StatusNotFound, get(t, h, "/nope").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, get(t, h, "/delete-product/1").Code)
}

func TestHealth(t *testing.T) {
	db := databasetest.New(t)

	testCases := []struct {
		name               string
		store              server.Pinger
		expectedStatusCode int
	}{
		{name: "Store reachable", store: nil, expectedStatusCode: http.StatusOK},
		{name: "Store unreachable", store: stubPinger{err: errors.New("connection refused")}, expectedStatusCode: http.StatusServiceUnavailable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newService(t, db, testHTTPConfig, tc.store).Handler()

			rec := get(t, h, server.HealthPath)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	db := databasetest.New(t)

	t.Run("Enabled", func(t *testing.T) {
		h := newService(t, db, testHTTPConfig, nil).Handler()
		get(t, h, "/")

		rec := get(t, h, server.MetricsPath)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `inventory_http_requests_total{code="200",method="GET",route="/"} 1`)
	})

	t.Run("Disabled", func(t *testing.T) {
		cfg := testHTTPConfig
		cfg.Metrics = false
		h := newService(t, db, cfg, nil).Handler()

		rec := get(t, h, server.MetricsPath)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRecoverer(t *testing.T) {
	h := server.Recoverer(discard)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := get(t, h, "/")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, web.InternalServerErrorMessage, strings.TrimSpace(rec.Body.String()))
}

func TestRunWithListener(t *testing.T) {
	db := databasetest.New(t)
	svc := newService(t, db, testHTTPConfig, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	cleanup := svc.RunWithListener(context.Background(), ln, svc.Handler())

	res, err := http.Get("http://" + ln.Addr().String() + server.HealthPath)
	require.NoError(t, err)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.NoError(t, res.Body.Close())

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "ok", string(body))

	require.NoError(t, cleanup(context.Background()))

	_, err = http.Get("http://" + ln.Addr().String() + server.HealthPath)
	assert.Error(t, err)
}
