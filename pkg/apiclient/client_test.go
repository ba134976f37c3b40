package apiclient_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fruteria/internal/models"
	"fruteria/pkg/apiclient"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return apiclient.New(apiclient.Config{BaseURL: srv.URL + "/", Timeout: 2 * time.Second})
}

func TestClient_ListProducts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":1,"name":"Mango","unit":"kg","price":32.5,"stock":12,"expiryDate":"2026-06-01"}]`)
	})

	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, uint(1), products[0].ID)
	assert.Equal(t, "Mango", products[0].Name)
	assert.True(t, decimal.NewFromInt(12).Equal(products[0].Stock))
	assert.Equal(t, models.NewDate(2026, time.June, 1), products[0].ExpiryDate)
}

func TestClient_CreateEntryOmitsID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/stock/entry", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotContains(t, body, "id")
		assert.Equal(t, "Mango", body["productName"])
		assert.Equal(t, "2026-05-02", body["date"])
		assert.EqualValues(t, 20, body["quantity"])

		body["id"] = 41
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(body)
	})

	created, err := client.CreateEntry(context.Background(), models.StockEntry{
		ID:            99,
		ProductID:     1,
		ProductName:   "Mango",
		Quantity:      decimal.NewFromInt(20),
		PurchasePrice: decimal.RequireFromString("18.5"),
		Date:          models.NewDate(2026, time.May, 2),
		Supplier:      "Frutas del Valle",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(41), created.ID)
}

func TestClient_MapsStatusCodes(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, models.ErrNotFound},
		{http.StatusConflict, models.ErrInsufficientStock},
		{http.StatusBadRequest, models.ErrValidation},
		{http.StatusInternalServerError, models.ErrStoreUnavailable},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, `{"message":"boom"}`)
			})

			_, err := client.GetProduct(context.Background(), 5)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "boom")
		})
	}
}

func TestClient_UnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := apiclient.New(apiclient.Config{BaseURL: url, Timeout: time.Second})
	err := client.DeleteExit(context.Background(), 3)
	assert.ErrorIs(t, err, models.ErrStoreUnavailable)
}

func TestClient_PatchProduct(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/products/3", r.URL.Path)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, 7, body["stock"])
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":3,"name":"Kiwi","stock":7}`)
	})

	stock := decimal.NewFromInt(7)
	updated, err := client.PatchProduct(context.Background(), 3, models.ProductPatch{Stock: &stock})
	require.NoError(t, err)
	assert.True(t, stock.Equal(updated.Stock))
}

func TestClient_CreateProductKeepsDecimalDigits(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"price":12345678901234567.89`)
		assert.Contains(t, string(raw), `"stock":0.123456789012345678`)
		assert.NotContains(t, string(raw), `"id"`)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":8,"name":"Pitaya","price":12345678901234567.89,"stock":0.123456789012345678}`)
	})

	price := decimal.RequireFromString("12345678901234567.89")
	created, err := client.CreateProduct(context.Background(), models.Product{
		ID:    3,
		Name:  "Pitaya",
		Price: price,
		Stock: decimal.RequireFromString("0.123456789012345678"),
	})
	require.NoError(t, err)
	assert.Equal(t, uint(8), created.ID)
	assert.True(t, price.Equal(created.Price))
}
