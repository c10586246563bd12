package tests

import (
	"errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pos/pkg/domain/model"
	"pos/pkg/domain/service"
	"testing"
	"time"
)

func TestLoadFromStorage(t *testing.T) {
	clock := &mockClock{now: time.Date(2026, time.October, 14, 10, 0, 0, 0, jakarta)}

	t.Run("Absent keys start empty", func(t *testing.T) {
		store, err := service.NewStoreService(newMockStorage(), &mockEventDispatcher{}, clock)
		require.NoError(t, err)
		assert.Empty(t, store.Products())
		assert.Empty(t, store.Transactions())
		assert.Empty(t, store.Cart())
	})

	t.Run("Unparsable payloads start empty", func(t *testing.T) {
		storage := newMockStorage()
		storage.data[model.ProductsKey] = "{not json"
		storage.data[model.TransactionsKey] = `[{"id":"nope"}]`

		store, err := service.NewStoreService(storage, &mockEventDispatcher{}, clock)
		require.NoError(t, err)
		assert.Empty(t, store.Products())
		assert.Empty(t, store.Transactions())
	})

	t.Run("Backend failure is reported", func(t *testing.T) {
		storage := newMockStorage()
		storage.getErr = errors.New("connection refused")

		_, err := service.NewStoreService(storage, &mockEventDispatcher{}, clock)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("Payload written by the browser app", func(t *testing.T) {
		storage := newMockStorage()
		storage.data[model.ProductsKey] = `[{"id":"5f0c8e4e-8c1b-4a53-9d7e-2d1b7f1c9a10","name":"Indomie","price":3500,"stock":40,"createdAt":"2026-10-01T02:03:04.567Z"}]`
		storage.data[model.TransactionsKey] = `[{"id":"0e3f1a9c-6b5d-4c2e-8f7a-1b2c3d4e5f60","items":[{"product":{"id":"5f0c8e4e-8c1b-4a53-9d7e-2d1b7f1c9a10","name":"Indomie","price":3500,"stock":42,"createdAt":"2026-10-01T02:03:04.567Z"},"quantity":2}],"total":7000,"createdAt":"2026-10-14T01:00:00.000Z"}]`

		store, err := service.NewStoreService(storage, &mockEventDispatcher{}, clock)
		require.NoError(t, err)

		products := store.Products()
		require.Len(t, products, 1)
		assert.Equal(t, uuid.MustParse("5f0c8e4e-8c1b-4a53-9d7e-2d1b7f1c9a10"), products[0].ID)
		assert.Equal(t, "3500", products[0].Price.String())
		assert.True(t, time.Date(2026, time.October, 1, 2, 3, 4, 567000000, time.UTC).Equal(products[0].CreatedAt))

		transactions := store.Transactions()
		require.Len(t, transactions, 1)
		assert.Equal(t, "7000", transactions[0].Total.String())
		assert.Equal(t, 2, transactions[0].Items[0].Quantity)
		assert.Equal(t, "7000", store.TodayRevenue().String())
	})
}

func TestStoreRoundTrip(t *testing.T) {
	store, storage, _, _ := setup(t)
	a, _ := store.AddProduct("Gula 1kg", decimal.RequireFromString("15500.75"), 8)
	b, _ := store.AddProduct("Beras 5kg", decimal.NewFromInt(72000), 3)
	store.AddToCart(a)
	store.AddToCart(b)
	completed, err := store.CompleteTransaction()
	require.NoError(t, err)

	reloaded, err := service.NewStoreService(storage, &mockEventDispatcher{}, model.SystemClock{})
	require.NoError(t, err)

	original := store.Products()
	products := reloaded.Products()
	require.Len(t, products, len(original))
	for i := range original {
		assert.Equal(t, original[i].ID, products[i].ID)
		assert.Equal(t, original[i].Name, products[i].Name)
		assert.True(t, original[i].Price.Equal(products[i].Price))
		assert.Equal(t, original[i].Stock, products[i].Stock)
		assert.True(t, original[i].CreatedAt.Equal(products[i].CreatedAt))
	}

	transactions := reloaded.Transactions()
	require.Len(t, transactions, 1)
	assert.Equal(t, completed.ID, transactions[0].ID)
	assert.True(t, completed.Total.Equal(transactions[0].Total))
	assert.True(t, completed.CreatedAt.Equal(transactions[0].CreatedAt))
	require.Len(t, transactions[0].Items, 2)
	assert.Equal(t, a.ID, transactions[0].Items[0].Product.ID)
	assert.Equal(t, 8, transactions[0].Items[0].Product.Stock)
	assert.Empty(t, reloaded.Cart())
}

func TestEncodeProducts(t *testing.T) {
	created := time.Date(2026, time.October, 14, 3, 4, 5, 0, time.UTC)
	data, err := service.EncodeProducts([]model.Product{{
		ID:        uuid.MustParse("5f0c8e4e-8c1b-4a53-9d7e-2d1b7f1c9a10"),
		Name:      "Indomie",
		Price:     decimal.NewFromInt(3500),
		Stock:     40,
		CreatedAt: created,
	}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"5f0c8e4e-8c1b-4a53-9d7e-2d1b7f1c9a10","name":"Indomie","price":3500,"stock":40,"createdAt":"2026-10-14T03:04:05Z"}]`, data)

	empty, err := service.EncodeProducts(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", empty)
}
