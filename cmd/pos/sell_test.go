package main

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pos/pkg/domain/model"
	"pos/pkg/domain/service"
	"pos/pkg/infrastructure/storage"
	"testing"
)

type nopDispatcher struct{}

func (nopDispatcher) Dispatch(service.Event) error { return nil }

func TestParseSaleItems(t *testing.T) {
	id := uuid.New()

	items, err := parseSaleItems([]string{id.String(), id.String() + ":4"})
	require.NoError(t, err)
	assert.Equal(t, []saleItem{{productID: id, quantity: 1}, {productID: id, quantity: 4}}, items)

	for _, bad := range []string{"nope", id.String() + ":0", id.String() + ":x"} {
		_, err := parseSaleItems([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestFillCart(t *testing.T) {
	store, err := service.NewStoreService(storage.NewMemoryStorage(), nopDispatcher{}, model.SystemClock{})
	require.NoError(t, err)
	a, _ := store.AddProduct("A", decimal.NewFromInt(1000), 5)
	b, _ := store.AddProduct("B", decimal.NewFromInt(200), 0)

	err = fillCart(store, []saleItem{
		{productID: a.ID, quantity: 3},
		{productID: a.ID, quantity: 4},
		{productID: b.ID, quantity: 1},
	})

	require.NoError(t, err)
	cart := store.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, 5, cart[0].Quantity)
	assert.Equal(t, "5000", store.CartTotal().String())

	t.Run("Unknown product", func(t *testing.T) {
		err := fillCart(store, []saleItem{{productID: uuid.New(), quantity: 1}})
		assert.ErrorIs(t, err, model.ErrProductNotFound)
	})
}

func TestOpenStorage(t *testing.T) {
	cfg := &config{Storage: "memory"}
	s, err := openStorage(cfg)
	require.NoError(t, err)
	assert.IsType(t, &storage.MemoryStorage{}, s)

	_, err = openStorage(&config{Storage: "tape"})
	assert.Error(t, err)

	_, err = openStorage(&config{Storage: "mysql"})
	assert.Error(t, err)
}
