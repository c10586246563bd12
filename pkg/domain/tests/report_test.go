package tests

import (
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func TestTodaySummary(t *testing.T) {
	store, _, _, clock := setup(t)
	a, _ := store.AddProduct("A", decimal.NewFromInt(1000), 10)
	b, _ := store.AddProduct("B", decimal.NewFromInt(500), 4)
	_, _ = store.AddProduct("C", decimal.NewFromInt(500), 20)

	t.Run("No sales", func(t *testing.T) {
		summary := store.TodaySummary(5)
		assert.Equal(t, 3, summary.ProductCount)
		assert.Equal(t, 1, summary.LowStockCount)
		assert.Zero(t, summary.TransactionCount)
		assert.True(t, decimal.Zero.Equal(summary.AverageTransaction))
	})

	clock.now = time.Date(2026, time.October, 13, 18, 0, 0, 0, jakarta)
	store.AddToCart(a)
	_, _ = store.CompleteTransaction()

	clock.now = time.Date(2026, time.October, 14, 9, 0, 0, 0, jakarta)
	store.AddToCart(a)
	store.UpdateCartQuantity(a.ID, 3)
	store.AddToCart(b)
	_, _ = store.CompleteTransaction()

	clock.now = time.Date(2026, time.October, 14, 11, 0, 0, 0, jakarta)
	store.AddToCart(b)
	_, _ = store.CompleteTransaction()

	summary := store.TodaySummary(5)

	assert.True(t, time.Date(2026, time.October, 14, 0, 0, 0, 0, jakarta).Equal(summary.Date))
	assert.Equal(t, 3, summary.ProductCount)
	assert.Equal(t, 1, summary.LowStockCount)
	assert.Equal(t, 2, summary.TransactionCount)
	assert.Equal(t, 5, summary.ItemsSold)
	assert.Equal(t, "4000", summary.Revenue.String())
	assert.Equal(t, "2000", summary.AverageTransaction.String())
}
