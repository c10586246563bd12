package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartItem struct {
	Product  Product
	Quantity int
}

func (i CartItem) Subtotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Transaction struct {
	ID        uuid.UUID
	Items     []CartItem
	Total     decimal.Decimal
	CreatedAt time.Time
}

func (t Transaction) ItemCount() int {
	count := 0
	for _, item := range t.Items {
		count += item.Quantity
	}
	return count
}

type DailySummary struct {
	Date               time.Time
	ProductCount       int
	LowStockCount      int
	TransactionCount   int
	ItemsSold          int
	Revenue            decimal.Decimal
	AverageTransaction decimal.Decimal
}
