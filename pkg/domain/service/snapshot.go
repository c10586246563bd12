package service

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"pos/pkg/domain/model"
)

// amount is written as a bare JSON number. Quoted numbers are accepted on read.
type amount struct {
	decimal.Decimal
}

func (a amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

type productJSON struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Price     amount    `json:"price"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"createdAt"`
}

type cartItemJSON struct {
	Product  productJSON `json:"product"`
	Quantity int         `json:"quantity"`
}

type transactionJSON struct {
	ID        uuid.UUID      `json:"id"`
	Items     []cartItemJSON `json:"items"`
	Total     amount         `json:"total"`
	CreatedAt time.Time      `json:"createdAt"`
}

func EncodeProducts(products []model.Product) (string, error) {
	out := make([]productJSON, 0, len(products))
	for _, p := range products {
		out = append(out, toProductJSON(p))
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode products")
	}
	return string(data), nil
}

func DecodeProducts(data string) ([]model.Product, error) {
	var in []productJSON
	if err := json.Unmarshal([]byte(data), &in); err != nil {
		return nil, errors.Wrap(err, "failed to decode products")
	}
	products := make([]model.Product, 0, len(in))
	for _, p := range in {
		products = append(products, fromProductJSON(p))
	}
	return products, nil
}

func EncodeTransactions(transactions []model.Transaction) (string, error) {
	out := make([]transactionJSON, 0, len(transactions))
	for _, t := range transactions {
		items := make([]cartItemJSON, 0, len(t.Items))
		for _, item := range t.Items {
			items = append(items, cartItemJSON{Product: toProductJSON(item.Product), Quantity: item.Quantity})
		}
		out = append(out, transactionJSON{
			ID:        t.ID,
			Items:     items,
			Total:     amount{t.Total},
			CreatedAt: t.CreatedAt,
		})
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode transactions")
	}
	return string(data), nil
}

func DecodeTransactions(data string) ([]model.Transaction, error) {
	var in []transactionJSON
	if err := json.Unmarshal([]byte(data), &in); err != nil {
		return nil, errors.Wrap(err, "failed to decode transactions")
	}
	transactions := make([]model.Transaction, 0, len(in))
	for _, t := range in {
		items := make([]model.CartItem, 0, len(t.Items))
		for _, item := range t.Items {
			items = append(items, model.CartItem{Product: fromProductJSON(item.Product), Quantity: item.Quantity})
		}
		transactions = append(transactions, model.Transaction{
			ID:        t.ID,
			Items:     items,
			Total:     t.Total.Decimal,
			CreatedAt: t.CreatedAt,
		})
	}
	return transactions, nil
}

func toProductJSON(p model.Product) productJSON {
	return productJSON{
		ID:        p.ID,
		Name:      p.Name,
		Price:     amount{p.Price},
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt,
	}
}

func fromProductJSON(p productJSON) model.Product {
	return model.Product{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price.Decimal,
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt,
	}
}
