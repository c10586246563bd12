package transport

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"pos/pkg/domain/model"
	"time"
)

type productResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"createdAt"`
}

type cartItemResponse struct {
	Product  productResponse `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type cartResponse struct {
	Items []cartItemResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

type transactionResponse struct {
	ID        uuid.UUID          `json:"id"`
	Items     []cartItemResponse `json:"items"`
	Total     decimal.Decimal    `json:"total"`
	CreatedAt time.Time          `json:"createdAt"`
}

type summaryResponse struct {
	Date               string                `json:"date"`
	ProductCount       int                   `json:"productCount"`
	LowStockCount      int                   `json:"lowStockCount"`
	TransactionCount   int                   `json:"transactionCount"`
	ItemsSold          int                   `json:"itemsSold"`
	Revenue            decimal.Decimal       `json:"revenue"`
	AverageTransaction decimal.Decimal       `json:"averageTransaction"`
	Transactions       []transactionResponse `json:"transactions"`
}

type createProductRequest struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

type updateProductRequest struct {
	Name  *string          `json:"name"`
	Price *decimal.Decimal `json:"price"`
	Stock *int             `json:"stock"`
}

type addToCartRequest struct {
	ProductID uuid.UUID `json:"productId"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func toProductResponse(p model.Product) productResponse {
	return productResponse{ID: p.ID, Name: p.Name, Price: p.Price, Stock: p.Stock, CreatedAt: p.CreatedAt}
}

func toProductsResponse(products []model.Product) []productResponse {
	result := make([]productResponse, 0, len(products))
	for _, p := range products {
		result = append(result, toProductResponse(p))
	}
	return result
}

func toItemsResponse(items []model.CartItem) []cartItemResponse {
	result := make([]cartItemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, cartItemResponse{
			Product:  toProductResponse(item.Product),
			Quantity: item.Quantity,
			Subtotal: item.Subtotal(),
		})
	}
	return result
}

func toTransactionResponse(t model.Transaction) transactionResponse {
	return transactionResponse{ID: t.ID, Items: toItemsResponse(t.Items), Total: t.Total, CreatedAt: t.CreatedAt}
}

func toTransactionsResponse(transactions []model.Transaction) []transactionResponse {
	result := make([]transactionResponse, 0, len(transactions))
	for _, t := range transactions {
		result = append(result, toTransactionResponse(t))
	}
	return result
}
