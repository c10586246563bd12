package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"pos/pkg/domain/model"
)

type Event interface {
	Type() string
}

type EventDispatcher interface {
	Dispatch(event Event) error
}

// StoreService owns the catalog, the cart and the transaction log.
// It is not safe for concurrent use.
type StoreService interface {
	Products() []model.Product
	FindProduct(id uuid.UUID) (model.Product, bool)
	AvailableProducts() []model.Product
	LowStockProducts(threshold int) []model.Product
	AddProduct(name string, price decimal.Decimal, stock int) (model.Product, error)
	UpdateProduct(id uuid.UUID, update model.ProductUpdate) error
	DeleteProduct(id uuid.UUID) error

	Cart() []model.CartItem
	AddToCart(product model.Product) bool
	RemoveFromCart(productID uuid.UUID)
	UpdateCartQuantity(productID uuid.UUID, quantity int)
	ClearCart()
	CartTotal() decimal.Decimal
	RemainingStock(productID uuid.UUID) int

	Transactions() []model.Transaction
	CompleteTransaction() (*model.Transaction, error)
	TodayRevenue() decimal.Decimal
	TodayTransactions() []model.Transaction
	TodaySummary(lowStockThreshold int) model.DailySummary
}

func NewStoreService(storage model.Storage, dispatcher EventDispatcher, clock model.Clock) (StoreService, error) {
	s := &storeService{storage: storage, dispatcher: dispatcher, clock: clock}

	products, err := s.loadProducts()
	if err != nil {
		return nil, err
	}
	transactions, err := s.loadTransactions()
	if err != nil {
		return nil, err
	}

	s.products = products
	s.transactions = transactions
	return s, nil
}

type storeService struct {
	storage    model.Storage
	dispatcher EventDispatcher
	clock      model.Clock

	products     []model.Product
	cart         []model.CartItem
	transactions []model.Transaction
}

func (s *storeService) Products() []model.Product {
	return append([]model.Product(nil), s.products...)
}

func (s *storeService) FindProduct(id uuid.UUID) (model.Product, bool) {
	if i := s.productIndex(id); i != -1 {
		return s.products[i], true
	}
	return model.Product{}, false
}

func (s *storeService) AvailableProducts() []model.Product {
	return s.filterProducts(func(p model.Product) bool { return p.Stock > 0 })
}

func (s *storeService) LowStockProducts(threshold int) []model.Product {
	return s.filterProducts(func(p model.Product) bool { return p.Stock <= threshold })
}

func (s *storeService) AddProduct(name string, price decimal.Decimal, stock int) (model.Product, error) {
	productID, err := uuid.NewRandom()
	if err != nil {
		return model.Product{}, errors.Wrap(err, "failed to generate product id")
	}

	product := model.Product{
		ID:        productID,
		Name:      name,
		Price:     price,
		Stock:     stock,
		CreatedAt: s.clock.Now(),
	}
	s.products = append(s.products, product)

	if err := s.saveProducts(); err != nil {
		return model.Product{}, err
	}

	_ = s.dispatcher.Dispatch(model.ProductAdded{ProductID: productID, Name: name})
	return product, nil
}

func (s *storeService) UpdateProduct(id uuid.UUID, update model.ProductUpdate) error {
	i := s.productIndex(id)
	if i == -1 {
		return nil
	}

	oldStock := s.products[i].Stock
	s.products[i] = update.Apply(s.products[i])

	if err := s.saveProducts(); err != nil {
		return err
	}

	_ = s.dispatcher.Dispatch(model.ProductUpdated{ProductID: id, OldStock: oldStock, NewStock: s.products[i].Stock})
	return nil
}

// DeleteProduct leaves cart lines that reference the product in place.
func (s *storeService) DeleteProduct(id uuid.UUID) error {
	i := s.productIndex(id)
	if i == -1 {
		return nil
	}

	s.products = append(s.products[:i:i], s.products[i+1:]...)

	if err := s.saveProducts(); err != nil {
		return err
	}

	_ = s.dispatcher.Dispatch(model.ProductDeleted{ProductID: id})
	return nil
}

func (s *storeService) Cart() []model.CartItem {
	return append([]model.CartItem(nil), s.cart...)
}

// AddToCart checks against the stock of the given product, not the copy
// held by an existing cart line. It reports whether the cart changed.
func (s *storeService) AddToCart(product model.Product) bool {
	if i := s.cartIndex(product.ID); i != -1 {
		if s.cart[i].Quantity >= product.Stock {
			return false
		}
		s.cart[i].Quantity++
		return true
	}

	if product.Stock <= 0 {
		return false
	}
	s.cart = append(s.cart, model.CartItem{Product: product, Quantity: 1})
	return true
}

func (s *storeService) RemoveFromCart(productID uuid.UUID) {
	if i := s.cartIndex(productID); i != -1 {
		s.cart = append(s.cart[:i:i], s.cart[i+1:]...)
	}
}

// UpdateCartQuantity does not clamp to stock.
func (s *storeService) UpdateCartQuantity(productID uuid.UUID, quantity int) {
	if quantity <= 0 {
		s.RemoveFromCart(productID)
		return
	}
	if i := s.cartIndex(productID); i != -1 {
		s.cart[i].Quantity = quantity
	}
}

func (s *storeService) ClearCart() {
	s.cart = nil
}

func (s *storeService) CartTotal() decimal.Decimal {
	return totalOf(s.cart)
}

func (s *storeService) RemainingStock(productID uuid.UUID) int {
	product, ok := s.FindProduct(productID)
	if !ok {
		return 0
	}
	if i := s.cartIndex(productID); i != -1 {
		return product.Stock - s.cart[i].Quantity
	}
	return product.Stock
}

func (s *storeService) Transactions() []model.Transaction {
	return append([]model.Transaction(nil), s.transactions...)
}

// CompleteTransaction returns nil without side effects when the cart is empty.
// Stock writes and the transaction write are independent: an error midway
// leaves the earlier writes in place. The transaction joins the history only
// once it is stored, so a failed attempt keeps the cart and records nothing;
// retrying decrements stock again.
func (s *storeService) CompleteTransaction() (*model.Transaction, error) {
	if len(s.cart) == 0 {
		return nil, nil
	}

	transactionID, err := uuid.NewRandom()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate transaction id")
	}

	items := s.Cart()
	transaction := model.Transaction{
		ID:        transactionID,
		Items:     items,
		Total:     totalOf(items),
		CreatedAt: s.clock.Now(),
	}

	for _, item := range items {
		product, ok := s.FindProduct(item.Product.ID)
		if !ok {
			continue
		}
		stock := product.Stock - item.Quantity
		if err := s.UpdateProduct(product.ID, model.ProductUpdate{Stock: &stock}); err != nil {
			return nil, errors.Wrapf(err, "failed to decrement stock of product %s", product.ID)
		}
	}

	transactions := append(s.Transactions(), transaction)
	if err := s.saveTransactions(transactions); err != nil {
		return nil, err
	}
	s.transactions = transactions

	s.ClearCart()

	_ = s.dispatcher.Dispatch(model.TransactionCompleted{
		TransactionID: transactionID,
		ItemCount:     transaction.ItemCount(),
		Total:         transaction.Total,
	})
	return &transaction, nil
}

func (s *storeService) TodayRevenue() decimal.Decimal {
	total := decimal.Zero
	for _, t := range s.TodayTransactions() {
		total = total.Add(t.Total)
	}
	return total
}

func (s *storeService) TodayTransactions() []model.Transaction {
	start, end := dayBounds(s.clock.Now())

	var today []model.Transaction
	for _, t := range s.transactions {
		if !t.CreatedAt.Before(start) && t.CreatedAt.Before(end) {
			today = append(today, t)
		}
	}
	return today
}

func (s *storeService) productIndex(id uuid.UUID) int {
	for i, p := range s.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *storeService) cartIndex(productID uuid.UUID) int {
	for i, item := range s.cart {
		if item.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (s *storeService) filterProducts(keep func(p model.Product) bool) []model.Product {
	var result []model.Product
	for _, p := range s.products {
		if keep(p) {
			result = append(result, p)
		}
	}
	return result
}

func (s *storeService) loadProducts() ([]model.Product, error) {
	data, ok, err := s.storage.Get(model.ProductsKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load products")
	}
	if !ok {
		return nil, nil
	}
	products, err := DecodeProducts(data)
	if err != nil {
		return nil, nil
	}
	return products, nil
}

func (s *storeService) loadTransactions() ([]model.Transaction, error) {
	data, ok, err := s.storage.Get(model.TransactionsKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load transactions")
	}
	if !ok {
		return nil, nil
	}
	transactions, err := DecodeTransactions(data)
	if err != nil {
		return nil, nil
	}
	return transactions, nil
}

func (s *storeService) saveProducts() error {
	data, err := EncodeProducts(s.products)
	if err != nil {
		return err
	}
	return errors.Wrap(s.storage.Set(model.ProductsKey, data), "failed to save products")
}

func (s *storeService) saveTransactions(transactions []model.Transaction) error {
	data, err := EncodeTransactions(transactions)
	if err != nil {
		return err
	}
	return errors.Wrap(s.storage.Set(model.TransactionsKey, data), "failed to save transactions")
}

func totalOf(items []model.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// dayBounds returns local midnight of now's day and of the following day.
func dayBounds(now time.Time) (time.Time, time.Time) {
	year, month, day := now.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	return start, time.Date(year, month, day+1, 0, 0, 0, 0, now.Location())
}
