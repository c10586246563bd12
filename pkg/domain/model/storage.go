package model

import "time"

const (
	ProductsKey     = "pos_products"
	TransactionsKey = "pos_transactions"
)

// Storage is a string key-value store. Get reports ok=false for absent keys.
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
