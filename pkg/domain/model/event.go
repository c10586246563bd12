package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductAdded struct {
	ProductID uuid.UUID
	Name      string
}

func (e ProductAdded) Type() string { return "ProductAdded" }

type ProductUpdated struct {
	ProductID uuid.UUID
	OldStock  int
	NewStock  int
}

func (e ProductUpdated) Type() string { return "ProductUpdated" }

type ProductDeleted struct {
	ProductID uuid.UUID
}

func (e ProductDeleted) Type() string { return "ProductDeleted" }

type TransactionCompleted struct {
	TransactionID uuid.UUID
	ItemCount     int
	Total         decimal.Decimal
}

func (e TransactionCompleted) Type() string { return "TransactionCompleted" }
