package service

import (
	"time"

	"github.com/aarondl/opt/omitnull"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/storage/category"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// Transaction represents a transaction in the service layer, with its
// category resolved.
type Transaction struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	CategoryID   uuid.UUID
	Amount       float64
	CurrencyCode string
	Note         *string
	Date         time.Time
	CreatedAt    time.Time
	Category     *Category
}

// Category represents a category in the service layer. A nil UserID
// marks a shared system default.
type Category struct {
	ID        uuid.UUID
	UserID    *uuid.UUID
	Name      string
	Kind      category.Kind
	IconCode  string
	IsDeleted bool
}

// TransactionList is one page of an owner's transactions plus the
// pagination echo and the pre-pagination total.
type TransactionList struct {
	Transactions []Transaction
	Page         int
	Limit        int
	Total        int64
}

// CurrencySummary is the income/expense/balance triple for one raw
// currency code over a period.
type CurrencySummary struct {
	Currency string
	Income   float64
	Expense  float64
	Balance  float64
}

// ListParams carries the caller-supplied listing query as received, raw
// strings included, so validation stays in one place.
type ListParams struct {
	StartDate string
	EndDate   string
	Kind      string
	Page      int
	Limit     int
}

// TransactionCreate is the input for creating a transaction.
type TransactionCreate struct {
	CategoryID   uuid.UUID
	Amount       float64
	CurrencyCode string
	Note         *string
	Date         string
}

// TransactionUpdate is a partial update. Nil fields are left unchanged;
// Note distinguishes "leave alone" from "clear".
type TransactionUpdate struct {
	CategoryID   *uuid.UUID
	Amount       *float64
	CurrencyCode *string
	Note         omitnull.Val[string]
	Date         *string
}

func transactionFromStorage(row *transaction.Transaction) Transaction {
	t := Transaction{
		ID:           row.ID,
		UserID:       row.UserID,
		CategoryID:   row.CategoryID,
		Amount:       row.Amount,
		CurrencyCode: row.CurrencyCode,
		Note:         row.Note,
		Date:         row.Date,
		CreatedAt:    row.CreatedAt,
	}
	if row.Category != nil {
		c := categoryFromStorage(row.Category)
		t.Category = &c
	}
	return t
}

func transactionsFromStorage(rows []*transaction.Transaction) []Transaction {
	converted := make([]Transaction, len(rows))
	for i, row := range rows {
		converted[i] = transactionFromStorage(row)
	}
	return converted
}

func categoryFromStorage(row *category.Category) Category {
	return Category{
		ID:        row.ID,
		UserID:    row.UserID,
		Name:      row.Name,
		Kind:      row.Kind,
		IconCode:  row.IconCode,
		IsDeleted: row.IsDeleted,
	}
}
