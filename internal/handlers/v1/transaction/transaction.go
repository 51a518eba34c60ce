package transaction

import (
	"github.com/carson-networks/finance-server/internal/service"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05"
)

// Transaction is the API response model for a transaction. It is used
// only for responses, not for request bodies.
type Transaction struct {
	ID           string    `json:"id" doc:"Transaction UUID"`
	UserID       string    `json:"userId" doc:"Owner UUID"`
	CategoryID   string    `json:"categoryId" doc:"Category UUID"`
	Amount       float64   `json:"amount" doc:"Monetary amount"`
	CurrencyCode string    `json:"currencyCode" doc:"Currency code as stored"`
	Note         *string   `json:"note" doc:"Free-form note, null when absent"`
	Date         string    `json:"date" doc:"Transaction date, YYYY-MM-DD"`
	CreatedAt    string    `json:"createdAt" doc:"Record creation timestamp"`
	Category     *Category `json:"category,omitempty" doc:"Resolved category"`
}

// Category is the API response model for a category nested in a
// transaction.
type Category struct {
	ID        string  `json:"id" doc:"Category UUID"`
	UserID    *string `json:"userId" doc:"Owner UUID, null for shared defaults"`
	Name      string  `json:"name" doc:"Display name"`
	Kind      string  `json:"type" doc:"INCOME or EXPENSE"`
	IconCode  string  `json:"iconCode" doc:"Client icon identifier"`
	IsDeleted bool    `json:"isDeleted" doc:"Soft-delete marker"`
}

func fromService(t service.Transaction) Transaction {
	converted := Transaction{
		ID:           t.ID.String(),
		UserID:       t.UserID.String(),
		CategoryID:   t.CategoryID.String(),
		Amount:       t.Amount,
		CurrencyCode: t.CurrencyCode,
		Note:         t.Note,
		Date:         t.Date.Format(dateLayout),
		CreatedAt:    t.CreatedAt.Format(timestampLayout),
	}
	if t.Category != nil {
		category := categoryFromService(*t.Category)
		converted.Category = &category
	}
	return converted
}

func categoryFromService(c service.Category) Category {
	converted := Category{
		ID:        c.ID.String(),
		Name:      c.Name,
		Kind:      string(c.Kind),
		IconCode:  c.IconCode,
		IsDeleted: c.IsDeleted,
	}
	if c.UserID != nil {
		userID := c.UserID.String()
		converted.UserID = &userID
	}
	return converted
}

func fromServiceList(items []service.Transaction) []Transaction {
	converted := make([]Transaction, len(items))
	for i, item := range items {
		converted[i] = fromService(item)
	}
	return converted
}

var bearerSecurity = []map[string][]string{{"bearer": {}}}
