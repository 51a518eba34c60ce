package service

import (
	"github.com/carson-networks/finance-server/internal/storage/category"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// summarize groups rows by their literal currency code and sums income
// and expense amounts per group, in row order. Currency codes are taken
// as stored; normalization happens at write time, so "usd" and "USD"
// are distinct groups if both exist. Rows whose category kind is
// unknown (category row gone) count toward neither side but still
// create their currency group.
func summarize(rows []transaction.SummaryRow) []CurrencySummary {
	groups := make(map[string]*CurrencySummary)
	order := make([]string, 0)

	for _, row := range rows {
		group, ok := groups[row.CurrencyCode]
		if !ok {
			group = &CurrencySummary{Currency: row.CurrencyCode}
			groups[row.CurrencyCode] = group
			order = append(order, row.CurrencyCode)
		}
		if row.Kind == nil {
			continue
		}
		switch *row.Kind {
		case category.KindIncome:
			group.Income += row.Amount
		case category.KindExpense:
			group.Expense += row.Amount
		}
	}

	summaries := make([]CurrencySummary, 0, len(order))
	for _, currency := range order {
		group := groups[currency]
		group.Balance = group.Income - group.Expense
		summaries = append(summaries, *group)
	}
	return summaries
}
