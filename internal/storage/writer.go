package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-server/internal/storage/category"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
	"github.com/carson-networks/finance-server/internal/storage/user"
)

// Writer bundles the per-table writers over one write transaction.
type Writer struct {
	tx *bob.Tx

	Transaction transaction.IWriter
	Category    category.IWriter
	User        user.IWriter
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx:          &tx,
		Transaction: transaction.NewWriter(tx),
		Category:    category.NewWriter(tx),
		User:        user.NewWriter(tx),
	}
}

func (w *Writer) Commit() error {
	if w.tx == nil {
		return nil
	}
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	if w.tx == nil {
		return nil
	}
	return w.tx.Rollback(context.Background())
}
