package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-server/internal/storage/category"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
	"github.com/carson-networks/finance-server/internal/storage/user"
)

// Reader bundles the per-table readers over one read transaction.
type Reader struct {
	tx *bob.Tx

	Transactions transaction.IReader
	Categories   category.IReader
	Users        user.IReader
}

func NewReader(tx bob.Tx) *Reader {
	return &Reader{
		tx:           &tx,
		Transactions: transaction.NewReader(tx),
		Categories:   category.NewReader(tx),
		Users:        user.NewReader(tx),
	}
}

// Close releases the read snapshot. Safe on a Reader built without a
// transaction (tests).
func (r *Reader) Close() error {
	if r.tx == nil {
		return nil
	}
	return r.tx.Rollback(context.Background())
}
