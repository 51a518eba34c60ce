package actions

import (
	"context"

	"github.com/carson-networks/finance-server/internal/apperr"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// CreateTransaction inserts a transaction and re-reads it with its
// category resolved. A bad category id surfaces from the store's foreign
// key, not from a pre-check here.
type CreateTransaction struct {
	Create *transaction.TransactionCreate

	// Created is set on success.
	Created *transaction.Transaction
}

func (a *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	id, err := writer.Transaction.Insert(ctx, a.Create)
	if err != nil {
		return err
	}

	created, err := writer.Transaction.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if created == nil {
		return apperr.New(apperr.KindInternal, "created transaction not found")
	}

	a.Created = created
	return nil
}
