package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/apperr"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// UpdateTransaction patches a transaction owned by UserID. The
// ownership check runs before any existence check: a foreign id and a
// missing id both come back forbidden, and not-found is only reachable
// once ownership has passed.
type UpdateTransaction struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Patch  *transaction.TransactionPatch

	// Updated is set on success.
	Updated *transaction.Transaction
}

func (a *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	owned, err := writer.Transaction.IsOwnedBy(ctx, a.ID, a.UserID)
	if err != nil {
		return err
	}
	if !owned {
		return apperr.New(apperr.KindForbidden, "You don't have permission to update this transaction")
	}

	rows, err := writer.Transaction.Update(ctx, a.ID, a.Patch)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.New(apperr.KindNotFound, "Transaction not found")
	}

	updated, err := writer.Transaction.FindByID(ctx, a.ID)
	if err != nil {
		return err
	}
	if updated == nil {
		return apperr.New(apperr.KindNotFound, "Transaction not found")
	}

	a.Updated = updated
	return nil
}
