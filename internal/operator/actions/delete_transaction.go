package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/apperr"
	"github.com/carson-networks/finance-server/internal/storage"
)

// DeleteTransaction hard-deletes a transaction owned by UserID. Same
// ownership-then-existence ordering as UpdateTransaction.
type DeleteTransaction struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

func (a *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	owned, err := writer.Transaction.IsOwnedBy(ctx, a.ID, a.UserID)
	if err != nil {
		return err
	}
	if !owned {
		return apperr.New(apperr.KindForbidden, "You don't have permission to delete this transaction")
	}

	rows, err := writer.Transaction.Delete(ctx, a.ID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.New(apperr.KindNotFound, "Transaction not found")
	}
	return nil
}
