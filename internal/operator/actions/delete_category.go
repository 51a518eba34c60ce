package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/apperr"
	"github.com/carson-networks/finance-server/internal/storage"
)

// DeleteCategory soft-deletes a category owned by UserID. The row stays
// behind as a foreign target for existing transactions.
type DeleteCategory struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

func (a *DeleteCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Category.FindByID(ctx, a.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperr.New(apperr.KindNotFound, "Category not found")
	}
	if existing.UserID == nil || *existing.UserID != a.UserID {
		return apperr.New(apperr.KindForbidden, "You don't have permission to delete this category")
	}

	rows, err := writer.Category.SoftDelete(ctx, a.ID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.New(apperr.KindNotFound, "Category not found")
	}
	return nil
}
