package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/apperr"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/category"
)

// UpdateCategory patches a category owned by UserID. Default categories
// (nil owner) are shared by every user and never writable.
type UpdateCategory struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Patch  *category.CategoryPatch

	// Updated is set on success.
	Updated *category.Category
}

func (a *UpdateCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Category.FindByID(ctx, a.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperr.New(apperr.KindNotFound, "Category not found")
	}
	if existing.UserID == nil || *existing.UserID != a.UserID {
		return apperr.New(apperr.KindForbidden, "You don't have permission to update this category")
	}

	rows, err := writer.Category.Update(ctx, a.ID, a.Patch)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.New(apperr.KindNotFound, "Category not found")
	}

	updated, err := writer.Category.FindByID(ctx, a.ID)
	if err != nil {
		return err
	}
	if updated == nil {
		return apperr.New(apperr.KindNotFound, "Category not found")
	}

	a.Updated = updated
	return nil
}
