package actions

import (
	"context"

	"github.com/carson-networks/finance-server/internal/apperr"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/category"
)

// CreateCategory inserts a user-owned category.
type CreateCategory struct {
	Create *category.CategoryCreate

	// Created is set on success.
	Created *category.Category
}

func (a *CreateCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	id, err := writer.Category.Insert(ctx, a.Create)
	if err != nil {
		return err
	}

	created, err := writer.Category.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if created == nil {
		return apperr.New(apperr.KindInternal, "created category not found")
	}

	a.Created = created
	return nil
}
