package actions

import (
	"context"

	"github.com/carson-networks/finance-server/internal/apperr"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/user"
)

// RegisterUser inserts a new user after checking email uniqueness. The
// check and the insert share one transaction, so a duplicate racing in
// still trips the unique constraint instead of double-registering.
type RegisterUser struct {
	Create *user.UserCreate

	// Created is set on success.
	Created *user.User
}

func (a *RegisterUser) Perform(ctx context.Context, writer *storage.Writer) error {
	exists, err := writer.User.EmailExists(ctx, a.Create.Email)
	if err != nil {
		return err
	}
	if exists {
		return apperr.New(apperr.KindConflict, "Email already registered")
	}

	id, err := writer.User.Insert(ctx, a.Create)
	if err != nil {
		return err
	}

	created, err := writer.User.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if created == nil {
		return apperr.New(apperr.KindInternal, "created user not found")
	}

	a.Created = created
	return nil
}
