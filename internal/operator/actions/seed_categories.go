package actions

import (
	"context"

	"github.com/carson-networks/finance-server/internal/storage"
)

// SeedCategories installs the default category set on first boot.
// Idempotent; concurrent cold starts serialize on an advisory lock
// inside the store.
type SeedCategories struct {
	// Inserted is the number of default rows this run created, zero when
	// the defaults already existed.
	Inserted int64
}

func (a *SeedCategories) Perform(ctx context.Context, writer *storage.Writer) error {
	inserted, err := writer.Category.SeedDefaults(ctx)
	if err != nil {
		return err
	}
	a.Inserted = inserted
	return nil
}
