package actions

import (
	"context"

	"github.com/carson-networks/finance-server/internal/storage"
)

// IAction is a unit of write work performed inside one storage transaction.
// Perform may stash results on the action; the operator guarantees the
// caller only reads them after the response arrives.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
