package service

import (
	"context"

	"github.com/carson-networks/finance-server/internal/auth"
	"github.com/carson-networks/finance-server/internal/operator/actions"
	"github.com/carson-networks/finance-server/internal/storage"
)

// Store opens read snapshots against the database.
type Store interface {
	Read(ctx context.Context) (*storage.Reader, error)
}

// Processor runs a write action through the operator queue and reports
// its outcome.
type Processor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	Category    *CategoryService
	Auth        *AuthService
}

// NewService creates a new Service with the given storage, write
// processor, and token manager.
func NewService(store Store, processor Processor, tokens *auth.Manager) *Service {
	return &Service{
		Transaction: NewTransactionService(store, processor),
		Category:    NewCategoryService(store, processor),
		Auth:        NewAuthService(store, processor, tokens),
	}
}
