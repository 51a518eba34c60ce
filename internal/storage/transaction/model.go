package transaction

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/storage/category"
)

// Transaction represents a transaction record with its category resolved
// at read time. Category is nil only if the referenced row vanished.
type Transaction struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	CategoryID   uuid.UUID
	Amount       float64
	CurrencyCode string
	Note         *string
	Date         time.Time
	CreatedAt    time.Time
	Category     *category.Category
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	UserID       uuid.UUID
	CategoryID   uuid.UUID
	Amount       float64
	CurrencyCode string
	Note         *string
	Date         time.Time
}

// TransactionPatch is a partial update. Unset fields are left unchanged;
// Note distinguishes "leave alone" from "clear".
type TransactionPatch struct {
	CategoryID   omit.Val[uuid.UUID]
	Amount       omit.Val[float64]
	CurrencyCode omit.Val[string]
	Note         omitnull.Val[string]
	Date         omit.Val[time.Time]
}

// IsEmpty reports whether the patch touches nothing.
func (p *TransactionPatch) IsEmpty() bool {
	return p.CategoryID.IsUnset() &&
		p.Amount.IsUnset() &&
		p.CurrencyCode.IsUnset() &&
		p.Note.IsUnset() &&
		p.Date.IsUnset()
}

// TransactionFilter selects an owner's transactions within an optional
// inclusive date range and optional category kind.
type TransactionFilter struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Kind      *category.Kind
	Limit     int
	Offset    int
}

// SummaryRow is one transaction's contribution to a period summary: its
// currency, its category's kind, and its amount. Kind is nil when the
// category row is gone.
type SummaryRow struct {
	CurrencyCode string
	Kind         *category.Kind
	Amount       float64
}

// IReader defines read operations on the transactions table.
type IReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, int64, error)
	Recent(ctx context.Context, userID uuid.UUID, limit int) ([]*Transaction, error)
	SummaryRows(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) ([]SummaryRow, error)
	IsOwnedBy(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

// IWriter defines write operations on the transactions table, plus the
// reads a write action needs inside its transaction.
type IWriter interface {
	IReader
	Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, patch *TransactionPatch) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}
