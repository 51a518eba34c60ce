package category

import (
	"context"
	"strings"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
)

// Kind is the direction a category contributes to: income or expense.
type Kind string

const (
	KindIncome  Kind = "INCOME"
	KindExpense Kind = "EXPENSE"
)

// KindFromString parses a kind case-insensitively.
func KindFromString(s string) (Kind, bool) {
	switch strings.ToUpper(s) {
	case string(KindIncome):
		return KindIncome, true
	case string(KindExpense):
		return KindExpense, true
	default:
		return "", false
	}
}

// Category represents a category record. A nil UserID marks a shared
// system default.
type Category struct {
	ID        uuid.UUID
	UserID    *uuid.UUID
	Name      string
	Kind      Kind
	IconCode  string
	IsDeleted bool
}

// CategoryCreate is the input for creating a new category.
type CategoryCreate struct {
	UserID   *uuid.UUID
	Name     string
	Kind     Kind
	IconCode string
}

// CategoryPatch is a partial update; unset fields are left unchanged.
type CategoryPatch struct {
	Name     omit.Val[string]
	Kind     omit.Val[Kind]
	IconCode omit.Val[string]
}

// IsEmpty reports whether the patch touches nothing.
func (p *CategoryPatch) IsEmpty() bool {
	return p.Name.IsUnset() && p.Kind.IsUnset() && p.IconCode.IsUnset()
}

// IReader defines read operations on the categories table.
type IReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*Category, error)
	CountDefaults(ctx context.Context) (int64, error)
}

// IWriter defines write operations on the categories table, plus the
// reads a write action needs inside its transaction.
type IWriter interface {
	IReader
	Insert(ctx context.Context, create *CategoryCreate) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, patch *CategoryPatch) (int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) (int64, error)
	SeedDefaults(ctx context.Context) (int64, error)
}
