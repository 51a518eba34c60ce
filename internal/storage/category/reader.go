package category

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

type categoryRow struct {
	ID        uuid.UUID     `db:"id"`
	UserID    uuid.NullUUID `db:"user_id"`
	Name      string        `db:"name"`
	Kind      string        `db:"type"`
	IconCode  string        `db:"icon_code"`
	IsDeleted bool          `db:"is_deleted"`
}

func rowToCategory(row categoryRow) *Category {
	c := &Category{
		ID:        row.ID,
		Name:      row.Name,
		Kind:      Kind(row.Kind),
		IconCode:  row.IconCode,
		IsDeleted: row.IsDeleted,
	}
	if row.UserID.Valid {
		userID := row.UserID.UUID
		c.UserID = &userID
	}
	return c
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByID retrieves a category by primary key, deleted or not. Returns
// nil when no row exists.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	query := psql.Select(
		sm.Columns("id", "user_id", "name", "type", "icon_code", "is_deleted"),
		sm.From("categories"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	row, err := bob.One(ctx, r.exec, query, scan.StructMapper[categoryRow]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rowToCategory(row), nil
}

// ListForUser returns the user's categories plus the shared defaults,
// excluding soft-deleted rows, ordered by name.
func (r *Reader) ListForUser(ctx context.Context, userID uuid.UUID) ([]*Category, error) {
	query := psql.Select(
		sm.Columns("id", "user_id", "name", "type", "icon_code", "is_deleted"),
		sm.From("categories"),
		sm.Where(psql.Quote("user_id").IsNull().Or(psql.Quote("user_id").EQ(psql.Arg(userID)))),
		sm.Where(psql.Quote("is_deleted").EQ(psql.Arg(false))),
		sm.OrderBy(psql.Quote("name")).Asc(),
	)

	rows, err := bob.All(ctx, r.exec, query, scan.StructMapper[categoryRow]())
	if err != nil {
		return nil, err
	}

	result := make([]*Category, len(rows))
	for i, row := range rows {
		result[i] = rowToCategory(row)
	}
	return result, nil
}

// CountDefaults counts the shared default categories (owner IS NULL).
func (r *Reader) CountDefaults(ctx context.Context) (int64, error) {
	query := psql.Select(
		sm.Columns(psql.Raw("count(*)")),
		sm.From("categories"),
		sm.Where(psql.Quote("user_id").IsNull()),
	)
	return bob.One(ctx, r.exec, query, scan.SingleColumnMapper[int64])
}
