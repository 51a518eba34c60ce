package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

type userRow struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	FullName     string    `db:"full_name"`
	CreatedAt    time.Time `db:"created_at"`
}

func rowToUser(row userRow) *User {
	return &User{
		ID:           row.ID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		FullName:     row.FullName,
		CreatedAt:    row.CreatedAt,
	}
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByID retrieves a user by primary key. Returns nil when no row exists.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.findBy(ctx, sm.Where(psql.Quote("id").EQ(psql.Arg(id))))
}

// FindByEmail retrieves a user by email. Returns nil when no row exists.
func (r *Reader) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findBy(ctx, sm.Where(psql.Quote("email").EQ(psql.Arg(email))))
}

// EmailExists reports whether a user with this email is registered.
func (r *Reader) EmailExists(ctx context.Context, email string) (bool, error) {
	query := psql.Select(
		sm.Columns(psql.Raw("count(*)")),
		sm.From("users"),
		sm.Where(psql.Quote("email").EQ(psql.Arg(email))),
	)
	count, err := bob.One(ctx, r.exec, query, scan.SingleColumnMapper[int64])
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Reader) findBy(ctx context.Context, where bob.Mod[*dialect.SelectQuery]) (*User, error) {
	query := psql.Select(
		sm.Columns("id", "email", "password_hash", "full_name", "created_at"),
		sm.From("users"),
		where,
	)

	row, err := bob.One(ctx, r.exec, query, scan.StructMapper[userRow]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rowToUser(row), nil
}
