package user

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/scan"
)

type Writer struct {
	tx bob.Tx
	Reader
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// Insert creates a new user and returns its generated ID.
func (w *Writer) Insert(ctx context.Context, create *UserCreate) (uuid.UUID, error) {
	query := psql.Insert(
		im.Into("users", "email", "password_hash", "full_name"),
		im.Values(psql.Arg(create.Email, create.PasswordHash, create.FullName)),
		im.Returning("id"),
	)

	id, err := bob.One(ctx, w.tx, query, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}
