package transaction

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
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

// Insert creates a new transaction and returns its generated ID. The
// category foreign key is enforced by the store, not here.
func (w *Writer) Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error) {
	query := psql.Insert(
		im.Into("transactions", "user_id", "category_id", "amount", "currency_code", "note", "date"),
		im.Values(psql.Arg(
			create.UserID,
			create.CategoryID,
			create.Amount,
			create.CurrencyCode,
			create.Note,
			create.Date,
		)),
		im.Returning("id"),
	)

	id, err := bob.One(ctx, w.tx, query, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Update applies the set fields of patch and returns the affected row
// count. An empty patch degrades to an existence probe so the caller can
// still distinguish a vanished row.
func (w *Writer) Update(ctx context.Context, id uuid.UUID, patch *TransactionPatch) (int64, error) {
	if patch.IsEmpty() {
		return w.exists(ctx, id)
	}

	mods := []bob.Mod[*dialect.UpdateQuery]{um.Table("transactions")}
	if patch.CategoryID.IsValue() {
		mods = append(mods, um.SetCol("category_id").ToArg(patch.CategoryID.MustGet()))
	}
	if patch.Amount.IsValue() {
		mods = append(mods, um.SetCol("amount").ToArg(patch.Amount.MustGet()))
	}
	if patch.CurrencyCode.IsValue() {
		mods = append(mods, um.SetCol("currency_code").ToArg(patch.CurrencyCode.MustGet()))
	}
	if !patch.Note.IsUnset() {
		mods = append(mods, um.SetCol("note").ToArg(patch.Note.MustPtr()))
	}
	if patch.Date.IsValue() {
		mods = append(mods, um.SetCol("date").ToArg(patch.Date.MustGet()))
	}
	mods = append(mods, um.Where(psql.Quote("id").EQ(psql.Arg(id))))

	result, err := bob.Exec(ctx, w.tx, psql.Update(mods...))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Delete removes the row permanently. Transactions are hard-deleted,
// unlike categories.
func (w *Writer) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	query := psql.Delete(
		dm.From("transactions"),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	result, err := bob.Exec(ctx, w.tx, query)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (w *Writer) exists(ctx context.Context, id uuid.UUID) (int64, error) {
	query := psql.Select(
		sm.Columns(psql.Raw("count(*)")),
		sm.From("transactions"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	return bob.One(ctx, w.tx, query, scan.SingleColumnMapper[int64])
}
