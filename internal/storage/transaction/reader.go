package transaction

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
	"github.com/stephenafamo/bob/mods"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/finance-server/internal/apperr"
	"github.com/carson-networks/finance-server/internal/storage/category"
)

// Joined row: transaction columns plus the left-joined category columns,
// which are all nullable since the join may not match.
type transactionRow struct {
	ID           uuid.UUID      `db:"id"`
	UserID       uuid.UUID      `db:"user_id"`
	CategoryID   uuid.UUID      `db:"category_id"`
	Amount       float64        `db:"amount"`
	CurrencyCode string         `db:"currency_code"`
	Note         sql.NullString `db:"note"`
	Date         time.Time      `db:"date"`
	CreatedAt    time.Time      `db:"created_at"`

	CatID      uuid.NullUUID  `db:"cat_id"`
	CatUserID  uuid.NullUUID  `db:"cat_user_id"`
	CatName    sql.NullString `db:"cat_name"`
	CatKind    sql.NullString `db:"cat_kind"`
	CatIcon    sql.NullString `db:"cat_icon"`
	CatDeleted sql.NullBool   `db:"cat_deleted"`
}

var joinedColumns = []any{
	"transactions.id AS id",
	"transactions.user_id AS user_id",
	"transactions.category_id AS category_id",
	"transactions.amount AS amount",
	"transactions.currency_code AS currency_code",
	"transactions.note AS note",
	"transactions.date AS date",
	"transactions.created_at AS created_at",
	"categories.id AS cat_id",
	"categories.user_id AS cat_user_id",
	"categories.name AS cat_name",
	"categories.type AS cat_kind",
	"categories.icon_code AS cat_icon",
	"categories.is_deleted AS cat_deleted",
}

func rowToTransaction(row transactionRow) *Transaction {
	tx := &Transaction{
		ID:           row.ID,
		UserID:       row.UserID,
		CategoryID:   row.CategoryID,
		Amount:       row.Amount,
		CurrencyCode: row.CurrencyCode,
		Date:         row.Date,
		CreatedAt:    row.CreatedAt,
	}
	if row.Note.Valid {
		note := row.Note.String
		tx.Note = &note
	}
	if row.CatID.Valid {
		cat := &category.Category{
			ID:        row.CatID.UUID,
			Name:      row.CatName.String,
			Kind:      category.Kind(row.CatKind.String),
			IconCode:  row.CatIcon.String,
			IsDeleted: row.CatDeleted.Bool,
		}
		if row.CatUserID.Valid {
			catUserID := row.CatUserID.UUID
			cat.UserID = &catUserID
		}
		tx.Category = cat
	}
	return tx
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func joinedQueryMods() []bob.Mod[*dialect.SelectQuery] {
	return []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(joinedColumns...),
		sm.From("transactions"),
		sm.LeftJoin("categories").On(
			psql.Quote("transactions", "category_id").EQ(psql.Quote("categories", "id")),
		),
	}
}

func filterWhereMods(filter *TransactionFilter) []mods.Where[*dialect.SelectQuery] {
	whereMods := []mods.Where[*dialect.SelectQuery]{
		sm.Where(psql.Quote("transactions", "user_id").EQ(psql.Arg(filter.UserID))),
	}
	if filter.StartDate != nil {
		whereMods = append(whereMods, sm.Where(psql.Quote("transactions", "date").GTE(psql.Arg(*filter.StartDate))))
	}
	if filter.EndDate != nil {
		whereMods = append(whereMods, sm.Where(psql.Quote("transactions", "date").LTE(psql.Arg(*filter.EndDate))))
	}
	if filter.Kind != nil {
		whereMods = append(whereMods, sm.Where(psql.Quote("categories", "type").EQ(psql.Arg(string(*filter.Kind)))))
	}
	return whereMods
}

// FindByID retrieves a transaction with its category resolved. Returns
// nil when no row exists. No ownership filter at this layer.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	queryMods := joinedQueryMods()
	queryMods = append(queryMods, sm.Where(psql.Quote("transactions", "id").EQ(psql.Arg(id))))

	row, err := bob.One(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[transactionRow]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rowToTransaction(row), nil
}

// List returns one page of the owner's transactions plus the total count
// of the filtered set before pagination. Both run against the same
// executor, so under a repeatable-read transaction they see one snapshot.
// The caller is responsible for clamping; a page size below 1 is rejected.
func (r *Reader) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, int64, error) {
	if filter.Limit < 1 {
		return nil, 0, apperr.New(apperr.KindInvalidArgument, "page size must be at least 1")
	}

	whereMods := filterWhereMods(filter)

	countMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(psql.Raw("count(*)")),
		sm.From("transactions"),
		sm.LeftJoin("categories").On(
			psql.Quote("transactions", "category_id").EQ(psql.Quote("categories", "id")),
		),
		psql.WhereAnd(whereMods...),
	}
	total, err := bob.One(ctx, r.exec, psql.Select(countMods...), scan.SingleColumnMapper[int64])
	if err != nil {
		return nil, 0, err
	}

	queryMods := joinedQueryMods()
	queryMods = append(queryMods,
		psql.WhereAnd(whereMods...),
		sm.OrderBy(psql.Quote("transactions", "date")).Desc(),
		sm.OrderBy(psql.Quote("transactions", "created_at")).Desc(),
		sm.Limit(filter.Limit),
		sm.Offset(filter.Offset),
	)
	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[transactionRow]())
	if err != nil {
		return nil, 0, err
	}

	result := make([]*Transaction, len(rows))
	for i, row := range rows {
		result[i] = rowToTransaction(row)
	}
	return result, total, nil
}

// Recent returns the owner's most recent transactions, newest first.
func (r *Reader) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]*Transaction, error) {
	if limit < 1 {
		return nil, apperr.New(apperr.KindInvalidArgument, "page size must be at least 1")
	}

	queryMods := joinedQueryMods()
	queryMods = append(queryMods,
		sm.Where(psql.Quote("transactions", "user_id").EQ(psql.Arg(userID))),
		sm.OrderBy(psql.Quote("transactions", "date")).Desc(),
		sm.OrderBy(psql.Quote("transactions", "created_at")).Desc(),
		sm.Limit(limit),
	)

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[transactionRow]())
	if err != nil {
		return nil, err
	}

	result := make([]*Transaction, len(rows))
	for i, row := range rows {
		result[i] = rowToTransaction(row)
	}
	return result, nil
}

type summaryRow struct {
	CurrencyCode string         `db:"currency_code"`
	Kind         sql.NullString `db:"kind"`
	Amount       float64        `db:"amount"`
}

// SummaryRows fetches the owner's transactions in [startDate, endDate]
// annotated with their category kind, oldest first so downstream
// accumulation order is deterministic.
func (r *Reader) SummaryRows(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) ([]SummaryRow, error) {
	query := psql.Select(
		sm.Columns(
			"transactions.currency_code AS currency_code",
			"categories.type AS kind",
			"transactions.amount AS amount",
		),
		sm.From("transactions"),
		sm.LeftJoin("categories").On(
			psql.Quote("transactions", "category_id").EQ(psql.Quote("categories", "id")),
		),
		psql.WhereAnd(
			sm.Where(psql.Quote("transactions", "user_id").EQ(psql.Arg(userID))),
			sm.Where(psql.Quote("transactions", "date").GTE(psql.Arg(startDate))),
			sm.Where(psql.Quote("transactions", "date").LTE(psql.Arg(endDate))),
		),
		sm.OrderBy(psql.Quote("transactions", "date")).Asc(),
		sm.OrderBy(psql.Quote("transactions", "created_at")).Asc(),
	)

	rows, err := bob.All(ctx, r.exec, query, scan.StructMapper[summaryRow]())
	if err != nil {
		return nil, err
	}

	result := make([]SummaryRow, len(rows))
	for i, row := range rows {
		result[i] = SummaryRow{
			CurrencyCode: row.CurrencyCode,
			Amount:       row.Amount,
		}
		if row.Kind.Valid {
			kind := category.Kind(row.Kind.String)
			result[i].Kind = &kind
		}
	}
	return result, nil
}

// IsOwnedBy reports whether the transaction exists and belongs to userID.
func (r *Reader) IsOwnedBy(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	query := psql.Select(
		sm.Columns(psql.Raw("count(*)")),
		sm.From("transactions"),
		psql.WhereAnd(
			sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
			sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		),
	)

	count, err := bob.One(ctx, r.exec, query, scan.SingleColumnMapper[int64])
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
