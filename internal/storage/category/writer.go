package category

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

type defaultCategory struct {
	name string
	kind Kind
	icon string
}

var defaultCategories = []defaultCategory{
	{"Salary", KindIncome, "ic_salary"},
	{"Freelance", KindIncome, "ic_freelance"},
	{"Investment", KindIncome, "ic_investment"},
	{"Gift", KindIncome, "ic_gift"},
	{"Other Income", KindIncome, "ic_other_income"},
	{"Food & Dining", KindExpense, "ic_food"},
	{"Transportation", KindExpense, "ic_transport"},
	{"Shopping", KindExpense, "ic_shopping"},
	{"Entertainment", KindExpense, "ic_entertainment"},
	{"Bills & Utilities", KindExpense, "ic_bills"},
	{"Healthcare", KindExpense, "ic_health"},
	{"Education", KindExpense, "ic_education"},
	{"Travel", KindExpense, "ic_travel"},
	{"Other Expense", KindExpense, "ic_other_expense"},
}

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

// Insert creates a new category and returns its generated ID.
func (w *Writer) Insert(ctx context.Context, create *CategoryCreate) (uuid.UUID, error) {
	query := psql.Insert(
		im.Into("categories", "user_id", "name", "type", "icon_code", "is_deleted"),
		im.Values(psql.Arg(create.UserID, create.Name, string(create.Kind), create.IconCode, false)),
		im.Returning("id"),
	)

	id, err := bob.One(ctx, w.tx, query, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Update applies the set fields of patch and returns the affected row count.
func (w *Writer) Update(ctx context.Context, id uuid.UUID, patch *CategoryPatch) (int64, error) {
	if patch.IsEmpty() {
		return w.exists(ctx, id)
	}

	mods := []bob.Mod[*dialect.UpdateQuery]{um.Table("categories")}
	if patch.Name.IsValue() {
		mods = append(mods, um.SetCol("name").ToArg(patch.Name.MustGet()))
	}
	if patch.Kind.IsValue() {
		mods = append(mods, um.SetCol("type").ToArg(string(patch.Kind.MustGet())))
	}
	if patch.IconCode.IsValue() {
		mods = append(mods, um.SetCol("icon_code").ToArg(patch.IconCode.MustGet()))
	}
	mods = append(mods, um.Where(psql.Quote("id").EQ(psql.Arg(id))))

	result, err := bob.Exec(ctx, w.tx, psql.Update(mods...))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// SoftDelete marks the category deleted without removing the row, so
// existing transactions keep a valid target.
func (w *Writer) SoftDelete(ctx context.Context, id uuid.UUID) (int64, error) {
	query := psql.Update(
		um.Table("categories"),
		um.SetCol("is_deleted").ToArg(true),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	result, err := bob.Exec(ctx, w.tx, query)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// SeedDefaults inserts the shared default category set if no defaults
// exist yet. The advisory lock serializes concurrent cold starts so two
// instances cannot double-seed; it is released when the transaction ends.
func (w *Writer) SeedDefaults(ctx context.Context) (int64, error) {
	_, err := bob.Exec(ctx, w.tx, psql.RawQuery("SELECT pg_advisory_xact_lock(4279880037)"))
	if err != nil {
		return 0, err
	}

	existing, err := w.CountDefaults(ctx)
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		return 0, nil
	}

	mods := []bob.Mod[*dialect.InsertQuery]{
		im.Into("categories", "user_id", "name", "type", "icon_code", "is_deleted"),
	}
	for _, c := range defaultCategories {
		mods = append(mods, im.Values(psql.Arg(nil, c.name, string(c.kind), c.icon, false)))
	}

	result, err := bob.Exec(ctx, w.tx, psql.Insert(mods...))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (w *Writer) exists(ctx context.Context, id uuid.UUID) (int64, error) {
	query := psql.Select(
		sm.Columns(psql.Raw("count(*)")),
		sm.From("categories"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	return bob.One(ctx, w.tx, query, scan.SingleColumnMapper[int64])
}
