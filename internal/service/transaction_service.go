package service

import (
	"context"
	"strings"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/apperr"
	"github.com/carson-networks/finance-server/internal/operator/actions"
	"github.com/carson-networks/finance-server/internal/storage/category"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

const (
	dateLayout = "2006-01-02"

	maxListLimit   = 100
	maxRecentLimit = 20
)

// TransactionService handles transaction business logic: validation,
// clamping, and orchestration of reads and queued writes.
type TransactionService struct {
	store     Store
	processor Processor
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store Store, processor Processor) *TransactionService {
	return &TransactionService{store: store, processor: processor}
}

// List returns one page of the owner's transactions. Dates bound the
// range inclusively and either may be absent; the kind filter accepts
// INCOME, EXPENSE, or ALL case-insensitively, ALL meaning unfiltered.
// Page is clamped to at least 1 and limit to [1,100].
func (s *TransactionService) List(ctx context.Context, userID uuid.UUID, params ListParams) (*TransactionList, error) {
	startDate, err := parseOptionalDate(params.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseOptionalDate(params.EndDate)
	if err != nil {
		return nil, err
	}
	kind, err := parseKindFilter(params.Kind)
	if err != nil {
		return nil, err
	}

	page := max(1, params.Page)
	limit := min(maxListLimit, max(1, params.Limit))

	reader, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	rows, total, err := reader.Transactions.List(ctx, &transaction.TransactionFilter{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
		Kind:      kind,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}

	return &TransactionList{
		Transactions: transactionsFromStorage(rows),
		Page:         page,
		Limit:        limit,
		Total:        total,
	}, nil
}

// Recent returns the owner's most recent transactions, limit clamped to
// [1,20].
func (s *TransactionService) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]Transaction, error) {
	validLimit := min(maxRecentLimit, max(1, limit))

	reader, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	rows, err := reader.Transactions.Recent(ctx, userID, validLimit)
	if err != nil {
		return nil, err
	}
	return transactionsFromStorage(rows), nil
}

// Summary aggregates the owner's transactions between startDate and
// endDate inclusive into per-currency income/expense/balance triples.
// Both dates are required and startDate must not be after endDate.
func (s *TransactionService) Summary(ctx context.Context, userID uuid.UUID, startDate, endDate string) ([]CurrencySummary, error) {
	start, err := parseDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(endDate)
	if err != nil {
		return nil, err
	}
	if start.After(*end) {
		return nil, apperr.New(apperr.KindInvalidArgument, "Start date cannot be after end date")
	}

	reader, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	rows, err := reader.Transactions.SummaryRows(ctx, userID, *start, *end)
	if err != nil {
		return nil, err
	}
	return summarize(rows), nil
}

// GetByID fetches a transaction by id. No ownership check is performed
// here: any authenticated caller who knows an id can fetch it.
func (s *TransactionService) GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	reader, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	row, err := reader.Transactions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, apperr.New(apperr.KindNotFound, "Transaction not found")
	}

	converted := transactionFromStorage(row)
	return &converted, nil
}

// Create validates and stores a new transaction for the owner. Currency
// is uppercased and the note trimmed before storage.
func (s *TransactionService) Create(ctx context.Context, userID uuid.UUID, create TransactionCreate) (*Transaction, error) {
	if create.Amount <= 0 {
		return nil, apperr.New(apperr.KindInvalidArgument, "Amount must be positive")
	}
	if strings.TrimSpace(create.CurrencyCode) == "" {
		return nil, apperr.New(apperr.KindInvalidArgument, "Currency code is required")
	}
	date, err := parseDate(create.Date)
	if err != nil {
		return nil, err
	}

	action := &actions.CreateTransaction{
		Create: &transaction.TransactionCreate{
			UserID:       userID,
			CategoryID:   create.CategoryID,
			Amount:       create.Amount,
			CurrencyCode: strings.TrimSpace(strings.ToUpper(create.CurrencyCode)),
			Note:         trimNote(create.Note),
			Date:         *date,
		},
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}

	converted := transactionFromStorage(action.Created)
	return &converted, nil
}

// Update applies a partial update to a transaction the owner holds.
func (s *TransactionService) Update(ctx context.Context, id, userID uuid.UUID, update TransactionUpdate) (*Transaction, error) {
	if update.Amount != nil && *update.Amount <= 0 {
		return nil, apperr.New(apperr.KindInvalidArgument, "Amount must be positive")
	}

	patch := &transaction.TransactionPatch{Note: update.Note}
	if update.CategoryID != nil {
		patch.CategoryID = omit.From(*update.CategoryID)
	}
	if update.Amount != nil {
		patch.Amount = omit.From(*update.Amount)
	}
	if update.CurrencyCode != nil {
		patch.CurrencyCode = omit.From(strings.TrimSpace(strings.ToUpper(*update.CurrencyCode)))
	}
	if patch.Note.IsValue() {
		patch.Note.Set(strings.TrimSpace(patch.Note.MustGet()))
	}
	if update.Date != nil {
		date, err := parseDate(*update.Date)
		if err != nil {
			return nil, err
		}
		patch.Date = omit.From(*date)
	}

	action := &actions.UpdateTransaction{
		ID:     id,
		UserID: userID,
		Patch:  patch,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}

	converted := transactionFromStorage(action.Updated)
	return &converted, nil
}

// Delete hard-deletes a transaction the owner holds.
func (s *TransactionService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return s.processor.Process(ctx, &actions.DeleteTransaction{ID: id, UserID: userID})
}

func parseDate(value string) (*time.Time, error) {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, apperr.New(apperr.KindInvalidArgument, "Invalid date format. Use YYYY-MM-DD")
	}
	return &parsed, nil
}

func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	return parseDate(value)
}

// parseKindFilter maps the type query parameter to an optional kind
// filter. Absence and "ALL" both mean unfiltered.
func parseKindFilter(value string) (*category.Kind, error) {
	if value == "" || strings.EqualFold(value, "ALL") {
		return nil, nil
	}
	kind, ok := category.KindFromString(value)
	if !ok {
		return nil, apperr.New(apperr.KindInvalidArgument, "Invalid type. Must be INCOME, EXPENSE, or ALL")
	}
	return &kind, nil
}

func trimNote(note *string) *string {
	if note == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*note)
	return &trimmed
}
