package actions

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-server/internal/apperr"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/category"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
	"github.com/carson-networks/finance-server/internal/storage/user"
)

type mockTransactionWriter struct {
	mock.Mock
}

func (m *mockTransactionWriter) FindByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(*transaction.Transaction)
	return row, args.Error(1)
}

func (m *mockTransactionWriter) List(ctx context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, int64, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]*transaction.Transaction)
	return rows, args.Get(1).(int64), args.Error(2)
}

func (m *mockTransactionWriter) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, userID, limit)
	rows, _ := args.Get(0).([]*transaction.Transaction)
	return rows, args.Error(1)
}

func (m *mockTransactionWriter) SummaryRows(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) ([]transaction.SummaryRow, error) {
	args := m.Called(ctx, userID, startDate, endDate)
	rows, _ := args.Get(0).([]transaction.SummaryRow)
	return rows, args.Error(1)
}

func (m *mockTransactionWriter) IsOwnedBy(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockTransactionWriter) Insert(ctx context.Context, create *transaction.TransactionCreate) (uuid.UUID, error) {
	args := m.Called(ctx, create)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockTransactionWriter) Update(ctx context.Context, id uuid.UUID, patch *transaction.TransactionPatch) (int64, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTransactionWriter) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type mockCategoryWriter struct {
	mock.Mock
}

func (m *mockCategoryWriter) FindByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(*category.Category)
	return row, args.Error(1)
}

func (m *mockCategoryWriter) ListForUser(ctx context.Context, userID uuid.UUID) ([]*category.Category, error) {
	args := m.Called(ctx, userID)
	rows, _ := args.Get(0).([]*category.Category)
	return rows, args.Error(1)
}

func (m *mockCategoryWriter) CountDefaults(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCategoryWriter) Insert(ctx context.Context, create *category.CategoryCreate) (uuid.UUID, error) {
	args := m.Called(ctx, create)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockCategoryWriter) Update(ctx context.Context, id uuid.UUID, patch *category.CategoryPatch) (int64, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCategoryWriter) SoftDelete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCategoryWriter) SeedDefaults(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockUserWriter struct {
	mock.Mock
}

func (m *mockUserWriter) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(*user.User)
	return row, args.Error(1)
}

func (m *mockUserWriter) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	row, _ := args.Get(0).(*user.User)
	return row, args.Error(1)
}

func (m *mockUserWriter) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserWriter) Insert(ctx context.Context, create *user.UserCreate) (uuid.UUID, error) {
	args := m.Called(ctx, create)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

// -- UpdateTransaction tests --

func TestUpdateTransaction_ForbiddenForForeignRow(t *testing.T) {
	mockWriter := new(mockTransactionWriter)
	id := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())

	mockWriter.On("IsOwnedBy", mock.Anything, id, userID).Return(false, nil)

	action := &UpdateTransaction{ID: id, UserID: userID, Patch: &transaction.TransactionPatch{}}
	err := action.Perform(context.Background(), &storage.Writer{Transaction: mockWriter})

	assert.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	assert.Equal(t, "You don't have permission to update this transaction", apperr.MessageOf(err))
	mockWriter.AssertNotCalled(t, "Update")
}

func TestUpdateTransaction_ForbiddenForMissingRow(t *testing.T) {
	// Ownership is checked before existence, so a missing id fails the
	// same way a foreign one does.
	mockWriter := new(mockTransactionWriter)
	id := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())

	mockWriter.On("IsOwnedBy", mock.Anything, id, userID).Return(false, nil)

	action := &UpdateTransaction{ID: id, UserID: userID, Patch: &transaction.TransactionPatch{}}
	err := action.Perform(context.Background(), &storage.Writer{Transaction: mockWriter})

	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	mockWriter.AssertNotCalled(t, "FindByID")
}

func TestUpdateTransaction_NotFoundWhenRowVanishes(t *testing.T) {
	mockWriter := new(mockTransactionWriter)
	id := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())

	mockWriter.On("IsOwnedBy", mock.Anything, id, userID).Return(true, nil)
	mockWriter.On("Update", mock.Anything, id, mock.Anything).Return(int64(0), nil)

	action := &UpdateTransaction{ID: id, UserID: userID, Patch: &transaction.TransactionPatch{}}
	err := action.Perform(context.Background(), &storage.Writer{Transaction: mockWriter})

	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "Transaction not found", apperr.MessageOf(err))
}

func TestUpdateTransaction_Success(t *testing.T) {
	mockWriter := new(mockTransactionWriter)
	id := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())
	updated := &transaction.Transaction{ID: id, UserID: userID, Amount: 99}

	mockWriter.On("IsOwnedBy", mock.Anything, id, userID).Return(true, nil)
	mockWriter.On("Update", mock.Anything, id, mock.Anything).Return(int64(1), nil)
	mockWriter.On("FindByID", mock.Anything, id).Return(updated, nil)

	action := &UpdateTransaction{ID: id, UserID: userID, Patch: &transaction.TransactionPatch{}}
	err := action.Perform(context.Background(), &storage.Writer{Transaction: mockWriter})

	assert.NoError(t, err)
	assert.Equal(t, updated, action.Updated)
}

// -- DeleteTransaction tests --

func TestDeleteTransaction_Forbidden(t *testing.T) {
	mockWriter := new(mockTransactionWriter)
	id := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())

	mockWriter.On("IsOwnedBy", mock.Anything, id, userID).Return(false, nil)

	action := &DeleteTransaction{ID: id, UserID: userID}
	err := action.Perform(context.Background(), &storage.Writer{Transaction: mockWriter})

	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	assert.Equal(t, "You don't have permission to delete this transaction", apperr.MessageOf(err))
	mockWriter.AssertNotCalled(t, "Delete")
}

func TestDeleteTransaction_Success(t *testing.T) {
	mockWriter := new(mockTransactionWriter)
	id := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())

	mockWriter.On("IsOwnedBy", mock.Anything, id, userID).Return(true, nil)
	mockWriter.On("Delete", mock.Anything, id).Return(int64(1), nil)

	action := &DeleteTransaction{ID: id, UserID: userID}
	err := action.Perform(context.Background(), &storage.Writer{Transaction: mockWriter})

	assert.NoError(t, err)
}

func TestDeleteTransaction_NotFoundWhenRowVanishes(t *testing.T) {
	mockWriter := new(mockTransactionWriter)
	id := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())

	mockWriter.On("IsOwnedBy", mock.Anything, id, userID).Return(true, nil)
	mockWriter.On("Delete", mock.Anything, id).Return(int64(0), nil)

	action := &DeleteTransaction{ID: id, UserID: userID}
	err := action.Perform(context.Background(), &storage.Writer{Transaction: mockWriter})

	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

// -- CreateTransaction tests --

func TestCreateTransaction_InsertsAndRefetches(t *testing.T) {
	mockWriter := new(mockTransactionWriter)
	id := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())
	create := &transaction.TransactionCreate{UserID: userID, Amount: 10, CurrencyCode: "USD"}
	created := &transaction.Transaction{ID: id, UserID: userID, Amount: 10, CurrencyCode: "USD"}

	mockWriter.On("Insert", mock.Anything, create).Return(id, nil)
	mockWriter.On("FindByID", mock.Anything, id).Return(created, nil)

	action := &CreateTransaction{Create: create}
	err := action.Perform(context.Background(), &storage.Writer{Transaction: mockWriter})

	assert.NoError(t, err)
	assert.Equal(t, created, action.Created)
}

// -- Category action tests --

func TestUpdateCategory_NotFound(t *testing.T) {
	mockWriter := new(mockCategoryWriter)
	id := uuid.Must(uuid.NewV4())

	mockWriter.On("FindByID", mock.Anything, id).Return((*category.Category)(nil), nil)

	action := &UpdateCategory{ID: id, UserID: uuid.Must(uuid.NewV4()), Patch: &category.CategoryPatch{}}
	err := action.Perform(context.Background(), &storage.Writer{Category: mockWriter})

	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "Category not found", apperr.MessageOf(err))
}

func TestUpdateCategory_DefaultIsImmutable(t *testing.T) {
	mockWriter := new(mockCategoryWriter)
	id := uuid.Must(uuid.NewV4())

	mockWriter.On("FindByID", mock.Anything, id).
		Return(&category.Category{ID: id, Name: "Salary", Kind: category.KindIncome}, nil)

	action := &UpdateCategory{ID: id, UserID: uuid.Must(uuid.NewV4()), Patch: &category.CategoryPatch{}}
	err := action.Perform(context.Background(), &storage.Writer{Category: mockWriter})

	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	mockWriter.AssertNotCalled(t, "Update")
}

func TestUpdateCategory_ForeignOwnerForbidden(t *testing.T) {
	mockWriter := new(mockCategoryWriter)
	id := uuid.Must(uuid.NewV4())
	owner := uuid.Must(uuid.NewV4())

	mockWriter.On("FindByID", mock.Anything, id).
		Return(&category.Category{ID: id, UserID: &owner, Name: "Vet"}, nil)

	action := &UpdateCategory{ID: id, UserID: uuid.Must(uuid.NewV4()), Patch: &category.CategoryPatch{}}
	err := action.Perform(context.Background(), &storage.Writer{Category: mockWriter})

	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	assert.Equal(t, "You don't have permission to update this category", apperr.MessageOf(err))
}

func TestDeleteCategory_SoftDeletes(t *testing.T) {
	mockWriter := new(mockCategoryWriter)
	id := uuid.Must(uuid.NewV4())
	owner := uuid.Must(uuid.NewV4())

	mockWriter.On("FindByID", mock.Anything, id).
		Return(&category.Category{ID: id, UserID: &owner, Name: "Vet"}, nil)
	mockWriter.On("SoftDelete", mock.Anything, id).Return(int64(1), nil)

	action := &DeleteCategory{ID: id, UserID: owner}
	err := action.Perform(context.Background(), &storage.Writer{Category: mockWriter})

	assert.NoError(t, err)
	mockWriter.AssertExpectations(t)
}

func TestDeleteCategory_DefaultForbidden(t *testing.T) {
	mockWriter := new(mockCategoryWriter)
	id := uuid.Must(uuid.NewV4())

	mockWriter.On("FindByID", mock.Anything, id).
		Return(&category.Category{ID: id, Name: "Salary"}, nil)

	action := &DeleteCategory{ID: id, UserID: uuid.Must(uuid.NewV4())}
	err := action.Perform(context.Background(), &storage.Writer{Category: mockWriter})

	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	assert.Equal(t, "You don't have permission to delete this category", apperr.MessageOf(err))
	mockWriter.AssertNotCalled(t, "SoftDelete")
}

// -- RegisterUser tests --

func TestRegisterUser_Conflict(t *testing.T) {
	mockWriter := new(mockUserWriter)

	mockWriter.On("EmailExists", mock.Anything, "jamie@example.com").Return(true, nil)

	action := &RegisterUser{Create: &user.UserCreate{Email: "jamie@example.com"}}
	err := action.Perform(context.Background(), &storage.Writer{User: mockWriter})

	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, "Email already registered", apperr.MessageOf(err))
	mockWriter.AssertNotCalled(t, "Insert")
}

func TestRegisterUser_Success(t *testing.T) {
	mockWriter := new(mockUserWriter)
	id := uuid.Must(uuid.NewV4())
	create := &user.UserCreate{Email: "jamie@example.com", PasswordHash: "hash", FullName: "Jamie Doe"}
	created := &user.User{ID: id, Email: create.Email, FullName: create.FullName}

	mockWriter.On("EmailExists", mock.Anything, create.Email).Return(false, nil)
	mockWriter.On("Insert", mock.Anything, create).Return(id, nil)
	mockWriter.On("FindByID", mock.Anything, id).Return(created, nil)

	action := &RegisterUser{Create: create}
	err := action.Perform(context.Background(), &storage.Writer{User: mockWriter})

	assert.NoError(t, err)
	assert.Equal(t, created, action.Created)
}

// -- SeedCategories tests --

func TestSeedCategories_ReportsInserted(t *testing.T) {
	mockWriter := new(mockCategoryWriter)
	mockWriter.On("SeedDefaults", mock.Anything).Return(int64(14), nil)

	action := &SeedCategories{}
	err := action.Perform(context.Background(), &storage.Writer{Category: mockWriter})

	assert.NoError(t, err)
	assert.Equal(t, int64(14), action.Inserted)
}
