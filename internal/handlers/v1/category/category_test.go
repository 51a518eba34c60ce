package category

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-server/internal/apperr"
	"github.com/carson-networks/finance-server/internal/auth"
	"github.com/carson-networks/finance-server/internal/service"
	storagecategory "github.com/carson-networks/finance-server/internal/storage/category"
)

type mockCategoryService struct {
	mock.Mock
}

func (m *mockCategoryService) List(ctx context.Context, userID uuid.UUID) ([]service.Category, error) {
	args := m.Called(ctx, userID)
	rows, _ := args.Get(0).([]service.Category)
	return rows, args.Error(1)
}

func (m *mockCategoryService) Create(ctx context.Context, userID uuid.UUID, create service.CategoryCreate) (*service.Category, error) {
	args := m.Called(ctx, userID, create)
	created, _ := args.Get(0).(*service.Category)
	return created, args.Error(1)
}

func (m *mockCategoryService) Update(ctx context.Context, id, userID uuid.UUID, update service.CategoryUpdate) (*service.Category, error) {
	args := m.Called(ctx, id, userID, update)
	updated, _ := args.Get(0).(*service.Category)
	return updated, args.Error(1)
}

func (m *mockCategoryService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func newTestAPI(t *testing.T, svc *mockCategoryService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewListCategoriesHandler(svc).Register(api)
	NewCreateCategoryHandler(svc).Register(api)
	NewUpdateCategoryHandler(svc).Register(api)
	NewDeleteCategoryHandler(svc).Register(api)
	return api
}

func authedCtx(userID uuid.UUID) context.Context {
	return auth.WithUserID(context.Background(), userID)
}

func TestHTTP_ListCategories_MixesDefaultsAndOwned(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	owned := service.Category{
		ID:       uuid.Must(uuid.NewV4()),
		UserID:   &userID,
		Name:     "Vet",
		Kind:     storagecategory.KindExpense,
		IconCode: "pet",
	}
	shared := service.Category{
		ID:       uuid.Must(uuid.NewV4()),
		Name:     "Salary",
		Kind:     storagecategory.KindIncome,
		IconCode: "wallet",
	}

	mockSvc := new(mockCategoryService)
	mockSvc.On("List", mock.Anything, userID).Return([]service.Category{shared, owned}, nil)

	resp := newTestAPI(t, mockSvc).GetCtx(authedCtx(userID), "/categories")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body []Category
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body, 2)
	assert.Nil(t, body[0].UserID)
	assert.Equal(t, "INCOME", body[0].Kind)
	assert.Equal(t, userID.String(), *body[1].UserID)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ListCategories_Unauthenticated(t *testing.T) {
	mockSvc := new(mockCategoryService)

	resp := newTestAPI(t, mockSvc).Get("/categories")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	mockSvc.AssertNotCalled(t, "List")
}

func TestHTTP_CreateCategory_Success(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	created := service.Category{
		ID:       uuid.Must(uuid.NewV4()),
		UserID:   &userID,
		Name:     "Streaming",
		Kind:     storagecategory.KindExpense,
		IconCode: "tv",
	}

	mockSvc := new(mockCategoryService)
	mockSvc.On("Create", mock.Anything, userID, service.CategoryCreate{
		Name:     "Streaming",
		Kind:     "EXPENSE",
		IconCode: "tv",
	}).Return(&created, nil)

	resp := newTestAPI(t, mockSvc).PostCtx(authedCtx(userID), "/categories", CreateCategoryBody{
		Name:     "Streaming",
		Kind:     "EXPENSE",
		IconCode: "tv",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body Category
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, created.ID.String(), body.ID)
	assert.Equal(t, userID.String(), *body.UserID)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateCategory_BlankName(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockCategoryService)
	mockSvc.On("Create", mock.Anything, userID, mock.Anything).
		Return((*service.Category)(nil), apperr.New(apperr.KindInvalidArgument, "Category name cannot be blank"))

	resp := newTestAPI(t, mockSvc).PostCtx(authedCtx(userID), "/categories", CreateCategoryBody{
		Name:     "   ",
		Kind:     "EXPENSE",
		IconCode: "tv",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Category name cannot be blank")
}

func TestHTTP_UpdateCategory_Success(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())
	name := "Renamed"
	updated := service.Category{ID: id, UserID: &userID, Name: name, Kind: storagecategory.KindExpense, IconCode: "tv"}

	mockSvc := new(mockCategoryService)
	mockSvc.On("Update", mock.Anything, id, userID, mock.MatchedBy(func(u service.CategoryUpdate) bool {
		return u.Name != nil && *u.Name == name && u.Kind == nil && u.IconCode == nil
	})).Return(&updated, nil)

	resp := newTestAPI(t, mockSvc).PutCtx(authedCtx(userID), "/categories/"+id.String(),
		map[string]any{"name": name})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body Category
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, name, body.Name)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_UpdateCategory_DefaultForbidden(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())

	mockSvc := new(mockCategoryService)
	mockSvc.On("Update", mock.Anything, id, userID, mock.Anything).
		Return((*service.Category)(nil), apperr.New(apperr.KindForbidden, "You don't have permission to update this category"))

	resp := newTestAPI(t, mockSvc).PutCtx(authedCtx(userID), "/categories/"+id.String(),
		map[string]any{"name": "Hijack"})

	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.Contains(t, resp.Body.String(), "You don't have permission to update this category")
}

func TestHTTP_UpdateCategory_NotFound(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())

	mockSvc := new(mockCategoryService)
	mockSvc.On("Update", mock.Anything, id, userID, mock.Anything).
		Return((*service.Category)(nil), apperr.New(apperr.KindNotFound, "Category not found"))

	resp := newTestAPI(t, mockSvc).PutCtx(authedCtx(userID), "/categories/"+id.String(),
		map[string]any{"name": "Missing"})

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "Category not found")
}

func TestHTTP_DeleteCategory_Success(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())

	mockSvc := new(mockCategoryService)
	mockSvc.On("Delete", mock.Anything, id, userID).Return(nil)

	resp := newTestAPI(t, mockSvc).DeleteCtx(authedCtx(userID), "/categories/"+id.String())

	assert.Equal(t, http.StatusNoContent, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_DeleteCategory_InvalidID(t *testing.T) {
	mockSvc := new(mockCategoryService)

	resp := newTestAPI(t, mockSvc).DeleteCtx(authedCtx(uuid.Must(uuid.NewV4())), "/categories/not-a-uuid")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid category ID")
	mockSvc.AssertNotCalled(t, "Delete")
}
