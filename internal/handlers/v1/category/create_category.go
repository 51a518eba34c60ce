package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/auth"
	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-server/internal/service"
)

// CreateCategoryBody is the request body for creating a category.
type CreateCategoryBody struct {
	Name     string `json:"name" required:"true" doc:"Display name"`
	Kind     string `json:"type" required:"true" doc:"INCOME or EXPENSE"`
	IconCode string `json:"iconCode" required:"true" doc:"Client icon identifier"`
}

// CreateCategoryInput is the Huma input for creating a category.
type CreateCategoryInput struct {
	Body CreateCategoryBody
}

// CreateCategoryOutput is the Huma output for creating a category.
type CreateCategoryOutput struct {
	Body Category
}

// categoryCreator is the interface for creating categories.
type categoryCreator interface {
	Create(ctx context.Context, userID uuid.UUID, create service.CategoryCreate) (*service.Category, error)
}

// CreateCategoryHandler handles POST /categories.
type CreateCategoryHandler struct {
	CategoryService categoryCreator
}

// NewCreateCategoryHandler creates a new CreateCategoryHandler.
func NewCreateCategoryHandler(svc categoryCreator) *CreateCategoryHandler {
	return &CreateCategoryHandler{CategoryService: svc}
}

// Register registers the create category endpoint with the Huma API.
func (h *CreateCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-category",
		Method:        http.MethodPost,
		Path:          "/categories",
		Summary:       "Create category",
		Description:   "Creates a new category owned by the caller.",
		Tags:          []string{"Categories"},
		Security:      bearerSecurity,
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *CreateCategoryHandler) handle(ctx context.Context, input *CreateCategoryInput) (*CreateCategoryOutput, error) {
	userID, ok := auth.UserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Authentication required")
	}

	created, err := h.CategoryService.Create(ctx, userID, service.CategoryCreate{
		Name:     input.Body.Name,
		Kind:     input.Body.Kind,
		IconCode: input.Body.IconCode,
	})
	if err != nil {
		return nil, httperr.From(err)
	}

	return &CreateCategoryOutput{Body: fromService(*created)}, nil
}
