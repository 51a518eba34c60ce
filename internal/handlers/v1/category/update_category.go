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

// UpdateCategoryBody is the request body for updating a category.
// Absent fields are left unchanged.
type UpdateCategoryBody struct {
	Name     *string `json:"name,omitempty" doc:"Display name"`
	Kind     *string `json:"type,omitempty" doc:"INCOME or EXPENSE"`
	IconCode *string `json:"iconCode,omitempty" doc:"Client icon identifier"`
}

// UpdateCategoryInput is the Huma input for updating a category.
type UpdateCategoryInput struct {
	ID   string `path:"id" doc:"Category UUID"`
	Body UpdateCategoryBody
}

// UpdateCategoryOutput is the Huma output for updating a category.
type UpdateCategoryOutput struct {
	Body Category
}

// categoryUpdater is the interface for updating categories.
type categoryUpdater interface {
	Update(ctx context.Context, id, userID uuid.UUID, update service.CategoryUpdate) (*service.Category, error)
}

// UpdateCategoryHandler handles PUT /categories/{id}.
type UpdateCategoryHandler struct {
	CategoryService categoryUpdater
}

// NewUpdateCategoryHandler creates a new UpdateCategoryHandler.
func NewUpdateCategoryHandler(svc categoryUpdater) *UpdateCategoryHandler {
	return &UpdateCategoryHandler{CategoryService: svc}
}

// Register registers the update category endpoint with the Huma API.
func (h *UpdateCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-category",
		Method:      http.MethodPut,
		Path:        "/categories/{id}",
		Summary:     "Update category",
		Description: "Applies a partial update to a category the caller owns. Shared defaults cannot be changed.",
		Tags:        []string{"Categories"},
		Security:    bearerSecurity,
	}, h.handle)
}

func (h *UpdateCategoryHandler) handle(ctx context.Context, input *UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	userID, ok := auth.UserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Authentication required")
	}

	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid category ID")
	}

	updated, err := h.CategoryService.Update(ctx, id, userID, service.CategoryUpdate{
		Name:     input.Body.Name,
		Kind:     input.Body.Kind,
		IconCode: input.Body.IconCode,
	})
	if err != nil {
		return nil, httperr.From(err)
	}

	return &UpdateCategoryOutput{Body: fromService(*updated)}, nil
}
