package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/auth"
	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
)

// DeleteCategoryInput is the Huma input for deleting a category.
type DeleteCategoryInput struct {
	ID string `path:"id" doc:"Category UUID"`
}

// DeleteCategoryOutput is the Huma output for deleting a category.
type DeleteCategoryOutput struct{}

// categoryDeleter is the interface for deleting categories.
type categoryDeleter interface {
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// DeleteCategoryHandler handles DELETE /categories/{id}.
type DeleteCategoryHandler struct {
	CategoryService categoryDeleter
}

// NewDeleteCategoryHandler creates a new DeleteCategoryHandler.
func NewDeleteCategoryHandler(svc categoryDeleter) *DeleteCategoryHandler {
	return &DeleteCategoryHandler{CategoryService: svc}
}

// Register registers the delete category endpoint with the Huma API.
func (h *DeleteCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-category",
		Method:        http.MethodDelete,
		Path:          "/categories/{id}",
		Summary:       "Delete category",
		Description:   "Soft-deletes a category the caller owns. Shared defaults cannot be deleted.",
		Tags:          []string{"Categories"},
		Security:      bearerSecurity,
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

func (h *DeleteCategoryHandler) handle(ctx context.Context, input *DeleteCategoryInput) (*DeleteCategoryOutput, error) {
	userID, ok := auth.UserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Authentication required")
	}

	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid category ID")
	}

	if err := h.CategoryService.Delete(ctx, id, userID); err != nil {
		return nil, httperr.From(err)
	}

	return &DeleteCategoryOutput{}, nil
}
