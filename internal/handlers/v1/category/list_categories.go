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

// ListCategoriesOutput is the Huma output for listing categories.
type ListCategoriesOutput struct {
	Body []Category
}

// categoryLister is the interface for listing categories.
type categoryLister interface {
	List(ctx context.Context, userID uuid.UUID) ([]service.Category, error)
}

// ListCategoriesHandler handles GET /categories.
type ListCategoriesHandler struct {
	CategoryService categoryLister
}

// NewListCategoriesHandler creates a new ListCategoriesHandler.
func NewListCategoriesHandler(svc categoryLister) *ListCategoriesHandler {
	return &ListCategoriesHandler{CategoryService: svc}
}

// Register registers the list categories endpoint with the Huma API.
func (h *ListCategoriesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/categories",
		Summary:     "List categories",
		Description: "Returns the caller's categories plus the shared defaults, by name.",
		Tags:        []string{"Categories"},
		Security:    bearerSecurity,
	}, h.handle)
}

func (h *ListCategoriesHandler) handle(ctx context.Context, _ *struct{}) (*ListCategoriesOutput, error) {
	userID, ok := auth.UserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Authentication required")
	}

	categories, err := h.CategoryService.List(ctx, userID)
	if err != nil {
		return nil, httperr.From(err)
	}

	converted := make([]Category, len(categories))
	for i, c := range categories {
		converted[i] = fromService(c)
	}
	return &ListCategoriesOutput{Body: converted}, nil
}
