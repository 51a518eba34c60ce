package auth

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-server/internal/service"
)

// RefreshBody is the request body for token refresh.
type RefreshBody struct {
	RefreshToken string `json:"refreshToken" required:"true" doc:"Refresh token from a previous auth response"`
}

// RefreshInput is the Huma input for token refresh.
type RefreshInput struct {
	Body RefreshBody
}

// RefreshOutput is the Huma output for token refresh.
type RefreshOutput struct {
	Body AuthResponseBody
}

// refresher is the interface for exchanging refresh tokens.
type refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*service.AuthResult, error)
}

// RefreshHandler handles POST /auth/refresh.
type RefreshHandler struct {
	AuthService refresher
}

// NewRefreshHandler creates a new RefreshHandler.
func NewRefreshHandler(svc refresher) *RefreshHandler {
	return &RefreshHandler{AuthService: svc}
}

// Register registers the refresh endpoint with the Huma API.
func (h *RefreshHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "refresh-token",
		Method:      http.MethodPost,
		Path:        "/auth/refresh",
		Summary:     "Refresh tokens",
		Description: "Exchanges a valid refresh token for a new token pair.",
		Tags:        []string{"Auth"},
	}, h.handle)
}

func (h *RefreshHandler) handle(ctx context.Context, input *RefreshInput) (*RefreshOutput, error) {
	if input.Body.RefreshToken == "" {
		return nil, huma.Error400BadRequest("Refresh token is required")
	}

	result, err := h.AuthService.Refresh(ctx, input.Body.RefreshToken)
	if err != nil {
		return nil, httperr.From(err)
	}

	return &RefreshOutput{Body: fromService(result)}, nil
}
